// Package nn implements the position evaluator: a two layer (affine→sigmoid→affine→sigmoid)
// neural network over the board features, along with its gradient and persistence.
//
// The parameters (Params) are owned by whoever trains them, and lent to a Network to
// evaluate boards. A Network never modifies its Params.
package nn

import (
	"fmt"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"math/rand/v2"
)

// InitScale is the standard deviation of the initial random weights.
const InitScale = 1e-2

var (
	// ErrShapeMismatch is returned when parameters don't match the expected architecture.
	ErrShapeMismatch = errors.New("parameters shape mismatch")

	// ErrMissingWeights is returned when a learned evaluator is requested, but no trained
	// parameters are available.
	ErrMissingWeights = errors.New("missing trained weights")
)

// Params of the network. The same structure holds gradients and updates.
//
//   - W1: hidden × features
//   - W2: 1 × hidden
//   - B1: hidden × 1
//   - B2: 1 × 1
type Params struct {
	W1, W2, B1, B2 *mat.Dense
}

// NewParams returns parameters with weights drawn from a normal distribution scaled by
// InitScale, and zero biases.
func NewParams(numFeatures, numHidden int, rng *rand.Rand) *Params {
	p := ZeroParams(numFeatures, numHidden)
	for _, w := range []*mat.Dense{p.W1, p.W2} {
		raw := w.RawMatrix()
		for ii := range raw.Data {
			raw.Data[ii] = InitScale * rng.NormFloat64()
		}
	}
	return p
}

// ZeroParams returns all-zero parameters of the given shape.
func ZeroParams(numFeatures, numHidden int) *Params {
	return &Params{
		W1: mat.NewDense(numHidden, numFeatures, nil),
		W2: mat.NewDense(1, numHidden, nil),
		B1: mat.NewDense(numHidden, 1, nil),
		B2: mat.NewDense(1, 1, nil),
	}
}

// Tensors returns the four parameter matrices, in the order W1, W2, B1, B2.
func (p *Params) Tensors() []*mat.Dense {
	return []*mat.Dense{p.W1, p.W2, p.B1, p.B2}
}

// NumFeatures returns the input dimension.
func (p *Params) NumFeatures() int {
	_, c := p.W1.Dims()
	return c
}

// NumHidden returns the width of the hidden layer.
func (p *Params) NumHidden() int {
	r, _ := p.W1.Dims()
	return r
}

// ZerosLike returns all-zero parameters with the same shape as p.
func (p *Params) ZerosLike() *Params {
	return ZeroParams(p.NumFeatures(), p.NumHidden())
}

// Clone returns a deep copy.
func (p *Params) Clone() *Params {
	return &Params{
		W1: mat.DenseCopyOf(p.W1),
		W2: mat.DenseCopyOf(p.W2),
		B1: mat.DenseCopyOf(p.B1),
		B2: mat.DenseCopyOf(p.B2),
	}
}

// AddScaled adds alpha*other to p, in place.
func (p *Params) AddScaled(alpha float64, other *Params) {
	others := other.Tensors()
	for ii, t := range p.Tensors() {
		t.AddScaled(t, alpha, others[ii])
	}
}

// CheckShape returns an error wrapping ErrShapeMismatch if p doesn't have the architecture
// given by numFeatures and numHidden.
func (p *Params) CheckShape(numFeatures, numHidden int) error {
	want := ZeroParams(numFeatures, numHidden)
	names := []string{"W1", "W2", "B1", "B2"}
	wantTensors := want.Tensors()
	for ii, t := range p.Tensors() {
		if t == nil {
			return errors.Wrapf(ErrShapeMismatch, "%s is missing", names[ii])
		}
		r, c := t.Dims()
		wr, wc := wantTensors[ii].Dims()
		if r != wr || c != wc {
			return errors.Wrapf(ErrShapeMismatch, "%s has shape %dx%d, expected %dx%d (features=%d, hidden=%d)",
				names[ii], r, c, wr, wc, numFeatures, numHidden)
		}
	}
	return nil
}

// EqualApprox returns whether all tensors of p and other have the same shape and values
// within tolerance.
func (p *Params) EqualApprox(other *Params, tolerance float64) bool {
	others := other.Tensors()
	for ii, t := range p.Tensors() {
		if !mat.EqualApprox(t, others[ii], tolerance) {
			return false
		}
	}
	return true
}

// String returns the shape of the parameters.
func (p *Params) String() string {
	return fmt.Sprintf("nn.Params(features=%d, hidden=%d)", p.NumFeatures(), p.NumHidden())
}
