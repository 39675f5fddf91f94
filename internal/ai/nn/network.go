package nn

import (
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/bkgGo/internal/ai"
	"github.com/janpfeifer/bkgGo/internal/features"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"gonum.org/v1/gonum/mat"
	"math"
)

// Network evaluates boards with borrowed Params.
// It implements ai.ValueScorer.
type Network struct {
	params *Params
	name   string
}

var (
	// Assert Network is an ai.ValueScorer.
	_ ai.ValueScorer = (*Network)(nil)
)

// New returns a Network that evaluates using params. The params are not copied, so updates
// applied by their owner are seen by the Network.
func New(params *Params) *Network {
	return &Network{params: params, name: "nn"}
}

// WithName sets the name returned by String.
func (n *Network) WithName(name string) *Network {
	n.name = name
	return n
}

// Params returns the parameters the Network evaluates with.
func (n *Network) Params() *Params {
	return n.params
}

// String implements ai.ValueScorer.
func (n *Network) String() string {
	return fmt.Sprintf("%s(hidden=%d)", n.name, n.params.NumHidden())
}

// Evaluation holds the intermediary values of evaluating one board, needed to later
// compute the gradient.
type Evaluation struct {
	Features []float64
	Hidden   *mat.Dense
	Value    float64
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Forward computes hidden = σ(W1·x + b1) and value = σ(W2·hidden + b2).
func (n *Network) Forward(x []float64) (hidden *mat.Dense, value float64) {
	p := n.params
	if len(x) != p.NumFeatures() {
		exceptions.Panicf("nn.Forward: features dimension is %d, but network expects %d", len(x), p.NumFeatures())
	}
	input := mat.NewDense(len(x), 1, x)
	hidden = &mat.Dense{}
	hidden.Mul(p.W1, input)
	hidden.Add(hidden, p.B1)
	hidden.Apply(func(_, _ int, v float64) float64 { return sigmoid(v) }, hidden)

	var logit mat.Dense
	logit.Mul(p.W2, hidden)
	value = sigmoid(logit.At(0, 0) + p.B2.At(0, 0))
	return
}

// Evaluate extracts the features of board and runs Forward.
func (n *Network) Evaluate(board *Board) Evaluation {
	x := features.ForBoard(board)
	hidden, value := n.Forward(x)
	return Evaluation{Features: x, Hidden: hidden, Value: value}
}

// Score implements ai.ValueScorer.
func (n *Network) Score(board *Board) float64 {
	_, value := n.Forward(features.ForBoard(board))
	return value
}

// Gradient returns the partial derivatives of the evaluation's value with respect to each of
// the parameters:
//
//	outputError = v(1-v)
//	hiddenError = W2ᵀ·outputError ∘ hidden ∘ (1-hidden)
//	dW1 = hiddenError·xᵀ, dW2 = outputError·hiddenᵀ, db1 = hiddenError, db2 = outputError
func (n *Network) Gradient(ev Evaluation) *Params {
	p := n.params
	v := ev.Value
	outputError := v * (1 - v)

	hiddenError := &mat.Dense{}
	hiddenError.Scale(outputError, p.W2.T())
	hiddenError.Apply(func(i, _ int, e float64) float64 {
		h := ev.Hidden.At(i, 0)
		return e * h * (1 - h)
	}, hiddenError)

	input := mat.NewDense(len(ev.Features), 1, ev.Features)
	grad := &Params{
		W1: &mat.Dense{},
		W2: &mat.Dense{},
		B1: hiddenError,
		B2: mat.NewDense(1, 1, []float64{outputError}),
	}
	grad.W1.Mul(hiddenError, input.T())
	grad.W2.Scale(outputError, ev.Hidden.T())
	return grad
}
