package nn

import (
	"bufio"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"io"
	"k8s.io/klog/v2"
	"os"
)

// fileHeader identifies files written by Params.Save.
const fileHeader = "bkgGo/nn/v1\n"

// WriteTo writes the header followed by the four tensors in gonum's binary matrix format.
// It implements io.WriterTo.
func (p *Params) WriteTo(w io.Writer) (n int64, err error) {
	written, err := io.WriteString(w, fileHeader)
	n += int64(written)
	if err != nil {
		return n, errors.Wrap(err, "failed to write parameters header")
	}
	for ii, t := range p.Tensors() {
		written, err = t.MarshalBinaryTo(w)
		n += int64(written)
		if err != nil {
			return n, errors.Wrapf(err, "failed to write parameters tensor #%d", ii)
		}
	}
	return n, nil
}

// ReadParams reads parameters written by Params.WriteTo.
func ReadParams(r io.Reader) (*Params, error) {
	header := make([]byte, len(fileHeader))
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, errors.Wrap(err, "failed to read parameters header")
	}
	if string(header) != fileHeader {
		return nil, errors.Errorf("invalid parameters header %q", header)
	}
	tensors := make([]*mat.Dense, 4)
	for ii := range tensors {
		tensors[ii] = &mat.Dense{}
		if _, err := tensors[ii].UnmarshalBinaryFrom(r); err != nil {
			return nil, errors.Wrapf(err, "failed to read parameters tensor #%d", ii)
		}
	}
	return &Params{W1: tensors[0], W2: tensors[1], B1: tensors[2], B2: tensors[3]}, nil
}

// Save parameters to fileName. An existing file is first renamed with a "~" suffix.
func (p *Params) Save(fileName string) error {
	if fileName == "" {
		klog.Errorf("Parameters not saved, because no file name was specified")
		return nil
	}
	if _, err := os.Stat(fileName); err == nil {
		if err = os.Rename(fileName, fileName+"~"); err != nil {
			return errors.Wrapf(err, "failed to rename %s to %s", fileName, fileName+"~")
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to stat %s", fileName)
	}

	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", fileName)
	}
	w := bufio.NewWriter(f)
	if _, err = p.WriteTo(w); err != nil {
		_ = f.Close()
		return errors.WithMessagef(err, "failed to save %s", fileName)
	}
	if err = w.Flush(); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to save %s", fileName)
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", fileName)
	}
	klog.V(1).Infof("Saved %s to %s", p, fileName)
	return nil
}

// Load parameters from fileName and check they match the architecture given by numFeatures
// and numHidden.
//
// It returns an error wrapping ErrMissingWeights if fileName is empty or doesn't exist, and
// an error wrapping ErrShapeMismatch if the shapes don't match.
func Load(fileName string, numFeatures, numHidden int) (*Params, error) {
	if fileName == "" {
		return nil, errors.Wrap(ErrMissingWeights, "no weights file given")
	}
	f, err := os.Open(fileName)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrMissingWeights, "weights file %s doesn't exist, train it first", fileName)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", fileName)
	}
	defer func() { _ = f.Close() }()

	p, err := ReadParams(bufio.NewReader(f))
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to load %s", fileName)
	}
	if err = p.CheckShape(numFeatures, numHidden); err != nil {
		return nil, errors.WithMessagef(err, "weights in %s", fileName)
	}
	klog.V(1).Infof("Loaded %s from %s", p, fileName)
	return p, nil
}
