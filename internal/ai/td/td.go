// Package td implements temporal-difference credit assignment for the nn evaluator: the
// episode trace of evaluations and gradients, the eligibility-trace weighted update, and
// the Learner player that records its own decisions.
package td

import (
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/bkgGo/internal/ai/nn"
	"github.com/pkg/errors"
	"strings"
)

// TraceMode selects how the eligibility trace is carried from one step to the next.
type TraceMode int

const (
	// TraceCompounding updates the eligibility as e ← e + discount·e + g: the previous
	// eligibility is kept in full and a discounted copy is added on top.
	TraceCompounding TraceMode = iota

	// TraceStandard is the usual TD(λ) accumulating trace: e ← discount·e + g.
	TraceStandard
)

var traceModeNames = []string{"compounding", "standard"}

// String implements fmt.Stringer.
func (m TraceMode) String() string {
	if m < 0 || int(m) >= len(traceModeNames) {
		return "unknown"
	}
	return traceModeNames[m]
}

// ParseTraceMode converts a name (as returned by TraceMode.String) to a TraceMode.
func ParseTraceMode(name string) (TraceMode, error) {
	for ii, n := range traceModeNames {
		if strings.EqualFold(n, name) {
			return TraceMode(ii), nil
		}
	}
	return TraceCompounding, errors.Errorf("unknown trace mode %q, valid values are %q", name, traceModeNames)
}

// Accumulate the parameter update for one episode.
//
// values holds the evaluation of each recorded decision followed by the realized outcome
// (1 if the learner won, 0 otherwise), so len(values) must be len(grads)+1. For each step t,
// δt = values[t+1] - values[t], the eligibility is updated with grads[t] according to mode,
// and δt·eligibility is added to the update.
//
// like gives the shape of the returned update. An episode without any recorded decisions
// returns all zeros.
func Accumulate(like *nn.Params, values []float64, grads []*nn.Params, discount float64, mode TraceMode) *nn.Params {
	if len(values) != len(grads)+1 {
		exceptions.Panicf("td.Accumulate: got %d values and %d gradients, values must have one extra entry for the outcome",
			len(values), len(grads))
	}
	update := like.ZerosLike()
	eligibility := like.ZerosLike()
	for t, grad := range grads {
		delta := values[t+1] - values[t]
		for ii, e := range eligibility.Tensors() {
			switch mode {
			case TraceCompounding:
				e.Scale(1+discount, e)
			case TraceStandard:
				e.Scale(discount, e)
			default:
				exceptions.Panicf("td.Accumulate: invalid trace mode %d", mode)
			}
			e.Add(e, grad.Tensors()[ii])
		}
		update.AddScaled(delta, eligibility)
	}
	return update
}
