package td

import (
	"fmt"
	"github.com/janpfeifer/bkgGo/internal/ai/nn"
	"github.com/janpfeifer/bkgGo/internal/players"
	"github.com/janpfeifer/bkgGo/internal/searchers"
	"github.com/janpfeifer/bkgGo/internal/searchers/greedy"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"k8s.io/klog/v2"
)

// Trace is the record of one episode: the evaluation of the position chosen at each decision
// point, and the gradient of its value.
type Trace struct {
	evals []nn.Evaluation
	grads []*nn.Params
}

// Record appends the evaluation ev, computed with net, and its gradient.
func (t *Trace) Record(net *nn.Network, ev nn.Evaluation) {
	t.evals = append(t.evals, ev)
	t.grads = append(t.grads, net.Gradient(ev))
}

// Len returns the number of recorded decisions.
func (t *Trace) Len() int {
	return len(t.evals)
}

// Values returns the recorded values followed by outcome.
func (t *Trace) Values(outcome float64) []float64 {
	values := make([]float64, 0, len(t.evals)+1)
	for _, ev := range t.evals {
		values = append(values, ev.Value)
	}
	return append(values, outcome)
}

// Update returns the parameter update for the recorded episode, ended with outcome.
// See Accumulate.
func (t *Trace) Update(like *nn.Params, outcome, discount float64, mode TraceMode) *nn.Params {
	return Accumulate(like, t.Values(outcome), t.grads, discount, mode)
}

// Reset clears the trace for a new episode.
func (t *Trace) Reset() {
	t.evals = t.evals[:0]
	t.grads = t.grads[:0]
}

// Learner is a players.Player that picks its moves with the one-ply greedy search over the
// nn evaluator, and records each chosen evaluation in its Trace.
//
// It borrows the parameters: the owner applies the updates returned by Update.
type Learner struct {
	net      *nn.Network
	trace    Trace
	discount float64
	mode     TraceMode
}

// Assert Learner is a players.Player.
var _ players.Player = (*Learner)(nil)

// NewLearner returns a Learner evaluating with params. See also WithTraceMode.
func NewLearner(params *nn.Params, discount float64) *Learner {
	return &Learner{
		net:      nn.New(params).WithName("learner"),
		discount: discount,
	}
}

// WithTraceMode sets how eligibility is carried. Default is TraceCompounding.
func (l *Learner) WithTraceMode(mode TraceMode) *Learner {
	l.mode = mode
	return l
}

// Network used by the learner.
func (l *Learner) Network() *nn.Network {
	return l.net
}

// Trace recorded so far in the current episode.
func (l *Learner) Trace() *Trace {
	return &l.trace
}

// SelectMove implements players.Player.
func (l *Learner) SelectMove(board *Board, moves []Move) (move Move, ok bool) {
	moveIdx, value, ev, _ := greedy.Search(board, moves, func(b *Board) (float64, nn.Evaluation) {
		ev := l.net.Evaluate(b)
		return ev.Value, ev
	})
	if moveIdx == searchers.NoMove {
		return nil, false
	}
	l.trace.Record(l.net, ev)
	if klog.V(2).Enabled() {
		klog.Infof("%s plays %s, value=%.4f", l, moves[moveIdx], value)
	}
	return moves[moveIdx], true
}

// Update returns the parameter update for the episode that just ended with outcome
// (1 for a win, 0 for a loss), and resets the trace for the next episode.
func (l *Learner) Update(outcome float64) *nn.Params {
	update := l.trace.Update(l.net.Params(), outcome, l.discount, l.mode)
	if klog.V(1).Enabled() {
		klog.Infof("%s: episode with %d decisions ended with outcome %g", l, l.trace.Len(), outcome)
	}
	l.trace.Reset()
	return update
}

// String implements fmt.Stringer.
func (l *Learner) String() string {
	return fmt.Sprintf("td.Learner(%s, discount=%g, trace=%s)", l.net, l.discount, l.mode)
}
