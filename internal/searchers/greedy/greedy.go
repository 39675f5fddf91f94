// Package greedy implements the one-ply search: each legal move is tried on a clone of the
// board, and the move leading to the best evaluated position is taken.
package greedy

import (
	"fmt"
	"github.com/janpfeifer/bkgGo/internal/ai"
	"github.com/janpfeifer/bkgGo/internal/searchers"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"k8s.io/klog/v2"
)

// Search applies each of the moves for White to a clone of board, and evaluates the result
// with eval. eval returns the value and any extra information E that the caller wants about
// the evaluation (e.g.: activations needed for learning).
//
// A move is only taken if its value is strictly larger than the best so far, starting from
// 0: ties keep the earlier move. It returns searchers.NoMove if moves is empty, or if no
// move is valued above 0 -- this can only happen if the evaluation is degenerate (NaN).
func Search[E any](board *Board, moves []Move, eval func(*Board) (float64, E)) (
	bestIdx int, bestValue float64, best E, values []float64) {
	bestIdx = searchers.NoMove
	values = make([]float64, len(moves))
	for ii, move := range moves {
		next := board.Clone()
		next.Apply(move, White)
		value, extra := eval(next)
		values[ii] = value
		if value > bestValue {
			bestIdx, bestValue, best = ii, value, extra
		}
	}
	if bestIdx == searchers.NoMove && len(moves) > 0 {
		klog.Warningf("greedy.Search: no move valued above 0 among %d legal moves, values=%v", len(moves), values)
	}
	return
}

// Searcher implements searchers.Searcher with Search, using a ValueScorer.
type Searcher struct {
	scorer ai.ValueScorer
}

// Assert Searcher is a searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// New returns a one-ply searcher that evaluates positions with scorer.
func New(scorer ai.ValueScorer) *Searcher {
	return &Searcher{scorer: scorer}
}

// Search implements searchers.Searcher.
func (s *Searcher) Search(board *Board, moves []Move) (moveIdx int, value float64, movesValues []float64) {
	moveIdx, value, _, movesValues = Search(board, moves, func(b *Board) (float64, struct{}) {
		return s.scorer.Score(b), struct{}{}
	})
	return
}

// String implements searchers.Searcher.
func (s *Searcher) String() string {
	return fmt.Sprintf("greedy(%s)", s.scorer)
}
