// Package expectimax implements a multi-ply search over the dice: after each candidate move,
// the value is the expectation, over every distinct roll of the opponent, of the best
// position the opponent can reach, searched recursively to a maximum depth.
package expectimax

import (
	"fmt"
	"github.com/janpfeifer/bkgGo/internal/ai"
	"github.com/janpfeifer/bkgGo/internal/searchers"
	"github.com/janpfeifer/bkgGo/internal/searchers/greedy"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"k8s.io/klog/v2"
	"time"
)

// Searcher implements the searchers.Searcher interface.
// It is used by players.SearcherScorer, along with the scorer, to implement an AI player.
type Searcher struct {
	scorer      ai.ValueScorer
	maxDepth    int
	adversarial bool
	stats       Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// Stats collected during the last search, for monitoring and debugging.
type Stats struct {
	// Nodes is the number of moves applied during the search.
	Nodes int

	// Evals is the number of boards passed to the scorer.
	Evals int

	// Passes counts rolls for which the side to move had no legal move.
	Passes int
}

// DefaultMaxDepth of the search: one ply of the opponent's rolls.
const DefaultMaxDepth = 1

// New returns an expectimax searcher using scorer to evaluate leaf positions.
// There are other optional configurations, see methods Searcher.With...
func New(scorer ai.ValueScorer) *Searcher {
	return &Searcher{scorer: scorer, maxDepth: DefaultMaxDepth}
}

// WithMaxDepth sets the number of plies searched after the candidate move. With 0 the
// candidate positions are evaluated statically, which is the same as the greedy search.
func (s *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	s.maxDepth = max(maxDepth, 0)
	return s
}

// WithAdversarial sets whether the opponent is assumed to pick the move worst for the
// searching player (minimum value). By default, every ply takes the maximum value.
func (s *Searcher) WithAdversarial(adversarial bool) *Searcher {
	s.adversarial = adversarial
	return s
}

// Stats of the last search.
func (s *Searcher) Stats() Stats {
	return s.stats
}

// String implements searchers.Searcher.
func (s *Searcher) String() string {
	mode := "max"
	if s.adversarial {
		mode = "minmax"
	}
	return fmt.Sprintf("expectimax(%s, depth=%d, %s)", s.scorer, s.maxDepth, mode)
}

// Search implements searchers.Searcher. The top level picks the move with greedy.Search,
// where each candidate is valued by the expectation over the opponent's rolls.
func (s *Searcher) Search(board *Board, moves []Move) (moveIdx int, value float64, movesValues []float64) {
	start := time.Now()
	s.stats = Stats{Nodes: len(moves)}
	moveIdx, value, _, movesValues = greedy.Search(board, moves, func(b *Board) (float64, struct{}) {
		return s.expectation(b, s.maxDepth, Black), struct{}{}
	})
	if klog.V(2).Enabled() {
		elapsed := time.Since(start).Seconds()
		klog.Infof("%s: %d moves, value=%.4f, stats=%+v, nodes/s=%.1f",
			s, len(moves), value, s.stats, float64(s.stats.Nodes)/elapsed)
	}
	return
}

// evaluate returns the static value of board.
func (s *Searcher) evaluate(board *Board) float64 {
	s.stats.Evals++
	return s.scorer.Score(board)
}

// expectation returns the value of board, with mover about to roll the dice and depthLeft
// plies still to search.
func (s *Searcher) expectation(board *Board, depthLeft int, mover Color) float64 {
	if depthLeft <= 0 || board.IsOver() {
		return s.evaluate(board)
	}
	minimize := s.adversarial && mover == Black
	var sum float64
	var totalWeight int
	for _, outcome := range DiceOutcomes(board.Die()) {
		totalWeight += outcome.Weight
		sum += float64(outcome.Weight) * s.bestResponse(board, outcome.Roll, depthLeft, mover, minimize)
	}
	return sum / float64(totalWeight)
}

// bestResponse returns the value of the best move for mover with the given roll. If there
// are no legal moves, mover passes and the unchanged board is searched for the opponent.
func (s *Searcher) bestResponse(board *Board, roll Roll, depthLeft int, mover Color, minimize bool) float64 {
	moves := board.LegalMoves(roll, mover)
	if len(moves) == 0 {
		s.stats.Passes++
		return s.expectation(board, depthLeft-1, mover.Opponent())
	}
	s.stats.Nodes += len(moves)
	var best float64
	for ii, move := range moves {
		next := board.Clone()
		next.Apply(move, mover)
		value := s.expectation(next, depthLeft-1, mover.Opponent())
		if ii == 0 || (minimize && value < best) || (!minimize && value > best) {
			best = value
		}
	}
	return best
}
