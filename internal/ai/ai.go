// Package ai (Artificial Intelligence) defines the interfaces evaluators and searchers
// share.
package ai

import (
	. "github.com/janpfeifer/bkgGo/internal/state"
)

// ValueScorer returns a score (value) for a board, from White's perspective: the
// probability White wins. Players seated as Black see the board flipped, so their own
// pieces are White's.
type ValueScorer interface {
	Score(board *Board) float64
	String() string
}

// ScorerFunc adapts a function to a ValueScorer.
type ScorerFunc struct {
	Name string
	Fn   func(board *Board) float64
}

// Assert ScorerFunc is a ValueScorer.
var _ ValueScorer = ScorerFunc{}

// Score implements ValueScorer.
func (s ScorerFunc) Score(board *Board) float64 {
	return s.Fn(board)
}

// String implements ValueScorer.
func (s ScorerFunc) String() string {
	return s.Name
}
