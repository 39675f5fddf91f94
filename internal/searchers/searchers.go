// Package searchers defines the interface of the move search algorithms, implemented by
// the greedy (one-ply) and expectimax subpackages.
package searchers

import (
	. "github.com/janpfeifer/bkgGo/internal/state"
)

// NoMove is the index returned by a Searcher when no move is selected.
const NoMove = -1

// Searcher is the interface that any of the search algorithms must adhere to.
//
// The side to move is always White: players seated as Black search on a flipped board.
type Searcher interface {
	// Search returns the index of the chosen move among moves (or NoMove), and its expected value.
	//
	// Optionally, it can also return the value of each of the moves; searchers that don't
	// compute them return nil.
	Search(board *Board, moves []Move) (moveIdx int, value float64, movesValues []float64)

	// String returns a description of the searcher.
	String() string
}
