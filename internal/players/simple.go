package players

import (
	. "github.com/janpfeifer/bkgGo/internal/state"
	"math/rand/v2"
)

// Random plays uniformly at random among the legal moves.
type Random struct {
	rng *rand.Rand
}

// Assert Random is a Player.
var _ Player = (*Random)(nil)

// NewRandom creates a Random player using rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// SelectMove implements Player.
func (r *Random) SelectMove(_ *Board, moves []Move) (move Move, ok bool) {
	if len(moves) == 0 {
		return nil, false
	}
	return moves[r.rng.IntN(len(moves))], true
}

// String implements fmt.Stringer.
func (r *Random) String() string { return "random" }

// Heuristic plays the race: it picks the move that leaves the largest pip count advantage,
// that is, the opponent's pip count minus its own. Since every full move travels the same
// number of pips, this favors hitting the opponent's blots. Ties keep the first move.
type Heuristic struct{}

// Assert Heuristic is a Player.
var _ Player = Heuristic{}

// PipAdvantage of White: Black's pip count minus White's.
func PipAdvantage(board *Board) int {
	return board.PipCount(Black) - board.PipCount(White)
}

// SelectMove implements Player.
func (Heuristic) SelectMove(board *Board, moves []Move) (move Move, ok bool) {
	bestAdvantage := 0
	for _, m := range moves {
		next := board.Clone()
		next.Apply(m, White)
		advantage := PipAdvantage(next)
		if !ok || advantage > bestAdvantage {
			move, bestAdvantage, ok = m, advantage, true
		}
	}
	return
}

// String implements fmt.Stringer.
func (Heuristic) String() string { return "heuristic" }
