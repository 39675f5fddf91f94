package searchers

import (
	"fmt"
	"github.com/gomlx/exceptions"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"k8s.io/klog/v2"
	"math"
	"math/rand/v2"
	"slices"
)

// NewRandomizedSearcher adds randomness to the move taken by an existing Searcher.
// Args:
//
//   - searcher: Baseline Searcher. It must return the value of each move.
//   - randomness (>=0): the move is drawn from a softmax of the values divided by randomness.
//     The larger the value the more it leads to randomness (exploration), and lower values
//     lead to "pick the best move" (exploitation), with zero meaning no randomness.
//   - rng: random number generator used to draw the move.
func NewRandomizedSearcher(searcher Searcher, randomness float64, rng *rand.Rand) Searcher {
	if randomness <= 0 {
		// Without randomness, simply return the original Searcher.
		return searcher
	}
	return &randomizedSearcher{searcher: searcher, randomness: randomness, rng: rng}
}

// randomizedSearcher is a meta Searcher, that introduces randomness to its choices.
type randomizedSearcher struct {
	searcher   Searcher
	randomness float64
	rng        *rand.Rand
}

// Assert randomizedSearcher is a Searcher.
var _ Searcher = &randomizedSearcher{}

// Search implements the Searcher interface.
func (rs *randomizedSearcher) Search(board *Board, moves []Move) (moveIdx int, value float64, movesValues []float64) {
	moveIdx, value, movesValues = rs.searcher.Search(board, moves)

	// If the searcher doesn't return values for the different moves, or if there is only one
	// move possible, we don't add any randomness.
	if moveIdx == NoMove || len(movesValues) <= 1 {
		return
	}
	if len(movesValues) != len(moves) {
		exceptions.Panicf("randomizedSearcher: Searcher returned %d movesValues, but there are %d moves!?", len(movesValues), len(moves))
	}

	logits := make([]float64, len(movesValues))
	for ii, v := range movesValues {
		logits[ii] = v / rs.randomness
	}
	probabilities := softmax(logits)

	chance := rs.rng.Float64()
	for idx, p := range probabilities {
		if chance > p {
			chance -= p
			continue
		}
		if klog.V(2).Enabled() && idx != moveIdx {
			klog.Infof("randomizedSearcher selection: move=%s (value=%.3f) instead of %s (value=%.3f)",
				moves[idx], movesValues[idx], moves[moveIdx], value)
		}
		return idx, movesValues[idx], movesValues
	}
	// Only reachable through rounding errors: keep the base searcher's choice.
	return
}

// String implements Searcher.
func (rs *randomizedSearcher) String() string {
	return fmt.Sprintf("%s+randomness=%g", rs.searcher, rs.randomness)
}

func softmax(values []float64) (probs []float64) {
	probs = make([]float64, len(values))
	var sum float64

	// Subtracting maxValue keeps the probabilities the same, with smaller exponentials.
	maxValue := slices.Max(values)
	for ii, value := range values {
		probs[ii] = math.Exp(value - maxValue)
		sum += probs[ii]
	}
	for ii := range probs {
		probs[ii] /= sum
	}
	return
}
