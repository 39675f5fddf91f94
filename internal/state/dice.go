package state

import (
	"fmt"
	"math/rand/v2"
)

// Roll of two dice.
type Roll struct {
	A, B int
}

// RollDice rolls two independent dice with the given number of faces.
func RollDice(rng *rand.Rand, die int) Roll {
	return Roll{A: rng.IntN(die) + 1, B: rng.IntN(die) + 1}
}

// IsDouble returns whether both dice show the same face.
func (r Roll) IsDouble() bool {
	return r.A == r.B
}

// Sequences returns the orders in which the dice can be played: doubles are played four
// times, other rolls in either order.
func (r Roll) Sequences() [][]int {
	if r.IsDouble() {
		return [][]int{{r.A, r.A, r.A, r.A}}
	}
	return [][]int{{r.A, r.B}, {r.B, r.A}}
}

// String returns the roll as "a-b".
func (r Roll) String() string {
	return fmt.Sprintf("%d-%d", r.A, r.B)
}

// Outcome is a distinct roll, disregarding the order of the dice, and its weight: the number
// of ordered rolls that produce it.
type Outcome struct {
	Roll
	Weight int
}

// DiceOutcomes enumerates the distinct outcomes of rolling two dice with the given number
// of faces: die doubles with weight 1 and die*(die-1)/2 pairs with weight 2. The weights
// add up to die*die. For six-faced dice that is 21 outcomes.
func DiceOutcomes(die int) []Outcome {
	outcomes := make([]Outcome, 0, die*(die+1)/2)
	for a := 1; a <= die; a++ {
		for b := a; b <= die; b++ {
			weight := 2
			if a == b {
				weight = 1
			}
			outcomes = append(outcomes, Outcome{Roll: Roll{A: a, B: b}, Weight: weight})
		}
	}
	return outcomes
}
