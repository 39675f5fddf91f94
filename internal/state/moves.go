package state

import (
	"fmt"
	"github.com/gomlx/exceptions"
	"strings"
)

const (
	// BarPos is the Step.From of a piece entering from the bar.
	BarPos = -1

	// OffPos is the Step.To of a piece being borne off.
	OffPos = -2
)

// Step moves one piece by the value of one die.
type Step struct {
	From, To int
	Die      int
}

// String returns the step as "from/to", with "bar" and "off" for the special positions.
func (s Step) String() string {
	from := fmt.Sprint(s.From)
	if s.From == BarPos {
		from = "bar"
	}
	to := fmt.Sprint(s.To)
	if s.To == OffPos {
		to = "off"
	}
	return from + "/" + to
}

// Move is the sequence of steps a player takes in one turn.
type Move []Step

// String returns the steps separated by spaces.
func (m Move) String() string {
	if len(m) == 0 {
		return "pass"
	}
	parts := make([]string, len(m))
	for ii, s := range m {
		parts[ii] = s.String()
	}
	return strings.Join(parts, " ")
}

// direction in which pieces of the color move.
func direction(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// entryColumn is where a piece of color c enters from the bar with the given die.
func (b *Board) entryColumn(c Color, die int) int {
	if c == White {
		return die - 1
	}
	return b.numColumns - die
}

// inHome returns whether column ii is in the home board of color c.
func (b *Board) inHome(c Color, ii int) bool {
	home := b.numColumns / 4
	if c == White {
		return ii >= b.numColumns-home
	}
	return ii < home
}

// allHome returns whether every piece of color c still in play is in its home board.
func (b *Board) allHome(c Color) bool {
	if b.bar[c] > 0 {
		return false
	}
	for ii, col := range b.grid {
		if col.Has(c) && !b.inHome(c, ii) {
			return false
		}
	}
	return true
}

// isBlocked returns whether color c can't land on column ii.
func (b *Board) isBlocked(c Color, ii int) bool {
	col := b.grid[ii]
	return col.Count >= 2 && col.Color != c
}

// hasPiecesBehind returns whether color c has pieces farther from bearing off than column ii.
func (b *Board) hasPiecesBehind(c Color, ii int) bool {
	dir := direction(c)
	for jj := ii - dir; jj >= 0 && jj < b.numColumns; jj -= dir {
		if b.grid[jj].Has(c) {
			return true
		}
	}
	return false
}

// stepTarget returns where a piece of color c at from lands using die, and whether the step
// is legal.
func (b *Board) stepTarget(c Color, from, die int) (to int, ok bool) {
	if from == BarPos {
		to = b.entryColumn(c, die)
		return to, !b.isBlocked(c, to)
	}
	if !b.grid[from].Has(c) {
		return 0, false
	}
	to = from + direction(c)*die
	if to < 0 || to >= b.numColumns {
		if !b.allHome(c) {
			return 0, false
		}
		exact := to == b.numColumns || to == -1
		if !exact && b.hasPiecesBehind(c, from) {
			return 0, false
		}
		return OffPos, true
	}
	return to, !b.isBlocked(c, to)
}

// applyStep moves one piece. It panics if the step is not legal for color c.
func (b *Board) applyStep(c Color, s Step) {
	if to, ok := b.stepTarget(c, s.From, s.Die); !ok || to != s.To {
		exceptions.Panicf("invalid step %s (die %d) for %s on board %s", s, s.Die, c, b)
	}
	if s.From == BarPos {
		b.bar[c]--
	} else {
		b.grid[s.From].Count--
		if b.grid[s.From].Count == 0 {
			b.grid[s.From].Color = NoColor
		}
	}
	if s.To == OffPos {
		b.out[c]++
		return
	}
	target := &b.grid[s.To]
	if target.Count == 1 && target.Color != c {
		// Hit: the single opposing piece goes to the bar.
		b.bar[target.Color]++
		target.Count = 0
	}
	target.Color = c
	target.Count++
}

// Apply executes the move for the color.
// It panics if any of the steps is not legal.
func (b *Board) Apply(move Move, c Color) {
	for _, s := range move {
		b.applyStep(c, s)
	}
}

// candidateMove is a complete sequence of steps found during move generation.
type candidateMove struct {
	move    Move
	key     string
	maxDie  int
	numDice int
}

// LegalMoves returns all the distinct moves color c can take with the given roll. It
// returns nil if no die can be used, in which case the player passes.
//
// Only moves that use the maximum possible number of dice are legal. If only one die of
// a non-double roll can be used, the larger one must be used when possible. Moves that lead
// to the same position are returned only once.
func (b *Board) LegalMoves(roll Roll, c Color) []Move {
	var candidates []candidateMove
	for _, dice := range roll.Sequences() {
		b.searchMoves(c, dice, nil, &candidates)
	}
	maxDice, maxDie := 0, 0
	for _, cand := range candidates {
		maxDice = max(maxDice, cand.numDice)
	}
	if maxDice == 0 {
		return nil
	}
	if maxDice == 1 {
		for _, cand := range candidates {
			if cand.numDice == 1 {
				maxDie = max(maxDie, cand.maxDie)
			}
		}
	}
	seen := make(map[string]bool, len(candidates))
	moves := make([]Move, 0, len(candidates))
	for _, cand := range candidates {
		if cand.numDice != maxDice || (maxDice == 1 && cand.maxDie != maxDie) || seen[cand.key] {
			continue
		}
		seen[cand.key] = true
		moves = append(moves, cand.move)
	}
	return moves
}

// searchMoves recursively tries every piece with the next die of the sequence, and records
// the sequences of steps that can't be extended further.
func (b *Board) searchMoves(c Color, dice []int, steps Move, candidates *[]candidateMove) {
	extended := false
	if len(dice) > 0 {
		die := dice[0]
		tryFrom := func(from int) {
			to, ok := b.stepTarget(c, from, die)
			if !ok {
				return
			}
			extended = true
			next := b.Clone()
			step := Step{From: from, To: to, Die: die}
			next.applyStep(c, step)
			newSteps := make(Move, len(steps), len(steps)+1)
			copy(newSteps, steps)
			newSteps = append(newSteps, step)
			next.searchMoves(c, dice[1:], newSteps, candidates)
		}
		if b.bar[c] > 0 {
			tryFrom(BarPos)
		} else {
			for ii := range b.grid {
				tryFrom(ii)
			}
		}
	}
	if extended {
		return
	}
	cand := candidateMove{move: steps, key: b.Key(), numDice: len(steps)}
	for _, s := range steps {
		cand.maxDie = max(cand.maxDie, s.Die)
	}
	*candidates = append(*candidates, cand)
}
