package state_test

import (
	. "github.com/janpfeifer/bkgGo/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand/v2"
	"testing"
)

func standardBoard(t *testing.T) *Board {
	layout, err := DefaultLayout(StandardColumns)
	require.NoError(t, err)
	b, err := NewBoard(layout)
	require.NoError(t, err)
	return b
}

// buildBoard creates a standard sized board with only the given stacks: pieces not placed are
// considered borne off.
func buildBoard(t *testing.T, white, black map[int]int) *Board {
	b := standardBoard(t)
	for ii := range b.NumColumns() {
		b.SetColumn(ii, NoColor, 0)
	}
	for color, stacks := range map[Color]map[int]int{White: white, Black: black} {
		placed := 0
		for column, count := range stacks {
			b.SetColumn(column, color, count)
			placed += count
		}
		b.SetOut(color, b.NumPieces(color)-placed)
	}
	require.NoError(t, b.Check())
	return b
}

func TestDefaultLayout(t *testing.T) {
	b := standardBoard(t)
	assert.Equal(t, 15, b.NumPieces(White))
	assert.Equal(t, 15, b.NumPieces(Black))
	assert.Equal(t, Column{White, 2}, b.Column(0))
	assert.Equal(t, Column{White, 5}, b.Column(11))
	assert.Equal(t, Column{White, 3}, b.Column(16))
	assert.Equal(t, Column{White, 5}, b.Column(18))
	assert.Equal(t, Column{Black, 2}, b.Column(23))
	assert.Equal(t, Column{Black, 5}, b.Column(12))
	assert.Equal(t, Column{Black, 3}, b.Column(7))
	assert.Equal(t, Column{Black, 5}, b.Column(5))
	assert.NoError(t, b.Check())
	assert.False(t, b.IsOver())
	assert.Equal(t, b.PipCount(White), b.PipCount(Black))
	assert.Equal(t, 167, b.PipCount(White))

	for _, numColumns := range []int{8, 12, 16, 20, 32, 48} {
		layout, err := DefaultLayout(numColumns)
		require.NoErrorf(t, err, "numColumns=%d", numColumns)
		b, err := NewBoard(layout)
		require.NoError(t, err)
		assert.NoError(t, b.Check())
		assert.Equal(t, numColumns, b.NumColumns())
	}
}

func TestInvalidLayout(t *testing.T) {
	_, err := DefaultLayout(10)
	assert.Error(t, err)
	_, err = DefaultLayout(4)
	assert.Error(t, err)

	layout, err := DefaultLayout(StandardColumns)
	require.NoError(t, err)
	layout.Die = 0
	_, err = NewBoard(layout)
	assert.Error(t, err)

	layout.Die = DefaultDie
	layout.Points = []Point{{0, 2}, {23, 1}}
	_, err = NewBoard(layout)
	assert.Error(t, err, "column 23 mirrors column 0")
}

func TestFlip(t *testing.T) {
	b := standardBoard(t)
	b.SetColumn(0, White, 1)
	b.SetBar(White, 1)
	b.SetOut(Black, 3)
	before := b.Key()

	restore := b.Flip()
	assert.True(t, b.IsFlipped())
	assert.Equal(t, Column{Black, 1}, b.Column(23))
	assert.Equal(t, Column{White, 2}, b.Column(0))
	assert.Equal(t, 0, b.Bar(White))
	assert.Equal(t, 1, b.Bar(Black))
	assert.Equal(t, 3, b.Out(White))
	assert.Equal(t, 0, b.Out(Black))

	restore()
	restore() // Second call is a no-op.
	assert.False(t, b.IsFlipped())
	assert.Equal(t, before, b.Key())
}

func TestClone(t *testing.T) {
	b := standardBoard(t)
	clone := b.Clone()
	clone.Apply(Move{{From: 0, To: 6, Die: 6}}, White)
	assert.Equal(t, Column{White, 2}, b.Column(0))
	assert.Equal(t, Column{White, 1}, clone.Column(0))
	assert.NotEqual(t, b.Key(), clone.Key())
}

func TestLegalMovesOpening(t *testing.T) {
	b := standardBoard(t)
	moves := b.LegalMoves(Roll{6, 5}, White)
	require.NotEmpty(t, moves)
	assert.Contains(t, moves, Move{{From: 0, To: 6, Die: 6}, {From: 6, To: 11, Die: 5}})

	keys := make(map[string]bool)
	for _, move := range moves {
		assert.Len(t, move, 2, "move %s should use both dice", move)
		next := b.Clone()
		next.Apply(move, White)
		require.NoError(t, next.Check())
		assert.Falsef(t, keys[next.Key()], "move %s duplicates a previous position", move)
		keys[next.Key()] = true
	}

	// Doubles play four steps.
	for _, move := range b.LegalMoves(Roll{3, 3}, Black) {
		assert.Len(t, move, 4)
	}
}

func TestBarMustEnter(t *testing.T) {
	b := standardBoard(t)
	b.SetColumn(0, White, 1)
	b.SetBar(White, 1)
	require.NoError(t, b.Check())
	moves := b.LegalMoves(Roll{3, 4}, White)
	require.NotEmpty(t, moves)
	for _, move := range moves {
		assert.Equal(t, BarPos, move[0].From, "move %s", move)
	}

	// Entry blocked.
	b.SetColumn(0, Black, 2)
	b.SetBar(White, 2)
	assert.Empty(t, b.LegalMoves(Roll{1, 1}, White))
}

func TestHit(t *testing.T) {
	b := buildBoard(t, map[int]int{0: 1}, map[int]int{3: 1, 20: 2})
	moves := b.LegalMoves(Roll{3, 3}, White)
	require.Len(t, moves, 1)
	assert.Equal(t, "0/3 3/6 6/9 9/12", moves[0].String())
	b.Apply(moves[0], White)
	assert.Equal(t, 1, b.Bar(Black))
	assert.Equal(t, Column{White, 1}, b.Column(12))
	assert.True(t, b.Column(3).IsEmpty())
	assert.NoError(t, b.Check())
}

func TestBearOff(t *testing.T) {
	// Only one die can be used: the larger one must be.
	b := buildBoard(t, map[int]int{23: 1}, map[int]int{0: 2})
	moves := b.LegalMoves(Roll{2, 1}, White)
	require.Len(t, moves, 1)
	assert.Equal(t, Move{{From: 23, To: OffPos, Die: 2}}, moves[0])
	b.Apply(moves[0], White)
	assert.True(t, b.IsOver())

	// No bearing off while a piece is outside the home board.
	b = buildBoard(t, map[int]int{17: 1, 23: 1}, map[int]int{0: 2})
	moves = b.LegalMoves(Roll{1, 1}, White)
	require.NotEmpty(t, moves)
	for _, move := range moves {
		assert.Equal(t, 17, move[0].From, "move %s", move)
	}

	// Overshooting bears off only the farthest-back piece.
	b = buildBoard(t, map[int]int{20: 1, 22: 1}, map[int]int{0: 2})
	for _, move := range b.LegalMoves(Roll{6, 6}, White) {
		assert.Equal(t, 20, move[0].From, "move %s", move)
	}

	// Black bears off moving towards column 0.
	b = buildBoard(t, map[int]int{23: 2}, map[int]int{1: 1})
	moves = b.LegalMoves(Roll{2, 4}, Black)
	require.Len(t, moves, 1)
	assert.Equal(t, OffPos, moves[0][0].To)
}

func TestDiceOutcomes(t *testing.T) {
	outcomes := DiceOutcomes(DefaultDie)
	assert.Len(t, outcomes, 21)
	var total, doubles int
	for _, outcome := range outcomes {
		total += outcome.Weight
		if outcome.IsDouble() {
			doubles++
			assert.Equal(t, 1, outcome.Weight)
		} else {
			assert.Equal(t, 2, outcome.Weight)
		}
	}
	assert.Equal(t, 6, doubles)
	assert.Equal(t, 6*1+15*2, total)

	rng := rand.New(rand.NewPCG(42, 0))
	for range 100 {
		roll := RollDice(rng, DefaultDie)
		assert.True(t, roll.A >= 1 && roll.A <= DefaultDie)
		assert.True(t, roll.B >= 1 && roll.B <= DefaultDie)
	}
}

func TestRandomGamesKeepInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	b := standardBoard(t)
	color := White
	for turn := 0; !b.IsOver(); turn++ {
		require.Less(t, turn, 10_000, "game should finish")
		moves := b.LegalMoves(RollDice(rng, b.Die()), color)
		if len(moves) > 0 {
			b.Apply(moves[rng.IntN(len(moves))], color)
		}
		require.NoError(t, b.Check())
		color = color.Opponent()
	}
}
