package greedy

import (
	"github.com/janpfeifer/bkgGo/internal/ai"
	"github.com/janpfeifer/bkgGo/internal/searchers"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func openingMoves(t *testing.T) (*Board, []Move) {
	layout, err := DefaultLayout(StandardColumns)
	require.NoError(t, err)
	board, err := NewBoard(layout)
	require.NoError(t, err)
	moves := board.LegalMoves(Roll{A: 3, B: 1}, White)
	require.NotEmpty(t, moves)
	return board, moves
}

func TestSearchPicksBest(t *testing.T) {
	board, moves := openingMoves(t)
	// Score prefers the lowest White pip count, and among those the highest opponent's.
	eval := func(b *Board) (float64, int) {
		v := 1.0 / float64(1+b.PipCount(White)-b.PipCount(Black)+1000)
		return v, b.PipCount(White)
	}
	bestIdx, bestValue, pips, values := Search(board, moves, eval)
	require.NotEqual(t, searchers.NoMove, bestIdx)
	require.Len(t, values, len(moves))
	for ii, v := range values {
		assert.LessOrEqual(t, v, bestValue, "move #%d (%s)", ii, moves[ii])
	}
	assert.Equal(t, 167-4, pips)

	// The original board is not modified.
	assert.Equal(t, 167, board.PipCount(White))
}

func TestSearchTiesKeepFirst(t *testing.T) {
	board, moves := openingMoves(t)
	bestIdx, bestValue, _, _ := Search(board, moves, func(*Board) (float64, struct{}) { return 0.5, struct{}{} })
	assert.Equal(t, 0, bestIdx)
	assert.Equal(t, 0.5, bestValue)
}

func TestSearchNoMove(t *testing.T) {
	board, moves := openingMoves(t)
	bestIdx, _, _, values := Search(board, nil, func(*Board) (float64, struct{}) { return 1, struct{}{} })
	assert.Equal(t, searchers.NoMove, bestIdx)
	assert.Empty(t, values)

	// Degenerate evaluations never beat the initial threshold.
	bestIdx, _, _, _ = Search(board, moves, func(*Board) (float64, struct{}) { return math.NaN(), struct{}{} })
	assert.Equal(t, searchers.NoMove, bestIdx)
}

func TestSearcher(t *testing.T) {
	board, moves := openingMoves(t)
	target := moves[len(moves)-1]
	targetKey := func() string {
		b := board.Clone()
		b.Apply(target, White)
		return b.Key()
	}()
	scorer := ai.ScorerFunc{Name: "target", Fn: func(b *Board) float64 {
		if b.Key() == targetKey {
			return 0.9
		}
		return 0.1
	}}
	s := New(scorer)
	moveIdx, value, values := s.Search(board, moves)
	assert.Equal(t, len(moves)-1, moveIdx)
	assert.Equal(t, 0.9, value)
	assert.Len(t, values, len(moves))
	assert.Equal(t, "greedy(target)", s.String())
}
