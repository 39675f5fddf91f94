package players

import (
	"github.com/janpfeifer/bkgGo/internal/ai"
	"github.com/janpfeifer/bkgGo/internal/parameters"
	"github.com/janpfeifer/bkgGo/internal/searchers/greedy"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand/v2"
	"testing"
)

// blotBoard has two White pieces at column 0 and a Black blot at column 3.
func blotBoard(t *testing.T) *Board {
	layout, err := DefaultLayout(StandardColumns)
	require.NoError(t, err)
	b, err := NewBoard(layout)
	require.NoError(t, err)
	for ii := range b.NumColumns() {
		b.SetColumn(ii, NoColor, 0)
	}
	b.SetColumn(0, White, 2)
	b.SetColumn(3, Black, 1)
	b.SetColumn(20, Black, 1)
	b.SetOut(White, b.NumPieces(White)-2)
	b.SetOut(Black, b.NumPieces(Black)-2)
	require.NoError(t, b.Check())
	return b
}

type fixedModule struct {
	player Player
}

func (m fixedModule) NewPlayer(_ int, params parameters.Params) (Player, error) {
	_, err := parameters.PopParamOr(params, "known", 0)
	return m.player, err
}

func TestNew(t *testing.T) {
	RegisterModule("fixed", fixedModule{player: Heuristic{}})
	assert.Contains(t, Modules(), "fixed")

	p, err := New(StandardColumns, "fixed,known=3")
	require.NoError(t, err)
	assert.Equal(t, Heuristic{}, p)

	_, err = New(StandardColumns, "fixed,unknown=3")
	assert.ErrorContains(t, err, "unknown")
	_, err = New(StandardColumns, "fixed,known=three")
	assert.Error(t, err)
	_, err = New(StandardColumns, "nonexistent")
	assert.Error(t, err)
}

func TestRandom(t *testing.T) {
	b := blotBoard(t)
	moves := b.LegalMoves(Roll{A: 3, B: 1}, White)
	require.Greater(t, len(moves), 1)
	p := NewRandom(rand.New(rand.NewPCG(42, 0)))
	seen := make(map[string]bool)
	for range 100 {
		move, ok := p.SelectMove(b, moves)
		require.True(t, ok)
		seen[move.String()] = true
	}
	assert.Greater(t, len(seen), 1)

	_, ok := p.SelectMove(b, nil)
	assert.False(t, ok)
}

func TestHeuristicHits(t *testing.T) {
	b := blotBoard(t)
	moves := b.LegalMoves(Roll{A: 3, B: 1}, White)
	move, ok := Heuristic{}.SelectMove(b, moves)
	require.True(t, ok)
	b.Apply(move, White)
	assert.Equal(t, 1, b.Bar(Black), "heuristic should hit the blot, but played %s", move)

	_, ok = Heuristic{}.SelectMove(b, nil)
	assert.False(t, ok)
}

func TestSearcherScorer(t *testing.T) {
	b := blotBoard(t)
	moves := b.LegalMoves(Roll{A: 3, B: 1}, White)
	scorer := ai.ScorerFunc{Name: "pips", Fn: func(b *Board) float64 {
		return 0.5 + float64(PipAdvantage(b))/1000
	}}
	p := NewSearcherScorer(greedy.New(scorer), scorer)
	move, ok := p.SelectMove(b, moves)
	require.True(t, ok)
	b.Apply(move, White)
	assert.Equal(t, 1, b.Bar(Black))
	assert.Equal(t, "AI(greedy(pips))", p.String())
}
