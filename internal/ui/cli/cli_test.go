package cli

import (
	"bytes"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func standardBoard(t *testing.T) *Board {
	layout, err := DefaultLayout(StandardColumns)
	require.NoError(t, err)
	b, err := NewBoard(layout)
	require.NoError(t, err)
	return b
}

func TestRenderBoard(t *testing.T) {
	var buf bytes.Buffer
	ui := NewWithWriter(&buf, false, false)
	b := standardBoard(t)
	b.SetColumn(11, White, 7)
	b.SetColumn(0, NoColor, 0)
	rendered := ui.RenderBoard(b)
	assert.Contains(t, rendered, " 23 22 21")
	assert.Contains(t, rendered, "  0  1  2")
	assert.Contains(t, rendered, " 7 ", "tall stacks show their count")
	assert.Contains(t, rendered, "White (o): bar=0 out=0/15")
	assert.Contains(t, rendered, "Black (x): bar=0 out=0/15 pips=167")
	// White's stack of 7 is drawn as 4 pieces and its count.
	assert.Equal(t, 4+3+5, strings.Count(rendered, " o "), "rendered board:\n%s", rendered)

	ui.PrintBoard(b)
	assert.Contains(t, buf.String(), "pips=167")
}

func TestPrintWinner(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, false, false).PrintWinner(Black)
	assert.Contains(t, buf.String(), "BLACK PLAYER WINS")
}

func TestHuman(t *testing.T) {
	b := standardBoard(t)
	moves := b.LegalMoves(Roll{A: 3, B: 1}, White)
	require.Greater(t, len(moves), 2)

	var buf bytes.Buffer
	ui := NewWithWriter(&buf, false, false)
	human := NewHuman(ui, strings.NewReader("foo\n0\n2\n"))
	move, ok := human.SelectMove(b, moves)
	require.True(t, ok)
	assert.Equal(t, moves[1].String(), move.String())
	assert.Contains(t, buf.String(), "Invalid choice \"foo\"")
	assert.Contains(t, buf.String(), "  1: "+moves[0].String())

	// End of input: passes.
	human = NewHuman(ui, strings.NewReader(""))
	_, ok = human.SelectMove(b, moves)
	assert.False(t, ok)

	// Last line without a newline is still accepted.
	human = NewHuman(ui, strings.NewReader("1"))
	move, ok = human.SelectMove(b, moves)
	require.True(t, ok)
	assert.Equal(t, moves[0].String(), move.String())
}
