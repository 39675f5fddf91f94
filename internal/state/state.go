// Package state implements the rules of the race game: board, dice, legal moves and the
// perspective flip used to let one evaluator play both colors.
package state

import (
	"fmt"
	"github.com/pkg/errors"
	"strings"
)

// Color of the pieces of a player. White moves towards higher column indices, Black
// towards lower ones.
type Color uint8

const (
	White Color = iota
	Black

	// NoColor marks an empty column.
	NoColor
)

// NumColors playing the game.
const NumColors = 2

var (
	// Colors enumerates the playing colors, in the order used by features and tallies.
	Colors = [NumColors]Color{White, Black}

	colorNames   = [...]string{"White", "Black", "None"}
	colorSymbols = [...]string{"o", "x", "."}
)

// String returns the color name.
func (c Color) String() string {
	if int(c) >= len(colorNames) {
		return fmt.Sprintf("Color(%d)", c)
	}
	return colorNames[c]
}

// Symbol returns the one letter symbol used to print pieces of the color.
func (c Color) Symbol() string {
	return colorSymbols[c]
}

// Opponent returns the other playing color.
func (c Color) Opponent() Color {
	return 1 - c
}

// Column of the board: all pieces stacked on a column share the same color, so the stack is
// represented by its color and height.
type Column struct {
	Color Color
	Count int
}

// IsEmpty returns whether there are no pieces in the column.
func (col Column) IsEmpty() bool {
	return col.Count == 0
}

// Has returns whether the column is non-empty and its top piece is of the given color.
func (col Column) Has(color Color) bool {
	return col.Count > 0 && col.Color == color
}

// Board holds the full game state. Clone it before exploring hypothetical moves: the
// clones share nothing with the original.
type Board struct {
	numColumns, die int
	grid            []Column
	bar, out        [NumColors]int
	numPieces       [NumColors]int
	flipped         bool
}

// NewBoard creates a board in the starting position given by layout.
func NewBoard(layout Layout) (*Board, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	b := &Board{
		numColumns: layout.NumColumns,
		die:        layout.Die,
		grid:       make([]Column, layout.NumColumns),
	}
	for ii := range b.grid {
		b.grid[ii].Color = NoColor
	}
	for _, point := range layout.Points {
		b.grid[point.Column] = Column{Color: White, Count: point.Count}
		b.grid[b.mirror(point.Column)] = Column{Color: Black, Count: point.Count}
		b.numPieces[White] += point.Count
		b.numPieces[Black] += point.Count
	}
	return b, nil
}

// Clone makes a deep copy of the board.
func (b *Board) Clone() *Board {
	newB := &Board{}
	*newB = *b
	newB.grid = make([]Column, len(b.grid))
	copy(newB.grid, b.grid)
	return newB
}

// NumColumns in the board.
func (b *Board) NumColumns() int { return b.numColumns }

// Die returns the number of faces of each die.
func (b *Board) Die() int { return b.die }

// Column returns the column at index ii.
func (b *Board) Column(ii int) Column { return b.grid[ii] }

// Bar returns the number of pieces of the color waiting on the bar.
func (b *Board) Bar(c Color) int { return b.bar[c] }

// Out returns the number of pieces of the color already borne off.
func (b *Board) Out(c Color) int { return b.out[c] }

// NumPieces returns the total number of pieces of the color: on the grid, bar or borne off.
func (b *Board) NumPieces(c Color) int { return b.numPieces[c] }

// IsFlipped returns whether the board is currently seen from Black's perspective.
func (b *Board) IsFlipped() bool { return b.flipped }

// SetColumn overwrites the column at index ii. It doesn't update the piece totals, see Check.
// Used to build positions for tests and tools.
func (b *Board) SetColumn(ii int, color Color, count int) {
	if count == 0 {
		color = NoColor
	}
	b.grid[ii] = Column{Color: color, Count: count}
}

// SetBar overwrites the number of pieces of the color on the bar.
func (b *Board) SetBar(c Color, count int) { b.bar[c] = count }

// SetOut overwrites the number of pieces of the color borne off.
func (b *Board) SetOut(c Color, count int) { b.out[c] = count }

// Check verifies that for each color the pieces on the grid, bar and out add up to the
// color's total.
func (b *Board) Check() error {
	for _, c := range Colors {
		count := b.bar[c] + b.out[c]
		for _, col := range b.grid {
			if col.Has(c) {
				count += col.Count
			}
		}
		if count != b.numPieces[c] {
			return errors.Errorf("board has %d pieces of %s, expected %d", count, c, b.numPieces[c])
		}
	}
	return nil
}

// IsOver returns whether one of the colors has borne off all its pieces.
func (b *Board) IsOver() bool {
	for _, c := range Colors {
		if b.out[c] == b.numPieces[c] {
			return true
		}
	}
	return false
}

// PipCount returns the total distance the pieces of the color still have to travel
// to be borne off.
func (b *Board) PipCount(c Color) int {
	pips := b.bar[c] * (b.numColumns + 1)
	for ii, col := range b.grid {
		if col.Has(c) {
			pips += col.Count * b.distanceToOff(c, ii)
		}
	}
	return pips
}

// distanceToOff is the number of pips a piece of color c at column ii needs to bear off.
func (b *Board) distanceToOff(c Color, ii int) int {
	if c == White {
		return b.numColumns - ii
	}
	return ii + 1
}

// mirror returns the column index as seen from the opposite side.
func (b *Board) mirror(ii int) int {
	return b.numColumns - 1 - ii
}

// Flip reverses the perspective of the board: columns are mirrored and the colors swapped,
// so Black's pieces look like White's. It returns the function that undoes the flip, to be
// deferred. The restore function is idempotent.
func (b *Board) Flip() (restore func()) {
	b.flip()
	restored := false
	return func() {
		if !restored {
			restored = true
			b.flip()
		}
	}
}

func (b *Board) flip() {
	for ii, jj := 0, b.numColumns-1; ii < jj; ii, jj = ii+1, jj-1 {
		b.grid[ii], b.grid[jj] = b.grid[jj], b.grid[ii]
	}
	for ii := range b.grid {
		if b.grid[ii].Count > 0 {
			b.grid[ii].Color = b.grid[ii].Color.Opponent()
		}
	}
	b.bar[White], b.bar[Black] = b.bar[Black], b.bar[White]
	b.out[White], b.out[Black] = b.out[Black], b.out[White]
	b.numPieces[White], b.numPieces[Black] = b.numPieces[Black], b.numPieces[White]
	b.flipped = !b.flipped
}

// Key returns a compact string that identifies the position: two boards with the same
// pieces in the same places have the same key.
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(len(b.grid) + 4)
	for _, col := range b.grid {
		if col.Count == 0 {
			sb.WriteByte(0)
			continue
		}
		sb.WriteByte(byte(col.Color)<<7 | byte(col.Count))
	}
	for _, c := range Colors {
		sb.WriteByte(byte(b.bar[c]))
		sb.WriteByte(byte(b.out[c]))
	}
	return sb.String()
}

// String returns a one line representation of the board, used for logging.
func (b *Board) String() string {
	parts := make([]string, 0, len(b.grid)+2)
	for _, col := range b.grid {
		if col.Count == 0 {
			parts = append(parts, ".")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s%d", col.Color.Symbol(), col.Count))
	}
	parts = append(parts, fmt.Sprintf("| bar o%d x%d", b.bar[White], b.bar[Black]))
	parts = append(parts, fmt.Sprintf("| out o%d x%d", b.out[White], b.out[Black]))
	return strings.Join(parts, " ")
}
