package state

import (
	"github.com/pkg/errors"
)

const (
	// StandardColumns is the number of columns of a standard board.
	StandardColumns = 24

	// DefaultDie is the number of faces of the dice.
	DefaultDie = 6

	// MinColumns and MaxColumns accepted by Layout.Validate.
	MinColumns = 8
	MaxColumns = 48
)

// Point is a starting stack of pieces for White. Black's starting stacks mirror White's.
type Point struct {
	Column, Count int
}

// Layout defines the board dimensions and the starting position.
type Layout struct {
	NumColumns int
	Die        int
	Points     []Point
}

// standardPoints is the usual backgammon starting position (15 pieces) on 24 columns.
var standardPoints = []Point{{0, 2}, {11, 5}, {16, 3}, {18, 5}}

// DefaultLayout returns the standard starting position scaled to numColumns columns.
func DefaultLayout(numColumns int) (Layout, error) {
	layout := Layout{NumColumns: numColumns, Die: DefaultDie}
	for _, p := range standardPoints {
		layout.Points = append(layout.Points, Point{Column: p.Column * numColumns / StandardColumns, Count: p.Count})
	}
	if err := layout.Validate(); err != nil {
		return Layout{}, errors.WithMessagef(err, "no default layout for %d columns", numColumns)
	}
	return layout, nil
}

// HomeSize returns the number of columns of each color's home board, where all pieces
// must be before bearing off.
func (l Layout) HomeSize() int {
	return l.NumColumns / 4
}

// Validate checks the layout dimensions and that White's stacks and their mirrored Black
// stacks never share a column.
func (l Layout) Validate() error {
	if l.NumColumns < MinColumns || l.NumColumns > MaxColumns || l.NumColumns%4 != 0 {
		return errors.Errorf("invalid number of columns %d: must be a multiple of 4 in [%d, %d]",
			l.NumColumns, MinColumns, MaxColumns)
	}
	if l.Die < 1 || l.Die > l.NumColumns {
		return errors.Errorf("invalid die with %d faces for %d columns", l.Die, l.NumColumns)
	}
	if len(l.Points) == 0 {
		return errors.New("layout has no pieces")
	}
	used := make(map[int]bool, 2*len(l.Points))
	for _, p := range l.Points {
		if p.Column < 0 || p.Column >= l.NumColumns {
			return errors.Errorf("layout column %d out of range [0, %d)", p.Column, l.NumColumns)
		}
		if p.Count <= 0 {
			return errors.Errorf("layout column %d has invalid count %d", p.Column, p.Count)
		}
		mirrored := l.NumColumns - 1 - p.Column
		if used[p.Column] || used[mirrored] || p.Column == mirrored {
			return errors.Errorf("layout column %d overlaps with another stack", p.Column)
		}
		used[p.Column] = true
		used[mirrored] = true
	}
	return nil
}
