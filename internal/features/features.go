// Package features extracts the board feature vector fed to the evaluator.
//
// The vector is the concatenation of feature groups (see Specs), first all groups for White
// and then all groups for Black. Its length for a board with n columns is 2*3*n+4.
package features

import (
	"fmt"
	. "github.com/janpfeifer/bkgGo/internal/state"
	"strings"
)

// Id of a feature group.
type Id uint8

// FeatureSetter fills f[def.VecIndex:def.VecIndex+def.Dim] for the group def.
type FeatureSetter func(b *Board, def *Spec, f []float64)

const (
	// IdColumns holds 3 occupancy buckets per column: one piece, two pieces, and half the count
	// of pieces beyond the second. All zeros if the column top is not of the group's color.
	IdColumns Id = iota

	// IdBar is half the number of pieces on the bar.
	IdBar

	// IdOut is the fraction of the color's pieces already borne off.
	IdOut

	// IdNumGroups must always be the last.
	IdNumGroups
)

// BucketsPerColumn is the number of occupancy features per column.
const BucketsPerColumn = 3

// Spec describes one feature group for one color.
type Spec struct {
	Id    Id
	Color Color
	Name  string
	Dim   int

	// VecIndex is where the group starts in the feature vector.
	VecIndex int
	Setter   FeatureSetter
}

// Dim returns the length of the feature vector for boards with numColumns columns.
func Dim(numColumns int) int {
	return NumColors*BucketsPerColumn*numColumns + 2*NumColors
}

// Specs returns the feature groups, with their VecIndex set, for boards with numColumns columns.
func Specs(numColumns int) []Spec {
	specs := make([]Spec, 0, NumColors*int(IdNumGroups))
	idx := 0
	for _, c := range Colors {
		for _, spec := range []Spec{
			{Id: IdColumns, Name: "Columns", Dim: BucketsPerColumn * numColumns, Setter: fColumns},
			{Id: IdBar, Name: "Bar", Dim: 1, Setter: fBar},
			{Id: IdOut, Name: "Out", Dim: 1, Setter: fOut},
		} {
			spec.Color = c
			spec.VecIndex = idx
			idx += spec.Dim
			specs = append(specs, spec)
		}
	}
	return specs
}

// ForBoard returns the feature vector of the board. It doesn't modify the board.
func ForBoard(b *Board) []float64 {
	f := make([]float64, Dim(b.NumColumns()))
	specs := Specs(b.NumColumns())
	for ii := range specs {
		specs[ii].Setter(b, &specs[ii], f)
	}
	return f
}

func fColumns(b *Board, def *Spec, f []float64) {
	for ii := range b.NumColumns() {
		col := b.Column(ii)
		if !col.Has(def.Color) {
			continue
		}
		buckets := f[def.VecIndex+BucketsPerColumn*ii : def.VecIndex+BucketsPerColumn*(ii+1)]
		for stackPos := range col.Count {
			buckets[min(stackPos, BucketsPerColumn-1)]++
		}
		buckets[BucketsPerColumn-1] /= 2
	}
}

func fBar(b *Board, def *Spec, f []float64) {
	f[def.VecIndex] = float64(b.Bar(def.Color)) / 2
}

func fOut(b *Board, def *Spec, f []float64) {
	f[def.VecIndex] = float64(b.Out(def.Color)) / float64(b.NumPieces(def.Color))
}

// PrettyPrint returns the feature vector broken down by group, one group per line.
func PrettyPrint(f []float64, numColumns int) string {
	var sb strings.Builder
	for _, def := range Specs(numColumns) {
		fmt.Fprintf(&sb, "\t%s %s: ", def.Color, def.Name)
		if def.Dim == 1 {
			fmt.Fprintf(&sb, "%.2f\n", f[def.VecIndex])
		} else {
			fmt.Fprintf(&sb, "%v\n", f[def.VecIndex:def.VecIndex+def.Dim])
		}
	}
	return sb.String()
}
