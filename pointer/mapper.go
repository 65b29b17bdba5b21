// Package pointer maps continuous pointer positions onto board intersections.
//
// Grid line k (k >= 0) of a layout sits at Origin + k*CellSize on each axis,
// so line 0 is the origin itself and the first playable line is one cell in.
// A position only selects a cell when it lies within Margin of a line on both
// axes; anything in between lines is not a valid target.
package pointer

import (
	"fmt"
	"math"

	"termgomoku/types"
)

// Canvas metrics: 50px cells and a 20px wide click area around every
// intersection.
const (
	DefaultCellSize = 50
	DefaultMargin   = 10
)

// Point is a position in layout units (pixels, terminal columns, ...).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout describes where the grid lies in pointer space.
type Layout struct {
	CellSize float64 `json:"cell_size"`
	Margin   float64 `json:"margin"`
	Origin   Point   `json:"origin"`
	Size     int     `json:"size"` // board side length
}

// DefaultLayout returns the canvas layout for a board of the given size.
func DefaultLayout(size int) Layout {
	return Layout{
		CellSize: DefaultCellSize,
		Margin:   DefaultMargin,
		Size:     size,
	}
}

// Validate checks that the layout can map anything at all.
func (l Layout) Validate() error {
	if l.CellSize <= 0 || math.IsNaN(l.CellSize) || math.IsInf(l.CellSize, 0) {
		return fmt.Errorf("cell size must be positive, got %v", l.CellSize)
	}
	if l.Margin < 0 || l.Margin > l.CellSize/2 || math.IsNaN(l.Margin) {
		return fmt.Errorf("margin must be within 0..%v, got %v", l.CellSize/2, l.Margin)
	}
	if l.Size < 1 {
		return fmt.Errorf("board size must be positive, got %d", l.Size)
	}
	return nil
}

// remainder returns v mod cellSize in [0, cellSize), also for negative v.
func remainder(v, cellSize float64) float64 {
	r := math.Mod(v, cellSize)
	if r < 0 {
		r += cellSize
	}
	return r
}

// IsWithinHitZone reports whether coordinate v lies within margin of a grid
// line spaced cellSize apart, approaching from either side.
func IsWithinHitZone(v, cellSize, margin float64) bool {
	if cellSize <= 0 {
		return false
	}
	r := remainder(v, cellSize)
	return r < margin || r > cellSize-margin
}

// snap returns the index of the line v is near: the line below it, or the
// next one when v sits in the band just before that line.
func snap(v, cellSize, margin float64) int {
	q := math.Floor(v / cellSize)
	if remainder(v, cellSize) > cellSize-margin {
		q++
	}
	return int(q)
}

// Clickable reports whether (x, y) lies in the hit zone on both axes,
// regardless of board bounds. Renderers use it for hover feedback.
func Clickable(x, y float64, l Layout) bool {
	x -= l.Origin.X
	y -= l.Origin.Y
	return IsWithinHitZone(x, l.CellSize, l.Margin) && IsWithinHitZone(y, l.CellSize, l.Margin)
}

// PointerToCell maps (x, y) to the 1-based cell whose intersection it is
// near. It returns false when the position is between lines, when either
// coordinate is not finite, or when the snapped cell is off the board.
func PointerToCell(x, y float64, l Layout) (types.Cell, bool) {
	if l.Validate() != nil || !finite(x) || !finite(y) {
		return types.Cell{}, false
	}
	if !Clickable(x, y, l) {
		return types.Cell{}, false
	}
	col := snap(x-l.Origin.X, l.CellSize, l.Margin)
	row := snap(y-l.Origin.Y, l.CellSize, l.Margin)
	if row < 1 || row > l.Size || col < 1 || col > l.Size {
		return types.Cell{}, false
	}
	return types.Cell{Row: row, Col: col}, true
}

// CellToPointer returns the position of the intersection of cell (row, col).
func CellToPointer(row, col int, l Layout) Point {
	return Point{
		X: l.Origin.X + float64(col)*l.CellSize,
		Y: l.Origin.Y + float64(row)*l.CellSize,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
