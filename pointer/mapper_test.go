package pointer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termgomoku/types"
)

func TestIsWithinHitZone(t *testing.T) {
	tests := []struct {
		v    float64
		want bool
	}{
		{0, true},
		{9.9, true},
		{10, false},
		{25, false},
		{40, false},
		{40.1, true},
		{49.9, true},
		{50, true},
		{100, true},
		{125, false},
		{-5, true},
		{-25, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWithinHitZone(tt.v, 50, 10), "v=%v", tt.v)
	}
	assert.False(t, IsWithinHitZone(10, 0, 10), "zero cell size never hits")
}

func TestPointerToCell_Intersection(t *testing.T) {
	l := DefaultLayout(15)

	cell, ok := PointerToCell(100, 100, l)

	require.True(t, ok)
	assert.Equal(t, types.Cell{Row: 2, Col: 2}, cell)
}

func TestPointerToCell_CellCenterIsNoCell(t *testing.T) {
	_, ok := PointerToCell(125, 125, DefaultLayout(15))
	assert.False(t, ok)
}

func TestPointerToCell_Snapping(t *testing.T) {
	l := DefaultLayout(15)
	tests := []struct {
		x, y float64
		want types.Cell
	}{
		{50, 50, types.Cell{Row: 1, Col: 1}},
		{59, 41, types.Cell{Row: 1, Col: 1}},  // just past the line / just before it
		{95, 109, types.Cell{Row: 2, Col: 2}}, // approaching from below, leaving above
		{750, 750, types.Cell{Row: 15, Col: 15}},
		{150, 700, types.Cell{Row: 14, Col: 3}},
	}
	for _, tt := range tests {
		got, ok := PointerToCell(tt.x, tt.y, l)
		require.True(t, ok, "(%v, %v)", tt.x, tt.y)
		assert.Equal(t, tt.want, got, "(%v, %v)", tt.x, tt.y)
	}
}

func TestPointerToCell_OneAxisOutsideZone(t *testing.T) {
	l := DefaultLayout(15)
	_, ok := PointerToCell(100, 125, l)
	assert.False(t, ok)
	_, ok = PointerToCell(125, 100, l)
	assert.False(t, ok)
}

func TestPointerToCell_OffBoard(t *testing.T) {
	l := DefaultLayout(15)
	for _, p := range [][2]float64{{0, 0}, {5, 100}, {100, 800}, {-50, 100}, {800, 800}} {
		_, ok := PointerToCell(p[0], p[1], l)
		assert.False(t, ok, "(%v, %v)", p[0], p[1])
	}
}

func TestPointerToCell_Origin(t *testing.T) {
	l := DefaultLayout(15)
	l.Origin = Point{X: 20, Y: -30}

	cell, ok := PointerToCell(120, 70, l)
	require.True(t, ok)
	assert.Equal(t, types.Cell{Row: 2, Col: 2}, cell)

	_, ok = PointerToCell(100, 100, l)
	assert.False(t, ok)
}

func TestPointerToCell_RoundTrip(t *testing.T) {
	l := Layout{CellSize: 30, Margin: 6, Origin: Point{X: 12, Y: 7}, Size: 9}
	for row := 1; row <= 9; row++ {
		for col := 1; col <= 9; col++ {
			p := CellToPointer(row, col, l)
			got, ok := PointerToCell(p.X, p.Y, l)
			require.True(t, ok)
			assert.Equal(t, types.Cell{Row: row, Col: col}, got)
		}
	}
}

func TestPointerToCell_InvalidInput(t *testing.T) {
	_, ok := PointerToCell(100, 100, Layout{CellSize: 0, Margin: 0, Size: 15})
	assert.False(t, ok)
	_, ok = PointerToCell(100, 100, Layout{CellSize: 50, Margin: 30, Size: 15})
	assert.False(t, ok)
	_, ok = PointerToCell(math.NaN(), 100, DefaultLayout(15))
	assert.False(t, ok)
	_, ok = PointerToCell(math.Inf(1), 100, DefaultLayout(15))
	assert.False(t, ok)
}

func TestClickable(t *testing.T) {
	l := DefaultLayout(15)
	assert.True(t, Clickable(0, 0, l), "hover ignores board bounds")
	assert.False(t, Clickable(25, 0, l))
}
