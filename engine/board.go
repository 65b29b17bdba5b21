package engine

import (
	"fmt"

	"termgomoku/types"
)

// Board is the grid of cell occupancy. Cells are addressed by 1-based (row, col).
// Mutations happen in place; only one cell changes per call.
type Board struct {
	size  int
	cells []types.Player // row-major, index (row-1)*size + (col-1)
}

// NewBoard creates an empty size x size board.
func NewBoard(size int) *Board {
	return &Board{
		size:  size,
		cells: make([]types.Player, size*size),
	}
}

// Size returns the side length of the board.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether (row, col) addresses a cell of the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 1 && row <= b.size && col >= 1 && col <= b.size
}

func (b *Board) index(row, col int) (int, error) {
	if !b.InBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d, %d) outside 1..%d", ErrInvalidCoordinate, row, col, b.size)
	}
	return (row-1)*b.size + (col - 1), nil
}

// At returns the occupant of (row, col).
func (b *Board) At(row, col int) (types.Player, error) {
	i, err := b.index(row, col)
	if err != nil {
		return types.None, err
	}
	return b.cells[i], nil
}

// Place puts a stone of player on an empty cell.
func (b *Board) Place(row, col int, player types.Player) error {
	if !player.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}
	i, err := b.index(row, col)
	if err != nil {
		return err
	}
	if b.cells[i] != types.None {
		return fmt.Errorf("%w: (%d, %d) holds %s", ErrCellOccupied, row, col, b.cells[i])
	}
	b.cells[i] = player
	return nil
}

// Clear empties (row, col). Clearing an empty cell is not an error.
func (b *Board) Clear(row, col int) error {
	i, err := b.index(row, col)
	if err != nil {
		return err
	}
	b.cells[i] = types.None
	return nil
}

// owner is At without the error, for walks that already stay in bounds.
func (b *Board) owner(row, col int) types.Player {
	return b.cells[(row-1)*b.size+(col-1)]
}

// Grid returns a copy of the occupancy grid indexed as grid[row-1][col-1].
func (b *Board) Grid() [][]types.Player {
	grid := make([][]types.Player, b.size)
	for r := range grid {
		grid[r] = make([]types.Player, b.size)
		copy(grid[r], b.cells[r*b.size:(r+1)*b.size])
	}
	return grid
}
