// Package notation converts between board cells and human-readable coordinates.
package notation

import (
	"fmt"
	"strconv"
	"strings"
)

// Display coordinate system:
// - Columns: A-Z left to right, skipping I to avoid confusion with 1
// - Rows: 1-N from the bottom of the board
// - Example: H8 is the centre of a 15x15 board
//
// Engine coordinate system:
// - Row: 1-N top to bottom
// - Col: 1-N left to right
// - Example: (8, 8) for H8 on a 15x15 board

// MaxSize is the largest board the letters can label.
const MaxSize = 25

// ColumnLetter returns the display letter of a 1-based column.
func ColumnLetter(col int) rune {
	letter := 'A' + rune(col-1)
	if letter >= 'I' {
		letter++ // Skip 'I'
	}
	return letter
}

// Format converts an engine cell to display notation.
// For a 15x15 board: (1, 1) -> A15, (8, 8) -> H8, (15, 15) -> P1
func Format(row, col, size int) string {
	return fmt.Sprintf("%c%d", ColumnLetter(col), size-row+1)
}

// Parse converts display notation back to an engine cell.
// For a 15x15 board: A15 -> (1, 1), H8 -> (8, 8), P1 -> (15, 15)
func Parse(vertex string, size int) (int, int, error) {
	vertex = strings.TrimSpace(strings.ToUpper(vertex))
	if len(vertex) < 2 {
		return 0, 0, fmt.Errorf("invalid vertex: %q", vertex)
	}

	letter := rune(vertex[0])
	if letter < 'A' || letter > 'Z' || letter == 'I' {
		return 0, 0, fmt.Errorf("invalid column in vertex: %q", vertex)
	}
	col := int(letter-'A') + 1
	if letter > 'I' {
		col-- // Account for skipped 'I'
	}

	n, err := strconv.Atoi(vertex[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row in vertex: %q", vertex)
	}
	row := size - n + 1

	if col < 1 || col > size || row < 1 || row > size {
		return 0, 0, fmt.Errorf("vertex out of bounds: %q", vertex)
	}
	return row, col, nil
}
