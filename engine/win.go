package engine

import "termgomoku/types"

// RunLength counts the stones of the occupant of (row, col) that form an
// unbroken line through it along axis, the cell itself included.
// It returns 0 for an empty or out-of-range cell.
func RunLength(b *Board, row, col int, axis types.Axis) int {
	owner, err := b.At(row, col)
	if err != nil || owner == types.None {
		return 0
	}
	dr, dc := axis.Step()
	if dr == 0 && dc == 0 {
		return 1
	}
	return 1 + walk(b, row, col, dr, dc, owner) + walk(b, row, col, -dr, -dc, owner)
}

// walk counts consecutive cells owned by owner starting one step away from (row, col).
func walk(b *Board, row, col, dr, dc int, owner types.Player) int {
	n := 0
	for r, c := row+dr, col+dc; b.InBounds(r, c) && b.owner(r, c) == owner; r, c = r+dr, c+dc {
		n++
	}
	return n
}

// DetectWin reports the first axis through (row, col) carrying a run of at
// least winLength stones of that cell's owner.
func DetectWin(b *Board, row, col, winLength int) (types.Axis, bool) {
	for _, axis := range types.Axes {
		if RunLength(b, row, col, axis) >= winLength {
			return axis, true
		}
	}
	return types.AxisNone, false
}
