package engine

import "termgomoku/types"

// History records played and undone moves as two stacks, most recent last.
// It never touches the board; the Controller sequences both.
type History struct {
	played []types.Move
	undone []types.Move
}

// Record appends move to the played stack and discards every undone move.
func (h *History) Record(move types.Move) {
	h.played = append(h.played, move)
	h.undone = h.undone[:0]
}

// PopForUndo moves the most recent played move onto the undone stack and returns it.
func (h *History) PopForUndo() (types.Move, error) {
	if len(h.played) == 0 {
		return types.Move{}, ErrNoMoveToUndo
	}
	move := h.played[len(h.played)-1]
	h.played = h.played[:len(h.played)-1]
	h.undone = append(h.undone, move)
	return move, nil
}

// PopForRedo moves the most recent undone move back onto the played stack and returns it.
func (h *History) PopForRedo() (types.Move, error) {
	if len(h.undone) == 0 {
		return types.Move{}, ErrNoMoveToRedo
	}
	move := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	h.played = append(h.played, move)
	return move, nil
}

// Last returns the most recent played move.
func (h *History) Last() (types.Move, bool) {
	if len(h.played) == 0 {
		return types.Move{}, false
	}
	return h.played[len(h.played)-1], true
}

// NextRedo returns the move PopForRedo would return, without removing it.
func (h *History) NextRedo() (types.Move, bool) {
	if len(h.undone) == 0 {
		return types.Move{}, false
	}
	return h.undone[len(h.undone)-1], true
}

// UndoCount returns how many moves can be undone.
func (h *History) UndoCount() int {
	return len(h.played)
}

// RedoCount returns how many moves can be redone.
func (h *History) RedoCount() int {
	return len(h.undone)
}

// Played returns a copy of the played moves, oldest first.
func (h *History) Played() []types.Move {
	moves := make([]types.Move, len(h.played))
	copy(moves, h.played)
	return moves
}
