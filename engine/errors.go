package engine

import "errors"

// Errors returned by engine operations. Callers match them with errors.Is;
// the returned values usually wrap them with the offending coordinates.
var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrGameAlreadyOver   = errors.New("game is already over")
	ErrNoMoveToUndo      = errors.New("no move to undo")
	ErrNoMoveToRedo      = errors.New("no move to redo")
	ErrInvalidGameConfig = errors.New("invalid game config")
	ErrInvalidPlayer     = errors.New("invalid player")
)
