// Package engine implements the Gomoku match engine: board state, move history
// with undo/redo, win detection and the controller that ties them together.
package engine

import (
	"fmt"

	"termgomoku/types"
)

// Board size limits. Column letters run A-Z without I, which caps the side at 25.
const (
	MinBoardSize     = 1
	MaxBoardSize     = 25
	DefaultBoardSize = 15
	DefaultWinLength = 5
)

// GameEngine is the API consumed by front ends (terminal UI, HTTP adapter).
type GameEngine interface {
	// NewGame discards the current game and starts an empty one.
	NewGame(size, winLength int) (types.Snapshot, error)

	// PlayMove places a stone for the current player at (row, col).
	PlayMove(row, col int) (MoveResult, error)

	// Undo retracts the most recent move.
	Undo() (types.Snapshot, error)

	// Redo re-applies the most recently undone move.
	Redo() (types.Snapshot, error)

	// Snapshot returns a read-only view of the current game.
	Snapshot() types.Snapshot

	// Moves returns the moves on the board, oldest first.
	Moves() []types.Move

	// OnMove registers a listener called after every successful operation.
	OnMove(func(MoveEvent))

	// OnGameEnd registers a listener called when a move wins the game.
	OnGameEnd(func(types.Outcome))
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	BoardSize int // side length, 1..25
	WinLength int // stones in a row needed to win, 1..BoardSize
}

// DefaultConfig returns the standard 15x15, five-in-a-row configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		BoardSize: DefaultBoardSize,
		WinLength: DefaultWinLength,
	}
}

// Validate checks the board size and win length.
func (c GameConfig) Validate() error {
	if c.BoardSize < MinBoardSize || c.BoardSize > MaxBoardSize {
		return fmt.Errorf("%w: board size %d not in %d..%d", ErrInvalidGameConfig, c.BoardSize, MinBoardSize, MaxBoardSize)
	}
	if c.WinLength < 1 || c.WinLength > c.BoardSize {
		return fmt.Errorf("%w: win length %d not in 1..%d", ErrInvalidGameConfig, c.WinLength, c.BoardSize)
	}
	return nil
}

// MoveResult is returned by PlayMove.
type MoveResult struct {
	Outcome types.Outcome `json:"outcome"`
	Player  types.Player  `json:"player"` // the player who just moved
}

// EventKind tells listeners what changed.
type EventKind int

const (
	GameStarted EventKind = iota
	MovePlayed
	MoveUndone
	MoveRedone
)

func (k EventKind) String() string {
	switch k {
	case GameStarted:
		return "new"
	case MovePlayed:
		return "play"
	case MoveUndone:
		return "undo"
	case MoveRedone:
		return "redo"
	}
	return "unknown"
}

// MoveEvent describes a state change. Move is the zero value for GameStarted.
type MoveEvent struct {
	Kind     EventKind
	Move     types.Move
	Snapshot types.Snapshot
}
