package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"termgomoku/types"
)

// Controller is the single owner of a game's board, history, turn and outcome.
// It is not safe for concurrent use; callers serialise access.
type Controller struct {
	config  GameConfig
	id      string
	board   *Board
	history History
	current types.Player
	outcome types.Outcome

	moveListeners []func(MoveEvent)
	endListeners  []func(types.Outcome)

	log *slog.Logger
}

var _ GameEngine = (*Controller)(nil)

// NewController creates a controller and starts a game with cfg.
// A nil logger discards log output.
func NewController(cfg GameConfig, logger *slog.Logger) (*Controller, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Controller{log: logger.With("component", "engine")}
	if err := c.reset(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) reset(cfg GameConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.config = cfg
	c.id = uuid.NewString()
	c.board = NewBoard(cfg.BoardSize)
	c.history = History{}
	c.current = types.Black
	c.outcome = types.Ongoing()
	return nil
}

// NewGame resets board, history, turn and outcome together.
// On error the running game is left untouched.
func (c *Controller) NewGame(size, winLength int) (types.Snapshot, error) {
	if err := c.reset(GameConfig{BoardSize: size, WinLength: winLength}); err != nil {
		c.log.Debug("new game rejected", "size", size, "win_length", winLength, "error", err)
		return c.Snapshot(), err
	}
	c.log.Info("new game", "game_id", c.id, "size", size, "win_length", winLength)
	snap := c.Snapshot()
	c.emitMove(MoveEvent{Kind: GameStarted, Snapshot: snap})
	return snap, nil
}

// PlayMove places a stone for the current player. A failed move changes nothing.
func (c *Controller) PlayMove(row, col int) (MoveResult, error) {
	player := c.current
	if c.outcome.Finished() {
		return MoveResult{Outcome: c.outcome, Player: player}, fmt.Errorf("%w: %s won", ErrGameAlreadyOver, c.outcome.Winner)
	}
	if err := c.board.Place(row, col, player); err != nil {
		c.log.Debug("move rejected", "row", row, "col", col, "player", player, "error", err)
		return MoveResult{Outcome: c.outcome, Player: player}, err
	}
	move := types.Move{Row: row, Col: col, Player: player}
	c.history.Record(move)
	c.settle(move)
	c.log.Debug("move played", "row", row, "col", col, "player", player, "status", c.outcome.Status)

	c.emitMove(MoveEvent{Kind: MovePlayed, Move: move, Snapshot: c.Snapshot()})
	if c.outcome.Finished() {
		c.emitEnd()
	}
	return MoveResult{Outcome: c.outcome, Player: player}, nil
}

// Undo retracts the last move. The player who made it is to move again and
// any win is withdrawn, since the retracted move was the winning one.
func (c *Controller) Undo() (types.Snapshot, error) {
	move, ok := c.history.Last()
	if !ok {
		return c.Snapshot(), ErrNoMoveToUndo
	}
	if err := c.board.Clear(move.Row, move.Col); err != nil {
		return c.Snapshot(), err
	}
	if _, err := c.history.PopForUndo(); err != nil {
		return c.Snapshot(), err
	}
	c.current = move.Player
	c.outcome = types.Ongoing()
	c.log.Debug("move undone", "row", move.Row, "col", move.Col, "player", move.Player)

	snap := c.Snapshot()
	c.emitMove(MoveEvent{Kind: MoveUndone, Move: move, Snapshot: snap})
	return snap, nil
}

// Redo re-applies the most recently undone move and re-runs win detection.
func (c *Controller) Redo() (types.Snapshot, error) {
	move, ok := c.history.NextRedo()
	if !ok {
		return c.Snapshot(), ErrNoMoveToRedo
	}
	if err := c.board.Place(move.Row, move.Col, move.Player); err != nil {
		return c.Snapshot(), err
	}
	if _, err := c.history.PopForRedo(); err != nil {
		return c.Snapshot(), err
	}
	c.settle(move)
	c.log.Debug("move redone", "row", move.Row, "col", move.Col, "player", move.Player, "status", c.outcome.Status)

	snap := c.Snapshot()
	c.emitMove(MoveEvent{Kind: MoveRedone, Move: move, Snapshot: snap})
	if c.outcome.Finished() {
		c.emitEnd()
	}
	return snap, nil
}

// settle updates outcome and turn after move has been placed.
// The turn passes to the opponent only when the game goes on.
func (c *Controller) settle(move types.Move) {
	if axis, won := DetectWin(c.board, move.Row, move.Col, c.config.WinLength); won {
		c.outcome = types.Victory(move.Player, axis)
		c.current = move.Player
		c.log.Info("game won", "game_id", c.id, "winner", move.Player, "axis", axis)
		return
	}
	c.outcome = types.Ongoing()
	c.current = types.Other(move.Player)
}

// Snapshot returns a deep copy of the game state.
func (c *Controller) Snapshot() types.Snapshot {
	snap := types.Snapshot{
		GameID:        c.id,
		Size:          c.config.BoardSize,
		WinLength:     c.config.WinLength,
		Board:         c.board.Grid(),
		CurrentPlayer: c.current,
		Outcome:       c.outcome,
		UndoCount:     c.history.UndoCount(),
		RedoCount:     c.history.RedoCount(),
		MoveNumber:    c.history.UndoCount(),
	}
	if last, ok := c.history.Last(); ok {
		snap.LastMove = &last
	}
	return snap
}

// Moves returns the played moves, oldest first.
func (c *Controller) Moves() []types.Move {
	return c.history.Played()
}

// Config returns the configuration of the running game.
func (c *Controller) Config() GameConfig {
	return c.config
}

// OnMove registers a listener for every successful operation.
func (c *Controller) OnMove(fn func(MoveEvent)) {
	c.moveListeners = append(c.moveListeners, fn)
}

// OnGameEnd registers a listener for wins, including wins re-declared by Redo.
func (c *Controller) OnGameEnd(fn func(types.Outcome)) {
	c.endListeners = append(c.endListeners, fn)
}

func (c *Controller) emitMove(ev MoveEvent) {
	for _, fn := range c.moveListeners {
		fn(ev)
	}
}

func (c *Controller) emitEnd() {
	for _, fn := range c.endListeners {
		fn(c.outcome)
	}
}
