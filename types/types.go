// Package types contains shared data structures for termgomoku.
package types

import "fmt"

// Player is the owner of a stone. The zero value is an empty cell.
// Values match the JSON board encoding: 0=empty, 1=black, 2=white.
type Player int

const (
	None Player = iota
	Black
	White
)

// Other returns the opponent of p. Other(Other(p)) == p for Black and White;
// None has no opponent and is returned unchanged.
func Other(p Player) Player {
	switch p {
	case Black:
		return White
	case White:
		return Black
	}
	return None
}

// Valid reports whether p is one of the two players.
func (p Player) Valid() bool {
	return p == Black || p == White
}

func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "None"
}

// Axis is one of the four undirected lines through a cell.
type Axis int

const (
	AxisNone Axis = iota
	Horizontal
	Vertical
	Diagonal     // top-left to bottom-right
	AntiDiagonal // bottom-left to top-right
)

// Axes lists the four axes in the order win detection checks them.
var Axes = [4]Axis{Horizontal, Vertical, Diagonal, AntiDiagonal}

// Step returns the unit (row, col) step of the axis in its positive direction.
// Rows grow downwards, so the anti-diagonal climbs by decreasing the row.
func (a Axis) Step() (int, int) {
	switch a {
	case Horizontal:
		return 0, 1
	case Vertical:
		return 1, 0
	case Diagonal:
		return 1, 1
	case AntiDiagonal:
		return -1, 1
	}
	return 0, 0
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Diagonal:
		return "diagonal"
	case AntiDiagonal:
		return "anti-diagonal"
	}
	return "none"
}

// MarshalText encodes the axis by name for JSON consumers.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (a *Axis) UnmarshalText(text []byte) error {
	for _, axis := range append([]Axis{AxisNone}, Axes[:]...) {
		if axis.String() == string(text) {
			*a = axis
			return nil
		}
	}
	return fmt.Errorf("unknown axis %q", text)
}

// Move is a single placed stone. Rows and columns are 1-based.
type Move struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Player Player `json:"player"`
}

// Status is the coarse state of a game.
type Status string

const (
	InProgress Status = "in_progress"
	Won        Status = "won"
)

// Outcome describes whether and how a game has ended.
type Outcome struct {
	Status Status `json:"status"`
	Winner Player `json:"winner,omitempty"`
	Axis   Axis   `json:"axis,omitempty"`
}

// Finished returns true if the game is over.
func (o Outcome) Finished() bool {
	return o.Status == Won
}

// Ongoing is the outcome of every game that has not been won.
func Ongoing() Outcome {
	return Outcome{Status: InProgress}
}

// Victory is the outcome of a game won by p along axis.
func Victory(p Player, axis Axis) Outcome {
	return Outcome{Status: Won, Winner: p, Axis: axis}
}

// Snapshot is a read-only view of a game for renderers.
// Board is indexed as Board[row-1][col-1].
type Snapshot struct {
	GameID        string     `json:"game_id"`
	Size          int        `json:"size"`
	WinLength     int        `json:"win_length"`
	Board         [][]Player `json:"board"`
	CurrentPlayer Player     `json:"current_player"`
	Outcome       Outcome    `json:"outcome"`
	UndoCount     int        `json:"undo_count"`
	RedoCount     int        `json:"redo_count"`
	MoveNumber    int        `json:"move_number"`
	LastMove      *Move      `json:"last_move,omitempty"`
}

// Finished returns true if the game is over.
func (s Snapshot) Finished() bool {
	return s.Outcome.Finished()
}

// At returns the occupant at 1-based (row, col), or None when out of range.
func (s Snapshot) At(row, col int) Player {
	if row < 1 || row > len(s.Board) || col < 1 || col > len(s.Board[row-1]) {
		return None
	}
	return s.Board[row-1][col-1]
}

// CanUndo reports whether an undo is available.
func (s Snapshot) CanUndo() bool {
	return s.UndoCount > 0
}

// CanRedo reports whether a redo is available.
func (s Snapshot) CanRedo() bool {
	return s.RedoCount > 0
}

// Cell is a 1-based board position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
