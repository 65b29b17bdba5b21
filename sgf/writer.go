// Package sgf implements SGF FF[4] writing and reading for Gomoku game records (GM[4]).
package sgf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"termgomoku/engine"
	"termgomoku/types"
)

// Header holds the root node properties of a record.
type Header struct {
	BoardSize   int
	WinLength   int
	PlayerBlack string
	PlayerWhite string
	Date        string
	Result      string
}

// GameRecord tracks a game in progress and writes it as SGF.
type GameRecord struct {
	FilePath string
	GameID   string
	Header
	moves []string // ";B[hh]", ";W[hi]", ...
	file  *os.File
}

// NewGameRecord creates a new SGF file in dir and writes the initial header.
func NewGameRecord(dir, gameID string, boardSize, winLength int) (*GameRecord, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	now := time.Now()
	short := gameID
	if len(short) > 8 {
		short = short[:8]
	}
	filename := fmt.Sprintf("%s_%dx%d_%s.sgf", now.Format("2006-01-02_150405"), boardSize, boardSize, short)
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create sgf file: %w", err)
	}

	rec := &GameRecord{
		FilePath: path,
		GameID:   gameID,
		Header:   NewHeader(boardSize, winLength, now),
		file:     f,
	}

	if err := rec.flush(); err != nil {
		f.Close()
		return nil, err
	}

	return rec, nil
}

// NewHeader returns the header of an unfinished hot-seat game.
func NewHeader(boardSize, winLength int, date time.Time) Header {
	return Header{
		BoardSize:   boardSize,
		WinLength:   winLength,
		PlayerBlack: "Black",
		PlayerWhite: "White",
		Date:        date.Format("2006-01-02"),
		Result:      "?",
	}
}

// sgfCoord converts a 1-based engine cell to an SGF letter pair (column first).
// (1,1) -> "aa", (8,8) -> "hh", (2,5) -> "eb".
func sgfCoord(row, col int) string {
	return string(rune('a'+col-1)) + string(rune('a'+row-1))
}

func moveNode(m types.Move) string {
	colorChar := "B"
	if m.Player == types.White {
		colorChar = "W"
	}
	return fmt.Sprintf(";%s[%s]", colorChar, sgfCoord(m.Row, m.Col))
}

// AddMove appends a move to the record.
func (r *GameRecord) AddMove(m types.Move) error {
	r.moves = append(r.moves, moveNode(m))
	return r.flush()
}

// UndoMoves removes the last n moves from the record.
func (r *GameRecord) UndoMoves(n int) error {
	if n > len(r.moves) {
		n = len(r.moves)
	}
	r.moves = r.moves[:len(r.moves)-n]
	return r.flush()
}

// SetResult sets the SGF RE property from a game outcome.
func (r *GameRecord) SetResult(outcome types.Outcome) error {
	r.Result = Result(outcome)
	return r.flush()
}

// Track keeps the record in step with the engine. GameStarted events are
// ignored; a new game gets a new record.
func (r *GameRecord) Track(ev engine.MoveEvent) error {
	var err error
	switch ev.Kind {
	case engine.MovePlayed, engine.MoveRedone:
		err = r.AddMove(ev.Move)
	case engine.MoveUndone:
		err = r.UndoMoves(1)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	if Result(ev.Snapshot.Outcome) != r.Result {
		return r.SetResult(ev.Snapshot.Outcome)
	}
	return nil
}

// MoveCount returns the number of recorded moves.
func (r *GameRecord) MoveCount() int {
	return len(r.moves)
}

// Close performs a final flush and closes the file handle.
func (r *GameRecord) Close() {
	if r.file == nil {
		return
	}
	r.flush()
	r.file.Close()
	r.file = nil
}

// flush rewrites the complete SGF file from scratch.
func (r *GameRecord) flush() error {
	if r.file == nil {
		return fmt.Errorf("file already closed")
	}

	var b strings.Builder
	writeTree(&b, r.Header, r.moves)

	// Rewrite file from start
	if _, err := r.file.Seek(0, 0); err != nil {
		return err
	}
	if err := r.file.Truncate(0); err != nil {
		return err
	}
	if _, err := r.file.WriteString(b.String()); err != nil {
		return err
	}
	return r.file.Sync()
}

// Encode writes a complete record of a game to w.
func Encode(w io.Writer, h Header, moves []types.Move) error {
	nodes := make([]string, len(moves))
	for i, m := range moves {
		nodes[i] = moveNode(m)
	}
	var b strings.Builder
	writeTree(&b, h, nodes)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTree(b *strings.Builder, h Header, moves []string) {
	// Root node
	b.WriteString("(;GM[4]FF[4]CA[UTF-8]")
	b.WriteString("AP[termgomoku:1.0]")
	b.WriteString(fmt.Sprintf("SZ[%d]", h.BoardSize))
	b.WriteString(fmt.Sprintf("WL[%d]", h.WinLength))
	b.WriteString(fmt.Sprintf("PB[%s]", escape(h.PlayerBlack)))
	b.WriteString(fmt.Sprintf("PW[%s]", escape(h.PlayerWhite)))
	b.WriteString(fmt.Sprintf("DT[%s]", h.Date))
	b.WriteString(fmt.Sprintf("RE[%s]", h.Result))
	b.WriteString("\n")

	// Move nodes
	for _, m := range moves {
		b.WriteString(m)
	}

	b.WriteString(")\n")
}

// Result converts an outcome to an SGF RE[] value: "B+", "W+" or "?".
func Result(outcome types.Outcome) string {
	if !outcome.Finished() {
		return "?"
	}
	if outcome.Winner == types.White {
		return "W+"
	}
	return "B+"
}

// escape protects the characters SGF treats specially inside a value.
func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `]`, `\]`).Replace(s)
}
