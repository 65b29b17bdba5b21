package ui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termgomoku/config"
	"termgomoku/engine"
	"termgomoku/notation"
	"termgomoku/pointer"
	"termgomoku/sgf"
	"termgomoku/types"
)

// Screen geometry of the board: each intersection is two columns wide
// (stone or line, then a connector) and one row high, drawn right of a
// four column gutter holding the row numbers.
const (
	gutterWidth = 4
	cellWidth   = 2
)

// TerminalLayout maps terminal cells onto the board for a board drawn with
// its top-left corner at (left, top). Terminal columns are used as pointer
// x and doubled terminal rows as pointer y, which makes cells square and
// leaves the connector column between two intersections outside the hit
// zone.
func TerminalLayout(left, top, size int) pointer.Layout {
	return pointer.Layout{
		CellSize: cellWidth,
		Margin:   1,
		Origin: pointer.Point{
			X: float64(left + gutterWidth - cellWidth),
			Y: float64(top-1) * cellWidth,
		},
		Size: size,
	}
}

// TerminalPoint converts a screen position to pointer space.
func TerminalPoint(x, y int) (float64, float64) {
	return float64(x), float64(y) * cellWidth
}

// GomokuBoardUI draws a game and turns keys and clicks into engine calls.
type GomokuBoardUI struct {
	Box      *tview.Box
	Controls *tview.Box

	app       *tview.Application
	hint      *tview.TextView
	infoPanel *GameInfoPanel
	cfg       *config.Config
	eng       engine.GameEngine
	snap      types.Snapshot
	styles    []tcell.Color
	log       *slog.Logger

	record      *sgf.GameRecord
	recordGames bool

	selRow, selCol int
	hover          types.Cell
	message        string

	undoBtn, redoBtn, newBtn, exportBtn *MenuButton
}

// NewGomokuBoard creates the board and its control bar. A nil logger
// discards log output.
func NewGomokuBoard(app *tview.Application, c *config.Config, hint *tview.TextView, logger *slog.Logger) *GomokuBoardUI {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g := &GomokuBoardUI{
		Box:         tview.NewBox(),
		Controls:    tview.NewBox(),
		app:         app,
		hint:        hint,
		log:         logger.With("component", "ui"),
		recordGames: c.RecordGames,
	}
	g.SetConfig(c)

	g.undoBtn = NewMenuButton("Undo", 'u', false, func() { g.Undo() })
	g.redoBtn = NewMenuButton("Redo", 'r', false, func() { g.Redo() })
	g.newBtn = NewMenuButton("New game", 'n', false, func() { g.NewGame() })
	g.exportBtn = NewMenuButton("Export", 'e', false, g.export)

	g.Box.SetDrawFunc(g.drawBoard)
	g.Box.SetMouseCapture(g.boardMouse)
	g.Controls.SetDrawFunc(g.drawControls)
	g.Controls.SetMouseCapture(g.controlsMouse)
	return g
}

func (g *GomokuBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),        // 0
		tcell.PaletteColor(c.Theme.Colors.BlackColor),        // 1
		tcell.PaletteColor(c.Theme.Colors.WhiteColor),        // 2
		tcell.PaletteColor(c.Theme.Colors.LineColor),         // 3
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),     // 4
		tcell.PaletteColor(c.Theme.Colors.HoverColorBG),      // 5
		tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG), // 6
		tcell.PaletteColor(c.Theme.Colors.WinColorBG),        // 7
	}
	g.cfg = c
}

// SetRecording turns SGF recording on or off for games started afterwards.
func (g *GomokuBoardUI) SetRecording(on bool) {
	g.recordGames = on
}

// ConnectEngine subscribes the board to e. It must be called once per engine.
func (g *GomokuBoardUI) ConnectEngine(e engine.GameEngine) {
	g.eng = e

	e.OnMove(func(ev engine.MoveEvent) {
		g.snap = ev.Snapshot
		g.message = ""
		if ev.Kind == engine.GameStarted {
			g.ResetSelection()
			g.openRecord()
		} else if g.record != nil {
			if err := g.record.Track(ev); err != nil {
				g.log.Error("sgf record", "path", g.record.FilePath, "error", err)
				g.message = fmt.Sprintf("Recording failed: %s", err)
			}
		}
		g.refresh()
	})

	e.OnGameEnd(func(outcome types.Outcome) {
		g.ResetSelection()
		g.message = ""
		g.log.Info("game over", "game_id", g.snap.GameID, "winner", outcome.Winner, "axis", outcome.Axis)
		g.refresh()
	})

	g.snap = e.Snapshot()
	g.refresh()
}

// Snapshot returns the state the board last drew.
func (g *GomokuBoardUI) Snapshot() types.Snapshot {
	return g.snap
}

func (g *GomokuBoardUI) openRecord() {
	g.closeRecord()
	if !g.recordGames {
		return
	}
	rec, err := sgf.NewGameRecord(g.cfg.HistoryDir, g.snap.GameID, g.snap.Size, g.snap.WinLength)
	if err != nil {
		g.log.Error("open sgf record", "dir", g.cfg.HistoryDir, "error", err)
		g.message = fmt.Sprintf("Recording disabled: %s", err)
		return
	}
	g.record = rec
}

// closeRecord finishes the current record. Records without a single
// move are removed so that abandoned games do not fill the history.
func (g *GomokuBoardUI) closeRecord() {
	if g.record == nil {
		return
	}
	g.record.Close()
	if g.record.MoveCount() == 0 {
		os.Remove(g.record.FilePath)
	}
	g.record = nil
}

// Close finishes the SGF record of the running game.
func (g *GomokuBoardUI) Close() {
	g.closeRecord()
}

// SelectedTile returns the cursor cell, or nil when there is no cursor.
func (g *GomokuBoardUI) SelectedTile() *types.Cell {
	if g.selRow == 0 || g.selCol == 0 {
		return nil
	}
	return &types.Cell{Row: g.selRow, Col: g.selCol}
}

func (g *GomokuBoardUI) ResetSelection() {
	g.selRow, g.selCol = 0, 0
}

// MoveSelection moves the cursor by (dRow, dCol). The first move places it
// on the last played stone, or the centre of an empty board.
func (g *GomokuBoardUI) MoveSelection(dRow, dCol int) {
	if g.snap.Finished() || g.snap.Size == 0 {
		g.ResetSelection()
		return
	}
	if g.SelectedTile() == nil {
		if g.snap.LastMove != nil {
			g.selRow, g.selCol = g.snap.LastMove.Row, g.snap.LastMove.Col
		} else {
			centre := (g.snap.Size + 1) / 2
			g.selRow, g.selCol = centre, centre
		}
		return
	}
	row, col := g.selRow+dRow, g.selCol+dCol
	if row < 1 || row > g.snap.Size || col < 1 || col > g.snap.Size {
		return
	}
	g.selRow, g.selCol = row, col
}

// PlaySelected plays at the cursor.
func (g *GomokuBoardUI) PlaySelected() {
	if tile := g.SelectedTile(); tile != nil {
		g.PlayMove(tile.Row, tile.Col)
	}
}

// PlayMove plays a stone for the side to move and reports rejections in
// the status line.
func (g *GomokuBoardUI) PlayMove(row, col int) {
	if g.eng == nil {
		return
	}
	if _, err := g.eng.PlayMove(row, col); err != nil {
		g.fail(err)
	}
}

func (g *GomokuBoardUI) Undo() {
	if g.eng == nil {
		return
	}
	if _, err := g.eng.Undo(); err != nil {
		g.fail(err)
	}
}

func (g *GomokuBoardUI) Redo() {
	if g.eng == nil {
		return
	}
	if _, err := g.eng.Redo(); err != nil {
		g.fail(err)
	}
}

// NewGame restarts with the size and win length of the running game.
func (g *GomokuBoardUI) NewGame() {
	if g.eng == nil {
		return
	}
	if _, err := g.eng.NewGame(g.snap.Size, g.snap.WinLength); err != nil {
		g.fail(err)
	}
}

// ExportSGF writes the moves played so far to a new file in the history
// directory and returns its path.
func (g *GomokuBoardUI) ExportSGF() (string, error) {
	if g.eng == nil {
		return "", errors.New("no game")
	}
	path, err := exportSGF(g.cfg.HistoryDir, g.snap, g.eng.Moves(), time.Now())
	if err != nil {
		g.log.Error("export sgf", "error", err)
		g.fail(err)
		return "", err
	}
	g.log.Info("exported sgf", "path", path, "moves", len(g.eng.Moves()))
	g.message = "Saved " + path
	g.refresh()
	return path, nil
}

// export is ExportSGF for key and button handlers; the outcome is already
// shown in the status line.
func (g *GomokuBoardUI) export() {
	_, _ = g.ExportSGF()
}

func exportSGF(dir string, snap types.Snapshot, moves []types.Move, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	short := snap.GameID
	if len(short) > 8 {
		short = short[:8]
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%dx%d_%s_export.sgf", now.Format("2006-01-02_150405"), snap.Size, snap.Size, short))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create sgf file: %w", err)
	}
	defer f.Close()

	header := sgf.NewHeader(snap.Size, snap.WinLength, now)
	header.Result = sgf.Result(snap.Outcome)
	if err := sgf.Encode(f, header, moves); err != nil {
		return "", err
	}
	return path, nil
}

func (g *GomokuBoardUI) fail(err error) {
	g.log.Debug("action rejected", "error", err)
	switch {
	case errors.Is(err, engine.ErrCellOccupied):
		g.message = "That point is taken"
	case errors.Is(err, engine.ErrGameAlreadyOver):
		g.message = "Game is over: undo or start a new game"
	case errors.Is(err, engine.ErrNoMoveToUndo):
		g.message = "Nothing to undo"
	case errors.Is(err, engine.ErrNoMoveToRedo):
		g.message = "Nothing to redo"
	default:
		g.message = err.Error()
	}
	g.refresh()
}

// HandleKey processes a key on the board. It returns nil for consumed keys.
func (g *GomokuBoardUI) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		g.MoveSelection(-1, 0)
	case tcell.KeyDown:
		g.MoveSelection(1, 0)
	case tcell.KeyLeft:
		g.MoveSelection(0, -1)
	case tcell.KeyRight:
		g.MoveSelection(0, 1)
	case tcell.KeyEnter:
		g.PlaySelected()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			g.MoveSelection(0, -1)
		case 'j':
			g.MoveSelection(1, 0)
		case 'k':
			g.MoveSelection(-1, 0)
		case 'l':
			g.MoveSelection(0, 1)
		case ' ':
			g.PlaySelected()
		case 'u':
			g.Undo()
		case 'r':
			g.Redo()
		case 'n':
			g.NewGame()
		case 'e':
			g.export()
		default:
			return event
		}
	default:
		return event
	}
	return nil
}

// cellAt maps a screen position to the intersection under it.
func (g *GomokuBoardUI) cellAt(x, y int) (types.Cell, bool) {
	if g.snap.Size == 0 || !g.Box.InRect(x, y) {
		return types.Cell{}, false
	}
	left, top, _, _ := g.Box.GetInnerRect()
	px, py := TerminalPoint(x, y)
	return pointer.PointerToCell(px, py, TerminalLayout(left, top, g.snap.Size))
}

func (g *GomokuBoardUI) boardMouse(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
	cell, ok := g.cellAt(event.Position())
	switch action {
	case tview.MouseMove:
		if !ok {
			cell = types.Cell{}
		}
		if cell != g.hover {
			g.hover = cell
			g.redraw()
		}
	case tview.MouseLeftClick:
		if ok {
			g.selRow, g.selCol = cell.Row, cell.Col
			g.PlayMove(cell.Row, cell.Col)
		}
	}
	return action, event
}

func (g *GomokuBoardUI) controlsMouse(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
	if action != tview.MouseLeftClick || !g.Controls.InRect(event.Position()) {
		return action, event
	}
	x, y := event.Position()
	for _, b := range g.controlButtons() {
		if b.Contains(x, y) {
			b.Select()
			break
		}
	}
	g.redraw()
	// Swallow the click so that focus stays on the board.
	return action, nil
}

// redraw asks tview for a frame outside of its own redraw cycle. The
// update is queued from a goroutine since the caller may hold the event
// loop.
func (g *GomokuBoardUI) redraw() {
	if g.app == nil {
		return
	}
	go func() {
		g.app.QueueUpdateDraw(func() {})
	}()
}

func (g *GomokuBoardUI) controlButtons() []*MenuButton {
	return []*MenuButton{g.undoBtn, g.redoBtn, g.newBtn, g.exportBtn}
}

func (g *GomokuBoardUI) drawControls(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	g.undoBtn.SetDisabled(!g.snap.CanUndo())
	g.redoBtn.SetDisabled(!g.snap.CanRedo())
	g.exportBtn.SetDisabled(g.eng == nil)
	col := x + gutterWidth
	for _, b := range g.controlButtons() {
		if col+b.Width() > x+width {
			break
		}
		col += b.Draw(screen, col, y) + 1
	}
	return x, y, width, height
}

// winningRun returns the cells of the completed line, or nil.
func winningRun(snap types.Snapshot) map[types.Cell]bool {
	if !snap.Finished() || snap.LastMove == nil {
		return nil
	}
	last := *snap.LastMove
	dr, dc := snap.Outcome.Axis.Step()
	if dr == 0 && dc == 0 {
		return nil
	}
	run := map[types.Cell]bool{{Row: last.Row, Col: last.Col}: true}
	for _, sign := range []int{1, -1} {
		r, c := last.Row+sign*dr, last.Col+sign*dc
		for snap.At(r, c) == last.Player {
			run[types.Cell{Row: r, Col: c}] = true
			r, c = r+sign*dr, c+sign*dc
		}
	}
	return run
}

func (g *GomokuBoardUI) drawBoard(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	size := g.snap.Size
	if size == 0 {
		return x, y, 1, 1
	}
	win := winningRun(g.snap)
	theme := g.cfg.Theme
	left := x + gutterWidth

	for row := 1; row <= size; row++ {
		for col := 1; col <= size; col++ {
			stone := g.snap.At(row, col)
			cell := types.Cell{Row: row, Col: col}

			bg := g.styles[0]
			switch {
			case win[cell]:
				bg = g.styles[7]
			case row == g.selRow && col == g.selCol:
				bg = g.styles[4]
			case cell == g.hover:
				bg = g.styles[5]
			case g.snap.LastMove != nil && row == g.snap.LastMove.Row && col == g.snap.LastMove.Col:
				bg = g.styles[6]
			}

			style := tcell.StyleDefault.Background(bg).Foreground(g.styles[3])
			drawRune := '·'
			if theme.UseGridLines {
				drawRune = getGridRune(row, col, size, isStarPoint(row, col, size))
			}
			switch stone {
			case types.Black:
				drawRune = theme.Symbols.BlackStone
				style = style.Foreground(g.styles[1])
			case types.White:
				drawRune = theme.Symbols.WhiteStone
				style = style.Foreground(g.styles[2])
			}

			sx := left + (col-1)*cellWidth
			sy := y + row - 1
			screen.SetContent(sx, sy, drawRune, nil, style)

			// The connector keeps the board background so that only the
			// intersection itself lights up.
			conn := ' '
			if theme.UseGridLines && col < size && stone == types.None && g.snap.At(row, col+1) == types.None {
				conn = '─'
			}
			screen.SetContent(sx+1, sy, conn, nil, tcell.StyleDefault.Background(g.styles[0]).Foreground(g.styles[3]))
		}
	}
	g.drawCoordinates(screen, x, y)
	return x, y, size*cellWidth + gutterWidth, size + 1
}

// getGridRune returns the box-drawing character for an empty intersection.
func getGridRune(row, col, size int, star bool) rune {
	if star {
		return '╋'
	}

	top := row == 1
	bottom := row == size
	leftEdge := col == 1
	rightEdge := col == size

	switch {
	case size == 1:
		return '┼'
	case top && leftEdge:
		return '┌'
	case top && rightEdge:
		return '┐'
	case bottom && leftEdge:
		return '└'
	case bottom && rightEdge:
		return '┘'
	case top:
		return '┬'
	case bottom:
		return '┴'
	case leftEdge:
		return '├'
	case rightEdge:
		return '┤'
	default:
		return '┼'
	}
}

// isStarPoint marks the centre and the four corner points that renju
// boards carry, when the board is large enough to have them.
func isStarPoint(row, col, size int) bool {
	if size < 9 {
		return false
	}
	edge := 3
	if size >= 13 {
		edge = 4
	}
	if size%2 == 1 && row == (size+1)/2 && col == (size+1)/2 {
		return true
	}
	far := size - edge + 1
	return (row == edge || row == far) && (col == edge || col == far)
}

func (g *GomokuBoardUI) drawCoordinates(s tcell.Screen, x, y int) {
	size := g.snap.Size
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(g.styles[4])
	lpHighlight := tcell.StyleDefault.Background(g.styles[6])
	last := g.snap.LastMove

	for col := 1; col <= size; col++ {
		st := style
		if col == g.selCol {
			st = highlight
		} else if last != nil && col == last.Col {
			st = lpHighlight
		}
		sx := x + gutterWidth + (col-1)*cellWidth
		s.SetContent(sx, y+size, notation.ColumnLetter(col), nil, st)
		s.SetContent(sx+1, y+size, ' ', nil, st)
	}

	for row := 1; row <= size; row++ {
		st := style
		if row == g.selRow {
			st = highlight
		} else if last != nil && row == last.Row {
			st = lpHighlight
		}
		label := fmt.Sprintf("%2d", size-row+1)
		s.SetContent(x+1, y+row-1, rune(label[0]), nil, st)
		s.SetContent(x+2, y+row-1, rune(label[1]), nil, st)
	}
}

func (g *GomokuBoardUI) refresh() {
	if g.infoPanel != nil {
		var moves []types.Move
		if g.eng != nil {
			moves = g.eng.Moves()
		}
		g.infoPanel.SetState(g.snap, moves)
	}
	if g.hint == nil {
		return
	}
	g.hint.SetText(hintText(g.snap, g.message))
}

func hintText(snap types.Snapshot, message string) string {
	var status string
	switch {
	case snap.Size == 0:
		status = ""
	case snap.Finished():
		status = fmt.Sprintf("  ★ %s wins (%s)   u undo · n new game · q menu", snap.Outcome.Winner, snap.Outcome.Axis)
	default:
		stone := "●"
		if snap.CurrentPlayer == types.White {
			stone = "○"
		}
		status = fmt.Sprintf("  %s %s to move   hjkl/↑↓←→ move · ⏎ play · u/r undo/redo · e export · q menu", stone, snap.CurrentPlayer)
	}
	if message != "" {
		status += "\n  " + message
	}
	return status
}
