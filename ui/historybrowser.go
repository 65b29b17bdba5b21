package ui

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termgomoku/engine"
	"termgomoku/sgf"
	"termgomoku/types"
)

// HistoryBrowserUI lists the SGF records in the history directory and
// previews the final position of the selected one.
type HistoryBrowserUI struct {
	flex    *tview.Flex
	list    *tview.List
	preview *tview.Box
	dir     string
	games   []sgf.GameInfo
	replays map[string]types.Snapshot // by file path
	current int
	onDone  func()
}

// NewHistoryBrowser creates a history browser over dir.
func NewHistoryBrowser(dir string, onDone func()) *HistoryBrowserUI {
	hb := &HistoryBrowserUI{
		dir:     dir,
		onDone:  onDone,
		replays: make(map[string]types.Snapshot),
	}

	hb.list = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetMainTextStyle(tcell.StyleDefault.Foreground(MenuColors.Label)).
		SetSelectedStyle(tcell.StyleDefault.Foreground(MenuColors.ButtonText).Background(MenuColors.ButtonFocus)).
		SetChangedFunc(func(index int, _, _ string, _ rune) { hb.current = index })
	hb.list.SetBorder(true).SetTitle(" Saved games ")
	hb.list.SetInputCapture(hb.handleInput)

	hb.preview = tview.NewBox()
	hb.preview.SetBorder(true).SetTitle(" Final position ")
	hb.preview.SetDrawFunc(hb.drawPreview)

	keys := tview.NewTextView().SetDynamicColors(true).
		SetText("  [dimgray]↑↓[-] browse  [dimgray]d[-] delete  [dimgray]q[-] back")

	body := tview.NewFlex().
		AddItem(hb.list, 42, 0, true).
		AddItem(hb.preview, 0, 1, false)
	hb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(keys, 1, 0, false)

	hb.Refresh()
	return hb
}

// Flex returns the root primitive of the browser.
func (hb *HistoryBrowserUI) Flex() *tview.Flex {
	return hb.flex
}

// Refresh rereads the history directory.
func (hb *HistoryBrowserUI) Refresh() {
	hb.replays = make(map[string]types.Snapshot)
	hb.list.Clear()
	hb.current = 0

	games, err := sgf.ListGames(hb.dir)
	hb.games = games
	if err != nil || len(games) == 0 {
		hb.games = nil
		hb.list.AddItem("[dimgray]No saved games[-]", "", 0, nil)
		return
	}
	for _, g := range games {
		hb.list.AddItem(gameLabel(g), "", 0, nil)
	}
}

func gameLabel(g sgf.GameInfo) string {
	result := g.Result
	if result == "" || result == "?" {
		result = "..."
	}
	return fmt.Sprintf("%s  %2dx%-2d  %d-row  %3d  %s", g.Date, g.BoardSize, g.BoardSize, g.WinLength, g.MoveCount, result)
}

func (hb *HistoryBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch {
	case event.Key() == tcell.KeyEscape || isRune(event, 'q'):
		if hb.onDone != nil {
			hb.onDone()
		}
	case isRune(event, 'd'):
		hb.deleteCurrent()
	default:
		return event
	}
	return nil
}

func (hb *HistoryBrowserUI) deleteCurrent() {
	if hb.current < 0 || hb.current >= len(hb.games) {
		return
	}
	os.Remove(hb.games[hb.current].FilePath)
	hb.Refresh()
}

// replay plays a record through a fresh engine so the preview shows the
// same outcome the game reached. Moves the engine rejects end the replay.
func replay(game sgf.GameInfo) (types.Snapshot, error) {
	moves, err := sgf.ReadMoves(game.FilePath)
	if err != nil {
		return types.Snapshot{}, err
	}
	ctrl, err := engine.NewController(engine.GameConfig{BoardSize: game.BoardSize, WinLength: game.WinLength}, nil)
	if err != nil {
		return types.Snapshot{}, err
	}
	for _, m := range moves {
		if _, err := ctrl.PlayMove(m.Row, m.Col); err != nil {
			break
		}
	}
	return ctrl.Snapshot(), nil
}

func (hb *HistoryBrowserUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if hb.current < 0 || hb.current >= len(hb.games) {
		return x, y, width, height
	}
	game := hb.games[hb.current]

	snap, ok := hb.replays[game.FilePath]
	if !ok {
		var err error
		if snap, err = replay(game); err != nil {
			return x, y, width, height
		}
		hb.replays[game.FilePath] = snap
	}

	left, top := x+2, y+1
	if width < snap.Size*2+4 || height < snap.Size+6 {
		drawText(screen, left, top, "window too small", tcell.StyleDefault.Foreground(MenuColors.Hint))
		return x, y, width, height
	}

	win := winningRun(snap)
	for row := 1; row <= snap.Size; row++ {
		for col := 1; col <= snap.Size; col++ {
			ch, style := '·', tcell.StyleDefault.Foreground(tcell.PaletteColor(240))
			switch snap.At(row, col) {
			case types.Black:
				ch, style = '●', tcell.StyleDefault.Foreground(tcell.PaletteColor(255)).Bold(true)
			case types.White:
				ch, style = '○', tcell.StyleDefault.Foreground(tcell.PaletteColor(250))
			}
			if win[types.Cell{Row: row, Col: col}] {
				style = style.Foreground(MenuColors.TitleAccent)
			} else if last := snap.LastMove; last != nil && last.Row == row && last.Col == col {
				style = style.Underline(true)
			}
			screen.SetContent(left+(col-1)*2, top+row-1, ch, nil, style)
		}
	}

	line := top + snap.Size + 1
	info := tcell.StyleDefault.Foreground(tcell.PaletteColor(250))
	dim := tcell.StyleDefault.Foreground(tcell.PaletteColor(245))
	drawText(screen, left, line, fmt.Sprintf("%dx%d · %d in a row · %d moves", snap.Size, snap.Size, snap.WinLength, snap.MoveNumber), info)
	drawText(screen, left, line+1, game.FileName, dim)

	result := "Unfinished"
	if snap.Finished() {
		name := game.PlayerBlack
		if snap.Outcome.Winner == types.White {
			name = game.PlayerWhite
		}
		result = fmt.Sprintf("%s won (%s)", name, snap.Outcome.Axis)
	}
	drawText(screen, left, line+2, "Result: "+result, tcell.StyleDefault.Foreground(tcell.PaletteColor(109)))
	return x, y, width, height
}

// drawText writes text one rune per column and returns the column after it.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
