// Package ui provides terminal UI components for termgomoku.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termgomoku/engine"
)

// Smallest board and run length the setup screen offers. Smaller values
// are still accepted from flags and config.
const (
	minSetupBoardSize = 5
	minSetupWinLength = 3
)

// setupItem is a focusable row of the setup card.
type setupItem interface {
	SetFocused(bool)
	HandleKey(*tcell.EventKey) bool
}

// GameSetupUI is the card shown before a game: board size, win length,
// whether to keep an SGF record, and the start/history/quit buttons.
type GameSetupUI struct {
	*MenuCard

	sizeSlider *LevelSlider
	winSlider  *LevelSlider
	record     *RadioSelect
	buttons    []*MenuButton

	items []setupItem
	focus int

	onStart  func(engine.GameConfig, bool)
	onCancel func()
}

// NewGameSetup creates the setup card with the given defaults.
func NewGameSetup(defaults engine.GameConfig, record bool, onStart func(engine.GameConfig, bool), onHistory func(), onCancel func()) *GameSetupUI {
	s := &GameSetupUI{
		MenuCard: NewMenuCard("gomoku", ""),
		onStart:  onStart,
		onCancel: onCancel,
	}

	size := max(defaults.BoardSize, minSetupBoardSize)
	s.winSlider = NewLevelSlider("Win length", minSetupWinLength, size, defaults.WinLength, func(int) {
		s.updateSubtitle()
	})
	s.sizeSlider = NewLevelSlider("Board size", minSetupBoardSize, engine.MaxBoardSize, size, func(v int) {
		s.winSlider.SetMax(v)
		s.updateSubtitle()
	})

	initial := 0
	if !record {
		initial = 1
	}
	s.record = NewRadioSelect("Record", []RadioOption{
		{Label: "Save to history", Hint: "SGF file, updated every move"},
		{Label: "Don't save", Hint: "nothing is written"},
	}, initial, nil)

	s.buttons = []*MenuButton{
		NewMenuButton("Start", 0, true, s.start),
		NewMenuButton("History", 0, false, onHistory),
		NewMenuButton("Quit", 0, false, onCancel),
	}

	s.items = []setupItem{s.sizeSlider, s.winSlider, s.record}
	for _, b := range s.buttons {
		s.items = append(s.items, b)
	}
	s.focusOn(len(s.items) - len(s.buttons))
	s.updateSubtitle()
	return s
}

// Config returns the game configuration currently selected.
func (s *GameSetupUI) Config() engine.GameConfig {
	return engine.GameConfig{
		BoardSize: s.sizeSlider.Value(),
		WinLength: s.winSlider.Value(),
	}
}

// Record reports whether the game should be saved to the history directory.
func (s *GameSetupUI) Record() bool {
	return s.record.Selected() == 0
}

func (s *GameSetupUI) start() {
	if s.onStart != nil {
		s.onStart(s.Config(), s.Record())
	}
}

func (s *GameSetupUI) updateSubtitle() {
	size := s.sizeSlider.Value()
	s.SetSubtitle(fmt.Sprintf("%d in a row on %dx%d", s.winSlider.Value(), size, size))
}

func (s *GameSetupUI) focusOn(i int) {
	n := len(s.items)
	i = ((i % n) + n) % n
	s.items[s.focus].SetFocused(false)
	s.focus = i
	s.items[i].SetFocused(true)
}

// Draw renders the card and its rows.
func (s *GameSetupUI) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)
	s.DrawCard(screen)

	x, y, width, height := s.ContentRect()
	if width < 20 || height < 10 {
		return
	}

	row := y
	row += s.sizeSlider.Draw(screen, x, row, width) + 1
	row += s.winSlider.Draw(screen, x, row, width) + 1
	row += s.record.Draw(screen, x, row, width) + 1

	total := -2
	for _, b := range s.buttons {
		total += b.Width() + 2
	}
	col := x + (width-total)/2
	for _, b := range s.buttons {
		col += b.Draw(screen, col, row) + 2
	}

	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)
	help := "tab next · ←→ adjust · ⏎ select · q quit"
	drawText(screen, x+(width-len([]rune(help)))/2, y+height-1, help, hintStyle)
}

// InputHandler routes keys to the focused row, then handles navigation.
func (s *GameSetupUI) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return s.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if s.items[s.focus].HandleKey(event) {
			return
		}
		_, onButton := s.items[s.focus].(*MenuButton)
		switch event.Key() {
		case tcell.KeyTab, tcell.KeyDown:
			s.focusOn(s.focus + 1)
		case tcell.KeyBacktab, tcell.KeyUp:
			s.focusOn(s.focus - 1)
		case tcell.KeyRight:
			if onButton {
				s.focusOn(s.focus + 1)
			}
		case tcell.KeyLeft:
			if onButton {
				s.focusOn(s.focus - 1)
			}
		case tcell.KeyEscape:
			if s.onCancel != nil {
				s.onCancel()
			}
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				if s.onCancel != nil {
					s.onCancel()
				}
			case 's':
				s.start()
			}
		}
	})
}

// MouseHandler presses buttons on click.
func (s *GameSetupUI) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (bool, tview.Primitive) {
	return s.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (bool, tview.Primitive) {
		if action != tview.MouseLeftClick || !s.InRect(event.Position()) {
			return false, nil
		}
		setFocus(s)
		x, y := event.Position()
		for i, b := range s.buttons {
			if b.Contains(x, y) {
				s.focusOn(len(s.items) - len(s.buttons) + i)
				b.Select()
				break
			}
		}
		return true, nil
	})
}
