package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termgomoku/engine"
)

func press(s *GameSetupUI, events ...*tcell.EventKey) {
	handler := s.InputHandler()
	for _, ev := range events {
		handler(ev, func(tview.Primitive) {})
	}
}

func TestGameSetup_Defaults(t *testing.T) {
	s := NewGameSetup(engine.GameConfig{BoardSize: 15, WinLength: 5}, true, nil, nil, nil)

	assert.Equal(t, engine.GameConfig{BoardSize: 15, WinLength: 5}, s.Config())
	assert.True(t, s.Record())
	assert.Equal(t, "5 in a row on 15x15", s.subtitle)
}

func TestGameSetup_AdjustAndStart(t *testing.T) {
	var started *engine.GameConfig
	var record bool
	s := NewGameSetup(engine.GameConfig{BoardSize: 15, WinLength: 5}, true, func(cfg engine.GameConfig, rec bool) {
		started = &cfg
		record = rec
	}, nil, nil)

	// Given focus on Start, when stepping back to the sliders and adjusting
	press(s, key(tcell.KeyBacktab), key(tcell.KeyBacktab), key(tcell.KeyLeft))
	press(s, key(tcell.KeyBacktab), key(tcell.KeyRight), key(tcell.KeyRight))
	// and switching recording off
	press(s, key(tcell.KeyTab), key(tcell.KeyTab), key(tcell.KeyRight))
	// and pressing Start
	press(s, key(tcell.KeyTab), key(tcell.KeyEnter))

	// Then the chosen game starts
	require.NotNil(t, started)
	assert.Equal(t, engine.GameConfig{BoardSize: 17, WinLength: 4}, *started)
	assert.False(t, record)
}

func TestGameSetup_WinLengthFollowsBoardSize(t *testing.T) {
	s := NewGameSetup(engine.GameConfig{BoardSize: 9, WinLength: 7}, false, nil, nil, nil)

	s.sizeSlider.SetValue(6)

	assert.Equal(t, engine.GameConfig{BoardSize: 6, WinLength: 6}, s.Config())
	assert.False(t, s.Record())
}

func TestGameSetup_SmallConfigIsClamped(t *testing.T) {
	s := NewGameSetup(engine.GameConfig{BoardSize: 3, WinLength: 2}, true, nil, nil, nil)

	assert.Equal(t, engine.GameConfig{BoardSize: minSetupBoardSize, WinLength: minSetupWinLength}, s.Config())
}

func TestGameSetup_Quit(t *testing.T) {
	quit := 0
	s := NewGameSetup(engine.DefaultConfig(), true, nil, nil, func() { quit++ })

	press(s, runeKey('q'), key(tcell.KeyEscape))

	assert.Equal(t, 2, quit)
}

func TestMenuButton_Disabled(t *testing.T) {
	pressed := 0
	b := NewMenuButton("Undo", 'u', false, func() { pressed++ })

	assert.True(t, b.Select())
	b.SetDisabled(true)
	assert.False(t, b.Select())
	assert.True(t, b.HandleKey(key(tcell.KeyEnter)))
	assert.Equal(t, 1, pressed)
}

func TestMenuButton_Contains(t *testing.T) {
	b := NewMenuButton("Redo", 'r', false, nil)
	assert.False(t, b.Contains(0, 0), "never drawn")

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	w := b.Draw(screen, 10, 2)

	assert.Equal(t, b.Width(), w)
	assert.True(t, b.Contains(10, 2))
	assert.True(t, b.Contains(10+w-1, 2))
	assert.False(t, b.Contains(10+w, 2))
	assert.False(t, b.Contains(10, 3))
}

func TestLevelSlider(t *testing.T) {
	var seen []int
	s := NewLevelSlider("Size", 5, 9, 12, func(v int) { seen = append(seen, v) })
	assert.Equal(t, 9, s.Value(), "initial value is clamped")

	s.HandleKey(key(tcell.KeyRight))
	assert.Equal(t, 9, s.Value())
	assert.Empty(t, seen)

	s.HandleKey(runeKey('h'))
	s.SetMax(6)
	assert.Equal(t, 6, s.Value())
	assert.Equal(t, []int{8, 6}, seen)

	assert.True(t, s.HandleKey(key(tcell.KeyHome)))
	assert.Equal(t, 5, s.Value())
	assert.False(t, s.HandleKey(key(tcell.KeyUp)), "vertical keys move focus")
}

func TestRadioSelect(t *testing.T) {
	var seen []int
	r := NewRadioSelect("Record", []RadioOption{{Label: "Yes"}, {Label: "No"}}, 5, func(i int) { seen = append(seen, i) })
	assert.Equal(t, 0, r.Selected(), "out of range initial falls back to the first option")

	assert.True(t, r.HandleKey(key(tcell.KeyRight)))
	assert.True(t, r.HandleKey(runeKey(' ')))
	assert.True(t, r.HandleKey(key(tcell.KeyLeft)))
	assert.False(t, r.HandleKey(key(tcell.KeyDown)))

	assert.Equal(t, 1, r.Selected())
	assert.Equal(t, []int{1, 0, 1}, seen)
}

func TestGameSetup_DownLeavesRecordRow(t *testing.T) {
	s := NewGameSetup(engine.DefaultConfig(), true, nil, nil, nil)

	// Given focus on the record row, Down moves on without changing it
	press(s, key(tcell.KeyBacktab), key(tcell.KeyDown))

	assert.True(t, s.Record())
	assert.Equal(t, 3, s.focus)
}
