package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// labelWidth aligns the values of stacked setup rows.
const labelWidth = 12

// LevelSlider picks an integer in [lo, hi].
type LevelSlider struct {
	label   string
	lo, hi  int
	value   int
	focused bool
	changed func(int)
}

// NewLevelSlider creates a slider. initial is clamped into [lo, hi].
func NewLevelSlider(label string, lo, hi, initial int, changed func(int)) *LevelSlider {
	return &LevelSlider{
		label:   label,
		lo:      lo,
		hi:      hi,
		value:   min(max(initial, lo), hi),
		changed: changed,
	}
}

func (s *LevelSlider) SetFocused(focused bool) {
	s.focused = focused
}

// HandleKey steps the value with ←/→ or h/l and jumps to the bounds with
// Home/End.
func (s *LevelSlider) HandleKey(event *tcell.EventKey) bool {
	switch {
	case event.Key() == tcell.KeyLeft || isRune(event, 'h'):
		s.SetValue(s.value - 1)
	case event.Key() == tcell.KeyRight || isRune(event, 'l'):
		s.SetValue(s.value + 1)
	case event.Key() == tcell.KeyHome:
		s.SetValue(s.lo)
	case event.Key() == tcell.KeyEnd:
		s.SetValue(s.hi)
	default:
		return false
	}
	return true
}

// Draw renders "label  lo ━━━●─── hi  value" on one row.
func (s *LevelSlider) Draw(screen tcell.Screen, x, y, width int) int {
	bg := tcell.StyleDefault.Background(MenuColors.CardBG)
	dim := bg.Foreground(MenuColors.Unselected)
	lit := bg.Foreground(MenuColors.Selected)
	text := bg.Foreground(MenuColors.Label)

	col := drawRowLabel(screen, x, y, s.label, s.focused)

	lo, hi := fmt.Sprint(s.lo), fmt.Sprint(s.hi)
	value := fmt.Sprintf("%3d", s.value)
	track := s.hi - s.lo + 1
	if room := x + width - col - len(lo) - len(hi) - len(value) - 4; track > room {
		track = max(room, 2)
	}
	knob := 0
	if span := s.hi - s.lo; span > 0 {
		knob = (s.value - s.lo) * (track - 1) / span
	}

	col = drawText(screen, col, y, lo, dim) + 1
	for i := 0; i < track; i++ {
		switch {
		case i == knob:
			screen.SetContent(col, y, '●', nil, lit)
		case i < knob:
			screen.SetContent(col, y, '━', nil, lit)
		default:
			screen.SetContent(col, y, '─', nil, dim)
		}
		col++
	}
	col = drawText(screen, col+1, y, hi, dim)
	drawText(screen, col+1, y, value, text)
	return 1
}

// Value returns the current value.
func (s *LevelSlider) Value() int {
	return s.value
}

// SetValue moves the slider, clamped to its range. The change callback only
// fires when the value actually moves.
func (s *LevelSlider) SetValue(v int) {
	v = min(max(v, s.lo), s.hi)
	if v == s.value {
		return
	}
	s.value = v
	if s.changed != nil {
		s.changed(v)
	}
}

// SetMax changes the upper bound and pulls the value down if needed.
func (s *LevelSlider) SetMax(hi int) {
	s.hi = max(hi, s.lo)
	s.SetValue(s.value)
}

// drawRowLabel draws the focus marker and padded label shared by setup rows
// and returns the first free column.
func drawRowLabel(screen tcell.Screen, x, y int, label string, focused bool) int {
	bg := tcell.StyleDefault.Background(MenuColors.CardBG)
	marker := ' '
	if focused {
		marker = '▸'
	}
	screen.SetContent(x, y, marker, nil, bg.Foreground(MenuColors.Selected))
	screen.SetContent(x+2, y, '◈', nil, bg.Foreground(MenuColors.TitleAccent))
	drawText(screen, x+4, y, fmt.Sprintf("%-*s", labelWidth, label), bg.Foreground(MenuColors.Label))
	return x + 4 + labelWidth
}

func isRune(event *tcell.EventKey, r rune) bool {
	return event.Key() == tcell.KeyRune && event.Rune() == r
}
