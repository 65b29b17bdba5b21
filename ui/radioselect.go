package ui

import (
	"github.com/gdamore/tcell/v2"
)

// RadioOption is one choice of a RadioSelect. Hint is shown under the row
// while the option is selected.
type RadioOption struct {
	Label string
	Hint  string
}

// RadioSelect lays out mutually exclusive options on a single row.
// ←/→, h/l and space cycle through them; ↑/↓ are left to the container.
type RadioSelect struct {
	label    string
	options  []RadioOption
	selected int
	focused  bool
	changed  func(int)
}

// NewRadioSelect creates a group with options[initial] selected.
func NewRadioSelect(label string, options []RadioOption, initial int, changed func(int)) *RadioSelect {
	if initial < 0 || initial >= len(options) {
		initial = 0
	}
	return &RadioSelect{label: label, options: options, selected: initial, changed: changed}
}

func (r *RadioSelect) SetFocused(focused bool) {
	r.focused = focused
}

func (r *RadioSelect) HandleKey(event *tcell.EventKey) bool {
	if len(r.options) == 0 {
		return false
	}
	n := len(r.options)
	switch {
	case event.Key() == tcell.KeyLeft || isRune(event, 'h'):
		r.SetSelected((r.selected + n - 1) % n)
	case event.Key() == tcell.KeyRight || isRune(event, 'l') || isRune(event, ' '):
		r.SetSelected((r.selected + 1) % n)
	default:
		return false
	}
	return true
}

// Draw renders the options and the selected option's hint. It returns the
// number of rows used.
func (r *RadioSelect) Draw(screen tcell.Screen, x, y, width int) int {
	bg := tcell.StyleDefault.Background(MenuColors.CardBG)
	on := bg.Foreground(MenuColors.Selected)
	off := bg.Foreground(MenuColors.Unselected)

	start := drawRowLabel(screen, x, y, r.label, r.focused)
	col := start
	for i, opt := range r.options {
		bullet, style := '○', off
		if i == r.selected {
			bullet, style = '●', on
		}
		if col+len([]rune(opt.Label))+2 > x+width {
			break
		}
		screen.SetContent(col, y, bullet, nil, style)
		col = drawText(screen, col+2, y, opt.Label, style) + 3
	}

	if len(r.options) > 0 && r.options[r.selected].Hint != "" {
		hint := r.options[r.selected].Hint
		drawText(screen, start, y+1, hint, bg.Foreground(MenuColors.Hint))
	}
	return 2
}

// Selected returns the index of the selected option.
func (r *RadioSelect) Selected() int {
	return r.selected
}

// SetSelected selects options[index]. Out of range indexes are ignored.
func (r *RadioSelect) SetSelected(index int) {
	if index < 0 || index >= len(r.options) || index == r.selected {
		return
	}
	r.selected = index
	if r.changed != nil {
		r.changed(index)
	}
}
