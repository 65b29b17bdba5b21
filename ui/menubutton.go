package ui

import (
	"github.com/gdamore/tcell/v2"
)

// MenuButton is a styled button component. A disabled button is drawn
// dimmed and ignores keys and clicks.
type MenuButton struct {
	label    string
	key      rune
	primary  bool
	focused  bool
	disabled bool
	onSelect func()

	// position of the last draw, for mouse hit testing
	x, y, width int
}

// NewMenuButton creates a new menu button. key is the shortcut shown in
// front of the label, or 0 for none.
func NewMenuButton(label string, key rune, primary bool, onSelect func()) *MenuButton {
	return &MenuButton{
		label:    label,
		key:      key,
		primary:  primary,
		onSelect: onSelect,
		width:    -1,
	}
}

// SetFocused sets the focus state.
func (b *MenuButton) SetFocused(focused bool) {
	b.focused = focused
}

// SetDisabled enables or disables the button.
func (b *MenuButton) SetDisabled(disabled bool) {
	b.disabled = disabled
}

// Disabled reports whether the button ignores input.
func (b *MenuButton) Disabled() bool {
	return b.disabled
}

// Select runs the button action unless the button is disabled.
func (b *MenuButton) Select() bool {
	if b.disabled || b.onSelect == nil {
		return false
	}
	b.onSelect()
	return true
}

// HandleKey processes keyboard input. Returns true if handled.
func (b *MenuButton) HandleKey(event *tcell.EventKey) bool {
	if event.Key() == tcell.KeyEnter {
		b.Select()
		return true
	}
	return false
}

// Contains reports whether screen position (x, y) lies on the button as it
// was last drawn.
func (b *MenuButton) Contains(x, y int) bool {
	return b.width > 0 && y == b.y && x >= b.x && x < b.x+b.width
}

func (b *MenuButton) text() string {
	label := b.label
	if b.key != 0 {
		label = string(b.key) + " " + label
	}
	if b.primary {
		label = "▶ " + label
	}
	return label
}

// Draw renders the button component at the given position.
// Returns the width used.
func (b *MenuButton) Draw(screen tcell.Screen, x, y int) int {
	label := b.text()
	width := b.Width()
	b.x, b.y, b.width = x, y, width

	switch {
	case b.disabled:
		style := tcell.StyleDefault.
			Foreground(MenuColors.Border).
			Background(MenuColors.CardBG)
		screen.SetContent(x, y, ' ', nil, style)
		col := x + 1
		for _, ch := range label {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
		screen.SetContent(col, y, ' ', nil, style)
	case b.focused:
		style := tcell.StyleDefault.
			Foreground(MenuColors.ButtonText).
			Background(MenuColors.ButtonFocus)
		for i := 0; i < width; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		col := x + 1
		for _, ch := range label {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
	default:
		labelStyle := tcell.StyleDefault.
			Foreground(MenuColors.Label).
			Background(MenuColors.CardBG)
		bracketStyle := tcell.StyleDefault.
			Foreground(MenuColors.Border).
			Background(MenuColors.CardBG)

		screen.SetContent(x, y, '[', nil, bracketStyle)
		col := x + 1
		for _, ch := range label {
			screen.SetContent(col, y, ch, nil, labelStyle)
			col++
		}
		screen.SetContent(col, y, ']', nil, bracketStyle)
	}

	return width
}

// Width returns the button width.
func (b *MenuButton) Width() int {
	return len([]rune(b.text())) + 2 // brackets or padding
}
