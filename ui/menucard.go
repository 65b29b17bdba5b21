package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuCard is a styled card container with rounded borders, a spaced-out
// title and an optional subtitle.
type MenuCard struct {
	*tview.Box
	title    string
	subtitle string
	focused  bool
}

// NewMenuCard creates a new menu card with the given title.
func NewMenuCard(title, subtitle string) *MenuCard {
	return &MenuCard{
		Box:      tview.NewBox(),
		title:    title,
		subtitle: subtitle,
	}
}

// SetSubtitle replaces the line shown under the title.
func (c *MenuCard) SetSubtitle(subtitle string) {
	c.subtitle = subtitle
}

func (c *MenuCard) borderStyle() tcell.Style {
	borderColor := MenuColors.Border
	if c.focused {
		borderColor = MenuColors.BorderFocus
	}
	return tcell.StyleDefault.Foreground(borderColor).Background(MenuColors.CardBG)
}

// DrawCard renders the card frame. It is called by the primitives that
// embed a card before they draw their content.
func (c *MenuCard) DrawCard(screen tcell.Screen) {
	x, y, width, height := c.GetInnerRect()
	if width < 10 || height < 5 {
		return
	}

	borderStyle := c.borderStyle()
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)

	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
	}

	screen.SetContent(x, y, '╭', nil, borderStyle)
	screen.SetContent(x+width-1, y, '╮', nil, borderStyle)
	screen.SetContent(x, y+height-1, '╰', nil, borderStyle)
	screen.SetContent(x+width-1, y+height-1, '╯', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, y, '─', nil, borderStyle)
		screen.SetContent(col, y+height-1, '─', nil, borderStyle)
	}
	for row := y + 1; row < y+height-1; row++ {
		screen.SetContent(x, row, '│', nil, borderStyle)
		screen.SetContent(x+width-1, row, '│', nil, borderStyle)
	}

	if c.title == "" {
		return
	}
	titleStyle := tcell.StyleDefault.Foreground(MenuColors.Title).Background(MenuColors.CardBG).Bold(true)
	accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)
	hintStyle := tcell.StyleDefault.Foreground(MenuColors.Hint).Background(MenuColors.CardBG)

	// "gomoku" is drawn as "◎  G O M O K U"
	spaced := strings.Join(strings.Split(strings.ToUpper(c.title), ""), " ")
	titleLen := len([]rune(spaced)) + 3
	titleX := x + (width-titleLen)/2
	screen.SetContent(titleX, y+2, '◎', nil, accentStyle)
	drawText(screen, titleX+3, y+2, spaced, titleStyle)

	if c.subtitle != "" {
		subX := x + (width-len([]rune(c.subtitle)))/2
		drawText(screen, subX, y+3, c.subtitle, hintStyle)
	}

	c.DrawDivider(screen, y+4)
}

// ContentRect returns the area below the title divider.
func (c *MenuCard) ContentRect() (int, int, int, int) {
	x, y, width, height := c.GetInnerRect()
	if c.title == "" {
		return x + 2, y + 1, width - 4, height - 2
	}
	return x + 2, y + 6, width - 4, height - 7
}

// DrawDivider draws a horizontal divider at the given y position.
func (c *MenuCard) DrawDivider(screen tcell.Screen, divY int) {
	x, _, width, _ := c.GetInnerRect()
	borderStyle := c.borderStyle()

	screen.SetContent(x, divY, '├', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, divY, '─', nil, borderStyle)
	}
	screen.SetContent(x+width-1, divY, '┤', nil, borderStyle)
}

// SetFocused sets the focus state of the card.
func (c *MenuCard) SetFocused(focused bool) {
	c.focused = focused
}
