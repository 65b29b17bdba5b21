package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette of the setup card, control bar and history
// screen. Values are xterm-256 palette indexes.
var MenuColors = struct {
	Border      tcell.Color
	BorderFocus tcell.Color
	CardBG      tcell.Color
	Title       tcell.Color
	TitleAccent tcell.Color
	Label       tcell.Color
	Hint        tcell.Color
	Selected    tcell.Color
	Unselected  tcell.Color
	ButtonFocus tcell.Color
	ButtonText  tcell.Color
}{
	Border:      tcell.PaletteColor(95),  // dull rose
	BorderFocus: tcell.PaletteColor(180), // board wood
	CardBG:      tcell.PaletteColor(235),
	Title:       tcell.PaletteColor(255),
	TitleAccent: tcell.PaletteColor(180),
	Label:       tcell.PaletteColor(250),
	Hint:        tcell.PaletteColor(244),
	Selected:    tcell.PaletteColor(179),
	Unselected:  tcell.PaletteColor(242),
	ButtonFocus: tcell.PaletteColor(137),
	ButtonText:  tcell.PaletteColor(255),
}
