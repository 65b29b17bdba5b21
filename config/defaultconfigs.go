package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		UseGridLines: true,
		Colors: ConfigColors{
			BoardColor:        180,
			BlackColor:        232,
			WhiteColor:        255,
			LineColor:         94,
			CursorColorBG:     4,
			HoverColorBG:      110,
			LastPlayedColorBG: 2,
			WinColorBG:        1,
		},
		Symbols: ConfigSymbols{
			BlackStone: '●',
			WhiteStone: '●',
		},
	}

	DefaultConfig = Config{
		Game: GameConfig{
			BoardSize: 15,
			WinLength: 5,
		},
		Layout: LayoutConfig{
			CellSize: 50,
			Margin:   10,
		},
		Log: LogConfig{
			Level: "info",
		},
		RecordGames: true,
		ServeAddr:   "127.0.0.1:8080",
		Theme:       DefaultTheme,
	}
}
