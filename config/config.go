package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"termgomoku/engine"
	"termgomoku/pointer"
)

var (
	appDir  = "termgomoku"
	cfgFile = filepath.Join(appDir, "config.json")
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board"`
	BlackColor        int `json:"black"`
	WhiteColor        int `json:"white"`
	LineColor         int `json:"line"`
	CursorColorBG     int `json:"cursor_bg"`
	HoverColorBG      int `json:"hover_bg"`
	LastPlayedColorBG int `json:"last_played_bg"`
	WinColorBG        int `json:"win_bg"`
}

type ConfigSymbols struct {
	BlackStone rune `json:"black"`
	WhiteStone rune `json:"white"`
}

type Theme struct {
	UseGridLines bool          `json:"use_grid_lines"`
	Colors       ConfigColors  `json:"colors"`
	Symbols      ConfigSymbols `json:"symbols"`
}

// GameConfig holds the defaults offered for a new game.
type GameConfig struct {
	BoardSize int `json:"board_size" env:"GOMOKU_BOARD_SIZE" env-default:"15"`
	WinLength int `json:"win_length" env:"GOMOKU_WIN_LENGTH" env-default:"5"`
}

// LayoutConfig is the pixel layout browser renderers draw with.
type LayoutConfig struct {
	CellSize float64 `json:"cell_size" env:"GOMOKU_CELL_SIZE" env-default:"50"`
	Margin   float64 `json:"margin" env:"GOMOKU_MARGIN" env-default:"10"`
	OriginX  float64 `json:"origin_x" env:"GOMOKU_ORIGIN_X"`
	OriginY  float64 `json:"origin_y" env:"GOMOKU_ORIGIN_Y"`
}

// LogConfig selects the log level and, for the terminal UI, the log file.
type LogConfig struct {
	Level string `json:"level" env:"GOMOKU_LOG_LEVEL" env-default:"info"`
	File  string `json:"file" env:"GOMOKU_LOG_FILE"`
}

type Config struct {
	Game        GameConfig   `json:"game"`
	Layout      LayoutConfig `json:"layout"`
	Log         LogConfig    `json:"log"`
	HistoryDir  string       `json:"history_dir" env:"GOMOKU_HISTORY_DIR"`
	RecordGames bool         `json:"record_games" env:"GOMOKU_RECORD_GAMES"`
	ServeAddr   string       `json:"serve_addr" env:"GOMOKU_SERVE_ADDR" env-default:"127.0.0.1:8080"`
	Theme       Theme        `json:"theme"`

	path string
}

// LoadDotEnv loads environment variables from .env files, if present.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// InitConfig reads the configuration from path, or from the XDG config
// directories when path is empty, then applies GOMOKU_* environment overrides.
func InitConfig(path string) (*Config, error) {
	config := DefaultConfig
	if path == "" {
		if found, err := xdg.SearchConfigFile(cfgFile); err == nil {
			path = found
		}
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &config); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		config.path = path
	} else if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("read config from env: %w", err)
	}

	if config.HistoryDir == "" {
		config.HistoryDir = filepath.Join(xdg.DataHome, appDir, "history")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.EngineConfig().Validate(); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if err := c.PointerLayout(c.Game.BoardSize).Validate(); err != nil {
		return &InvalidConfig{"layout: " + err.Error()}
	}
	if _, ok := logLevels[strings.ToLower(c.Log.Level)]; !ok {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.Log.Level)}
	}
	for _, r := range []rune{c.Theme.Symbols.BlackStone, c.Theme.Symbols.WhiteStone} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	return nil
}

// EngineConfig returns the configured game defaults.
func (c *Config) EngineConfig() engine.GameConfig {
	return engine.GameConfig{
		BoardSize: c.Game.BoardSize,
		WinLength: c.Game.WinLength,
	}
}

// PointerLayout returns the configured pixel layout for a board of the given size.
func (c *Config) PointerLayout(size int) pointer.Layout {
	return pointer.Layout{
		CellSize: c.Layout.CellSize,
		Margin:   c.Layout.Margin,
		Origin:   pointer.Point{X: c.Layout.OriginX, Y: c.Layout.OriginY},
		Size:     size,
	}
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// LogLevel returns the slog level named by the config.
func (c *Config) LogLevel() slog.Level {
	return logLevels[strings.ToLower(c.Log.Level)]
}

// LogFile returns the file the terminal UI logs to.
func (c *Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	return xdg.StateFile(filepath.Join(appDir, "termgomoku.log"))
}

// Save writes the config back to the file it was read from, or to the
// user's XDG config directory.
func (c *Config) Save() error {
	absPath := c.path
	if absPath == "" {
		var err error
		absPath, err = xdg.ConfigFile(cfgFile)
		if err != nil {
			return err
		}
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}
