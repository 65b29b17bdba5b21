// termgomoku is a terminal application to play Gomoku (five in a row)
// hot-seat, with an optional JSON API for browser front ends.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termgomoku/config"
	"termgomoku/engine"
	"termgomoku/ui"
	"termgomoku/web"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagBoardSize  = flag.Int("boardsize", 0, "Board size (1-25)")
	flagWinLength  = flag.Int("winlength", 0, "Stones in a row needed to win")
	flagQuickStart = flag.Bool("play", false, "Start a game immediately, skipping the setup screen")
	flagServe      = flag.String("serve", "", "Serve the JSON API on ADDR (\"config\" for the configured address) instead of starting the terminal UI")
	flagConfig     = flag.String("config", "", "Path to a config file")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.GomokuBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var historyUI *ui.HistoryBrowserUI
var ctrl *engine.Controller
var cfg *config.Config
var appLog *slog.Logger

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("termgomoku %s\n", Version)
		return
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var err error
	cfg, err = config.InitConfig(*flagConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	gameCfg, err := gameConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *flagServe != "" {
		logger := initLogger(os.Stdout)
		if err := serve(logger, *flagServe, gameCfg); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	logFile, err := openLogFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := runTerminal(initLogger(logFile), gameCfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel()}))
}

// openLogFile opens the log file for append. The terminal UI owns stdout.
func openLogFile() (*os.File, error) {
	path, err := cfg.LogFile()
	if err != nil {
		return nil, fmt.Errorf("locate log file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// gameConfigFromFlags starts from the configured defaults and applies flags.
func gameConfigFromFlags() (engine.GameConfig, error) {
	gameCfg := cfg.EngineConfig()
	if *flagBoardSize > 0 {
		gameCfg.BoardSize = *flagBoardSize
		if *flagWinLength == 0 && gameCfg.WinLength > gameCfg.BoardSize {
			gameCfg.WinLength = gameCfg.BoardSize
		}
	}
	if *flagWinLength > 0 {
		gameCfg.WinLength = *flagWinLength
	}
	if err := gameCfg.Validate(); err != nil {
		return gameCfg, err
	}
	return gameCfg, nil
}

// serve runs the HTTP adapter until SIGINT or SIGTERM.
func serve(logger *slog.Logger, addr string, gameCfg engine.GameConfig) error {
	log := logger.With("component", "app")
	if addr == "config" {
		addr = cfg.ServeAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := engine.NewController(gameCfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           web.NewServer(c, web.Options{Defaults: gameCfg, Layout: cfg.PointerLayout(gameCfg.BoardSize)}, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "addr", addr, "size", gameCfg.BoardSize, "win_length", gameCfg.WinLength)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Received signal, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runTerminal(logger *slog.Logger, gameCfg engine.GameConfig) error {
	var err error
	ctrl, err = engine.NewController(gameCfg, logger)
	if err != nil {
		return err
	}
	appLog = logger.With("component", "app")
	appLog.Info("starting terminal ui", "version", Version, "history_dir", cfg.HistoryDir)

	app = tview.NewApplication()
	app.EnableMouse(true)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ◎ termgomoku ")

	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewGomokuBoard(app, cfg, gameHint, logger)
	gameBoard.ConnectEngine(ctrl)
	defer gameBoard.Close()

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.SelectedTile() != nil {
				gameBoard.ResetSelection()
			} else {
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		return gameBoard.HandleKey(event)
	})

	setupUI := ui.NewGameSetup(gameCfg, cfg.RecordGames,
		func(chosen engine.GameConfig, record bool) {
			startGame(chosen, record)
		},
		func() {
			historyUI.Refresh()
			rootPage.SwitchToPage("history")
		},
		func() {
			app.Stop()
		},
	)

	historyUI = ui.NewHistoryBrowser(cfg.HistoryDir, func() {
		rootPage.SwitchToPage("setup")
	})

	rootPage.AddPage("setup", ui.Centered(setupUI, 60, 20), true, !*flagQuickStart)
	rootPage.AddPage("gameview", gameFrame, true, *flagQuickStart)
	rootPage.AddPage("history", historyUI.Flex(), true, false)

	if *flagQuickStart {
		startGame(gameCfg, cfg.RecordGames)
	}

	return app.SetRoot(rootPage, true).Run()
}

// startGame starts a new game and remembers the choice for the next run.
func startGame(gameCfg engine.GameConfig, record bool) {
	gameBoard.SetRecording(record)
	if _, err := ctrl.NewGame(gameCfg.BoardSize, gameCfg.WinLength); err != nil {
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.RemovePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}

	if cfg.Game.BoardSize != gameCfg.BoardSize || cfg.Game.WinLength != gameCfg.WinLength || cfg.RecordGames != record {
		cfg.Game.BoardSize = gameCfg.BoardSize
		cfg.Game.WinLength = gameCfg.WinLength
		cfg.RecordGames = record
		if err := cfg.Save(); err != nil {
			appLog.Warn("could not save config", "error", err)
		}
	}
	rootPage.SwitchToPage("gameview")
}
