package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/vovakirdan/tui-shooter/internal/assets"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/engine"
	"github.com/vovakirdan/tui-shooter/internal/platform/term"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/storage"
	"github.com/vovakirdan/tui-shooter/internal/views/menu"
)

var flagBackend string

var playCmd = &cobra.Command{
	Use:   "play [view]",
	Short: "Play in this terminal",
	Long: `Start the runtime at the given view (default: the main menu).

Controls:
  Arrows/WASD/HJKL  - Move / navigate
  Space/Enter       - Select
  Esc/Q             - Back / quit
  Ctrl+S            - Screenshot (tea backend)
  Ctrl+C            - Quit

Backends:
  tcell  - Draws cells directly through tcell (default)
  tea    - Runs inside a Bubble Tea program, like SSH sessions

Terminals report key presses but not releases, so a key counts as held
until it stops auto-repeating. Tune input.hold_initial_ms and
input.hold_repeat_ms in the config if movement stutters or lingers.

Examples:
  shooter play
  shooter play ship
  shooter play --backend tea --fps 30
  shooter play --assets ./my-assets`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", "tcell", "Terminal backend: tcell or tea")
}

func runPlay(_ *cobra.Command, args []string) error {
	viewID := menu.ID
	if len(args) == 1 {
		viewID = args[0]
	}
	factory, err := viewFactory(viewID)
	if err != nil {
		return err
	}

	if !xterm.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal; use 'shooter serve' for remote play")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The game owns the terminal, so logs go to a file.
	logger, closer, err := newLogger("shooter", defaultLogFile())
	if err != nil {
		return err
	}
	defer closer.Close()

	loader := loadAssets()
	logger.Info("starting", "view", viewID, "backend", flagBackend, "fps", cfg.Runtime.FPS)

	start := time.Now()
	var stats engine.Stats
	switch flagBackend {
	case "tcell":
		stats, err = playTcell(cfg, loader, logger, factory)
	case "tea":
		stats, err = tui.RunLocal(cfg, loader, logger, factory)
	default:
		return fmt.Errorf("unknown backend %q (want tcell or tea)", flagBackend)
	}
	if err != nil {
		logger.Error("runtime failed", "error", err)
	}
	logger.Info("finished", "frames", stats.Frames, "fps", stats.LastFPS)

	if store := openStore(logger); store != nil {
		defer store.Close()
		rec := storage.Session{
			User:    currentUser(),
			View:    viewID,
			Backend: flagBackend,
		}.Finish(start, stats.Frames, stats.LastFPS, err)
		if _, saveErr := store.SaveSession(rec); saveErr != nil {
			logger.Warn("could not record session", "error", saveErr)
		}
	}
	return err
}

func playTcell(cfg config.Config, loader *assets.Loader, logger *log.Logger, factory engine.Factory) (engine.Stats, error) {
	b, err := term.Open(cfg, logger)
	if err != nil {
		return engine.Stats{}, err
	}
	defer b.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		b.Shutdown()
	}()

	return engine.Play(b, cfg, loader, logger, factory)
}
