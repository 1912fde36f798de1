package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/assets"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/engine"
	"github.com/vovakirdan/tui-shooter/internal/logging"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

// loadConfig reads the configuration and applies command line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagFPS != 0 {
		cfg.Runtime.FPS = flagFPS
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("--fps: %w", err)
		}
	}
	return cfg, nil
}

// newLogger builds the logger; file is used when --log-file is not set.
func newLogger(prefix, file string) (*log.Logger, io.Closer, error) {
	if flagLogFile != "" {
		file = flagLogFile
	}
	return logging.New(logging.Options{
		Prefix: prefix,
		Level:  flagLogLevel,
		File:   file,
	})
}

// defaultLogFile returns ~/.shooter/shooter.log, or empty to log to stderr.
func defaultLogFile() string {
	dir := config.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "shooter.log")
}

// openStore opens the session log. Failures are logged, not fatal: the game
// still works without it.
func openStore(logger *log.Logger) *storage.Store {
	if flagDBPath == "" {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open session log", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// currentUser names the local player for the session log.
func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

func loadAssets() *assets.Loader {
	return assets.New(flagAssets)
}

// viewFactory starts the runtime at the registered view id.
func viewFactory(id string) (engine.Factory, error) {
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown view %q, run 'shooter list' to see available views", id)
	}
	return func(ctx *engine.Context) (engine.View, error) {
		return registry.Create(id, ctx)
	}, nil
}
