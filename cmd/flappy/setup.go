package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/logging"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// configureGames pushes --config and --difficulty into the flappy package
// and checks that every variant resolves to a valid config, so a bad file
// fails here instead of mid-game.
func configureGames() error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	flappy.SetConfigPath(flagConfig)
	flappy.SetDifficultyPreset(preset)

	for _, v := range flappy.Variants() {
		if _, err := flappy.LoadConfig(v); err != nil {
			return fmt.Errorf("%s: %w", v.ID, err)
		}
	}
	return nil
}

// runtimeConfig builds the runtime config from the global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = resolveSeed(flagSeed)
	return cfg
}

func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// dbPath returns --db or the default journal location.
func dbPath() (string, error) {
	if flagDBPath != "" {
		return flagDBPath, nil
	}
	p, err := xdg.DataFile("flappy/runs.db")
	if err != nil {
		return "", fmt.Errorf("cannot resolve journal path: %w", err)
	}
	return p, nil
}

// openStore opens the run journal. Interactive commands keep going without
// it, so the caller decides whether the error is fatal.
func openStore() (*storage.Store, error) {
	path, err := dbPath()
	if err != nil {
		return nil, err
	}
	return storage.Open(path)
}

// newLogger builds a logger writing to w at --log-level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	lvl, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{Level: lvl, Writer: w, Prefix: prefix}), nil
}

// fileLogger opens the log file for commands that own the terminal.
// The returned closer must be called on exit.
func fileLogger() (*log.Logger, func(), error) {
	f, err := logging.OpenFile(flagLogFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(f, "flappy")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}
