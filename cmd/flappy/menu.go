package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant and Tab to
browse journaled runs. Pressing B on the game over screen returns here.

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := configureGames(); err != nil {
		return err
	}

	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openStore()
	if err != nil {
		logger.Warn("run journal unavailable", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	seeded := flagSeed != 0

	for {
		res, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		if res.Quit {
			return nil
		}

		if res.WantRuns {
			goBack, err := runsBrowser(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		if res.GameID == "" {
			return nil
		}
		game, err := registry.Create(res.GameID)
		if err != nil {
			return err
		}

		// A fixed --seed replays the same course each time; otherwise every
		// game gets a fresh one.
		if !seeded {
			cfg.Seed = resolveSeed(0)
		}
		logger.Info("starting game", "game", res.GameID, "seed", cfg.Seed)

		back, err := tui.Run(game, cfg, tui.Options{Store: store, Logger: logger, AllowBack: true})
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}

// runsBrowser opens the journal browser, or just goes back without a journal.
func runsBrowser(store *storage.Store, w, h int) (bool, error) {
	if store == nil {
		return true, nil
	}
	return tui.RunRunsBrowser(store, w, h)
}
