package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: flappy).

Controls:
  Space/Up/Click  - Flap
  P/Esc           - Pause
  R/Enter         - Restart (after game over)
  A               - Toggle autopilot
  Ctrl+S          - Save a screenshot
  Y               - Copy the seed to the clipboard
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Slow progression
  normal - Default progression
  hard   - Fast progression, tighter spacing
  fixed  - No progression

Examples:
  flappy play
  flappy play flappy_zen
  flappy play --difficulty hard --seed 42
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := flappy.Classic.ID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'flappy list' to see available variants", gameID)
	}
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

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	cfg := runtimeConfig()
	logger.Info("starting game", "game", gameID, "seed", cfg.Seed, "fps", cfg.TickRate)

	_, err = tui.Run(game, cfg, tui.Options{Store: store, Logger: logger})
	return err
}
