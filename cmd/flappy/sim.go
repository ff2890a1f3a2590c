package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagSimGames    int
	flagSimMaxTicks uint64
	flagSimWidth    int
	flagSimHeight   int
	flagSimSave     bool
	flagSimVerify   bool
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run headless games flown by the autopilot",
	Long: `Run games without a terminal UI, with the autopilot doing the flapping.

Each game uses the next seed after the previous one, so a run of games is
reproducible with --seed. Games that never crash stop at --max-ticks.

Examples:
  flappy sim
  flappy sim flappy_zen --games 50 --seed 7
  flappy sim --save --verify`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 10, "Number of games to run")
	simCmd.Flags().Uint64Var(&flagSimMaxTicks, "max-ticks", 60*60*5, "Tick limit per game")
	simCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Virtual screen width in cells")
	simCmd.Flags().IntVar(&flagSimHeight, "height", 24, "Virtual screen height in cells")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Journal every game")
	simCmd.Flags().BoolVar(&flagSimVerify, "verify", false, "Replay every game and check the result")
}

// simResult is one headless game.
type simResult struct {
	Seed  int64
	Score int
	Ticks uint64
	Cause string
	ID    int64
	Valid *bool
}

func runSim(cmd *cobra.Command, args []string) error {
	if flagSimGames <= 0 {
		return fmt.Errorf("--games must be positive, got %d", flagSimGames)
	}
	if flagSimWidth <= 0 || flagSimHeight <= 0 {
		return fmt.Errorf("invalid screen %dx%d", flagSimWidth, flagSimHeight)
	}

	variant := flappy.Classic
	if len(args) == 1 {
		v, err := flappy.VariantByID(args[0])
		if err != nil {
			return err
		}
		variant = v
	}
	if err := configureGames(); err != nil {
		return err
	}
	gameCfg, err := flappy.LoadConfig(variant)
	if err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr, "sim")
	if err != nil {
		return err
	}

	var store *storage.Store
	if flagSimSave {
		store, err = openStore()
		if err != nil {
			return err
		}
		defer store.Close()
	}

	base := resolveSeed(flagSeed)
	results := make([]simResult, 0, flagSimGames)
	for i := range flagSimGames {
		rc := core.RuntimeConfig{
			ScreenW:  flagSimWidth,
			ScreenH:  flagSimHeight,
			TickRate: flagFPS,
			Seed:     base + int64(i),
		}
		game := flappy.New(variant)
		game.SetConfig(gameCfg)
		game.SetAutopilot(true)

		res, err := simulate(game, rc, store, logger)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	printSimResults(cmd, variant, results)
	if flagSimVerify {
		bad := lo.CountBy(results, func(r simResult) bool { return r.Valid != nil && !*r.Valid })
		if bad > 0 {
			return fmt.Errorf("%d of %d replays diverged", bad, len(results))
		}
	}
	return nil
}

// simulate plays one game to its end or the tick limit.
func simulate(game *flappy.Game, rc core.RuntimeConfig, store *storage.Store, logger *log.Logger) (simResult, error) {
	game.Reset(rc)
	sess := game.Session()
	in := core.NewInputFrame()
	every := uint64(rc.TickRate) * 5
	for !sess.GameOver() && sess.Tick() < flagSimMaxTicks {
		game.Step(in)
		if sess.Tick()%every == 0 {
			sn := sess.Snapshot()
			logger.Debug("snapshot",
				"seed", rc.Seed,
				"tick", sn.Tick,
				"score", sn.Score,
				"difficulty", sn.Difficulty,
				"spawn_threshold", sn.SpawnThreshold,
				"obstacles", len(sn.Obstacles),
				"y", sn.Character.Y)
		}
	}

	rec, err := game.Record()
	if err != nil {
		return simResult{}, err
	}
	res := simResult{Seed: rc.Seed, Score: rec.Score, Ticks: rec.Ticks, Cause: rec.Cause}
	logger.Debug("game finished", "seed", rc.Seed, "score", rec.Score, "ticks", rec.Ticks, "cause", rec.Cause)

	if flagSimVerify {
		rr, err := flappy.Replay(rec)
		if err != nil {
			return simResult{}, err
		}
		res.Valid = lo.ToPtr(rr.Match)
		if !rr.Match {
			logger.Warn("replay diverged", "seed", rc.Seed, "score", rec.Score, "replayed", rr.Score)
		}
	}

	if store != nil {
		id, err := store.SaveRun(rec)
		if err != nil {
			return simResult{}, err
		}
		res.ID = id
	}
	return res, nil
}

func printSimResults(cmd *cobra.Command, v flappy.Variant, results []simResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s - %d games\n\n", v.Title, len(results))
	fmt.Fprintf(out, "  %-20s  %6s  %8s  %-8s  %s\n", "Seed", "Score", "Ticks", "Cause", "Run")
	fmt.Fprintf(out, "  %-20s  %6s  %8s  %-8s  %s\n", "----", "-----", "-----", "-----", "---")
	for _, r := range results {
		run := "-"
		if r.ID > 0 {
			run = fmt.Sprintf("#%d", r.ID)
		}
		if r.Valid != nil {
			run += lo.Ternary(*r.Valid, " ok", " DIVERGED")
		}
		fmt.Fprintf(out, "  %-20d  %6d  %8d  %-8s  %s\n", r.Seed, r.Score, r.Ticks, causeOrDash(r.Cause), run)
	}

	scores := lo.Map(results, func(r simResult, _ int) int { return r.Score })
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best %d, mean %.1f\n", lo.Max(scores), float64(lo.Sum(scores))/float64(len(scores)))
}
