package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsBrowse bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [variant]",
	Short: "List journaled runs",
	Long: `Show the most recent journaled runs, optionally for one variant.

Examples:
  flappy runs
  flappy runs flappy_zen --limit 50
  flappy runs --browse
  flappy runs replay 12`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

var runsReplayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a journaled run and check its score",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsReplay,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsBrowse, "browse", false, "Open the interactive browser")
	runsCmd.AddCommand(runsReplayCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown variant %q, run 'flappy list' to see available variants", gameID)
		}
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer store.Close()

	if flagRunsBrowse {
		cfg := runtimeConfig()
		_, err := tui.RunRunsBrowser(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	runs, err := store.RecentRuns(gameID, flagRunsLimit)
	if err != nil {
		return fmt.Errorf("reading runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs yet. Be the first to play!")
		return nil
	}

	fmt.Fprintf(out, "  %5s  %-12s  %6s  %8s  %-8s  %-20s  %s\n", "ID", "Variant", "Score", "Ticks", "Cause", "Seed", "Date")
	fmt.Fprintf(out, "  %5s  %-12s  %6s  %8s  %-8s  %-20s  %s\n", "--", "-------", "-----", "-----", "-----", "----", "----")
	for _, r := range runs {
		fmt.Fprintf(out, "  %5d  %-12s  %6d  %8d  %-8s  %-20d  %s\n",
			r.ID, r.GameID, r.Score, r.Ticks, causeOrDash(r.Cause), r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runRunsReplay(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer store.Close()

	run, err := store.GetRun(id)
	if errors.Is(err, storage.ErrRunNotFound) {
		return fmt.Errorf("no run #%d in the journal", id)
	}
	if err != nil {
		return err
	}

	res, err := flappy.Replay(run)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run #%d (%s, seed %d, %d flaps)\n", run.ID, run.GameID, run.Seed, len(run.Flaps))
	fmt.Fprintf(out, "  recorded: score %d, cause %s, %d ticks\n", run.Score, causeOrDash(run.Cause), run.Ticks)
	fmt.Fprintf(out, "  replayed: score %d, cause %s, %d ticks\n", res.Score, causeOrDash(res.Cause), res.Ticks)
	if !res.Match {
		return fmt.Errorf("run #%d does not replay to its recorded result", id)
	}
	fmt.Fprintln(out, "  ok")
	return nil
}

// causeOrDash renders the cause of runs that stopped without crashing.
func causeOrDash(c string) string {
	return lo.Ternary(c == "", "-", c)
}
