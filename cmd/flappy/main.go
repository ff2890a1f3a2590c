// flappy is a side-scrolling flapping game for the terminal.
//
// Usage:
//
//	flappy list              - List game variants
//	flappy play [variant]    - Play a variant (default: flappy)
//	flappy menu              - Pick a variant interactively
//	flappy serve             - Start SSH server for remote play
//	flappy sim               - Run headless autopilot games
//	flappy runs              - List journaled runs
//	flappy runs replay <id>  - Re-simulate a journaled run
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set run journal path (default: $XDG_DATA_HOME/flappy/runs.db)
//	--config <path>        - Load game config from YAML
//	--difficulty <preset>  - easy, normal, hard or fixed
//	--log-level <level>    - debug, info, warn or error
//	--log-file <path>      - Log file for interactive commands
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - a flapping game for your terminal",
	Long: `Flappy is a side-scrolling game played in the terminal: flap to keep
the character in the air and slip through the gaps between obstacles.

Every finished run is journaled with its seed and flap ticks, so it can be
replayed and verified later.

Examples:
  flappy play
  flappy play flappy_zen --difficulty fixed
  flappy menu
  flappy serve --ssh :2222
  flappy sim --games 20 --save
  flappy runs replay 12`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run journal (default $XDG_DATA_HOME/flappy/runs.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default $XDG_STATE_HOME/flappy/flappy.log)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
}
