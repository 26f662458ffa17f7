// gems is a match-3 gem puzzle for the terminal.
//
// Usage:
//
//	gems list              - List available modes
//	gems play <mode>       - Play a mode
//	gems menu              - Start menu to pick modes interactively
//	gems serve             - Start SSH server for remote play
//	gems scores [mode]     - Show high scores
//	gems sim               - Autoplay sessions without a terminal
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.gems/scores.db)
//	--log-level <level>  - Set log level (debug, info, warn, error)
//
// Flag defaults can be set with GEMS_FPS, GEMS_SEED, GEMS_DB, GEMS_LOG_LEVEL,
// GEMS_CONFIG, GEMS_SSH_ADDR and GEMS_HOST_KEY.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gem-arcade/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/gem-arcade/internal/games/gems"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gems",
	Short: "Gems - Match-3 puzzles in your terminal",
	Long: `Gems is a terminal match-3 puzzle. Swap neighbouring gems to line up
three or more of a kind, chain cascades for combo bonuses and make striped
and bomb gems from longer runs.

Available commands:
  list     - Show all available modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Autoplay sessions and report scores

Examples:
  gems list
  gems play gems_timed
  gems menu
  gems serve --ssh :2222
  gems scores gems`,
	SilenceUsage: true,
}

// env holds the environment defaults for flags.
var env = loadEnv()

func loadEnv() config.Env {
	e, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		e = config.Env{DBPath: "~/.gems/scores.db", FPS: 30, SSHAddr: ":23234", LogLevel: "info"}
	}
	return e
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", env.FPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", env.Seed, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", env.DBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger creates a stderr logger honouring --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
