// starmap is a space-flight roadmap campaign with an arena boss fight,
// playable in the terminal, over SSH or in a window.
//
// Usage:
//
//	starmap play             - Play in the terminal
//	starmap play --window    - Play in a desktop window
//	starmap serve            - Start SSH server for remote play
//	starmap times            - Show best run times and arena record
//	starmap levels <run-id>  - Preview the generated levels of a run
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.starmap/starmap.db)
//	--config <path>       - Custom tuning YAML
//	--catalog <path>      - Custom planet catalog YAML
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starmap/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagCatalog    string
	flagDifficulty string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starmap",
	Short: "Starmap - fly the roadmap, collect shards, beat the boss",
	Long: `Starmap is a 2D space-flight game. Each level is a grid of planets:
land on them to collect shards, meet the quota and fly through the gate.
An arena boss fight waits behind the gate of the last level.

Available commands:
  play     - Play in the terminal or a window
  serve    - Start SSH server for remote play
  times    - View best run times and arena record
  levels   - Preview the levels of a run id

Examples:
  starmap play
  starmap play --window --sound
  starmap play --difficulty hard
  starmap serve --ssh :2222
  starmap times`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.starmap/starmap.db", "Path to times database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to custom planet catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages to stderr")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(timesCmd)
	rootCmd.AddCommand(levelsCmd)
}

// loadGameConfig reads the tuning and catalog named by the global flags and
// applies the difficulty preset. Errors exit the process.
func loadGameConfig() (*config.Tuning, *config.Catalog) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (want easy, normal or hard)\n", flagDifficulty)
		os.Exit(1)
	}

	tuning, err := config.LoadTuning(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.ApplyPreset(&tuning, preset)

	catalog, err := config.LoadCatalog(flagCatalog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}
	return &tuning, &catalog
}

// newLogger returns a stderr logger. Without --verbose only warnings and
// errors are shown so the terminal frontend is not disturbed.
func newLogger(prefix string) *log.Logger {
	level := log.WarnLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}
