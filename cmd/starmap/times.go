package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/starmap/internal/platform/tui"
	"github.com/vovakirdan/starmap/internal/starmap/world"
	"github.com/vovakirdan/starmap/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagClear       bool
)

var timesCmd = &cobra.Command{
	Use:   "times",
	Short: "Show best run times and the arena record",
	Long: `Display the fastest completed runs and arena statistics.

Examples:
  starmap times
  starmap times --limit 20
  starmap times --interactive
  starmap times --clear`,
	Args: cobra.NoArgs,
	Run:  runTimes,
}

func init() {
	timesCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of runs to show")
	timesCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse times in a scoreboard")
	timesCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run time")
}

func runTimes(_ *cobra.Command, _ []string) {
	// Open times storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening times database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing times: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run times cleared.")
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.BestRuns(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving times: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Best Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs completed yet.")
		fmt.Println()
		fmt.Println("Play 'starmap play' to set the first time!")
	} else {
		fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "Rank", "Time", "Run", "Date")
		fmt.Printf("  %-4s  %-10s  %-10s  %s\n", "----", "----", "---", "----")
		for i, entry := range runs {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10s  %-10s  %s\n", i+1, world.FormatMs(entry.TotalMs), entry.RunID, dateStr)
		}
	}

	stats, err := store.GetArenaStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving arena stats: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Println("Arena")
	fmt.Println()
	fmt.Println("  " + tui.FormatArenaStats(stats))
}
