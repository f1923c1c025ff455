package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starmap/internal/config"
	"github.com/vovakirdan/starmap/internal/starmap/levelgen"
	"github.com/vovakirdan/starmap/internal/starmap/roadmap"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

var flagLevel int

var levelsCmd = &cobra.Command{
	Use:   "levels <run-id>",
	Short: "Preview the generated levels of a run",
	Long: `Print the node layout every level of a run would use.

Level layouts are a pure function of the run id, the level number and the
planet catalog, so the same run id always yields the same map.

Legend:
  S  start pad    G  gate    $  station
  1-9 planets in catalog order

Examples:
  starmap levels a1b2c3
  starmap levels a1b2c3 --level 2
  starmap levels a1b2c3 --catalog ./my-catalog.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().IntVarP(&flagLevel, "level", "l", 0, "Only show this level (0 = all)")
}

func runLevels(_ *cobra.Command, args []string) {
	runID := args[0]
	tuning, catalog := loadGameConfig()

	first, last := 1, tuning.Grid.MaxLevel
	if flagLevel != 0 {
		if flagLevel < 1 || flagLevel > tuning.Grid.MaxLevel {
			fmt.Fprintf(os.Stderr, "Error: level must be between 1 and %d\n", tuning.Grid.MaxLevel)
			os.Exit(1)
		}
		first, last = flagLevel, flagLevel
	}

	for level := first; level <= last; level++ {
		nodes := levelgen.Generate(level, catalog, roadmap.LevelSeed(runID, level), tuning.Grid)
		fmt.Printf("Level %d\n\n", level)
		fmt.Print(drawGrid(nodes, tuning.Grid))
		fmt.Println()
		printNodes(nodes)
		fmt.Println()
	}
}

func drawGrid(nodes []world.Node, grid config.GridTuning) string {
	rows := make([][]byte, grid.Height)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", grid.Width))
	}

	planet := 0
	for _, n := range nodes {
		if n.X < 0 || n.X >= grid.Width || n.Y < 0 || n.Y >= grid.Height {
			continue
		}
		var c byte
		switch n.Kind {
		case world.NodeStart:
			c = 'S'
		case world.NodeGate:
			c = 'G'
		case world.NodeStation:
			c = '$'
		case world.NodePlanet:
			planet++
			c = '0' + byte(min(planet, 9))
		}
		rows[n.Y][n.X] = c
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString("  ")
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func printNodes(nodes []world.Node) {
	fmt.Printf("  %-8s  %-7s  %-8s  %s\n", "Kind", "Cell", "Color", "Planet")
	fmt.Printf("  %-8s  %-7s  %-8s  %s\n", "----", "----", "-----", "------")
	for _, n := range nodes {
		cell := fmt.Sprintf("%d,%d", n.X, n.Y)
		if n.Kind != world.NodePlanet {
			fmt.Printf("  %-8s  %-7s\n", n.Kind, cell)
			continue
		}
		fmt.Printf("  %-8s  %-7s  %-8s  %s (%s)\n", n.Kind, cell, n.Color, n.Title, n.ShardName)
	}
}
