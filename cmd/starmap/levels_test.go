package main

import (
	"strings"
	"testing"

	"github.com/vovakirdan/starmap/internal/config"
	"github.com/vovakirdan/starmap/internal/starmap/levelgen"
	"github.com/vovakirdan/starmap/internal/starmap/roadmap"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

func TestDrawGridMarksNodes(t *testing.T) {
	grid := config.GridTuning{Width: 6, Height: 3}
	nodes := []world.Node{
		{Kind: world.NodeStart, X: 0, Y: 1},
		{Kind: world.NodeGate, X: 5, Y: 0},
		{Kind: world.NodePlanet, X: 2, Y: 2},
		{Kind: world.NodeStation, X: 3, Y: 1},
		{Kind: world.NodePlanet, X: 99, Y: 0}, // off grid
	}

	got := drawGrid(nodes, grid)
	want := "  .....G\n  S..$..\n  ..1...\n"
	if got != want {
		t.Errorf("drawGrid() =\n%s\nwant\n%s", got, want)
	}
}

func TestLevelPreviewMatchesRun(t *testing.T) {
	tuning := config.DefaultTuning()
	catalog := config.DefaultCatalog()

	run := roadmap.NewRun("preview", roadmap.Env{Tuning: &tuning, Catalog: &catalog, Particles: world.NewParticles(1)})
	nodes := levelgen.Generate(1, &catalog, roadmap.LevelSeed("preview", 1), tuning.Grid)

	if len(nodes) != len(run.Current.Nodes) {
		t.Fatalf("preview has %d nodes, run has %d", len(nodes), len(run.Current.Nodes))
	}
	for i := range nodes {
		if nodes[i] != run.Current.Nodes[i] {
			t.Errorf("node %d: preview %+v, run %+v", i, nodes[i], run.Current.Nodes[i])
		}
	}

	rows := strings.Split(strings.TrimRight(drawGrid(nodes, tuning.Grid), "\n"), "\n")
	if len(rows) != tuning.Grid.Height {
		t.Errorf("grid has %d rows, want %d", len(rows), tuning.Grid.Height)
	}
}
