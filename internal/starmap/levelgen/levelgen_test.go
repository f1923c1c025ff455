package levelgen

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/starmap/internal/config"
	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

func TestGenerateDeterminism(t *testing.T) {
	cat := config.DefaultCatalog()
	grid := config.DefaultTuning().Grid

	a := Generate(1, &cat, "abc-L1", grid)
	b := Generate(1, &cat, "abc-L1", grid)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different layouts:\n%v\n%v", a, b)
	}

	c := Generate(1, &cat, "abc-L2", grid)
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds produced identical layouts")
	}
}

func TestRandMatchesReferenceStream(t *testing.T) {
	// djb2("a") = 5381*33 + 97
	if got := hashString("a"); got != 177670 {
		t.Errorf("hashString(a) = %d, want 177670", got)
	}

	r := NewRand("abc-L1")
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v out of [0,1)", v)
		}
	}

	r = NewRand("range")
	for i := 0; i < 1000; i++ {
		v := r.IntRange(2, 5)
		if v < 2 || v > 5 {
			t.Fatalf("IntRange(2,5) = %d", v)
		}
	}
}

func TestGenerateLayoutRules(t *testing.T) {
	cat := config.DefaultCatalog()
	grid := config.DefaultTuning().Grid

	for level := 1; level <= grid.MaxLevel; level++ {
		for _, seed := range []string{"abc", "xyz", "run-42", ""} {
			nodes := Generate(level, &cat, seed, grid)

			if nodes[0].Kind != world.NodeStart || nodes[0].X != 1 || nodes[0].Y != grid.Height/2 {
				t.Fatalf("start misplaced: %+v", nodes[0])
			}
			if nodes[1].Kind != world.NodeGate || nodes[1].X != grid.Width-2 {
				t.Fatalf("gate misplaced: %+v", nodes[1])
			}
			if nodes[1].Y < 1 || nodes[1].Y > grid.Height-2 {
				t.Errorf("gate row %d out of range", nodes[1].Y)
			}

			planets := 0
			stations := 0
			seen := map[[2]int]bool{}
			var colors []world.ShardColor
			for _, n := range nodes {
				key := [2]int{n.X, n.Y}
				if n.Kind != world.NodeStation && seen[key] {
					t.Errorf("level %d seed %q: two nodes share cell %v", level, seed, key)
				}
				seen[key] = true
				switch n.Kind {
				case world.NodePlanet:
					planets++
					colors = append(colors, n.Color)
					if n.ID == "" {
						t.Errorf("planet without id: %+v", n)
					}
				case world.NodeStation:
					stations++
				}
			}

			if want := len(cat.ForLevel(level)); planets != want {
				t.Errorf("level %d: %d planets, want %d", level, planets, want)
			}
			if stations < 1 || stations > 2 {
				t.Errorf("level %d: %d stations", level, stations)
			}

			// The first four colors of a level never repeat.
			limit := min(len(colors), len(world.ShardPalette))
			used := map[world.ShardColor]bool{}
			for _, c := range colors[:limit] {
				if used[c] {
					t.Errorf("level %d seed %q: color %v repeated before palette exhausted", level, seed, c)
				}
				used[c] = true
			}
		}
	}
}

func TestGeneratePlanetSeparation(t *testing.T) {
	cat := config.DefaultCatalog()
	grid := config.DefaultTuning().Grid
	nodes := Generate(3, &cat, "sep", grid)

	var fixed []world.Node
	for _, n := range nodes {
		if n.Kind == world.NodeStation {
			continue
		}
		for _, o := range fixed {
			d := core.Abs(n.X-o.X) + core.Abs(n.Y-o.Y)
			if d < minSeparation {
				t.Errorf("%v at (%d,%d) is %d from %v at (%d,%d)", n.Kind, n.X, n.Y, d, o.Kind, o.X, o.Y)
			}
		}
		fixed = append(fixed, n)
	}
}

func TestGenerateFallbackTerminates(t *testing.T) {
	// A grid too small for the separation rule forces the fallback path.
	grid := config.GridTuning{Width: 6, Height: 4, MaxLevel: 1, ShardsPerLevel: 5}
	cat := config.Catalog{Planets: []config.Planet{
		{ID: "a", Phase: 1, Order: 1},
		{ID: "b", Phase: 1, Order: 2},
		{ID: "c", Phase: 1, Order: 3},
		{ID: "d", Phase: 1, Order: 4},
		{ID: "e", Phase: 1, Order: 5},
	}}
	nodes := Generate(1, &cat, "tight", grid)

	planets := 0
	for _, n := range nodes {
		if n.Kind == world.NodePlanet {
			planets++
			if n.X < 1 || n.X > grid.Width-2 || n.Y < 0 || n.Y > grid.Height-1 {
				t.Errorf("fallback planet outside grid: %+v", n)
			}
		}
	}
	if planets != 5 {
		t.Errorf("expected every planet placed, got %d", planets)
	}
}
