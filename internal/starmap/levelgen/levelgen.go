// Package levelgen places roadmap nodes deterministically from a level
// number, the planet catalog and a seed string.
package levelgen

import (
	"slices"

	"github.com/vovakirdan/starmap/internal/config"
	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

const (
	placementTries = 200
	minSeparation  = 3 // Manhattan distance between planets and other nodes
)

type cell struct{ x, y int }

// Generate returns the node layout for a level. It is a pure function of its
// arguments and never fails: planets that cannot satisfy the separation rule
// within the try budget are placed without it.
func Generate(level int, catalog *config.Catalog, seed string, grid config.GridTuning) []world.Node {
	rng := NewRand(seed)
	w, h := grid.Width, grid.Height

	start := world.Node{Kind: world.NodeStart, X: 1, Y: h / 2}
	gate := world.Node{Kind: world.NodeGate, X: w - 2, Y: rng.IntRange(1, h-2)}
	nodes := []world.Node{start, gate}
	placed := []cell{{start.X, start.Y}, {gate.X, gate.Y}}

	colors := newColorPicker(rng)
	for _, p := range catalog.ForLevel(level) {
		var (
			at cell
			ok bool
		)
		for try := 0; try < placementTries && !ok; try++ {
			c := cell{rng.IntRange(2, w-3), rng.IntRange(1, h-2)}
			if occupied(placed, c) || minManhattan(placed, c) < minSeparation {
				continue
			}
			at, ok = c, true
		}
		if !ok {
			at = cell{rng.IntRange(1, w-2), rng.IntRange(0, h-1)}
		}
		nodes = append(nodes, world.Node{
			Kind:      world.NodePlanet,
			X:         at.x,
			Y:         at.y,
			ID:        p.ID,
			Title:     p.Title,
			ShardName: p.ShardName,
			Summary:   p.Summary,
			Color:     colors.next(),
		})
		placed = append(placed, at)
	}

	stations := rng.IntRange(1, 2)
	for range stations {
		for try := 0; try < placementTries; try++ {
			c := cell{rng.IntRange(2, w-3), rng.IntRange(0, h-1)}
			if occupied(placed, c) {
				continue
			}
			nodes = append(nodes, world.Node{Kind: world.NodeStation, X: c.x, Y: c.y})
			placed = append(placed, c)
			break
		}
	}
	return nodes
}

// colorPicker hands out palette colors without repeats until the palette is
// exhausted, then starts over.
type colorPicker struct {
	rng  *Rand
	used []world.ShardColor
}

func newColorPicker(rng *Rand) *colorPicker {
	return &colorPicker{rng: rng}
}

func (p *colorPicker) next() world.ShardColor {
	var available []world.ShardColor
	for _, c := range world.ShardPalette {
		if !slices.Contains(p.used, c) {
			available = append(available, c)
		}
	}
	var c world.ShardColor
	if len(available) == 0 {
		p.used = p.used[:0]
		c = world.ShardPalette[p.rng.IntRange(0, len(world.ShardPalette)-1)]
	} else {
		c = available[p.rng.IntRange(0, len(available)-1)]
	}
	p.used = append(p.used, c)
	return c
}

func occupied(placed []cell, c cell) bool {
	return slices.Contains(placed, c)
}

func minManhattan(placed []cell, c cell) int {
	m := -1
	for _, p := range placed {
		d := core.Abs(p.x-c.x) + core.Abs(p.y-c.y)
		if m < 0 || d < m {
			m = d
		}
	}
	return m
}
