package roadmap

import (
	"math"
	"slices"

	"github.com/vovakirdan/starmap/internal/starmap/levelgen"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

// ShardSet is the set of collected planet ids for one level.
type ShardSet map[string]struct{}

// Add inserts an id and reports whether it was new.
func (s ShardSet) Add(id string) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Has reports whether an id was collected.
func (s ShardSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of collected shards.
func (s ShardSet) Len() int {
	return len(s)
}

// Level is one playthrough of one roadmap level.
type Level struct {
	Number int
	Nodes  []world.Node

	Player    world.Ship
	Pad       world.Pad
	Countdown world.Countdown

	Fuel    float64
	MaxFuel float64
	Boost   float64
	Shards  ShardSet

	// ActiveMs advances only while TimerRunning.
	ActiveMs     float64
	TimerRunning bool

	// Completed is set once, when the gate accepts the level.
	Completed bool

	StuckTimer     float64
	ShowLaunchHint bool

	// NearestTarget points into Nodes: the closest uncollected planet, or
	// the gate once every planet is collected. Nil until the ship launches.
	NearestTarget *world.Node

	outOfFuel bool
	atGate    bool
}

// StartCountdown freezes the ship at the pad for the given seconds.
func (lv *Level) StartCountdown(seconds float64) {
	world.BeginCountdown(seconds, &lv.Pad, &lv.Countdown)
	lv.TimerRunning = false
}

// PlanetCount returns how many planets the level has.
func (lv *Level) PlanetCount() int {
	n := 0
	for _, node := range lv.Nodes {
		if node.Kind == world.NodePlanet {
			n++
		}
	}
	return n
}

// Gate returns the level's gate node.
func (lv *Level) Gate() (world.Node, bool) {
	i := slices.IndexFunc(lv.Nodes, func(n world.Node) bool { return n.Kind == world.NodeGate })
	if i < 0 {
		return world.Node{}, false
	}
	return lv.Nodes[i], true
}

// BuildLevel replaces the current level with a fresh build of the given
// level number from its seed.
func (r *Run) BuildLevel(number int) {
	t := r.env.Tuning
	nodes := levelgen.Generate(number, r.env.Catalog, r.seedFor(number), t.Grid)

	start := world.Node{Kind: world.NodeStart, X: 1, Y: t.Grid.Height / 2}
	if i := slices.IndexFunc(nodes, func(n world.Node) bool { return n.Kind == world.NodeStart }); i >= 0 {
		start = nodes[i]
	}
	pos := start.Center()

	startFuel := math.Min(t.Fuel.MaxTank, t.Fuel.BaseStart+float64(number-1)*t.Fuel.PerLevel)

	r.Current = &Level{
		Number:  number,
		Nodes:   nodes,
		Player:  world.NewShip(pos, 0, t.Ship.MaxHP, t.Weapon.MaxHeat),
		Pad:     world.Pad{Start: pos, Locked: true},
		Fuel:    startFuel,
		MaxFuel: t.Fuel.MaxTank,
		Boost:   t.Boost.MaxPips,
		Shards:  ShardSet{},
	}
	r.env.FX.RefreshHUD()
}
