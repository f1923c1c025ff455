package roadmap

import (
	"math"

	"github.com/vovakirdan/starmap/internal/starmap/world"
)

const (
	backsideOffset = 0.8  // cells past the gate center
	backsideFacing = -0.2 // cos(angle) below this means facing left
)

// interact resolves node proximity. Distances are measured from the ship
// center to the node's cell center.
func (r *Run) interact(lv *Level) Signal {
	t := r.env.Tuning
	for i := range lv.Nodes {
		n := lv.Nodes[i]
		d := lv.Player.Pos.Dist(n.Center())

		switch n.Kind {
		case world.NodeStation:
			if d <= t.Radii.Station && lv.Fuel < lv.MaxFuel {
				lv.Fuel = lv.MaxFuel
				r.env.FX.Toast("Fuel Tank Refilled!", world.DefaultToast)
			}
		case world.NodePlanet:
			if d <= t.Radii.Planet && lv.Shards.Add(n.ID) {
				r.env.FX.Toast("Shard collected: "+n.Label(), world.DefaultToast)
			}
		case world.NodeGate:
			if d > t.Radii.Gate {
				lv.atGate = false
				continue
			}
			if r.IsBacksideArenaEntry(n) {
				r.PauseTimer()
				return SignalEnterArena
			}
			// The gate is tried once per visit; leave and return to retry.
			if lv.atGate {
				continue
			}
			lv.atGate = true
			if sig := r.TryFinishLevel(); sig != SignalNone {
				return sig
			}
		case world.NodeStart:
		}
	}
	return SignalNone
}

// IsBacksideArenaEntry reports whether the ship is approaching the final
// gate from behind, facing away from the grid, with the quota met.
func (r *Run) IsBacksideArenaEntry(gate world.Node) bool {
	lv := r.Current
	if lv == nil {
		return false
	}
	if lv.Number != r.env.Tuning.Grid.MaxLevel || lv.Shards.Len() < r.RequiredShards() {
		return false
	}
	fromRight := lv.Player.Pos.X > gate.Center().X+backsideOffset
	facingLeft := math.Cos(lv.Player.Angle) < backsideFacing
	return fromRight && facingLeft
}

// findNearest points the indicator at the closest uncollected planet, or at
// the gate when none remain.
func (r *Run) findNearest(lv *Level) {
	var (
		nearest *world.Node
		best    = math.Inf(1)
		gate    *world.Node
	)
	for i := range lv.Nodes {
		n := &lv.Nodes[i]
		switch n.Kind {
		case world.NodeGate:
			if gate == nil {
				gate = n
			}
		case world.NodePlanet:
			if lv.Shards.Has(n.ID) {
				continue
			}
			if d2 := lv.Player.Pos.DistSq(n.Center()); d2 < best {
				best = d2
				nearest = n
			}
		}
	}
	if nearest == nil {
		nearest = gate
	}
	lv.NearestTarget = nearest
}
