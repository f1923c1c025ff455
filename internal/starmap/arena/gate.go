package arena

import (
	"math"

	"github.com/vovakirdan/starmap/internal/core"
)

const (
	gateRings      = 12
	gateRingStep   = 0.6
	gateDirections = 24
)

// placeExitGate finds a clear spot for the exit gate, spiralling out from
// the midpoint between the generators. It keeps the midpoint when the
// search finds nothing.
func (a *State) placeExitGate() core.Vec2 {
	origin := a.Center()
	if len(a.Gens) >= 2 {
		origin = a.Gens[0].Pos.Add(a.Gens[1].Pos).Scale(0.5)
	}
	gateR := a.env.Tuning.Radii.Gate * 1.2

	if !a.gateBlocked(origin, gateR) {
		return origin
	}
	for ring := 1; ring <= gateRings; ring++ {
		dist := gateRingStep * float64(ring)
		for i := range gateDirections {
			ang := float64(i) / gateDirections * 2 * math.Pi
			p := origin.Add(core.FromAngle(ang, dist))
			if p.X <= 1 || p.X >= a.Size-1 || p.Y <= 1 || p.Y >= a.Size-1 {
				continue
			}
			if !a.gateBlocked(p, gateR) {
				return p
			}
		}
	}
	return origin
}

func (a *State) gateBlocked(p core.Vec2, r float64) bool {
	wr := r + a.env.Tuning.Arena.WallThickness/2
	for _, w := range a.Walls {
		if p.DistSq(w.Closest(p)) < wr*wr {
			return true
		}
	}
	for _, c := range a.Cover {
		if p.DistSq(c.Closest(p)) < r*r {
			return true
		}
	}
	return false
}
