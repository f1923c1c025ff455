package arena

import (
	"math"

	"github.com/vovakirdan/starmap/internal/core"
)

// CinePhase is a step of the boss death cinematic.
type CinePhase int

const (
	CineRing CinePhase = iota
	CineBoom
	CineGate
	CineReturn
)

// String returns the phase name.
func (p CinePhase) String() string {
	switch p {
	case CineRing:
		return "ring"
	case CineBoom:
		return "boom"
	case CineGate:
		return "gate"
	case CineReturn:
		return "return"
	default:
		return "unknown"
	}
}

// Cinematic is the scripted sequence after the boss dies. Controls stay
// locked until it finishes.
type Cinematic struct {
	Phase      CinePhase
	T          float64 // seconds in the current phase
	Origin     core.Vec2
	RingRadius float64
	BoomFrame  float64
}

func (a *State) startCinematic() {
	a.CinematicStarted = true
	a.ControlsLocked = true
	a.Cine = &Cinematic{Phase: CineRing, Origin: a.Boss.Pos}
	a.env.Camera.BeginPanTo(a.Boss.Pos, a.env.Tuning.Cinema.FocusPan, true)
}

// advanceCinematic runs one frame of the cinematic. The shockwave ring
// clears every projectile it sweeps over.
func (a *State) advanceCinematic(dt float64) {
	c := a.Cine
	ct := a.env.Tuning.Cinema
	c.T += dt

	switch c.Phase {
	case CineRing:
		c.RingRadius += ct.RingSpeed * dt
		a.env.Projectiles.RemoveWithin(c.Origin, c.RingRadius)
		if c.T >= ct.RingDuration {
			c.Phase = CineBoom
			c.T = 0
		}

	case CineBoom:
		c.BoomFrame += ct.BoomFrameRate * dt
		if c.T >= ct.BoomDuration {
			a.BossGone = true
			if a.ExitGate == nil {
				g := a.placeExitGate()
				a.ExitGate = &g
			}
			a.env.Camera.BeginPanTo(*a.ExitGate, ct.GatePan, true)
			c.Phase = CineGate
			c.T = 0
		}

	case CineGate:
		if c.T >= ct.GateHold {
			a.env.Camera.BeginPanTo(a.Player.Pos, ct.ReturnPan, false)
			c.Phase = CineReturn
			c.T = 0
		}

	case CineReturn:
		if c.T >= ct.ReturnHold {
			a.env.Camera.ClearPan()
			a.Cine = nil
			a.ControlsLocked = false
		}
	}
}

// BoomProgress returns the explosion sprite frame clamped for renderers.
func (c *Cinematic) BoomProgress(frames int) int {
	if frames <= 0 {
		return 0
	}
	return min(frames-1, int(math.Floor(c.BoomFrame)))
}
