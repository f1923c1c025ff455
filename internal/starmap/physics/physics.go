// Package physics integrates player ship movement from a control intent.
// It is shared by both modes; mode-specific bookkeeping is reached only
// through Hooks.
package physics

import (
	"math"

	"github.com/vovakirdan/starmap/internal/config"
	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

// Scene is the per-mode state the integrator reads and writes.
type Scene struct {
	Pad *world.Pad

	// Fuel is read live so hook-driven spending is visible within the step.
	// Nil means unlimited.
	Fuel *float64

	// Boost is the pip pool. Nil selects the legacy fuel-cost boost.
	Boost *float64

	Countdown bool

	// Bounds clamps the ship to the roadmap grid. Nil in the arena, where
	// walls and cover keep the ship in.
	Bounds *Bounds
}

// Bounds is a rectangular world edge with a damped bounce.
type Bounds struct {
	Width, Height float64
	Padding       float64
	Dampening     float64 // velocity multiplier on contact, negative to bounce
}

// Hooks carries mode callbacks. Any field may be nil.
type Hooks struct {
	OnFuelUse  func(amount float64)
	OnLaunch   func()
	OnLeavePad func()
	Exhaust    func(ship *world.Ship, intensity float64)
}

const turnDeadzone = 0.01

func (sc Scene) fuel() float64 {
	if sc.Fuel == nil {
		return math.Inf(1)
	}
	return *sc.Fuel
}

func (h Hooks) useFuel(amount float64) {
	if h.OnFuelUse != nil {
		h.OnFuelUse(amount)
	}
}

func (h Hooks) exhaust(s *world.Ship, intensity float64) {
	if h.Exhaust != nil {
		h.Exhaust(s, intensity)
	}
}

// Step advances the ship by dt seconds.
func Step(dt float64, t *config.Tuning, sc Scene, s *world.Ship, in core.Intent, h Hooks) {
	rotate(dt, t, s, in, h)

	if in.Launch && sc.Pad.Locked && !sc.Countdown {
		sc.Pad.Locked = false
		sc.Pad.Launched = true
		s.Vel = s.Vel.Add(core.FromAngle(s.Angle, orDefault(t.Ship.LaunchImpulse, 3.5)))
		if h.OnLaunch != nil {
			h.OnLaunch()
		}
	}

	if sc.Pad.Locked {
		s.Vel = core.Vec2{}
		return
	}

	if in.Boost {
		boost(dt, t, sc, s, h)
	}

	accel := orDefault(t.Ship.ThrustAccel, 5)
	perSec := t.Fuel.ThrustPerSec
	fuelUse := 0.0

	if in.Thrust > 0 && sc.fuel() > 0 {
		s.Vel = s.Vel.Add(core.FromAngle(s.Angle, accel*in.Thrust*dt))
		fuelUse += perSec * dt * in.Thrust
		h.exhaust(s, math.Max(0.5, in.Thrust))
	}
	if in.Back > 0 && sc.fuel() > 0 {
		s.Vel = s.Vel.Add(core.FromAngle(s.Angle+math.Pi, accel*in.Back*dt))
		fuelUse += perSec * dt * in.Back
		h.exhaust(s, 0.35*in.Back/0.3)
	}
	if in.StrafeRight && in.Strafe > 0 && sc.fuel() > 0 {
		s.Vel = s.Vel.Add(core.FromAngle(s.Angle+math.Pi/2, accel*in.Strafe*dt))
		fuelUse += perSec * dt * in.Strafe
		h.exhaust(s, 0.35*in.Strafe/0.3)
	}
	if in.StrafeLeft && in.Strafe > 0 && sc.fuel() > 0 {
		s.Vel = s.Vel.Add(core.FromAngle(s.Angle-math.Pi/2, accel*in.Strafe*dt))
		fuelUse += perSec * dt * in.Strafe
		h.exhaust(s, 0.35*in.Strafe/0.3)
	}
	if fuelUse > 0 {
		h.useFuel(fuelUse)
	}

	s.Vel = s.Vel.Scale(math.Pow(orDefault(t.Ship.Friction, 0.7), dt))
	maxSpeed := orDefault(t.Ship.MaxSpeed, 15)
	if speed := s.Speed(); speed > maxSpeed {
		s.Vel = s.Vel.Scale(maxSpeed / speed)
	}

	padRadius := orDefault(t.Ship.StartPadRadius, 0.9)
	wasOnPad := core.OnPad(s.Pos, sc.Pad.Start, padRadius)
	s.Pos = s.Pos.Add(s.Vel.Scale(dt))
	nowOnPad := core.OnPad(s.Pos, sc.Pad.Start, padRadius)

	if !sc.Pad.Launched && wasOnPad && !nowOnPad {
		sc.Pad.Launched = true
		if h.OnLeavePad != nil {
			h.OnLeavePad()
		}
	}

	if sc.Bounds != nil {
		clampBounds(s, *sc.Bounds)
	}
}

// rotate applies analog turn directly, or angular inertia for digital keys.
func rotate(dt float64, t *config.Tuning, s *world.Ship, in core.Intent, h Hooks) {
	maxVel := orDefault(t.Ship.MaxAngularVel, math.Pi*2.5)

	if math.Abs(in.Turn) > turnDeadzone {
		rate := maxVel * orDefault(t.Ship.RotationScale, 0.35) * in.Turn
		s.AngVel = rate
		s.Angle += rate * dt
		h.useFuel(t.Fuel.RotPerSec * math.Abs(in.Turn) * dt)
		return
	}

	accel := orDefault(t.Ship.AngularAccel, math.Pi*6)
	turn := 0.0
	if in.TurnLeft {
		turn -= accel
	}
	if in.TurnRight {
		turn += accel
	}
	s.AngVel += turn * dt
	s.AngVel -= s.AngVel * math.Min(1, orDefault(t.Ship.AngularDamping, 5)*dt)
	s.AngVel = core.ClampF(s.AngVel, -maxVel, maxVel)
	s.Angle += s.AngVel * dt

	if in.TurnLeft || in.TurnRight {
		h.useFuel(t.Fuel.RotPerSec * dt)
	}
}

// boost fires a forward impulse from the pip pool, or from fuel when the
// scene has no pool. The cooldown only runs down while boost is held.
func boost(dt float64, t *config.Tuning, sc Scene, s *world.Ship, h Hooks) {
	s.BoostCooldown = math.Max(0, s.BoostCooldown-dt)
	if s.BoostCooldown > 0 {
		return
	}

	if sc.Boost != nil {
		if *sc.Boost < 1 {
			return
		}
		*sc.Boost--
	} else {
		cost := orDefault(t.Fuel.LaunchCost, 5)
		if sc.fuel() <= cost {
			return
		}
		h.useFuel(cost)
	}

	s.Vel = s.Vel.Add(core.FromAngle(s.Angle, orDefault(t.Boost.Impulse, 4)))
	s.BoostCooldown = orDefault(t.Boost.Cooldown, 0.25)
}

func clampBounds(s *world.Ship, b Bounds) {
	if s.Pos.X < b.Padding {
		s.Pos.X = b.Padding
		s.Vel.X *= b.Dampening
	}
	if s.Pos.Y < b.Padding {
		s.Pos.Y = b.Padding
		s.Vel.Y *= b.Dampening
	}
	if s.Pos.X > b.Width-b.Padding {
		s.Pos.X = b.Width - b.Padding
		s.Vel.X *= b.Dampening
	}
	if s.Pos.Y > b.Height-b.Padding {
		s.Pos.Y = b.Height - b.Padding
		s.Vel.Y *= b.Dampening
	}
}

// orDefault substitutes def for non-positive or non-finite tuning values.
func orDefault(v, def float64) float64 {
	if v > 0 && !math.IsInf(v, 0) {
		return v
	}
	return def
}

// RoadmapBounds builds the grid edge from tuning.
func RoadmapBounds(t *config.Tuning) *Bounds {
	return &Bounds{
		Width:     float64(t.Grid.Width),
		Height:    float64(t.Grid.Height),
		Padding:   t.Ship.WorldPadding,
		Dampening: t.Ship.WallBounceDampening,
	}
}
