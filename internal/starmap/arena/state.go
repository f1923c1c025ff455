// Package arena runs the boss encounter: layout, combat, objectives, the
// boss state machine and the death cinematic.
package arena

import (
	"math"

	"github.com/vovakirdan/starmap/internal/config"
	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

// Panner is the camera control the cinematic needs.
type Panner interface {
	BeginPanTo(to core.Vec2, duration float64, holdAtEnd bool)
	ClearPan()
}

// Env is what an arena session needs from its owner.
type Env struct {
	Tuning      *config.Tuning
	FX          world.Effects
	Particles   *world.Particles
	Projectiles *world.Projectiles
	Camera      Panner
}

type noPan struct{}

func (noPan) BeginPanTo(core.Vec2, float64, bool) {}
func (noPan) ClearPan()                           {}

// Wall is one segment of the arena boundary.
type Wall struct {
	A, B core.Vec2
}

// Closest returns the point on the segment nearest to p.
func (w Wall) Closest(p core.Vec2) core.Vec2 {
	d := w.B.Sub(w.A)
	lenSq := d.LenSq()
	if lenSq == 0 {
		return w.A
	}
	k := core.ClampF(p.Sub(w.A).Dot(d)/lenSq, 0, 1)
	return w.A.Add(d.Scale(k))
}

// Cover is a solid axis-aligned box given by its center and size.
type Cover struct {
	Center core.Vec2
	W, H   float64
}

// Contains reports whether p is strictly inside the box.
func (c Cover) Contains(p core.Vec2) bool {
	hw, hh := c.W/2, c.H/2
	return p.X > c.Center.X-hw && p.X < c.Center.X+hw &&
		p.Y > c.Center.Y-hh && p.Y < c.Center.Y+hh
}

// Closest returns the point of the box nearest to p.
func (c Cover) Closest(p core.Vec2) core.Vec2 {
	hw, hh := c.W/2, c.H/2
	return core.V(
		core.ClampF(p.X, c.Center.X-hw, c.Center.X+hw),
		core.ClampF(p.Y, c.Center.Y-hh, c.Center.Y+hh),
	)
}

// Generator collects energy shards; the boss shield drops when every
// generator is full.
type Generator struct {
	ID        string
	Pos       core.Vec2
	Deposited int
}

// Shard is a loose energy shard.
type Shard struct {
	ID        string
	Pos       core.Vec2
	Collected bool
}

// Pickup is the encrypted data shard dropped by the boss.
type Pickup struct {
	Pos    core.Vec2
	Picked bool
}

// Signal reports an arena outcome.
type Signal int

const (
	SignalNone Signal = iota
	SignalVictory
	SignalDefeat
)

// String returns the signal name.
func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalVictory:
		return "victory"
	case SignalDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// State is one arena session. It is built on entry and discarded on exit,
// so its one-shot flags reset with it.
type State struct {
	Size   float64
	Walls  []Wall
	Cover  []Cover
	Gens   []Generator
	Shards []Shard

	Boss      Boss
	Player    world.Ship
	Pad       world.Pad
	Countdown world.Countdown
	Boost     float64

	CombatActive   bool
	ControlsLocked bool

	ExitGate          *core.Vec2
	Encrypted         *Pickup
	HasEncryptedShard bool
	Cine              *Cinematic
	BossGone          bool

	VictoryHandled   bool
	DefeatHandled    bool
	CinematicStarted bool

	ramCooldown float64
	env         Env
}

// Center returns the middle of the arena.
func (a *State) Center() core.Vec2 {
	return core.V(a.Size/2, a.Size/2)
}

// ShipRadius returns the player's collision radius.
func (a *State) ShipRadius() float64 {
	return a.env.Tuning.Ship.Scale * 0.5
}

// StartCountdown freezes the player at the spawn point.
func (a *State) StartCountdown(seconds float64) {
	world.BeginCountdown(seconds, &a.Pad, &a.Countdown)
}

// Build lays out a fresh arena and clears the projectile pool. The caller
// starts the countdown.
func Build(env Env) *State {
	if env.FX == nil {
		env.FX = world.Nop{}
	}
	if env.Projectiles == nil {
		env.Projectiles = &world.Projectiles{}
	}
	env.Projectiles.Reset()
	if env.Particles == nil {
		env.Particles = world.NewParticles(1)
	}
	if env.Camera == nil {
		env.Camera = noPan{}
	}

	t := env.Tuning
	size := t.Arena.Size
	c := size / 2

	const sides = 8
	radius := size/2 - 1
	walls := make([]Wall, 0, sides)
	for i := range sides {
		a1 := float64(i) / sides * 2 * math.Pi
		a2 := float64(i+1) / sides * 2 * math.Pi
		walls = append(walls, Wall{
			A: core.V(c+radius*math.Cos(a1), c+radius*math.Sin(a1)),
			B: core.V(c+radius*math.Cos(a2), c+radius*math.Sin(a2)),
		})
	}

	cover := []Cover{
		{Center: core.V(c-12, c-12), W: 6, H: 2},
		{Center: core.V(c+12, c-12), W: 6, H: 2},
		{Center: core.V(c-12, c+12), W: 6, H: 2},
		{Center: core.V(c+12, c+12), W: 6, H: 2},
		{Center: core.V(c, c+10), W: 2, H: 5},
		{Center: core.V(c, c-10), W: 2, H: 5},
	}

	start := core.V(c, c+13.5)
	for _, cv := range cover {
		if cv.Contains(start) {
			start.Y += 2
			break
		}
	}

	a := &State{
		Size:  size,
		Walls: walls,
		Cover: cover,
		Gens: []Generator{
			{ID: "A", Pos: core.V(c-8, c)},
			{ID: "B", Pos: core.V(c+8, c)},
		},
		Shards: []Shard{
			{ID: "S1", Pos: core.V(c-12, c-2)},
			{ID: "S2", Pos: core.V(c-12, c+2)},
			{ID: "S3", Pos: core.V(c+12, c-2)},
			{ID: "S4", Pos: core.V(c+12, c+2)},
		},
		Boss: Boss{
			Pos:            core.V(c, -size*0.10),
			HP:             t.Boss.MaxHP,
			MaxHP:          t.Boss.MaxHP,
			State:          BossPreEntry,
			Shielded:       true,
			AttackCooldown: t.Boss.FireCooldownBase,
		},
		Player: world.NewShip(start, -math.Pi/2, t.Ship.MaxHP, t.Weapon.MaxHeat),
		Pad:    world.Pad{Start: start, Locked: true},
		Boost:  t.Boost.MaxPips,
		env:    env,
	}
	return a
}
