package world

import "github.com/vovakirdan/starmap/internal/core"

// Ship is the player entity. The same shape is used in both modes; the
// weapon and carry fields only matter in the arena.
type Ship struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Angle  float64
	AngVel float64

	HP     float64
	MaxHP  float64
	Invuln float64 // seconds of remaining invulnerability

	Heat          float64
	MaxHeat       float64
	Overheated    bool
	ShootCooldown float64
	BoostCooldown float64

	ShardsCarried int
}

// NewShip creates a ship at rest.
func NewShip(pos core.Vec2, angle, maxHP, maxHeat float64) Ship {
	return Ship{
		Pos:     pos,
		Angle:   angle,
		HP:      maxHP,
		MaxHP:   maxHP,
		MaxHeat: maxHeat,
	}
}

// Speed returns the magnitude of the ship's velocity.
func (s *Ship) Speed() float64 {
	return s.Vel.Len()
}

// Damage lowers health, flooring at zero.
func (s *Ship) Damage(amount float64) {
	s.HP = core.ClampF(s.HP-amount, 0, s.MaxHP)
}

// Pad is the start pad a ship is locked to until launch.
type Pad struct {
	Start    core.Vec2
	Locked   bool
	Launched bool
}

// Countdown is the pre-launch freeze shared by both modes.
type Countdown struct {
	Remaining float64
	Active    bool
}

// Tick advances the countdown and reports whether it just ended.
func (c *Countdown) Tick(dt float64) bool {
	if !c.Active {
		return false
	}
	c.Remaining -= dt
	if c.Remaining <= 0 {
		c.Active = false
		return true
	}
	return false
}

// BeginCountdown arms a countdown and relocks the pad.
func BeginCountdown(seconds float64, pad *Pad, cd *Countdown) {
	cd.Remaining = seconds
	cd.Active = true
	pad.Locked = true
	pad.Launched = false
}
