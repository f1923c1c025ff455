// Package camera implements the ship-aligned follow camera with look-ahead
// and scripted pans.
package camera

import (
	"math"

	"github.com/vovakirdan/starmap/internal/config"
	"github.com/vovakirdan/starmap/internal/core"
)

// Mode is the active drive mode. Exactly one applies per frame.
type Mode int

const (
	ModeFollow Mode = iota
	ModePan
	ModeHold
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFollow:
		return "follow"
	case ModePan:
		return "pan"
	case ModeHold:
		return "hold"
	default:
		return "unknown"
	}
}

const (
	lookSpeedBoost = 0.025
	aimProjection  = 0.55
	aimDeadzone    = 0.05
	rotMaxRate     = math.Pi * 1.8 // rad/s
	zoomMinMult    = 0.95
	zoomMaxMult    = 1.10
	zoomSpeedMult  = 1.25
)

// Target is what the camera follows this frame.
type Target struct {
	Pos   core.Vec2
	Vel   core.Vec2
	Angle float64

	AimActive   bool
	AimAngle    float64
	AimStrength float64

	// SpeedZoom widens the view as the ship speeds up (roadmap only).
	SpeedZoom bool
}

type pan struct {
	from, to core.Vec2
	elapsed  float64
	duration float64
	hold     bool
}

// Camera is the view transform renderers read: Pos is the world point at
// the screen center, Rot the view rotation, Zoom the scale.
type Camera struct {
	Pos  core.Vec2
	Rot  float64
	Zoom float64

	// AimOffset is the last applied aim bias, for renderers that draw a reticle.
	AimOffset core.Vec2

	baseZoom    float64
	follow      float64
	panSpeed    float64
	lookForward float64
	maxSpeed    float64

	pan  *pan
	hold *core.Vec2
}

// New creates a camera from tuning.
func New(t *config.Tuning) *Camera {
	c := &Camera{
		baseZoom:    t.Camera.BaseZoom,
		follow:      t.Camera.FollowSpeed,
		panSpeed:    t.Camera.PanSpeed,
		lookForward: 2.2 * t.Ship.Scale,
		maxSpeed:    t.Ship.MaxSpeed,
	}
	return c.Ensure()
}

// Ensure fills in any unset fields so the camera is usable, and returns it.
func (c *Camera) Ensure() *Camera {
	if !(c.baseZoom > 0) {
		c.baseZoom = 1
	}
	if !(c.Zoom > 0) {
		c.Zoom = c.baseZoom
	}
	if !(c.follow > 0) {
		c.follow = 0.12
	}
	c.follow = core.ClampF(c.follow, 0.0001, 0.99)
	if !(c.maxSpeed > 0) {
		c.maxSpeed = 14
	}
	return c
}

// SetBaseZoom sets the zoom the camera rests at and snaps to it.
// Mode transitions call this.
func (c *Camera) SetBaseZoom(z float64) {
	if z > 0 {
		c.baseZoom = z
		c.Zoom = z
	}
}

// BaseZoom returns the resting zoom.
func (c *Camera) BaseZoom() float64 {
	return c.baseZoom
}

// Mode returns the active drive mode.
func (c *Camera) Mode() Mode {
	switch {
	case c.pan != nil:
		return ModePan
	case c.hold != nil:
		return ModeHold
	default:
		return ModeFollow
	}
}

// BeginPanTo starts a smoothstep pan from the current position. A duration
// at or below zero is derived from the distance and the configured pan
// speed. With holdAtEnd the camera stays pinned at the target until
// ClearPan; otherwise it returns to follow. A new pan releases any hold.
func (c *Camera) BeginPanTo(to core.Vec2, duration float64, holdAtEnd bool) {
	if !(duration > 0) || math.IsInf(duration, 0) {
		speed := math.Max(0.01, c.panSpeed)
		duration = math.Max(0.05, c.Pos.Dist(to)/speed)
	}
	c.pan = &pan{
		from:     c.Pos,
		to:       to,
		duration: math.Max(0.01, duration),
		hold:     holdAtEnd,
	}
	c.hold = nil
}

// ClearPan drops any pan or hold; follow resumes next update.
func (c *Camera) ClearPan() {
	c.pan = nil
	c.hold = nil
}

// Update advances the camera by dt towards the target.
func (c *Camera) Update(dt float64, tgt Target) {
	switch {
	case c.pan != nil:
		p := c.pan
		p.elapsed += dt
		k := math.Min(1, p.elapsed/p.duration)
		c.Pos = p.from.Lerp(p.to, core.Smoothstep(k))
		if k >= 1 {
			if p.hold {
				to := p.to
				c.hold = &to
			}
			c.pan = nil
		}
	case c.hold != nil:
		c.Pos = *c.hold
	}

	speed := tgt.Vel.Len()
	fwd := core.FromAngle(tgt.Angle, 1)

	look := c.lookForward + speed*lookSpeedBoost
	if tgt.AimActive && tgt.AimStrength > aimDeadzone {
		bias := c.lookForward * math.Min(1, tgt.AimStrength)
		c.AimOffset = core.FromAngle(tgt.AimAngle, bias)
		look += c.AimOffset.Dot(fwd) * aimProjection
	} else {
		c.AimOffset = core.Vec2{}
	}
	focus := tgt.Pos.Add(fwd.Scale(look))

	targetZoom := c.baseZoom
	if tgt.SpeedZoom {
		k := math.Min(1, speed/(c.maxSpeed*zoomSpeedMult))
		targetZoom = core.Lerp(c.baseZoom*zoomMinMult, c.baseZoom*zoomMaxMult, k)
	}

	alpha := 1 - math.Pow(1-c.follow, dt)
	if c.pan == nil && c.hold == nil {
		c.Pos = c.Pos.Lerp(focus, alpha)
	}

	d := core.ShortestAngleDelta(c.Rot, tgt.Angle)
	step := core.ClampF(d, -rotMaxRate*dt, rotMaxRate*dt)
	c.Rot += step * alpha

	c.Zoom = core.Lerp(c.Zoom, targetZoom, alpha)
}

// Snap jumps straight to the follow position without smoothing.
// Used when a mode is (re)built so the first frame is not a long glide.
func (c *Camera) Snap(tgt Target) {
	c.ClearPan()
	c.Pos = tgt.Pos.Add(core.FromAngle(tgt.Angle, c.lookForward))
	c.Rot = tgt.Angle
}
