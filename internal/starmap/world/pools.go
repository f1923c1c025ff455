package world

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/starmap/internal/core"
)

// Owner tags who fired a projectile.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// Projectile is a live bullet.
type Projectile struct {
	Owner Owner
	Pos   core.Vec2
	Vel   core.Vec2
	Life  float64
}

// Projectiles is the shared projectile pool. The simulation appends and
// removes entries; renderers only read Items.
type Projectiles struct {
	Items []Projectile
}

// Spawn adds a projectile.
func (p *Projectiles) Spawn(owner Owner, pos, vel core.Vec2, life float64) {
	p.Items = append(p.Items, Projectile{Owner: owner, Pos: pos, Vel: vel, Life: life})
}

// Update integrates positions and drops expired projectiles.
func (p *Projectiles) Update(dt float64) {
	kept := p.Items[:0]
	for _, pr := range p.Items {
		pr.Pos = pr.Pos.Add(pr.Vel.Scale(dt))
		pr.Life -= dt
		if pr.Life > 0 {
			kept = append(kept, pr)
		}
	}
	p.Items = kept
}

// RemoveWithin drops every projectile within radius of center.
func (p *Projectiles) RemoveWithin(center core.Vec2, radius float64) {
	r2 := radius * radius
	kept := p.Items[:0]
	for _, pr := range p.Items {
		if pr.Pos.DistSq(center) > r2 {
			kept = append(kept, pr)
		}
	}
	p.Items = kept
}

// Reset empties the pool.
func (p *Projectiles) Reset() {
	p.Items = p.Items[:0]
}

// Particle is a decorative exhaust puff.
type Particle struct {
	Pos  core.Vec2
	Vel  core.Vec2
	Size float64
	Life float64
}

// Particles is the decorative particle pool. Its random source is seeded so
// runs with the same inputs stay reproducible.
type Particles struct {
	Items []Particle
	rng   *rand.Rand
}

// NewParticles creates an empty pool.
func NewParticles(seed int64) *Particles {
	return &Particles{rng: rand.New(rand.NewSource(seed))}
}

// SpawnExhaust emits puffs from the ship's two rear nozzles. Intensity is
// clamped to [0.05, 1] and scales count, speed, size and lifetime.
func (p *Particles) SpawnExhaust(s *Ship, intensity, shipScale float64) {
	intensity = core.ClampF(intensity, 0.05, 1)

	separation := 0.33 * shipScale
	side := core.FromAngle(s.Angle+math.Pi/2, separation)
	nozzles := [2]core.Vec2{s.Pos.Sub(side), s.Pos.Add(side)}

	speed := (1.3 + p.rng.Float64()*0.5) * (0.6 + 0.8*intensity)
	vel := s.Vel.Add(core.FromAngle(s.Angle+math.Pi, speed))
	size := (0.05 + p.rng.Float64()*0.04) * (0.7 + 0.6*intensity)
	count := max(1, int(math.Round(2*intensity)))
	life := (0.35 + p.rng.Float64()*0.25) * (0.6 + 0.7*intensity)

	for range count {
		for _, n := range nozzles {
			p.Items = append(p.Items, Particle{Pos: n, Vel: vel, Size: size, Life: life})
		}
	}
}

// Update integrates and expires particles.
func (p *Particles) Update(dt float64) {
	kept := p.Items[:0]
	for _, pt := range p.Items {
		pt.Pos = pt.Pos.Add(pt.Vel.Scale(dt))
		pt.Life -= dt
		if pt.Life > 0 {
			kept = append(kept, pt)
		}
	}
	p.Items = kept
}

// Reset empties the pool.
func (p *Particles) Reset() {
	p.Items = p.Items[:0]
}
