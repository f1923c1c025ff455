package arena

import (
	"math"

	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

// BossState is the boss lifecycle. The shield is a separate flag.
type BossState int

const (
	BossPreEntry BossState = iota
	BossEntering
	BossIdle
	BossDead
)

// String returns the state name.
func (s BossState) String() string {
	switch s {
	case BossPreEntry:
		return "pre-entry"
	case BossEntering:
		return "entering"
	case BossIdle:
		return "idle"
	case BossDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Boss is the arena warden.
type Boss struct {
	Pos   core.Vec2
	Vel   core.Vec2
	HP    float64
	MaxHP float64

	State    BossState
	Shielded bool

	EntryTimer     float64
	DeathTimer     float64
	AttackCooldown float64
	TelegraphTimer float64

	// DriftClock drives the idle sway.
	DriftClock float64
}

// HealthPct returns health as a fraction of max.
func (b *Boss) HealthPct() float64 {
	if b.MaxHP <= 0 {
		return 0
	}
	return b.HP / b.MaxHP
}

// Telegraphing reports whether an attack warning is showing.
func (b *Boss) Telegraphing() bool {
	return b.State == BossIdle && b.TelegraphTimer > 0
}

func (a *State) updateBoss(dt float64) {
	t := a.env.Tuning
	b := &a.Boss
	c := a.Size / 2

	switch b.State {
	case BossPreEntry:
		a.env.FX.PlayMusic(world.TrackBossTheme, 0.4, true)
		a.env.FX.PlaySound(world.CueBossIntro, 0.45)
		b.State = BossEntering

	case BossEntering:
		b.EntryTimer += dt
		p := core.ClampF(b.EntryTimer/t.Boss.EntryDuration, 0, 1)
		startY := -a.Size * 0.10
		endY := c - 4
		b.Pos.Y = startY + (endY-startY)*core.EaseOutCubic(p)
		if p >= 1 {
			b.State = BossIdle
		}

	case BossIdle:
		b.DriftClock += dt
		b.Pos.X = c + math.Sin(b.DriftClock/4)*8
		b.Pos.Y = c - 4 + math.Cos(b.DriftClock/5.5)*4
		if a.CombatActive {
			a.bossAttack(dt)
		}

	case BossDead:
		b.DeathTimer += dt
	}
}

// bossAttack runs the telegraph-then-fire cycle. The spread fires once the
// cooldown has run a full telegraph past zero.
func (a *State) bossAttack(dt float64) {
	t := a.env.Tuning
	b := &a.Boss

	b.AttackCooldown -= dt
	if b.TelegraphTimer > 0 {
		b.TelegraphTimer -= dt
	} else if b.AttackCooldown <= 0 {
		b.TelegraphTimer = t.Boss.TelegraphDuration
	}

	if b.AttackCooldown <= -t.Boss.TelegraphDuration {
		to := a.Player.Pos.Sub(b.Pos)
		bearing := math.Atan2(to.Y, to.X)
		for i := -1; i <= 1; i++ {
			vel := core.FromAngle(bearing+float64(i)*t.Boss.SpreadAngle, t.Boss.BulletSpeed)
			a.env.Projectiles.Spawn(world.OwnerEnemy, b.Pos, vel, t.Boss.BulletLife)
		}
		if b.HealthPct() > t.Boss.EnrageThreshold {
			b.AttackCooldown = t.Boss.FireCooldownBase
		} else {
			b.AttackCooldown = t.Boss.FireCooldownFast
		}
	}
}

// killBoss moves the boss to dead exactly once and drops the encrypted
// shard where it died.
func (a *State) killBoss() bool {
	if a.Boss.State == BossDead {
		return false
	}
	a.Boss.State = BossDead
	a.env.FX.PlaySound(world.CueExplosion, world.DefaultVolume)
	a.Encrypted = &Pickup{Pos: a.Boss.Pos}
	return true
}
