package arena

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

const (
	wallRestitution = 0.8
	contactEpsilon  = 1e-12 // squared distance treated as a dead-center hit
)

// Result is what collision resolution reports to the state machine.
type Result struct {
	PlayerDied bool
	BossKilled bool
}

// resolveCollisions runs every arena contact check in order: walls, cover,
// ram, projectiles, shard pickup, generator deposit and the encrypted shard.
func (a *State) resolveCollisions(dt float64) Result {
	var res Result
	a.collideWalls()
	a.collideCover()
	if a.resolveRam(dt) {
		res.BossKilled = true
	}
	died, killed := a.resolveProjectiles()
	res.PlayerDied = died
	res.BossKilled = res.BossKilled || killed
	a.pickupShards()
	a.depositShards()
	a.pickupEncrypted()
	return res
}

// collideWalls pushes the ship out of any wall segment it overlaps and
// reflects its velocity with restitution.
func (a *State) collideWalls() {
	p := &a.Player
	r := a.ShipRadius()
	for _, w := range a.Walls {
		if w.A == w.B {
			continue
		}
		closest := w.Closest(p.Pos)
		distSq := p.Pos.DistSq(closest)
		if distSq >= r*r {
			continue
		}
		var n core.Vec2
		dist := math.Sqrt(distSq)
		if distSq < contactEpsilon {
			// Dead on the centerline: push towards the arena interior.
			n = unit(a.Center().Sub(closest))
			dist = 0
		} else {
			n = p.Pos.Sub(closest).Scale(1 / dist)
		}
		p.Pos = p.Pos.Add(n.Scale(r - dist))
		p.Vel = reflect(p.Vel, n).Scale(wallRestitution)
	}
}

// collideCover pushes the ship out of cover boxes.
func (a *State) collideCover() {
	p := &a.Player
	r := a.ShipRadius()
	for _, c := range a.Cover {
		closest := c.Closest(p.Pos)
		distSq := p.Pos.DistSq(closest)
		if distSq >= r*r {
			continue
		}
		var n core.Vec2
		var push float64
		if distSq < contactEpsilon {
			// Center inside or on the box: leave through the nearest face.
			var depth float64
			n, depth = exitFace(c, p.Pos)
			push = r + depth
		} else {
			dist := math.Sqrt(distSq)
			n = p.Pos.Sub(closest).Scale(1 / dist)
			push = r - dist
		}
		p.Pos = p.Pos.Add(n.Scale(push))
		p.Vel = reflect(p.Vel, n)
	}
}

// exitFace returns the outward normal of the box face closest to p and how
// far p is behind it.
func exitFace(c Cover, p core.Vec2) (core.Vec2, float64) {
	hw, hh := c.W/2, c.H/2
	faces := [4]struct {
		n     core.Vec2
		depth float64
	}{
		{core.V(-1, 0), p.X - (c.Center.X - hw)},
		{core.V(1, 0), (c.Center.X + hw) - p.X},
		{core.V(0, -1), p.Y - (c.Center.Y - hh)},
		{core.V(0, 1), (c.Center.Y + hh) - p.Y},
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.depth < best.depth {
			best = f
		}
	}
	return best.n, math.Max(0, best.depth)
}

// resolveRam damages an unshielded boss the ship drives through, at most
// once per ram cooldown.
func (a *State) resolveRam(dt float64) bool {
	t := a.env.Tuning
	a.ramCooldown = math.Max(0, a.ramCooldown-dt)

	b := &a.Boss
	if b.State == BossDead || b.Shielded {
		return false
	}
	if a.Player.Pos.DistSq(b.Pos) >= t.Boss.Radius*t.Boss.Radius {
		return false
	}
	if a.ramCooldown > 0 {
		return false
	}
	a.ramCooldown = t.Arena.RamCooldown
	b.HP = math.Max(0, b.HP-t.Arena.RamDamage)
	a.env.FX.PlaySoundThrottled(world.CueBossHit, 0.5, 100*time.Millisecond)
	if b.HP <= 0 {
		return a.killBoss()
	}
	return false
}

// resolveProjectiles removes spent projectiles and applies hits. Each
// projectile resolves at most one hit.
func (a *State) resolveProjectiles() (playerDied, bossKilled bool) {
	t := a.env.Tuning
	pool := a.env.Projectiles
	b := &a.Boss
	p := &a.Player
	r := a.ShipRadius()
	bossR2 := t.Boss.Radius * t.Boss.Radius

	kept := pool.Items[:0]
	for _, pr := range pool.Items {
		if a.projectileBlocked(pr.Pos) {
			continue
		}

		hit := false
		switch pr.Owner {
		case world.OwnerPlayer:
			if b.State == BossDead || pr.Pos.DistSq(b.Pos) >= bossR2 {
				break
			}
			hit = true
			if b.Shielded {
				a.env.FX.PlaySoundThrottled(world.CueShieldHit, 0.3, 120*time.Millisecond)
				break
			}
			b.HP = math.Max(0, b.HP-t.Weapon.ProjectileDamage)
			a.env.FX.PlaySoundThrottled(world.CueBossHit, 0.5, 100*time.Millisecond)
			if b.HP <= 0 && a.killBoss() {
				bossKilled = true
			}

		case world.OwnerEnemy:
			if p.Invuln > 0 || pr.Pos.DistSq(p.Pos) >= r*r {
				break
			}
			hit = true
			p.Damage(t.Boss.Damage)
			p.Invuln = t.Ship.InvulnDuration
			a.env.FX.PlaySound(world.CuePlayerHit, 0.6)
			if p.HP <= 0 {
				playerDied = true
			}
		}

		if !hit {
			kept = append(kept, pr)
		}
	}
	pool.Items = kept
	return playerDied, bossKilled
}

func (a *State) projectileBlocked(pos core.Vec2) bool {
	if pos.X < 1 || pos.X > a.Size-1 || pos.Y < 1 || pos.Y > a.Size-1 {
		return true
	}
	for _, c := range a.Cover {
		if c.Contains(pos) {
			return true
		}
	}
	return false
}

func (a *State) pickupShards() {
	t := a.env.Tuning
	p := &a.Player
	r2 := t.Arena.ShardPickupRadius * t.Arena.ShardPickupRadius
	for i := range a.Shards {
		s := &a.Shards[i]
		if s.Collected {
			continue
		}
		if p.ShardsCarried >= t.Arena.CarryCap {
			break
		}
		if p.Pos.DistSq(s.Pos) < r2 {
			s.Collected = true
			p.ShardsCarried++
			a.env.FX.PlaySound(world.CueShardPickup, world.DefaultVolume)
			a.env.FX.Toast(fmt.Sprintf("Energy Shard Collected (%d/%d)", p.ShardsCarried, t.Arena.CarryCap), world.DefaultToast)
		}
	}
}

// depositShards banks carried shards into a generator in range. Shards past
// the generator's capacity are lost.
func (a *State) depositShards() {
	t := a.env.Tuning
	p := &a.Player
	capacity := t.Arena.GeneratorCapacity
	r2 := t.Arena.GeneratorDepositRadius * t.Arena.GeneratorDepositRadius
	for i := range a.Gens {
		g := &a.Gens[i]
		if p.ShardsCarried <= 0 || p.Pos.DistSq(g.Pos) >= r2 {
			continue
		}
		g.Deposited = min(capacity, g.Deposited+p.ShardsCarried)
		a.env.FX.Toast(fmt.Sprintf("Deposited %d. Gen %s: %d/%d", p.ShardsCarried, g.ID, g.Deposited, capacity), world.DefaultToast)
		p.ShardsCarried = 0
		a.env.FX.PlaySound(world.CueShardDeposit, world.DefaultVolume)

		if a.generatorsFull() && a.Boss.Shielded {
			a.Boss.Shielded = false
			a.env.FX.Toast("Generator array online! Boss shield is DOWN.", world.DefaultToast)
			a.env.FX.PlaySound(world.CueShieldDown, world.DefaultVolume)
		}
	}
}

func (a *State) generatorsFull() bool {
	if len(a.Gens) < 2 {
		return false
	}
	for _, g := range a.Gens {
		if g.Deposited < a.env.Tuning.Arena.GeneratorCapacity {
			return false
		}
	}
	return true
}

func (a *State) pickupEncrypted() {
	e := a.Encrypted
	if e == nil || e.Picked {
		return
	}
	r := a.env.Tuning.Arena.EncryptedPickupRadius
	if a.Player.Pos.DistSq(e.Pos) < r*r {
		e.Picked = true
		a.HasEncryptedShard = true
		a.env.FX.Toast("Encrypted Data Shard secured!", world.DefaultToast)
	}
}

// reflect mirrors v across the plane with unit normal n.
func reflect(v, n core.Vec2) core.Vec2 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

func unit(v core.Vec2) core.Vec2 {
	l := v.Len()
	if l == 0 {
		return core.V(0, -1)
	}
	return v.Scale(1 / l)
}
