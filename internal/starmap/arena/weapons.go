package arena

import (
	"math"
	"time"

	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

// handleShooting fires the blaster when the trigger is held, the cooldown
// has elapsed and the weapon is not overheated.
func (a *State) handleShooting(dt float64, in core.Intent) {
	w := a.env.Tuning.Weapon
	p := &a.Player
	p.ShootCooldown = math.Max(0, p.ShootCooldown-dt)

	if !in.Shoot || p.ShootCooldown > 0 || p.Overheated {
		return
	}
	dir := core.FromAngle(p.Angle, 1)
	a.env.Projectiles.Spawn(world.OwnerPlayer,
		p.Pos.Add(dir.Scale(0.5)),
		p.Vel.Add(dir.Scale(w.ProjectileSpeed)),
		w.ProjectileLife)
	p.ShootCooldown = w.FireRate
	p.Heat = math.Min(p.MaxHeat, p.Heat+w.HeatPerShot)
	a.env.FX.PlaySoundThrottled(world.CueLaser, 0.2, 60*time.Millisecond)
}

// handleOverheat cools the weapon. Overheating locks it until heat drains
// fully at the slower overheat rate.
func (a *State) handleOverheat(dt float64, shooting bool) {
	w := a.env.Tuning.Weapon
	p := &a.Player

	if p.Overheated {
		p.Heat = math.Max(0, p.Heat-w.OverheatCoolRate*dt)
		if p.Heat == 0 {
			p.Overheated = false
			a.env.FX.Toast("Weapons online!", world.DefaultToast)
		}
		return
	}
	if !shooting {
		p.Heat = math.Max(0, p.Heat-w.CoolRate*dt)
	}
	if p.Heat >= p.MaxHeat {
		p.Overheated = true
		a.env.FX.Toast("Weapon overheated!", world.DefaultToast)
	}
}
