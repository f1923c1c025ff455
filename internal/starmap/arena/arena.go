package arena

import (
	"math"

	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap/physics"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

// Update advances the arena by dt seconds. Victory and defeat are each
// reported at most once per session.
func (a *State) Update(dt float64, in core.Intent) Signal {
	t := a.env.Tuning

	a.Boost = math.Min(t.Boost.MaxPips, a.Boost+t.Boost.RegenPerSec*dt)
	a.Player.Invuln = math.Max(0, a.Player.Invuln-dt)

	if a.Boss.State == BossDead && !a.CinematicStarted && a.Cine == nil {
		a.startCinematic()
	}

	if a.Cine != nil {
		a.Player.Vel = core.Vec2{}
		a.advanceCinematic(dt)
		a.env.Particles.Update(dt)
		a.env.Projectiles.Update(dt)
		a.Boss.DeathTimer += dt
		a.env.FX.RefreshHUD()
		return SignalNone
	}

	if a.Countdown.Active {
		a.Countdown.Tick(dt)
		a.Player.Pos = a.Pad.Start
		a.Player.Vel = core.Vec2{}
	} else {
		if a.ControlsLocked {
			a.Player.Vel = core.Vec2{}
		} else {
			a.move(dt, in)
		}
		a.handleShooting(dt, in)
		a.handleOverheat(dt, in.Shoot)
		a.env.Particles.Update(dt)
		a.env.Projectiles.Update(dt)

		res := a.resolveCollisions(dt)
		if res.PlayerDied && !a.DefeatHandled {
			a.DefeatHandled = true
			a.env.FX.OpenDefeat(world.DefeatPayload{Locked: false})
			return SignalDefeat
		}
	}

	a.updateBoss(dt)

	if a.HasEncryptedShard && a.ExitGate != nil && !a.VictoryHandled {
		r := t.Arena.GateTriggerRadius
		if a.Player.Pos.DistSq(*a.ExitGate) < r*r {
			a.VictoryHandled = true
			a.env.FX.OpenVictory(world.VictoryPayload{Message: "You defeated the Warden."})
			return SignalVictory
		}
	}

	a.env.FX.RefreshHUD()
	return SignalNone
}

func (a *State) move(dt float64, in core.Intent) {
	t := a.env.Tuning
	engage := func() { a.CombatActive = true }
	physics.Step(dt, t, physics.Scene{
		Pad:   &a.Pad,
		Boost: &a.Boost,
	}, &a.Player, in, physics.Hooks{
		OnLaunch:   engage,
		OnLeavePad: engage,
		Exhaust: func(s *world.Ship, intensity float64) {
			a.env.Particles.SpawnExhaust(s, intensity, t.Ship.Scale)
		},
	})
}
