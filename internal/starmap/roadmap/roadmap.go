// Package roadmap runs the grid campaign: level lifecycle, node
// interactions, fuel economy and the run timer.
package roadmap

import (
	"fmt"
	"math"

	"github.com/vovakirdan/starmap/internal/config"
	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap/physics"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

// Signal reports a mode-level outcome of an update.
type Signal int

const (
	SignalNone Signal = iota
	SignalLevelComplete
	SignalRunComplete
	SignalEnterArena
	SignalOutOfFuel
)

// String returns the signal name.
func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalLevelComplete:
		return "level_complete"
	case SignalRunComplete:
		return "run_complete"
	case SignalEnterArena:
		return "enter_arena"
	case SignalOutOfFuel:
		return "out_of_fuel"
	default:
		return "unknown"
	}
}

// Env is what a run needs from its owner.
type Env struct {
	Tuning    *config.Tuning
	Catalog   *config.Catalog
	FX        world.Effects
	Particles *world.Particles
}

// Run is one attempt at the campaign.
type Run struct {
	ID            string
	TotalActiveMs float64
	LevelIndex    int
	Seeds         []string
	Current       *Level

	// Finished is set when the final gate is cleared. FinalMs is the
	// rounded total reported with it.
	Finished bool
	FinalMs  int64

	env Env
}

// NewRun creates a run with one seed per level and builds level 1. The
// caller starts the countdown.
func NewRun(id string, env Env) *Run {
	if env.FX == nil {
		env.FX = world.Nop{}
	}
	n := max(1, env.Tuning.Grid.MaxLevel)
	seeds := make([]string, n)
	for i := range seeds {
		seeds[i] = LevelSeed(id, i+1)
	}
	r := &Run{ID: id, LevelIndex: 1, Seeds: seeds, env: env}
	r.BuildLevel(1)
	return r
}

// Retry restarts the campaign at level 1, keeping the id, the seeds and the
// accumulated time. Level 1 comes from the same seed so its layout is
// unchanged.
func (r *Run) Retry() {
	r.LevelIndex = 1
	r.Finished = false
	r.FinalMs = 0
	r.BuildLevel(1)
}

func (r *Run) seedFor(level int) string {
	if level >= 1 && level <= len(r.Seeds) {
		return r.Seeds[level-1]
	}
	return LevelSeed(r.ID, level)
}

// LevelSeed is the generator seed of a level within a run.
func LevelSeed(runID string, level int) string {
	return fmt.Sprintf("%s-L%d", runID, level)
}

// Update advances the current level by dt.
func (r *Run) Update(dt float64, in core.Intent) Signal {
	lv := r.Current
	if lv == nil || r.Finished {
		return SignalNone
	}
	t := r.env.Tuning

	lv.Boost = math.Min(t.Boost.MaxPips, lv.Boost+t.Boost.RegenPerSec*dt)

	if lv.Pad.Launched && !lv.TimerRunning {
		r.StartTimer()
	}
	if lv.TimerRunning {
		ms := dt * 1000
		lv.ActiveMs += ms
		r.TotalActiveMs += ms
	}

	if lv.Countdown.Active {
		lv.Countdown.Tick(dt)
		lv.Player.Pos = lv.Pad.Start
		lv.Player.Vel = core.Vec2{}
		r.env.FX.RefreshHUD()
		return SignalNone
	}

	if lv.Pad.Locked {
		lv.StuckTimer += dt
		if lv.StuckTimer > t.Timing.StuckHint {
			lv.ShowLaunchHint = true
		}
	}

	physics.Step(dt, t, r.scene(lv), &lv.Player, in, r.hooks(lv))

	if lv.outOfFuel {
		lv.outOfFuel = false
		r.outOfFuel()
		r.env.FX.RefreshHUD()
		return SignalOutOfFuel
	}

	sig := SignalNone
	if !lv.Pad.Locked {
		sig = r.interact(lv)
		if r.Current == lv {
			r.findNearest(lv)
		}
	}
	if r.env.Particles != nil {
		r.env.Particles.Update(dt)
	}
	r.env.FX.RefreshHUD()
	return sig
}

func (r *Run) scene(lv *Level) physics.Scene {
	return physics.Scene{
		Pad:       &lv.Pad,
		Fuel:      &lv.Fuel,
		Boost:     &lv.Boost,
		Countdown: lv.Countdown.Active,
		Bounds:    physics.RoadmapBounds(r.env.Tuning),
	}
}

func (r *Run) hooks(lv *Level) physics.Hooks {
	return physics.Hooks{
		OnFuelUse: func(amount float64) {
			lv.Fuel = math.Max(0, lv.Fuel-amount)
			if lv.Fuel == 0 && lv.TimerRunning {
				lv.outOfFuel = true
			}
		},
		OnLaunch: func() {
			lv.ShowLaunchHint = false
			lv.StuckTimer = 0
		},
		OnLeavePad: r.StartTimer,
		Exhaust: func(s *world.Ship, intensity float64) {
			if r.env.Particles != nil {
				r.env.Particles.SpawnExhaust(s, intensity, r.env.Tuning.Ship.Scale)
			}
		},
	}
}

// RequiredShards is the gate quota: the configured shards per level, or
// every planet when the level has fewer.
func (r *Run) RequiredShards() int {
	if r.Current == nil {
		return 0
	}
	return min(r.env.Tuning.Grid.ShardsPerLevel, r.Current.PlanetCount())
}

// TryFinishLevel checks the gate requirements and advances the campaign
// when they are met. Completed levels are left alone.
func (r *Run) TryFinishLevel() Signal {
	lv := r.Current
	if lv == nil || lv.Completed {
		return SignalNone
	}
	t := r.env.Tuning
	required := r.RequiredShards()

	if lv.Shards.Len() < required || lv.Fuel < t.Fuel.GateMin {
		if needed := required - lv.Shards.Len(); needed > 0 {
			r.env.FX.Toast(fmt.Sprintf("Gate requires %d more shard(s).", needed), world.DefaultToast)
		} else {
			r.env.FX.Toast(fmt.Sprintf("Gate requires at least %g fuel.", t.Fuel.GateMin), world.DefaultToast)
		}
		return SignalNone
	}

	r.PauseTimer()
	lv.Completed = true
	if lv.Number >= t.Grid.MaxLevel {
		r.finishRun()
		return SignalRunComplete
	}

	r.env.FX.Toast(fmt.Sprintf("Level %d complete!", lv.Number), world.DefaultToast)
	r.LevelIndex++
	r.BuildLevel(r.LevelIndex)
	r.Current.StartCountdown(t.Timing.Countdown)
	return SignalLevelComplete
}

func (r *Run) finishRun() {
	r.Finished = true
	r.FinalMs = int64(math.Round(r.TotalActiveMs))
	formatted := world.FormatMs(r.FinalMs)
	r.env.FX.Toast(fmt.Sprintf("All levels complete! Total time: %s.", formatted), world.DefaultToast)
	r.env.FX.OpenEnd(formatted)
}

// outOfFuel punishes an empty tank with a time penalty and a full rebuild
// of the level.
func (r *Run) outOfFuel() {
	lv := r.Current
	if lv == nil || !lv.TimerRunning {
		return
	}
	t := r.env.Tuning
	r.AddPenalty(t.Fuel.OutPenaltyMs)
	r.BuildLevel(lv.Number)
	r.Current.StartCountdown(t.Timing.Countdown)
	r.env.FX.Toast(fmt.Sprintf("Fuel depleted! +%gs penalty.", t.Fuel.OutPenaltyMs/1000), world.DefaultToast)
}

// StartTimer resumes the active-time accumulator.
func (r *Run) StartTimer() {
	if r.Current == nil {
		return
	}
	r.Current.TimerRunning = true
}

// PauseTimer stops the active-time accumulator.
func (r *Run) PauseTimer() {
	if r.Current == nil {
		return
	}
	r.Current.TimerRunning = false
}

// AddPenalty adds time to both the level and the run without starting the
// timer.
func (r *Run) AddPenalty(ms float64) {
	if r.Current == nil {
		return
	}
	r.Current.ActiveMs += ms
	r.TotalActiveMs += ms
}
