package roadmap

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/starmap/internal/config"
	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

const dt = 1.0 / 60

func newTestRun(t *testing.T, cat *config.Catalog) (*Run, *world.Recorder, *config.Tuning) {
	t.Helper()
	cfg := config.DefaultTuning()
	if cat == nil {
		c := config.DefaultCatalog()
		cat = &c
	}
	rec := &world.Recorder{}
	r := NewRun("abc", Env{Tuning: &cfg, Catalog: cat, FX: rec, Particles: world.NewParticles(1)})
	return r, rec, &cfg
}

// fivePlanetCatalog gives every level five planets so the quota is five.
func fivePlanetCatalog() *config.Catalog {
	var cat config.Catalog
	for level := 1; level <= 5; level++ {
		for i := 1; i <= 5; i++ {
			cat.Planets = append(cat.Planets, config.Planet{
				ID:    fmt.Sprintf("p%d-%d", level, i),
				Phase: level,
				Order: i,
				Title: fmt.Sprintf("Planet %d-%d", level, i),
			})
		}
	}
	return &cat
}

func launch(lv *Level) {
	lv.Pad.Locked = false
	lv.Pad.Launched = true
}

func collectAll(lv *Level) {
	for _, n := range lv.Nodes {
		if n.Kind == world.NodePlanet {
			lv.Shards.Add(n.ID)
		}
	}
}

func TestNewRunSeeds(t *testing.T) {
	r, _, cfg := newTestRun(t, nil)
	if len(r.Seeds) != cfg.Grid.MaxLevel {
		t.Fatalf("got %d seeds, want %d", len(r.Seeds), cfg.Grid.MaxLevel)
	}
	if r.Seeds[0] != "abc-L1" || r.Seeds[4] != "abc-L5" {
		t.Errorf("seeds = %v", r.Seeds)
	}
	lv := r.Current
	if lv.Number != 1 || !lv.Pad.Locked || lv.Fuel != 100 || lv.Boost != cfg.Boost.MaxPips {
		t.Errorf("level 1 built wrong: %+v", lv)
	}
	if lv.Player.Pos != lv.Pad.Start || lv.Player.Angle != 0 {
		t.Errorf("player not on pad: %v", lv.Player.Pos)
	}
}

func TestStartFuelScalesWithLevel(t *testing.T) {
	r, _, cfg := newTestRun(t, nil)
	cfg.Fuel.BaseStart = 60
	for level, want := range map[int]float64{1: 60, 3: 80, 5: 100} {
		r.BuildLevel(level)
		if r.Current.Fuel != want {
			t.Errorf("level %d start fuel = %v, want %v", level, r.Current.Fuel, want)
		}
	}
}

func TestShardCollectionIsIdempotent(t *testing.T) {
	r, rec, _ := newTestRun(t, nil)
	lv := r.Current
	launch(lv)

	var planet world.Node
	for _, n := range lv.Nodes {
		if n.Kind == world.NodePlanet {
			planet = n
			break
		}
	}
	lv.Player.Pos = planet.Center()

	r.Update(dt, core.Intent{})
	r.Update(dt, core.Intent{})
	lv.Shards.Add(planet.ID)

	if lv.Shards.Len() != 1 {
		t.Errorf("collected %d shards, want 1", lv.Shards.Len())
	}
	toasts := 0
	for _, m := range rec.Toasts {
		if m == "Shard collected: "+planet.Label() {
			toasts++
		}
	}
	if toasts != 1 {
		t.Errorf("shard toast shown %d times", toasts)
	}
}

func TestGateQuota(t *testing.T) {
	tests := []struct {
		name      string
		shards    int
		fuel      float64
		want      Signal
		wantToast string
	}{
		{"missing shards", 3, 100, SignalNone, "Gate requires 2 more shard(s)."},
		{"missing shards empty tank", 0, 0, SignalNone, "Gate requires 5 more shard(s)."},
		{"low fuel", 5, 0.5, SignalNone, "Gate requires at least 1 fuel."},
		{"quota met", 5, 2, SignalLevelComplete, "Level 1 complete!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, rec, cfg := newTestRun(t, fivePlanetCatalog())
			lv := r.Current
			if r.RequiredShards() != 5 {
				t.Fatalf("RequiredShards() = %d, want 5", r.RequiredShards())
			}
			for i := 1; i <= tt.shards; i++ {
				lv.Shards.Add(fmt.Sprintf("p1-%d", i))
			}
			lv.Fuel = tt.fuel

			got := r.TryFinishLevel()
			if got != tt.want {
				t.Fatalf("TryFinishLevel() = %v, want %v", got, tt.want)
			}
			if rec.LastToast() != tt.wantToast {
				t.Errorf("toast = %q, want %q", rec.LastToast(), tt.wantToast)
			}
			if tt.want == SignalNone {
				if r.Current != lv || lv.Completed {
					t.Error("level advanced without meeting the gate requirements")
				}
				return
			}
			if !lv.Completed || r.Current.Number != 2 || r.LevelIndex != 2 {
				t.Errorf("expected level 2, got %d", r.Current.Number)
			}
			if !r.Current.Countdown.Active || r.Current.Countdown.Remaining != cfg.Timing.Countdown {
				t.Error("next level should start with a countdown")
			}
		})
	}
}

func TestGateQuotaCappedByPlanetCount(t *testing.T) {
	r, _, _ := newTestRun(t, nil)
	if got := r.RequiredShards(); got != 3 {
		t.Fatalf("level 1 of the default catalog has 3 planets, quota = %d", got)
	}
	collectAll(r.Current)
	if sig := r.TryFinishLevel(); sig != SignalLevelComplete {
		t.Errorf("TryFinishLevel() = %v", sig)
	}
}

func TestCompletedLevelIsNoop(t *testing.T) {
	r, rec, _ := newTestRun(t, nil)
	lv := r.Current
	lv.Completed = true
	collectAll(lv)
	if sig := r.TryFinishLevel(); sig != SignalNone {
		t.Errorf("completed level advanced: %v", sig)
	}
	if len(rec.Toasts) != 0 {
		t.Errorf("completed level toasted %v", rec.Toasts)
	}
}

func TestFinalLevelFinishesRun(t *testing.T) {
	r, rec, cfg := newTestRun(t, fivePlanetCatalog())
	r.LevelIndex = cfg.Grid.MaxLevel
	r.BuildLevel(cfg.Grid.MaxLevel)
	r.TotalActiveMs = 83456.6
	collectAll(r.Current)

	if sig := r.TryFinishLevel(); sig != SignalRunComplete {
		t.Fatalf("TryFinishLevel() = %v, want run complete", sig)
	}
	if !r.Finished || r.FinalMs != 83457 {
		t.Errorf("Finished=%v FinalMs=%d", r.Finished, r.FinalMs)
	}
	if len(rec.Ends) != 1 || rec.Ends[0] != "01:23.45" {
		t.Errorf("end overlay = %v", rec.Ends)
	}
	if rec.LastToast() != "All levels complete! Total time: 01:23.45." {
		t.Errorf("toast = %q", rec.LastToast())
	}

	// A finished run ignores further updates.
	before := r.TotalActiveMs
	r.Update(1, core.Intent{Thrust: 1})
	if r.TotalActiveMs != before {
		t.Error("finished run kept accumulating time")
	}
}

func TestCountdownPinsShip(t *testing.T) {
	r, _, cfg := newTestRun(t, nil)
	lv := r.Current
	lv.StartCountdown(cfg.Timing.Countdown)

	lv.Player.Pos = core.V(5, 5)
	lv.Player.Vel = core.V(3, 3)
	r.Update(dt, core.Intent{Launch: true, Thrust: 1})

	if lv.Player.Pos != lv.Pad.Start || lv.Player.Vel != (core.Vec2{}) {
		t.Errorf("countdown did not pin ship: pos=%v vel=%v", lv.Player.Pos, lv.Player.Vel)
	}
	if !lv.Pad.Locked {
		t.Error("launch accepted during countdown")
	}

	for i := 0; i < 300 && lv.Countdown.Active; i++ {
		r.Update(dt, core.Intent{})
	}
	if lv.Countdown.Active {
		t.Fatal("countdown never ended")
	}

	r.Update(dt, core.Intent{Launch: true})
	if lv.Pad.Locked || !lv.Pad.Launched {
		t.Error("launch refused after countdown")
	}
	r.Update(dt, core.Intent{})
	if !lv.TimerRunning {
		t.Error("timer should run once launched")
	}
}

func TestTimerAccumulatesOnlyWhileRunning(t *testing.T) {
	r, _, _ := newTestRun(t, nil)
	lv := r.Current

	for i := 0; i < 60; i++ {
		r.Update(dt, core.Intent{})
	}
	if lv.ActiveMs != 0 || r.TotalActiveMs != 0 {
		t.Fatalf("timer ran while locked: %v", lv.ActiveMs)
	}

	r.AddPenalty(500)
	if lv.TimerRunning {
		t.Error("penalty started the timer")
	}
	if lv.ActiveMs != 500 || r.TotalActiveMs != 500 {
		t.Errorf("penalty not applied to both accumulators: %v %v", lv.ActiveMs, r.TotalActiveMs)
	}

	launch(lv)
	for i := 0; i < 60; i++ {
		r.Update(dt, core.Intent{})
	}
	if math.Abs(r.TotalActiveMs-1500) > 1e-6 {
		t.Errorf("total = %v, want 1500", r.TotalActiveMs)
	}

	r.PauseTimer()
	lv.Pad.Launched = false
	r.Update(dt, core.Intent{})
	if math.Abs(r.TotalActiveMs-1500) > 1e-6 {
		t.Errorf("paused timer advanced: %v", r.TotalActiveMs)
	}
}

func TestOutOfFuelRebuildsLevel(t *testing.T) {
	r, rec, cfg := newTestRun(t, nil)
	lv := r.Current
	launch(lv)
	lv.Player.Pos = core.V(5, 2)
	lv.Fuel = 0.001
	r.Update(dt, core.Intent{})
	if !lv.TimerRunning {
		t.Fatal("timer should be running")
	}
	beforeMs := r.TotalActiveMs

	sig := r.Update(dt, core.Intent{Thrust: 1})
	if sig != SignalOutOfFuel {
		t.Fatalf("Update() = %v, want out of fuel", sig)
	}
	if r.Current == lv {
		t.Fatal("level was not rebuilt")
	}
	nl := r.Current
	if nl.Number != 1 || nl.Fuel != 100 || !nl.Countdown.Active || nl.TimerRunning {
		t.Errorf("rebuilt level wrong: number=%d fuel=%v countdown=%v timer=%v",
			nl.Number, nl.Fuel, nl.Countdown.Active, nl.TimerRunning)
	}
	if !reflect.DeepEqual(nl.Nodes, lv.Nodes) {
		t.Error("rebuilt level changed layout")
	}
	if got := r.TotalActiveMs - beforeMs; math.Abs(got-cfg.Fuel.OutPenaltyMs-dt*1000) > 1e-6 {
		t.Errorf("penalty delta = %v", got)
	}
	if rec.LastToast() != "Fuel depleted! +30s penalty." {
		t.Errorf("toast = %q", rec.LastToast())
	}
}

func TestEmptyTankBeforeTimerIsNotPenalized(t *testing.T) {
	r, _, _ := newTestRun(t, nil)
	lv := r.Current
	lv.Fuel = 0.0001
	r.Update(dt, core.Intent{TurnLeft: true})
	if lv.Fuel != 0 {
		t.Fatalf("fuel = %v", lv.Fuel)
	}
	if r.Current != lv {
		t.Error("level rebuilt while timer was stopped")
	}
}

func TestStationRefillsOnlyWhenNotFull(t *testing.T) {
	r, rec, _ := newTestRun(t, nil)
	lv := r.Current
	launch(lv)

	var station world.Node
	for _, n := range lv.Nodes {
		if n.Kind == world.NodeStation {
			station = n
		}
	}
	lv.Player.Pos = station.Center()
	lv.Fuel = lv.MaxFuel
	r.Update(dt, core.Intent{})
	if len(rec.Toasts) != 0 {
		t.Errorf("full tank refilled: %v", rec.Toasts)
	}

	lv.Fuel = 10
	r.Update(dt, core.Intent{})
	if lv.Fuel != lv.MaxFuel || rec.LastToast() != "Fuel Tank Refilled!" {
		t.Errorf("fuel=%v toast=%q", lv.Fuel, rec.LastToast())
	}
}

func TestBacksideEntry(t *testing.T) {
	setup := func(t *testing.T, level int, collect bool, angle, offset float64) (*Run, world.Node) {
		r, _, _ := newTestRun(t, nil)
		r.LevelIndex = level
		r.BuildLevel(level)
		lv := r.Current
		launch(lv)
		if collect {
			collectAll(lv)
		}
		gate, _ := lv.Gate()
		lv.Player.Pos = core.V(gate.Center().X+offset, gate.Center().Y)
		lv.Player.Angle = angle
		return r, gate
	}

	tests := []struct {
		name    string
		level   int
		collect bool
		angle   float64
		offset  float64
		want    bool
	}{
		{"final level from behind", 5, true, math.Pi, 0.85, true},
		{"facing right", 5, true, 0, 0.85, false},
		{"not far enough right", 5, true, math.Pi, 0.5, false},
		{"missing shards", 5, false, math.Pi, 0.85, false},
		{"not final level", 4, true, math.Pi, 0.85, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, gate := setup(t, tt.level, tt.collect, tt.angle, tt.offset)
			if got := r.IsBacksideArenaEntry(gate); got != tt.want {
				t.Errorf("IsBacksideArenaEntry() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("update diverts into arena", func(t *testing.T) {
		r, _ := setup(t, 5, true, math.Pi, 0.85)
		r.StartTimer()
		lv := r.Current
		if sig := r.Update(dt, core.Intent{}); sig != SignalEnterArena {
			t.Fatalf("Update() = %v, want enter arena", sig)
		}
		if lv.Completed || lv.TimerRunning {
			t.Errorf("arena entry should pause without completing: completed=%v timer=%v", lv.Completed, lv.TimerRunning)
		}
	})
}

func TestGateRefusalToastsOncePerVisit(t *testing.T) {
	r, rec, _ := newTestRun(t, nil)
	lv := r.Current
	launch(lv)
	r.StartTimer()
	gate, _ := lv.Gate()

	refusals := func() int {
		n := 0
		for _, msg := range rec.Toasts {
			if strings.HasPrefix(msg, "Gate requires") {
				n++
			}
		}
		return n
	}

	lv.Player.Pos = gate.Center()
	for range 30 {
		lv.Player.Vel = core.Vec2{}
		if sig := r.Update(dt, core.Intent{}); sig != SignalNone {
			t.Fatalf("Update() = %v without shards", sig)
		}
	}
	if n := refusals(); n != 1 {
		t.Fatalf("gate refusal toasted %d times on one visit, want 1", n)
	}

	lv.Player.Pos = lv.Pad.Start
	r.Update(dt, core.Intent{})
	lv.Player.Pos = gate.Center()
	lv.Player.Vel = core.Vec2{}
	r.Update(dt, core.Intent{})
	if n := refusals(); n != 2 {
		t.Errorf("gate refusal toasted %d times after a second visit, want 2", n)
	}

	collectAll(lv)
	lv.Player.Pos = lv.Pad.Start
	r.Update(dt, core.Intent{})
	lv.Player.Pos = gate.Center()
	lv.Player.Vel = core.Vec2{}
	if sig := r.Update(dt, core.Intent{}); sig != SignalLevelComplete {
		t.Errorf("Update() = %v with quota met, want level complete", sig)
	}
}

func TestNearestTarget(t *testing.T) {
	r, _, _ := newTestRun(t, nil)
	lv := r.Current
	launch(lv)
	lv.Player.Pos = core.V(0.5, 0.5)

	r.Update(dt, core.Intent{})
	if lv.NearestTarget == nil || lv.NearestTarget.Kind != world.NodePlanet {
		t.Fatalf("nearest target = %+v", lv.NearestTarget)
	}
	best := math.Inf(1)
	for _, n := range lv.Nodes {
		if n.Kind == world.NodePlanet {
			best = math.Min(best, lv.Player.Pos.DistSq(n.Center()))
		}
	}
	if got := lv.Player.Pos.DistSq(lv.NearestTarget.Center()); got != best {
		t.Errorf("target is not the closest planet: %v vs %v", got, best)
	}

	collectAll(lv)
	r.Update(dt, core.Intent{})
	if lv.NearestTarget == nil || lv.NearestTarget.Kind != world.NodeGate {
		t.Errorf("with every shard collected the gate should be targeted, got %+v", lv.NearestTarget)
	}
}

func TestStuckHint(t *testing.T) {
	r, _, cfg := newTestRun(t, nil)
	lv := r.Current
	steps := int(cfg.Timing.StuckHint/dt) + 2
	for i := 0; i < steps; i++ {
		r.Update(dt, core.Intent{})
	}
	if !lv.ShowLaunchHint {
		t.Fatal("launch hint not shown")
	}
	r.Update(dt, core.Intent{Launch: true})
	if lv.ShowLaunchHint || lv.StuckTimer != 0 {
		t.Error("launch should clear the hint")
	}
}

func TestRetryKeepsIdentity(t *testing.T) {
	r, _, _ := newTestRun(t, nil)
	level1 := r.Current.Nodes
	collectAll(r.Current)
	r.TryFinishLevel()
	r.TotalActiveMs = 4200

	r.Retry()
	if r.ID != "abc" || r.TotalActiveMs != 4200 || r.LevelIndex != 1 || r.Current.Number != 1 {
		t.Errorf("retry state: id=%s total=%v level=%d", r.ID, r.TotalActiveMs, r.Current.Number)
	}
	if !reflect.DeepEqual(r.Current.Nodes, level1) {
		t.Error("retry changed the level 1 layout")
	}
}

func TestRunDeterminism(t *testing.T) {
	play := func() *Run {
		r, _, _ := newTestRun(t, nil)
		for i := 0; i < 600; i++ {
			in := core.Intent{Thrust: 1, TurnRight: i%90 < 30, Launch: i == 10}
			r.Update(dt, in)
		}
		return r
	}
	a, b := play(), play()
	if a.Current.Player != b.Current.Player || a.TotalActiveMs != b.TotalActiveMs {
		t.Errorf("runs diverged: %+v vs %+v", a.Current.Player, b.Current.Player)
	}
}
