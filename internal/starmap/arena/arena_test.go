package arena

import (
	"math"
	"testing"

	"github.com/vovakirdan/starmap/internal/config"
	"github.com/vovakirdan/starmap/internal/core"
	"github.com/vovakirdan/starmap/internal/starmap/world"
)

const dt = 1.0 / 60

type panRecorder struct {
	targets []core.Vec2
	holds   []bool
	clears  int
}

func (p *panRecorder) BeginPanTo(to core.Vec2, _ float64, hold bool) {
	p.targets = append(p.targets, to)
	p.holds = append(p.holds, hold)
}

func (p *panRecorder) ClearPan() { p.clears++ }

type fixture struct {
	a    *State
	fx   *world.Recorder
	pool *world.Projectiles
	cam  *panRecorder
	cfg  *config.Tuning
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	cfg := config.DefaultTuning()
	f := fixture{
		fx:   &world.Recorder{},
		pool: &world.Projectiles{},
		cam:  &panRecorder{},
		cfg:  &cfg,
	}
	f.a = Build(Env{
		Tuning:      &cfg,
		FX:          f.fx,
		Particles:   world.NewParticles(1),
		Projectiles: f.pool,
		Camera:      f.cam,
	})
	return f
}

// exposeBoss puts an idle, unshielded boss somewhere clear of the player
// and the cover.
func (f fixture) exposeBoss(hp float64) {
	f.a.Boss.State = BossIdle
	f.a.Boss.Shielded = false
	f.a.Boss.HP = hp
	f.a.Boss.Pos = core.V(20, 16)
}

func TestBuildLayout(t *testing.T) {
	f := newFixture(t)
	a := f.a

	if len(a.Walls) != 8 {
		t.Errorf("got %d walls, want 8", len(a.Walls))
	}
	if len(a.Cover) != 6 {
		t.Errorf("got %d cover boxes, want 6", len(a.Cover))
	}
	if len(a.Gens) != 2 || len(a.Shards) != 4 {
		t.Errorf("got %d generators and %d shards, want 2 and 4", len(a.Gens), len(a.Shards))
	}
	if a.Boss.State != BossPreEntry || !a.Boss.Shielded {
		t.Errorf("boss = %v shielded=%v, want pre-entry and shielded", a.Boss.State, a.Boss.Shielded)
	}
	if a.Boss.Pos.Y >= 0 {
		t.Errorf("boss starts at y=%v, want above the arena", a.Boss.Pos.Y)
	}
	want := core.V(20, 33.5)
	if a.Player.Pos != want || a.Pad.Start != want {
		t.Errorf("player at %v pad %v, want %v", a.Player.Pos, a.Pad.Start, want)
	}
	if a.Player.Angle != -math.Pi/2 {
		t.Errorf("player angle = %v, want -pi/2", a.Player.Angle)
	}
	for _, c := range a.Cover {
		if c.Contains(a.Player.Pos) {
			t.Errorf("player spawns inside cover %+v", c)
		}
	}
	if a.Boost != f.cfg.Boost.MaxPips {
		t.Errorf("boost = %v, want %v", a.Boost, f.cfg.Boost.MaxPips)
	}
}

func TestBuildClearsProjectiles(t *testing.T) {
	pool := &world.Projectiles{}
	pool.Spawn(world.OwnerEnemy, core.V(1, 1), core.Vec2{}, 5)
	cfg := config.DefaultTuning()
	Build(Env{Tuning: &cfg, Projectiles: pool})
	if len(pool.Items) != 0 {
		t.Errorf("got %d projectiles after build, want 0", len(pool.Items))
	}
}

func TestBossDiesExactlyOnce(t *testing.T) {
	f := newFixture(t)
	f.exposeBoss(50)
	for range 5 {
		f.pool.Spawn(world.OwnerPlayer, f.a.Boss.Pos, core.Vec2{}, 10)
	}

	for range 12 {
		f.a.Update(dt, core.Intent{})
	}

	if f.a.Boss.State != BossDead {
		t.Fatalf("boss state = %v, want dead", f.a.Boss.State)
	}
	if n := f.fx.CountSound(world.CueExplosion); n != 1 {
		t.Errorf("explosion played %d times, want 1", n)
	}
	if f.a.Encrypted == nil {
		t.Error("encrypted shard not dropped")
	}
	if !f.a.CinematicStarted || f.a.Cine == nil {
		t.Error("cinematic did not start")
	}
	if f.a.killBoss() {
		t.Error("killBoss() succeeded on a dead boss")
	}
}

func TestDefeatReportedOnce(t *testing.T) {
	f := newFixture(t)
	f.a.Player.HP = 5

	f.pool.Spawn(world.OwnerEnemy, f.a.Player.Pos, core.Vec2{}, 10)
	if got := f.a.Update(dt, core.Intent{}); got != SignalDefeat {
		t.Fatalf("Update() = %v, want defeat", got)
	}

	f.a.Player.Invuln = 0
	f.pool.Spawn(world.OwnerEnemy, f.a.Player.Pos, core.Vec2{}, 10)
	if got := f.a.Update(dt, core.Intent{}); got == SignalDefeat {
		t.Error("defeat reported twice")
	}
	if len(f.fx.Defeats) != 1 {
		t.Errorf("got %d defeat overlays, want 1", len(f.fx.Defeats))
	}
	if f.fx.Defeats[0].Locked {
		t.Error("defeat overlay is locked")
	}
}

func TestEnemyHitRespectsInvuln(t *testing.T) {
	f := newFixture(t)
	f.a.Player.Invuln = 0.3
	f.pool.Spawn(world.OwnerEnemy, f.a.Player.Pos, core.Vec2{}, 10)

	died, _ := f.a.resolveProjectiles()
	if died || f.a.Player.HP != f.a.Player.MaxHP {
		t.Errorf("player took damage while invulnerable: hp=%v", f.a.Player.HP)
	}
	if len(f.pool.Items) != 1 {
		t.Errorf("projectile consumed without a hit")
	}

	f.a.Player.Invuln = 0
	f.a.resolveProjectiles()
	if f.a.Player.HP != f.a.Player.MaxHP-f.cfg.Boss.Damage {
		t.Errorf("hp = %v, want %v", f.a.Player.HP, f.a.Player.MaxHP-f.cfg.Boss.Damage)
	}
	if f.a.Player.Invuln != f.cfg.Ship.InvulnDuration {
		t.Errorf("invuln = %v, want %v", f.a.Player.Invuln, f.cfg.Ship.InvulnDuration)
	}
	if len(f.pool.Items) != 0 {
		t.Errorf("got %d projectiles after hit, want 0", len(f.pool.Items))
	}
}

func TestProjectilesDroppedOutsideOrInCover(t *testing.T) {
	f := newFixture(t)
	f.pool.Spawn(world.OwnerPlayer, core.V(0.5, 20), core.Vec2{}, 10)
	f.pool.Spawn(world.OwnerPlayer, f.a.Cover[0].Center, core.Vec2{}, 10)
	f.pool.Spawn(world.OwnerPlayer, core.V(5, 20), core.Vec2{}, 10)

	f.a.resolveProjectiles()
	if len(f.pool.Items) != 1 || f.pool.Items[0].Pos != core.V(5, 20) {
		t.Errorf("remaining projectiles = %+v, want only the one at (5,20)", f.pool.Items)
	}
}

func TestWallPushOut(t *testing.T) {
	tests := []struct {
		name  string
		inset float64
	}{
		{"dead center on segment", 0},
		{"partial overlap", 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			a := f.a
			w := a.Walls[0]
			mid := w.A.Add(w.B).Scale(0.5)
			inward := a.Center().Sub(mid).Scale(1 / a.Center().Dist(mid))

			a.Player.Pos = mid.Add(inward.Scale(tt.inset))
			a.Player.Vel = inward.Scale(-4)
			a.collideWalls()

			r := a.ShipRadius()
			if d := a.Player.Pos.Dist(w.Closest(a.Player.Pos)); d < r-1e-9 {
				t.Errorf("distance to wall = %v, want >= %v", d, r)
			}
			if a.Player.Pos.Dist(a.Center()) >= mid.Dist(a.Center()) {
				t.Errorf("ship pushed outwards to %v", a.Player.Pos)
			}
			if a.Player.Vel.Dot(inward) <= 0 {
				t.Errorf("velocity %v still heads into the wall", a.Player.Vel)
			}
			if got := a.Player.Vel.Len(); math.Abs(got-4*wallRestitution) > 1e-9 {
				t.Errorf("speed after bounce = %v, want %v", got, 4*wallRestitution)
			}
		})
	}
}

func TestCoverPushOut(t *testing.T) {
	tests := []struct {
		name   string
		offset core.Vec2
	}{
		{"center of box", core.Vec2{}},
		{"just outside the top face", core.V(0, -1.2)},
		{"inside near the right face", core.V(2.9, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			a := f.a
			c := a.Cover[0]
			a.Player.Pos = c.Center.Add(tt.offset)
			a.collideCover()

			r := a.ShipRadius()
			if c.Contains(a.Player.Pos) {
				t.Fatalf("ship still inside cover at %v", a.Player.Pos)
			}
			if d := a.Player.Pos.Dist(c.Closest(a.Player.Pos)); d < r-1e-9 {
				t.Errorf("distance to cover = %v, want >= %v", d, r)
			}
		})
	}
}

func TestShardCarryCap(t *testing.T) {
	f := newFixture(t)
	a := f.a

	for i := range 3 {
		a.Player.Pos = a.Shards[i].Pos
		a.pickupShards()
	}

	if a.Player.ShardsCarried != f.cfg.Arena.CarryCap {
		t.Errorf("carried = %d, want %d", a.Player.ShardsCarried, f.cfg.Arena.CarryCap)
	}
	if a.Shards[2].Collected {
		t.Error("shard collected past the carry cap")
	}
	if f.fx.Toasts[0] != "Energy Shard Collected (1/2)" {
		t.Errorf("toast = %q", f.fx.Toasts[0])
	}
	if n := f.fx.CountSound(world.CueShardPickup); n != 2 {
		t.Errorf("pickup played %d times, want 2", n)
	}
}

func TestDepositDropsShield(t *testing.T) {
	f := newFixture(t)
	a := f.a

	a.Player.ShardsCarried = 2
	a.Player.Pos = a.Gens[0].Pos
	a.depositShards()
	if a.Gens[0].Deposited != 2 || a.Player.ShardsCarried != 0 {
		t.Fatalf("gen A = %d carried = %d, want 2 and 0", a.Gens[0].Deposited, a.Player.ShardsCarried)
	}
	if got := f.fx.LastToast(); got != "Deposited 2. Gen A: 2/2" {
		t.Errorf("toast = %q", got)
	}
	if !a.Boss.Shielded {
		t.Fatal("shield dropped with one generator empty")
	}

	// Overflow past capacity is discarded.
	a.Gens[1].Deposited = 1
	a.Player.ShardsCarried = 2
	a.Player.Pos = a.Gens[1].Pos
	a.depositShards()
	if a.Gens[1].Deposited != 2 {
		t.Errorf("gen B = %d, want 2", a.Gens[1].Deposited)
	}
	if a.Boss.Shielded {
		t.Error("shield still up with every generator full")
	}
	if got := f.fx.LastToast(); got != "Generator array online! Boss shield is DOWN." {
		t.Errorf("toast = %q", got)
	}
	if n := f.fx.CountSound(world.CueShieldDown); n != 1 {
		t.Errorf("shield down played %d times, want 1", n)
	}

	a.Player.ShardsCarried = 1
	a.depositShards()
	if n := f.fx.CountSound(world.CueShieldDown); n != 1 {
		t.Errorf("shield down played %d times after refill, want 1", n)
	}
}

func TestShieldedBossDeflects(t *testing.T) {
	f := newFixture(t)
	f.exposeBoss(f.cfg.Boss.MaxHP)
	f.a.Boss.Shielded = true
	f.pool.Spawn(world.OwnerPlayer, f.a.Boss.Pos, core.Vec2{}, 10)

	f.a.resolveProjectiles()
	if f.a.Boss.HP != f.cfg.Boss.MaxHP {
		t.Errorf("shielded boss hp = %v, want %v", f.a.Boss.HP, f.cfg.Boss.MaxHP)
	}
	if len(f.pool.Items) != 0 {
		t.Error("deflected projectile not consumed")
	}
	if n := f.fx.CountSound(world.CueShieldHit); n != 1 {
		t.Errorf("shield hit played %d times, want 1", n)
	}
}

func TestRamCooldown(t *testing.T) {
	f := newFixture(t)
	f.exposeBoss(f.cfg.Boss.MaxHP)
	f.a.Boss.Pos = f.a.Player.Pos

	f.a.resolveRam(dt)
	f.a.resolveRam(dt)
	want := f.cfg.Boss.MaxHP - f.cfg.Arena.RamDamage
	if f.a.Boss.HP != want {
		t.Errorf("hp after two rams inside cooldown = %v, want %v", f.a.Boss.HP, want)
	}

	f.a.resolveRam(f.cfg.Arena.RamCooldown)
	if f.a.Boss.HP != want-f.cfg.Arena.RamDamage {
		t.Errorf("hp after cooldown = %v, want %v", f.a.Boss.HP, want-f.cfg.Arena.RamDamage)
	}

	f.a.Boss.Shielded = true
	f.a.resolveRam(f.cfg.Arena.RamCooldown)
	if f.a.Boss.HP != want-f.cfg.Arena.RamDamage {
		t.Error("ram damaged a shielded boss")
	}
}

func TestBossEntry(t *testing.T) {
	f := newFixture(t)
	f.a.StartCountdown(f.cfg.Timing.Countdown)

	for range 100 {
		f.a.Update(dt, core.Intent{})
	}

	if f.a.Boss.State != BossIdle {
		t.Fatalf("boss state = %v, want idle", f.a.Boss.State)
	}
	if len(f.fx.Music) != 1 || f.fx.Music[0] != world.TrackBossTheme {
		t.Errorf("music = %v, want one boss theme", f.fx.Music)
	}
	if n := f.fx.CountSound(world.CueBossIntro); n != 1 {
		t.Errorf("intro played %d times, want 1", n)
	}
	if f.a.Player.Pos != f.a.Pad.Start {
		t.Errorf("player moved during countdown to %v", f.a.Player.Pos)
	}
	if len(f.pool.Items) != 0 {
		t.Error("boss fired before combat started")
	}
}

func TestBossAttackSpread(t *testing.T) {
	tests := []struct {
		name     string
		hpFrac   float64
		cooldown float64
	}{
		{"healthy", 1, 1.25},
		{"enraged", 0.3, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.exposeBoss(f.cfg.Boss.MaxHP * tt.hpFrac)
			f.a.Boss.AttackCooldown = 0

			telegraphed := false
			for range 60 {
				f.a.bossAttack(0.01)
				telegraphed = telegraphed || f.a.Boss.Telegraphing()
				if len(f.pool.Items) > 0 {
					break
				}
			}
			if !telegraphed {
				t.Error("attack fired without a telegraph")
			}
			if len(f.pool.Items) != 3 {
				t.Fatalf("got %d boss bullets, want 3", len(f.pool.Items))
			}
			if f.a.Boss.AttackCooldown != tt.cooldown {
				t.Errorf("cooldown = %v, want %v", f.a.Boss.AttackCooldown, tt.cooldown)
			}

			aim := f.a.Player.Pos.Sub(f.a.Boss.Pos)
			mid := f.pool.Items[1].Vel
			if d := core.AngleDiff(math.Atan2(mid.Y, mid.X), math.Atan2(aim.Y, aim.X)); math.Abs(d) > 1e-9 {
				t.Errorf("middle bullet off target by %v rad", d)
			}
			for _, p := range f.pool.Items {
				if p.Owner != world.OwnerEnemy {
					t.Errorf("bullet owner = %v, want enemy", p.Owner)
				}
			}
		})
	}
}

func TestDeathCinematic(t *testing.T) {
	f := newFixture(t)
	f.exposeBoss(1)
	bossPos := f.a.Boss.Pos
	f.a.killBoss()
	f.pool.Spawn(world.OwnerEnemy, bossPos.Add(core.V(1, 0)), core.Vec2{}, 30)

	f.a.Update(dt, core.Intent{})
	if f.a.Cine == nil || f.a.Cine.Phase != CineRing || !f.a.ControlsLocked {
		t.Fatalf("cinematic not running after first frame: %+v", f.a.Cine)
	}
	if len(f.cam.targets) != 1 || f.cam.targets[0] != bossPos || !f.cam.holds[0] {
		t.Fatalf("first pan = %v %v, want hold on boss", f.cam.targets, f.cam.holds)
	}

	seen := map[CinePhase]bool{}
	for range 600 {
		if f.a.Cine == nil {
			break
		}
		seen[f.a.Cine.Phase] = true
		f.a.Update(dt, core.Intent{Thrust: 1})
	}

	if f.a.Cine != nil {
		t.Fatalf("cinematic still running in phase %v", f.a.Cine.Phase)
	}
	for _, p := range []CinePhase{CineRing, CineBoom, CineGate, CineReturn} {
		if !seen[p] {
			t.Errorf("phase %v skipped", p)
		}
	}
	if f.a.ControlsLocked {
		t.Error("controls still locked")
	}
	if !f.a.BossGone || f.a.ExitGate == nil {
		t.Error("exit gate not revealed")
	}
	if len(f.cam.targets) != 3 || f.cam.targets[1] != *f.a.ExitGate || f.cam.holds[2] {
		t.Errorf("pans = %v holds = %v", f.cam.targets, f.cam.holds)
	}
	if f.cam.clears != 1 {
		t.Errorf("pan cleared %d times, want 1", f.cam.clears)
	}
	if len(f.pool.Items) != 0 {
		t.Error("shockwave left projectiles behind")
	}
	if f.a.Player.Pos != f.a.Pad.Start {
		t.Errorf("player moved during cinematic to %v", f.a.Player.Pos)
	}

	f.a.Update(dt, core.Intent{})
	if f.a.Cine != nil {
		t.Error("cinematic restarted")
	}
}

func TestBoomProgress(t *testing.T) {
	tests := []struct {
		frame  float64
		frames int
		want   int
	}{
		{0, 10, 0},
		{3.7, 10, 3},
		{25, 10, 9},
		{4, 0, 0},
	}
	for _, tt := range tests {
		c := &Cinematic{BoomFrame: tt.frame}
		if got := c.BoomProgress(tt.frames); got != tt.want {
			t.Errorf("BoomProgress(%d) at frame %v = %d, want %d", tt.frames, tt.frame, got, tt.want)
		}
	}
}

func TestExitGatePlacement(t *testing.T) {
	f := newFixture(t)
	a := f.a
	mid := a.Gens[0].Pos.Add(a.Gens[1].Pos).Scale(0.5)
	r := f.cfg.Radii.Gate * 1.2

	if got := a.placeExitGate(); got != mid {
		t.Errorf("gate at %v, want midpoint %v", got, mid)
	}

	a.Cover = append(a.Cover, Cover{Center: mid, W: 2, H: 2})
	got := a.placeExitGate()
	if got == mid {
		t.Fatal("gate placed inside cover")
	}
	if a.gateBlocked(got, r) {
		t.Errorf("gate at %v overlaps geometry", got)
	}
	if got.X <= 1 || got.X >= a.Size-1 || got.Y <= 1 || got.Y >= a.Size-1 {
		t.Errorf("gate at %v outside the arena", got)
	}
}

func TestVictoryOnce(t *testing.T) {
	f := newFixture(t)
	gate := f.a.Player.Pos
	f.a.ExitGate = &gate
	f.a.HasEncryptedShard = true

	if got := f.a.Update(dt, core.Intent{}); got != SignalVictory {
		t.Fatalf("Update() = %v, want victory", got)
	}
	if got := f.a.Update(dt, core.Intent{}); got != SignalNone {
		t.Errorf("second Update() = %v, want none", got)
	}
	if len(f.fx.Victories) != 1 || f.fx.Victories[0].Message != "You defeated the Warden." {
		t.Errorf("victories = %+v", f.fx.Victories)
	}
}

func TestEncryptedPickup(t *testing.T) {
	f := newFixture(t)
	f.a.Encrypted = &Pickup{Pos: f.a.Player.Pos.Add(core.V(0.5, 0))}
	f.a.pickupEncrypted()
	if !f.a.HasEncryptedShard || !f.a.Encrypted.Picked {
		t.Error("encrypted shard not picked up")
	}
	if got := f.fx.LastToast(); got != "Encrypted Data Shard secured!" {
		t.Errorf("toast = %q", got)
	}
}

func TestShootingCooldown(t *testing.T) {
	f := newFixture(t)
	in := core.Intent{Shoot: true}

	f.a.handleShooting(0.01, in)
	f.a.handleShooting(0.01, in)
	if len(f.pool.Items) != 1 {
		t.Fatalf("got %d shots inside the fire rate, want 1", len(f.pool.Items))
	}
	shot := f.pool.Items[0]
	if shot.Owner != world.OwnerPlayer {
		t.Errorf("owner = %v, want player", shot.Owner)
	}
	if shot.Vel.Y >= 0 {
		t.Errorf("shot velocity %v, want heading up", shot.Vel)
	}
	if f.a.Player.Heat != f.cfg.Weapon.HeatPerShot {
		t.Errorf("heat = %v, want %v", f.a.Player.Heat, f.cfg.Weapon.HeatPerShot)
	}
	if n := f.fx.CountSound(world.CueLaser); n != 1 {
		t.Errorf("laser played %d times, want 1", n)
	}
}

func TestOverheat(t *testing.T) {
	f := newFixture(t)
	p := &f.a.Player
	p.Heat = p.MaxHeat - 1

	in := core.Intent{Shoot: true}
	f.a.handleShooting(dt, in)
	f.a.handleOverheat(dt, true)
	if !p.Overheated {
		t.Fatalf("heat %v did not overheat", p.Heat)
	}
	if got := f.fx.LastToast(); got != "Weapon overheated!" {
		t.Errorf("toast = %q", got)
	}

	p.ShootCooldown = 0
	f.a.handleShooting(dt, in)
	if len(f.pool.Items) != 1 {
		t.Errorf("fired while overheated")
	}

	for range 200 {
		f.a.handleOverheat(0.1, false)
		if !p.Overheated {
			break
		}
	}
	if p.Overheated || p.Heat != 0 {
		t.Errorf("overheated=%v heat=%v, want cooled", p.Overheated, p.Heat)
	}
	if got := f.fx.LastToast(); got != "Weapons online!" {
		t.Errorf("toast = %q", got)
	}
}

func TestLaunchStartsCombat(t *testing.T) {
	f := newFixture(t)
	f.a.Update(dt, core.Intent{Launch: true})
	if !f.a.CombatActive {
		t.Error("launch did not start combat")
	}
	if f.a.Pad.Locked {
		t.Error("pad still locked after launch")
	}
}
