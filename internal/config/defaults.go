package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/starmap.yaml
var defaultTuningYAML []byte

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// DefaultTuning returns the reference tuning. The embedded starmap.yaml carries
// the same values; this is the fallback when the embed cannot be parsed.
func DefaultTuning() Tuning {
	return Tuning{
		Grid: GridTuning{
			Width:          32,
			Height:         18,
			MaxLevel:       5,
			ShardsPerLevel: 5,
		},
		Ship: ShipTuning{
			RotationScale:       0.35,
			AngularAccel:        math.Pi * 6,
			AngularDamping:      5,
			MaxAngularVel:       math.Pi * 2.5,
			ThrustAccel:         5,
			Friction:            0.7,
			MaxSpeed:            15,
			LaunchImpulse:       3.5,
			Scale:               0.85,
			MaxHP:               100,
			InvulnDuration:      0.4,
			StartPadRadius:      0.9,
			WorldPadding:        0.3,
			WallBounceDampening: -0.3,
		},
		Fuel: FuelTuning{
			MaxTank:      100,
			BaseStart:    100,
			PerLevel:     10,
			RotPerSec:    0.3,
			ThrustPerSec: 1.5,
			LaunchCost:   5,
			OutPenaltyMs: 30000,
			GateMin:      1,
		},
		Boost: BoostTuning{
			MaxPips:     3,
			RegenPerSec: 0.22,
			Impulse:     4,
			Cooldown:    0.25,
		},
		Radii: RadiiTuning{
			Planet:  0.45,
			Station: 0.5,
			Gate:    0.9,
		},
		Timing: TimingTuning{
			Countdown: 3.5,
			StuckHint: 10,
		},
		Camera: CameraTuning{
			BaseZoom:    1.85,
			ArenaZoom:   1.25,
			FollowSpeed: 0.9,
			PanSpeed:    0.8,
		},
		Arena: ArenaTuning{
			Size:                   40,
			WallThickness:          0.24,
			ShardPickupRadius:      1.0,
			GeneratorDepositRadius: 1.5,
			GeneratorCapacity:      2,
			CarryCap:               2,
			GateTriggerRadius:      1.2,
			EncryptedPickupRadius:  1.2,
			RamDamage:              90,
			RamCooldown:            0.25,
		},
		Boss: BossTuning{
			MaxHP:             500,
			Radius:            2,
			EntryDuration:     1.5,
			Damage:            10,
			FireCooldownBase:  1.25,
			FireCooldownFast:  0.8,
			EnrageThreshold:   0.4,
			TelegraphDuration: 0.25,
			SpreadAngle:       0.2,
			BulletSpeed:       8,
			BulletLife:        4,
		},
		Weapon: WeaponTuning{
			ProjectileSpeed:  16,
			ProjectileLife:   1.2,
			ProjectileDamage: 50,
			FireRate:         0.16,
			MaxHeat:          100,
			HeatPerShot:      8,
			CoolRate:         28,
			OverheatCoolRate: 14,
		},
		Cinema: CinemaTuning{
			RingSpeed:     36,
			RingDuration:  0.6,
			BoomFrameRate: 12,
			BoomDuration:  0.8,
			GateHold:      0.95,
			ReturnHold:    0.95,
			FocusPan:      0.8,
			GatePan:       0.9,
			ReturnPan:     0.9,
		},
		Settings: SettingsTuning{
			MusicVolume: 0.5,
			SFXVolume:   0.7,
		},
	}
}

// Normalize replaces non-positive values that must be positive with the
// reference defaults. Wall bounce dampening is only backfilled when zero
// since it is negative by design.
func (t *Tuning) Normalize() {
	d := DefaultTuning()

	positiveInt(&t.Grid.Width, d.Grid.Width)
	positiveInt(&t.Grid.Height, d.Grid.Height)
	positiveInt(&t.Grid.MaxLevel, d.Grid.MaxLevel)
	positiveInt(&t.Grid.ShardsPerLevel, d.Grid.ShardsPerLevel)

	positive(&t.Ship.RotationScale, d.Ship.RotationScale)
	positive(&t.Ship.AngularAccel, d.Ship.AngularAccel)
	positive(&t.Ship.AngularDamping, d.Ship.AngularDamping)
	positive(&t.Ship.MaxAngularVel, d.Ship.MaxAngularVel)
	positive(&t.Ship.ThrustAccel, d.Ship.ThrustAccel)
	positive(&t.Ship.Friction, d.Ship.Friction)
	positive(&t.Ship.MaxSpeed, d.Ship.MaxSpeed)
	positive(&t.Ship.LaunchImpulse, d.Ship.LaunchImpulse)
	positive(&t.Ship.Scale, d.Ship.Scale)
	positive(&t.Ship.MaxHP, d.Ship.MaxHP)
	positive(&t.Ship.StartPadRadius, d.Ship.StartPadRadius)
	if t.Ship.WallBounceDampening == 0 {
		t.Ship.WallBounceDampening = d.Ship.WallBounceDampening
	}

	positive(&t.Fuel.MaxTank, d.Fuel.MaxTank)
	positive(&t.Fuel.BaseStart, d.Fuel.BaseStart)
	positive(&t.Fuel.LaunchCost, d.Fuel.LaunchCost)

	positive(&t.Boost.MaxPips, d.Boost.MaxPips)
	positive(&t.Boost.Impulse, d.Boost.Impulse)

	positive(&t.Radii.Planet, d.Radii.Planet)
	positive(&t.Radii.Station, d.Radii.Station)
	positive(&t.Radii.Gate, d.Radii.Gate)

	positive(&t.Camera.BaseZoom, d.Camera.BaseZoom)
	positive(&t.Camera.ArenaZoom, d.Camera.ArenaZoom)
	positive(&t.Camera.FollowSpeed, d.Camera.FollowSpeed)
	positive(&t.Camera.PanSpeed, d.Camera.PanSpeed)
	t.Camera.FollowSpeed = math.Min(0.99, t.Camera.FollowSpeed)

	positive(&t.Arena.Size, d.Arena.Size)
	positive(&t.Arena.WallThickness, d.Arena.WallThickness)
	positive(&t.Arena.ShardPickupRadius, d.Arena.ShardPickupRadius)
	positive(&t.Arena.GeneratorDepositRadius, d.Arena.GeneratorDepositRadius)
	positiveInt(&t.Arena.GeneratorCapacity, d.Arena.GeneratorCapacity)
	positiveInt(&t.Arena.CarryCap, d.Arena.CarryCap)
	positive(&t.Arena.GateTriggerRadius, d.Arena.GateTriggerRadius)
	positive(&t.Arena.EncryptedPickupRadius, d.Arena.EncryptedPickupRadius)

	positive(&t.Boss.MaxHP, d.Boss.MaxHP)
	positive(&t.Boss.Radius, d.Boss.Radius)
	positive(&t.Boss.EntryDuration, d.Boss.EntryDuration)
	positive(&t.Boss.FireCooldownBase, d.Boss.FireCooldownBase)
	positive(&t.Boss.FireCooldownFast, d.Boss.FireCooldownFast)
	positive(&t.Boss.BulletSpeed, d.Boss.BulletSpeed)
	positive(&t.Boss.BulletLife, d.Boss.BulletLife)

	positive(&t.Weapon.ProjectileSpeed, d.Weapon.ProjectileSpeed)
	positive(&t.Weapon.ProjectileLife, d.Weapon.ProjectileLife)
	positive(&t.Weapon.FireRate, d.Weapon.FireRate)
	positive(&t.Weapon.MaxHeat, d.Weapon.MaxHeat)

	positive(&t.Cinema.RingSpeed, d.Cinema.RingSpeed)
	positive(&t.Cinema.RingDuration, d.Cinema.RingDuration)
	positive(&t.Cinema.BoomDuration, d.Cinema.BoomDuration)
}

func positive(v *float64, def float64) {
	if !(*v > 0) || math.IsInf(*v, 0) {
		*v = def
	}
}

func positiveInt(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
