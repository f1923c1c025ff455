// Package config provides YAML-based tuning and content loading plus
// difficulty presets for starmap.
package config

// Tuning contains every numeric constant the simulation consumes.
// It is loaded once at startup and treated as read-only afterwards.
type Tuning struct {
	Grid     GridTuning     `yaml:"grid"`
	Ship     ShipTuning     `yaml:"ship"`
	Fuel     FuelTuning     `yaml:"fuel"`
	Boost    BoostTuning    `yaml:"boost"`
	Radii    RadiiTuning    `yaml:"radii"`
	Timing   TimingTuning   `yaml:"timing"`
	Camera   CameraTuning   `yaml:"camera"`
	Arena    ArenaTuning    `yaml:"arena"`
	Boss     BossTuning     `yaml:"boss"`
	Weapon   WeaponTuning   `yaml:"weapon"`
	Cinema   CinemaTuning   `yaml:"cinematic"`
	Settings SettingsTuning `yaml:"settings"`
}

// GridTuning defines the roadmap campaign layout.
type GridTuning struct {
	Width          int `yaml:"width"`
	Height         int `yaml:"height"`
	MaxLevel       int `yaml:"max_level"`
	ShardsPerLevel int `yaml:"shards_per_level"`
}

// ShipTuning defines player ship handling. Distances are grid cells and
// speeds are cells per second.
type ShipTuning struct {
	RotationScale       float64 `yaml:"rotation_scale"`
	AngularAccel        float64 `yaml:"angular_accel"`
	AngularDamping      float64 `yaml:"angular_damping"`
	MaxAngularVel       float64 `yaml:"max_angular_vel"`
	ThrustAccel         float64 `yaml:"thrust_accel"`
	Friction            float64 `yaml:"friction"` // velocity multiplier per second
	MaxSpeed            float64 `yaml:"max_speed"`
	LaunchImpulse       float64 `yaml:"launch_impulse"`
	Scale               float64 `yaml:"scale"`
	MaxHP               float64 `yaml:"max_hp"`
	InvulnDuration      float64 `yaml:"invuln_duration"`
	StartPadRadius      float64 `yaml:"start_pad_radius"`
	WorldPadding        float64 `yaml:"world_padding"`
	WallBounceDampening float64 `yaml:"wall_bounce_dampening"`
}

// FuelTuning defines the roadmap fuel economy.
type FuelTuning struct {
	MaxTank      float64 `yaml:"max_tank"`
	BaseStart    float64 `yaml:"base_start"`
	PerLevel     float64 `yaml:"per_level"`
	RotPerSec    float64 `yaml:"rot_per_sec"`
	ThrustPerSec float64 `yaml:"thrust_per_sec"`
	LaunchCost   float64 `yaml:"launch_cost"`
	OutPenaltyMs float64 `yaml:"out_penalty_ms"`
	GateMin      float64 `yaml:"gate_min"`
}

// BoostTuning defines the pip-based boost.
type BoostTuning struct {
	MaxPips     float64 `yaml:"max_pips"`
	RegenPerSec float64 `yaml:"regen_per_sec"`
	Impulse     float64 `yaml:"impulse"`
	Cooldown    float64 `yaml:"cooldown"`
}

// RadiiTuning defines roadmap node interaction radii.
type RadiiTuning struct {
	Planet  float64 `yaml:"planet"`
	Station float64 `yaml:"station"`
	Gate    float64 `yaml:"gate"`
}

// TimingTuning defines level flow timers in seconds.
type TimingTuning struct {
	Countdown float64 `yaml:"countdown"`
	StuckHint float64 `yaml:"stuck_hint"`
}

// CameraTuning defines follow camera smoothing and zoom.
type CameraTuning struct {
	BaseZoom    float64 `yaml:"base_zoom"`
	ArenaZoom   float64 `yaml:"arena_zoom"`
	FollowSpeed float64 `yaml:"follow_speed"` // 0..1 per second
	PanSpeed    float64 `yaml:"pan_speed"`    // cells per second
}

// ArenaTuning defines the boss arena layout and objectives.
type ArenaTuning struct {
	Size                   float64 `yaml:"size"`
	WallThickness          float64 `yaml:"wall_thickness"`
	ShardPickupRadius      float64 `yaml:"shard_pickup_radius"`
	GeneratorDepositRadius float64 `yaml:"generator_deposit_radius"`
	GeneratorCapacity      int     `yaml:"generator_capacity"`
	CarryCap               int     `yaml:"carry_cap"`
	GateTriggerRadius      float64 `yaml:"gate_trigger_radius"`
	EncryptedPickupRadius  float64 `yaml:"encrypted_pickup_radius"`
	RamDamage              float64 `yaml:"ram_damage"`
	RamCooldown            float64 `yaml:"ram_cooldown"`
}

// BossTuning defines the arena boss.
type BossTuning struct {
	MaxHP             float64 `yaml:"max_hp"`
	Radius            float64 `yaml:"radius"`
	EntryDuration     float64 `yaml:"entry_duration"`
	Damage            float64 `yaml:"damage"`
	FireCooldownBase  float64 `yaml:"fire_cooldown_base"`
	FireCooldownFast  float64 `yaml:"fire_cooldown_fast"`
	EnrageThreshold   float64 `yaml:"enrage_threshold"` // health fraction at or below which the fast cooldown applies
	TelegraphDuration float64 `yaml:"telegraph_duration"`
	SpreadAngle       float64 `yaml:"spread_angle"`
	BulletSpeed       float64 `yaml:"bullet_speed"`
	BulletLife        float64 `yaml:"bullet_life"`
}

// WeaponTuning defines the player's heat-limited blaster.
type WeaponTuning struct {
	ProjectileSpeed  float64 `yaml:"projectile_speed"`
	ProjectileLife   float64 `yaml:"projectile_life"`
	ProjectileDamage float64 `yaml:"projectile_damage"`
	FireRate         float64 `yaml:"fire_rate"` // seconds between shots
	MaxHeat          float64 `yaml:"max_heat"`
	HeatPerShot      float64 `yaml:"heat_per_shot"`
	CoolRate         float64 `yaml:"cool_rate"`
	OverheatCoolRate float64 `yaml:"overheat_cool_rate"`
}

// CinemaTuning defines the boss death cinematic.
type CinemaTuning struct {
	RingSpeed     float64 `yaml:"ring_speed"`
	RingDuration  float64 `yaml:"ring_duration"`
	BoomFrameRate float64 `yaml:"boom_frame_rate"`
	BoomDuration  float64 `yaml:"boom_duration"`
	GateHold      float64 `yaml:"gate_hold"`
	ReturnHold    float64 `yaml:"return_hold"`
	FocusPan      float64 `yaml:"focus_pan"`
	GatePan       float64 `yaml:"gate_pan"`
	ReturnPan     float64 `yaml:"return_pan"`
}

// SettingsTuning holds player-facing preferences.
type SettingsTuning struct {
	MusicVolume      float64 `yaml:"music_volume"`
	SFXVolume        float64 `yaml:"sfx_volume"`
	InvertThrustAxis bool    `yaml:"invert_thrust_axis"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a flag value to a preset. Empty selects normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyHard:
		return DifficultyHard, true
	default:
		return DifficultyNormal, false
	}
}
