package config

// ApplyPreset adjusts tuning for a difficulty preset. Normal leaves the
// reference values untouched.
func ApplyPreset(cfg *Tuning, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Boss.MaxHP = 400
		cfg.Boss.Damage = 6
		cfg.Boss.FireCooldownBase = 1.5
		cfg.Boss.FireCooldownFast = 1.0
		cfg.Fuel.OutPenaltyMs = 15000
		cfg.Fuel.PerLevel = 15
	case DifficultyHard:
		cfg.Boss.MaxHP = 650
		cfg.Boss.Damage = 15
		cfg.Boss.FireCooldownBase = 1.0
		cfg.Boss.FireCooldownFast = 0.6
		cfg.Boss.TelegraphDuration = 0.2
		cfg.Fuel.OutPenaltyMs = 45000
		cfg.Fuel.BaseStart = 90
		cfg.Fuel.PerLevel = 5
	}
}
