package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedTuningMatchesDefaults(t *testing.T) {
	var fromYAML Tuning
	if err := yaml.Unmarshal(defaultTuningYAML, &fromYAML); err != nil {
		t.Fatalf("embedded starmap.yaml does not parse: %v", err)
	}
	def := DefaultTuning()

	// Pi multiples are written as decimals in the YAML.
	if math.Abs(fromYAML.Ship.AngularAccel-def.Ship.AngularAccel) > 1e-9 {
		t.Errorf("angular_accel = %v, want %v", fromYAML.Ship.AngularAccel, def.Ship.AngularAccel)
	}
	if math.Abs(fromYAML.Ship.MaxAngularVel-def.Ship.MaxAngularVel) > 1e-9 {
		t.Errorf("max_angular_vel = %v, want %v", fromYAML.Ship.MaxAngularVel, def.Ship.MaxAngularVel)
	}
	fromYAML.Ship.AngularAccel = def.Ship.AngularAccel
	fromYAML.Ship.MaxAngularVel = def.Ship.MaxAngularVel

	if fromYAML != def {
		t.Errorf("embedded tuning differs from DefaultTuning():\n got  %+v\n want %+v", fromYAML, def)
	}
}

func TestEmbeddedCatalogMatchesDefaults(t *testing.T) {
	var cat Catalog
	if err := yaml.Unmarshal(defaultCatalogYAML, &cat); err != nil {
		t.Fatalf("embedded catalog.yaml does not parse: %v", err)
	}
	def := DefaultCatalog()
	if len(cat.Planets) != len(def.Planets) {
		t.Fatalf("embedded catalog has %d planets, want %d", len(cat.Planets), len(def.Planets))
	}
	for i := range def.Planets {
		if cat.Planets[i] != def.Planets[i] {
			t.Errorf("planet %d = %+v, want %+v", i, cat.Planets[i], def.Planets[i])
		}
	}
}

func TestLoadTuningCustomPathKeepsMissingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("fuel:\n  max_tank: 80\nboss:\n  max_hp: 42\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning() failed: %v", err)
	}
	if cfg.Fuel.MaxTank != 80 {
		t.Errorf("MaxTank = %v, want 80", cfg.Fuel.MaxTank)
	}
	if cfg.Boss.MaxHP != 42 {
		t.Errorf("Boss.MaxHP = %v, want 42", cfg.Boss.MaxHP)
	}
	if cfg.Grid.Width != 32 {
		t.Errorf("Grid.Width = %d, want default 32", cfg.Grid.Width)
	}
}

func TestLoadTuningErrors(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("ship: [not, a, map"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadTuning(bad); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestLoadCatalogCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte(`planets:
  - id: x2
    phase: 1
    order: 2
    title: Second
  - id: x1
    phase: 1
    order: 1
    title: First
  - id: y1
    phase: 2
    order: 1
    title: Other
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() failed: %v", err)
	}
	got := cat.ForLevel(1)
	if len(got) != 2 || got[0].ID != "x1" || got[1].ID != "x2" {
		t.Errorf("ForLevel(1) = %+v, want x1 then x2", got)
	}
	if cat.Planets[0].ID != "x2" {
		t.Error("ForLevel must not reorder the catalog")
	}
}

func TestForLevelCounts(t *testing.T) {
	cat := DefaultCatalog()
	tests := []struct {
		level int
		want  int
	}{
		{1, 3}, {2, 3}, {3, 4}, {4, 4}, {5, 4}, {6, 0},
	}
	for _, tt := range tests {
		if got := len(cat.ForLevel(tt.level)); got != tt.want {
			t.Errorf("ForLevel(%d) returned %d planets, want %d", tt.level, got, tt.want)
		}
	}

	var nilCat *Catalog
	if nilCat.ForLevel(1) != nil {
		t.Error("nil catalog should return nil")
	}
}

func TestNormalize(t *testing.T) {
	cfg := DefaultTuning()
	cfg.Ship.Friction = 0
	cfg.Ship.MaxSpeed = -3
	cfg.Ship.WallBounceDampening = 0
	cfg.Camera.FollowSpeed = 5
	cfg.Arena.CarryCap = 0
	cfg.Boss.MaxHP = math.Inf(1)
	cfg.Normalize()

	def := DefaultTuning()
	if cfg.Ship.Friction != def.Ship.Friction {
		t.Errorf("Friction = %v, want %v", cfg.Ship.Friction, def.Ship.Friction)
	}
	if cfg.Ship.MaxSpeed != def.Ship.MaxSpeed {
		t.Errorf("MaxSpeed = %v, want %v", cfg.Ship.MaxSpeed, def.Ship.MaxSpeed)
	}
	if cfg.Ship.WallBounceDampening != def.Ship.WallBounceDampening {
		t.Errorf("WallBounceDampening = %v, want %v", cfg.Ship.WallBounceDampening, def.Ship.WallBounceDampening)
	}
	if cfg.Camera.FollowSpeed != 0.99 {
		t.Errorf("FollowSpeed = %v, want capped 0.99", cfg.Camera.FollowSpeed)
	}
	if cfg.Arena.CarryCap != def.Arena.CarryCap {
		t.Errorf("CarryCap = %d, want %d", cfg.Arena.CarryCap, def.Arena.CarryCap)
	}
	if cfg.Boss.MaxHP != def.Boss.MaxHP {
		t.Errorf("Boss.MaxHP = %v, want %v", cfg.Boss.MaxHP, def.Boss.MaxHP)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
		ok   bool
	}{
		{"", DifficultyNormal, true},
		{"easy", DifficultyEasy, true},
		{"normal", DifficultyNormal, true},
		{"hard", DifficultyHard, true},
		{"nightmare", DifficultyNormal, false},
	}
	for _, tt := range tests {
		got, ok := ParsePreset(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePreset(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	normal := DefaultTuning()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != DefaultTuning() {
		t.Error("normal preset must not change tuning")
	}

	easy := DefaultTuning()
	ApplyPreset(&easy, DifficultyEasy)
	hard := DefaultTuning()
	ApplyPreset(&hard, DifficultyHard)
	if !(easy.Boss.MaxHP < normal.Boss.MaxHP && normal.Boss.MaxHP < hard.Boss.MaxHP) {
		t.Errorf("boss HP not ordered: easy=%v normal=%v hard=%v", easy.Boss.MaxHP, normal.Boss.MaxHP, hard.Boss.MaxHP)
	}
	if !(easy.Fuel.OutPenaltyMs < hard.Fuel.OutPenaltyMs) {
		t.Errorf("penalty not ordered: easy=%v hard=%v", easy.Fuel.OutPenaltyMs, hard.Fuel.OutPenaltyMs)
	}
}
