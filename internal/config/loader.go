package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	tuningFile  = "starmap.yaml"
	catalogFile = "catalog.yaml"
)

// LoadTuning loads the simulation tuning.
// Search order: customPath -> ~/.starmap/configs/starmap.yaml -> ./configs/starmap.yaml -> embedded default.
// Fields missing from a file keep their default values.
func LoadTuning(customPath string) (Tuning, error) {
	cfg := DefaultTuning()

	// Try custom path first
	if customPath != "" {
		if err := readYAML(customPath, &cfg); err != nil {
			return cfg, err
		}
		cfg.Normalize()
		return cfg, nil
	}

	if found := loadFirst(tuningFile, &cfg); found {
		cfg.Normalize()
		return cfg, nil
	}

	// Use embedded default YAML
	cfg = DefaultTuning()
	if err := yaml.Unmarshal(defaultTuningYAML, &cfg); err != nil {
		return DefaultTuning(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Normalize()
	return cfg, nil
}

// LoadCatalog loads the planet catalog.
// Search order: customPath -> ~/.starmap/configs/catalog.yaml -> ./configs/catalog.yaml -> embedded default.
func LoadCatalog(customPath string) (Catalog, error) {
	var cat Catalog

	if customPath != "" {
		if err := readYAML(customPath, &cat); err != nil {
			return cat, err
		}
		return cat, nil
	}

	if found := loadFirst(catalogFile, &cat); found && len(cat.Planets) > 0 {
		return cat, nil
	}

	cat = Catalog{}
	if err := yaml.Unmarshal(defaultCatalogYAML, &cat); err != nil || len(cat.Planets) == 0 {
		return DefaultCatalog(), nil
	}
	return cat, nil
}

// loadFirst tries the user and local config directories in order.
// Unreadable or malformed files are skipped.
func loadFirst(filename string, out any) bool {
	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return true
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return true
		}
	}
	return false
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".starmap", "configs", filename)
}
