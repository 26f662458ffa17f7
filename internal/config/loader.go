package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const gemsFile = "gems.yaml"

// LoadGems loads the gems configuration.
// Search order: customPath -> ~/.gems/configs/gems.yaml -> ./configs/gems.yaml -> embedded default.
// Files are decoded over the defaults, so they may set only what they change.
func LoadGems(customPath string) (GemsConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GemsConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseGems(data)
		if err != nil {
			return GemsConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(gemsFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseGems(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", gemsFile)); err == nil {
		if cfg, err := parseGems(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseGems(defaultGemsYAML)
	if err != nil {
		return DefaultGemsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseGems decodes data over DefaultGemsConfig and validates the result.
func parseGems(data []byte) (GemsConfig, error) {
	cfg := DefaultGemsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GemsConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return GemsConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gems", "configs", filename)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
