package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.leafglide/configs/leafglide.yaml ->
// ./configs/leafglide.yaml -> embedded default.
// A config that fails validation is rejected: for an explicit customPath
// that is an error, otherwise the loader falls through to the next source.
func Load(customPath string) (GameConfig, error) {
	var cfg GameConfig

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("leafglide.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	if loaded, ok := tryLoad(filepath.Join("configs", "leafglide.yaml")); ok {
		return loaded, nil
	}

	if err := yaml.Unmarshal(defaultYAML, &cfg); err == nil {
		if cfg.Validate() == nil {
			return cfg, nil
		}
	}
	return DefaultGameConfig(), nil
}

// tryLoad reads and parses a config file, returning false on any failure so
// the caller can fall through to the next source.
func tryLoad(path string) (GameConfig, bool) {
	var cfg GameConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to a user config file, or empty if the
// home directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".leafglide", "configs", filename)
}
