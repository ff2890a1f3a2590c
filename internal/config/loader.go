package config

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// userConfigRel is the config file location relative to the XDG config dirs.
const userConfigRel = "flappy/flappy.yaml"

// localConfigPath is checked relative to the working directory.
const localConfigPath = "configs/flappy.yaml"

// LoadFlappy loads the flappy configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/flappy/flappy.yaml ->
// ./configs/flappy.yaml -> embedded default.
// Files are overlaid on the defaults, so a file only needs the keys it changes.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if path, err := xdg.SearchConfigFile(userConfigRel); err == nil {
		if cfg, ok := tryFile(path); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryFile(localConfigPath); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile loads a config file, reporting false when it is missing or invalid.
func tryFile(path string) (FlappyConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FlappyConfig{}, false
	}
	cfg, err := Parse(data)
	if err != nil {
		return FlappyConfig{}, false
	}
	return cfg, true
}

// Parse decodes YAML over the hardcoded defaults and validates the result.
func Parse(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FlappyConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return FlappyConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes a config as YAML. Used to store the exact settings of a run.
func Marshal(cfg FlappyConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}
