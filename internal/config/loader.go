package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBubbles loads the bubble game configuration.
// Search order: customPath -> ~/.bubblepop/configs/bubbles.yaml -> ./configs/bubbles.yaml -> embedded default.
// Only an explicit customPath can produce an error; the other sources are skipped when unusable.
func LoadBubbles(customPath string) (BubblesConfig, error) {
	if customPath != "" {
		cfg := DefaultBubblesConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{"configs/bubbles.yaml"}
	if p := userConfigPath("bubbles.yaml"); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, path := range candidates {
		if cfg, ok := tryLoad(path); ok {
			return cfg, nil
		}
	}

	cfg := DefaultBubblesConfig()
	if err := yaml.Unmarshal(defaultBubblesYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultBubblesConfig(), nil
	}
	return cfg, nil
}

// tryLoad reads a config file on top of the defaults, reporting whether it was usable.
func tryLoad(path string) (BubblesConfig, bool) {
	cfg := DefaultBubblesConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, cfg.Validate() == nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bubblepop", "configs", filename)
}

// ApplyBubblesPreset modifies the config based on a difficulty preset.
// An empty or unknown preset leaves the config untouched.
func ApplyBubblesPreset(cfg *BubblesConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	if start := StartForPreset(preset); start > 0 {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.Start = start
	}
}
