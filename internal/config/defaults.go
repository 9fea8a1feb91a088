package config

import (
	_ "embed"
)

//go:embed defaults/bubbles.yaml
var defaultBubblesYAML []byte

// DefaultBubblesConfig returns the built-in configuration.
// It mirrors defaults/bubbles.yaml and backs it up if the embed fails to parse.
func DefaultBubblesConfig() BubblesConfig {
	return BubblesConfig{
		Round: BubblesRound{
			LengthSecs:    60,
			PhysicsTickMs: 16,
			CountdownMs:   1000,
		},
		Bubbles: BubblesSpawn{
			MinRadius:   40,
			MaxRadius:   80,
			MinSpeed:    2,
			MaxSpeed:    6,
			MaxLive:     20,
			RefillCount: 3,
			LifetimeMs:  3000,
			Alpha:       220,
		},
		Scoring: BubblesScoring{
			ComboWindowMs: 1000,
			ComboStep:     5,
		},
		Difficulty: BubblesDifficulty{
			Enabled:       true,
			Start:         1.0,
			RampEverySecs: 10,
			RampAmount:    0.2,
			SpawnBase:     0.03,
			SpawnPerLevel: 0.01,
		},
		Render: BubblesRender{
			UnitsPerCol: 10,
			UnitsPerRow: 20,
		},
	}
}

// BlitzOverrides turns a config into the short, hot-start variant.
func BlitzOverrides(cfg *BubblesConfig) {
	cfg.Round.LengthSecs = 30
	if cfg.Difficulty.Start < 1.4 {
		cfg.Difficulty.Start = 1.4
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "bubbles", "bubbles_blitz":
		return defaultBubblesYAML
	default:
		return nil
	}
}
