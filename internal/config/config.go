// Package config provides YAML-based game configuration loading and
// difficulty handling for the arcade.
package config

import (
	"fmt"
	"time"
)

// BubblesConfig holds every tunable of the bubble-popping game.
type BubblesConfig struct {
	Round      BubblesRound      `yaml:"round"`
	Bubbles    BubblesSpawn      `yaml:"bubbles"`
	Scoring    BubblesScoring    `yaml:"scoring"`
	Difficulty BubblesDifficulty `yaml:"difficulty"`
	Render     BubblesRender     `yaml:"render"`
}

// BubblesRound defines the round clock and driver periods.
type BubblesRound struct {
	LengthSecs    int `yaml:"length_secs"`     // Countdown start value
	PhysicsTickMs int `yaml:"physics_tick_ms"` // Physics/spawn driver period
	CountdownMs   int `yaml:"countdown_ms"`    // Countdown/ramp/purge driver period
}

// BubblesSpawn defines the random ranges used when a bubble is created.
type BubblesSpawn struct {
	MinRadius   float64 `yaml:"min_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	MinSpeed    float64 `yaml:"min_speed"` // Per axis, per physics tick, before difficulty scaling
	MaxSpeed    float64 `yaml:"max_speed"`
	MaxLive     int     `yaml:"max_live"`     // Probabilistic spawns stop at this count
	RefillCount int     `yaml:"refill_count"` // Spawned at once when the arena is empty
	LifetimeMs  int     `yaml:"lifetime_ms"`  // Age at which the countdown driver purges a bubble
	Alpha       uint8   `yaml:"alpha"`
}

// BubblesScoring defines the combo rules.
type BubblesScoring struct {
	ComboWindowMs int `yaml:"combo_window_ms"` // Max gap between taps that keeps a combo alive
	ComboStep     int `yaml:"combo_step"`      // Every ComboStep combo adds one bonus point
}

// BubblesDifficulty defines the time-based difficulty ramp.
type BubblesDifficulty struct {
	Enabled       bool    `yaml:"enabled"`
	Start         float64 `yaml:"start"`
	RampEverySecs int     `yaml:"ramp_every_secs"`
	RampAmount    float64 `yaml:"ramp_amount"`
	SpawnBase     float64 `yaml:"spawn_base"`      // Spawn probability per tick at difficulty 0
	SpawnPerLevel float64 `yaml:"spawn_per_level"` // Added per unit of difficulty
}

// BubblesRender maps arena units onto terminal cells.
type BubblesRender struct {
	UnitsPerCol float64 `yaml:"units_per_col"`
	UnitsPerRow float64 `yaml:"units_per_row"`
}

// PhysicsTick returns the physics driver period.
func (c BubblesConfig) PhysicsTick() time.Duration {
	return time.Duration(c.Round.PhysicsTickMs) * time.Millisecond
}

// CountdownPeriod returns the countdown driver period.
func (c BubblesConfig) CountdownPeriod() time.Duration {
	return time.Duration(c.Round.CountdownMs) * time.Millisecond
}

// ComboWindow returns the combo timing window.
func (c BubblesConfig) ComboWindow() time.Duration {
	return time.Duration(c.Scoring.ComboWindowMs) * time.Millisecond
}

// Lifetime returns the age at which a bubble is purged.
func (c BubblesConfig) Lifetime() time.Duration {
	return time.Duration(c.Bubbles.LifetimeMs) * time.Millisecond
}

// Validate rejects configurations the simulation cannot run with.
func (c BubblesConfig) Validate() error {
	switch {
	case c.Round.LengthSecs <= 0:
		return fmt.Errorf("config: round.length_secs must be positive, got %d", c.Round.LengthSecs)
	case c.Round.PhysicsTickMs <= 0:
		return fmt.Errorf("config: round.physics_tick_ms must be positive, got %d", c.Round.PhysicsTickMs)
	case c.Round.CountdownMs <= 0:
		return fmt.Errorf("config: round.countdown_ms must be positive, got %d", c.Round.CountdownMs)
	case c.Bubbles.MinRadius <= 0 || c.Bubbles.MaxRadius < c.Bubbles.MinRadius:
		return fmt.Errorf("config: bubbles radius range [%g, %g) is invalid", c.Bubbles.MinRadius, c.Bubbles.MaxRadius)
	case c.Bubbles.MinSpeed < 0 || c.Bubbles.MaxSpeed < c.Bubbles.MinSpeed:
		return fmt.Errorf("config: bubbles speed range [%g, %g) is invalid", c.Bubbles.MinSpeed, c.Bubbles.MaxSpeed)
	case c.Bubbles.MaxLive <= 0 || c.Bubbles.RefillCount <= 0:
		return fmt.Errorf("config: bubbles.max_live and bubbles.refill_count must be positive")
	case c.Bubbles.LifetimeMs <= 0:
		return fmt.Errorf("config: bubbles.lifetime_ms must be positive, got %d", c.Bubbles.LifetimeMs)
	case c.Scoring.ComboWindowMs <= 0 || c.Scoring.ComboStep <= 0:
		return fmt.Errorf("config: scoring.combo_window_ms and scoring.combo_step must be positive")
	case c.Difficulty.Start <= 0:
		return fmt.Errorf("config: difficulty.start must be positive, got %g", c.Difficulty.Start)
	case c.Difficulty.Enabled && c.Difficulty.RampEverySecs <= 0:
		return fmt.Errorf("config: difficulty.ramp_every_secs must be positive when enabled")
	case c.Render.UnitsPerCol <= 0 || c.Render.UnitsPerRow <= 0:
		return fmt.Errorf("config: render units per cell must be positive")
	}
	return nil
}

// DifficultyPreset is a named starting difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// StartForPreset returns the starting difficulty of a preset.
// Unknown or empty presets return 0, meaning "keep the config's value".
func StartForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.8
	case DifficultyNormal:
		return 1.0
	case DifficultyHard:
		return 1.4
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables the ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
