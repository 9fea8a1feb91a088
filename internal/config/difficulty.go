package config

import "math"

// DifficultyRamp applies the time-based difficulty rules.
// Difficulty is an unbounded positive multiplier; it scales bubble speed and spawn rate.
type DifficultyRamp struct {
	cfg BubblesDifficulty
}

// NewDifficultyRamp creates a ramp from the difficulty section of a config.
func NewDifficultyRamp(cfg BubblesDifficulty) *DifficultyRamp {
	return &DifficultyRamp{cfg: cfg}
}

// Start returns the difficulty a fresh round begins with.
func (d *DifficultyRamp) Start() float64 {
	return d.cfg.Start
}

// IsEnabled returns whether difficulty grows during a round.
func (d *DifficultyRamp) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.RampEverySecs > 0
}

// Next returns the difficulty after the countdown reached timeLeft.
// It bumps on every multiple of RampEverySecs, zero included.
func (d *DifficultyRamp) Next(level float64, timeLeft int) float64 {
	if !d.IsEnabled() {
		return level
	}
	if timeLeft%d.cfg.RampEverySecs == 0 {
		return level + d.cfg.RampAmount
	}
	return level
}

// SpawnChance returns the per-tick probability of a single spawn at the given level.
func (d *DifficultyRamp) SpawnChance(level float64) float64 {
	return clampF(d.cfg.SpawnBase+level*d.cfg.SpawnPerLevel, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
