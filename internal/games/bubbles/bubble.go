// Package bubbles implements Bubble Pop, a timed game where bubbles drift and
// bounce around the arena and the player pops them for points.
//
// The simulation is split the same way as every arcade game: pure helpers
// (Factory, Advance), a single-threaded Sim that owns the round state and its
// timers, and adapters that drive it (Game for the fixed-tick platform loop,
// Engine for real-time headless play).
package bubbles

import (
	"time"

	"github.com/vovakirdan/bubblepop/internal/core"
)

// RGBA is a bubble's cosmetic color.
type RGBA struct {
	R, G, B, A uint8
}

// Bubble is one circular entity in the arena.
type Bubble struct {
	ID        int
	Pos       core.Vec2     // Center, arena units
	Radius    float64       // Fixed at creation, always > 0
	Color     RGBA          // Cosmetic only
	CreatedAt time.Duration // Sim clock at creation
	Vel       core.Vec2     // Arena units per physics tick
	Popping   bool          // Reserved for a pop animation; no rule reads it
}

// Contains reports whether p lies inside or on the bubble's circle.
func (b Bubble) Contains(p core.Vec2) bool {
	return p.Sub(b.Pos).LenSq() <= b.Radius*b.Radius
}

// Age returns how long the bubble has been alive at now.
func (b Bubble) Age(now time.Duration) time.Duration {
	return now - b.CreatedAt
}

// cloneBubbles returns an independent copy of bs.
func cloneBubbles(bs []Bubble) []Bubble {
	if bs == nil {
		return nil
	}
	out := make([]Bubble, len(bs))
	copy(out, bs)
	return out
}
