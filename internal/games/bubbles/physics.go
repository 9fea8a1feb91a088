package bubbles

import "github.com/vovakirdan/bubblepop/internal/core"

// Advance moves every bubble by its velocity and keeps it inside the arena.
// A bubble whose moved center leaves [r, dim-r] on an axis has that velocity
// component negated for the next tick, then its position is clamped back into
// the range. The input slice is not modified; the result has the same length
// and order.
//
// A bubble wider than the arena on some axis has no legal position there: it
// is pinned to the middle of that axis and stops moving along it.
func Advance(bubbles []Bubble, arenaW, arenaH float64) []Bubble {
	out := make([]Bubble, len(bubbles))
	for i, b := range bubbles {
		b.Pos.X, b.Vel.X = advanceAxis(b.Pos.X, b.Vel.X, b.Radius, arenaW)
		b.Pos.Y, b.Vel.Y = advanceAxis(b.Pos.Y, b.Vel.Y, b.Radius, arenaH)
		out[i] = b
	}
	return out
}

// advanceAxis applies one tick of movement, reflection and clamping on one axis.
func advanceAxis(pos, vel, radius, dim float64) (float64, float64) {
	lo, hi := radius, dim-radius
	if hi < lo {
		return dim / 2, 0
	}

	pos += vel
	if pos < lo || pos > hi {
		vel = -vel
	}
	return core.ClampF(pos, lo, hi), vel
}
