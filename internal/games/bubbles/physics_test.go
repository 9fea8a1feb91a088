package bubbles

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/vovakirdan/bubblepop/internal/core"
)

func TestAdvanceReflectsAndClamps(t *testing.T) {
	in := []Bubble{{ID: 1, Pos: core.Vec2{X: 45, Y: 200}, Radius: 50, Vel: core.Vec2{X: -3, Y: 0}}}

	out := Advance(in, 400, 400)

	if out[0].Pos != (core.Vec2{X: 50, Y: 200}) {
		t.Errorf("Pos = %v, expected (50, 200)", out[0].Pos)
	}
	if out[0].Vel != (core.Vec2{X: 3, Y: 0}) {
		t.Errorf("Vel = %v, expected (3, 0)", out[0].Vel)
	}
	if in[0].Pos != (core.Vec2{X: 45, Y: 200}) || in[0].Vel.X != -3 {
		t.Error("Advance should not modify its input")
	}
}

func TestAdvanceFarWalls(t *testing.T) {
	in := []Bubble{{ID: 1, Pos: core.Vec2{X: 345, Y: 348}, Radius: 50, Vel: core.Vec2{X: 4, Y: 5}}}

	out := Advance(in, 400, 400)

	if out[0].Pos != (core.Vec2{X: 349, Y: 350}) {
		t.Errorf("Pos = %v, expected (349, 350)", out[0].Pos)
	}
	// 353 > 350 on y only.
	if out[0].Vel != (core.Vec2{X: 4, Y: -5}) {
		t.Errorf("Vel = %v, expected (4, -5)", out[0].Vel)
	}
}

func TestAdvanceExactBoundaryKeepsVelocity(t *testing.T) {
	in := []Bubble{{ID: 1, Pos: core.Vec2{X: 53, Y: 100}, Radius: 50, Vel: core.Vec2{X: -3, Y: 0}}}

	out := Advance(in, 400, 400)

	if out[0].Pos.X != 50 || out[0].Vel.X != -3 {
		t.Errorf("got pos %v vel %v, expected x=50 with velocity kept", out[0].Pos, out[0].Vel)
	}
}

func TestAdvanceKeepsOrderAndLength(t *testing.T) {
	in := []Bubble{
		{ID: 7, Pos: core.Vec2{X: 100, Y: 100}, Radius: 40, Vel: core.Vec2{X: 2, Y: 2}},
		{ID: 3, Pos: core.Vec2{X: 200, Y: 200}, Radius: 60, Vel: core.Vec2{X: -2, Y: 3}},
		{ID: 9, Pos: core.Vec2{X: 300, Y: 150}, Radius: 45, Vel: core.Vec2{X: 5, Y: -1}},
	}

	out := Advance(in, 400, 400)

	if len(out) != len(in) {
		t.Fatalf("len = %d, expected %d", len(out), len(in))
	}
	for i := range in {
		if out[i].ID != in[i].ID || out[i].Radius != in[i].Radius {
			t.Errorf("bubble %d changed identity: %+v -> %+v", i, in[i], out[i])
		}
	}
}

func TestAdvanceOversizedBubbleIsPinned(t *testing.T) {
	in := []Bubble{{ID: 1, Pos: core.Vec2{X: 10, Y: 100}, Radius: 60, Vel: core.Vec2{X: 3, Y: 2}}}

	// 100 wide arena cannot fit a 120 wide bubble; 400 tall can.
	out := Advance(in, 100, 400)

	if out[0].Pos.X != 50 || out[0].Vel.X != 0 {
		t.Errorf("x axis: pos %v vel %v, expected pinned at 50 with no velocity", out[0].Pos.X, out[0].Vel.X)
	}
	if out[0].Pos.Y != 102 || out[0].Vel.Y != 2 {
		t.Errorf("y axis: pos %v vel %v, expected normal movement", out[0].Pos.Y, out[0].Vel.Y)
	}

	out = Advance(out, 100, 400)
	if out[0].Pos.X != 50 {
		t.Errorf("second tick x = %v, expected 50", out[0].Pos.X)
	}
}

func TestAdvanceEmpty(t *testing.T) {
	if out := Advance(nil, 400, 400); len(out) != 0 {
		t.Errorf("len = %d, expected 0", len(out))
	}
}

// genBubble draws a legal bubble for a w x h arena.
func genBubble(w, h float64) *rapid.Generator[Bubble] {
	return rapid.Custom(func(t *rapid.T) Bubble {
		r := rapid.Float64Range(40, 80).Draw(t, "radius")
		return Bubble{
			ID:     rapid.IntRange(1, 1<<20).Draw(t, "id"),
			Radius: r,
			Pos: core.Vec2{
				X: rapid.Float64Range(r, w-r).Draw(t, "x"),
				Y: rapid.Float64Range(r, h-r).Draw(t, "y"),
			},
			Vel: core.Vec2{
				X: rapid.Float64Range(-20, 20).Draw(t, "vx"),
				Y: rapid.Float64Range(-20, 20).Draw(t, "vy"),
			},
		}
	})
}

func TestAdvanceStaysInBoundsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Float64Range(160, 1200).Draw(t, "w")
		h := rapid.Float64Range(160, 1200).Draw(t, "h")
		bubbles := rapid.SliceOfN(genBubble(w, h), 0, 20).Draw(t, "bubbles")
		ticks := rapid.IntRange(1, 200).Draw(t, "ticks")

		for i := 0; i < ticks; i++ {
			bubbles = Advance(bubbles, w, h)
			for _, b := range bubbles {
				if b.Pos.X < b.Radius || b.Pos.X > w-b.Radius || b.Pos.Y < b.Radius || b.Pos.Y > h-b.Radius {
					t.Fatalf("tick %d: bubble %+v out of %gx%g arena", i, b, w, h)
				}
			}
		}
	})
}

func TestAdvanceReflectionProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Float64Range(160, 1200).Draw(t, "w")
		h := rapid.Float64Range(160, 1200).Draw(t, "h")
		b := genBubble(w, h).Draw(t, "bubble")

		got := Advance([]Bubble{b}, w, h)[0]

		nx := b.Pos.X + b.Vel.X
		outX := nx < b.Radius || nx > w-b.Radius
		if flipped := got.Vel.X == -b.Vel.X && b.Vel.X != 0; b.Vel.X != 0 && flipped != outX {
			t.Fatalf("x flipped = %v for pre-clamp %g in [%g, %g]", flipped, nx, b.Radius, w-b.Radius)
		}
		ny := b.Pos.Y + b.Vel.Y
		outY := ny < b.Radius || ny > h-b.Radius
		if flipped := got.Vel.Y == -b.Vel.Y && b.Vel.Y != 0; b.Vel.Y != 0 && flipped != outY {
			t.Fatalf("y flipped = %v for pre-clamp %g in [%g, %g]", flipped, ny, b.Radius, h-b.Radius)
		}
		if math.Abs(math.Abs(got.Vel.X)-math.Abs(b.Vel.X)) > 1e-9 || math.Abs(math.Abs(got.Vel.Y)-math.Abs(b.Vel.Y)) > 1e-9 {
			t.Fatalf("speed changed: %v -> %v", b.Vel, got.Vel)
		}
	})
}
