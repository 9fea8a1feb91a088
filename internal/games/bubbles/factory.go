package bubbles

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/core"
)

// Factory creates randomly parameterized bubbles.
// Ids come from a counter, so they never repeat within one factory.
type Factory struct {
	rng    *rand.Rand
	spawn  config.BubblesSpawn
	nextID int
}

// NewFactory creates a factory drawing from rng with the given spawn ranges.
func NewFactory(rng *rand.Rand, spawn config.BubblesSpawn) *Factory {
	return &Factory{
		rng:    rng,
		spawn:  spawn,
		nextID: 1,
	}
}

// New creates a bubble somewhere in a arenaW x arenaH arena.
// The position is not clamped; the next physics tick pulls it inside the walls.
// Both velocity components start positive and are scaled by difficulty.
func (f *Factory) New(arenaW, arenaH, difficulty float64, now time.Duration) Bubble {
	id := f.nextID
	f.nextID++

	s := f.spawn
	return Bubble{
		ID: id,
		Pos: core.Vec2{
			X: f.rng.Float64() * arenaW,
			Y: f.rng.Float64() * arenaH,
		},
		Radius: s.MinRadius + f.rng.Float64()*(s.MaxRadius-s.MinRadius),
		Vel: core.Vec2{
			X: (s.MinSpeed + f.rng.Float64()*(s.MaxSpeed-s.MinSpeed)) * difficulty,
			Y: (s.MinSpeed + f.rng.Float64()*(s.MaxSpeed-s.MinSpeed)) * difficulty,
		},
		Color: RGBA{
			R: uint8(f.rng.Intn(256)),
			G: uint8(f.rng.Intn(256)),
			B: uint8(f.rng.Intn(256)),
			A: s.Alpha,
		},
		CreatedAt: now,
	}
}
