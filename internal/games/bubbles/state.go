package bubbles

import "time"

// State is the mutable round state owned by a Sim.
type State struct {
	Bubbles        []Bubble
	Score          int           // Never negative
	HighScore      int           // Only raised at the game-over transition
	Over           bool          // Set once when TimeLeft reaches 0
	TimeLeft       int           // Seconds
	Combo          int           // Consecutive taps inside the combo window
	LastTapAt      time.Duration // Sim clock of the last bubble tap, 0 means never
	Difficulty     float64       // Scales bubble speed and spawn chance
	SummaryVisible bool          // Game-over summary shown to the player
}

// Snapshot is an immutable view of a Sim taken after a mutation.
// Bubbles is a private copy; callers may keep or modify it freely.
type Snapshot struct {
	Seq            uint64 // Increases with every mutation of the Sim
	Bubbles        []Bubble
	Score          int
	HighScore      int
	TimeLeft       int
	Combo          int
	Difficulty     float64
	Over           bool
	SummaryVisible bool
	NewBest        bool // Round ended on a positive score equal to the best
	ArenaW         float64
	ArenaH         float64
	Now            time.Duration
}

// clone returns a copy that shares no memory with s.
func (s Snapshot) clone() Snapshot {
	s.Bubbles = cloneBubbles(s.Bubbles)
	return s
}

// TapResult describes the outcome of a tap intent.
type TapResult struct {
	Hit    bool // A live bubble was popped
	ID     int  // Popped bubble id, valid when Hit
	Points int  // Points awarded, valid when Hit
	Combo  int  // Combo after the tap
}
