package bubbles

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/core"
)

// clockStart is the Sim clock at creation. Starting above zero keeps
// LastTapAt == 0 free to mean "never tapped".
const clockStart = time.Millisecond

// minArena is the smallest arena dimension, in arena units.
const minArena = 1.0

// timer is one scheduled driver event.
type timer struct {
	armed bool
	due   time.Duration
}

func (t *timer) arm(at time.Duration) {
	t.armed = true
	t.due = at
}

func (t *timer) disarm() {
	t.armed = false
}

// Sim runs one bubble round on a virtual clock.
//
// Three drivers act on the state: the countdown (timer, difficulty ramp and
// purge of old bubbles), the combo-expiry watch and the physics/spawn tick.
// Each is a scheduled event; Advance moves the clock forward and fires every
// event that falls due, in timestamp order. Tap intents may be applied between
// any two Advance calls.
//
// A Sim is not safe for concurrent use.
type Sim struct {
	cfg     config.BubblesConfig
	ramp    *config.DifficultyRamp
	rng     *rand.Rand
	factory *Factory

	state  State
	arenaW float64
	arenaH float64
	now    time.Duration

	countdown timer
	combo     timer
	physics   timer

	seq uint64
}

// NewSim creates a Sim with a fresh round already running.
// An invalid configuration is replaced by the defaults.
func NewSim(cfg config.BubblesConfig, seed int64, arenaW, arenaH float64) *Sim {
	if cfg.Validate() != nil {
		cfg = config.DefaultBubblesConfig()
	}
	rng := rand.New(rand.NewSource(seed))
	s := &Sim{
		cfg:     cfg,
		ramp:    config.NewDifficultyRamp(cfg.Difficulty),
		rng:     rng,
		factory: NewFactory(rng, cfg.Bubbles),
		now:     clockStart,
	}
	s.SetArena(arenaW, arenaH)
	s.Restart()
	return s
}

// Config returns the configuration the Sim runs with.
func (s *Sim) Config() config.BubblesConfig {
	return s.cfg
}

// Now returns the current Sim clock.
func (s *Sim) Now() time.Duration {
	return s.now
}

// Seq returns the mutation counter; it matches the Seq of the next Snapshot.
func (s *Sim) Seq() uint64 {
	return s.seq
}

// IsOver reports whether the round has ended.
func (s *Sim) IsOver() bool {
	return s.state.Over
}

// Arena returns the current arena size.
func (s *Sim) Arena() (float64, float64) {
	return s.arenaW, s.arenaH
}

// Advance moves the clock forward by dt, firing every driver event that
// falls due on the way. Events sharing a timestamp fire countdown first,
// then combo expiry, then physics.
func (s *Sim) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	target := s.now + dt
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.due
		switch next {
		case &s.countdown:
			s.fireCountdown()
		case &s.combo:
			s.fireCombo()
		case &s.physics:
			s.firePhysics()
		}
	}
	s.now = target
}

// nextDue returns the earliest armed timer due at or before limit.
func (s *Sim) nextDue(limit time.Duration) *timer {
	var next *timer
	for _, t := range []*timer{&s.countdown, &s.combo, &s.physics} {
		if !t.armed || t.due > limit {
			continue
		}
		if next == nil || t.due < next.due {
			next = t
		}
	}
	return next
}

func (s *Sim) fireCountdown() {
	st := &s.state
	if st.Over {
		s.countdown.disarm()
		return
	}

	st.TimeLeft--
	st.Difficulty = s.ramp.Next(st.Difficulty, st.TimeLeft)
	s.purge()
	s.seq++

	if st.TimeLeft <= 0 {
		s.gameOver()
		return
	}
	s.countdown.arm(s.countdown.due + s.cfg.CountdownPeriod())
}

// purge drops every bubble that has reached the lifetime age.
func (s *Sim) purge() {
	lifetime := s.cfg.Lifetime()
	kept := make([]Bubble, 0, len(s.state.Bubbles))
	for _, b := range s.state.Bubbles {
		if b.Age(s.now) < lifetime {
			kept = append(kept, b)
		}
	}
	s.state.Bubbles = kept
}

func (s *Sim) gameOver() {
	st := &s.state
	st.Over = true
	st.SummaryVisible = true
	if st.Score > st.HighScore {
		st.HighScore = st.Score
	}
	s.countdown.disarm()
	s.combo.disarm()
	s.physics.disarm()
}

func (s *Sim) fireCombo() {
	s.combo.disarm()
	if s.state.Over {
		return
	}
	if s.now-s.state.LastTapAt >= s.cfg.ComboWindow() && s.state.Combo != 0 {
		s.state.Combo = 0
		s.seq++
	}
}

func (s *Sim) firePhysics() {
	st := &s.state
	if st.Over {
		s.physics.disarm()
		return
	}

	spawn := s.cfg.Bubbles
	bubbles := st.Bubbles
	if len(bubbles) == 0 {
		bubbles = make([]Bubble, 0, spawn.RefillCount)
		for i := 0; i < spawn.RefillCount; i++ {
			bubbles = append(bubbles, s.spawnOne())
		}
	} else if len(bubbles) < spawn.MaxLive && s.rng.Float64() < s.ramp.SpawnChance(st.Difficulty) {
		bubbles = append(cloneBubbles(bubbles), s.spawnOne())
	}
	st.Bubbles = Advance(bubbles, s.arenaW, s.arenaH)
	s.seq++

	s.physics.arm(s.physics.due + s.cfg.PhysicsTick())
}

func (s *Sim) spawnOne() Bubble {
	return s.factory.New(s.arenaW, s.arenaH, s.state.Difficulty, s.now)
}

// TapBubble pops the live bubble with the given id.
// An id that is no longer live counts as a tap on empty space.
// Taps after the round ended are ignored.
func (s *Sim) TapBubble(id int) TapResult {
	st := &s.state
	if st.Over {
		return TapResult{Combo: st.Combo}
	}

	idx := -1
	for i, b := range st.Bubbles {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.TapEmpty()
		return TapResult{Combo: st.Combo}
	}

	if st.LastTapAt != 0 && s.now-st.LastTapAt < s.cfg.ComboWindow() {
		st.Combo++
	} else {
		st.Combo = 1
	}
	st.LastTapAt = s.now
	points := 1 + st.Combo/s.cfg.Scoring.ComboStep
	st.Score += points

	kept := make([]Bubble, 0, len(st.Bubbles)-1)
	kept = append(kept, st.Bubbles[:idx]...)
	kept = append(kept, st.Bubbles[idx+1:]...)
	st.Bubbles = kept

	// A fresh watch supersedes any pending one.
	s.combo.arm(s.now + s.cfg.ComboWindow())
	s.seq++

	return TapResult{Hit: true, ID: id, Points: points, Combo: st.Combo}
}

// TapEmpty applies the penalty for tapping where no bubble is.
func (s *Sim) TapEmpty() {
	st := &s.state
	if st.Over {
		return
	}
	if st.Score > 0 {
		st.Score--
	}
	st.Combo = 0
	s.seq++
}

// TapAt taps the topmost bubble under p, or empty space if there is none.
func (s *Sim) TapAt(p core.Vec2) TapResult {
	if b, ok := s.HitTest(p); ok {
		return s.TapBubble(b.ID)
	}
	s.TapEmpty()
	return TapResult{Combo: s.state.Combo}
}

// HitTest returns the topmost bubble containing p. Later bubbles are drawn
// above earlier ones.
func (s *Sim) HitTest(p core.Vec2) (Bubble, bool) {
	bs := s.state.Bubbles
	for i := len(bs) - 1; i >= 0; i-- {
		if bs[i].Contains(p) {
			return bs[i], true
		}
	}
	return Bubble{}, false
}

// Restart begins a new round. The high score is kept.
func (s *Sim) Restart() {
	hi := s.state.HighScore
	s.state = State{
		Bubbles:    []Bubble{},
		HighScore:  hi,
		TimeLeft:   s.cfg.Round.LengthSecs,
		Difficulty: s.ramp.Start(),
	}
	s.countdown.arm(s.now + s.cfg.CountdownPeriod())
	s.physics.arm(s.now + s.cfg.PhysicsTick())
	s.combo.disarm()
	s.seq++
}

// DismissSummary hides the game-over summary. The round stays over.
func (s *Sim) DismissSummary() {
	if !s.state.SummaryVisible {
		return
	}
	s.state.SummaryVisible = false
	s.seq++
}

// SetArena changes the arena size used by later ticks.
// Dimensions below one unit are raised to one.
func (s *Sim) SetArena(w, h float64) {
	w, h = max(w, minArena), max(h, minArena)
	if w == s.arenaW && h == s.arenaH {
		return
	}
	s.arenaW, s.arenaH = w, h
	s.seq++
}

// SetHighScore seeds the best score, for example from a scoreboard.
// It never lowers the current best.
func (s *Sim) SetHighScore(score int) {
	if score <= s.state.HighScore {
		return
	}
	s.state.HighScore = score
	s.seq++
}

// Snapshot returns an immutable copy of the current state.
func (s *Sim) Snapshot() Snapshot {
	st := s.state
	bubbles := cloneBubbles(st.Bubbles)
	if bubbles == nil {
		bubbles = []Bubble{}
	}
	return Snapshot{
		Seq:            s.seq,
		Bubbles:        bubbles,
		Score:          st.Score,
		HighScore:      st.HighScore,
		TimeLeft:       st.TimeLeft,
		Combo:          st.Combo,
		Difficulty:     st.Difficulty,
		Over:           st.Over,
		SummaryVisible: st.SummaryVisible,
		NewBest:        st.Over && st.Score > 0 && st.Score == st.HighScore,
		ArenaW:         s.arenaW,
		ArenaH:         s.arenaH,
		Now:            s.now,
	}
}
