package bubbles

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/bubblepop/internal/core"
)

// ErrEngineStopped is returned for intents sent after the engine stopped.
var ErrEngineStopped = errors.New("bubbles: engine stopped")

// ErrEngineNotRunning is returned when intents queued before Run fill the buffer.
var ErrEngineNotRunning = errors.New("bubbles: engine not running")

//go:generate go tool mockgen -destination=./mocks/recorder_mock.go -package=mocks . ScoreRecorder

// ScoreRecorder stores final round scores. storage.Store implements it.
type ScoreRecorder interface {
	SaveScore(gameID string, score int) (string, error)
}

type intentKind int

const (
	intentTapBubble intentKind = iota
	intentTapEmpty
	intentTapAt
	intentRestart
	intentDismiss
	intentSetArena
)

type intent struct {
	kind intentKind
	id   int
	pos  core.Vec2
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRecorder records every finished round's score.
func WithRecorder(r ScoreRecorder) EngineOption {
	return func(e *Engine) { e.recorder = r }
}

// WithFrame sets how often the engine advances the simulation.
func WithFrame(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.frame = d
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l *log.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// Engine runs a Sim in real time.
//
// One owner goroutine advances the Sim from a wall-clock ticker and applies
// intents received over a channel, so intents interleave between driver
// events. After every mutation it publishes a Snapshot to subscribers.
// Intents sent before Run starts are queued up to the buffer size, then
// rejected with ErrEngineNotRunning.
// All Engine methods are safe for concurrent use.
type Engine struct {
	id       string
	gameID   string
	sim      *Sim
	frame    time.Duration
	recorder ScoreRecorder
	logger   *log.Logger

	intents chan intent
	results chan int
	done    chan struct{}
	once    sync.Once
	running atomic.Bool

	mu     sync.Mutex
	subs   []chan Snapshot
	latest Snapshot
}

// NewEngine wraps sim. gameID names the game in recorded scores.
func NewEngine(gameID string, sim *Sim, opts ...EngineOption) *Engine {
	e := &Engine{
		id:      uuid.NewString(),
		gameID:  gameID,
		sim:     sim,
		frame:   sim.Config().PhysicsTick(),
		logger:  log.Default(),
		intents: make(chan intent, 64),
		results: make(chan int, 8),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.latest = sim.Snapshot()
	return e
}

// ID returns the engine's unique id.
func (e *Engine) ID() string {
	return e.id
}

// Run owns the Sim until ctx is cancelled. It returns nil on cancellation.
// An Engine can only be run once.
func (e *Engine) Run(ctx context.Context) error {
	e.running.Store(true)
	defer e.stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(e.results)
		e.ownerLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		e.recordLoop()
		return nil
	})
	return eg.Wait()
}

func (e *Engine) ownerLoop(ctx context.Context) {
	ticker := time.NewTicker(e.frame)
	defer ticker.Stop()

	last := time.Now()
	over := e.sim.IsOver()
	for {
		select {
		case <-ctx.Done():
			return
		case in := <-e.intents:
			e.apply(in)
		case now := <-ticker.C:
			e.sim.Advance(now.Sub(last))
			last = now
		}

		if !over && e.sim.IsOver() {
			e.finishRound()
		}
		over = e.sim.IsOver()
		e.publish()
	}
}

func (e *Engine) apply(in intent) {
	switch in.kind {
	case intentTapBubble:
		e.sim.TapBubble(in.id)
	case intentTapEmpty:
		e.sim.TapEmpty()
	case intentTapAt:
		e.sim.TapAt(in.pos)
	case intentRestart:
		e.sim.Restart()
	case intentDismiss:
		e.sim.DismissSummary()
	case intentSetArena:
		e.sim.SetArena(in.pos.X, in.pos.Y)
	}
}

func (e *Engine) finishRound() {
	snap := e.sim.Snapshot()
	e.logger.Info("round over", "engine", e.id, "game", e.gameID, "score", snap.Score, "best", snap.HighScore)
	if e.recorder == nil {
		return
	}
	select {
	case e.results <- snap.Score:
	default:
		e.logger.Warn("dropping score, recorder is behind", "engine", e.id, "score", snap.Score)
	}
}

// recordLoop keeps storage writes off the owner goroutine.
func (e *Engine) recordLoop() {
	for score := range e.results {
		runID, err := e.recorder.SaveScore(e.gameID, score)
		if err != nil {
			e.logger.Warn("failed to save score", "engine", e.id, "err", err)
			continue
		}
		e.logger.Debug("score saved", "engine", e.id, "run", runID, "score", score)
	}
}

// publish sends the current snapshot to every subscriber if it changed.
// A subscriber that has not consumed the previous snapshot gets it replaced.
func (e *Engine) publish() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sim.Seq() == e.latest.Seq {
		return
	}
	e.latest = e.sim.Snapshot()
	for _, ch := range e.subs {
		snap := e.latest.clone()
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (e *Engine) stop() {
	e.once.Do(func() {
		close(e.done)
		e.mu.Lock()
		for _, ch := range e.subs {
			close(ch)
		}
		e.subs = nil
		e.mu.Unlock()
	})
}

// Subscribe returns a channel receiving snapshots, starting with the latest
// one. Only the newest unread snapshot is kept. The channel is closed when the
// engine stops or cancel is called.
func (e *Engine) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	e.mu.Lock()
	defer e.mu.Unlock()
	select {
	case <-e.done:
		close(ch)
		return ch, func() {}
	default:
	}
	ch <- e.latest.clone()
	e.subs = append(e.subs, ch)

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, c := range e.subs {
			if c == ch {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// Snapshot returns a copy of the most recently published snapshot.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.latest.clone()
}

// Done is closed once the engine has stopped.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

func (e *Engine) send(in intent) error {
	select {
	case <-e.done:
		return ErrEngineStopped
	default:
	}
	if !e.running.Load() {
		select {
		case e.intents <- in:
			return nil
		default:
			return ErrEngineNotRunning
		}
	}
	select {
	case e.intents <- in:
		return nil
	case <-e.done:
		return ErrEngineStopped
	}
}

// TapBubble pops the bubble with the given id.
func (e *Engine) TapBubble(id int) error {
	return e.send(intent{kind: intentTapBubble, id: id})
}

// TapEmpty taps empty space.
func (e *Engine) TapEmpty() error {
	return e.send(intent{kind: intentTapEmpty})
}

// TapAt taps the arena point p.
func (e *Engine) TapAt(p core.Vec2) error {
	return e.send(intent{kind: intentTapAt, pos: p})
}

// Restart begins a new round.
func (e *Engine) Restart() error {
	return e.send(intent{kind: intentRestart})
}

// DismissSummary hides the game-over summary.
func (e *Engine) DismissSummary() error {
	return e.send(intent{kind: intentDismiss})
}

// SetArena resizes the arena.
func (e *Engine) SetArena(w, h float64) error {
	return e.send(intent{kind: intentSetArena, pos: core.Vec2{X: w, Y: h}})
}
