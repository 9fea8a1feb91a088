package bubbles

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/games/bubbles/mocks"
)

// shortRound returns a config whose round ends after two 20ms countdowns.
func shortRound() config.BubblesConfig {
	cfg := config.DefaultBubblesConfig()
	cfg.Round.LengthSecs = 2
	cfg.Round.CountdownMs = 20
	cfg.Round.PhysicsTickMs = 5
	return cfg
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// waitFor reads snapshots until match returns true or the deadline passes.
func waitFor(t *testing.T, ch <-chan Snapshot, match func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				t.Fatal("snapshot channel closed")
			}
			if match(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
		}
	}
}

func runEngine(t *testing.T, e *Engine) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- e.Run(ctx) }()
	return cancel, errCh
}

func TestEngineRecordsScoreOnceAtGameOver(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := mocks.NewMockScoreRecorder(ctrl)
	rec.EXPECT().SaveScore("bubbles", 0).Return("run-1", nil).Times(1)

	e := NewEngine("bubbles", NewSim(shortRound(), 1, 400, 400),
		WithRecorder(rec), WithLogger(quietLogger()), WithFrame(5*time.Millisecond))
	snaps, unsubscribe := e.Subscribe()
	defer unsubscribe()

	cancel, errCh := runEngine(t, e)
	snap := waitFor(t, snaps, func(s Snapshot) bool { return s.Over })
	if snap.TimeLeft != 0 || !snap.SummaryVisible {
		t.Errorf("unexpected game over snapshot %+v", snap)
	}

	// Let the engine keep running; it must not record again.
	time.Sleep(50 * time.Millisecond)
	cancel()
	if err := <-errCh; err != nil {
		t.Errorf("Run returned %v, expected nil on cancel", err)
	}
}

func TestEngineRecorderErrorIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := mocks.NewMockScoreRecorder(ctrl)
	rec.EXPECT().SaveScore(gomock.Any(), gomock.Any()).Return("", errors.New("disk full")).Times(1)

	e := NewEngine("bubbles", NewSim(shortRound(), 1, 400, 400),
		WithRecorder(rec), WithLogger(quietLogger()))
	snaps, _ := e.Subscribe()

	cancel, errCh := runEngine(t, e)
	waitFor(t, snaps, func(s Snapshot) bool { return s.Over })
	cancel()
	if err := <-errCh; err != nil {
		t.Errorf("Run returned %v", err)
	}
}

func TestEngineAppliesIntents(t *testing.T) {
	e := NewEngine("bubbles", NewSim(shortRound(), 1, 400, 400), WithLogger(quietLogger()))
	snaps, _ := e.Subscribe()

	cancel, errCh := runEngine(t, e)
	defer func() {
		cancel()
		<-errCh
	}()

	waitFor(t, snaps, func(s Snapshot) bool { return s.Over })

	if err := e.DismissSummary(); err != nil {
		t.Fatalf("DismissSummary: %v", err)
	}
	waitFor(t, snaps, func(s Snapshot) bool { return s.Over && !s.SummaryVisible })

	if err := e.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	waitFor(t, snaps, func(s Snapshot) bool { return !s.Over && s.TimeLeft == 2 })

	if err := e.SetArena(800, 600); err != nil {
		t.Fatalf("SetArena: %v", err)
	}
	waitFor(t, snaps, func(s Snapshot) bool { return s.ArenaW == 800 && s.ArenaH == 600 })
}

func TestEngineSnapshotsIncreaseSeq(t *testing.T) {
	e := NewEngine("bubbles", NewSim(shortRound(), 1, 400, 400), WithLogger(quietLogger()))
	snaps, _ := e.Subscribe()

	cancel, errCh := runEngine(t, e)
	var last uint64
	for i := 0; i < 5; i++ {
		snap := waitFor(t, snaps, func(Snapshot) bool { return true })
		if i > 0 && snap.Seq <= last {
			t.Errorf("Seq %d after %d, expected increasing", snap.Seq, last)
		}
		last = snap.Seq
	}
	cancel()
	<-errCh
}

func TestEngineStopsOnCancel(t *testing.T) {
	e := NewEngine("bubbles", newTestSim(1), WithLogger(quietLogger()))
	snaps, _ := e.Subscribe()

	cancel, errCh := runEngine(t, e)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not stop after cancel")
	}

	select {
	case <-e.Done():
	default:
		t.Error("Done should be closed after Run returns")
	}

	// Drain; the channel must be closed.
	for range snaps {
	}

	if err := e.TapEmpty(); !errors.Is(err, ErrEngineStopped) {
		t.Errorf("TapEmpty after stop = %v, expected ErrEngineStopped", err)
	}
	if err := e.TapBubble(1); !errors.Is(err, ErrEngineStopped) {
		t.Errorf("TapBubble after stop = %v, expected ErrEngineStopped", err)
	}

	late, _ := e.Subscribe()
	if _, ok := <-late; ok {
		t.Error("Subscribe after stop should return a closed channel")
	}
}

func TestEngineUnsubscribe(t *testing.T) {
	e := NewEngine("bubbles", newTestSim(1), WithLogger(quietLogger()))
	snaps, unsubscribe := e.Subscribe()

	<-snaps // Initial snapshot
	unsubscribe()

	if _, ok := <-snaps; ok {
		t.Error("channel should be closed after unsubscribe")
	}
	if e.ID() == "" {
		t.Error("engine should have an id")
	}
}

func TestEngineSnapshotsAreIndependent(t *testing.T) {
	e := NewEngine("bubbles", newTestSim(1), WithLogger(quietLogger()), WithFrame(5*time.Millisecond))
	snaps, unsubscribe := e.Subscribe()
	defer unsubscribe()

	cancel, errCh := runEngine(t, e)
	got := waitFor(t, snaps, func(s Snapshot) bool { return len(s.Bubbles) > 0 })
	cancel()
	<-errCh

	got.Bubbles[0].ID = -1
	first := e.Snapshot()
	if first.Bubbles[0].ID == -1 {
		t.Error("modifying a subscriber snapshot changed Engine.Snapshot")
	}

	first.Bubbles[0].ID = -2
	if e.Snapshot().Bubbles[0].ID == -2 {
		t.Error("modifying one Snapshot result changed the next")
	}
}

func TestEngineRejectsIntentsBeforeRun(t *testing.T) {
	e := NewEngine("bubbles", newTestSim(1), WithLogger(quietLogger()))

	var err error
	for i := 0; i < 1000 && err == nil; i++ {
		err = e.TapEmpty()
	}
	if !errors.Is(err, ErrEngineNotRunning) {
		t.Errorf("TapEmpty on a full queue = %v, expected ErrEngineNotRunning", err)
	}
}
