package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubblepop/internal/core"
	_ "github.com/vovakirdan/bubblepop/internal/games/bubbles"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

// stubGame records what the platform hands it.
type stubGame struct {
	over      bool
	steps     int
	resets    int
	resized   [2]int
	best      int
	lastInput core.InputFrame
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(dst *core.Screen) { dst.Clear() }
func (g *stubGame) State() core.GameState { return core.GameState{Score: 3, GameOver: g.over} }
func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }
func (g *stubGame) SetHighScore(score int) { g.best = score }
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastInput = in.Clone()
	return core.StepResult{State: g.State()}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{keyRune('w'), core.ActionUp, false},
		{keyRune('k'), core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{keyRune('h'), core.ActionLeft, false},
		{keyRune('d'), core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionTap, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionTap, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{keyRune('p'), core.ActionPause, false},
		{keyRune('r'), core.ActionRestart, false},
		{keyRune('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{keyRune('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.expected || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v, expected %v, %v", tt.msg.String(), action, quit, tt.expected, tt.quit)
		}
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	click := tea.MouseMsg{X: 12, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if !km.MapMouseToFrame(click, &frame) {
		t.Fatal("left press should tap")
	}
	release := tea.MouseMsg{X: 12, Y: 7, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if km.MapMouseToFrame(release, &frame) {
		t.Error("release should not tap")
	}

	if len(frame.Taps) != 1 || frame.Taps[0] != (core.CellPoint{X: 12, Y: 7}) {
		t.Errorf("Taps = %v, expected one tap at (12, 7)", frame.Taps)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}); got != MenuActionScoreboard {
		t.Errorf("tab = %v, expected MenuActionScoreboard", got)
	}
	if got := km.MapKeyToMenuAction(keyRune('j')); got != MenuActionDown {
		t.Errorf("j = %v, expected MenuActionDown", got)
	}
}

func TestModelSeedsHighScore(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	if _, err := store.SaveScore("stub", 17); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}

	g := &stubGame{}
	NewModel(g, store, core.DefaultConfig())

	if g.best != 17 {
		t.Errorf("best = %d, expected 17", g.best)
	}
}

func TestModelBackDismissesThenLeaves(t *testing.T) {
	g := &stubGame{over: true}
	var m tea.Model = NewModel(g, nil, core.DefaultConfig())

	m, _ = m.Update(TickMsg{})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil || m.(Model).BackToMenu() {
		t.Fatal("first Back after game over should only dismiss the summary")
	}

	m, _ = m.Update(TickMsg{})
	if !g.lastInput.Has(core.ActionBack) {
		t.Error("game should receive the Back action")
	}

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.(Model).BackToMenu() || cmd == nil {
		t.Error("second Back should leave the game")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	g := &stubGame{over: true}
	var m tea.Model = NewModel(g, store, core.DefaultConfig())
	for i := 0; i < 5; i++ {
		m, _ = m.Update(TickMsg{})
	}

	stats, err := store.GetGameStats("stub")
	if err != nil {
		t.Fatalf("GetGameStats: %v", err)
	}
	if stats.GamesCount != 1 || stats.HighScore != 3 {
		t.Errorf("stats = %+v, expected one round of 3", stats)
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	g := &stubGame{}
	model := NewModel(g, nil, core.DefaultConfig())
	model.gen = 2

	var m tea.Model = model
	m, _ = m.Update(TickMsg{Gen: 1})
	if g.steps != 0 {
		t.Errorf("steps = %d, expected a stale tick to be ignored", g.steps)
	}
	m.Update(TickMsg{Gen: 2})
	if g.steps != 1 {
		t.Errorf("steps = %d, expected 1", g.steps)
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	g := &stubGame{}
	var m tea.Model = NewModel(g, nil, core.DefaultConfig())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resized != [2]int{100, 30} {
		t.Errorf("resized = %v, expected [100 30]", g.resized)
	}
	if g.resets != 0 {
		t.Errorf("resets = %d, expected a resizable game not to be reset", g.resets)
	}
}

func TestSessionMenuGameMenu(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	var m tea.Model = NewSessionModel(store, core.DefaultConfig(), "", log.New(io.Discard))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s := m.(SessionModel)
	if s.screen != screenGame || s.game == nil {
		t.Fatal("Enter should start the selected game")
	}
	if cmd == nil {
		t.Error("starting a game should schedule the first tick")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = m.(SessionModel)
	if s.screen != screenMenu || s.game != nil {
		t.Error("Back during a round should return to the menu")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.(SessionModel).screen != screenScores {
		t.Error("Tab should open the scoreboard")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).screen != screenMenu {
		t.Error("Back should close the scoreboard")
	}

	_, cmd = m.Update(keyRune('q'))
	if cmd == nil {
		t.Error("q should quit the session")
	}
}

func TestScoreboardListsSessionRounds(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	for _, score := range []int{12, 40, 7} {
		if _, err := store.SaveScore("bubbles", score); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}
	if _, err := store.SaveScore("bubbles_blitz", 99); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if m.gameID() != "bubbles" {
		t.Fatalf("first variant = %q, expected bubbles", m.gameID())
	}

	rows := m.table.Rows()
	if len(rows) != 3 || rows[0][0] != "#3" || rows[0][1] != "7" {
		t.Fatalf("newest-first rows = %v", rows)
	}
	if rows[1][2] != "best" {
		t.Errorf("round 2 should be marked best, got %q", rows[1][2])
	}

	next, _ := m.Update(keyRune('s'))
	m = next.(ScoreboardModel)
	rows = m.table.Rows()
	if rows[0][0] != "#2" || rows[0][1] != "40" || rows[2][1] != "7" {
		t.Errorf("best-first rows = %v", rows)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	rows = m.table.Rows()
	if m.gameID() != "bubbles_blitz" || len(rows) != 1 || rows[0][1] != "99" {
		t.Errorf("blitz rows = %v", rows)
	}
}

func TestScoreboardEmptyWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if len(m.table.Rows()) != 0 {
		t.Error("expected no rows without a store")
	}
	if !strings.Contains(m.View(), "No rounds finished yet") {
		t.Error("expected the empty history message")
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		scores   []int
		expected string
	}{
		{[]int{0, 0}, "▁▁"},
		{[]int{0, 7, 14}, "▁▄█"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := sparkline(tt.scores); got != tt.expected {
			t.Errorf("sparkline(%v) = %q, expected %q", tt.scores, got, tt.expected)
		}
	}
}
