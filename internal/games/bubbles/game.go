package bubbles

import (
	"time"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/registry"
)

// Game ids.
const (
	GameID      = "bubbles"
	BlitzGameID = "bubbles_blitz"
)

// hudRows is the number of screen rows above the arena.
const hudRows = 1

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = "" // Use config default
	}
}

// LoadConfig resolves the config for gameID using the path and preset set
// via SetConfigPath and SetDifficultyPreset.
func LoadConfig(gameID string) (config.BubblesConfig, error) {
	cfg, err := config.LoadBubbles(configPath)
	if err != nil {
		return cfg, err
	}
	if gameID == BlitzGameID {
		config.BlitzOverrides(&cfg)
	}
	if difficultyPreset != "" {
		config.ApplyBubblesPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// Game adapts a Sim to the arcade's fixed-tick game loop.
// Each Step advances the Sim clock by one tick interval, so pausing freezes
// every driver.
type Game struct {
	id        string
	title     string
	sim       *Sim
	cfg       config.BubblesConfig
	runtime   core.RuntimeConfig
	paused    bool
	cursor    core.CellPoint
	highScore int // Carried across Reset
}

// New creates the standard 60 second game.
func New() *Game {
	return &Game{id: GameID, title: "Bubble Pop"}
}

// NewBlitz creates the short, faster variant.
func NewBlitz() *Game {
	return &Game{id: BlitzGameID, title: "Bubble Pop Blitz"}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset starts a fresh round with a new seed. The session best survives.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := LoadConfig(g.id)
	if err != nil {
		cfg = config.DefaultBubblesConfig()
	}
	g.cfg = cfg

	if g.sim != nil {
		g.highScore = max(g.highScore, g.sim.Snapshot().HighScore)
	}

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w, h := g.arenaSize(runtime.ScreenW, runtime.ScreenH)
	g.sim = NewSim(cfg, seed, w, h)
	g.sim.SetHighScore(g.highScore)

	g.paused = false
	g.cursor = core.CellPoint{X: runtime.ScreenW / 2, Y: hudRows + (runtime.ScreenH-hudRows)/2}
}

// Resize follows a terminal resize without restarting the round.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW, g.runtime.ScreenH = screenW, screenH
	if g.sim == nil {
		return
	}
	g.sim.SetArena(g.arenaSize(screenW, screenH))
	g.cursor = g.clampCursor(g.cursor)
}

// SetHighScore seeds the best score shown in the HUD.
func (g *Game) SetHighScore(score int) {
	g.highScore = max(g.highScore, score)
	if g.sim != nil {
		g.sim.SetHighScore(score)
	}
}

// Snapshot returns the current simulation snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.sim.Snapshot()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sim == nil {
		g.Reset(g.runtime)
	}

	if g.sim.IsOver() {
		switch {
		case in.Has(core.ActionRestart):
			g.sim.Restart()
		case in.Has(core.ActionBack):
			g.sim.DismissSummary()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)
	if in.Has(core.ActionTap) {
		g.tapCell(g.cursor)
	}
	for _, p := range in.Taps {
		g.tapCell(p)
	}

	g.sim.Advance(g.runtime.TickInterval())

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	c := g.cursor
	switch {
	case in.Has(core.ActionUp):
		c.Y--
	case in.Has(core.ActionDown):
		c.Y++
	}
	switch {
	case in.Has(core.ActionLeft):
		c.X--
	case in.Has(core.ActionRight):
		c.X++
	}
	g.cursor = g.clampCursor(c)
}

func (g *Game) clampCursor(c core.CellPoint) core.CellPoint {
	c.X = core.Clamp(c.X, 0, max(g.runtime.ScreenW-1, 0))
	c.Y = core.Clamp(c.Y, hudRows, max(g.runtime.ScreenH-1, hudRows))
	return c
}

// tapCell taps the arena point under a screen cell. Clicks on the HUD are ignored.
func (g *Game) tapCell(p core.CellPoint) TapResult {
	if p.Y < hudRows {
		return TapResult{}
	}
	return g.sim.TapAt(g.cellToArena(p))
}

// cellToArena returns the arena point at the center of a screen cell.
func (g *Game) cellToArena(p core.CellPoint) core.Vec2 {
	r := g.cfg.Render
	return core.Vec2{
		X: (float64(p.X) + 0.5) * r.UnitsPerCol,
		Y: (float64(p.Y-hudRows) + 0.5) * r.UnitsPerRow,
	}
}

// arenaSize converts a screen size into arena units.
func (g *Game) arenaSize(screenW, screenH int) (float64, float64) {
	r := g.cfg.Render
	return float64(screenW) * r.UnitsPerCol, float64(screenH-hudRows) * r.UnitsPerRow
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{Paused: g.paused}
	}
	snap := g.sim.Snapshot()
	return core.GameState{
		Score:    snap.Score,
		GameOver: snap.Over,
		Paused:   g.paused,
	}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(BlitzGameID, func() registry.Game {
		return NewBlitz()
	})
}
