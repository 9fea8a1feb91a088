// Package registry keeps the set of playable games.
// Games register a factory from init(), so the CLI and the TUI can list and
// create them without importing each game by name.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/bubblepop/internal/core"
)

// ErrUnknownGame is returned by Create for an id nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the contract between the platform and a game.
// Implementations hold pure logic; the platform owns timing, input mapping and drawing.
type Game interface {
	// ID returns the identifier used on the command line and in the scoreboard.
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset starts a fresh round sized and seeded from cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one fixed tick and applies the frame's input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns score / game-over / paused flags.
	State() core.GameState
}

// HighScoreKeeper is implemented by games that show a session best.
// The platform seeds it from the scoreboard before the first round.
type HighScoreKeeper interface {
	SetHighScore(score int)
}

// Resizer is implemented by games that can follow a terminal resize
// without restarting the round.
type Resizer interface {
	Resize(screenW, screenH int)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a game by id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// Exists reports whether a game id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
