package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubbles"
	"github.com/vovakirdan/bubblepop/internal/platform/tui"
	"github.com/vovakirdan/bubblepop/internal/registry"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Mouse click         - Pop the bubble under the pointer
  Arrows/WASD/hjkl    - Move the crosshair
  Space/Enter         - Pop at the crosshair
  P                   - Pause
  R                   - Restart (after game over)
  Esc/B               - Hide the summary, then leave
  Q/Ctrl+C            - Quit

Difficulty options:
  easy   - Start slower (0.8)
  normal - Start at 1.0
  hard   - Start faster (1.4)
  fixed  - No ramp, difficulty stays at the config's start value

Examples:
  bubblepop play bubbles
  bubblepop play bubbles --difficulty easy
  bubblepop play bubbles_blitz --difficulty hard
  bubblepop play bubbles --config ./my-bubbles.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	// Shared by play and menu
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// terminalConfig builds the runtime config from the terminal size and global flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// applyGameFlags hands --config and --difficulty to the games before creation.
// A broken --config is reported here instead of silently falling back.
func applyGameFlags() error {
	switch flagDifficulty {
	case "", "easy", "normal", "hard", "fixed":
	default:
		return fmt.Errorf("invalid --difficulty %q: want easy, normal, hard or fixed", flagDifficulty)
	}
	bubbles.SetConfigPath(flagConfig)
	bubbles.SetDifficultyPreset(flagDifficulty)
	if _, err := bubbles.LoadConfig(bubbles.GameID); err != nil {
		return err
	}
	return nil
}

// openStore opens the in-memory scoreboard, warning instead of failing.
func openStore() *storage.Store {
	store, err := storage.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scoreboard: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("%w %q, run 'bubblepop list' to see available games", registry.ErrUnknownGame, gameID)
	}

	if err := applyGameFlags(); err != nil {
		return err
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, terminalConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
