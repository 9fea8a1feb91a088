// bubblepop is a terminal arcade for a timed bubble-popping game.
//
// Usage:
//
//	bubblepop list              - List available games
//	bubblepop play <game>       - Play a game
//	bubblepop menu              - Start menu to pick games interactively
//	bubblepop serve             - Start SSH server for remote play
//	bubblepop autoplay          - Run headless rounds with a bot
//	bubblepop config <game>     - Print a game's default config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/bubblepop/internal/games/bubbles"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubblepop",
	Short: "Bubble Pop - pop bubbles in your terminal",
	Long: `Bubble Pop is a timed arcade game for the terminal. Bubbles drift and
bounce around the screen; click them (or aim with the keyboard and press
Space) before they fade. Quick successive pops build a combo worth bonus
points, missing costs a point, and the game speeds up as the clock runs down.

Scores are kept in memory for as long as bubblepop runs.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  autoplay  - Let a bot play headless rounds
  config    - Print a game's default config

Examples:
  bubblepop play bubbles
  bubblepop play bubbles_blitz --difficulty hard
  bubblepop menu
  bubblepop serve --ssh :2222
  bubblepop autoplay --rounds 3 --taps-per-sec 4`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates a stderr logger honoring --log-level.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}
