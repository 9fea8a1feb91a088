package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubbles"
	"github.com/vovakirdan/bubblepop/internal/registry"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

var (
	flagAutoGame     string
	flagAutoRounds   int
	flagTapsPerSec   float64
	flagAutoAccuracy float64
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let a bot play headless rounds",
	Long: `Run rounds in real time without a terminal UI while a bot taps bubbles.

Each round runs on the concurrent engine: the bot sends taps, a watcher
logs the countdown, and finished rounds land on the in-memory scoreboard,
which is printed at the end.

Examples:
  bubblepop autoplay
  bubblepop autoplay --game bubbles_blitz --rounds 3
  bubblepop autoplay --taps-per-sec 8 --accuracy 0.7 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runAutoplay,
}

func init() {
	autoplayCmd.Flags().StringVar(&flagAutoGame, "game", bubbles.BlitzGameID, "Game to play")
	autoplayCmd.Flags().IntVar(&flagAutoRounds, "rounds", 1, "Number of rounds")
	autoplayCmd.Flags().Float64Var(&flagTapsPerSec, "taps-per-sec", 4, "How often the bot taps")
	autoplayCmd.Flags().Float64Var(&flagAutoAccuracy, "accuracy", 0.9, "Chance that a tap aims at a live bubble")
}

func runAutoplay(cmd *cobra.Command, _ []string) error {
	if !registry.Exists(flagAutoGame) {
		return fmt.Errorf("%w %q", registry.ErrUnknownGame, flagAutoGame)
	}
	if flagAutoRounds < 1 {
		return fmt.Errorf("--rounds must be at least 1, got %d", flagAutoRounds)
	}
	if flagTapsPerSec <= 0 {
		return fmt.Errorf("--taps-per-sec must be positive, got %v", flagTapsPerSec)
	}

	logger, err := newLogger("autoplay")
	if err != nil {
		return err
	}
	if err := applyGameFlags(); err != nil {
		return err
	}
	cfg, err := bubbles.LoadConfig(flagAutoGame)
	if err != nil {
		return err
	}

	store, err := storage.Open()
	if err != nil {
		return fmt.Errorf("opening scoreboard: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	best := 0
	for round := 1; round <= flagAutoRounds; round++ {
		snap, err := playRound(ctx, logger.With("round", round), store, cfg, seed+int64(round), best)
		if err != nil {
			return err
		}
		best = snap.HighScore
		if ctx.Err() != nil {
			logger.Warn("interrupted", "round", round)
			break
		}
	}

	return printTopScores(cmd, store, flagAutoGame)
}

// playRound runs one round on an Engine until the countdown ends or ctx is done.
func playRound(ctx context.Context, logger *log.Logger, store *storage.Store, cfg config.BubblesConfig, seed int64, best int) (bubbles.Snapshot, error) {
	screen := core.DefaultConfig()
	sim := bubbles.NewSim(cfg, seed,
		float64(screen.ScreenW)*cfg.Render.UnitsPerCol,
		float64(screen.ScreenH-1)*cfg.Render.UnitsPerRow)
	sim.SetHighScore(best)

	engine := bubbles.NewEngine(flagAutoGame, sim,
		bubbles.WithRecorder(store),
		bubbles.WithLogger(logger),
	)
	logger.Info("round started", "engine", engine.ID(), "seconds", cfg.Round.LengthSecs)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return engine.Run(ctx)
	})
	eg.Go(func() error {
		return tapBot(ctx, engine, rand.New(rand.NewSource(seed)))
	})
	eg.Go(func() error {
		watchRound(logger, engine)
		cancel()
		return nil
	})
	if err := eg.Wait(); err != nil {
		return bubbles.Snapshot{}, fmt.Errorf("round: %w", err)
	}
	return engine.Snapshot(), nil
}

// tapBot taps at a fixed rate, usually on a random live bubble.
func tapBot(ctx context.Context, engine *bubbles.Engine, rng *rand.Rand) error {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / flagTapsPerSec))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		snap := engine.Snapshot()
		if snap.Over {
			continue
		}

		var err error
		if len(snap.Bubbles) > 0 && rng.Float64() < flagAutoAccuracy {
			err = engine.TapBubble(snap.Bubbles[rng.Intn(len(snap.Bubbles))].ID)
		} else {
			err = engine.TapEmpty()
		}
		if errors.Is(err, bubbles.ErrEngineStopped) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// watchRound logs each countdown second and returns once the round is over
// or the engine stops.
func watchRound(logger *log.Logger, engine *bubbles.Engine) {
	snaps, unsubscribe := engine.Subscribe()
	defer unsubscribe()

	lastTime := -1
	for snap := range snaps {
		if snap.TimeLeft != lastTime {
			lastTime = snap.TimeLeft
			logger.Debug("tick",
				"time_left", snap.TimeLeft,
				"score", snap.Score,
				"combo", snap.Combo,
				"live", len(snap.Bubbles),
				"difficulty", fmt.Sprintf("%.2f", snap.Difficulty),
			)
		}
		if snap.Over {
			return
		}
	}
}

func printTopScores(cmd *cobra.Command, store *storage.Store, gameID string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("reading scores: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(scores) == 0 {
		fmt.Fprintln(out, "No rounds finished.")
		return nil
	}

	fmt.Fprintf(out, "%-4s  %-6s  %-8s  %s\n", "RANK", "SCORE", "RUN", "FINISHED")
	for i, s := range scores {
		fmt.Fprintf(out, "%-4d  %-6d  %-8s  %s\n", i+1, s.Score, shortID(s.RunID), s.CreatedAt.Format(time.TimeOnly))
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
