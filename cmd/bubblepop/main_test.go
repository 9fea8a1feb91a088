package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/bubblepop/internal/games/bubbles"
	"github.com/vovakirdan/bubblepop/internal/registry"
)

// execute runs the root command with fresh flag values and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	flagFPS, flagSeed, flagLogLevel = 60, 0, "info"
	flagConfig, flagDifficulty = "", ""
	flagAutoGame, flagAutoRounds, flagTapsPerSec, flagAutoAccuracy = bubbles.BlitzGameID, 1, 4, 0.9
	t.Cleanup(func() {
		bubbles.SetConfigPath("")
		bubbles.SetDifficultyPreset("")
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bubbles.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestListShowsBothGames(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"bubbles", "bubbles_blitz", "Bubble Pop Blitz"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigPrintsDefaultYAML(t *testing.T) {
	out, err := execute(t, "config", "bubbles_blitz")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "length_secs") {
		t.Errorf("expected YAML output, got:\n%s", out)
	}
}

func TestConfigUnknownGame(t *testing.T) {
	_, err := execute(t, "config", "tetris")
	if !errors.Is(err, registry.ErrUnknownGame) {
		t.Errorf("expected ErrUnknownGame, got %v", err)
	}
}

func TestPlayRejectsBadFlags(t *testing.T) {
	if _, err := execute(t, "play", "tetris"); !errors.Is(err, registry.ErrUnknownGame) {
		t.Errorf("unknown game: expected ErrUnknownGame, got %v", err)
	}
	if _, err := execute(t, "play", "bubbles", "--difficulty", "insane"); err == nil {
		t.Error("expected an error for an unknown difficulty")
	}
	if _, err := execute(t, "play", "bubbles", "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestAutoplayRecordsEveryRound(t *testing.T) {
	path := writeConfig(t, "round:\n  length_secs: 2\n  countdown_ms: 20\n  physics_tick_ms: 5\n")

	out, err := execute(t, "autoplay",
		"--game", bubbles.GameID,
		"--rounds", "2",
		"--taps-per-sec", "200",
		"--seed", "7",
		"--config", path,
		"--log-level", "error",
	)
	if err != nil {
		t.Fatalf("autoplay: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "RANK") {
		t.Fatalf("expected a header and two score rows, got:\n%s", out)
	}
}

func TestAutoplayValidatesFlags(t *testing.T) {
	if _, err := execute(t, "autoplay", "--rounds", "0"); err == nil {
		t.Error("expected an error for zero rounds")
	}
	if _, err := execute(t, "autoplay", "--taps-per-sec", "0"); err == nil {
		t.Error("expected an error for a zero tap rate")
	}
}
