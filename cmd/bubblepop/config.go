package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/registry"
)

var configCmd = &cobra.Command{
	Use:   "config [game]",
	Short: "Print a game's default config",
	Long: `Print the built-in YAML config of a game. Save it as
~/.bubblepop/configs/bubbles.yaml or ./configs/bubbles.yaml, or pass it
with --config, to tune rounds, spawning, scoring and difficulty.

Examples:
  bubblepop config
  bubblepop config bubbles > ./configs/bubbles.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	gameID := "bubbles"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("%w %q", registry.ErrUnknownGame, gameID)
	}

	data := config.GetDefaultYAML(gameID)
	if data == nil {
		return fmt.Errorf("game %q has no config", gameID)
	}
	_, err := cmd.OutOrStdout().Write(data)
	return err
}
