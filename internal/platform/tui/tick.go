// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bubblepop/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen identifies the model that scheduled it; a session that swaps games
// uses it to drop ticks from a game that already ended.
type TickMsg struct {
	Gen uint64
	At  time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick message after the configured interval.
func tickCmd(cfg core.RuntimeConfig, gen uint64) tea.Cmd {
	return tea.Tick(cfg.TickInterval(), func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}
