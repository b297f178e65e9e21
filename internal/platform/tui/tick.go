// Package tui provides the Bubble Tea front end: the game loop, menus, the scoreboard
// and the Wish SSH server that hosts one session per connection.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pillbox/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickInterval is the wall-clock length of one step. It matches the
// simulated time the game advances per step.
func tickInterval(cfg core.RuntimeConfig) time.Duration {
	return time.Duration(cfg.StepMillis()) * time.Millisecond
}

func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(tickInterval(cfg), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
