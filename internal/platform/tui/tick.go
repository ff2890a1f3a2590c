// Package tui provides the Bubble Tea front end: the game loop, input
// mapping, rendering, the run browser and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd schedules the next tick after interval. The model feeds the
// wall-clock time of each TickMsg to a core.Clock, so late timers are made
// up with extra fixed steps instead of slowing the game down.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
