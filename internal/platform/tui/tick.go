// Package tui provides the Bubble Tea integration for local and SSH play.
// It handles the terminal UI loop, held-key input, the results leaderboard
// and the Wish server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd schedules the next tick. The model converts the elapsed wall time
// into fixed steps, so a late tick is caught up rather than lost.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
