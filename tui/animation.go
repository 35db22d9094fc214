package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg fires the auto-refresh sweep.
type TickMsg time.Time

// StatusExpiredMsg clears the transient status line.
type StatusExpiredMsg struct{}

// tickCmd schedules the next auto-refresh tick.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// statusExpiryCmd clears the status line after a few seconds.
func statusExpiryCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return StatusExpiredMsg{}
	})
}
