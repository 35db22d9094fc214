// Package tui is the interactive terminal interface: an address list, a
// per-address inbox, and a message reader with rendered and raw views.
package tui

import (
	"github.com/pkg/errors"

	tea "github.com/charmbracelet/bubbletea"

	"tempmail-pro/app"
)

// Run starts the TUI and blocks until the user quits. State is persisted by
// the App on Close; Run only drives the interface.
func Run(a *app.App) error {
	m := NewModel(a)

	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return errors.Wrap(err, "running TUI")
	}

	if final, ok := finalModel.(Model); ok && final.err != nil {
		return final.err
	}
	return nil
}
