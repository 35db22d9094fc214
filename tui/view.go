package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model
func (m Model) View() string {
	switch m.state {
	case StateAddresses:
		return m.viewAddresses()
	case StateProviderSelect:
		return m.viewProviderSelect()
	case StateDomainSelect:
		return m.viewDomainSelect()
	case StateIntervalSelect:
		return m.viewIntervalSelect()
	case StateCreating:
		return m.viewCreating()
	case StateInbox:
		return m.viewInbox()
	case StateMessageLoading:
		return m.viewMessageLoading()
	case StateMessage:
		return m.viewMessage()
	case StateError:
		return m.viewError()
	}

	return ""
}

// renderPage frames the screen content in the bordered box, with the
// transient status line below it.
func (m Model) renderPage(content string) string {
	if m.status != "" {
		content += "\n\n" + successStyle.Render(m.status)
	}

	if m.width <= 0 || m.height <= 0 {
		return boxStyle.Render(content)
	}

	marginHorizontal := 2
	marginVertical := 1

	contentWidth := m.width - (marginHorizontal * 2) - 2
	contentHeight := m.height - (marginVertical * 2) - 2

	if contentWidth < 50 {
		contentWidth = 50
	}
	if contentHeight < 10 {
		contentHeight = 10
	}

	mainStyle := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Align(lipgloss.Left)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(marginVertical, marginHorizontal).
		Render(mainStyle.Render(content))
}
