package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tempmail-pro/app"
	"tempmail-pro/utils"
)

// Message page: the fetched message with a rendered view and a raw JSON
// view, toggled with tab.

func (m Model) updateMessage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "b":
		m.state = StateInbox
	case "tab":
		m.rawView = !m.rawView
		m.bodyScroll = 0
	case "up", "k":
		if m.bodyScroll > 0 {
			m.bodyScroll--
		}
	case "down", "j":
		m.bodyScroll++
	case "pgup":
		m.bodyScroll -= 10
		if m.bodyScroll < 0 {
			m.bodyScroll = 0
		}
	case "pgdn":
		m.bodyScroll += 10
	}

	return m, nil
}

func (m Model) updateError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter", "esc":
		m.errorMsg = ""
		m.state = StateAddresses
	}
	return m, nil
}

func (m Model) viewMessage() string {
	var s strings.Builder

	tabs := tabStyle.Render("Rendered") + activeTabStyle.Render("Raw")
	if !m.rawView {
		tabs = activeTabStyle.Render("Rendered") + tabStyle.Render("Raw")
	}
	s.WriteString(tabs + "\n\n")

	var body string
	if m.rawView {
		body = app.RawJSON(m.currentMsg)
	} else {
		s.WriteString(titleStyle.Render(m.currentMsg.Subject) + "\n")
		meta := fmt.Sprintf("From: %s", m.currentMsg.From)
		if m.currentMsg.Date != "" {
			meta += "\nDate: " + utils.FormatTimestamp(m.currentMsg.Date)
		}
		meta += "\nSize: " + utils.FormatSize(m.currentMsg.Size)
		s.WriteString(metaStyle.Render(meta) + "\n")
		s.WriteString(metaStyle.Render(strings.Repeat("─", 50)) + "\n")

		body = m.currentMsg.Body
		if m.currentMsg.HTML {
			body = utils.RenderHTML(body)
		}
	}

	s.WriteString(m.scrollBody(body))
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("tab toggle view · ↑/↓ scroll · esc back · q quit"))

	return m.renderPage(s.String())
}

// scrollBody windows the body text by the current scroll offset.
func (m Model) scrollBody(body string) string {
	lines := strings.Split(body, "\n")

	visible := m.height - 14 // header, tabs, help line, borders
	if visible < 5 {
		visible = 5
	}

	offset := m.bodyScroll
	maxOffset := len(lines) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}

	end := offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	windowed := strings.Join(lines[offset:end], "\n")

	if maxOffset > 0 {
		windowed += "\n" + helpStyle.Render(fmt.Sprintf("(%d/%d)", end, len(lines)))
	}
	return windowed
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(errorStyle.Render("Error") + "\n\n")
	s.WriteString(m.errorMsg + "\n\n")
	s.WriteString(helpStyle.Render("enter dismiss · q quit"))

	return m.renderPage(s.String())
}
