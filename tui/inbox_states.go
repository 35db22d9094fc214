package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tempmail-pro/models"
	"tempmail-pro/utils"
)

// Inbox page: messages for the selected address, newest first.

// displayedMessages returns the inbox in display order (newest first).
func (m Model) displayedMessages() []models.MessageSummary {
	out := make([]models.MessageSummary, len(m.messages))
	for i, msg := range m.messages {
		out[len(m.messages)-1-i] = msg
	}
	return out
}

func (m Model) updateInbox(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	displayed := m.displayedMessages()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "b":
		m.state = StateAddresses
		m.currentEmail = ""
	case "up", "k":
		if m.msgCursor > 0 {
			m.msgCursor--
		}
	case "down", "j":
		if m.msgCursor < len(displayed)-1 {
			m.msgCursor++
		}
	case "r":
		m.inboxBusy = true
		return m, m.refreshInboxCmd(m.currentEmail)
	case "c":
		return m, copyCmd(m.currentEmail)
	case "enter", " ":
		if m.msgCursor < len(displayed) {
			m.state = StateMessageLoading
			return m, m.readMessageCmd(m.currentEmail, displayed[m.msgCursor].ID)
		}
	}

	return m, nil
}

func (m Model) viewInbox() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Inbox") + "\n")
	s.WriteString(subtitleStyle.Render(m.currentEmail) + "\n")

	if m.inboxBusy {
		s.WriteString(fmt.Sprintf("%s Checking messages...\n\n", m.spinner.View()))
	}

	displayed := m.displayedMessages()
	if len(displayed) == 0 && !m.inboxBusy {
		s.WriteString(helpStyle.Render("No messages yet. They usually arrive within seconds.") + "\n")
	}

	for i, msg := range displayed {
		cursor := " "
		subject := choiceStyle.Render(msg.Subject)
		if m.msgCursor == i {
			cursor = ">"
			subject = selectedStyle.Render(msg.Subject)
		}
		s.WriteString(cursor + " " + subject + "\n")
		meta := fmt.Sprintf("From: %s", msg.From)
		if msg.Date != "" {
			meta += " · " + utils.FormatTimestamp(msg.Date)
		}
		s.WriteString("   " + metaStyle.Render(meta) + "\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter open · r refresh · c copy address · esc back · q quit"))

	return m.renderPage(s.String())
}

// Message fetch in flight.

func (m Model) updateMessageLoading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.state = StateInbox
	}
	return m, nil
}

func (m Model) viewMessageLoading() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Inbox") + "\n")
	s.WriteString(fmt.Sprintf("%s Loading message...\n", m.spinner.View()))

	return m.renderPage(s.String())
}
