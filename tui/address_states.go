package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Address page: the home screen listing every tracked address.

func (m Model) updateAddresses(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.addresses)-1 {
			m.cursor++
		}
	case "n":
		m.providerCursor = 0
		for i, name := range m.providerChoices {
			if name == m.app.Config.DefaultProvider {
				m.providerCursor = i
				break
			}
		}
		m.state = StateProviderSelect
	case "i":
		m.state = StateIntervalSelect
	case "c":
		if m.cursor < len(m.addresses) {
			return m, copyCmd(m.addresses[m.cursor].Email)
		}
	case "d", "x":
		if m.cursor < len(m.addresses) {
			email := m.addresses[m.cursor].Email
			m.app.DeleteAddress(email)
			m.addresses = m.app.Addresses()
			if m.cursor >= len(m.addresses) && m.cursor > 0 {
				m.cursor--
			}
			m.status = fmt.Sprintf("Deleted: %s", email)
			return m, statusExpiryCmd()
		}
	case "r":
		return m, m.refreshAllCmd()
	case "enter", " ":
		if m.cursor < len(m.addresses) {
			addr := m.addresses[m.cursor]
			m.currentEmail = addr.Email
			m.messages = addr.Messages
			m.msgCursor = 0
			m.inboxBusy = true
			m.state = StateInbox
			return m, m.refreshInboxCmd(addr.Email)
		}
	}

	return m, nil
}

func (m Model) viewAddresses() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("TempMail Pro") + "\n")
	s.WriteString(subtitleStyle.Render("Disposable addresses across multiple providers") + "\n")

	if len(m.addresses) == 0 {
		s.WriteString(warningStyle.Render("No addresses yet. Press n to create one.") + "\n")
	}

	for i, addr := range m.addresses {
		cursor := " "
		email := choiceStyle.Render(addr.Email)
		if m.cursor == i {
			cursor = ">"
			email = selectedStyle.Render(addr.Email)
		}

		counter := countStyle.Render(fmt.Sprintf("%d messages", addr.MessageCount()))
		if addr.MessageCount() > 0 {
			counter = unreadCountStyle.Render(fmt.Sprintf("%d messages", addr.MessageCount()))
		}

		s.WriteString(fmt.Sprintf("%s %s %s\n", cursor, email, badgeStyle.Render(addr.Provider)))
		s.WriteString("   " + counter + "\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(fmt.Sprintf("auto-refresh: every %s", m.refreshInterval)) + "\n")
	s.WriteString(helpStyle.Render("enter open · n new · c copy · d delete · r refresh · i interval · q quit"))

	return m.renderPage(s.String())
}

// Provider selection for a new address.

func (m Model) updateProviderSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.state = StateAddresses
	case "up", "k":
		if m.providerCursor > 0 {
			m.providerCursor--
		}
	case "down", "j":
		if m.providerCursor < len(m.providerChoices)-1 {
			m.providerCursor++
		}
	case "enter", " ":
		m.selectedProvider = m.providerChoices[m.providerCursor]
		return m, m.fetchDomainsCmd(m.selectedProvider)
	}

	return m, nil
}

func (m Model) viewProviderSelect() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("New Address") + "\n")
	s.WriteString(subtitleStyle.Render("Choose a provider") + "\n")

	for i, name := range m.providerChoices {
		cursor := " "
		choice := choiceStyle.Render(name)
		if m.providerCursor == i {
			cursor = ">"
			choice = selectedStyle.Render(name)
		}
		s.WriteString(cursor + " " + choice + "\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter select · esc back · q quit"))

	return m.renderPage(s.String())
}

// Domain selection. The first choice lets the provider pick.

const autoDomainChoice = "(let the provider choose)"

func (m Model) updateDomainSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	choices := m.domainSelectChoices()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.state = StateProviderSelect
	case "up", "k":
		if m.domainCursor > 0 {
			m.domainCursor--
		}
	case "down", "j":
		if m.domainCursor < len(choices)-1 {
			m.domainCursor++
		}
	case "enter", " ":
		domain := ""
		if m.domainCursor > 0 {
			domain = choices[m.domainCursor]
		}
		m.state = StateCreating
		return m, m.createAddressCmd(m.selectedProvider, domain)
	}

	return m, nil
}

func (m Model) domainSelectChoices() []string {
	return append([]string{autoDomainChoice}, m.domainChoices...)
}

func (m Model) viewDomainSelect() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("New Address") + "\n")
	s.WriteString(subtitleStyle.Render(fmt.Sprintf("Choose a domain on %s", m.selectedProvider)) + "\n")

	for i, domain := range m.domainSelectChoices() {
		cursor := " "
		choice := choiceStyle.Render(domain)
		if m.domainCursor == i {
			cursor = ">"
			choice = selectedStyle.Render(domain)
		}
		s.WriteString(cursor + " " + choice + "\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter create · esc back · q quit"))

	return m.renderPage(s.String())
}

// Refresh interval selection.

func (m Model) updateIntervalSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.state = StateAddresses
	case "up", "k":
		if m.intervalCursor > 0 {
			m.intervalCursor--
		}
	case "down", "j":
		if m.intervalCursor < len(refreshChoices)-1 {
			m.intervalCursor++
		}
	case "enter", " ":
		m.refreshInterval = refreshChoices[m.intervalCursor]
		m.state = StateAddresses
		m.status = fmt.Sprintf("Auto-refresh every %s", m.refreshInterval)
		return m, statusExpiryCmd()
	}

	return m, nil
}

func (m Model) viewIntervalSelect() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Auto-Refresh Interval") + "\n")
	s.WriteString(subtitleStyle.Render("How often to check every inbox") + "\n")

	for i, d := range refreshChoices {
		cursor := " "
		label := d.String()
		choice := choiceStyle.Render(label)
		if m.intervalCursor == i {
			cursor = ">"
			choice = selectedStyle.Render(label)
		}
		s.WriteString(cursor + " " + choice + "\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter select · esc back · q quit"))

	return m.renderPage(s.String())
}

// Creation in flight.

func (m Model) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) viewCreating() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("New Address") + "\n")
	s.WriteString(fmt.Sprintf("%s Creating address on %s...\n", m.spinner.View(), m.selectedProvider))

	return m.renderPage(s.String())
}
