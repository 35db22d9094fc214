package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMessage(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case TickMsg:
		// Auto-refresh sweep; reschedule with whatever interval is now set.
		return m, tea.Batch(m.refreshAllCmd(), tickCmd(m.refreshInterval))
	case RefreshedMsg:
		return m.handleRefreshed(msg)
	case AddressCreatedMsg:
		return m.handleAddressCreated(msg)
	case DomainsMsg:
		return m.handleDomains(msg)
	case InboxMsg:
		return m.handleInbox(msg)
	case MessageMsg:
		return m.handleMessage(msg)
	case CopiedMsg:
		m.status = fmt.Sprintf("Copied: %s", msg.Email)
		return m, statusExpiryCmd()
	case StatusExpiredMsg:
		m.status = ""
		return m, nil
	}

	return m, nil
}

// handleKeyMessage routes keys to the handler for the current screen.
func (m Model) handleKeyMessage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, from any screen.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case StateAddresses:
		return m.updateAddresses(msg)
	case StateProviderSelect:
		return m.updateProviderSelect(msg)
	case StateDomainSelect:
		return m.updateDomainSelect(msg)
	case StateIntervalSelect:
		return m.updateIntervalSelect(msg)
	case StateCreating:
		return m.updateCreating(msg)
	case StateInbox:
		return m.updateInbox(msg)
	case StateMessageLoading:
		return m.updateMessageLoading(msg)
	case StateMessage:
		return m.updateMessage(msg)
	case StateError:
		return m.updateError(msg)
	}

	return m, nil
}

// handleRefreshed applies a background sweep: address counters, the open
// inbox if any, and new-mail notices on the status line.
func (m Model) handleRefreshed(msg RefreshedMsg) (tea.Model, tea.Cmd) {
	m.addresses = msg.Addresses
	if m.cursor >= len(m.addresses) && m.cursor > 0 {
		m.cursor = len(m.addresses) - 1
	}

	if m.currentEmail != "" && (m.state == StateInbox || m.state == StateMessage) {
		for _, addr := range m.addresses {
			if addr.Email == m.currentEmail {
				m.messages = addr.Messages
				break
			}
		}
		// The sweep can shrink the inbox, e.g. when a session expires.
		if len(m.messages) == 0 {
			m.msgCursor = 0
		} else if m.msgCursor >= len(m.messages) {
			m.msgCursor = len(m.messages) - 1
		}
	}

	var cmd tea.Cmd
	if len(msg.Notices) > 0 {
		n := msg.Notices[len(msg.Notices)-1]
		m.status = fmt.Sprintf("New message for %s", n.Email)
		cmd = statusExpiryCmd()
	}
	return m, cmd
}

func (m Model) handleAddressCreated(msg AddressCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.state = StateError
		m.errorMsg = fmt.Sprintf("Error creating email: %v", msg.Err)
		return m, nil
	}

	m.addresses = m.app.Addresses()
	m.state = StateAddresses
	m.cursor = len(m.addresses) - 1
	m.status = fmt.Sprintf("Created: %s", msg.Address.Email)
	return m, statusExpiryCmd()
}

func (m Model) handleDomains(msg DomainsMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.state = StateError
		m.errorMsg = fmt.Sprintf("Error fetching domains: %v", msg.Err)
		return m, nil
	}

	m.domainChoices = msg.Domains
	m.domainCursor = 0
	m.state = StateDomainSelect
	return m, nil
}

func (m Model) handleInbox(msg InboxMsg) (tea.Model, tea.Cmd) {
	m.inboxBusy = false
	if msg.Err != nil {
		m.state = StateError
		m.errorMsg = fmt.Sprintf("Error refreshing messages: %v", msg.Err)
		return m, nil
	}
	if msg.Email != m.currentEmail {
		return m, nil
	}

	m.messages = msg.Messages
	if m.msgCursor >= len(m.messages) {
		m.msgCursor = 0
	}

	m.status = "Inbox refreshed"
	if msg.NewCount > 0 {
		m.status = fmt.Sprintf("%d new message(s)", msg.NewCount)
	}
	return m, statusExpiryCmd()
}

func (m Model) handleMessage(msg MessageMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.state = StateError
		m.errorMsg = fmt.Sprintf("Error loading message: %v", msg.Err)
		return m, nil
	}

	m.currentMsg = msg.Message
	m.rawView = false
	m.bodyScroll = 0
	m.state = StateMessage
	return m, nil
}
