package tui

import (
	"context"
	"os"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"

	"tempmail-pro/models"
	"tempmail-pro/poller"
)

// requestTimeout bounds every provider call made from the TUI so a stuck
// service can never freeze the interface.
const requestTimeout = 30 * time.Second

// AddressCreatedMsg reports the result of minting a new address.
type AddressCreatedMsg struct {
	Address models.Address
	Err     error
}

// DomainsMsg carries the domain list for the provider being configured.
type DomainsMsg struct {
	Provider string
	Domains  []string
	Err      error
}

// InboxMsg carries a refreshed message listing for one address.
type InboxMsg struct {
	Email    string
	Messages []models.MessageSummary
	NewCount int
	Err      error
}

// MessageMsg carries a fully fetched message.
type MessageMsg struct {
	Message models.Message
	Err     error
}

// RefreshedMsg reports a background sweep over all addresses.
type RefreshedMsg struct {
	Addresses []models.Address
	Notices   []poller.Notice
}

// CopiedMsg confirms a clipboard write.
type CopiedMsg struct {
	Email string
}

func (m Model) createAddressCmd(providerName, domain string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		addr, err := m.app.CreateAddress(ctx, providerName, domain)
		return AddressCreatedMsg{Address: addr, Err: err}
	}
}

func (m Model) fetchDomainsCmd(providerName string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		domains, err := m.app.Domains(ctx, providerName)
		return DomainsMsg{Provider: providerName, Domains: domains, Err: err}
	}
}

func (m Model) refreshInboxCmd(email string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		msgs, newCount, err := m.app.RefreshAddress(ctx, email)
		return InboxMsg{Email: email, Messages: msgs, NewCount: newCount, Err: err}
	}
}

func (m Model) readMessageCmd(email, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		msg, err := m.app.ReadMessage(ctx, email, id)
		return MessageMsg{Message: msg, Err: err}
	}
}

// refreshAllCmd sweeps every tracked address, as the auto-refresh timer does.
func (m Model) refreshAllCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		notices := m.app.RefreshAll(ctx)
		return RefreshedMsg{Addresses: m.app.Addresses(), Notices: notices}
	}
}

// copyCmd writes the address to the system clipboard with an OSC 52
// sequence. stderr bypasses bubbletea's renderer but still reaches the
// terminal, which is what interprets the sequence.
func copyCmd(email string) tea.Cmd {
	return func() tea.Msg {
		osc52.New(email).WriteTo(os.Stderr)
		return CopiedMsg{Email: email}
	}
}
