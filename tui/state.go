package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tempmail-pro/app"
	"tempmail-pro/models"
)

// AppState represents the current screen of the application
type AppState int

const (
	StateAddresses AppState = iota
	StateProviderSelect
	StateDomainSelect
	StateIntervalSelect
	StateCreating
	StateInbox
	StateMessageLoading
	StateMessage
	StateError
)

// refreshChoices are the selectable auto-refresh intervals, spanning the
// supported 1-60 second range.
var refreshChoices = []time.Duration{
	1 * time.Second, 2 * time.Second, 3 * time.Second, 5 * time.Second,
	10 * time.Second, 15 * time.Second, 20 * time.Second, 30 * time.Second,
	45 * time.Second, 60 * time.Second,
}

// Model is the main TUI model
type Model struct {
	app   *app.App
	state AppState

	width  int
	height int

	// Address page
	addresses []models.Address
	cursor    int

	// Creation flow
	providerChoices  []string
	providerCursor   int
	selectedProvider string
	domainChoices    []string
	domainCursor     int

	// Refresh interval
	refreshInterval time.Duration
	intervalCursor  int

	// Inbox page
	currentEmail string
	messages     []models.MessageSummary
	msgCursor    int
	inboxBusy    bool

	// Message page
	currentMsg models.Message
	rawView    bool
	bodyScroll int

	// Transient status line and error banner
	status   string
	errorMsg string

	spinner spinner.Model

	err error
}

// NewModel creates the TUI model around a running application.
func NewModel(a *app.App) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	interval := a.Config.RefreshInterval
	cursor := 0
	for i, d := range refreshChoices {
		if d == interval {
			cursor = i
			break
		}
	}

	return Model{
		app:             a,
		state:           StateAddresses,
		addresses:       a.Addresses(),
		providerChoices: a.ProviderNames(),
		refreshInterval: interval,
		intervalCursor:  cursor,
		spinner:         sp,
	}
}

// Init implements tea.Model: start the spinner and the auto-refresh loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd(m.refreshInterval))
}
