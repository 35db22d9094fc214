package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - dark cyan theme
	primaryColor   = lipgloss.Color("#1F97B6")
	secondaryColor = lipgloss.Color("#17A2D8")
	successColor   = lipgloss.Color("#10B981")
	warningColor   = lipgloss.Color("#F59E0B")
	errorColor     = lipgloss.Color("#DC3545")
	mutedColor     = lipgloss.Color("#6B7280")
	textColor      = lipgloss.Color("#F9FAFB")

	boxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Align(lipgloss.Left)

	titleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true).
			PaddingBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(textColor).
			PaddingBottom(1)

	choiceStyle = lipgloss.NewStyle()

	selectedStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(primaryColor).
			Padding(0, 1)

	countStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	unreadCountStyle = lipgloss.NewStyle().
				Foreground(secondaryColor).
				Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	tabStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(primaryColor).
			Bold(true).
			Padding(0, 2)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)
)
