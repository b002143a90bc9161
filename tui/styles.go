// File: travelgo/tui/styles.go
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colPrimary = lipgloss.Color("#0EA5E9")
	colAccent  = lipgloss.Color("#F59E0B")
	colOK      = lipgloss.Color("#10B981")
	colDanger  = lipgloss.Color("#EF4444")
	colMuted   = lipgloss.Color("#6B7280")
	colText    = lipgloss.Color("#F9FAFB")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colPrimary).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colMuted)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colMuted).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colPrimary).
				Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colPrimary).
			Bold(true)

	priceStyle = lipgloss.NewStyle().
			Foreground(colAccent).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(colOK).
		Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(colDanger).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colMuted).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(colPrimary).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(colText).
			Bold(true)

	chipStyle = lipgloss.NewStyle().
			Foreground(colText).
			Padding(0, 1)

	chipActiveStyle = lipgloss.NewStyle().
			Foreground(colText).
			Background(colPrimary).
			Padding(0, 1)

	pendingStyle = lipgloss.NewStyle().
			Foreground(colMuted).
			Italic(true)
)

// starRating renders an integer rating out of five.
func starRating(rate int) string {
	if rate < 0 {
		rate = 0
	}
	if rate > 5 {
		rate = 5
	}
	out := ""
	for i := 0; i < 5; i++ {
		if i < rate {
			out += "★"
		} else {
			out += "☆"
		}
	}
	return out
}
