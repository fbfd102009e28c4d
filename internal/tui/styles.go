package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorMuted     = lipgloss.Color("#666666")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")

	// debt levels, low to high
	colorCalm   = lipgloss.Color("#2ECC71")
	colorUneasy = lipgloss.Color("#F39C12")
	colorHeavy  = lipgloss.Color("#E74C3C")
)

// Debt thresholds for colouring; health uses the inverse scale.
const (
	heavyDebt   = 60
	uneasyDebt  = 30
	goodHealth  = 70
	shakyHealth = 40
)

var (
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 2)

	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).Padding(1, 2)

	// alertPanelStyle frames panels that need attention.
	alertPanelStyle  = panelStyle.BorderForeground(colorHeavy)
	pickerPanelStyle = panelStyle.BorderForeground(colorPrimary)

	scoreStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight)
	calmStyle      = lipgloss.NewStyle().Foreground(colorCalm)
	uneasyStyle    = lipgloss.NewStyle().Foreground(colorUneasy)
	heavyStyle     = lipgloss.NewStyle().Foreground(colorHeavy)

	barStyle    = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = barStyle.Foreground(colorMuted)

	selectedRowStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	rowStyle         = lipgloss.NewStyle().Foreground(colorFg)
)

// debtStyle colours a 0-100 debt score.
func debtStyle(debt int) lipgloss.Style {
	switch {
	case debt >= heavyDebt:
		return heavyStyle
	case debt >= uneasyDebt:
		return uneasyStyle
	default:
		return calmStyle
	}
}

func healthStyle(health int) lipgloss.Style {
	switch {
	case health >= goodHealth:
		return calmStyle
	case health >= shakyHealth:
		return uneasyStyle
	default:
		return heavyStyle
	}
}
