package cli

import "github.com/charmbracelet/lipgloss"

// styles are bound to the output writer's renderer, so piped or captured
// output carries no escape sequences.
type styles struct {
	heading lipgloss.Style
	muted   lipgloss.Style
	high    lipgloss.Style
	medium  lipgloss.Style
	low     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		heading: r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#666666")),
		high:    r.NewStyle().Foreground(lipgloss.Color("#E74C3C")).Bold(true),
		medium:  r.NewStyle().Foreground(lipgloss.Color("#F39C12")),
		low:     r.NewStyle().Foreground(lipgloss.Color("#2ECC71")),
	}
}

func (s styles) debt(v int) lipgloss.Style {
	switch {
	case v >= 60:
		return s.high
	case v >= 30:
		return s.medium
	default:
		return s.low
	}
}

func (s styles) health(v int) lipgloss.Style {
	switch {
	case v >= 70:
		return s.low
	case v >= 40:
		return s.medium
	default:
		return s.high
	}
}
