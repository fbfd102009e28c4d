package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/report"
	"github.com/sadopc/ddt/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewDecisions
	viewReports
	viewSettings
)

var viewNames = []string{"Dashboard", "Decisions", "Reports", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

type reportWrittenMsg struct {
	path string
}

// mutationMsg reports a finished write. The app shows its status and
// refreshes the view that owns the data.
type mutationMsg struct {
	view   viewState
	status statusMsg
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}

// --- Scoring snapshot ---

// scoredData is one recomputation of every active decision against today.
type scoredData struct {
	today    time.Time
	ranked   []report.ScoredDecision
	resolved []store.Decision
	summary  report.Summary
	err      error
}

// loadScored reads decisions and ranks them against the clock's today.
// Resolved decisions are only loaded when includeResolved is set.
func loadScored(s *store.Store, clock calendar.Clock, includeResolved bool) scoredData {
	today := clock.Today()
	decisions, err := s.ListDecisions(includeResolved)
	if err != nil {
		return scoredData{today: today, err: err}
	}
	ranked, err := report.Rank(decisions, today)
	if err != nil {
		return scoredData{today: today, err: err}
	}
	var resolved []store.Decision
	for _, d := range decisions {
		if !d.Active() {
			resolved = append(resolved, d)
		}
	}
	return scoredData{
		today:    today,
		ranked:   ranked,
		resolved: resolved,
		summary:  report.Summarize(ranked),
	}
}

// --- Helpers ---

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func formatDue(d store.Decision) string {
	if d.DueDate == nil {
		return "-"
	}
	return calendar.FormatDate(*d.DueDate)
}

func formatAverage(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
