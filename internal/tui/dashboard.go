package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/report"
	"github.com/sadopc/ddt/internal/store"
)

const dashboardTopN = 5

type dashboardModel struct {
	store  *store.Store
	clock  calendar.Clock
	width  int
	height int

	data scoredData
}

func newDashboardModel(s *store.Store, clock calendar.Clock) dashboardModel {
	return dashboardModel{
		store: s,
		clock: clock,
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	data scoredData
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		return dashboardDataMsg{data: loadScored(d.store, d.clock, false)}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(dashboardDataMsg); ok {
		d.data = msg.data
		if msg.data.err != nil {
			return d, statusCmd(fmt.Sprintf("Load error: %v", msg.data.err), true)
		}
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4
	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderHealthPanel(contentWidth),
		d.renderSummaryPanel(contentWidth),
		d.renderDriversPanel(contentWidth),
	)
}

func (d dashboardModel) renderHealthPanel(w int) string {
	health := d.data.summary.Health
	if d.data.today.IsZero() {
		health = 100
	}
	score := scoreStyle.Width(w - 6).Foreground(healthStyle(health).GetForeground()).
		Render(fmt.Sprintf("%d/100", health))
	label := mutedStyle.Render("Decision health score")
	week := ""
	if !d.data.today.IsZero() {
		week = highlightStyle.Render(calendar.ISOWeekKey(d.data.today) + "  " + calendar.FormatDate(d.data.today))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, score, label, week)
	style := panelStyle
	if health < shakyHealth {
		style = alertPanelStyle
	}
	return style.Width(w).Render(content)
}

func (d dashboardModel) renderSummaryPanel(w int) string {
	s := d.data.summary
	title := titleStyle.Render("Summary")
	rows := []string{
		title,
		fmt.Sprintf("  %-18s %s", "Active decisions", highlightStyle.Render(fmt.Sprint(s.Active))),
		fmt.Sprintf("  %-18s %s", "Total debt", highlightStyle.Render(fmt.Sprint(s.TotalDebt))),
		fmt.Sprintf("  %-18s %s", "Average debt", highlightStyle.Render(formatAverage(s.AverageDebt))),
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderDriversPanel(w int) string {
	title := titleStyle.Render("Top debt drivers")
	top := report.Top(d.data.ranked, dashboardTopN)
	if len(top) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No active decisions. Press 2 then n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	titleWidth := max(10, w-40)
	var rows []string
	rows = append(rows, title)
	for i, r := range top {
		debt := debtStyle(r.Debt).Render(fmt.Sprintf("%3d", r.Debt))
		row := fmt.Sprintf("  %d. %s  %-*s %s",
			i+1,
			debt,
			titleWidth,
			truncate(r.Decision.Title, titleWidth),
			mutedStyle.Render(fmt.Sprintf("%dd open", r.DaysOpen)),
		)
		if r.OverdueDays > 0 {
			row += heavyStyle.Render(fmt.Sprintf("  %dd overdue", r.OverdueDays))
		}
		rows = append(rows, row)
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
