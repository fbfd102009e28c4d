package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/report"
	"github.com/sadopc/ddt/internal/scoring"
	"github.com/sadopc/ddt/internal/store"
)

type reportsModel struct {
	store      *store.Store
	clock      calendar.Clock
	reportsDir string
	width      int
	height     int

	data  scoredData
	topN  int
	chart barchart.Model
}

func newReportsModel(s *store.Store, clock calendar.Clock, reportsDir string) reportsModel {
	return reportsModel{
		store:      s,
		clock:      clock,
		reportsDir: reportsDir,
		topN:       store.DefaultReportTopN,
		chart:      barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	r.buildChart()
}

type reportsDataMsg struct {
	data scoredData
	topN int
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return reportsDataMsg{
			data: loadScored(r.store, r.clock, false),
			topN: r.store.ReportTopN(),
		}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		if msg.data.err != nil {
			return r, statusCmd(fmt.Sprintf("Load error: %v", msg.data.err), true)
		}
		r.data = msg.data
		r.topN = msg.topN
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.WriteReport) {
			return r, r.writeReport()
		}
	}
	return r, nil
}

// writeReport rescores against today and writes this week's Markdown file.
func (r reportsModel) writeReport() tea.Cmd {
	return func() tea.Msg {
		data := loadScored(r.store, r.clock, false)
		if data.err != nil {
			return statusMsg{text: fmt.Sprintf("Report error: %v", data.err), isError: true}
		}
		weekly := report.NewWeekly(calendar.ISOWeekKey(data.today), data.today, data.ranked, r.store.ReportTopN())
		path, err := report.WriteMarkdown(weekly, r.reportsDir)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Report error: %v", err), isError: true}
		}
		return reportWrittenMsg{path: path}
	}
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight, barchart.WithMaxValue(scoring.MaxDebt))

	var bars []barchart.BarData
	for _, item := range report.Top(r.data.ranked, r.topN) {
		bars = append(bars, barchart.BarData{
			Label: fmt.Sprintf("#%d", item.Decision.ID),
			Values: []barchart.BarValue{{
				Name:  item.Decision.Title,
				Value: float64(item.Debt),
				Style: debtStyle(item.Debt),
			}},
		})
	}
	if len(bars) == 0 {
		bars = []barchart.BarData{{
			Label:  "",
			Values: []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}},
		}}
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	week := ""
	if !r.data.today.IsZero() {
		week = calendar.ISOWeekKey(r.data.today)
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Weekly report"), "  ",
		highlightStyle.Render(week), "  ",
		mutedStyle.Render(fmt.Sprintf("top %d  →  %s", r.topN, r.reportsDir)),
	)

	nav := mutedStyle.Render("  w: write this week's report")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderTable(w), "", nav,
		),
	)
}

func (r reportsModel) renderTable(w int) string {
	top := report.Top(r.data.ranked, r.topN)
	if len(top) == 0 {
		return mutedStyle.Render("  No active decisions.")
	}

	titleWidth := max(10, min(w-50, 40))
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-5s %-*s %-12s %4s %5s %7s %-10s",
		"ID", titleWidth, "Title", "Category", "Debt", "Open", "Overdue", "Due")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, titleWidth+52))))

	for _, item := range top {
		dec := item.Decision
		rows = append(rows, fmt.Sprintf("  #%-4d %-*s %-12s %s %5d %7d %-10s",
			dec.ID,
			titleWidth, truncate(dec.Title, titleWidth),
			truncate(dec.Category, 12),
			debtStyle(item.Debt).Render(fmt.Sprintf("%4d", item.Debt)),
			item.DaysOpen,
			item.OverdueDays,
			formatDue(dec),
		))
	}

	s := r.data.summary
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  Active %d   Total debt %d   Health %s",
		s.Active, s.TotalDebt, healthStyle(s.Health).Render(fmt.Sprintf("%d/100", s.Health))))
	return strings.Join(rows, "\n")
}
