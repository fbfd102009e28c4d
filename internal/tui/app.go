// Package tui is the interactive terminal view over the decision store.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/store"
)

// refreshInterval rescores the visible view so debt follows the calendar.
const refreshInterval = time.Minute

// chromeHeight is the space taken by the header and footer.
const chromeHeight = 4

// App is the root Bubble Tea model.
type App struct {
	reportsDir string
	width      int
	height     int

	activeView viewState
	help       help.Model
	exporter   exportPicker

	dashboard dashboardModel
	decisions decisionsModel
	reports   reportsModel
	settings  settingsModel

	status      string
	statusError bool
}

func NewApp(s *store.Store, clock calendar.Clock, reportsDir string) App {
	return App{
		reportsDir: reportsDir,
		activeView: viewDashboard,
		help:       help.New(),
		exporter:   newExportPicker(s, clock, reportsDir),
		dashboard:  newDashboardModel(s, clock),
		decisions:  newDecisionsModel(s, clock),
		reports:    newReportsModel(s, clock, reportsDir),
		settings:   newSettingsModel(s),
	}
}

// Run starts the interactive UI and blocks until the user quits.
func Run(s *store.Store, clock calendar.Clock, reportsDir string) error {
	_, err := tea.NewProgram(NewApp(s, clock, reportsDir), tea.WithAltScreen()).Run()
	return err
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.dashboard.loadData(), scheduleRefresh())
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tickMsg:
		if a.isFormActive() {
			return a, scheduleRefresh()
		}
		return a, tea.Batch(scheduleRefresh(), a.refreshView(a.activeView))

	case statusMsg:
		a.setStatus(msg)
		return a, nil

	case mutationMsg:
		a.setStatus(msg.status)
		if msg.view == viewDashboard {
			return a, a.dashboard.loadData()
		}
		// the footer health comes from the dashboard snapshot
		return a, tea.Batch(a.refreshView(msg.view), a.dashboard.loadData())

	case reportWrittenMsg:
		a.setStatus(statusMsg{text: "Wrote report: " + msg.path})
		return a, nil

	case exportDoneMsg:
		a.exporter.open = false
		a.setStatus(statusMsg{text: "Exported to " + msg.path})
		return a, nil

	// Data messages always reach their own view, whichever tab is active.
	case dashboardDataMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd
	case decisionsDataMsg:
		var cmd tea.Cmd
		a.decisions, cmd = a.decisions.update(msg)
		return a, cmd
	case reportsDataMsg:
		var cmd tea.Cmd
		a.reports, cmd = a.reports.update(msg)
		return a, cmd
	case settingsDataMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd
	}

	return a.forward(msg)
}

func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	a.help.Width = w
	body := h - chromeHeight
	a.dashboard.setSize(w, body)
	a.decisions.setSize(w, body)
	a.reports.setSize(w, body)
	a.settings.setSize(w, body)
}

func (a *App) setStatus(s statusMsg) {
	a.status = s.text
	a.statusError = s.isError
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.exporter.open {
		var cmd tea.Cmd
		a.exporter, cmd = a.exporter.update(msg)
		return a, cmd
	}
	// An open form owns every key, including q and the tab digits.
	if a.isFormActive() {
		return a.forward(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil
	case key.Matches(msg, keys.Export):
		a.exporter = a.exporter.show()
		return a, nil
	case key.Matches(msg, keys.Tab):
		return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
	}
	for v, b := range []key.Binding{keys.Tab1, keys.Tab2, keys.Tab3, keys.Tab4} {
		if key.Matches(msg, b) {
			return a.switchTo(viewState(v))
		}
	}
	return a.forward(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshView(v)
}

// forward hands msg to the active view.
func (a App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewDecisions:
		a.decisions, cmd = a.decisions.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDecisions:
		return a.decisions.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshView(v viewState) tea.Cmd {
	switch v {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewDecisions:
		return a.decisions.refresh()
	case viewReports:
		return a.reports.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()
	bodyHeight := max(1, a.height-lipgloss.Height(header)-lipgloss.Height(footer))

	var body string
	switch {
	case a.exporter.open:
		body = a.exporter.view(a.width - 4)
	case a.activeView == viewDashboard:
		body = a.dashboard.view()
	case a.activeView == viewDecisions:
		body = a.decisions.view()
	case a.activeView == viewReports:
		body = a.reports.view()
	case a.activeView == viewSettings:
		body = a.settings.view()
	}
	body = lipgloss.NewStyle().Width(a.width).Height(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// spread pins left and right to the two edges of the terminal.
func (a App) spread(left, right string, margin int) string {
	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-margin)
	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, lipgloss.NewStyle().Width(gap).Render(""), right)
}

func (a App) renderHeader() string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		style := inactiveTabStyle
		if viewState(i) == a.activeView {
			style = activeTabStyle
		}
		tabs[i] = style.Render(fmt.Sprintf("%d %s", i+1, name))
	}
	brand := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("ddt")
	return barStyle.Render(a.spread(brand, lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...), 4))
}

func (a App) renderFooter() string {
	var right string
	if snap := a.dashboard.data; !snap.today.IsZero() {
		right = healthStyle(snap.summary.Health).Render(fmt.Sprintf(" health %d", snap.summary.Health))
	}
	if a.status != "" {
		style := mutedStyle
		if a.statusError {
			style = heavyStyle
		}
		right += style.Render(" " + a.status)
	}
	return a.spread(footerStyle.Render(a.help.View(keys)), right, 2)
}
