package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/store"
)

var testClock = calendar.FixedClock(calendar.Date(2026, 2, 13))

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seed adds two decisions scoring 76 (#1) and 73 (#2) on 2026-02-13.
func seed(t *testing.T, s *store.Store) {
	t.Helper()
	due := calendar.Date(2026, 2, 1)
	for _, n := range []store.NewDecision{
		{Title: "Pick a framework", Category: "work", Impact: 5, Stress: 5, CreatedDate: calendar.Date(2026, 1, 14)},
		{Title: "Renew lease", Category: "home", Impact: 3, Stress: 3, CreatedDate: calendar.Date(2026, 1, 1), DueDate: &due},
	} {
		if _, err := s.CreateDecision(n); err != nil {
			t.Fatal(err)
		}
	}
}

func newTestApp(t *testing.T, s *store.Store) App {
	t.Helper()
	return NewApp(s, testClock, filepath.Join(t.TempDir(), "reports"))
}

func keyPress(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

// send delivers msg and runs every resulting command to completion.
func send(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	model, cmd := a.Update(msg)
	return drain(t, model.(App), cmd)
}

func drain(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 50 {
			t.Fatal("command queue did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		model, next := a.Update(msg)
		a = model.(App)
		queue = append(queue, next)
	}
	return a
}

// ============================================================
// Scoring snapshot
// ============================================================

func TestLoadScored(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	data := loadScored(s, testClock, false)
	if data.err != nil {
		t.Fatal(data.err)
	}
	if len(data.ranked) != 2 || data.ranked[0].Decision.ID != 1 || data.ranked[1].Decision.ID != 2 {
		t.Fatalf("unexpected ranking: %+v", data.ranked)
	}
	if data.summary.TotalDebt != 149 || data.summary.Health != 47 {
		t.Fatalf("unexpected summary: %+v", data.summary)
	}
	if !data.today.Equal(calendar.Date(2026, 2, 13)) {
		t.Fatalf("today = %v", data.today)
	}
}

func TestLoadScoredIncludesResolved(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	if _, err := s.ResolveDecision(2, calendar.Date(2026, 2, 10)); err != nil {
		t.Fatal(err)
	}

	data := loadScored(s, testClock, true)
	if len(data.ranked) != 1 || len(data.resolved) != 1 || data.resolved[0].ID != 2 {
		t.Fatalf("ranked=%d resolved=%d", len(data.ranked), len(data.resolved))
	}
	if data.summary.TotalDebt != 76 {
		t.Fatalf("resolved debt must not count, total = %d", data.summary.TotalDebt)
	}

	data = loadScored(s, testClock, false)
	if len(data.resolved) != 0 {
		t.Fatal("resolved decisions should not be loaded")
	}
}

// ============================================================
// App navigation
// ============================================================

func TestAppLoadingBeforeSize(t *testing.T) {
	a := newTestApp(t, newTestStore(t))
	if a.View() != "Loading..." {
		t.Fatalf("unexpected view %q", a.View())
	}

	a = send(t, a, tea.WindowSizeMsg{Width: 100, Height: 40})
	if !strings.Contains(a.View(), "Decision health score") {
		t.Fatal("dashboard should render after sizing")
	}
}

func TestAppTabNavigation(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	a := newTestApp(t, s)

	a = send(t, a, keyPress("2"))
	if a.activeView != viewDecisions {
		t.Fatalf("expected decisions view, got %d", a.activeView)
	}
	if len(a.decisions.items) != 2 {
		t.Fatalf("expected 2 decisions loaded, got %d", len(a.decisions.items))
	}

	a = send(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if a.activeView != viewReports {
		t.Fatalf("expected reports view, got %d", a.activeView)
	}

	a = send(t, a, tea.KeyMsg{Type: tea.KeyTab})
	a = send(t, a, tea.KeyMsg{Type: tea.KeyTab})
	if a.activeView != viewDashboard {
		t.Fatalf("tab should wrap to dashboard, got %d", a.activeView)
	}
	if a.dashboard.data.summary.Active != 2 {
		t.Fatalf("dashboard not refreshed: %+v", a.dashboard.data.summary)
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(t, newTestStore(t))
	_, cmd := a.Update(keyPress("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}
}

// ============================================================
// Decisions view
// ============================================================

func TestDecisionsResolveSelected(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	a := newTestApp(t, s)
	a = send(t, a, keyPress("2"))

	a = send(t, a, keyPress("r"))

	d, err := s.GetDecision(1)
	if err != nil {
		t.Fatal(err)
	}
	if d.ResolvedDate == nil || !d.ResolvedDate.Equal(calendar.Date(2026, 2, 13)) {
		t.Fatalf("decision #1 should be resolved today, got %v", d.ResolvedDate)
	}
	if a.status != "Resolved decision #1" || a.statusError {
		t.Fatalf("unexpected status %q", a.status)
	}
	if len(a.decisions.items) != 1 || a.decisions.items[0].Decision.ID != 2 {
		t.Fatal("resolved decision should drop from the active list")
	}
	if a.dashboard.data.summary.TotalDebt != 73 {
		t.Fatalf("dashboard total = %d, want 73", a.dashboard.data.summary.TotalDebt)
	}
}

func TestDecisionsToggleResolved(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	if _, err := s.ResolveDecision(1, calendar.Date(2026, 2, 1)); err != nil {
		t.Fatal(err)
	}
	a := newTestApp(t, s)
	a = send(t, a, keyPress("2"))
	if len(a.decisions.items) != 1 {
		t.Fatalf("expected only active decisions, got %d", len(a.decisions.items))
	}

	a = send(t, a, keyPress("a"))
	if !a.decisions.showResolved || len(a.decisions.items) != 2 {
		t.Fatalf("expected resolved decisions shown, got %d items", len(a.decisions.items))
	}
	last := a.decisions.items[1]
	if last.Decision.ID != 1 || last.Debt != 0 {
		t.Fatalf("resolved decision should follow active ones with no debt: %+v", last)
	}

	// resolving a resolved decision is refused
	a = send(t, a, keyPress("j"))
	a = send(t, a, keyPress("r"))
	if !a.statusError || !strings.Contains(a.status, "already resolved") {
		t.Fatalf("unexpected status %q", a.status)
	}
	d, _ := s.GetDecision(1)
	if !d.ResolvedDate.Equal(calendar.Date(2026, 2, 1)) {
		t.Fatal("resolved date must not change")
	}
}

func TestDecisionsCursorBounds(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	a := newTestApp(t, s)
	a = send(t, a, keyPress("2"))

	a = send(t, a, keyPress("k"))
	if a.decisions.cursor != 0 {
		t.Fatal("cursor should not go above the first row")
	}
	for i := 0; i < 5; i++ {
		a = send(t, a, keyPress("j"))
	}
	if a.decisions.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", a.decisions.cursor)
	}
}

func TestDecisionsNewFormOpensAndCancels(t *testing.T) {
	s := newTestStore(t)
	a := newTestApp(t, s)
	model, _ := a.Update(keyPress("2"))
	a = model.(App)

	model, _ = a.Update(keyPress("n"))
	a = model.(App)
	if !a.decisions.formActive || !a.isFormActive() {
		t.Fatal("n should open the add form")
	}
	if *a.decisions.formCategory != "general" {
		t.Fatalf("category should default from settings, got %q", *a.decisions.formCategory)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.decisions.formActive {
		t.Fatal("esc should close the form")
	}
}

func TestDecisionsCreateFromForm(t *testing.T) {
	s := newTestStore(t)
	m := newDecisionsModel(s, testClock)
	*m.formTitle = "  Call plumber "
	*m.formCategory = "home"
	*m.formImpact = 4
	*m.formStress = 2
	*m.formDue = "2026-03-01"

	msg, ok := m.createFromForm()().(mutationMsg)
	if !ok || msg.status.isError || msg.view != viewDecisions {
		t.Fatalf("unexpected message: %+v", msg)
	}
	list, err := s.ListDecisions(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Title != "Call plumber" || list[0].Impact != 4 || list[0].Stress != 2 {
		t.Fatalf("unexpected decisions: %+v", list)
	}
	if !list[0].CreatedDate.Equal(calendar.Date(2026, 2, 13)) || list[0].DueDate == nil {
		t.Fatalf("dates not set: %+v", list[0])
	}
}

func TestDecisionsCreateFromFormBadDue(t *testing.T) {
	s := newTestStore(t)
	m := newDecisionsModel(s, testClock)
	*m.formTitle = "X"
	*m.formCategory = "c"
	*m.formDue = "next week"

	msg, ok := m.createFromForm()().(statusMsg)
	if !ok || !msg.isError || !strings.Contains(msg.text, "next week") {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if list, _ := s.ListDecisions(true); len(list) != 0 {
		t.Fatal("nothing should be written")
	}
}

func TestFormValidators(t *testing.T) {
	if requireText("title")("   ") == nil {
		t.Error("blank title should fail")
	}
	if requireText("title")("ok") != nil {
		t.Error("title should pass")
	}
	if validateOptionalDate("") != nil || validateOptionalDate(" 2026-02-13 ") != nil {
		t.Error("empty and valid dates should pass")
	}
	if validateOptionalDate("13/02/2026") == nil {
		t.Error("bad date should fail")
	}
	for _, bad := range []string{"0", "x", "101", "500"} {
		if validateTopN(bad) == nil {
			t.Errorf("validateTopN(%q) should fail", bad)
		}
	}
	for _, good := range []string{" 5 ", "1", "100"} {
		if err := validateTopN(good); err != nil {
			t.Errorf("validateTopN(%q): %v", good, err)
		}
	}
}

// ============================================================
// Reports view
// ============================================================

func TestReportsView(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	a := newTestApp(t, s)
	a = send(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	a = send(t, a, keyPress("3"))

	if a.reports.topN != store.DefaultReportTopN {
		t.Fatalf("topN = %d", a.reports.topN)
	}
	view := a.reports.view()
	for _, want := range []string{"2026-W07", "Pick a framework", "Renew lease"} {
		if !strings.Contains(view, want) {
			t.Errorf("reports view missing %q", want)
		}
	}
	if a.reports.chart.View() == "" {
		t.Error("chart should render")
	}
}

func TestReportsWriteReport(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	a := newTestApp(t, s)
	a = send(t, a, keyPress("3"))
	a = send(t, a, keyPress("w"))

	path := filepath.Join(a.reportsDir, "2026-W07.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "Pick a framework") {
		t.Fatal("report should list the top decision")
	}
	if a.status != "Wrote report: "+path {
		t.Fatalf("unexpected status %q", a.status)
	}
}

// ============================================================
// Settings view
// ============================================================

func TestSettingsRefreshAndSave(t *testing.T) {
	s := newTestStore(t)
	a := newTestApp(t, s)
	a = send(t, a, keyPress("4"))
	if len(a.settings.settings) != 2 {
		t.Fatalf("expected 2 settings, got %d", len(a.settings.settings))
	}

	m := a.settings
	*m.reportTopN = " 5 "
	*m.defaultCategory = " home "
	a = send(t, a, m.saveSettings()())
	if a.statusError || a.status != "Settings saved" {
		t.Fatalf("unexpected status %q", a.status)
	}
	if s.ReportTopN() != 5 || s.DefaultCategory() != "home" {
		t.Fatalf("settings not stored: %d %q", s.ReportTopN(), s.DefaultCategory())
	}
	if !strings.Contains(a.settings.view(), "5 decisions") {
		t.Fatal("settings view should show the new value")
	}
}

func TestSettingsFormSeedsAndCancels(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting(store.SettingReportTopN, "7"); err != nil {
		t.Fatal(err)
	}
	a := newTestApp(t, s)
	a = send(t, a, keyPress("4"))
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = model.(App)
	if !a.settings.formActive || !a.isFormActive() {
		t.Fatal("enter should open the settings form")
	}
	if *a.settings.reportTopN != "7" {
		t.Fatalf("form should be seeded from the store, got %q", *a.settings.reportTopN)
	}

	model, _ = a.Update(keyPress("q"))
	a = model.(App)
	if !a.settings.formActive {
		t.Fatal("an open form should swallow q")
	}
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.settings.formActive || a.settings.form != nil {
		t.Fatal("esc should close the form")
	}
}

func TestSettingsSaveInvalid(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	*m.reportTopN = "500"
	*m.defaultCategory = "home"

	msg := m.saveSettings()().(mutationMsg)
	if !msg.status.isError {
		t.Fatal("out of range top N should fail")
	}
	if s.ReportTopN() != store.DefaultReportTopN {
		t.Fatal("invalid value must not be stored")
	}
}

// ============================================================
// Export
// ============================================================

func TestExportCSV(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	if _, err := s.ResolveDecision(2, calendar.Date(2026, 2, 10)); err != nil {
		t.Fatal(err)
	}
	a := newTestApp(t, s)

	msg, ok := a.exporter.write(exportFormats[0])().(exportDoneMsg)
	if !ok {
		t.Fatal("expected export to succeed")
	}
	if msg.path != filepath.Join(a.reportsDir, "ddt-export-2026-02-13.csv") {
		t.Fatalf("path = %q", msg.path)
	}
	data, err := os.ReadFile(msg.path)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
}

func TestExportPicker(t *testing.T) {
	s := newTestStore(t)
	a := newTestApp(t, s)
	a = send(t, a, keyPress("e"))
	if !a.exporter.open {
		t.Fatal("e should open the export picker")
	}
	a = send(t, a, keyPress("j"))
	if a.exporter.cursor != 1 {
		t.Fatal("cursor should move to JSON")
	}
	a = send(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.exporter.open {
		t.Fatal("picker should close")
	}
	path := filepath.Join(a.reportsDir, "ddt-export-2026-02-13.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("json export missing: %v", err)
	}
	if a.status != "Exported to "+path {
		t.Fatalf("unexpected status %q", a.status)
	}
}

// ============================================================
// Helpers
// ============================================================

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a longer title", 6, "a lon…"},
		{"héllo wörld", 5, "héll…"},
		{"abc", 1, "…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
