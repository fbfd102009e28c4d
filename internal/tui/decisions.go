package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/report"
	"github.com/sadopc/ddt/internal/scoring"
	"github.com/sadopc/ddt/internal/store"
)

var ratingLabels = []string{"1 - minor", "2 - low", "3 - moderate", "4 - high", "5 - severe"}

type decisionsModel struct {
	store  *store.Store
	clock  calendar.Clock
	width  int
	height int

	items        []report.ScoredDecision
	cursor       int
	showResolved bool

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle    *string
	formCategory *string
	formImpact   *int
	formStress   *int
	formDue      *string
}

func newDecisionsModel(s *store.Store, clock calendar.Clock) decisionsModel {
	title, category, due := "", "", ""
	impact, stress := 3, 3
	return decisionsModel{
		store:        s,
		clock:        clock,
		formTitle:    &title,
		formCategory: &category,
		formImpact:   &impact,
		formStress:   &stress,
		formDue:      &due,
	}
}

func (d *decisionsModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type decisionsDataMsg struct {
	data scoredData
}

func (d decisionsModel) refresh() tea.Cmd {
	include := d.showResolved
	return func() tea.Msg {
		return decisionsDataMsg{data: loadScored(d.store, d.clock, include)}
	}
}

func (d decisionsModel) update(msg tea.Msg) (decisionsModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case decisionsDataMsg:
		if msg.data.err != nil {
			return d, statusCmd(fmt.Sprintf("Load error: %v", msg.data.err), true)
		}
		d.items = report.AppendResolved(msg.data.ranked, msg.data.resolved)
		if d.cursor >= len(d.items) {
			d.cursor = max(0, len(d.items)-1)
		}
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < len(d.items)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.New):
			return d.showNewForm()
		case key.Matches(msg, keys.Resolve):
			return d.resolveSelected()
		case key.Matches(msg, keys.ShowResolved):
			d.showResolved = !d.showResolved
			return d, d.refresh()
		}
	}
	return d, nil
}

func (d decisionsModel) selected() (report.ScoredDecision, bool) {
	if d.cursor < 0 || d.cursor >= len(d.items) {
		return report.ScoredDecision{}, false
	}
	return d.items[d.cursor], true
}

func (d decisionsModel) resolveSelected() (decisionsModel, tea.Cmd) {
	item, ok := d.selected()
	if !ok {
		return d, nil
	}
	if !item.Decision.Active() {
		return d, statusCmd(fmt.Sprintf("Decision #%d is already resolved", item.Decision.ID), true)
	}
	id := item.Decision.ID
	today := d.clock.Today()
	s := d.store
	return d, func() tea.Msg {
		ok, err := s.ResolveDecision(id, today)
		switch {
		case err != nil:
			return mutationMsg{view: viewDecisions, status: statusMsg{text: fmt.Sprintf("Resolve error: %v", err), isError: true}}
		case !ok:
			return mutationMsg{view: viewDecisions, status: statusMsg{text: fmt.Sprintf("Decision #%d not found or already resolved", id), isError: true}}
		}
		return mutationMsg{view: viewDecisions, status: statusMsg{text: fmt.Sprintf("Resolved decision #%d", id)}}
	}
}

func (d decisionsModel) showNewForm() (decisionsModel, tea.Cmd) {
	*d.formTitle = ""
	*d.formCategory = d.store.DefaultCategory()
	*d.formImpact = 3
	*d.formStress = 3
	*d.formDue = ""

	ratingOptions := make([]huh.Option[int], len(ratingLabels))
	for i, label := range ratingLabels {
		ratingOptions[i] = huh.NewOption(label, i+1)
	}

	d.form = newEditForm(
		huh.NewInput().Title("Title").Value(d.formTitle).Validate(requireText("title")),
		huh.NewInput().Title("Category").Value(d.formCategory).Validate(requireText("category")),
		huh.NewSelect[int]().Title("Impact").Options(ratingOptions...).Value(d.formImpact),
		huh.NewSelect[int]().Title("Stress").Options(ratingOptions...).Value(d.formStress),
		huh.NewInput().Title("Due date (YYYY-MM-DD, optional)").Value(d.formDue).Validate(validateOptionalDate),
	)

	d.formActive = true
	return d, d.form.Init()
}

func (d decisionsModel) updateForm(msg tea.Msg) (decisionsModel, tea.Cmd) {
	form, outcome, cmd := stepForm(d.form, msg)
	d.form = form
	d.formActive = outcome == formPending
	if outcome == formSubmitted {
		return d, d.createFromForm()
	}
	return d, cmd
}

func (d decisionsModel) createFromForm() tea.Cmd {
	n := store.NewDecision{
		Title:       *d.formTitle,
		Category:    *d.formCategory,
		Impact:      *d.formImpact,
		Stress:      *d.formStress,
		CreatedDate: d.clock.Today(),
	}
	due, err := calendar.ParseOptionalDate(strings.TrimSpace(*d.formDue))
	if err != nil {
		return statusCmd(err.Error(), true)
	}
	n.DueDate = due
	s := d.store
	return func() tea.Msg {
		created, err := s.CreateDecision(n)
		if err != nil {
			return mutationMsg{view: viewDecisions, status: statusMsg{text: fmt.Sprintf("Add error: %v", err), isError: true}}
		}
		return mutationMsg{view: viewDecisions, status: statusMsg{text: fmt.Sprintf("Added decision #%d: %s", created.ID, created.Title)}}
	}
}

func (d decisionsModel) view() string {
	w := d.width - 4
	if d.formActive && d.form != nil {
		return framedForm("New Decision", d.form, w)
	}

	title := titleStyle.Render("Decisions")
	if d.showResolved {
		title += mutedStyle.Render("  (including resolved)")
	}

	if len(d.items) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No decisions yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	titleWidth := max(10, w-62)
	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-5s %-*s %-12s %4s %5s %7s %-10s",
		"ID", titleWidth, "Title", "Category", "Debt", "Open", "Overdue", "Due")))

	for i, item := range d.items {
		dec := item.Decision
		cursor := "  "
		style := rowStyle
		if i == d.cursor {
			cursor = "> "
			style = selectedRowStyle
		}
		debt := debtStyle(item.Debt).Render(fmt.Sprintf("%4d", item.Debt))
		due := formatDue(dec)
		if !dec.Active() {
			debt = mutedStyle.Render("   -")
			due = "done " + calendar.FormatOptional(dec.ResolvedDate)
			style = mutedStyle
		}
		row := style.Render(fmt.Sprintf("%s#%-4d %-*s %-12s ",
			cursor, dec.ID, titleWidth, truncate(dec.Title, titleWidth), truncate(dec.Category, 12)))
		row += debt + style.Render(fmt.Sprintf(" %5d %7d %-10s", item.DaysOpen, item.OverdueDays, due))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  n: new  r: resolve  a: toggle resolved  impact/stress %d-%d",
		scoring.MinRating, scoring.MaxRating)))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
