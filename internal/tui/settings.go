package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sadopc/ddt/internal/store"
)

// settingsModel lists the stored settings and edits them in a huh form.
type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// huh writes through these, so they outlive value copies of the model
	reportTopN      *string
	defaultCategory *string
}

func newSettingsModel(s *store.Store) settingsModel {
	return settingsModel{
		store:           s,
		reportTopN:      new(string),
		defaultCategory: new(string),
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
	err      error
}

func (s settingsModel) refresh() tea.Cmd {
	st := s.store
	return func() tea.Msg {
		all, err := st.GetAllSettings()
		return settingsDataMsg{settings: all, err: err}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		form, outcome, cmd := stepForm(s.form, msg)
		s.form = form
		s.formActive = outcome == formPending
		if outcome == formSubmitted {
			return s, s.saveSettings()
		}
		return s, cmd
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		if msg.err != nil {
			return s, statusCmd(fmt.Sprintf("Load error: %v", msg.err), true)
		}
		s.settings = msg.settings
	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter, keys.New) {
			return s.edit()
		}
	}
	return s, nil
}

// edit opens the form seeded with the effective values.
func (s settingsModel) edit() (settingsModel, tea.Cmd) {
	*s.reportTopN = strconv.Itoa(s.store.ReportTopN())
	*s.defaultCategory = s.store.DefaultCategory()

	s.form = newEditForm(
		huh.NewInput().Title("Decisions per weekly report").Value(s.reportTopN).Validate(validateTopN),
		huh.NewInput().Title("Default category").Value(s.defaultCategory).Validate(requireText("category")),
	)
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) saveSettings() tea.Cmd {
	st := s.store
	pending := []store.Setting{
		{Key: store.SettingReportTopN, Value: strings.TrimSpace(*s.reportTopN)},
		{Key: store.SettingDefaultCategory, Value: *s.defaultCategory},
	}
	return func() tea.Msg {
		status := statusMsg{text: "Settings saved"}
		for _, kv := range pending {
			if err := st.SetSetting(kv.Key, kv.Value); err != nil {
				status = statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
				break
			}
		}
		return mutationMsg{view: viewSettings, status: status}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4
	if s.formActive && s.form != nil {
		return framedForm("Settings", s.form, w)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings") + "\n\n")
	keyWidth := 0
	for _, kv := range s.settings {
		keyWidth = max(keyWidth, len(kv.Key))
	}
	for _, kv := range s.settings {
		fmt.Fprintf(&b, "  %-*s  %s\n", keyWidth, kv.Key,
			highlightStyle.Render(formatSettingValue(kv.Key, kv.Value)))
	}
	b.WriteString("\n" + mutedStyle.Render("enter: edit"))
	return panelStyle.Width(w).Render(b.String())
}

func formatSettingValue(k, v string) string {
	if k == store.SettingReportTopN {
		return v + " decisions"
	}
	return v
}
