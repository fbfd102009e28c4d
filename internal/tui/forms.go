package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/store"
)

type formOutcome int

const (
	formPending formOutcome = iota
	formSubmitted
	formCancelled
)

// stepForm feeds msg to an open huh form. Esc cancels before huh sees it.
func stepForm(f *huh.Form, msg tea.Msg) (*huh.Form, formOutcome, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Back) {
		return nil, formCancelled, nil
	}
	next, cmd := f.Update(msg)
	if nf, ok := next.(*huh.Form); ok {
		f = nf
	}
	if f.State == huh.StateCompleted {
		return nil, formSubmitted, nil
	}
	return f, formPending, cmd
}

func newEditForm(fields ...huh.Field) *huh.Form {
	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
}

// framedForm draws an open form inside a titled panel.
func framedForm(title string, f *huh.Form, width int) string {
	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", f.View()),
	)
}

func requireText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	_, err := calendar.ParseOptionalDate(strings.TrimSpace(s))
	return err
}

func validateTopN(v string) error {
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err != nil || n < 1 || n > store.MaxReportTopN {
		return fmt.Errorf("enter a whole number from 1 to %d", store.MaxReportTopN)
	}
	return nil
}
