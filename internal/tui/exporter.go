package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/ddt/internal/calendar"
	"github.com/sadopc/ddt/internal/export"
	"github.com/sadopc/ddt/internal/report"
	"github.com/sadopc/ddt/internal/store"
)

type exportFormat struct {
	label string
	ext   string
}

var exportFormats = []exportFormat{
	{label: "CSV", ext: "csv"},
	{label: "JSON", ext: "json"},
}

// exportPicker is the overlay that chooses a format and writes every
// decision, resolved ones included, next to the weekly reports.
type exportPicker struct {
	store *store.Store
	clock calendar.Clock
	dir   string

	open   bool
	cursor int
}

func newExportPicker(s *store.Store, clock calendar.Clock, dir string) exportPicker {
	return exportPicker{store: s, clock: clock, dir: dir}
}

func (p exportPicker) show() exportPicker {
	p.open = true
	p.cursor = 0
	return p
}

func (p exportPicker) update(msg tea.KeyMsg) (exportPicker, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		p.cursor = max(0, p.cursor-1)
	case key.Matches(msg, keys.Down):
		p.cursor = min(len(exportFormats)-1, p.cursor+1)
	case key.Matches(msg, keys.Enter):
		p.open = false
		return p, p.write(exportFormats[p.cursor])
	case key.Matches(msg, keys.Back):
		p.open = false
	}
	return p, nil
}

func (p exportPicker) write(f exportFormat) tea.Cmd {
	return func() tea.Msg {
		data := loadScored(p.store, p.clock, true)
		if data.err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", data.err), isError: true}
		}
		if err := os.MkdirAll(p.dir, 0o755); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		items := report.AppendResolved(data.ranked, data.resolved)
		path := filepath.Join(p.dir, fmt.Sprintf("ddt-export-%s.%s", calendar.FormatDate(data.today), f.ext))

		var err error
		switch f.ext {
		case "csv":
			err = export.ToCSV(items, path)
		case "json":
			err = export.ToJSON(items, data.today, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("%s export error: %v", f.label, err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (p exportPicker) view(width int) string {
	rows := []string{titleStyle.Render("Export Format"), ""}
	for i, f := range exportFormats {
		if i == p.cursor {
			rows = append(rows, selectedRowStyle.Render("> "+f.label))
		} else {
			rows = append(rows, rowStyle.Render("  "+f.label))
		}
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))
	return pickerPanelStyle.Width(width).Render(strings.Join(rows, "\n"))
}
