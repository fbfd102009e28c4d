package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// decisions
	New, Resolve, ShowResolved key.Binding
	// output
	WriteReport, Export key.Binding
	// views
	Tab1, Tab2, Tab3, Tab4, Tab key.Binding
	// general
	Help, Enter, Back, Up, Down, Quit key.Binding
}

// bind shows the first key in help unless label is set.
func bind(desc, label string, ks ...string) key.Binding {
	if label == "" {
		label = ks[0]
	}
	return key.NewBinding(key.WithKeys(ks...), key.WithHelp(label, desc))
}

var keys = keyMap{
	New:          bind("new decision", "", "n"),
	Resolve:      bind("resolve", "", "r"),
	ShowResolved: bind("toggle resolved", "", "a"),
	WriteReport:  bind("write weekly report", "", "w"),
	Export:       bind("export csv/json", "", "e"),

	Tab1: bind("dashboard", "", "1"),
	Tab2: bind("decisions", "", "2"),
	Tab3: bind("reports", "", "3"),
	Tab4: bind("settings", "", "4"),
	Tab:  bind("cycle views", "", "tab"),

	Help:  bind("more keys", "", "?"),
	Enter: bind("confirm", "", "enter"),
	Back:  bind("cancel", "", "esc"),
	Up:    bind("up", "↑/k", "up", "k"),
	Down:  bind("down", "↓/j", "down", "j"),
	Quit:  bind("quit", "", "q", "ctrl+c"),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Resolve, k.WriteReport, k.Export, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Resolve, k.ShowResolved},
		{k.WriteReport, k.Export},
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Tab},
		{k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}
