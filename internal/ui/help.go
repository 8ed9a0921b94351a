package ui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/prcx/pkg/settings"
)

type helpEntry struct {
	keys string
	desc string
}

func helpEntries(mode settings.KeyMode) []helpEntry {
	nav := helpEntry{keys: "up/down", desc: "move selection (wraps around)"}
	back := helpEntry{keys: "left/backspace", desc: "go up one level"}
	if mode == settings.KeyModeVim {
		nav.keys = "j/k, up/down"
		back.keys = "h, left/backspace"
	}
	return []helpEntry{
		nav,
		{keys: "enter", desc: "open a struct/list, or edit the selected value"},
		back,
		{keys: "shift+up/down", desc: "increment/decrement the selected value"},
		{keys: "/", desc: "filter rows by name (regular expression)"},
		{keys: "tab / shift+tab", desc: "cycle label completions while editing"},
		{keys: "right", desc: "accept the highlighted completion"},
		{keys: "ctrl+o", desc: "open a document"},
		{keys: "ctrl+s", desc: "save the document"},
		{keys: "?", desc: "toggle this help"},
		{keys: "esc", desc: "cancel edit / close dialog / quit"},
	}
}

// renderHelp builds the help overlay text for the active key mode.
func renderHelp(s styles, mode settings.KeyMode) string {
	entries := helpEntries(mode)
	keyWidth := 0
	for _, e := range entries {
		if len(e.keys) > keyWidth {
			keyWidth = len(e.keys)
		}
	}

	var b strings.Builder
	b.WriteString(s.crumb.Render("Keys") + "\n\n")
	for _, e := range entries {
		pad := strings.Repeat(" ", keyWidth-len(e.keys))
		b.WriteString("  " + s.helpKey.Render(e.keys) + pad + "  " + s.helpValue.Render(e.desc) + "\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(0, 1)
	return box.Render(strings.TrimRight(b.String(), "\n"))
}
