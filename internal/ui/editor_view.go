package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/prcx/internal/hash40"
)

func (m *Model) View() tea.View {
	var body string
	switch m.mode {
	case modeExplorer:
		body = m.browser.View()
	case modeHelp:
		body = renderHelp(m.styles, m.cfg.KeyMode)
	default:
		body = m.editorView()
	}

	v := tea.NewView(body)
	v.AltScreen = true
	// Needed for modifier detection (shift+up/down, shift+tab).
	v.KeyboardEnhancements.ReportEventTypes = true
	return v
}

func (m *Model) editorView() string {
	var b strings.Builder

	b.WriteString(m.headerLine() + "\n")
	b.WriteString(m.styles.separator.Render(strings.Repeat("─", m.width)) + "\n")

	if !m.eng.Loaded() {
		b.WriteString("\n  No document loaded. Press ctrl+o to open one, ? for help.\n")
	} else {
		b.WriteString(m.rows.View() + "\n")
		if label := m.eng.FilterLabel(); label != "" {
			shown := len(m.eng.Rows())
			b.WriteString(m.styles.filter.Render(fmt.Sprintf("filter /%s/ (%d rows)", label, shown)) + "\n")
		}
	}

	if m.mode == modeFilter {
		b.WriteString("Filter: " + m.filter.View() + "\n")
	}
	if edit := m.eng.Editing(); edit != nil {
		b.WriteString(m.editLine() + "\n")
	}
	if m.mode == modeConfirm {
		b.WriteString(m.styles.warnText.Render(m.confirm.prompt+" [y/n]") + "\n")
	}
	if m.status != "" {
		b.WriteString(m.statusLine() + "\n")
	}
	b.WriteString(m.footerLine())
	return b.String()
}

// headerLine renders the document name, the breadcrumb trail, and a dirty
// marker.
func (m *Model) headerLine() string {
	name := "prcx"
	if m.docPath != "" {
		name = m.docPath
	}
	if m.dirty {
		name += " *"
	}

	crumbs := append([]string{"root"}, m.eng.Breadcrumbs()...)
	trail := strings.Join(crumbs, " > ")
	line := name + "  " + m.styles.crumb.Render(trail)
	return clampLineWidth(line, m.width)
}

// editLine renders the in-progress edit: the target row, the buffer, and for
// hash edits the resolution state plus completion candidates.
func (m *Model) editLine() string {
	edit := m.eng.Editing()
	row, _ := m.eng.CurrentRow()

	prompt := fmt.Sprintf("edit %s (%s): ",
		m.styles.name.Render(row.Name), m.styles.typeTag.Render(row.TypeTag))
	line := prompt + m.styles.value.Render(edit.Buffer) + "█"

	var notes []string
	if edit.Hash {
		switch edit.Status {
		case hash40.StatusLabelExists, hash40.StatusHashLiteral:
			notes = append(notes, m.styles.okText.Render(m.res.Resolve(edit.Buffer).Hash.Hex()))
		case hash40.StatusLabelNotExists:
			notes = append(notes, m.styles.warnText.Render("new label"))
		case hash40.StatusLabelsUnavailable:
			notes = append(notes, m.styles.warnText.Render("no label table"))
		case hash40.StatusInvalidHex:
			notes = append(notes, m.styles.errText.Render("invalid hex"))
		}
		if hint := completionHint(edit.Matches, edit.Candidate); hint != "" {
			notes = append(notes, m.styles.helpValue.Render(hint))
		}
	}
	if edit.Err != "" {
		notes = append(notes, m.styles.errText.Render(edit.Err))
	}
	if len(notes) > 0 {
		line += "  " + strings.Join(notes, "  ")
	}
	return clampLineWidth(line, m.width)
}

// completionHint shows nearby candidates with the cursor position marked.
func completionHint(matches []string, candidate int) string {
	if len(matches) == 0 {
		return ""
	}
	const window = 3
	start := 0
	if candidate > window-1 {
		start = candidate - (window - 1)
	}
	end := start + window
	if end > len(matches) {
		end = len(matches)
	}

	parts := make([]string, 0, window+1)
	for i := start; i < end; i++ {
		if i == candidate {
			parts = append(parts, "["+matches[i]+"]")
		} else {
			parts = append(parts, matches[i])
		}
	}
	if end < len(matches) {
		parts = append(parts, fmt.Sprintf("(+%d)", len(matches)-end))
	}
	return "tab: " + strings.Join(parts, " ")
}

func (m *Model) statusLine() string {
	line := runewidth.Truncate(m.status, m.width, "…")
	switch m.statusKind {
	case statusError:
		return m.styles.errText.Render(line)
	case statusWarn:
		return m.styles.warnText.Render(line)
	case statusOK:
		return m.styles.okText.Render(line)
	default:
		return m.styles.footer.Render(line)
	}
}

func (m *Model) footerLine() string {
	hints := "enter edit/open · backspace up · / filter · shift+↑↓ adjust · ctrl+o open · ctrl+s save · ? help · esc quit"
	return m.styles.footer.Render(runewidth.Truncate(hints, m.width, "…"))
}
