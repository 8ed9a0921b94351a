// Package explorer implements the file picker used for opening and saving
// parameter documents.
package explorer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/prcx/internal/ui/table"
)

// Mode selects between open and save behavior.
type Mode int

const (
	ModeOpen Mode = iota
	ModeSave
)

// Entry is a single directory listing row.
type Entry struct {
	Name  string
	IsDir bool
}

// ChosenMsg is emitted when the user picks a file path. For ModeSave the
// path may not exist yet; the host decides whether to confirm an overwrite.
type ChosenMsg struct {
	Path string
	Mode Mode
}

// CancelledMsg is emitted when the user backs out of the explorer.
type CancelledMsg struct{}

// Model is the explorer component. In open mode typed characters build a
// type-ahead filter over the listing; in save mode they build the target
// filename.
type Model struct {
	mode     Mode
	dir      string
	table    *table.Model[Entry]
	filename string
	errMsg   string
	noColor  bool
}

// New creates an explorer rooted at startDir (the working directory when
// empty). For ModeSave, initialName pre-fills the filename buffer.
func New(mode Mode, startDir, initialName string) (*Model, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	columns := []table.Column{
		{Title: "NAME", Width: 48},
		{Title: "", Width: 8},
	}
	toRow := func(e Entry) table.Row {
		if e.IsDir {
			return table.Row{e.Name + string(filepath.Separator), "dir"}
		}
		return table.Row{e.Name, ""}
	}
	keyFunc := func(e Entry) string { return e.Name }

	m := &Model{
		mode:     mode,
		dir:      dir,
		table:    table.New(columns, toRow, keyFunc),
		filename: initialName,
	}
	if err := m.loadDir(); err != nil {
		return nil, err
	}
	return m, nil
}

// loadDir reads the current directory into the table, directories first.
func (m *Model) loadDir() error {
	dirents, err := os.ReadDir(m.dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", m.dir, err)
	}

	var dirs, files []Entry
	for _, de := range dirents {
		if strings.HasPrefix(de.Name(), ".") {
			continue
		}
		if de.IsDir() {
			dirs = append(dirs, Entry{Name: de.Name(), IsDir: true})
		} else {
			files = append(files, Entry{Name: de.Name()})
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	entries := make([]Entry, 0, len(dirs)+len(files)+1)
	if filepath.Dir(m.dir) != m.dir {
		entries = append(entries, Entry{Name: "..", IsDir: true})
	}
	entries = append(entries, dirs...)
	entries = append(entries, files...)

	m.table.ClearFilter()
	m.table.SetRows(entries)
	m.table.SetCursor(0)
	return nil
}

func (m *Model) descend(name string) {
	next := filepath.Join(m.dir, name)
	prev := m.dir
	m.dir = next
	if err := m.loadDir(); err != nil {
		m.dir = prev
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
}

func choose(path string, mode Mode) tea.Cmd {
	return func() tea.Msg { return ChosenMsg{Path: path, Mode: mode} }
}

func cancelled() tea.Msg { return CancelledMsg{} }

// Init implements tea-style component initialization.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles key messages. Non-key messages are forwarded to the table.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		_, cmd := m.table.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "esc":
		if m.table.Filter() != "" {
			m.table.ClearFilter()
			return m, nil
		}
		return m, cancelled

	case "enter":
		if m.mode == ModeSave && m.filename != "" {
			return m, choose(filepath.Join(m.dir, m.filename), m.mode)
		}
		sel := m.table.SelectedRow()
		if sel == nil {
			return m, nil
		}
		if sel.IsDir {
			m.descend(sel.Name)
			return m, nil
		}
		return m, choose(filepath.Join(m.dir, sel.Name), m.mode)

	case "backspace":
		if m.mode == ModeSave && m.filename != "" {
			runes := []rune(m.filename)
			m.filename = string(runes[:len(runes)-1])
			return m, nil
		}
		if f := m.table.Filter(); f != "" {
			runes := []rune(f)
			m.table.SetFilter(string(runes[:len(runes)-1]))
			return m, nil
		}
		m.descend("..")
		return m, nil

	case "left":
		m.descend("..")
		return m, nil

	case "up", "down", "pgup", "pgdown":
		_, cmd := m.table.Update(msg)
		return m, cmd
	}

	if text := keyText(keyMsg.String()); text != "" {
		if m.mode == ModeSave {
			m.filename += text
		} else {
			m.table.SetFilter(m.table.Filter() + text)
		}
		return m, nil
	}
	return m, nil
}

// keyText returns the literal text of a printable key press, or "".
func keyText(keyStr string) string {
	if keyStr == "space" {
		return " "
	}
	if runes := []rune(keyStr); len(runes) == 1 {
		return keyStr
	}
	return ""
}

// View renders the directory listing with a title, the current path, and a
// mode-specific input line.
func (m *Model) View() string {
	var b strings.Builder

	title := "Open document"
	if m.mode == ModeSave {
		title = "Save document"
	}
	titleStyle := lipgloss.NewStyle().Bold(true)
	if !m.noColor {
		titleStyle = titleStyle.Foreground(lipgloss.Color("81"))
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(m.dir + "\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.mode == ModeSave {
		b.WriteString("Save as: " + m.filename + "█\n")
	} else if f := m.table.Filter(); f != "" {
		b.WriteString("Filter: " + f + "\n")
	}
	if m.errMsg != "" {
		errStyle := lipgloss.NewStyle()
		if !m.noColor {
			errStyle = errStyle.Foreground(lipgloss.Color("203"))
		}
		b.WriteString(errStyle.Render(m.errMsg) + "\n")
	}
	return b.String()
}

// SetSize adjusts the listing height to the available window.
func (m *Model) SetSize(width, height int) {
	bodyHeight := height - 6
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.table.SetHeight(bodyHeight)
	nameWidth := width - 12
	if nameWidth < 20 {
		nameWidth = 20
	}
	m.table.SetColumns([]table.Column{
		{Title: "NAME", Width: nameWidth},
		{Title: "", Width: 8},
	})
}

// SetNoColor disables colored output.
func (m *Model) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.table.SetNoColor(noColor)
}

// Dir returns the directory currently shown.
func (m *Model) Dir() string {
	return m.dir
}

// Filename returns the save-mode filename buffer.
func (m *Model) Filename() string {
	return m.filename
}
