// Package table wraps the bubbles table component with typed rows and
// type-ahead filtering.
package table

import (
	"image/color"
	"strings"

	bubtable "charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Re-export the bubbles column/row types so callers can construct columns
// without importing bubbles directly.
type Column = bubtable.Column
type Row = bubtable.Row

// Model is a generic table component. Type parameter V is the row value type;
// toRow renders a value into display cells and keyFunc extracts the string
// the type-ahead filter matches against.
type Model[V any] struct {
	table    bubtable.Model
	styles   bubtable.Styles
	rows     []V
	filtered []V
	filter   string
	columns  []Column

	toRow   func(V) Row
	keyFunc func(V) string

	height  int
	focused bool
	noColor bool
}

// New creates a table model with the given columns and row conversion funcs.
func New[V any](columns []Column, toRow func(V) Row, keyFunc func(V) string) *Model[V] {
	t := bubtable.New(
		bubtable.WithColumns(columns),
		bubtable.WithFocused(true),
		bubtable.WithHeight(10),
	)

	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(0)
	s.Selected = s.Selected.
		PaddingLeft(0).
		PaddingRight(0)
	s.Cell = lipgloss.NewStyle().
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(0)
	t.SetStyles(s)

	return &Model[V]{
		table:   t,
		styles:  s,
		columns: columns,
		toRow:   toRow,
		keyFunc: keyFunc,
		height:  10,
		focused: true,
	}
}

// SetRows replaces the row data and reapplies the active filter.
func (m *Model[V]) SetRows(rows []V) {
	m.rows = rows
	m.applyFilter()
}

// SetColumns replaces the column layout.
func (m *Model[V]) SetColumns(columns []Column) {
	m.columns = columns
	m.table.SetColumns(columns)
}

// Rows returns the rows currently visible after filtering.
func (m *Model[V]) Rows() []V {
	return m.filtered
}

// SetFilter sets the type-ahead filter text. Matching is a case-insensitive
// prefix test against keyFunc output.
func (m *Model[V]) SetFilter(filter string) {
	m.filter = filter
	m.applyFilter()
}

// Filter returns the current filter text.
func (m *Model[V]) Filter() string {
	return m.filter
}

// ClearFilter removes the filter and shows all rows.
func (m *Model[V]) ClearFilter() {
	m.filter = ""
	m.applyFilter()
}

func (m *Model[V]) applyFilter() {
	if m.filter == "" {
		m.filtered = m.rows
	} else {
		want := strings.ToLower(m.filter)
		m.filtered = m.filtered[:0:0]
		for _, row := range m.rows {
			if strings.HasPrefix(strings.ToLower(m.keyFunc(row)), want) {
				m.filtered = append(m.filtered, row)
			}
		}
	}

	tableRows := make([]Row, len(m.filtered))
	for i, row := range m.filtered {
		tableRows[i] = m.toRow(row)
	}
	m.table.SetRows(tableRows)

	if m.Cursor() >= len(m.filtered) && len(m.filtered) > 0 {
		m.SetCursor(0)
	}
}

// Cursor returns the current cursor position within the filtered rows.
func (m *Model[V]) Cursor() int {
	return m.table.Cursor()
}

// SetCursor moves the cursor, scrolling the viewport as needed.
func (m *Model[V]) SetCursor(pos int) {
	m.table.SetCursor(pos)
}

// SelectedRow returns the row under the cursor, or nil when empty.
func (m *Model[V]) SelectedRow() *V {
	cursor := m.Cursor()
	if cursor < 0 || cursor >= len(m.filtered) {
		return nil
	}
	return &m.filtered[cursor]
}

// SetHeight sets the number of visible body rows.
func (m *Model[V]) SetHeight(height int) {
	m.height = height
	m.table.SetHeight(height)
}

// Focus gives the table keyboard focus.
func (m *Model[V]) Focus() {
	m.focused = true
	m.table.Focus()
}

// Blur removes keyboard focus.
func (m *Model[V]) Blur() {
	m.focused = false
	m.table.Blur()
}

// Focused reports whether the table has keyboard focus.
func (m *Model[V]) Focused() bool {
	return m.focused
}

// SetNoColor disables colors, keeping reverse video for the selection.
func (m *Model[V]) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.applyColorScheme(nil, nil)
}

// SetSelectionColors overrides the selected-row palette.
func (m *Model[V]) SetSelectionColors(fg, bg color.Color) {
	m.applyColorScheme(fg, bg)
}

func (m *Model[V]) applyColorScheme(selectedFG, selectedBG color.Color) {
	s := m.styles
	if m.noColor {
		s.Header = s.Header.UnsetForeground().UnsetBackground()
		s.Selected = s.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		s.Cell = s.Cell.UnsetForeground().UnsetBackground()
	} else {
		if selectedFG != nil {
			s.Selected = s.Selected.Foreground(selectedFG)
		}
		if selectedBG != nil {
			s.Selected = s.Selected.Background(selectedBG)
		}
	}
	m.table.SetStyles(s)
	m.styles = s
}

// Update forwards messages (cursor movement, paging) to the bubbles table.
func (m *Model[V]) Update(msg tea.Msg) (*Model[V], tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m *Model[V]) View() string {
	return m.table.View()
}
