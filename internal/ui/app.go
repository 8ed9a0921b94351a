// Package ui implements the terminal front end: a Bubble Tea model that
// drives the editing engine and renders the parameter table.
package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/prcx/internal/engine"
	"github.com/oakwood-commons/prcx/internal/hash40"
	"github.com/oakwood-commons/prcx/internal/ui/explorer"
	"github.com/oakwood-commons/prcx/internal/ui/table"
	"github.com/oakwood-commons/prcx/pkg/loader"
	"github.com/oakwood-commons/prcx/pkg/settings"
)

// mode is the top-level input mode of the application.
type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeExplorer
	modeConfirm
	modeHelp
)

type statusKind int

const (
	statusNone statusKind = iota
	statusInfo
	statusOK
	statusWarn
	statusError
)

// pendingAction is what a confirm dialog resolves to on "y".
type pendingAction int

const (
	actionNone pendingAction = iota
	actionQuit
	actionOpenExplorer
	actionOverwrite
)

type confirmState struct {
	prompt string
	action pendingAction
	path   string
}

// Model is the root Bubble Tea model. All document mutation goes through the
// engine; the model owns presentation state and file dialogs.
type Model struct {
	eng *engine.Engine
	res *hash40.Resolver
	log *logr.Logger
	cfg *settings.Run

	mode    mode
	theme   Theme
	styles  styles
	rows    *table.Model[engine.RowView]
	filter  textinput.Model
	browser *explorer.Model
	confirm confirmState

	docPath string
	dirty   bool

	status     string
	statusKind statusKind

	width  int
	height int
}

// NewModel builds the root model. The engine starts without a document; use
// OpenDocument or the in-app explorer to load one.
func NewModel(res *hash40.Resolver, cfg *settings.Run, log *logr.Logger) *Model {
	theme := DefaultTheme()
	st := newStyles(theme, cfg.NoColor)

	columns := []table.Column{
		{Title: "NAME", Width: 32},
		{Title: "TYPE", Width: 8},
		{Title: "VALUE", Width: 36},
	}
	toRow := func(r engine.RowView) table.Row { return table.Row{r.Name, r.TypeTag, r.Value} }
	keyFunc := func(r engine.RowView) string { return r.Name }
	rows := table.New(columns, toRow, keyFunc)
	rows.SetNoColor(cfg.NoColor)
	if !cfg.NoColor {
		rows.SetSelectionColors(theme.SelectedFG, theme.SelectedBG)
	}

	filter := textinput.New()
	filter.Placeholder = "regular expression"
	filter.CharLimit = 128

	return &Model{
		eng:    engine.New(res),
		res:    res,
		log:    log,
		cfg:    cfg,
		theme:  theme,
		styles: st,
		rows:   rows,
		filter: filter,
		width:  80,
		height: 24,
	}
}

// OpenDocument loads a YAML parameter document into the engine.
func (m *Model) OpenDocument(path string) error {
	root, err := loader.LoadDocumentFile(path, m.res)
	if err != nil {
		return err
	}
	m.eng.Load(root)
	m.docPath = path
	m.dirty = false
	m.syncRows()
	m.setStatus(statusInfo, fmt.Sprintf("opened %s", filepath.Base(path)))
	m.log.V(1).Info("document opened", "path", path, "rows", len(m.eng.Rows()))
	return nil
}

// Engine exposes the underlying engine, primarily for tests.
func (m *Model) Engine() *engine.Engine {
	return m.eng
}

// Dirty reports whether the document has unsaved edits.
func (m *Model) Dirty() bool {
	return m.dirty
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m *Model) clearStatus() {
	m.statusKind = statusNone
	m.status = ""
}

// syncRows mirrors the engine's projection and cursor into the display table.
func (m *Model) syncRows() {
	m.rows.SetRows(m.eng.Rows())
	if cursor := m.eng.Cursor(); cursor >= 0 {
		m.rows.SetCursor(cursor)
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		return m, nil

	case explorer.ChosenMsg:
		return m.handleExplorerChoice(msg)

	case explorer.CancelledMsg:
		m.mode = modeBrowse
		m.browser = nil
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeHelp:
			m.mode = modeBrowse
			return m, nil
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeFilter:
			return m.updateFilter(msg)
		case modeExplorer:
			var cmd tea.Cmd
			m.browser, cmd = m.browser.Update(msg)
			return m, cmd
		default:
			return m.updateBrowse(msg)
		}
	}

	if m.mode == modeFilter {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateBrowse handles keys in the main editing view.
func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	editing := m.eng.Editing() != nil

	if !editing {
		switch keyStr {
		case "ctrl+o":
			return m.startOpen()
		case "ctrl+s":
			return m.startSave()
		case "?":
			m.mode = modeHelp
			return m, nil
		case "/":
			if m.eng.Loaded() {
				m.mode = modeFilter
				m.filter.SetValue(m.eng.FilterLabel())
				m.filter.CursorEnd()
				return m, m.filter.Focus()
			}
			return m, nil
		}
	}

	ev, ok := translateKey(keyStr, m.cfg.KeyMode, !editing)
	if !ok {
		return m, nil
	}

	switch m.eng.HandleInput(ev) {
	case engine.DocumentEdited:
		m.dirty = true
		m.clearStatus()
	case engine.RequestExit:
		if m.dirty {
			m.confirm = confirmState{
				prompt: "Discard unsaved changes and quit?",
				action: actionQuit,
			}
			m.mode = modeConfirm
			return m, nil
		}
		return m, tea.Quit
	case engine.Ignored:
		if ev.Code == engine.KeyBackspace || ev.Code == engine.KeyLeft {
			m.setStatus(statusInfo, "already at the top level")
		}
	}
	m.syncRows()
	return m, nil
}

// updateFilter handles keys while the name filter input is focused.
func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.filter.Blur()
		return m, nil
	case "enter":
		pattern := m.filter.Value()
		if pattern == "" {
			m.eng.SetFilter(nil, "")
			m.mode = modeBrowse
			m.filter.Blur()
			m.clearStatus()
			m.syncRows()
			return m, nil
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			m.setStatus(statusError, fmt.Sprintf("bad pattern: %v", err))
			return m, nil
		}
		m.eng.SetFilter(re.MatchString, pattern)
		m.mode = modeBrowse
		m.filter.Blur()
		m.clearStatus()
		m.syncRows()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

// updateConfirm handles the yes/no dialog.
func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		confirm := m.confirm
		m.confirm = confirmState{}
		m.mode = modeBrowse
		switch confirm.action {
		case actionQuit:
			return m, tea.Quit
		case actionOpenExplorer:
			return m.openExplorer(explorer.ModeOpen)
		case actionOverwrite:
			m.savePath(confirm.path)
			return m, nil
		}
		return m, nil
	case "n", "N", "esc":
		m.confirm = confirmState{}
		m.mode = modeBrowse
		return m, nil
	}
	return m, nil
}

func (m *Model) startOpen() (tea.Model, tea.Cmd) {
	if m.dirty {
		m.confirm = confirmState{
			prompt: "Discard unsaved changes and open another document?",
			action: actionOpenExplorer,
		}
		m.mode = modeConfirm
		return m, nil
	}
	return m.openExplorer(explorer.ModeOpen)
}

func (m *Model) startSave() (tea.Model, tea.Cmd) {
	if !m.eng.Loaded() {
		m.setStatus(statusWarn, "nothing to save")
		return m, nil
	}
	return m.openExplorer(explorer.ModeSave)
}

func (m *Model) openExplorer(emode explorer.Mode) (tea.Model, tea.Cmd) {
	startDir := "."
	initialName := ""
	if m.docPath != "" {
		startDir = filepath.Dir(m.docPath)
		if emode == explorer.ModeSave {
			initialName = filepath.Base(m.docPath)
		}
	}
	browser, err := explorer.New(emode, startDir, initialName)
	if err != nil {
		m.setStatus(statusError, err.Error())
		return m, nil
	}
	browser.SetNoColor(m.cfg.NoColor)
	browser.SetSize(m.width, m.height)
	m.browser = browser
	m.mode = modeExplorer
	return m, nil
}

func (m *Model) handleExplorerChoice(msg explorer.ChosenMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	m.browser = nil

	if msg.Mode == explorer.ModeOpen {
		if err := m.OpenDocument(msg.Path); err != nil {
			m.setStatus(statusError, fmt.Sprintf("open failed: %v", err))
			m.log.Error(err, "document open failed", "path", msg.Path)
		}
		return m, nil
	}

	if _, err := os.Stat(msg.Path); err == nil {
		m.confirm = confirmState{
			prompt: fmt.Sprintf("Overwrite %s?", filepath.Base(msg.Path)),
			action: actionOverwrite,
			path:   msg.Path,
		}
		m.mode = modeConfirm
		return m, nil
	}
	m.savePath(msg.Path)
	return m, nil
}

func (m *Model) savePath(path string) {
	doc := m.eng.Document()
	if err := loader.SaveDocumentFile(path, &doc, m.res); err != nil {
		m.setStatus(statusError, fmt.Sprintf("save failed: %v", err))
		m.log.Error(err, "document save failed", "path", path)
		return
	}
	m.docPath = path
	m.dirty = false
	m.setStatus(statusOK, fmt.Sprintf("saved %s", filepath.Base(path)))
	m.log.V(1).Info("document saved", "path", path)
}

func (m *Model) applyLayout() {
	// header, separator, filter line, edit line, status, footer
	bodyHeight := m.height - 7
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.rows.SetHeight(bodyHeight)

	nameWidth := (m.width - 10) / 2
	if nameWidth < 16 {
		nameWidth = 16
	}
	valueWidth := m.width - nameWidth - 12
	if valueWidth < 16 {
		valueWidth = 16
	}
	m.rows.SetColumns([]table.Column{
		{Title: "NAME", Width: nameWidth},
		{Title: "TYPE", Width: 8},
		{Title: "VALUE", Width: valueWidth},
	})
	if m.browser != nil {
		m.browser.SetSize(m.width, m.height)
	}
}
