package engine

import (
	"github.com/oakwood-commons/prcx/internal/hash40"
	"github.com/oakwood-commons/prcx/internal/param"
)

// defaultPrefixLimit caps autocomplete match lists against very large label
// corpora.
const defaultPrefixLimit = 100

// Engine is the parameter-tree editing core. It is single-threaded and
// synchronous: one input event is fully processed before the next is
// accepted. The only shared state it touches is the resolver's label corpus,
// which is read-only.
type Engine struct {
	resolver    *hash40.Resolver
	levels      []*level
	prefixLimit int
}

// New creates an engine with no document loaded.
func New(resolver *hash40.Resolver) *Engine {
	return &Engine{resolver: resolver, prefixLimit: defaultPrefixLimit}
}

// Load replaces the current document and navigation stack wholesale and
// resets selection to the root level. The root must be a composite node;
// handing the engine a terminal root is a host bug.
func (e *Engine) Load(root param.Node) {
	if !root.IsComposite() {
		panic("engine: document root must be a composite node")
	}
	e.levels = []*level{newLevel(root, -1, "", e.resolver)}
}

// Loaded reports whether a document is present.
func (e *Engine) Loaded() bool {
	return len(e.levels) > 0
}

func (e *Engine) active() *level {
	return e.levels[len(e.levels)-1]
}

// HandleInput is the engine's sole mutation entry point.
func (e *Engine) HandleInput(ev Event) Response {
	if !e.Loaded() {
		if ev.Code == KeyEscape {
			return RequestExit
		}
		return Ignored
	}
	lvl := e.active()
	if lvl.edit != nil {
		return e.handleEdit(lvl, ev)
	}
	switch ev.Code {
	case KeyUp:
		if ev.Mods&ModShift != 0 {
			return e.cycleValue(lvl, +1)
		}
		lvl.move(-1)
		return Consumed
	case KeyDown:
		if ev.Mods&ModShift != 0 {
			return e.cycleValue(lvl, -1)
		}
		lvl.move(+1)
		return Consumed
	case KeyEnter:
		row, ok := lvl.currentRow()
		if !ok {
			return Consumed
		}
		if row.IsComposite {
			e.enter(lvl, row)
		} else {
			e.beginEdit(lvl, row)
		}
		return Consumed
	case KeyBackspace, KeyLeft:
		if !e.exit() {
			// Already at root: hand the event back so the host can surface it.
			return Ignored
		}
		return Consumed
	case KeyEscape:
		return RequestExit
	default:
		return Ignored
	}
}

// cycleValue applies the increment/decrement shortcut to the row under the
// cursor without entering edit mode. Bool and bounded integers wrap at the
// type's bounds; other kinds ignore the shortcut.
func (e *Engine) cycleValue(lvl *level, dir int) Response {
	row, ok := lvl.currentRow()
	if !ok {
		return Consumed
	}
	child := lvl.node.ChildAt(row.SourceIndex)
	if !param.Cyclable(child) {
		return Consumed
	}
	if dir > 0 {
		param.Increment(child)
	} else {
		param.Decrement(child)
	}
	lvl.refresh(e.resolver)
	return DocumentEdited
}

// enter drills into the composite child behind the given row: the payload is
// taken out of its parent slot and becomes a new active level.
func (e *Engine) enter(lvl *level, row RowView) {
	taken := lvl.node.Take(row.SourceIndex)
	e.levels = append(e.levels, newLevel(taken, row.SourceIndex, row.Name, e.resolver))
}

// exit pops the active level and puts its payload back into the parent slot
// it was taken from. Returns false when already at the root level.
func (e *Engine) exit() bool {
	if len(e.levels) <= 1 {
		return false
	}
	child := e.active()
	e.levels = e.levels[:len(e.levels)-1]
	parent := e.active()
	parent.node.Put(child.fromIndex, child.node)
	// Child values may have changed while the level was live; re-derive the
	// parent's rows without disturbing its restored selection.
	parent.refresh(e.resolver)
	return true
}

// SetFilter installs or clears the name predicate at the current level only.
// Rows are re-derived and the selection re-located by source index, falling
// back to row 0 when the selected child is now filtered out.
func (e *Engine) SetFilter(pred FilterFunc, label string) {
	if !e.Loaded() {
		return
	}
	lvl := e.active()
	lvl.filter = pred
	lvl.filterLabel = label
	lvl.refresh(e.resolver)
}

// Rows returns the active level's row projection.
func (e *Engine) Rows() []RowView {
	if !e.Loaded() {
		return nil
	}
	return e.active().rows
}

// Cursor returns the active level's selected row position.
func (e *Engine) Cursor() int {
	if !e.Loaded() {
		return 0
	}
	return e.active().cursor
}

// CurrentRow returns the row under the cursor at the active level.
func (e *Engine) CurrentRow() (RowView, bool) {
	if !e.Loaded() {
		return RowView{}, false
	}
	return e.active().currentRow()
}

// Depth is the nesting depth: 1 at the root level.
func (e *Engine) Depth() int {
	return len(e.levels)
}

// AtRoot reports whether the root level is active.
func (e *Engine) AtRoot() bool {
	return len(e.levels) == 1
}

// Breadcrumbs lists the names of the entered children, outermost first.
func (e *Engine) Breadcrumbs() []string {
	if len(e.levels) <= 1 {
		return nil
	}
	crumbs := make([]string, 0, len(e.levels)-1)
	for _, lvl := range e.levels[1:] {
		crumbs = append(crumbs, lvl.crumb)
	}
	return crumbs
}

// FilterLabel returns the active level's filter description ("" when none).
func (e *Engine) FilterLabel() string {
	if !e.Loaded() {
		return ""
	}
	return e.active().filterLabel
}

// Editing returns a view of the live edit session, or nil when browsing.
func (e *Engine) Editing() *EditState {
	if !e.Loaded() {
		return nil
	}
	s := e.active().edit
	if s == nil {
		return nil
	}
	return &EditState{
		Hash:      s.kind == editHash,
		Buffer:    s.buffer,
		Err:       s.errMsg,
		Status:    s.resolution.Status,
		Matches:   s.candidates.Matches(),
		Candidate: s.candidates.Index(),
	}
}

// Document reassembles and deep-copies the current document, including the
// payloads held by live levels, for a save collaborator. The engine's own
// state is untouched.
func (e *Engine) Document() param.Node {
	if !e.Loaded() {
		panic("engine: no document loaded")
	}
	doc := e.levels[0].node.Clone()
	slot := &doc
	for _, lvl := range e.levels[1:] {
		child := slot.ChildAt(lvl.fromIndex)
		*child = lvl.node.Clone()
		slot = child
	}
	return doc
}
