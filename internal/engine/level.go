package engine

import (
	"github.com/oakwood-commons/prcx/internal/hash40"
	"github.com/oakwood-commons/prcx/internal/param"
)

// level owns exactly one composite payload and the per-level state the
// navigation stack preserves across drilling: selection, filter, breadcrumb
// name, and at most one live edit session. Drilling into a child takes the
// child payload out of this level's node (a placeholder stays in the slot)
// and wraps it in a new level; drilling out puts the payload back into the
// same slot.
type level struct {
	node        param.Node
	fromIndex   int // slot in the parent this payload was taken from; -1 at root
	crumb       string
	rows        []RowView
	cursor      int
	filter      FilterFunc
	filterLabel string
	edit        *editSession
}

func newLevel(node param.Node, fromIndex int, crumb string, res *hash40.Resolver) *level {
	l := &level{node: node, fromIndex: fromIndex, crumb: crumb}
	l.rows = projectRows(&l.node, res, l.filter)
	return l
}

// refresh re-derives the row projection and re-locates the selection by the
// previously selected child's source index. Filtering changes row positions
// but never source indices, so a child that is still visible keeps its
// selection; one that got filtered out falls back to row 0.
func (l *level) refresh(res *hash40.Resolver) {
	selected, hasSelected := l.selectedSource()
	l.rows = projectRows(&l.node, res, l.filter)
	l.cursor = 0
	if hasSelected {
		for i, row := range l.rows {
			if row.SourceIndex == selected {
				l.cursor = i
				break
			}
		}
	}
}

// selectedSource returns the source index of the row under the cursor.
func (l *level) selectedSource() (int, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return 0, false
	}
	return l.rows[l.cursor].SourceIndex, true
}

// currentRow returns the row under the cursor.
func (l *level) currentRow() (RowView, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return RowView{}, false
	}
	return l.rows[l.cursor], true
}

// move shifts the cursor by delta, wrapping at both ends. A no-op on an
// empty view.
func (l *level) move(delta int) {
	n := len(l.rows)
	if n == 0 {
		return
	}
	l.cursor = ((l.cursor+delta)%n + n) % n
}
