package engine

import (
	"github.com/oakwood-commons/prcx/internal/hash40"
	"github.com/oakwood-commons/prcx/internal/param"
)

type editKind int

const (
	editScalar editKind = iota
	editHash
)

// editSession is the transient state of one inline edit. At most one session
// is live engine-wide. The edited child is pinned by the source index
// captured at entry, never re-derived from live selection, so the session
// cannot desynchronize from the node it mutates.
type editSession struct {
	kind        editKind
	sourceIndex int
	buffer      string
	errMsg      string

	// hash-edit state
	resolution hash40.Resolution
	candidates hash40.Candidates
}

// EditState is the read-only view of the live edit session exposed to
// renderers.
type EditState struct {
	Hash      bool
	Buffer    string
	Err       string
	Status    hash40.Status
	Matches   []string
	Candidate int // index into Matches, -1 when none selected
}

// beginEdit opens an edit session for the terminal child under the cursor,
// seeded with the node's current textual value.
func (e *Engine) beginEdit(lvl *level, row RowView) {
	child := lvl.node.ChildAt(row.SourceIndex)
	s := &editSession{sourceIndex: row.SourceIndex}
	if child.Kind == param.KindHash40 {
		s.kind = editHash
		s.buffer = e.resolver.DisplayName(child.Hash)
		e.recomputeHash(s)
	} else {
		s.buffer = param.ValueString(child)
	}
	lvl.edit = s
}

// recomputeHash refreshes resolution and the candidate list after any buffer
// change. The candidate cursor resets on every text change.
func (e *Engine) recomputeHash(s *editSession) {
	s.resolution = e.resolver.Resolve(s.buffer)
	s.candidates.Reset(e.resolver.MatchPrefix(s.buffer, e.prefixLimit))
}

// handleEdit runs the edit state machine. Every event is consumed while a
// session is live so host shortcuts cannot fire mid-edit.
func (e *Engine) handleEdit(lvl *level, ev Event) Response {
	s := lvl.edit
	switch ev.Code {
	case KeyRune:
		s.buffer += string(ev.Rune)
		s.errMsg = ""
		if s.kind == editHash {
			e.recomputeHash(s)
		}
	case KeyBackspace:
		if r := []rune(s.buffer); len(r) > 0 {
			s.buffer = string(r[:len(r)-1])
		}
		s.errMsg = ""
		if s.kind == editHash {
			e.recomputeHash(s)
		}
	case KeyEscape:
		// Explicit cancel: the node stays unchanged.
		lvl.edit = nil
	case KeyTab, KeyDown, KeyUp:
		if s.kind == editHash {
			back := ev.Code == KeyUp || (ev.Code == KeyTab && ev.Mods&ModShift != 0)
			if back {
				s.candidates.Prev()
			} else {
				s.candidates.Next()
			}
		}
	case KeyRight:
		if s.kind == editHash {
			if c, ok := s.candidates.Current(); ok {
				s.buffer = c
				s.errMsg = ""
				e.recomputeHash(s)
			}
		}
	case KeyEnter:
		return e.submitEdit(lvl, s)
	}
	return Consumed
}

// submitEdit applies the buffer to the edited node. A failed scalar parse or
// malformed hash literal keeps the session open with an inline message and
// the node untouched; an unknown label is accepted, not rejected.
func (e *Engine) submitEdit(lvl *level, s *editSession) Response {
	child := lvl.node.ChildAt(s.sourceIndex)
	if s.kind == editHash {
		res := e.resolver.Resolve(s.buffer)
		if !res.Valid() {
			s.errMsg = "invalid hash literal"
			return Consumed
		}
		child.Hash = res.Hash
	} else {
		if err := param.ParseInto(child, s.buffer); err != nil {
			s.errMsg = err.Error()
			return Consumed
		}
	}
	lvl.edit = nil
	lvl.refresh(e.resolver)
	return DocumentEdited
}
