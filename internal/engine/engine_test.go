package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/prcx/internal/hash40"
	"github.com/oakwood-commons/prcx/internal/param"
)

func testResolver(labels ...string) *hash40.Resolver {
	pairs := make([]hash40.Label, len(labels))
	for i, l := range labels {
		pairs[i] = hash40.Label{Hash: hash40.FromLabel(l), Name: l}
	}
	return hash40.NewResolver(hash40.NewCorpus(pairs))
}

func key(label string) hash40.Hash40 { return hash40.FromLabel(label) }

func rune_(r rune) Event { return Event{Code: KeyRune, Rune: r} }

func typeText(e *Engine, text string) {
	for _, r := range text {
		e.HandleInput(rune_(r))
	}
}

func clearBuffer(e *Engine) {
	for e.Editing() != nil && e.Editing().Buffer != "" {
		e.HandleInput(Event{Code: KeyBackspace})
	}
}

func sampleDoc() param.Node {
	return param.NewStruct(
		param.Entry{Key: key("size"), Node: param.NewU32(10)},
		param.Entry{Key: key("items"), Node: param.NewList(param.NewBool(true), param.NewBool(false))},
	)
}

func TestLoadResetsState(t *testing.T) {
	e := New(testResolver("size", "items"))
	assert.False(t, e.Loaded())
	assert.Equal(t, Ignored, e.HandleInput(Event{Code: KeyDown}))
	assert.Equal(t, RequestExit, e.HandleInput(Event{Code: KeyEscape}))

	e.Load(sampleDoc())
	require.True(t, e.Loaded())
	assert.Equal(t, 1, e.Depth())
	assert.Equal(t, 0, e.Cursor())
	rows := e.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "size", rows[0].Name)
	assert.Equal(t, "u32", rows[0].TypeTag)
	assert.Equal(t, "10", rows[0].Value)
	assert.False(t, rows[0].IsComposite)
	assert.Equal(t, "items", rows[1].Name)
	assert.Equal(t, "(2 children)", rows[1].Value)
	assert.True(t, rows[1].IsComposite)
}

func TestLoadTerminalRootPanics(t *testing.T) {
	e := New(testResolver())
	assert.Panics(t, func() { e.Load(param.NewU8(1)) })
}

func TestWrapAroundSelection(t *testing.T) {
	e := New(testResolver())
	e.Load(param.NewList(param.NewU8(0), param.NewU8(1), param.NewU8(2)))

	e.HandleInput(Event{Code: KeyDown})
	e.HandleInput(Event{Code: KeyDown})
	assert.Equal(t, 2, e.Cursor())
	e.HandleInput(Event{Code: KeyDown})
	assert.Equal(t, 0, e.Cursor(), "move down from the last row wraps to 0")
	e.HandleInput(Event{Code: KeyUp})
	assert.Equal(t, 2, e.Cursor(), "move up from the first row wraps to the end")
}

func TestEmptyCompositeIsInert(t *testing.T) {
	e := New(testResolver())
	e.Load(param.NewList())

	assert.Empty(t, e.Rows())
	assert.Equal(t, Consumed, e.HandleInput(Event{Code: KeyDown}))
	assert.Equal(t, Consumed, e.HandleInput(Event{Code: KeyUp}))
	assert.Equal(t, Consumed, e.HandleInput(Event{Code: KeyEnter}))
	_, ok := e.CurrentRow()
	assert.False(t, ok)
}

func TestExitAtRootIsReported(t *testing.T) {
	e := New(testResolver())
	e.Load(sampleDoc())
	assert.Equal(t, Ignored, e.HandleInput(Event{Code: KeyBackspace}))
	assert.Equal(t, 1, e.Depth())
}

func TestNavigationSymmetry(t *testing.T) {
	e := New(testResolver("size", "items"))
	e.Load(sampleDoc())

	// Select and filter the root level, then drill in and straight back out.
	e.HandleInput(Event{Code: KeyDown})
	e.SetFilter(func(name string) bool { return strings.Contains(name, "items") }, "items")
	require.Len(t, e.Rows(), 1)
	before := e.Document()

	e.HandleInput(Event{Code: KeyEnter})
	assert.Equal(t, 2, e.Depth())
	assert.Equal(t, []string{"items"}, e.Breadcrumbs())
	assert.Len(t, e.Rows(), 2)

	e.HandleInput(Event{Code: KeyBackspace})
	assert.Equal(t, 1, e.Depth())
	assert.Equal(t, "items", e.FilterLabel())
	row, ok := e.CurrentRow()
	require.True(t, ok)
	assert.Equal(t, 1, row.SourceIndex)
	assert.Equal(t, before, e.Document(), "no edit occurred, content unchanged")
}

func TestSourceIndexStabilityUnderFilter(t *testing.T) {
	e := New(testResolver("aa", "bb", "cc", "dd"))
	e.Load(param.NewStruct(
		param.Entry{Key: key("aa"), Node: param.NewU8(0)},
		param.Entry{Key: key("bb"), Node: param.NewU8(1)},
		param.Entry{Key: key("cc"), Node: param.NewU8(2)},
		param.Entry{Key: key("dd"), Node: param.NewU8(3)},
	))

	match := func(name string) bool { return name == "bb" || name == "dd" }
	e.SetFilter(match, "b|d")
	rows := e.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].SourceIndex)
	assert.Equal(t, 3, rows[1].SourceIndex)

	// Idempotent: applying the same filter again yields the same projection.
	e.SetFilter(match, "b|d")
	assert.Equal(t, rows, e.Rows())
}

func TestFilterRelocatesSelectionBySourceIndex(t *testing.T) {
	e := New(testResolver("aa", "bb", "cc"))
	e.Load(param.NewStruct(
		param.Entry{Key: key("aa"), Node: param.NewU8(0)},
		param.Entry{Key: key("bb"), Node: param.NewU8(1)},
		param.Entry{Key: key("cc"), Node: param.NewU8(2)},
	))

	e.HandleInput(Event{Code: KeyDown})
	e.HandleInput(Event{Code: KeyDown}) // select "cc", source index 2

	e.SetFilter(func(name string) bool { return name != "bb" }, "!bb")
	row, ok := e.CurrentRow()
	require.True(t, ok)
	assert.Equal(t, 2, row.SourceIndex, "selection follows the child, not the row position")
	assert.Equal(t, 1, e.Cursor())

	// The selected child itself gets filtered out: fall back to row 0.
	e.SetFilter(func(name string) bool { return name == "aa" }, "aa")
	assert.Equal(t, 0, e.Cursor())
	row, _ = e.CurrentRow()
	assert.Equal(t, 0, row.SourceIndex)

	// Clearing the filter restores all rows.
	e.SetFilter(nil, "")
	assert.Len(t, e.Rows(), 3)
}

func TestScalarEditSubmit(t *testing.T) {
	e := New(testResolver("size", "items"))
	e.Load(sampleDoc())

	e.HandleInput(Event{Code: KeyEnter})
	st := e.Editing()
	require.NotNil(t, st)
	assert.False(t, st.Hash)
	assert.Equal(t, "10", st.Buffer, "seeded with the node's current value")

	clearBuffer(e)
	typeText(e, "42")
	resp := e.HandleInput(Event{Code: KeyEnter})
	assert.Equal(t, DocumentEdited, resp)
	assert.Nil(t, e.Editing())
	assert.Equal(t, "42", e.Rows()[0].Value)
}

func TestScalarEditParseFailureKeepsSession(t *testing.T) {
	e := New(testResolver("size", "items"))
	e.Load(sampleDoc())

	e.HandleInput(Event{Code: KeyEnter})
	clearBuffer(e)
	typeText(e, "4294967296") // one past u32 max
	resp := e.HandleInput(Event{Code: KeyEnter})
	assert.Equal(t, Consumed, resp)
	st := e.Editing()
	require.NotNil(t, st, "failed parse stays in edit mode")
	assert.NotEmpty(t, st.Err)
	assert.Equal(t, "10", e.Rows()[0].Value, "node unchanged on failure")

	// Escape cancels; the node is still untouched.
	e.HandleInput(Event{Code: KeyEscape})
	assert.Nil(t, e.Editing())
	assert.Equal(t, "10", e.Rows()[0].Value)
}

func TestEditKeepsTypingErrorFresh(t *testing.T) {
	e := New(testResolver("size", "items"))
	e.Load(sampleDoc())

	e.HandleInput(Event{Code: KeyEnter})
	clearBuffer(e)
	typeText(e, "x")
	e.HandleInput(Event{Code: KeyEnter})
	require.NotEmpty(t, e.Editing().Err)
	typeText(e, "1")
	assert.Empty(t, e.Editing().Err, "typing clears the stale parse error")
}

func TestHashEditResolvesLabels(t *testing.T) {
	e := New(testResolver("alpha", "alphabet", "beta"))
	e.Load(param.NewStruct(
		param.Entry{Key: key("beta"), Node: param.NewHash(key("beta"))},
	))

	e.HandleInput(Event{Code: KeyEnter})
	st := e.Editing()
	require.NotNil(t, st)
	assert.True(t, st.Hash)
	assert.Equal(t, "beta", st.Buffer, "seeded with the known label")
	assert.Equal(t, hash40.StatusLabelExists, st.Status)

	clearBuffer(e)
	typeText(e, "alph")
	st = e.Editing()
	assert.Equal(t, hash40.StatusLabelNotExists, st.Status)
	assert.Equal(t, []string{"alpha", "alphabet"}, st.Matches)
	assert.Equal(t, -1, st.Candidate)

	// Cycle to the first candidate and accept it into the buffer.
	e.HandleInput(Event{Code: KeyTab})
	assert.Equal(t, 0, e.Editing().Candidate)
	e.HandleInput(Event{Code: KeyRight})
	st = e.Editing()
	assert.Equal(t, "alpha", st.Buffer)
	assert.Equal(t, -1, st.Candidate, "accepting recomputes matches and resets the cursor")
	assert.Equal(t, hash40.StatusLabelExists, st.Status)

	resp := e.HandleInput(Event{Code: KeyEnter})
	assert.Equal(t, DocumentEdited, resp)
	doc := e.Document()
	assert.Equal(t, key("alpha"), doc.ChildAt(0).Hash)
}

func TestHashEditCursorResetsOnTyping(t *testing.T) {
	e := New(testResolver("alpha", "alphabet"))
	e.Load(param.NewList(param.NewHash(key("alpha"))))

	e.HandleInput(Event{Code: KeyEnter})
	clearBuffer(e)
	typeText(e, "alph")
	e.HandleInput(Event{Code: KeyTab})
	require.Equal(t, 0, e.Editing().Candidate)

	typeText(e, "a")
	assert.Equal(t, -1, e.Editing().Candidate, "any text change resets the cursor")
}

func TestHashEditAcceptsUnknownLabel(t *testing.T) {
	e := New(testResolver("alpha"))
	e.Load(param.NewList(param.NewHash(key("alpha"))))

	e.HandleInput(Event{Code: KeyEnter})
	clearBuffer(e)
	typeText(e, "completely_new_label")
	resp := e.HandleInput(Event{Code: KeyEnter})
	assert.Equal(t, DocumentEdited, resp, "unknown labels are accepted, not rejected")
	doc := e.Document()
	assert.Equal(t, key("completely_new_label"), doc.ChildAt(0).Hash)
}

func TestHashEditRejectsMalformedLiteral(t *testing.T) {
	e := New(testResolver())
	orig := key("alpha")
	e.Load(param.NewList(param.NewHash(orig)))

	e.HandleInput(Event{Code: KeyEnter})
	clearBuffer(e)
	typeText(e, "0xzz")
	resp := e.HandleInput(Event{Code: KeyEnter})
	assert.Equal(t, Consumed, resp)
	st := e.Editing()
	require.NotNil(t, st)
	assert.Equal(t, hash40.StatusInvalidHex, st.Status)
	assert.NotEmpty(t, st.Err)
	doc := e.Document()
	assert.Equal(t, orig, doc.ChildAt(0).Hash)
}

func TestIncrementDecrementShortcut(t *testing.T) {
	e := New(testResolver("flag", "name"))
	e.Load(param.NewStruct(
		param.Entry{Key: key("flag"), Node: param.NewBool(false)},
		param.Entry{Key: key("name"), Node: param.NewStr("mario")},
	))

	resp := e.HandleInput(Event{Code: KeyUp, Mods: ModShift})
	assert.Equal(t, DocumentEdited, resp)
	assert.Equal(t, "true", e.Rows()[0].Value)
	assert.Nil(t, e.Editing(), "cycling never enters edit mode")

	// Strings do not cycle.
	e.HandleInput(Event{Code: KeyDown})
	resp = e.HandleInput(Event{Code: KeyDown, Mods: ModShift})
	assert.Equal(t, Consumed, resp)
	assert.Equal(t, "mario", e.Rows()[1].Value)
}

func TestTakeReplaceIntegrity(t *testing.T) {
	e := New(testResolver())
	e.Load(param.NewList(
		param.NewList(param.NewU8(0), param.NewU8(1), param.NewU8(2)),
	))

	e.HandleInput(Event{Code: KeyEnter}) // enter inner list
	e.HandleInput(Event{Code: KeyDown})  // element 1
	e.HandleInput(Event{Code: KeyEnter}) // edit it
	clearBuffer(e)
	typeText(e, "99")
	e.HandleInput(Event{Code: KeyEnter})
	e.HandleInput(Event{Code: KeyBackspace}) // exit to root

	doc := e.Document()
	inner := doc.ChildAt(0)
	require.Equal(t, 3, inner.Len())
	assert.Equal(t, int64(0), inner.ChildAt(0).Int)
	assert.Equal(t, int64(99), inner.ChildAt(1).Int)
	assert.Equal(t, int64(2), inner.ChildAt(2).Int)
}

func TestScenarioEditNestedList(t *testing.T) {
	// Document: Struct[(size, U32(10)), (items, List[Bool(true), Bool(false)])]
	e := New(testResolver("size", "items"))
	e.Load(sampleDoc())

	// Enter "items" (index 1).
	e.HandleInput(Event{Code: KeyDown})
	e.HandleInput(Event{Code: KeyEnter})
	rows := e.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "bool", rows[0].TypeTag)
	assert.Equal(t, "bool", rows[1].TypeTag)

	// Edit row 0 to false.
	e.HandleInput(Event{Code: KeyEnter})
	clearBuffer(e)
	typeText(e, "false")
	e.HandleInput(Event{Code: KeyEnter})

	// Exit twice: once back to root, the second reports already-at-root.
	assert.Equal(t, Consumed, e.HandleInput(Event{Code: KeyBackspace}))
	assert.Equal(t, Ignored, e.HandleInput(Event{Code: KeyBackspace}))

	doc := e.Document()
	items := doc.ChildAt(1)
	require.Equal(t, 2, items.Len())
	assert.False(t, items.ChildAt(0).Bool)
	assert.False(t, items.ChildAt(1).Bool)
}

func TestDocumentSnapshotWhileNested(t *testing.T) {
	e := New(testResolver("size", "items"))
	e.Load(sampleDoc())

	e.HandleInput(Event{Code: KeyDown})
	e.HandleInput(Event{Code: KeyEnter}) // stay inside "items"

	doc := e.Document()
	assert.Equal(t, param.KindStruct, doc.Kind)
	items := doc.ChildAt(1)
	assert.Equal(t, param.KindList, items.Kind, "snapshot reassembles taken payloads")
	assert.Equal(t, 2, items.Len())

	// The snapshot is a copy: mutating it does not affect the engine.
	items.ChildAt(0).Bool = false
	rows := e.Rows()
	assert.Equal(t, "true", rows[0].Value)
}

func TestSelectionMoveDuringEditIsCaptured(t *testing.T) {
	e := New(testResolver("size", "items"))
	e.Load(sampleDoc())

	e.HandleInput(Event{Code: KeyEnter}) // edit "size" (source index 0)
	// Up/Down while editing a scalar must not move the selection or retarget
	// the session.
	e.HandleInput(Event{Code: KeyDown})
	assert.Equal(t, 0, e.Cursor())
	clearBuffer(e)
	typeText(e, "7")
	e.HandleInput(Event{Code: KeyEnter})
	assert.Equal(t, "7", e.Rows()[0].Value)
	assert.Equal(t, "(2 children)", e.Rows()[1].Value)
}
