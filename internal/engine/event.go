// Package engine implements the navigable, editable parameter-tree core: the
// recursive level composition, the drill-down/drill-up navigation stack, the
// inline edit state machine, and row projection. The engine consumes
// normalized input events and never touches the terminal; rendering and raw
// I/O belong to the host.
package engine

// KeyCode identifies a normalized key.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyBackspace
	KeyEscape
	KeyTab
)

// Mod is a set of key modifiers.
type Mod uint8

const (
	// ModShift marks shifted keys (increment/decrement shortcuts, reverse
	// candidate cycling).
	ModShift Mod = 1 << iota
)

// Event is one normalized input event. Mouse events are accepted at the
// boundary but currently ignored by the engine.
type Event struct {
	Code KeyCode
	Rune rune // meaningful when Code == KeyRune
	Mods Mod
}

// Response tells the host what an input event did.
type Response int

const (
	// Ignored means the engine did not consume the event; the host may apply
	// its own bindings (open/save dialogs, filter entry, help).
	Ignored Response = iota
	// Consumed means the engine handled the event without changing the
	// document.
	Consumed
	// DocumentEdited means the event mutated the document; the host should
	// mark it dirty.
	DocumentEdited
	// RequestExit signals intent to close, subject to the host's
	// unsaved-changes confirmation.
	RequestExit
)
