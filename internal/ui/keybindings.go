package ui

import (
	"github.com/oakwood-commons/prcx/internal/engine"
	"github.com/oakwood-commons/prcx/pkg/settings"
)

// namedKeys maps Bubble Tea key names to editor events. These apply in every
// key mode; letter aliases are layered on top for vim mode while browsing.
var namedKeys = map[string]engine.Event{
	"up":         {Code: engine.KeyUp},
	"down":       {Code: engine.KeyDown},
	"left":       {Code: engine.KeyLeft},
	"right":      {Code: engine.KeyRight},
	"enter":      {Code: engine.KeyEnter},
	"backspace":  {Code: engine.KeyBackspace},
	"esc":        {Code: engine.KeyEscape},
	"tab":        {Code: engine.KeyTab},
	"shift+tab":  {Code: engine.KeyTab, Mods: engine.ModShift},
	"shift+up":   {Code: engine.KeyUp, Mods: engine.ModShift},
	"shift+down": {Code: engine.KeyDown, Mods: engine.ModShift},
}

// vimKeys are the letter aliases active in vim mode. They only apply while
// browsing; during an edit the same letters must reach the text buffer.
var vimKeys = map[string]engine.Event{
	"j": {Code: engine.KeyDown},
	"k": {Code: engine.KeyUp},
	"h": {Code: engine.KeyLeft},
	"l": {Code: engine.KeyRight},
	"J": {Code: engine.KeyDown, Mods: engine.ModShift},
	"K": {Code: engine.KeyUp, Mods: engine.ModShift},
}

// translateKey converts a Bubble Tea key name into an editor event.
// browsing reports whether the editor is in browse state (no edit session);
// vim letter aliases and the ok=false fallthrough for unbound keys depend
// on it.
func translateKey(keyStr string, mode settings.KeyMode, browsing bool) (engine.Event, bool) {
	if ev, ok := namedKeys[keyStr]; ok {
		return ev, true
	}
	if browsing && mode == settings.KeyModeVim {
		if ev, ok := vimKeys[keyStr]; ok {
			return ev, true
		}
	}
	if keyStr == "space" {
		return engine.Event{Code: engine.KeyRune, Rune: ' '}, true
	}
	runes := []rune(keyStr)
	if len(runes) == 1 {
		return engine.Event{Code: engine.KeyRune, Rune: runes[0]}, true
	}
	return engine.Event{}, false
}
