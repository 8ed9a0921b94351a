package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// clampLineWidth trims a single line to maxWidth display cells while
// preserving ANSI escape sequences. Handles CSI (ESC [ ... letter) and OSC
// (ESC ] ... ST/BEL) sequences; anything inside them contributes no width.
func clampLineWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	const (
		stNormal = iota
		stEsc
		stCSI
		stOSC
		stOSCEsc
	)
	state := stNormal

	var out strings.Builder
	width := 0
	for _, r := range s {
		switch state {
		case stNormal:
			if r == 0x1b {
				state = stEsc
				out.WriteRune(r)
				continue
			}
			w := runewidth.RuneWidth(r)
			if width+w > maxWidth {
				continue
			}
			out.WriteRune(r)
			width += w

		case stEsc:
			out.WriteRune(r)
			switch r {
			case '[':
				state = stCSI
			case ']':
				state = stOSC
			default:
				state = stNormal
			}

		case stCSI:
			out.WriteRune(r)
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				state = stNormal
			}

		case stOSC:
			out.WriteRune(r)
			if r == 0x07 {
				state = stNormal
			} else if r == 0x1b {
				state = stOSCEsc
			}

		case stOSCEsc:
			out.WriteRune(r)
			if r == '\\' {
				state = stNormal
			} else {
				state = stOSC
			}
		}
	}
	return out.String()
}
