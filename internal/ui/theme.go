package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors used across the editor views.
type Theme struct {
	CrumbColor     color.Color // breadcrumb trail
	NameColor      color.Color // parameter names (left column)
	TypeColor      color.Color // type tags (middle column)
	ValueColor     color.Color // values (right column)
	SelectedFG     color.Color // selected row foreground
	SelectedBG     color.Color // selected row background
	SeparatorColor color.Color // separator lines
	FilterColor    color.Color // active filter indicator
	StatusError    color.Color // parse/resolve failures
	StatusWarn     color.Color // unknown labels, degraded label table
	StatusOK       color.Color // known labels, clean saves
	FooterFG       color.Color // key hint text
	HelpKey        color.Color // help key labels
	HelpValue      color.Color // help descriptions
}

// DefaultTheme is a dark palette tuned for 256-color terminals.
func DefaultTheme() Theme {
	return Theme{
		CrumbColor:     lipgloss.Color("81"),
		NameColor:      lipgloss.Color("81"),
		TypeColor:      lipgloss.Color("244"),
		ValueColor:     lipgloss.Color("246"),
		SelectedFG:     lipgloss.Color("250"),
		SelectedBG:     lipgloss.Color("24"),
		SeparatorColor: lipgloss.Color("238"),
		FilterColor:    lipgloss.Color("11"),
		StatusError:    lipgloss.Color("203"),
		StatusWarn:     lipgloss.Color("221"),
		StatusOK:       lipgloss.Color("114"),
		FooterFG:       lipgloss.Color("244"),
		HelpKey:        lipgloss.Color("81"),
		HelpValue:      lipgloss.Color("245"),
	}
}

// styles holds the pre-built lipgloss styles derived from a Theme. Building
// them once per model avoids re-deriving styles on every View call.
type styles struct {
	crumb     lipgloss.Style
	name      lipgloss.Style
	typeTag   lipgloss.Style
	value     lipgloss.Style
	selected  lipgloss.Style
	separator lipgloss.Style
	filter    lipgloss.Style
	errText   lipgloss.Style
	warnText  lipgloss.Style
	okText    lipgloss.Style
	footer    lipgloss.Style
	helpKey   lipgloss.Style
	helpValue lipgloss.Style
}

func newStyles(t Theme, noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			crumb:     plain.Bold(true),
			name:      plain,
			typeTag:   plain,
			value:     plain,
			selected:  plain.Reverse(true),
			separator: plain,
			filter:    plain.Bold(true),
			errText:   plain.Bold(true),
			warnText:  plain,
			okText:    plain,
			footer:    plain,
			helpKey:   plain.Bold(true),
			helpValue: plain,
		}
	}
	return styles{
		crumb:     lipgloss.NewStyle().Foreground(t.CrumbColor).Bold(true),
		name:      lipgloss.NewStyle().Foreground(t.NameColor),
		typeTag:   lipgloss.NewStyle().Foreground(t.TypeColor),
		value:     lipgloss.NewStyle().Foreground(t.ValueColor),
		selected:  lipgloss.NewStyle().Foreground(t.SelectedFG).Background(t.SelectedBG),
		separator: lipgloss.NewStyle().Foreground(t.SeparatorColor),
		filter:    lipgloss.NewStyle().Foreground(t.FilterColor).Bold(true),
		errText:   lipgloss.NewStyle().Foreground(t.StatusError).Bold(true),
		warnText:  lipgloss.NewStyle().Foreground(t.StatusWarn),
		okText:    lipgloss.NewStyle().Foreground(t.StatusOK),
		footer:    lipgloss.NewStyle().Foreground(t.FooterFG),
		helpKey:   lipgloss.NewStyle().Foreground(t.HelpKey).Bold(true),
		helpValue: lipgloss.NewStyle().Foreground(t.HelpValue),
	}
}
