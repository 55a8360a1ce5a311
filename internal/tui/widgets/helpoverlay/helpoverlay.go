package helpoverlay

import (
	"fmt"
	"strings"

	"edgescroll/internal/tui/state"
)

type HelpOverlay struct{}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{} }

// View returns grouped keys help with the current strategy indicated.
func (HelpOverlay) View(s state.UIState) string {
	mode := "interactive"
	if s.Authoring {
		mode = "authoring"
	}
	sections := []struct {
		title string
		keys  []string
	}{
		{"Scroll", []string{"↑/↓ or k/j: line", "PgUp/PgDn: page", "g/G: top/bottom", "wheel or drag: pull at top"}},
		{"Gestures", []string{"keep scrolling up at top: pull to refresh", "reach the end: load more", "r: refresh without pulling"}},
		{"Setup", []string{"s: next strategy", "n: toggle native gestures", "a: toggle authoring mode", "x: silence next load indicator"}},
		{"Other", []string{"y: copy visible rows", "l: events pane (p pause, [ ] scroll, w save)", "?: help", "q: quit"}},
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Strategy: %s, Mode: %s)\n", s.Strategy, mode)
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s:\n", sec.title)
		for _, k := range sec.keys {
			fmt.Fprintf(&b, "  %s\n", k)
		}
	}
	return b.String()
}
