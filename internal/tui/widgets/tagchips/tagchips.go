package tagchips

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"edgescroll/internal/tui/state"
	"edgescroll/internal/tui/util"
)

// View renders status chips in a stable order using colored chips when
// possible and ASCII fallbacks when color is disabled or not desired.
func View(tags []state.Tag, noColor bool) string {
	if len(tags) == 0 {
		return ""
	}
	// Honor NO_COLOR env var in addition to explicit param
	if !noColor && os.Getenv("NO_COLOR") != "" {
		noColor = true
	}

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, renderChip(t, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(t state.Tag, noColor bool) string {
	label := chipLabel(t)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(t).Render(label)
}

func chipLabel(t state.Tag) string {
	switch t.Kind {
	case state.PULL_DOWN:
		return "Pull " + state.ChannelState(t.Value).String()
	case state.REACH_BOTTOM:
		return "Bottom " + state.ChannelState(t.Value).String()
	case state.LOCKED:
		return "Locked"
	case state.SILENT:
		return "Silent"
	case state.AUTHORING:
		return "Authoring"
	case state.SIMULATED:
		return "Simulated"
	default:
		return "Tag"
	}
}

func chipStyle(t state.Tag) lipgloss.Style {
	p := util.DefaultPalette()
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	switch t.Kind {
	case state.PULL_DOWN, state.REACH_BOTTOM:
		return base.Background(p.ChannelColor(t.Value))
	case state.LOCKED:
		return base.Background(p.Warning)
	case state.SILENT:
		return base.Background(p.Muted)
	case state.AUTHORING:
		return base.Background(p.Accent)
	case state.SIMULATED:
		return base.Background(p.Busy).Foreground(lipgloss.Color("#111111"))
	default:
		return base
	}
}
