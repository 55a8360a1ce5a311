package util

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != ""
}

// Palette defines the colors shared by the scroll view and its widgets.
type Palette struct {
	Accent  lipgloss.Color // pocket spinner, selected strategy
	Ready   lipgloss.Color
	Busy    lipgloss.Color
	Off     lipgloss.Color
	Warning lipgloss.Color
	Muted   lipgloss.Color
}

// DefaultPalette returns the default palette.
func DefaultPalette() Palette {
	return Palette{
		Accent:  lipgloss.Color("#3D6DFF"),
		Ready:   lipgloss.Color("#2AA876"),
		Busy:    lipgloss.Color("#F0AD4E"),
		Off:     lipgloss.Color("#6C757D"),
		Warning: lipgloss.Color("#D9534F"),
		Muted:   lipgloss.Color("#5A5A5A"),
	}
}

// ChannelColor picks the chip color for a channel state value.
func (p Palette) ChannelColor(v int) lipgloss.Color {
	switch v {
	case 1:
		return p.Ready
	case 2:
		return p.Busy
	default:
		return p.Off
	}
}
