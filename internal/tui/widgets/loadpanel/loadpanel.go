package loadpanel

import (
	"github.com/charmbracelet/lipgloss"
)

type LoadPanel struct {
	style lipgloss.Style
}

func NewLoadPanel(accent lipgloss.Color) LoadPanel {
	return LoadPanel{
		style: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2),
	}
}

// View renders the message box centered in width. Spinner is the current
// spinner frame; it may be empty.
func (p LoadPanel) View(width int, spinner, message string) string {
	body := message
	if spinner != "" {
		body = spinner + " " + message
	}
	box := p.style.Render(body)
	if width <= 0 {
		return box
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}
