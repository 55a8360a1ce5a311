package scrollview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"edgescroll/internal/coordinator"
	"edgescroll/internal/gesture"
)

// View renders the window. The top pocket pushes content down by the
// strategy's offset; the bottom pocket takes the row after the last line.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	rows := strings.Split(m.vp.View(), "\n")

	if m.bottomPocket() {
		idx := m.vp.TotalLineCount() - 1 - m.vp.YOffset
		if idx >= 0 && idx < len(rows) {
			rows[idx] = m.bottomRow()
		}
	}

	if s := m.strategy(); s != nil {
		if off := min(s.Offset(), len(rows)); off > 0 {
			pocket := m.topPocket(s, off)
			rows = append(pocket, rows[:len(rows)-off]...)
		}
	}

	if m.panelUp {
		m.overlayPanel(rows)
	}
	return strings.Join(rows, "\n")
}

func (m *Model) topPocket(s gesture.Strategy, rows int) []string {
	var label string
	switch s.Phase() {
	case gesture.Pending:
		if s.Offset() >= s.Threshold() {
			label = m.texts.PulledDown
		} else {
			label = m.texts.PullingDown
		}
	default:
		label = m.spin.View() + " " + m.texts.Refreshing
	}
	out := make([]string, rows)
	// label sits on the pocket row nearest the content
	out[rows-1] = m.center(m.style().Render(label))
	return out
}

func (m *Model) bottomRow() string {
	text := m.texts.ReachBottom
	if m.coord.State(coordinator.ReachBottom) == coordinator.Loading {
		text = m.spin.View() + " " + text
	}
	return m.center(m.style().Render(text))
}

func (m *Model) overlayPanel(rows []string) {
	msg := m.texts.ReachBottom
	if m.coord.State(coordinator.PullDown) == coordinator.Loading {
		msg = m.texts.Refreshing
	}
	box := strings.Split(m.panel.View(m.width, m.spin.View(), msg), "\n")
	if len(box) > len(rows) {
		return
	}
	start := (len(rows) - len(box)) / 2
	copy(rows[start:], box)
}

func (m *Model) center(s string) string {
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

func (m *Model) style() lipgloss.Style {
	if m.noColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(m.palette.Muted)
}
