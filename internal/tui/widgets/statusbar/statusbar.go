package statusbar

import (
	"fmt"
	"strings"

	"edgescroll/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting strategy and cycle state.
func (StatusBar) View(s state.UIState) string {
	strategy := s.Resolved
	if strategy == "" {
		strategy = s.Strategy
	}
	native := "native"
	if !s.Native {
		native = "no-native"
	}
	lock := "unlocked"
	if s.Locked {
		lock = "LOCKED"
	}
	rows := fmt.Sprintf("rows:%d", s.Rows)
	if s.Exhausted {
		rows += " (end)"
	}
	size := fmt.Sprintf("%dx%d", s.Width, s.Height)

	parts := []string{strategy, native, "phase:" + s.Phase, lock, rows, size}
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	return strings.Join(parts, "  ")
}
