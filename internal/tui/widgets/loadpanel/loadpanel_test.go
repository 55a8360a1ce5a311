package loadpanel

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestViewContainsMessage(t *testing.T) {
	out := NewLoadPanel(lipgloss.Color("#3D6DFF")).View(40, "*", "Refreshing...")
	if !strings.Contains(out, "* Refreshing...") {
		t.Fatalf("missing message: %q", out)
	}
	if w := lipgloss.Width(out); w != 40 {
		t.Fatalf("expected centered width 40, got %d", w)
	}
}
