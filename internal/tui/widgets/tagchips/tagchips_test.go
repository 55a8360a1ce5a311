package tagchips

import (
	"strings"
	"testing"

	"edgescroll/internal/tui/state"
	"edgescroll/internal/tui/util"
)

func TestRenderTagsNoColor(t *testing.T) {
	s := state.UIState{PullDown: state.Busy, ReachBottom: state.Ready, Locked: true, Authoring: true}
	out := View(util.ComputeTags(s), true)

	wants := []string{"[Pull busy]", "[Bottom ready]", "[Locked]", "[Silent]", "[Authoring]"}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("expected %q in output: %s", w, out)
		}
	}
}

func TestEmpty(t *testing.T) {
	if View(nil, true) != "" {
		t.Fatalf("expected empty output")
	}
}
