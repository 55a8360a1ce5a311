package diff

import (
	"strings"
	"testing"
)

func TestCompareCountsLines(t *testing.T) {
	before := []string{"a", "b", "c"}
	after := []string{"new1", "new2", "a", "b"}
	st := Compare(before, after)
	if st.Added != 2 || st.Removed != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if len(st.First) != 2 || st.First[0] != "new1" {
		t.Fatalf("unexpected first lines: %v", st.First)
	}
	if !strings.HasPrefix(st.Summary(), "Refreshed: +2 -1 (new1)") {
		t.Fatalf("unexpected summary %q", st.Summary())
	}
}

func TestNoChanges(t *testing.T) {
	st := Compare([]string{"a"}, []string{"a"})
	if st.Summary() != "Refreshed: no changes" {
		t.Fatalf("unexpected summary %q", st.Summary())
	}
}

func TestViewMarkersAndLimit(t *testing.T) {
	out := View([]string{"a"}, []string{"x", "y", "a"}, 1)
	if out != "+ x\n" {
		t.Fatalf("unexpected view %q", out)
	}
	out = View([]string{"a", "b"}, []string{"a"}, 0)
	if !strings.Contains(out, "- b") {
		t.Fatalf("expected removal marker in %q", out)
	}
}
