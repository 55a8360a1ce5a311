package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Stats counts line-level changes between two renderings of the content.
type Stats struct {
	Added   int
	Removed int
	// First holds up to three added lines, in order.
	First []string
}

// Compare diffs before and after line by line.
func Compare(before, after []string) Stats {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(joinLines(before), joinLines(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var st Stats
	for _, d := range diffs {
		changed := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			st.Added += len(changed)
			for _, l := range changed {
				if len(st.First) < 3 {
					st.First = append(st.First, l)
				}
			}
		case diffmatchpatch.DiffDelete:
			st.Removed += len(changed)
		}
	}
	return st
}

// Summary renders a one-line description of what a refresh changed.
func (s Stats) Summary() string {
	if s.Added == 0 && s.Removed == 0 {
		return "Refreshed: no changes"
	}
	out := fmt.Sprintf("Refreshed: +%d -%d", s.Added, s.Removed)
	if len(s.First) > 0 {
		out += " (" + s.First[0] + ")"
	}
	return out
}

// View renders the added lines with +/- markers, capped at limit rows.
func View(before, after []string, limit int) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(joinLines(before), joinLines(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	n := 0
	for _, d := range diffs {
		marker := ""
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			marker = "+ "
		case diffmatchpatch.DiffDelete:
			marker = "- "
		default:
			continue
		}
		for _, l := range splitLines(d.Text) {
			if limit > 0 && n >= limit {
				return out.String()
			}
			fmt.Fprintf(&out, "%s%s\n", marker, l)
			n++
		}
	}
	return out.String()
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
