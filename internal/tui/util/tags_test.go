package util

import (
	"testing"

	"edgescroll/internal/tui/state"
)

func findKind(tags []state.Tag, k state.TagKind) (idx int, ok bool) {
	for i, t := range tags {
		if t.Kind == k {
			return i, true
		}
	}
	return -1, false
}

func TestChannelTagsAlwaysPresent(t *testing.T) {
	tags := ComputeTags(state.UIState{Armed: true, PullDown: state.Busy})
	if len(tags) != 2 {
		t.Fatalf("expected only channel tags, got %v", tags)
	}
	idx, ok := findKind(tags, state.PULL_DOWN)
	if !ok || tags[idx].Value != int(state.Busy) {
		t.Fatalf("expected busy pull tag")
	}
}

func TestFlagTags(t *testing.T) {
	s := state.UIState{Locked: true, Armed: false, Authoring: true, Strategy: "swipeDown", Resolved: "simulated"}
	tags := ComputeTags(s)
	for _, k := range []state.TagKind{state.LOCKED, state.SILENT, state.AUTHORING, state.SIMULATED} {
		if _, ok := findKind(tags, k); !ok {
			t.Fatalf("expected tag %v", k)
		}
	}
}

func TestStableOrder(t *testing.T) {
	s := state.UIState{Locked: true, Authoring: true, Strategy: "a", Resolved: "b"}
	tags := ComputeTags(s)
	order := []state.TagKind{state.PULL_DOWN, state.REACH_BOTTOM, state.LOCKED, state.SILENT, state.AUTHORING, state.SIMULATED}
	pos := map[state.TagKind]int{}
	for i, tg := range tags {
		pos[tg.Kind] = i
	}
	prev := -1
	for _, k := range order {
		if idx, ok := pos[k]; ok {
			if idx < prev {
				t.Fatalf("tag %v appears before previous; order unstable", k)
			}
			prev = idx
		}
	}
}
