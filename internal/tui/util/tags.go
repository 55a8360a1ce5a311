package util

import "edgescroll/internal/tui/state"

// ComputeTags derives the status chips for the current UI state.
//
// The returned slice preserves a stable order:
//
//	Pull, Bottom, Locked, Silent, Authoring, Simulated
//
// Rules:
//   - Pull and Bottom are always present and carry their channel state.
//   - Locked appears while a cycle holds the input lock.
//   - Silent appears when the next cycle will not show the indicator.
//   - Authoring appears in authoring mode.
//   - Simulated appears when the running strategy differs from the requested one.
func ComputeTags(s state.UIState) []state.Tag {
	tags := make([]state.Tag, 0, 6)
	tags = append(tags, state.Tag{Kind: state.PULL_DOWN, Value: int(s.PullDown)})
	tags = append(tags, state.Tag{Kind: state.REACH_BOTTOM, Value: int(s.ReachBottom)})
	if s.Locked {
		tags = append(tags, state.Tag{Kind: state.LOCKED})
	}
	if !s.Armed {
		tags = append(tags, state.Tag{Kind: state.SILENT})
	}
	if s.Authoring {
		tags = append(tags, state.Tag{Kind: state.AUTHORING})
	}
	if s.Resolved != "" && s.Resolved != s.Strategy {
		tags = append(tags, state.Tag{Kind: state.SIMULATED})
	}
	return tags
}
