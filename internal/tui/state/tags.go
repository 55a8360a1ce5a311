package state

// TagKind enumerates the status chips shown under the scroll view.
type TagKind int

const (
	// Stable ordering for display: Pull, Bottom, Locked, Silent, Authoring, Simulated
	PULL_DOWN TagKind = iota
	REACH_BOTTOM
	LOCKED
	SILENT
	AUTHORING
	SIMULATED
)

// Tag represents a single status chip. Channel chips carry their
// ChannelState in Value; flag chips use Value = 0.
type Tag struct {
	Kind  TagKind
	Value int
}
