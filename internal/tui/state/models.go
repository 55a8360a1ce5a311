package state

// ChannelState mirrors a gesture channel for display.
type ChannelState int

const (
	Off ChannelState = iota
	Ready
	Busy
)

func (c ChannelState) String() string {
	switch c {
	case Ready:
		return "ready"
	case Busy:
		return "busy"
	default:
		return "off"
	}
}

// UIState holds cross-widget UI state used by status bar, chips and help.
type UIState struct {
	// Layout
	Width  int
	Height int

	// Strategy selection: Strategy is what was asked for, Resolved what runs.
	Strategy  string
	Resolved  string
	Native    bool
	Authoring bool

	// Cycle
	PullDown    ChannelState
	ReachBottom ChannelState
	Locked      bool
	Armed       bool
	Phase       string

	// Content
	Rows      int
	Exhausted bool

	ShowHelp bool
	NoColor  bool

	// Notices and ephemeral messages
	Notice string
}
