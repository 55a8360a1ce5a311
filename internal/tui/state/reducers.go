package state

// ToggleHelp flips the help overlay and returns a new state copy.
func ToggleHelp(s UIState) UIState {
	s.ShowHelp = !s.ShowHelp
	return s
}

// Resize records the terminal size. Very short terminals get a notice since
// the pockets need rows of their own.
func Resize(s UIState, width, height int) UIState {
	s.Width = width
	s.Height = height
	if height > 0 && height < 8 {
		s.Notice = "Short terminal: pockets may be clipped"
	}
	return s
}

// ToggleNative flips native gesture capability and sets a brief notice.
func ToggleNative(s UIState) UIState {
	s.Native = !s.Native
	if s.Native {
		s.Notice = "Native gestures on"
	} else {
		s.Notice = "Native gestures off: simulated"
	}
	return s
}

// ToggleAuthoring flips authoring mode and sets a brief notice.
func ToggleAuthoring(s UIState) UIState {
	s.Authoring = !s.Authoring
	if s.Authoring {
		s.Notice = "[AUTHORING] gestures disabled"
	} else {
		s.Notice = "Gestures enabled"
	}
	return s
}

// NextStrategy advances Strategy through names, wrapping around.
func NextStrategy(s UIState, names []string) UIState {
	if len(names) == 0 {
		return s
	}
	next := names[0]
	for i, n := range names {
		if n == s.Strategy {
			next = names[(i+1)%len(names)]
			break
		}
	}
	s.Strategy = next
	s.Notice = "Strategy: " + next
	return s
}

// WithNotice replaces the notice line.
func WithNotice(s UIState, notice string) UIState {
	s.Notice = notice
	return s
}
