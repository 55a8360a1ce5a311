package state

import "testing"

func TestToggleHelp(t *testing.T) {
	s := UIState{}
	s = ToggleHelp(s)
	if !s.ShowHelp {
		t.Fatalf("expected ShowHelp to be true")
	}
}

func TestToggleNativeSetsNotice(t *testing.T) {
	s := UIState{Native: true}
	s = ToggleNative(s)
	if s.Native || s.Notice == "" {
		t.Fatalf("expected native off and notice")
	}
	s = ToggleNative(s)
	if !s.Native || s.Notice == "" {
		t.Fatalf("expected native on and notice")
	}
}

func TestToggleAuthoring(t *testing.T) {
	s := ToggleAuthoring(UIState{})
	if !s.Authoring || s.Notice != "[AUTHORING] gestures disabled" {
		t.Fatalf("unexpected state: %+v", s)
	}
}

func TestResizeShortTerminalNotice(t *testing.T) {
	s := Resize(UIState{}, 80, 5)
	if s.Width != 80 || s.Height != 5 {
		t.Fatalf("expected size to be recorded")
	}
	if s.Notice == "" {
		t.Fatalf("expected short terminal notice")
	}
	if s = Resize(UIState{}, 80, 24); s.Notice != "" {
		t.Fatalf("unexpected notice %q", s.Notice)
	}
}

func TestNextStrategyWraps(t *testing.T) {
	names := []string{"pullDown", "simulated", "slideDown"}
	s := UIState{Strategy: "slideDown"}
	s = NextStrategy(s, names)
	if s.Strategy != "pullDown" {
		t.Fatalf("expected wrap to pullDown, got %s", s.Strategy)
	}
	s = NextStrategy(UIState{Strategy: "bogus"}, names)
	if s.Strategy != "pullDown" {
		t.Fatalf("expected unknown to restart at first name, got %s", s.Strategy)
	}
}

func TestChannelStateString(t *testing.T) {
	if Busy.String() != "busy" || Off.String() != "off" {
		t.Fatalf("unexpected labels")
	}
}
