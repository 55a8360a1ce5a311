package gesture

// Signal is a multi-subscriber notification channel. Listeners run in
// subscription order on the caller's goroutine.
type Signal struct {
	subs []*listener
}

type listener struct {
	fn   func()
	dead bool
}

// Subscription is the disposer handle returned by Subscribe.
type Subscription struct {
	sig *Signal
	l   *listener
}

// Subscribe attaches fn and returns a handle that detaches it.
func (s *Signal) Subscribe(fn func()) Subscription {
	l := &listener{fn: fn}
	s.subs = append(s.subs, l)
	return Subscription{sig: s, l: l}
}

// Emit calls every live listener. Listeners cancelled during Emit are skipped.
func (s *Signal) Emit() {
	if len(s.subs) == 0 {
		return
	}
	snapshot := append([]*listener(nil), s.subs...)
	for _, l := range snapshot {
		if !l.dead {
			l.fn()
		}
	}
}

// Len reports the number of live listeners.
func (s *Signal) Len() int { return len(s.subs) }

// Reset drops all listeners.
func (s *Signal) Reset() {
	for _, l := range s.subs {
		l.dead = true
	}
	s.subs = nil
}

// Cancel detaches the listener. Safe to call more than once and on the zero value.
func (sub Subscription) Cancel() {
	if sub.sig == nil || sub.l == nil || sub.l.dead {
		return
	}
	sub.l.dead = true
	subs := sub.sig.subs
	for i, l := range subs {
		if l == sub.l {
			sub.sig.subs = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
}
