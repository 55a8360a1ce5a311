package gesture

import "github.com/go-logr/logr"

// policy is what distinguishes one strategy from another.
type policy struct {
	// pullFactor scales Options.Threshold for the pull-down commit point (percent).
	pullFactor int
	// fireOnSettle defers the pull-down trigger until the pull settles.
	fireOnSettle bool
	// earlyBottom counts rows within Options.BottomMargin as the bottom edge.
	earlyBottom bool
	// pointer enables press/drag/lift sensing.
	pointer bool
}

// sensor is the state machine shared by all registered strategies:
// idle -> pending -> active -> releasing -> idle.
type sensor struct {
	name   Name
	policy policy
	opts   Options
	log    logr.Logger

	phase  Phase
	offset int

	pullEnabled   bool
	bottomEnabled bool
	bottomFired   bool

	pressing bool
	pressY   int

	waiters  []chan struct{}
	disposed bool

	pullDown    Signal
	released    Signal
	reachBottom Signal
}

func newSensor(name Name, p policy, opts Options) *sensor {
	opts = opts.normalized()
	return &sensor{
		name:   name,
		policy: p,
		opts:   opts,
		log:    opts.Logger.WithName("gesture").WithValues("strategy", string(name)),
	}
}

func (s *sensor) Name() Name { return s.name }

func (s *sensor) OnPullDown(fn func()) Subscription    { return s.pullDown.Subscribe(fn) }
func (s *sensor) OnRelease(fn func()) Subscription     { return s.released.Subscribe(fn) }
func (s *sensor) OnReachBottom(fn func()) Subscription { return s.reachBottom.Subscribe(fn) }

func (s *sensor) SetPullDownEnabled(enabled bool) {
	if s.disposed || s.pullEnabled == enabled {
		return
	}
	s.pullEnabled = enabled
	if !enabled && s.phase == Pending {
		s.collapse()
	}
}

func (s *sensor) SetReachBottomEnabled(enabled bool) {
	if s.disposed || s.bottomEnabled == enabled {
		return
	}
	s.bottomEnabled = enabled
	s.bottomFired = false
}

func (s *sensor) Offset() int  { return s.offset }
func (s *sensor) Phase() Phase { return s.phase }

func (s *sensor) Threshold() int { return s.threshold() }

func (s *sensor) threshold() int {
	t := s.opts.Threshold * s.policy.pullFactor / 100
	if t < 1 {
		t = 1
	}
	return t
}

func (s *sensor) Feed(m Motion) {
	if s.disposed {
		return
	}
	if s.phase == Active || s.phase == Releasing {
		return
	}
	switch m.Kind {
	case Scroll:
		s.scroll(m)
	case Press:
		if s.policy.pointer {
			s.pressing = m.AtTop
			s.pressY = m.Y
		}
	case Drag:
		if s.policy.pointer {
			s.drag(m)
		}
	case Lift:
		if s.policy.pointer {
			s.pressing = false
			s.settle()
		}
	case Settle:
		if !s.pressing {
			s.settle()
		}
	}
}

func (s *sensor) scroll(m Motion) {
	if m.Delta < 0 && m.AtTop && s.pullEnabled {
		s.pull(s.offset - m.Delta)
		return
	}
	if s.phase == Pending && m.Delta > 0 {
		// scrolling back down abandons a pull unless it already qualified
		s.settle()
		return
	}
	s.checkBottom(m.Remaining)
}

func (s *sensor) drag(m Motion) {
	if !s.pressing {
		s.checkBottom(m.Remaining)
		return
	}
	if !s.pullEnabled {
		return
	}
	d := m.Y - s.pressY
	if d <= 0 {
		if s.phase == Pending {
			s.collapse()
		}
		return
	}
	s.pull(d)
}

func (s *sensor) pull(offset int) {
	limit := 2 * s.threshold()
	if offset > limit {
		offset = limit
	}
	s.offset = offset
	s.phase = Pending
	s.log.V(1).Info("pull", "offset", offset)
	if !s.policy.fireOnSettle && offset >= s.threshold() {
		s.firePullDown()
	}
}

func (s *sensor) settle() {
	if s.phase != Pending {
		return
	}
	if s.offset >= s.threshold() {
		s.firePullDown()
		return
	}
	s.collapse()
}

func (s *sensor) checkBottom(remaining int) {
	edge := 0
	if s.policy.earlyBottom {
		edge = s.opts.BottomMargin
	}
	if remaining > edge {
		s.bottomFired = false
		return
	}
	if !s.bottomEnabled || s.bottomFired || s.phase != Idle {
		return
	}
	s.bottomFired = true
	s.log.V(1).Info("reach bottom", "remaining", remaining)
	s.reachBottom.Emit()
}

func (s *sensor) firePullDown() {
	s.phase = Active
	s.offset = s.threshold()
	s.log.V(1).Info("pull down")
	s.pullDown.Emit()
}

func (s *sensor) collapse() {
	s.phase = Idle
	s.offset = 0
}

func (s *sensor) PendingRelease() {
	if s.disposed {
		return
	}
	s.phase = Active
	s.offset = s.threshold()
}

func (s *sensor) Release() <-chan struct{} {
	done := make(chan struct{})
	if s.disposed {
		close(done)
		return done
	}
	s.bottomFired = false
	s.pressing = false
	if s.phase == Releasing {
		s.waiters = append(s.waiters, done)
		return done
	}
	if s.offset == 0 {
		s.phase = Idle
		close(done)
		s.released.Emit()
		return done
	}
	s.phase = Releasing
	s.waiters = append(s.waiters, done)
	return done
}

func (s *sensor) Step() bool {
	if s.disposed || s.phase != Releasing {
		return false
	}
	s.offset -= s.opts.ReleaseStep
	if s.offset > 0 {
		return true
	}
	s.collapse()
	s.closeWaiters()
	s.released.Emit()
	return false
}

func (s *sensor) closeWaiters() {
	for _, w := range s.waiters {
		close(w)
	}
	s.waiters = nil
}

func (s *sensor) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.closeWaiters()
	s.pullDown.Reset()
	s.released.Reset()
	s.reachBottom.Reset()
	s.collapse()
	s.log.V(1).Info("disposed")
}
