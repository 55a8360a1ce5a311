// Package gesture senses edge gestures on a scrollable container and reports
// them as notifications. The coordinator never sees how motion is sensed:
// every sensing variant satisfies Strategy.
package gesture

import "github.com/go-logr/logr"

// Name identifies a registered strategy.
type Name string

const (
	PullDown  Name = "pullDown"  // overscroll past top, fires when the pull settles
	SwipeDown Name = "swipeDown" // overscroll past top, fires as soon as the threshold is met
	SlideDown Name = "slideDown" // short pull, early bottom detection
	Simulated Name = "simulated" // keyboard and pointer drag math, works without mouse reporting
)

// Phase is the per-gesture state of a strategy.
type Phase int

const (
	Idle      Phase = iota // nothing in flight
	Pending                // user is pulling, threshold not yet committed
	Active                 // trigger fired, pocket held open
	Releasing              // pocket collapsing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Active:
		return "active"
	case Releasing:
		return "releasing"
	default:
		return "unknown"
	}
}

// MotionKind classifies sensor input.
type MotionKind int

const (
	Scroll MotionKind = iota // wheel or key scroll by Delta rows (negative = up)
	Press                    // pointer pressed at row Y
	Drag                     // pointer moved to row Y while pressed
	Lift                     // pointer released
	Settle                   // no further pull input arrived within the settle window
)

// Motion is one sensor reading taken against the container.
type Motion struct {
	Kind  MotionKind
	Delta int
	Y     int
	// AtTop reports whether the container was already at its top edge when
	// the motion started.
	AtTop bool
	// Remaining is the number of content rows below the visible window.
	Remaining int
}

// Options tune a strategy instance.
type Options struct {
	// Threshold is the pull distance, in rows, that commits a pull-down.
	Threshold int
	// BottomMargin widens the bottom edge for strategies that detect it early.
	BottomMargin int
	// ReleaseStep is the number of rows collapsed per animation step.
	ReleaseStep int
	Logger      logr.Logger
}

// DefaultOptions returns the tuning used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Threshold:    3,
		BottomMargin: 2,
		ReleaseStep:  1,
		Logger:       logr.Discard(),
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Threshold <= 0 {
		o.Threshold = d.Threshold
	}
	if o.BottomMargin < 0 {
		o.BottomMargin = 0
	}
	if o.ReleaseStep <= 0 {
		o.ReleaseStep = d.ReleaseStep
	}
	if o.Logger.GetSink() == nil {
		o.Logger = d.Logger
	}
	return o
}

// Strategy senses user motion and emits pull-down, release and reach-bottom
// notifications. Implementations are single-goroutine.
type Strategy interface {
	Name() Name

	OnPullDown(fn func()) Subscription
	OnRelease(fn func()) Subscription
	OnReachBottom(fn func()) Subscription

	// SetPullDownEnabled and SetReachBottomEnabled are idempotent. A disabled
	// channel never emits its trigger.
	SetPullDownEnabled(enabled bool)
	SetReachBottomEnabled(enabled bool)

	// Release collapses any open pocket. The returned channel closes when the
	// collapse finishes, immediately if nothing is open.
	Release() <-chan struct{}
	// PendingRelease marks a release as owed without user motion.
	PendingRelease()
	// Dispose drops listeners and closes outstanding release channels.
	Dispose()

	Feed(m Motion)
	// Step advances the release animation and reports whether it is still running.
	Step() bool
	Offset() int
	// Threshold is the pull offset at which this strategy commits.
	Threshold() int
	Phase() Phase
}
