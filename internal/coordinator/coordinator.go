// Package coordinator runs the pull-down and reach-bottom cycles of a
// scrollable container on top of an interchangeable gesture strategy.
package coordinator

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"edgescroll/internal/gate"
	"edgescroll/internal/gesture"
)

// Channel is one of the two gesture tracks.
type Channel int

const (
	PullDown Channel = iota
	ReachBottom
)

func (c Channel) String() string {
	if c == ReachBottom {
		return "reachBottom"
	}
	return "pullDown"
}

// State is a channel's cycle state.
type State int

const (
	Disabled State = iota
	Idle
	Loading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	default:
		return "disabled"
	}
}

// Container is the owning scrollable surface.
type Container interface {
	Visible() bool
	IsFull() bool
	IsEmpty() bool
}

// LabelSetter is implemented by containers that render a reach-bottom label.
type LabelSetter interface {
	SetReachBottomText(text string)
}

// Options configure a Coordinator.
type Options struct {
	Strategy      gesture.Name
	Native        bool
	AuthoringMode bool
	Gesture       gesture.Options
	// Registry defaults to gesture.DefaultRegistry().
	Registry gesture.Registry

	Container Container
	Indicator gate.Indicator
	Locker    gate.Locker
	Logger    logr.Logger
}

// Coordinator owns the strategy and the loading gate. It is not safe for
// concurrent use; call it from a single event loop.
type Coordinator struct {
	log       logr.Logger
	registry  gesture.Registry
	container Container

	name    gesture.Name
	native  bool
	tuning  gesture.Options
	current gesture.Strategy
	subs    []gesture.Subscription

	gate      *gate.Gate
	handlers  [2]func()
	enabled   [2]bool
	loading   [2]bool
	authoring bool
	cycleID   string
	disposed  bool
}

// New resolves and builds the strategy. An unknown strategy name fails with
// *gesture.UnknownStrategyError before anything is constructed.
func New(opts Options) (*Coordinator, error) {
	reg := opts.Registry
	if reg == nil {
		reg = gesture.DefaultRegistry()
	}
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	tuning := opts.Gesture
	if tuning.Logger.GetSink() == nil {
		tuning.Logger = log
	}
	c := &Coordinator{
		log:       log.WithName("coordinator"),
		registry:  reg,
		container: opts.Container,
		tuning:    tuning,
		authoring: opts.AuthoringMode,
	}
	if err := c.rebuild(opts.Strategy, opts.Native); err != nil {
		return nil, err
	}
	c.gate = gate.New(opts.Indicator, opts.Locker)
	c.refreshPocketState()
	return c, nil
}

func (c *Coordinator) rebuild(name gesture.Name, native bool) error {
	resolved, factory, err := c.registry.Select(name, native)
	if err != nil {
		return fmt.Errorf("create strategy: %w", err)
	}
	c.dropStrategy()
	s := factory(c.tuning)
	c.current = s
	c.name = name
	c.native = native
	c.subs = []gesture.Subscription{
		s.OnPullDown(c.onPullDown),
		s.OnRelease(c.onRelease),
		s.OnReachBottom(c.onReachBottom),
	}
	s.SetPullDownEnabled(c.enabled[PullDown])
	s.SetReachBottomEnabled(c.enabled[ReachBottom])
	c.log.Info("strategy ready", "requested", string(name), "resolved", string(resolved), "native", native)
	return nil
}

// dropStrategy unsubscribes and disposes the current strategy.
func (c *Coordinator) dropStrategy() {
	for _, sub := range c.subs {
		sub.Cancel()
	}
	c.subs = nil
	if c.current != nil {
		c.current.Dispose()
		c.current = nil
	}
}

// Apply reacts to a configuration change. Only strategy rebuilds and
// unknown channels fail; on failure the previous state stays in place.
func (c *Coordinator) Apply(ch Change) error {
	if c.disposed {
		return nil
	}
	switch v := ch.(type) {
	case HandlerChanged:
		if v.Channel != PullDown && v.Channel != ReachBottom {
			return fmt.Errorf("unknown channel %d", int(v.Channel))
		}
		c.handlers[v.Channel] = v.Handler
		c.refreshPocketState()
	case StrategyChanged:
		return c.rebuild(v.Name, v.Native)
	case GestureOptionsChanged:
		if v.Options.Logger.GetSink() == nil {
			v.Options.Logger = c.tuning.Logger
		}
		prev := c.tuning
		c.tuning = v.Options
		if err := c.rebuild(c.name, c.native); err != nil {
			c.tuning = prev
			return err
		}
	case AuthoringModeChanged:
		c.authoring = v.Enabled
		c.refreshPocketState()
	case ReachBottomTextChanged:
		if ls, ok := c.container.(LabelSetter); ok {
			ls.SetReachBottomText(v.Text)
		}
	default:
		return fmt.Errorf("unsupported change %T", ch)
	}
	return nil
}

func (c *Coordinator) refreshPocketState() {
	c.setEnabled(PullDown, c.handlers[PullDown] != nil && !c.authoring)
	c.setEnabled(ReachBottom, c.handlers[ReachBottom] != nil && !c.authoring)
}

func (c *Coordinator) setEnabled(ch Channel, on bool) {
	c.enabled[ch] = on
	if ch == PullDown {
		c.current.SetPullDownEnabled(on)
	} else {
		c.current.SetReachBottomEnabled(on)
	}
}

func (c *Coordinator) onPullDown()    { c.trigger(PullDown) }
func (c *Coordinator) onReachBottom() { c.trigger(ReachBottom) }

func (c *Coordinator) onRelease() {
	c.FinishLoading()
}

func (c *Coordinator) trigger(ch Channel) {
	if c.disposed || !c.enabled[ch] {
		c.log.V(1).Info("ignored trigger on disabled channel", "channel", ch.String())
		return
	}
	if c.gate.Locked() {
		c.log.V(1).Info("coalesced trigger during cycle", "channel", ch.String(), "cycle", c.cycleID)
		return
	}
	c.begin(ch)
}

func (c *Coordinator) begin(ch Channel) {
	c.loading[ch] = true
	c.cycleID = uuid.NewString()
	c.log.Info("cycle start", "channel", ch.String(), "cycle", c.cycleID)
	c.StartLoading()
	if h := c.handlers[ch]; h != nil {
		h()
	}
}

// Refresh starts a pull-down cycle without user motion. It does nothing
// without a pull-down handler or while a cycle is running.
func (c *Coordinator) Refresh() {
	if c.disposed || c.handlers[PullDown] == nil || c.gate.Locked() {
		return
	}
	c.current.PendingRelease()
	c.begin(PullDown)
}

// Release forwards to the strategy; the cycle finishes when it completes.
func (c *Coordinator) Release() <-chan struct{} {
	if c.disposed {
		done := make(chan struct{})
		close(done)
		return done
	}
	return c.current.Release()
}

// ReleaseIndicator sets whether the next reach-bottom cycle shows the
// indicator (false suppresses it once), then releases.
func (c *Coordinator) ReleaseIndicator(show bool) <-chan struct{} {
	if !c.disposed {
		c.gate.Arm(show)
	}
	return c.Release()
}

// StartLoading shows the indicator when armed and visible and locks input.
func (c *Coordinator) StartLoading() {
	if c.disposed {
		return
	}
	visible := c.container != nil && c.container.Visible()
	c.gate.Start(visible)
}

// FinishLoading ends the running cycle. It is a no-op when nothing runs.
func (c *Coordinator) FinishLoading() {
	if c.disposed || !c.gate.Locked() {
		return
	}
	c.gate.Finish()
	c.loading = [2]bool{}
	c.log.Info("cycle finish", "cycle", c.cycleID)
	c.cycleID = ""
	if c.current.Phase() != gesture.Idle {
		c.current.Release()
	}
}

// IsFull reports whether content overflows the viewport.
func (c *Coordinator) IsFull() bool {
	return c.container != nil && c.container.IsFull()
}

// IsEmpty reports whether the container holds no content.
func (c *Coordinator) IsEmpty() bool {
	return c.container == nil || c.container.IsEmpty()
}

func (c *Coordinator) Enabled(ch Channel) bool { return c.enabled[ch] }

func (c *Coordinator) State(ch Channel) State {
	switch {
	case c.loading[ch]:
		return Loading
	case c.enabled[ch]:
		return Idle
	default:
		return Disabled
	}
}

// Strategy exposes the active strategy for sensing and rendering. Callers
// must not dispose it or change its enabled flags.
func (c *Coordinator) Strategy() gesture.Strategy { return c.current }

// Loading reports whether a cycle is running.
func (c *Coordinator) Loading() bool { return c.gate.Locked() }

// IndicatorArmed reports whether the next cycle shows the indicator.
func (c *Coordinator) IndicatorArmed() bool { return c.gate.Armed() }

func (c *Coordinator) AuthoringMode() bool { return c.authoring }

// Requested returns the strategy name and native flag last applied, before
// resolution.
func (c *Coordinator) Requested() (gesture.Name, bool) { return c.name, c.native }

// Dispose tears down the strategy, then the gate. Later calls are no-ops.
func (c *Coordinator) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.dropStrategy()
	c.handlers = [2]func(){}
	c.enabled = [2]bool{}
	if c.gate.Locked() {
		c.gate.Finish()
	}
	c.loading = [2]bool{}
	c.log.Info("disposed")
}
