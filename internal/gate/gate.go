// Package gate brackets a refresh or load cycle with a loading indicator and
// an input lock.
package gate

// Indicator is the visual loading component.
type Indicator interface {
	Show()
	Hide()
}

// Locker suppresses user interaction with the container.
type Locker interface {
	Lock()
	Unlock()
}

type nopIndicator struct{}

func (nopIndicator) Show() {}
func (nopIndicator) Hide() {}

type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

// Gate tracks whether the next cycle shows the indicator and whether input
// is currently locked.
type Gate struct {
	indicator Indicator
	locker    Locker

	armed bool
	// consumed is set once a Start has read the current arming; Finish
	// re-arms only then, so Arm(false) mid-cycle carries to the next cycle.
	consumed bool
	locked   bool
	showing  bool
}

// New returns an armed, unlocked gate. Nil collaborators are replaced by no-ops.
func New(ind Indicator, lock Locker) *Gate {
	if ind == nil {
		ind = nopIndicator{}
	}
	if lock == nil {
		lock = nopLocker{}
	}
	return &Gate{indicator: ind, locker: lock, armed: true}
}

// Arm sets whether the next cycle shows the indicator.
func (g *Gate) Arm(show bool) {
	g.armed = show
	g.consumed = false
}

func (g *Gate) Armed() bool   { return g.armed }
func (g *Gate) Locked() bool  { return g.locked }
func (g *Gate) Showing() bool { return g.showing }

// Start shows the indicator if armed and visible, and always locks input.
// It reports whether the indicator was shown.
func (g *Gate) Start(visible bool) bool {
	g.consumed = true
	if g.armed && visible {
		g.indicator.Show()
		g.showing = true
	}
	g.locker.Lock()
	g.locked = true
	return g.showing
}

// Finish hides the indicator, unlocks input and re-arms for the next cycle.
func (g *Gate) Finish() {
	g.indicator.Hide()
	g.showing = false
	g.locker.Unlock()
	g.locked = false
	if g.consumed {
		g.armed = true
		g.consumed = false
	}
}
