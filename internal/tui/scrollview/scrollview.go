// Package scrollview is a Bubble Tea scroll container with pull-down refresh
// and reach-bottom loading. Key and mouse input is turned into gesture motion
// for the active strategy; the coordinator decides when handlers run.
//
// All public operations return a tea.Cmd carrying whatever follow-up work the
// operation scheduled (handler commands, animation frames, spinner ticks).
// Callers must return it from their own Update.
package scrollview

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"edgescroll/internal/coordinator"
	"edgescroll/internal/gesture"
	"edgescroll/internal/tui/util"
	"edgescroll/internal/tui/widgets/loadpanel"
)

// Texts are the pocket labels.
type Texts struct {
	PullingDown string
	PulledDown  string
	Refreshing  string
	ReachBottom string
}

func DefaultTexts() Texts {
	return Texts{
		PullingDown: "Pull down to refresh...",
		PulledDown:  "Release to refresh...",
		Refreshing:  "Refreshing...",
		ReachBottom: "Loading...",
	}
}

// Config configures a Model.
type Config struct {
	Strategy      gesture.Name
	Native        bool
	AuthoringMode bool
	Gesture       gesture.Options
	Texts         Texts

	// Settle is how long a pull may sit without input before it counts as
	// released.
	Settle time.Duration
	// Frame is the release animation interval.
	Frame time.Duration
	// PanelDelay postpones the load panel so quick loads never flash it.
	PanelDelay time.Duration

	NoColor bool
	Logger  logr.Logger
	// Registry overrides the strategy table, mostly for tests.
	Registry gesture.Registry
}

type settleMsg struct{ seq int }

type frameMsg struct{}

type panelMsg struct{ seq int }

// Model is the scroll view. Use it through a pointer; the coordinator holds
// callbacks into it.
type Model struct {
	keys    KeyMap
	vp      viewport.Model
	spin    spinner.Model
	panel   loadpanel.LoadPanel
	palette util.Palette
	noColor bool
	texts   Texts
	log     logr.Logger

	settle     time.Duration
	frame      time.Duration
	panelDelay time.Duration

	coord *coordinator.Coordinator

	lines   []string
	width   int
	height  int
	visible bool

	onPullDown    func() tea.Cmd
	onReachBottom func() tea.Cmd

	// container-side collaborator state
	locked     bool
	indicator  bool
	panelUp    bool
	panelSeq   int
	settleSeq  int
	animating  bool
	ticking    bool
	queued     []tea.Cmd
	wheelDelta int
}

// New builds the scroll view and its coordinator. An unknown strategy name
// fails with *gesture.UnknownStrategyError.
func New(cfg Config) (*Model, error) {
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	texts := cfg.Texts
	def := DefaultTexts()
	if texts.PullingDown == "" {
		texts.PullingDown = def.PullingDown
	}
	if texts.PulledDown == "" {
		texts.PulledDown = def.PulledDown
	}
	if texts.Refreshing == "" {
		texts.Refreshing = def.Refreshing
	}
	if texts.ReachBottom == "" {
		texts.ReachBottom = def.ReachBottom
	}

	palette := util.DefaultPalette()
	m := &Model{
		keys:       DefaultKeyMap(),
		vp:         viewport.New(0, 0),
		palette:    palette,
		noColor:    cfg.NoColor,
		texts:      texts,
		log:        log.WithName("scrollview"),
		settle:     cfg.Settle,
		frame:      cfg.Frame,
		panelDelay: cfg.PanelDelay,
		visible:    true,
		wheelDelta: 3,
	}
	m.vp.MouseWheelEnabled = false
	m.spin = spinner.New(spinner.WithSpinner(spinner.MiniDot))
	m.panel = loadpanel.NewLoadPanel(palette.Accent)
	if !cfg.NoColor {
		m.spin.Style = m.spin.Style.Foreground(palette.Accent)
	}

	s := &surface{m: m}
	coord, err := coordinator.New(coordinator.Options{
		Strategy:      cfg.Strategy,
		Native:        cfg.Native,
		AuthoringMode: cfg.AuthoringMode,
		Gesture:       cfg.Gesture,
		Registry:      cfg.Registry,
		Container:     s,
		Indicator:     s,
		Locker:        s,
		Logger:        log,
	})
	if err != nil {
		return nil, err
	}
	m.coord = coord
	m.syncContent()
	return m, nil
}

// surface adapts the model to the coordinator's collaborator interfaces
// without putting Show/Lock/... on the model's public API.
type surface struct{ m *Model }

func (s *surface) Visible() bool { return s.m.Visible() }
func (s *surface) IsFull() bool  { return s.m.IsFull() }
func (s *surface) IsEmpty() bool { return s.m.IsEmpty() }

func (s *surface) SetReachBottomText(text string) { s.m.texts.ReachBottom = text }

func (s *surface) Show() {
	m := s.m
	m.indicator = true
	m.panelSeq++
	if m.panelDelay <= 0 {
		m.panelUp = true
		return
	}
	seq := m.panelSeq
	m.enqueue(tea.Tick(m.panelDelay, func(time.Time) tea.Msg { return panelMsg{seq: seq} }))
}

func (s *surface) Hide() {
	m := s.m
	m.indicator = false
	m.panelUp = false
	m.panelSeq++
}

func (s *surface) Lock()   { s.m.locked = true }
func (s *surface) Unlock() { s.m.locked = false }

func (m *Model) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		m.queued = append(m.queued, cmd)
	}
}

// flush reconciles rendering state with the coordinator and hands back every
// command queued since the last flush.
func (m *Model) flush() tea.Cmd {
	m.syncContent()
	if s := m.strategy(); s != nil && s.Phase() == gesture.Releasing && !m.animating {
		m.animating = true
		m.enqueue(m.frameTick())
	}
	if m.needsSpinner() && !m.ticking {
		m.ticking = true
		m.enqueue(m.spin.Tick)
	}
	cmds := m.queued
	m.queued = nil
	return tea.Batch(cmds...)
}

func (m *Model) frameTick() tea.Cmd {
	return tea.Tick(m.frame, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m *Model) strategy() gesture.Strategy { return m.coord.Strategy() }

func (m *Model) needsSpinner() bool {
	if m.panelUp || m.coord.State(coordinator.ReachBottom) == coordinator.Loading {
		return true
	}
	s := m.strategy()
	return s != nil && (s.Phase() == gesture.Active || s.Phase() == gesture.Releasing)
}

// Update handles scroll input and the view's own timers. Input is swallowed
// while a cycle holds the lock.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.locked {
			return m, nil
		}
		m.handleKey(msg)
	case tea.MouseMsg:
		if m.locked {
			return m, nil
		}
		m.handleMouse(msg)
	case settleMsg:
		if msg.seq == m.settleSeq {
			m.feed(gesture.Motion{Kind: gesture.Settle, AtTop: m.vp.AtTop(), Remaining: m.remaining()})
		}
	case frameMsg:
		m.animating = false
		if s := m.strategy(); s != nil && s.Step() {
			m.animating = true
			m.enqueue(m.frameTick())
		}
	case panelMsg:
		if msg.seq == m.panelSeq && m.indicator {
			m.panelUp = true
		}
	case spinner.TickMsg:
		if !m.needsSpinner() {
			m.ticking = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		m.enqueue(cmd)
	}
	return m, m.flush()
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-max(1, m.vp.Height))
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(max(1, m.vp.Height))
	case key.Matches(msg, m.keys.Top):
		m.scrollBy(-m.vp.YOffset)
	case key.Matches(msg, m.keys.Bottom):
		m.scrollBy(m.maxOffset() - m.vp.YOffset)
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-m.wheelDelta)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(m.wheelDelta)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.feed(gesture.Motion{Kind: gesture.Press, Y: msg.Y, AtTop: m.vp.AtTop(), Remaining: m.remaining()})
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionMotion:
		m.feed(gesture.Motion{Kind: gesture.Drag, Y: msg.Y, AtTop: m.vp.AtTop(), Remaining: m.remaining()})
	case msg.Action == tea.MouseActionRelease:
		m.feed(gesture.Motion{Kind: gesture.Lift, Y: msg.Y, AtTop: m.vp.AtTop(), Remaining: m.remaining()})
	}
}

// scrollBy moves the viewport and reports the motion. AtTop is sampled
// before moving so an upward scroll that starts at the top reads as a pull.
func (m *Model) scrollBy(delta int) {
	atTop := m.vp.AtTop()
	m.vp.SetYOffset(m.vp.YOffset + delta)
	m.feed(gesture.Motion{Kind: gesture.Scroll, Delta: delta, AtTop: atTop, Remaining: m.remaining()})
	if s := m.strategy(); s != nil && s.Phase() == gesture.Pending {
		m.settleSeq++
		seq := m.settleSeq
		m.enqueue(tea.Tick(m.settle, func(time.Time) tea.Msg { return settleMsg{seq: seq} }))
	}
}

func (m *Model) feed(mo gesture.Motion) {
	s := m.strategy()
	if s == nil {
		return
	}
	m.log.V(2).Info("motion", "kind", int(mo.Kind), "delta", mo.Delta, "atTop", mo.AtTop, "remaining", mo.Remaining)
	s.Feed(mo)
}

func (m *Model) maxOffset() int {
	return max(0, m.vp.TotalLineCount()-m.vp.Height)
}

// remaining is the number of content rows below the visible window.
func (m *Model) remaining() int {
	return max(0, m.vp.TotalLineCount()-(m.vp.YOffset+m.vp.Height))
}

// bottomPocket reports whether the reach-bottom row trails the content.
func (m *Model) bottomPocket() bool {
	return m.coord.Enabled(coordinator.ReachBottom) || m.coord.State(coordinator.ReachBottom) == coordinator.Loading
}

func (m *Model) syncContent() {
	lines := m.lines
	if m.bottomPocket() {
		lines = append(append([]string(nil), lines...), "")
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.vp.YOffset > m.maxOffset() {
		m.vp.SetYOffset(m.maxOffset())
	}
}

// OnPullDown attaches the pull-down handler; nil detaches it and disables
// the gesture.
func (m *Model) OnPullDown(fn func() tea.Cmd) tea.Cmd {
	m.onPullDown = fn
	// only strategy rebuilds and unknown channels fail
	_ = m.coord.Apply(coordinator.HandlerChanged{Channel: coordinator.PullDown, Handler: m.handler(fn)})
	return m.flush()
}

// OnReachBottom attaches the reach-bottom handler; nil detaches it and
// removes the bottom pocket.
func (m *Model) OnReachBottom(fn func() tea.Cmd) tea.Cmd {
	m.onReachBottom = fn
	_ = m.coord.Apply(coordinator.HandlerChanged{Channel: coordinator.ReachBottom, Handler: m.handler(fn)})
	return m.flush()
}

func (m *Model) handler(fn func() tea.Cmd) func() {
	if fn == nil {
		return nil
	}
	return func() { m.enqueue(fn()) }
}

// SetStrategy swaps the gesture strategy. On error the current one stays.
func (m *Model) SetStrategy(name gesture.Name, native bool) (tea.Cmd, error) {
	if err := m.coord.Apply(coordinator.StrategyChanged{Name: name, Native: native}); err != nil {
		return nil, err
	}
	return m.flush(), nil
}

// SetGestureOptions rebuilds the strategy with new tuning.
func (m *Model) SetGestureOptions(opts gesture.Options) (tea.Cmd, error) {
	if err := m.coord.Apply(coordinator.GestureOptionsChanged{Options: opts}); err != nil {
		return nil, err
	}
	return m.flush(), nil
}

func (m *Model) SetAuthoringMode(on bool) tea.Cmd {
	_ = m.coord.Apply(coordinator.AuthoringModeChanged{Enabled: on})
	return m.flush()
}

func (m *Model) SetReachBottomText(text string) tea.Cmd {
	_ = m.coord.Apply(coordinator.ReachBottomTextChanged{Text: text})
	return m.flush()
}

// Refresh runs the pull-down handler as if the user had pulled.
func (m *Model) Refresh() tea.Cmd {
	m.coord.Refresh()
	return m.flush()
}

// Release collapses the open pocket; the cycle finishes when it is closed.
func (m *Model) Release() tea.Cmd {
	m.coord.Release()
	return m.flush()
}

// ReleaseIndicator decides whether the next cycle shows the load panel, then
// releases.
func (m *Model) ReleaseIndicator(show bool) tea.Cmd {
	m.coord.ReleaseIndicator(show)
	return m.flush()
}

// StartLoading brackets a load the caller started on its own.
func (m *Model) StartLoading() tea.Cmd {
	m.coord.StartLoading()
	return m.flush()
}

// FinishLoading ends the running cycle and starts collapsing the pocket.
func (m *Model) FinishLoading() tea.Cmd {
	m.coord.FinishLoading()
	return m.flush()
}

// Dispose tears the coordinator down. Further operations are no-ops.
func (m *Model) Dispose() {
	m.coord.Dispose()
	m.onPullDown = nil
	m.onReachBottom = nil
	m.queued = nil
}

// SetContent replaces the content lines.
func (m *Model) SetContent(lines []string) {
	m.lines = append([]string(nil), lines...)
	m.syncContent()
}

// AppendContent adds lines after the existing content.
func (m *Model) AppendContent(lines ...string) {
	m.lines = append(m.lines, lines...)
	m.syncContent()
}

// Lines returns a copy of the content.
func (m *Model) Lines() []string { return append([]string(nil), m.lines...) }

// VisibleLines returns the content rows currently in the window.
func (m *Model) VisibleLines() []string {
	start := min(m.vp.YOffset, len(m.lines))
	end := min(m.vp.YOffset+m.vp.Height, len(m.lines))
	return append([]string(nil), m.lines[start:end]...)
}

func (m *Model) SetSize(width, height int) {
	m.width = max(0, width)
	m.height = max(0, height)
	m.vp.Width = m.width
	m.vp.Height = m.height
	m.syncContent()
}

// SetVisible marks the view hidden or shown. Hidden views never show the
// load panel.
func (m *Model) SetVisible(v bool) { m.visible = v }

func (m *Model) Visible() bool { return m.visible && m.width > 0 && m.height > 0 }

// IsFull reports whether the content overflows the window.
func (m *Model) IsFull() bool { return len(m.lines) > m.vp.Height }

func (m *Model) IsEmpty() bool { return len(m.lines) == 0 }

func (m *Model) AtTop() bool    { return m.vp.AtTop() }
func (m *Model) AtBottom() bool { return m.remaining() == 0 }

// Locked reports whether a cycle currently holds the input lock.
func (m *Model) Locked() bool { return m.locked }

// PanelShown reports whether the load panel is on screen.
func (m *Model) PanelShown() bool { return m.panelUp }

func (m *Model) Keys() KeyMap { return m.keys }

// Snapshot is a read-only summary for status displays.
type Snapshot struct {
	Requested   gesture.Name
	Resolved    gesture.Name
	Native      bool
	Authoring   bool
	Phase       gesture.Phase
	PullDown    coordinator.State
	ReachBottom coordinator.State
	Locked      bool
	Armed       bool
	Rows        int
}

func (m *Model) Snapshot() Snapshot {
	name, native := m.coord.Requested()
	snap := Snapshot{
		Requested:   name,
		Native:      native,
		Authoring:   m.coord.AuthoringMode(),
		PullDown:    m.coord.State(coordinator.PullDown),
		ReachBottom: m.coord.State(coordinator.ReachBottom),
		Locked:      m.locked,
		Armed:       m.coord.IndicatorArmed(),
		Rows:        len(m.lines),
	}
	if s := m.strategy(); s != nil {
		snap.Resolved = s.Name()
		snap.Phase = s.Phase()
	}
	return snap
}
