// Package tui hosts the interactive demo: a paged feed inside the edge
// gesture scroll view, with status chips, help and an events pane.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"

	"edgescroll/internal/config"
	"edgescroll/internal/coordinator"
	"edgescroll/internal/feed"
	"edgescroll/internal/gesture"
	"edgescroll/internal/tui/scrollview"
	"edgescroll/internal/tui/state"
	"edgescroll/internal/tui/util"
	"edgescroll/internal/tui/widgets/diff"
	"edgescroll/internal/tui/widgets/helpoverlay"
	"edgescroll/internal/tui/widgets/statusbar"
	"edgescroll/internal/tui/widgets/tagchips"
)

// Options configure the demo.
type Options struct {
	Config  config.Config
	Logger  logr.Logger
	Events  <-chan string
	NoColor bool
}

// Run shows the demo and blocks until the user quits.
func Run(opts Options) error {
	m, err := newModel(opts)
	if err != nil {
		return err
	}
	defer m.sv.Dispose()
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

type keyMap struct {
	Refresh   key.Binding
	Strategy  key.Binding
	Native    key.Binding
	Authoring key.Binding
	Silence   key.Binding
	Copy      key.Binding
	Events    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Strategy:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "strategy")),
		Native:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "native")),
		Authoring: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "authoring")),
		Silence:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "silent next")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Events:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "events")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Strategy, k.Native, k.Events, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Refresh, k.Silence, k.Copy},
		{k.Strategy, k.Native, k.Authoring},
		{k.Events, k.Help, k.Quit},
	}
}

type model struct {
	sv   *scrollview.Model
	feed *feed.Feed
	ui   state.UIState

	names   []string
	keys    keyMap
	help    help.Model
	status  statusbar.StatusBar
	overlay helpoverlay.HelpOverlay
	events  *events
	log     logr.Logger

	// copy is swapped in tests
	copy func(string) error
}

func newModel(opts Options) (model, error) {
	cfg := opts.Config
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	gopts := cfg.GestureOptions()
	gopts.Logger = log
	sv, err := scrollview.New(scrollview.Config{
		Strategy:      cfg.StrategyName(),
		Native:        cfg.Strategy.Native,
		AuthoringMode: cfg.AuthoringMode,
		Gesture:       gopts,
		Texts: scrollview.Texts{
			PullingDown: cfg.Texts.PullingDown,
			PulledDown:  cfg.Texts.PulledDown,
			Refreshing:  cfg.Texts.Refreshing,
			ReachBottom: cfg.Texts.ReachBottom,
		},
		Settle:     cfg.Gesture.Settle(),
		Frame:      cfg.Gesture.Frame(),
		PanelDelay: cfg.Panel.Delay(),
		NoColor:    opts.NoColor,
		Logger:     log,
	})
	if err != nil {
		return model{}, err
	}

	names := make([]string, 0, 4)
	for _, n := range gesture.Names() {
		names = append(names, string(n))
	}
	m := model{
		sv:      sv,
		feed:    feed.New(cfg.Feed.PageSize, cfg.Feed.Pages, cfg.Feed.Latency()),
		ui:      state.UIState{NoColor: opts.NoColor},
		names:   names,
		keys:    defaultKeys(),
		help:    help.New(),
		status:  statusbar.NewStatusBar(),
		overlay: helpoverlay.NewHelpOverlay(),
		events:  newEvents(opts.Events),
		log:     log.WithName("demo"),
		copy:    clipboard.WriteAll,
	}
	f := m.feed
	sv.OnPullDown(f.Refresh)
	sv.OnReachBottom(func() tea.Cmd {
		if cmd := f.Next(); cmd != nil {
			return cmd
		}
		return func() tea.Msg { return feed.PageMsg{Last: true} }
	})
	m.syncUI()
	return m, nil
}

// Init loads the first page. The load is bracketed by hand since no gesture
// started it.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.sv.StartLoading(), m.feed.Next(), m.events.wait())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui = state.Resize(m.ui, msg.Width, msg.Height)
		m.layout()
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case feed.PageMsg:
		m.sv.AppendContent(titles(msg.Items)...)
		cmds := []tea.Cmd{m.sv.FinishLoading()}
		if msg.Last {
			cmds = append(cmds, m.sv.OnReachBottom(nil))
			m.ui = state.WithNotice(m.ui, "End of feed")
		}
		cmd = tea.Batch(cmds...)
	case feed.RefreshMsg:
		before := m.sv.Lines()
		after := append(titles(msg.Items), before...)
		m.sv.SetContent(after)
		m.ui = state.WithNotice(m.ui, diff.Compare(before, after).Summary())
		cmd = m.sv.FinishLoading()
	case eventMsg:
		m.events.add(string(msg))
		cmd = m.events.wait()
	default:
		_, cmd = m.sv.Update(msg)
	}
	m.syncUI()
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.ui.ShowHelp {
		// any key closes help
		m.ui = state.ToggleHelp(m.ui)
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sv.Dispose()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.ui = state.ToggleHelp(m.ui)
	case key.Matches(msg, m.keys.Refresh):
		return m.sv.Refresh()
	case key.Matches(msg, m.keys.Strategy):
		m.ui = state.NextStrategy(m.ui, m.names)
		return m.applyStrategy()
	case key.Matches(msg, m.keys.Native):
		m.ui = state.ToggleNative(m.ui)
		return m.applyStrategy()
	case key.Matches(msg, m.keys.Authoring):
		m.ui = state.ToggleAuthoring(m.ui)
		return m.sv.SetAuthoringMode(m.ui.Authoring)
	case key.Matches(msg, m.keys.Silence):
		if m.sv.Locked() {
			// releasing now would end the running load before its page lands
			m.ui = state.WithNotice(m.ui, "Busy: wait for the current load")
			return nil
		}
		m.ui = state.WithNotice(m.ui, "Next load runs without the indicator")
		return m.sv.ReleaseIndicator(false)
	case key.Matches(msg, m.keys.Copy):
		rows := m.sv.VisibleLines()
		if err := m.copy(strings.Join(rows, "\n")); err != nil {
			m.ui = state.WithNotice(m.ui, "Copy failed: "+err.Error())
		} else {
			m.ui = state.WithNotice(m.ui, fmt.Sprintf("Copied %d rows", len(rows)))
		}
	case key.Matches(msg, m.keys.Events):
		m.events.toggle()
		m.layout()
	case m.events.shown && m.events.handleKey(msg):
		// consumed by the events pane
	default:
		_, cmd := m.sv.Update(msg)
		return cmd
	}
	return nil
}

func (m *model) applyStrategy() tea.Cmd {
	cmd, err := m.sv.SetStrategy(gesture.Name(m.ui.Strategy), m.ui.Native)
	if err != nil {
		m.log.Error(err, "strategy change rejected", "strategy", m.ui.Strategy)
		m.ui = state.WithNotice(m.ui, "error: "+err.Error())
		return nil
	}
	return cmd
}

// chrome is the number of rows below the scroll view: chips, status, keys.
const chrome = 3

func (m *model) layout() {
	h := m.ui.Height - chrome
	if m.events.shown {
		h -= eventRows + 1
	}
	m.help.Width = m.ui.Width
	m.sv.SetSize(m.ui.Width, max(1, h))
}

func (m *model) syncUI() {
	snap := m.sv.Snapshot()
	m.ui.Strategy = string(snap.Requested)
	m.ui.Resolved = string(snap.Resolved)
	m.ui.Native = snap.Native
	m.ui.Authoring = snap.Authoring
	m.ui.PullDown = channelState(snap.PullDown)
	m.ui.ReachBottom = channelState(snap.ReachBottom)
	m.ui.Locked = snap.Locked
	m.ui.Armed = snap.Armed
	m.ui.Phase = snap.Phase.String()
	m.ui.Rows = snap.Rows
	m.ui.Exhausted = m.feed.Exhausted()
}

func channelState(s coordinator.State) state.ChannelState {
	switch s {
	case coordinator.Idle:
		return state.Ready
	case coordinator.Loading:
		return state.Busy
	default:
		return state.Off
	}
}

func titles(items []feed.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.String())
	}
	return out
}

func (m model) View() string {
	if m.ui.ShowHelp {
		return titleStyle.Render("edgescroll") + "\n\n" + m.overlay.View(m.ui) + "\n" + faintStyle.Render("press any key to close")
	}
	var b strings.Builder
	b.WriteString(m.sv.View())
	b.WriteString("\n")
	if m.events.shown {
		b.WriteString(m.events.view(m.ui.Width))
		b.WriteString("\n")
	}
	b.WriteString(tagchips.View(util.ComputeTags(m.ui), m.ui.NoColor))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(m.status.View(m.ui)))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
