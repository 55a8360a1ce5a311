package tui

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// eventRows is the height of the events pane.
const eventRows = 6

// maxEvents bounds the retained history.
const maxEvents = 500

type eventMsg string

func waitEvent(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg(s)
	}
}

// events is the log tail pane. It is shared by every copy of the model.
type events struct {
	ch        <-chan string
	lines     []string
	shown     bool
	frozen    bool
	frozenBuf []string
	offset    int // rows scrolled back from the newest line
	status    string
}

func newEvents(ch <-chan string) *events {
	return &events{ch: ch}
}

func (e *events) wait() tea.Cmd {
	if e.ch == nil {
		return nil
	}
	return waitEvent(e.ch)
}

func (e *events) add(line string) {
	if e.frozen {
		e.frozenBuf = append(e.frozenBuf, line)
		return
	}
	e.lines = append(e.lines, line)
	if n := len(e.lines) - maxEvents; n > 0 {
		e.lines = e.lines[n:]
	}
}

func (e *events) toggle() { e.shown = !e.shown }

// handleKey handles pane keys and reports whether the key was consumed.
func (e *events) handleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "p":
		e.frozen = !e.frozen
		if !e.frozen {
			for _, l := range e.frozenBuf {
				e.add(l)
			}
			e.frozenBuf = nil
			e.status = "resumed"
		} else {
			e.status = "paused"
		}
	case "[":
		if e.offset < len(e.lines)-1 {
			e.offset++
		}
	case "]":
		if e.offset > 0 {
			e.offset--
		}
	case "w":
		path, err := e.save(filepath.Join(".edgescroll", "logs"))
		if err != nil {
			e.status = "save failed: " + err.Error()
		} else {
			e.status = "saved " + path
		}
	default:
		return false
	}
	return true
}

func (e *events) save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, time.Now().Format("20060102_150405")+".log")
	return path, os.WriteFile(path, []byte(strings.Join(e.lines, "\n")+"\n"), 0o644)
}

// visible returns the rows the pane shows, newest last.
func (e *events) visible(rows int) []string {
	end := len(e.lines) - e.offset
	start := max(0, end-rows)
	return append([]string(nil), e.lines[start:end]...)
}

func (e *events) view(width int) string {
	head := "events  [p] pause  [ ] scroll  [w] save"
	if e.status != "" {
		head += "  " + e.status
	}
	body := e.visible(eventRows - 2)
	for i, l := range body {
		if width > 4 && len(l) > width-4 {
			body[i] = l[:width-4]
		}
	}
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if width > 2 {
		box = box.Width(width - 2)
	}
	content := faintStyle.Render(head) + "\n" + strings.Join(body, "\n")
	return box.Render(content)
}
