// Package feed is a paged content source for the demo scroll view. Pages are
// computed synchronously; only their delivery is delayed, so the model never
// shares state with a running command.
package feed

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Item is one row of content.
type Item struct {
	ID    string
	Title string
}

func (i Item) String() string { return fmt.Sprintf("%s  %s", i.ID[:8], i.Title) }

// PageMsg delivers the next page.
type PageMsg struct {
	Items []Item
	Last  bool
}

// RefreshMsg delivers the items that appeared since the last refresh.
type RefreshMsg struct {
	Items []Item
}

// Feed hands out numbered pages up to a fixed total.
type Feed struct {
	pageSize int
	pages    int
	latency  time.Duration

	served    int
	refreshes int
	now       func() time.Time
}

func New(pageSize, pages int, latency time.Duration) *Feed {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Feed{pageSize: pageSize, pages: pages, latency: latency, now: time.Now}
}

// Exhausted reports whether every page has been served. A feed with a
// non-positive page count never runs dry.
func (f *Feed) Exhausted() bool { return f.pages > 0 && f.served >= f.pages }

// Served is the number of pages handed out so far.
func (f *Feed) Served() int { return f.served }

// Next builds the next page now and returns a command delivering it.
func (f *Feed) Next() tea.Cmd {
	if f.Exhausted() {
		return nil
	}
	items := make([]Item, 0, f.pageSize)
	base := f.served * f.pageSize
	for i := 0; i < f.pageSize; i++ {
		items = append(items, Item{ID: uuid.NewString(), Title: fmt.Sprintf("Entry #%d", base+i+1)})
	}
	f.served++
	msg := PageMsg{Items: items, Last: f.Exhausted()}
	return f.deliver(msg)
}

// Refresh builds a handful of fresh items and returns a command delivering them.
func (f *Feed) Refresh() tea.Cmd {
	f.refreshes++
	n := 1 + f.refreshes%3
	stamp := f.now().Format("15:04:05")
	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, Item{ID: uuid.NewString(), Title: fmt.Sprintf("Fresh %d.%d at %s", f.refreshes, i+1, stamp)})
	}
	return f.deliver(RefreshMsg{Items: items})
}

func (f *Feed) deliver(msg tea.Msg) tea.Cmd {
	if f.latency <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(f.latency, func(time.Time) tea.Msg { return msg })
}
