// Package sessionlog is the grouped activity log of the current study
// session: its items by progress, followed by recent events.
package sessionlog

import (
	"iter"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/listtree"
	"github.com/dustin/go-humanize/english"
)

// Entry is one log row record: a session item or an event, never both.
type Entry struct {
	Item  *domain.SessionItem
	Event *domain.LogEvent
}

func (e Entry) IsItem() bool  { return e.Item != nil }
func (e Entry) IsEvent() bool { return e.Event != nil }

// Subject returns the subject the entry refers to, if any.
func (e Entry) Subject() (*domain.Subject, bool) {
	switch {
	case e.Item != nil && e.Item.Subject != nil:
		return e.Item.Subject, true
	case e.Event != nil && e.Event.SessionItem != nil && e.Event.SessionItem.Subject != nil:
		return e.Event.SessionItem.Subject, true
	}
	return nil, false
}

// CountSummary is the header aggregate: how many rows the section holds.
type CountSummary struct {
	Items  int
	Events int
}

func countEntries(entries iter.Seq[Entry]) CountSummary {
	var c CountSummary
	for e := range entries {
		switch {
		case e.IsItem():
			c.Items++
		case e.IsEvent():
			c.Events++
		}
	}
	return c
}

func (c CountSummary) String() string {
	if c.Events > 0 && c.Items == 0 {
		return english.Plural(c.Events, "event", "events")
	}
	return english.Plural(c.Items, "item", "items")
}

// Header is the section type of every log section.
type Header = listtree.Section[Entry, CountSummary]

func newHeader(tag, title string) *Header {
	return listtree.NewSection(tag, title, listtree.KindLogHeader, countEntries)
}
