package sessionlog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/listtree"
	"github.com/google/uuid"
)

// Section tags, also used as keys for the persisted collapsed set.
const (
	TagAbandoned  = "abandoned"
	TagCompleted  = "completed"
	TagStarted    = "started"
	TagNotStarted = "notstarted"
	TagEvents     = "events"
)

var itemSections = []struct {
	tag   string
	title string
	keep  func(*domain.SessionItem) bool
}{
	{TagAbandoned, "Abandoned items", (*domain.SessionItem).IsAbandoned},
	{TagCompleted, "Completed items", func(i *domain.SessionItem) bool { return i.IsPending() || i.IsReported() }},
	{TagStarted, "Started items", (*domain.SessionItem).IsStarted},
	{TagNotStarted, "Not-started items", func(i *domain.SessionItem) bool { return i.IsActive() && !i.IsStarted() }},
}

// Log is the session activity list. Events are kept newest first and show
// up on the next Initialize.
type Log struct {
	list   *listtree.Adapter[Entry]
	events []*domain.LogEvent
	now    func() time.Time
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{
		list: listtree.NewAdapter[Entry](string(domain.ListSessionLog), nil, logger),
		now:  time.Now,
	}
}

// WithClock replaces the time source used to stamp events.
func (l *Log) WithClock(now func() time.Time) *Log {
	l.now = now
	return l
}

func (l *Log) List() *listtree.Adapter[Entry] { return l.list }

// Initialize rebuilds the list from the session's items and the events
// recorded so far. Empty sections are left out.
func (l *Log) Initialize(items []*domain.SessionItem) {
	l.list.Populate(func(root *listtree.Root[Entry], collapsed listtree.TagSet) {
		for _, s := range itemSections {
			h := newHeader(s.tag, s.title)
			for _, item := range items {
				if item != nil && s.keep(item) {
					h.Add(listtree.NewLeaf(Entry{Item: item}, listtree.KindLogItem, listtree.WideSpan).WithParent(h))
				}
			}
			if h.Len() > 0 {
				h.SetCollapsed(collapsed.Has(s.tag))
				root.Add(h)
			}
		}

		events := newHeader(TagEvents, "Events")
		for _, ev := range l.events {
			events.Add(listtree.NewLeaf(Entry{Event: ev}, listtree.KindLogEvent, listtree.WideSpan).WithParent(events))
		}
		if events.Len() > 0 {
			events.SetCollapsed(collapsed.Has(TagEvents))
			root.Add(events)
		}
		root.RefreshSections()
	})
}

// Clear drops all rows and events for a new session.
func (l *Log) Clear() {
	l.events = nil
	l.list.Clear()
}

func StartSessionText(t domain.SessionType) string {
	return fmt.Sprintf("%s session started", t.Description())
}

func LoadSessionText(t domain.SessionType) string {
	return fmt.Sprintf("%s session re-loaded on app startup", t.Description())
}

func (l *Log) AddEventStartSession(t domain.SessionType) *domain.LogEvent {
	return l.addEvent(nil, StartSessionText(t))
}

func (l *Log) AddEventLoadSession(t domain.SessionType) *domain.LogEvent {
	return l.addEvent(nil, LoadSessionText(t))
}

// SetEvents replaces the recorded events, e.g. with those loaded from
// storage. events must be newest first.
func (l *Log) SetEvents(events []*domain.LogEvent) {
	l.events = append([]*domain.LogEvent(nil), events...)
}

// AddEventItem records something that happened to one session item.
func (l *Log) AddEventItem(item *domain.SessionItem, text string) *domain.LogEvent {
	return l.addEvent(item, text)
}

func (l *Log) addEvent(item *domain.SessionItem, text string) *domain.LogEvent {
	ev := &domain.LogEvent{
		ID:          uuid.New().String(),
		At:          l.now(),
		SessionItem: item,
		Text:        text,
	}
	l.events = append([]*domain.LogEvent{ev}, l.events...)
	return ev
}

// Events returns the recorded events, newest first.
func (l *Log) Events() []*domain.LogEvent {
	out := make([]*domain.LogEvent, len(l.events))
	copy(out, l.events)
	return out
}

// SiblingSubjectIDs returns, for the item row at pos, the subjects of every
// item in the same section in row order. It returns nil for other rows.
func (l *Log) SiblingSubjectIDs(pos int) []int64 {
	n, ok := l.list.NodeAt(pos)
	if !ok {
		return nil
	}
	leaf, ok := n.(*listtree.Leaf[Entry])
	if !ok || !leaf.Value().IsItem() {
		return nil
	}
	parent, ok := leaf.Parent()
	if !ok {
		return nil
	}
	var ids []int64
	for _, child := range parent.Children() {
		sib, ok := child.(*listtree.Leaf[Entry])
		if !ok {
			continue
		}
		if s, ok := sib.Value().Subject(); ok && sib.Value().IsItem() {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
