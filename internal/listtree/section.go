package listtree

import (
	"fmt"
	"iter"
)

// SectionNode is a collapsible, tagged group of rows. The adapter and the
// grouping engine work with this interface so sections with different
// aggregate types can share one tree.
type SectionNode[T any] interface {
	Node[T]
	Tag() string
	Title() string
	Summary() string
	Collapsed() bool
	SetCollapsed(collapsed bool)
	Add(n Node[T])
	Len() int
	Children() []Node[T]
	FindSection(tag string) (SectionNode[T], bool)
	Refresh()
	RefreshSections()
}

// Section is a header row followed by its children. Its aggregate of type A
// is recomputed in full by Refresh.
type Section[T any, A fmt.Stringer] struct {
	Container[T]
	tag       string
	title     string
	kind      RowKind
	collapsed bool

	summarize func(records iter.Seq[T]) A
	aggregate A
	computed  bool
}

// NewSection creates an expanded section. summarize may be nil for sections
// that carry no aggregate.
func NewSection[T any, A fmt.Stringer](tag, title string, kind RowKind, summarize func(iter.Seq[T]) A) *Section[T, A] {
	return &Section[T, A]{tag: tag, title: title, kind: kind, summarize: summarize}
}

func (s *Section[T, A]) Tag() string   { return s.tag }
func (s *Section[T, A]) Title() string { return s.title }
func (s *Section[T, A]) Kind() RowKind { return s.kind }

func (s *Section[T, A]) Collapsed() bool             { return s.collapsed }
func (s *Section[T, A]) SetCollapsed(collapsed bool) { s.collapsed = collapsed }

func (s *Section[T, A]) Count() int {
	if s.collapsed {
		return 1
	}
	return 1 + s.childCount()
}

func (s *Section[T, A]) ItemAt(pos int) (Node[T], bool) {
	if pos == 0 {
		return s, true
	}
	if pos < 0 || s.collapsed {
		return nil, false
	}
	return s.childAt(pos - 1)
}

func (s *Section[T, A]) SpanSize(columns int) int { return FullSpan(columns) }

// Refresh recomputes the aggregate over every record in the section,
// including records inside collapsed subsections.
func (s *Section[T, A]) Refresh() {
	if s.summarize == nil {
		return
	}
	s.aggregate = s.summarize(s.Records())
	s.computed = true
}

// Aggregate returns the last computed aggregate and whether one exists.
func (s *Section[T, A]) Aggregate() (A, bool) {
	return s.aggregate, s.computed
}

// Summary is the aggregate's text, or "" before the first Refresh.
func (s *Section[T, A]) Summary() string {
	if !s.computed {
		return ""
	}
	return s.aggregate.String()
}
