package listtree

import (
	"iter"
	"slices"
)

// Container holds an ordered list of exclusively owned children.
type Container[T any] struct {
	children []Node[T]
}

func (c *Container[T]) Add(n Node[T]) {
	c.children = append(c.children, n)
}

func (c *Container[T]) Len() int { return len(c.children) }

// Children returns a copy of the direct children in insertion order.
func (c *Container[T]) Children() []Node[T] {
	return slices.Clone(c.children)
}

func (c *Container[T]) Clear() {
	clear(c.children)
	c.children = c.children[:0]
}

// FindSection returns the direct child section with the given tag.
func (c *Container[T]) FindSection(tag string) (SectionNode[T], bool) {
	for _, child := range c.children {
		if s, ok := child.(SectionNode[T]); ok && s.Tag() == tag {
			return s, true
		}
	}
	return nil, false
}

func (c *Container[T]) Walk(fn func(T)) {
	for _, child := range c.children {
		child.Walk(fn)
	}
}

// Records yields every contained record depth-first, ignoring collapse state.
func (c *Container[T]) Records() iter.Seq[T] {
	return func(yield func(T) bool) {
		done := false
		c.Walk(func(v T) {
			if !done && !yield(v) {
				done = true
			}
		})
	}
}

// RefreshSections recomputes the aggregates of every nested section,
// children before their parents.
func (c *Container[T]) RefreshSections() {
	for _, child := range c.children {
		if s, ok := child.(SectionNode[T]); ok {
			s.RefreshSections()
			s.Refresh()
		}
	}
}

func (c *Container[T]) childCount() int {
	n := 0
	for _, child := range c.children {
		n += child.Count()
	}
	return n
}

// childAt resolves pos against the flattened children.
func (c *Container[T]) childAt(pos int) (Node[T], bool) {
	if pos < 0 {
		return nil, false
	}
	for _, child := range c.children {
		n := child.Count()
		if pos < n {
			return child.ItemAt(pos)
		}
		pos -= n
	}
	return nil, false
}
