// Package listtree implements the positional tree behind grouped,
// collapsible lists that are rendered by a virtualizing host.
//
// A host never sees the tree. It asks an Adapter how many rows there are and
// what sits at a given row; the answer is computed by walking the tree with
// the current collapse state, so there is no flattened copy to keep in sync.
package listtree

// Node is one unit of the tree. Count is the number of rows the node
// occupies when flattened under the current collapse state; ItemAt resolves
// an offset relative to the node's first row.
type Node[T any] interface {
	Count() int
	ItemAt(pos int) (Node[T], bool)
	Kind() RowKind
	SpanSize(columns int) int
	// Walk visits every record at and below the node, including records
	// hidden inside collapsed sections.
	Walk(fn func(T))
}

// SpanFunc returns how many grid columns a row wants in a layout of the
// given width.
type SpanFunc func(columns int) int

// SingleSpan occupies one column.
func SingleSpan(int) int { return 1 }

// FullSpan occupies the whole row.
func FullSpan(columns int) int { return clampSpan(columns, columns) }

// WideSpan takes three columns on layouts of six or more, otherwise the full row.
func WideSpan(columns int) int {
	if columns >= 6 {
		return 3
	}
	return FullSpan(columns)
}

func clampSpan(span, columns int) int {
	if columns < 1 {
		columns = 1
	}
	switch {
	case span < 1:
		return 1
	case span > columns:
		return columns
	default:
		return span
	}
}
