package listtree

// Leaf is a single row wrapping one record. The record is shared with the
// data layer; the leaf never copies or owns it.
type Leaf[T any] struct {
	value  T
	kind   RowKind
	span   SpanFunc
	parent SectionNode[T]
}

// NewLeaf wraps value as a row of the given kind. A nil span means one column.
func NewLeaf[T any](value T, kind RowKind, span SpanFunc) *Leaf[T] {
	if span == nil {
		span = SingleSpan
	}
	return &Leaf[T]{value: value, kind: kind, span: span}
}

// WithParent records the section the leaf was added to. The handle is only
// context for click routing and is never followed by tree logic.
func (l *Leaf[T]) WithParent(parent SectionNode[T]) *Leaf[T] {
	l.parent = parent
	return l
}

func (l *Leaf[T]) Value() T { return l.value }

// Parent returns the section handle set by WithParent, if any.
func (l *Leaf[T]) Parent() (SectionNode[T], bool) {
	return l.parent, l.parent != nil
}

func (l *Leaf[T]) Count() int { return 1 }

func (l *Leaf[T]) ItemAt(pos int) (Node[T], bool) {
	if pos == 0 {
		return l, true
	}
	return nil, false
}

func (l *Leaf[T]) Kind() RowKind { return l.kind }

func (l *Leaf[T]) SpanSize(columns int) int {
	return clampSpan(l.span(columns), columns)
}

func (l *Leaf[T]) Walk(fn func(T)) { fn(l.value) }

// Placeholder is a stateless pseudo-row such as the search form. It spans
// the full width and contributes no records.
type Placeholder[T any] struct {
	kind RowKind
}

func NewPlaceholder[T any](kind RowKind) *Placeholder[T] {
	return &Placeholder[T]{kind: kind}
}

func (p *Placeholder[T]) Count() int { return 1 }

func (p *Placeholder[T]) ItemAt(pos int) (Node[T], bool) {
	if pos == 0 {
		return p, true
	}
	return nil, false
}

func (p *Placeholder[T]) Kind() RowKind            { return p.kind }
func (p *Placeholder[T]) SpanSize(columns int) int { return FullSpan(columns) }
func (p *Placeholder[T]) Walk(func(T))             {}
