package listtree

// Root is the entry point of a tree. It is never rendered and contributes
// no row of its own.
type Root[T any] struct {
	Container[T]
}

func NewRoot[T any]() *Root[T] {
	return &Root[T]{}
}

func (r *Root[T]) Count() int { return r.childCount() }

func (r *Root[T]) ItemAt(pos int) (Node[T], bool) { return r.childAt(pos) }

func (r *Root[T]) Kind() RowKind { return KindNone }

func (r *Root[T]) SpanSize(int) int { return 1 }
