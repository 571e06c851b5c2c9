package listtree

import (
	"errors"
	"log/slog"
	"time"
)

// ErrNoBuilder is returned by Rebuild on an adapter created without a builder.
var ErrNoBuilder = errors.New("list adapter has no builder")

// Builder populates an empty root from a record collection. Sections whose
// tag is in collapsed must start collapsed.
type Builder[T any] func(root *Root[T], records []T, ref time.Time, collapsed TagSet) error

// Binder renders resolved rows for the host.
type Binder[T any] interface {
	Bind(pos int, n Node[T]) error
	// BindEmpty renders a neutral placeholder for a row that could not be
	// resolved or whose rendering failed.
	BindEmpty(pos int)
}

// Adapter is the glue between one tree and a virtualizing host. It answers
// row queries, turns toggle gestures into collapse changes with exact
// notifications, and tracks the collapsed tags so callers can persist them.
//
// An Adapter is owned by a single goroutine (the UI loop) and does no locking.
type Adapter[T any] struct {
	name      string
	root      *Root[T]
	pinned    Node[T]
	collapsed TagSet
	build     Builder[T]
	notifier  Notifier
	binder    Binder[T]
	logger    *slog.Logger
}

// NewAdapter creates an adapter with an empty tree. build may be nil for
// lists populated with Populate; logger may be nil.
func NewAdapter[T any](name string, build Builder[T], logger *slog.Logger) *Adapter[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter[T]{
		name:      name,
		root:      NewRoot[T](),
		collapsed: NewTagSet(),
		build:     build,
		notifier:  NopNotifier{},
		logger:    logger.With("list", name),
	}
}

// SetNotifier attaches the host's change listener. nil detaches it.
func (a *Adapter[T]) SetNotifier(n Notifier) {
	if n == nil {
		n = NopNotifier{}
	}
	a.notifier = n
}

func (a *Adapter[T]) SetBinder(b Binder[T]) { a.binder = b }

func (a *Adapter[T]) Name() string   { return a.name }
func (a *Adapter[T]) Root() *Root[T] { return a.root }

// ── host queries ────────────────────────────────────────────────────────────

// RowCount is the number of rows the host should display.
func (a *Adapter[T]) RowCount() (n int) {
	defer a.recoverQuery("count", -1)
	n = a.root.Count()
	if a.pinned != nil {
		n++
	}
	return n
}

// RowKindAt returns the kind of the row at pos, or KindNone.
func (a *Adapter[T]) RowKindAt(pos int) (kind RowKind) {
	defer a.recoverQuery("kind", pos)
	if n, ok := a.lookup(pos); ok {
		return n.Kind()
	}
	return KindNone
}

// ColumnSpanAt returns the grid width of the row at pos, always within
// [1, columns]. Unknown rows span one column.
func (a *Adapter[T]) ColumnSpanAt(pos, columns int) (span int) {
	span = 1
	defer a.recoverQuery("span", pos)
	if n, ok := a.lookup(pos); ok {
		span = clampSpan(n.SpanSize(columns), columns)
	}
	return span
}

// NodeAt resolves pos to its node.
func (a *Adapter[T]) NodeAt(pos int) (n Node[T], ok bool) {
	defer a.recoverQuery("lookup", pos)
	return a.lookup(pos)
}

// BindRowAt renders the row at pos through the binder. Rows that cannot be
// resolved or fail to render are bound as empty placeholders.
func (a *Adapter[T]) BindRowAt(pos int) {
	if a.binder == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("binding row panicked", "pos", pos, "panic", r)
			a.bindEmpty(pos)
		}
	}()
	n, ok := a.lookup(pos)
	if !ok {
		a.logger.Debug("binding unknown row", "pos", pos)
		a.bindEmpty(pos)
		return
	}
	if err := a.binder.Bind(pos, n); err != nil {
		a.logger.Warn("binding row failed", "pos", pos, "kind", n.Kind().String(), "error", err)
		a.bindEmpty(pos)
	}
}

func (a *Adapter[T]) bindEmpty(pos int) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("binding placeholder panicked", "pos", pos, "panic", r)
		}
	}()
	a.binder.BindEmpty(pos)
}

func (a *Adapter[T]) lookup(pos int) (Node[T], bool) {
	if a.pinned != nil {
		if pos == 0 {
			return a.pinned, true
		}
		pos--
	}
	return a.root.ItemAt(pos)
}

func (a *Adapter[T]) recoverQuery(op string, pos int) {
	if r := recover(); r != nil {
		a.logger.Error("list query panicked", "op", op, "pos", pos, "panic", r)
	}
}

// ── collapse toggling ───────────────────────────────────────────────────────

// Toggle flips the section whose header is at pos. It returns false, without
// side effects, when pos is not a section header.
func (a *Adapter[T]) Toggle(pos int) bool {
	n, ok := a.NodeAt(pos)
	if !ok {
		return false
	}
	sec, ok := n.(SectionNode[T])
	if !ok {
		return false
	}
	return a.toggle(pos, sec)
}

// ToggleSection flips sec, which the caller resolved earlier at pos. If the
// tree has been rebuilt since and sec is no longer the node at pos, the call
// is ignored.
func (a *Adapter[T]) ToggleSection(pos int, sec SectionNode[T]) bool {
	if sec == nil {
		return false
	}
	n, ok := a.NodeAt(pos)
	if !ok || n != Node[T](sec) {
		a.logger.Debug("ignoring stale toggle", "pos", pos, "tag", sec.Tag())
		return false
	}
	return a.toggle(pos, sec)
}

// toggle reads the child row count in the state that matches the
// notification: before collapsing for a removal, after expanding for an
// insertion. The tag set is updated before the host hears about it.
func (a *Adapter[T]) toggle(pos int, sec SectionNode[T]) (done bool) {
	defer a.recoverQuery("toggle", pos)
	if sec.Collapsed() {
		sec.SetCollapsed(false)
		a.collapsed.Remove(sec.Tag())
		count := sec.Count() - 1
		a.notifier.ItemChanged(pos)
		if count > 0 {
			a.notifier.ItemRangeInserted(pos+1, count)
		}
	} else {
		count := sec.Count() - 1
		sec.SetCollapsed(true)
		a.collapsed.Add(sec.Tag())
		a.notifier.ItemChanged(pos)
		if count > 0 {
			a.notifier.ItemRangeRemoved(pos+1, count)
		}
	}
	return true
}

// ── replacement ─────────────────────────────────────────────────────────────

// Rebuild discards the tree, regroups records with the builder and tells the
// host the whole data set changed. A builder error leaves the tree empty and
// is returned to the caller.
func (a *Adapter[T]) Rebuild(records []T, ref time.Time) error {
	if a.build == nil {
		return ErrNoBuilder
	}
	a.root.Clear()
	err := a.build(a.root, records, ref, a.collapsed)
	if err != nil {
		a.root.Clear()
	}
	a.notifier.DataSetChanged()
	return err
}

// Populate replaces the tree with whatever fn adds to the root. fn receives
// the collapsed tags to seed new sections with.
func (a *Adapter[T]) Populate(fn func(root *Root[T], collapsed TagSet)) {
	a.root.Clear()
	fn(a.root, a.collapsed)
	a.notifier.DataSetChanged()
}

// Clear removes every row except the pinned one.
func (a *Adapter[T]) Clear() {
	a.root.Clear()
	a.notifier.DataSetChanged()
}

// SetPinned shows n as a single extra row in front of the tree, or removes
// the pinned row when n is nil.
func (a *Adapter[T]) SetPinned(n Node[T]) {
	switch {
	case a.pinned == nil && n != nil:
		a.pinned = n
		a.notifier.ItemRangeInserted(0, 1)
	case a.pinned != nil && n == nil:
		a.pinned = nil
		a.notifier.ItemRangeRemoved(0, 1)
	case a.pinned != nil && n != nil:
		a.pinned = n
		a.notifier.ItemChanged(0)
	}
}

func (a *Adapter[T]) Pinned() (Node[T], bool) {
	return a.pinned, a.pinned != nil
}

// Walk visits every record in the tree in view order, collapsed or not.
func (a *Adapter[T]) Walk(fn func(T)) {
	a.root.Walk(fn)
}

// CollapsedTags returns the currently collapsed tags, sorted.
func (a *Adapter[T]) CollapsedTags() []string {
	return a.collapsed.Sorted()
}

// SetCollapsedTags replaces the collapsed set. It takes effect on the next
// Rebuild or Populate.
func (a *Adapter[T]) SetCollapsedTags(tags []string) {
	a.collapsed = NewTagSet(tags...)
}

// IsCollapsedTag reports whether tag is in the collapsed set.
func (a *Adapter[T]) IsCollapsedTag(tag string) bool {
	return a.collapsed.Has(tag)
}
