package listtree

import "fmt"

// Notifier receives the incremental changes a host needs to keep its own
// row bookkeeping aligned with the tree.
type Notifier interface {
	ItemChanged(pos int)
	ItemRangeInserted(pos, count int)
	ItemRangeRemoved(pos, count int)
	DataSetChanged()
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) ItemChanged(int)            {}
func (NopNotifier) ItemRangeInserted(int, int) {}
func (NopNotifier) ItemRangeRemoved(int, int)  {}
func (NopNotifier) DataSetChanged()            {}

type NotifyOp string

const (
	OpChanged  NotifyOp = "changed"
	OpInserted NotifyOp = "inserted"
	OpRemoved  NotifyOp = "removed"
	OpReset    NotifyOp = "reset"
)

// Notification is one recorded host instruction.
type Notification struct {
	Op    NotifyOp
	Pos   int
	Count int
}

func (n Notification) String() string {
	if n.Op == OpReset {
		return string(n.Op)
	}
	return fmt.Sprintf("%s(%d,%d)", n.Op, n.Pos, n.Count)
}

// Recorder keeps every notification in order. Hosts that re-derive their
// state lazily use it to replay changes; tests use it to assert ranges.
type Recorder struct {
	Events []Notification
}

func (r *Recorder) ItemChanged(pos int) {
	r.Events = append(r.Events, Notification{Op: OpChanged, Pos: pos, Count: 1})
}

func (r *Recorder) ItemRangeInserted(pos, count int) {
	r.Events = append(r.Events, Notification{Op: OpInserted, Pos: pos, Count: count})
}

func (r *Recorder) ItemRangeRemoved(pos, count int) {
	r.Events = append(r.Events, Notification{Op: OpRemoved, Pos: pos, Count: count})
}

func (r *Recorder) DataSetChanged() {
	r.Events = append(r.Events, Notification{Op: OpReset})
}

// Drain returns the recorded notifications and forgets them.
func (r *Recorder) Drain() []Notification {
	out := r.Events
	r.Events = nil
	return out
}
