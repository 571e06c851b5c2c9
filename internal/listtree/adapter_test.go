package listtree_test

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/alexanderramin/kioku/internal/listtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindCall struct {
	pos   int
	kind  listtree.RowKind
	empty bool
}

type recordingBinder struct {
	calls []bindCall
	fail  error
	panic bool
}

func (b *recordingBinder) Bind(pos int, n listtree.Node[int]) error {
	if b.panic {
		panic("render exploded")
	}
	if b.fail != nil {
		return b.fail
	}
	b.calls = append(b.calls, bindCall{pos: pos, kind: n.Kind()})
	return nil
}

func (b *recordingBinder) BindEmpty(pos int) {
	b.calls = append(b.calls, bindCall{pos: pos, empty: true})
}

// explodingNode panics on every positional query.
type explodingNode struct{}

func (explodingNode) Count() int                            { panic("count") }
func (explodingNode) ItemAt(int) (listtree.Node[int], bool) { panic("item") }
func (explodingNode) Kind() listtree.RowKind                { return listtree.KindKanji }
func (explodingNode) SpanSize(int) int                      { panic("span") }
func (explodingNode) Walk(func(int))                        {}

// populateSample loads sampleTree's shape into a, honouring collapsed tags.
func populateSample(a *listtree.Adapter[int]) {
	a.Populate(func(root *listtree.Root[int], collapsed listtree.TagSet) {
		src, _, _, _, _ := sampleTree()
		for _, child := range src.Children() {
			root.Add(child)
		}
		var seed func(nodes []listtree.Node[int])
		seed = func(nodes []listtree.Node[int]) {
			for _, n := range nodes {
				if s, ok := n.(listtree.SectionNode[int]); ok {
					s.SetCollapsed(collapsed.Has(s.Tag()))
					seed(s.Children())
				}
			}
		}
		seed(root.Children())
	})
}

func newSampleAdapter(t *testing.T) (*listtree.Adapter[int], *listtree.Recorder) {
	t.Helper()
	a := listtree.NewAdapter[int]("test", nil, nil)
	rec := &listtree.Recorder{}
	a.SetNotifier(rec)
	populateSample(a)
	rec.Drain()
	return a, rec
}

func TestAdapter_RowQueries(t *testing.T) {
	a, _ := newSampleAdapter(t)

	assert.Equal(t, 9, a.RowCount())
	assert.Equal(t, listtree.KindLevelHeader, a.RowKindAt(0))
	assert.Equal(t, listtree.KindKanji, a.RowKindAt(1))
	assert.Equal(t, listtree.KindNone, a.RowKindAt(9))
	assert.Equal(t, listtree.KindNone, a.RowKindAt(-1))
	assert.Equal(t, 6, a.ColumnSpanAt(0, 6))
	assert.Equal(t, 1, a.ColumnSpanAt(1, 6))
	assert.Equal(t, 1, a.ColumnSpanAt(42, 6))
}

func TestAdapter_ToggleCollapseThenExpand(t *testing.T) {
	a, rec := newSampleAdapter(t)

	require.True(t, a.Toggle(3))
	assert.Equal(t, []listtree.Notification{
		{Op: listtree.OpChanged, Pos: 3, Count: 1},
		{Op: listtree.OpRemoved, Pos: 4, Count: 5},
	}, rec.Drain())
	assert.Equal(t, 4, a.RowCount())
	assert.Equal(t, []string{"b"}, a.CollapsedTags())

	require.True(t, a.Toggle(3))
	assert.Equal(t, []listtree.Notification{
		{Op: listtree.OpChanged, Pos: 3, Count: 1},
		{Op: listtree.OpInserted, Pos: 4, Count: 5},
	}, rec.Drain())
	assert.Equal(t, 9, a.RowCount())
	assert.Empty(t, a.CollapsedTags())
}

func TestAdapter_ToggleNestedCollapseCountsVisibleRowsOnly(t *testing.T) {
	a, rec := newSampleAdapter(t)

	require.True(t, a.Toggle(4)) // b1
	rec.Drain()

	require.True(t, a.Toggle(3)) // b with b1 collapsed: b1, b2, 30
	assert.Equal(t, []listtree.Notification{
		{Op: listtree.OpChanged, Pos: 3, Count: 1},
		{Op: listtree.OpRemoved, Pos: 4, Count: 3},
	}, rec.Drain())
	assert.Equal(t, []string{"b", "b1"}, a.CollapsedTags())
}

func TestAdapter_ToggleEmptySectionOnlyChangesHeader(t *testing.T) {
	a := listtree.NewAdapter[int]("test", nil, nil)
	rec := &listtree.Recorder{}
	a.SetNotifier(rec)
	a.Populate(func(root *listtree.Root[int], _ listtree.TagSet) {
		root.Add(newSection("empty"))
	})
	rec.Drain()

	require.True(t, a.Toggle(0))
	assert.Equal(t, []listtree.Notification{{Op: listtree.OpChanged, Pos: 0, Count: 1}}, rec.Drain())
	require.True(t, a.Toggle(0))
	assert.Equal(t, []listtree.Notification{{Op: listtree.OpChanged, Pos: 0, Count: 1}}, rec.Drain())
}

func TestAdapter_ToggleNonHeaderIsNoop(t *testing.T) {
	a, rec := newSampleAdapter(t)

	assert.False(t, a.Toggle(1))
	assert.False(t, a.Toggle(99))
	assert.Empty(t, rec.Drain())
	assert.Equal(t, 9, a.RowCount())
}

func TestAdapter_ToggleSectionIgnoresStaleHandle(t *testing.T) {
	a, rec := newSampleAdapter(t)

	n, ok := a.NodeAt(3)
	require.True(t, ok)
	stale := n.(listtree.SectionNode[int])

	populateSample(a)
	rec.Drain()

	assert.False(t, a.ToggleSection(3, stale))
	assert.False(t, a.ToggleSection(3, nil))
	assert.Empty(t, rec.Drain())

	fresh, _ := a.NodeAt(3)
	assert.True(t, a.ToggleSection(3, fresh.(listtree.SectionNode[int])))
}

func TestAdapter_CollapsedTagsSeedNextPopulate(t *testing.T) {
	a, rec := newSampleAdapter(t)

	a.SetCollapsedTags([]string{"a", "b2", "unknown"})
	assert.Equal(t, 9, a.RowCount(), "takes effect on the next populate")

	populateSample(a)
	assert.Equal(t, []listtree.Notification{{Op: listtree.OpReset}}, rec.Drain())
	assert.Equal(t, 6, a.RowCount())
	assert.True(t, a.IsCollapsedTag("unknown"))
}

func TestAdapter_PinnedRow(t *testing.T) {
	a, rec := newSampleAdapter(t)
	form := listtree.NewPlaceholder[int](listtree.KindSearchForm)

	a.SetPinned(form)
	assert.Equal(t, []listtree.Notification{{Op: listtree.OpInserted, Pos: 0, Count: 1}}, rec.Drain())
	assert.Equal(t, 10, a.RowCount())
	assert.Equal(t, listtree.KindSearchForm, a.RowKindAt(0))
	assert.Equal(t, listtree.KindLevelHeader, a.RowKindAt(1))

	require.True(t, a.Toggle(4))
	assert.Equal(t, []listtree.Notification{
		{Op: listtree.OpChanged, Pos: 4, Count: 1},
		{Op: listtree.OpRemoved, Pos: 5, Count: 5},
	}, rec.Drain())

	a.SetPinned(form)
	assert.Equal(t, []listtree.Notification{{Op: listtree.OpChanged, Pos: 0, Count: 1}}, rec.Drain())

	a.Clear()
	assert.Equal(t, 1, a.RowCount(), "clear keeps the pinned row")
	rec.Drain()

	a.SetPinned(nil)
	assert.Equal(t, []listtree.Notification{{Op: listtree.OpRemoved, Pos: 0, Count: 1}}, rec.Drain())
	_, ok := a.Pinned()
	assert.False(t, ok)
	a.SetPinned(nil)
	assert.Empty(t, rec.Drain())
}

func TestAdapter_Rebuild(t *testing.T) {
	errOdd := errors.New("odd record")
	build := func(root *listtree.Root[int], records []int, _ time.Time, collapsed listtree.TagSet) error {
		for _, v := range records {
			if v < 0 {
				return errOdd
			}
			tag := strconv.Itoa(v % 2)
			s, ok := root.FindSection(tag)
			if !ok {
				s = newSection(tag)
				s.SetCollapsed(collapsed.Has(tag))
				root.Add(s)
			}
			s.Add(leaf(v))
		}
		root.RefreshSections()
		return nil
	}
	a := listtree.NewAdapter[int]("test", build, nil)
	rec := &listtree.Recorder{}
	a.SetNotifier(rec)

	require.NoError(t, a.Rebuild([]int{1, 2, 3}, time.Time{}))
	assert.Equal(t, 5, a.RowCount())
	assert.Equal(t, []listtree.Notification{{Op: listtree.OpReset}}, rec.Drain())

	err := a.Rebuild([]int{1, -1}, time.Time{})
	require.ErrorIs(t, err, errOdd)
	assert.Zero(t, a.RowCount())
	assert.Equal(t, []listtree.Notification{{Op: listtree.OpReset}}, rec.Drain())

	var walked []int
	require.NoError(t, a.Rebuild([]int{4, 5}, time.Time{}))
	a.Walk(func(v int) { walked = append(walked, v) })
	assert.Equal(t, []int{4, 5}, walked)
}

func TestAdapter_RebuildWithoutBuilder(t *testing.T) {
	a := listtree.NewAdapter[int]("test", nil, nil)
	assert.ErrorIs(t, a.Rebuild(nil, time.Time{}), listtree.ErrNoBuilder)
}

func TestAdapter_BindRowAt(t *testing.T) {
	a, _ := newSampleAdapter(t)
	b := &recordingBinder{}
	a.SetBinder(b)

	a.BindRowAt(0)
	a.BindRowAt(1)
	a.BindRowAt(50)
	assert.Equal(t, []bindCall{
		{pos: 0, kind: listtree.KindLevelHeader},
		{pos: 1, kind: listtree.KindKanji},
		{pos: 50, empty: true},
	}, b.calls)
}

func TestAdapter_BindRowAtFallsBackToEmpty(t *testing.T) {
	a, _ := newSampleAdapter(t)

	failing := &recordingBinder{fail: errors.New("no glyph")}
	a.SetBinder(failing)
	a.BindRowAt(1)
	assert.Equal(t, []bindCall{{pos: 1, empty: true}}, failing.calls)

	panicking := &recordingBinder{panic: true}
	a.SetBinder(panicking)
	assert.NotPanics(t, func() { a.BindRowAt(2) })
	assert.Equal(t, []bindCall{{pos: 2, empty: true}}, panicking.calls)
}

func TestAdapter_QueriesRecoverFromPanics(t *testing.T) {
	a := listtree.NewAdapter[int]("test", nil, nil)
	a.Populate(func(root *listtree.Root[int], _ listtree.TagSet) {
		root.Add(explodingNode{})
	})

	assert.NotPanics(t, func() {
		assert.Zero(t, a.RowCount())
		assert.Equal(t, listtree.KindNone, a.RowKindAt(0))
		assert.Equal(t, 1, a.ColumnSpanAt(0, 6))
		_, ok := a.NodeAt(0)
		assert.False(t, ok)
		assert.False(t, a.Toggle(0))
	})
}

func TestNotification_String(t *testing.T) {
	assert.Equal(t, "removed(4,5)", listtree.Notification{Op: listtree.OpRemoved, Pos: 4, Count: 5}.String())
	assert.Equal(t, "reset", fmt.Sprint(listtree.Notification{Op: listtree.OpReset}))
}

// panickingNotifier fails on every header change.
type panickingNotifier struct{ listtree.NopNotifier }

func (panickingNotifier) ItemChanged(int) { panic("host exploded") }

func TestAdapter_ToggleKeepsTagSetWhenHostPanics(t *testing.T) {
	a, _ := newSampleAdapter(t)
	a.SetNotifier(panickingNotifier{})

	assert.False(t, a.Toggle(3))
	n, ok := a.NodeAt(3)
	require.True(t, ok)
	sec := n.(listtree.SectionNode[int])
	assert.True(t, sec.Collapsed())
	assert.True(t, a.IsCollapsedTag("b"))

	assert.False(t, a.Toggle(3))
	assert.False(t, sec.Collapsed())
	assert.False(t, a.IsCollapsedTag("b"))
}
