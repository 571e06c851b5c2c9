package grouping_test

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/alexanderramin/kioku/internal/grouping"
	"github.com/alexanderramin/kioku/internal/listtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type card struct {
	name  string
	level int
	kind  string
}

type size int

func (s size) String() string { return strconv.Itoa(int(s)) }

func countCards(records iter.Seq[*card]) size {
	var n size
	for range records {
		n++
	}
	return n
}

// levelKind groups cards by level, then kind. With flat set it only groups
// by kind. rank optionally overrides the comparator's secondary key so runs
// can be split while tags stay equal.
type levelKind struct {
	flat bool
	rank func(*card) int
}

func (p levelKind) Compare(a, b *card) int {
	if !p.flat {
		if c := cmp.Compare(a.level, b.level); c != 0 {
			return c
		}
	}
	if p.rank != nil {
		if c := cmp.Compare(p.rank(a), p.rank(b)); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.kind, b.kind)
}

func (p levelKind) SingleLevel() bool { return p.flat }

func (p levelKind) TopLevelTag(c *card, _ time.Time) (string, error) {
	if c.level <= 0 {
		return "", fmt.Errorf("card %s: %w", c.name, grouping.ErrMalformedRecord)
	}
	return strconv.Itoa(c.level), nil
}

func (p levelKind) SubLevelTag(parentTag string, c *card) (string, error) {
	if c.kind == "" {
		return "", fmt.Errorf("card %s: %w", c.name, grouping.ErrMalformedRecord)
	}
	if parentTag == "" {
		return c.kind, nil
	}
	return parentTag + " " + c.kind, nil
}

func (p levelKind) NewTopLevelSection(c *card, ref time.Time) (listtree.SectionNode[*card], error) {
	tag, err := p.TopLevelTag(c, ref)
	if err != nil {
		return nil, err
	}
	return listtree.NewSection(tag, "Level "+tag, listtree.KindLevelHeader, countCards), nil
}

func (p levelKind) NewSubLevelSection(parentTag string, c *card) (listtree.SectionNode[*card], error) {
	tag, err := p.SubLevelTag(parentTag, c)
	if err != nil {
		return nil, err
	}
	return listtree.NewSection(tag, c.kind, listtree.KindTypeHeader, countCards), nil
}

func (p levelKind) NewLeaf(c *card) listtree.Node[*card] {
	return listtree.NewLeaf(c, listtree.KindKanji, nil)
}

func tags(nodes []listtree.Node[*card]) []string {
	var out []string
	for _, n := range nodes {
		if s, ok := n.(listtree.SectionNode[*card]); ok {
			out = append(out, s.Tag())
		}
	}
	return out
}

func names(n interface{ Walk(func(*card)) }) []string {
	var out []string
	n.Walk(func(c *card) { out = append(out, c.name) })
	return out
}

func TestBuild_TwoLevels(t *testing.T) {
	a := &card{name: "A", level: 3, kind: "X"}
	b := &card{name: "B", level: 3, kind: "X"}
	c := &card{name: "C", level: 1, kind: "Y"}
	root := listtree.NewRoot[*card]()

	n, err := grouping.Build(root, []*card{a, b, c}, levelKind{}, time.Time{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.Equal(t, []string{"1", "3"}, tags(root.Children()))
	assert.Equal(t, 7, root.Count())

	three, ok := root.FindSection("3")
	require.True(t, ok)
	assert.Equal(t, []string{"3 X"}, tags(three.Children()))
	assert.Equal(t, []string{"A", "B"}, names(three))
	assert.Equal(t, "2", three.Summary())

	one, _ := root.FindSection("1")
	oneY, ok := one.FindSection("1 Y")
	require.True(t, ok)
	assert.Equal(t, []string{"C"}, names(oneY))

	three.SetCollapsed(true)
	assert.Equal(t, 4, root.Count())
}

func TestBuild_SingleLevel(t *testing.T) {
	root := listtree.NewRoot[*card]()
	records := []*card{
		{name: "v", level: 2, kind: "vocab"},
		{name: "k", level: 1, kind: "kanji"},
		{name: "k2", level: 5, kind: "kanji"},
	}

	_, err := grouping.Build(root, records, levelKind{flat: true}, time.Time{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"kanji", "vocab"}, tags(root.Children()))
	assert.Equal(t, []string{"k", "k2", "v"}, names(root), "stable within a run")
	assert.Equal(t, "v", records[0].name, "input is not reordered")
}

func TestBuild_SeedsCollapsedTags(t *testing.T) {
	root := listtree.NewRoot[*card]()
	records := []*card{
		{name: "a", level: 1, kind: "X"},
		{name: "b", level: 2, kind: "X"},
		{name: "c", level: 2, kind: "Y"},
	}

	_, err := grouping.Build(root, records, levelKind{}, time.Time{}, listtree.NewTagSet("2 Y", "1", "9"))
	require.NoError(t, err)

	one, _ := root.FindSection("1")
	assert.True(t, one.Collapsed())
	two, _ := root.FindSection("2")
	assert.False(t, two.Collapsed())
	twoY, _ := two.FindSection("2 Y")
	assert.True(t, twoY.Collapsed())
	// 1 (collapsed), 2, 2 X, b, 2 Y (collapsed)
	assert.Equal(t, 5, root.Count())
}

func TestBuild_MergesRunsSharingATag(t *testing.T) {
	records := []*card{
		{name: "a", level: 1, kind: "X"},
		{name: "b", level: 1, kind: "Y"},
		{name: "c", level: 1, kind: "X"},
	}
	// Rank splits "a" and "c" into separate runs around "b".
	p := levelKind{rank: func(c *card) int {
		if c.name == "c" {
			return 1
		}
		return 0
	}}
	root := listtree.NewRoot[*card]()

	_, err := grouping.Build(root, records, p, time.Time{}, nil)
	require.NoError(t, err)
	one, _ := root.FindSection("1")
	assert.Equal(t, []string{"1 X", "1 Y"}, tags(one.Children()))
	x, _ := one.FindSection("1 X")
	assert.Equal(t, []string{"a", "c"}, names(x))
}

func TestBuild_MalformedRecord(t *testing.T) {
	root := listtree.NewRoot[*card]()
	records := []*card{
		{name: "ok", level: 1, kind: "X"},
		{name: "bad", level: 0, kind: "X"},
	}

	_, err := grouping.Build(root, records, levelKind{}, time.Time{}, nil)
	require.ErrorIs(t, err, grouping.ErrMalformedRecord)
	assert.Contains(t, err.Error(), "card bad")

	_, err = grouping.Build(listtree.NewRoot[*card](), []*card{{name: "nokind", level: 1}}, levelKind{}, time.Time{}, nil)
	require.ErrorIs(t, err, grouping.ErrMalformedRecord)
}

func TestBuild_Empty(t *testing.T) {
	root := listtree.NewRoot[*card]()
	n, err := grouping.Build(root, nil, levelKind{}, time.Time{}, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, root.Count())
}

// shape renders a tree as nested tags with the sorted record names of each
// section, so runs of equal records compare equal whatever their order.
func shape(nodes []listtree.Node[*card]) []string {
	var out []string
	var leaves []string
	for _, n := range nodes {
		switch v := n.(type) {
		case listtree.SectionNode[*card]:
			out = append(out, "["+v.Tag()+" "+v.Summary())
			out = append(out, shape(v.Children())...)
			out = append(out, "]")
		case *listtree.Leaf[*card]:
			leaves = append(leaves, v.Value().name)
		}
	}
	slices.Sort(leaves)
	return append(out, leaves...)
}

func TestProperty_BuildIgnoresInputOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "n")
		records := make([]*card, n)
		levels := map[int]bool{}
		pairs := map[string]bool{}
		for i := range records {
			c := &card{
				level: rapid.IntRange(1, 3).Draw(t, "level"),
				kind:  rapid.SampledFrom([]string{"X", "Y", "Z"}).Draw(t, "kind"),
			}
			c.name = fmt.Sprintf("%d%s#%d", c.level, c.kind, i)
			levels[c.level] = true
			pairs[c.name[:2]] = true
			records[i] = c
		}
		shuffled := rapid.Permutation(records).Draw(t, "shuffled")

		rootA := listtree.NewRoot[*card]()
		rootB := listtree.NewRoot[*card]()
		if _, err := grouping.Build(rootA, records, levelKind{}, time.Time{}, nil); err != nil {
			t.Fatalf("build: %v", err)
		}
		if _, err := grouping.Build(rootB, shuffled, levelKind{}, time.Time{}, nil); err != nil {
			t.Fatalf("build shuffled: %v", err)
		}
		if a, b := shape(rootA.Children()), shape(rootB.Children()); !slices.Equal(a, b) {
			t.Fatalf("trees differ:\n%v\n%v", a, b)
		}
		if want := len(levels) + len(pairs) + n; rootA.Count() != want {
			t.Fatalf("Count() = %d, want %d", rootA.Count(), want)
		}
	})
}

func TestBuild_SectionKeepsInputOrder(t *testing.T) {
	records := []*card{
		{name: "c", level: 1, kind: "X"},
		{name: "a", level: 1, kind: "X"},
		{name: "b", level: 1, kind: "X"},
	}
	root := listtree.NewRoot[*card]()
	_, err := grouping.Build(root, records, levelKind{flat: true}, time.Time{}, nil)
	require.NoError(t, err)

	var names []string
	root.Walk(func(c *card) { names = append(names, c.name) })
	assert.Equal(t, []string{"c", "a", "b"}, names)
}
