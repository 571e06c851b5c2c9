// Package grouping turns a flat record collection into a one- or two-level
// tree of sections, driven by a sort-order policy.
package grouping

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/kioku/internal/listtree"
)

// ErrMalformedRecord is wrapped by policies when a record lacks the fields
// its grouping keys need.
var ErrMalformedRecord = errors.New("malformed record")

// Policy describes one sort order: how records compare and which sections
// they land in.
type Policy[T any] interface {
	// Compare is a total order over records. Records comparing equal form
	// one run and share a sub-level section.
	Compare(a, b T) int
	// SingleLevel orders have no top-level sections.
	SingleLevel() bool
	TopLevelTag(rec T, ref time.Time) (string, error)
	// SubLevelTag receives "" as parentTag for single-level orders.
	SubLevelTag(parentTag string, rec T) (string, error)
	NewTopLevelSection(rec T, ref time.Time) (listtree.SectionNode[T], error)
	NewSubLevelSection(parentTag string, rec T) (listtree.SectionNode[T], error)
	NewLeaf(rec T) listtree.Node[T]
}

// Build sorts records with p and appends the resulting sections to root.
// Sections are found or created by tag, so runs sharing a tag merge even if
// the comparator separates them. Sections whose tag is in collapsed start
// collapsed. Records inside a section keep their input order. It returns
// the number of records placed.
//
// records is not modified. On error root may hold a partial tree; callers
// are expected to clear it.
func Build[T any](root *listtree.Root[T], records []T, p Policy[T], ref time.Time, collapsed listtree.TagSet) (int, error) {
	sorted := make([]T, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return p.Compare(sorted[i], sorted[j]) < 0
	})

	for start := 0; start < len(sorted); {
		first := sorted[start]
		end := start + 1
		for end < len(sorted) && p.Compare(first, sorted[end]) == 0 {
			end++
		}

		section, err := runSection(root, first, p, ref, collapsed)
		if err != nil {
			return 0, fmt.Errorf("grouping record %d: %w", start, err)
		}
		for _, rec := range sorted[start:end] {
			section.Add(p.NewLeaf(rec))
		}
		start = end
	}

	root.RefreshSections()
	return len(sorted), nil
}

// runSection finds or creates the innermost section for a run starting with rec.
func runSection[T any](root *listtree.Root[T], rec T, p Policy[T], ref time.Time, collapsed listtree.TagSet) (listtree.SectionNode[T], error) {
	if p.SingleLevel() {
		return subSection(&root.Container, "", rec, p, collapsed)
	}

	topTag, err := p.TopLevelTag(rec, ref)
	if err != nil {
		return nil, fmt.Errorf("top-level tag: %w", err)
	}
	top, ok := root.FindSection(topTag)
	if !ok {
		top, err = p.NewTopLevelSection(rec, ref)
		if err != nil {
			return nil, fmt.Errorf("top-level section: %w", err)
		}
		if top.Tag() != topTag {
			return nil, fmt.Errorf("top-level section tag %q does not match %q: %w", top.Tag(), topTag, ErrMalformedRecord)
		}
		top.SetCollapsed(collapsed.Has(topTag))
		root.Add(top)
	}
	return subSection(top, topTag, rec, p, collapsed)
}

type sectionParent[T any] interface {
	Add(n listtree.Node[T])
	FindSection(tag string) (listtree.SectionNode[T], bool)
}

func subSection[T any](parent sectionParent[T], parentTag string, rec T, p Policy[T], collapsed listtree.TagSet) (listtree.SectionNode[T], error) {
	tag, err := p.SubLevelTag(parentTag, rec)
	if err != nil {
		return nil, fmt.Errorf("sub-level tag: %w", err)
	}
	if s, ok := parent.FindSection(tag); ok {
		return s, nil
	}
	s, err := p.NewSubLevelSection(parentTag, rec)
	if err != nil {
		return nil, fmt.Errorf("sub-level section: %w", err)
	}
	if s.Tag() != tag {
		return nil, fmt.Errorf("sub-level section tag %q does not match %q: %w", s.Tag(), tag, ErrMalformedRecord)
	}
	s.SetCollapsed(collapsed.Has(tag))
	parent.Add(s)
	return s, nil
}
