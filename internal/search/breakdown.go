package search

import (
	"fmt"
	"iter"
	"strings"

	"github.com/alexanderramin/kioku/internal/domain"
)

// StageBreakdown counts the subjects of a section per progress bucket.
type StageBreakdown struct {
	Total      int
	Locked     int
	NotStarted int
	InProgress int
	Passed     int
	Burned     int
}

// bucketRules is evaluated in order and the first match wins. The buckets
// are disjoint for well-formed subjects, but the order decides if they are not.
var bucketRules = []struct {
	match func(*domain.Subject) bool
	slot  func(*StageBreakdown) *int
}{
	{func(s *domain.Subject) bool { return s.Stage.IsCompleted() }, func(b *StageBreakdown) *int { return &b.Burned }},
	{func(s *domain.Subject) bool { return s.Stage.IsInitial() }, func(b *StageBreakdown) *int { return &b.NotStarted }},
	{func(s *domain.Subject) bool { return s.Stage.IsLocked() }, func(b *StageBreakdown) *int { return &b.Locked }},
	{(*domain.Subject).IsPassed, func(b *StageBreakdown) *int { return &b.Passed }},
	{func(*domain.Subject) bool { return true }, func(b *StageBreakdown) *int { return &b.InProgress }},
}

// SummarizeStages classifies every subject exactly once.
func SummarizeStages(subjects iter.Seq[*domain.Subject]) StageBreakdown {
	var b StageBreakdown
	for s := range subjects {
		b.Total++
		for _, rule := range bucketRules {
			if rule.match(s) {
				*rule.slot(&b)++
				break
			}
		}
	}
	return b
}

// String lists the non-empty buckets, e.g. "2 locked, 5 in progress".
func (b StageBreakdown) String() string {
	parts := make([]string, 0, 5)
	for _, p := range []struct {
		n     int
		label string
	}{
		{b.Locked, "locked"},
		{b.NotStarted, "not started"},
		{b.InProgress, "in progress"},
		{b.Passed, "passed"},
		{b.Burned, "burned"},
	} {
		if p.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", p.n, p.label))
		}
	}
	return strings.Join(parts, ", ")
}
