package search

import (
	"cmp"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/grouping"
	"github.com/alexanderramin/kioku/internal/listtree"
)

type subjectPolicy struct {
	order SortOrder
	ref   time.Time
}

var _ grouping.Policy[*domain.Subject] = (*subjectPolicy)(nil)

func (p *subjectPolicy) SingleLevel() bool { return p.order.SingleLevel() }

// Compare has no ID tie-breaker: equal subjects form one run, and a section
// lists them in the order the provider returned them.
func (p *subjectPolicy) Compare(a, b *domain.Subject) int {
	switch p.order {
	case OrderLevelType:
		if c := cmp.Compare(a.Level, b.Level); c != 0 {
			return c
		}
	case OrderAvailableAtType:
		if c := cmp.Compare(effectiveAvailableAt(a, p.ref), effectiveAvailableAt(b, p.ref)); c != 0 {
			return c
		}
	case OrderStageType:
		if c := a.Stage.Compare(b.Stage); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Type.Order(), b.Type.Order())
}

// effectiveAvailableAt folds every overdue review into the search time, so
// all subjects available right now share one group. 0 means none scheduled.
func effectiveAvailableAt(s *domain.Subject, ref time.Time) int64 {
	if s.AvailableAt.IsZero() {
		return 0
	}
	return max(s.AvailableAt.Unix(), ref.Unix())
}

func (p *subjectPolicy) TopLevelTag(s *domain.Subject, ref time.Time) (string, error) {
	if err := checkSubject(s); err != nil {
		return "", err
	}
	switch p.order {
	case OrderLevelType:
		return strconv.Itoa(s.Level), nil
	case OrderAvailableAtType:
		return strconv.FormatInt(effectiveAvailableAt(s, ref), 10), nil
	case OrderStageType:
		return s.Stage.SearchTag(), nil
	default:
		return s.Type.Name(), nil
	}
}

func (p *subjectPolicy) SubLevelTag(parentTag string, s *domain.Subject) (string, error) {
	if err := checkSubject(s); err != nil {
		return "", err
	}
	return typeTag(parentTag, s.Type), nil
}

func (p *subjectPolicy) NewTopLevelSection(s *domain.Subject, ref time.Time) (listtree.SectionNode[*domain.Subject], error) {
	tag, err := p.TopLevelTag(s, ref)
	if err != nil {
		return nil, err
	}
	switch p.order {
	case OrderLevelType:
		return newLevelHeader(tag, s.Level), nil
	case OrderAvailableAtType:
		return newAvailableAtHeader(tag, effectiveAvailableAt(s, ref), ref), nil
	case OrderStageType:
		return newStageHeader(tag, s.Stage), nil
	default:
		return newTypeHeader("", s.Type), nil
	}
}

func (p *subjectPolicy) NewSubLevelSection(parentTag string, s *domain.Subject) (listtree.SectionNode[*domain.Subject], error) {
	if err := checkSubject(s); err != nil {
		return nil, err
	}
	return newTypeHeader(parentTag, s.Type), nil
}

func (p *subjectPolicy) NewLeaf(s *domain.Subject) listtree.Node[*domain.Subject] {
	return listtree.NewLeaf(s, SubjectKind(s.Type), subjectSpan(s.Type))
}

func checkSubject(s *domain.Subject) error {
	if s == nil {
		return fmt.Errorf("nil subject: %w", grouping.ErrMalformedRecord)
	}
	if !s.Type.Valid() {
		return fmt.Errorf("subject %d has type %q: %w", s.ID, s.Type, grouping.ErrMalformedRecord)
	}
	return nil
}

// SubjectKind maps a subject type to its row kind.
func SubjectKind(t domain.SubjectType) listtree.RowKind {
	switch t {
	case domain.SubjectRadical:
		return listtree.KindRadical
	case domain.SubjectKanji:
		return listtree.KindKanji
	default:
		return listtree.KindVocabulary
	}
}

// Radicals and kanji are single glyphs and fit one column; vocabulary needs
// room for the whole word.
func subjectSpan(t domain.SubjectType) listtree.SpanFunc {
	if t == domain.SubjectVocabulary {
		return listtree.WideSpan
	}
	return listtree.SingleSpan
}
