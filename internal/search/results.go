package search

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/grouping"
	"github.com/alexanderramin/kioku/internal/listtree"
)

// Results is the grouped, collapsible search-result list.
type Results struct {
	list        *listtree.Adapter[*domain.Subject]
	params      Parameters
	searchTime  time.Time
	numSubjects int
	showingForm bool
}

func NewResults(params Parameters, logger *slog.Logger) *Results {
	r := &Results{params: params}
	r.list = listtree.NewAdapter(string(domain.ListSearch), r.build, logger)
	return r
}

func (r *Results) build(root *listtree.Root[*domain.Subject], subjects []*domain.Subject, ref time.Time, collapsed listtree.TagSet) error {
	_, err := grouping.Build(root, subjects, r.params.Order.Policy(ref), ref, collapsed)
	return err
}

// List exposes the adapter to hosts.
func (r *Results) List() *listtree.Adapter[*domain.Subject] { return r.list }

func (r *Results) Order() SortOrder        { return r.params.Order }
func (r *Results) Parameters() Parameters  { return r.params }
func (r *Results) SearchTime() time.Time   { return r.searchTime }
func (r *Results) NumSubjects() int        { return r.numSubjects }
func (r *Results) ShowingForm() bool       { return r.showingForm }
func (r *Results) CollapsedTags() []string { return r.list.CollapsedTags() }

// SetOrder changes the order used by the next SetResult.
func (r *Results) SetOrder(order SortOrder) { r.params.Order = order }

// SetParameters replaces the current search, including its order.
func (r *Results) SetParameters(p Parameters) { r.params = p }

// SetCollapsedTags takes effect on the next SetResult.
func (r *Results) SetCollapsedTags(tags []string) { r.list.SetCollapsedTags(tags) }

// SetResult regroups the list from subjects. On error the list is left
// empty and the host has been told to drop its rows.
func (r *Results) SetResult(subjects []*domain.Subject, ref time.Time) error {
	r.searchTime = ref
	if err := r.list.Rebuild(subjects, ref); err != nil {
		r.numSubjects = 0
		return fmt.Errorf("grouping %d search results: %w", len(subjects), err)
	}
	r.numSubjects = len(subjects)
	return nil
}

// SetShowingForm adds or removes the search form row at position 0.
func (r *Results) SetShowingForm(show bool) {
	if show == r.showingForm {
		return
	}
	r.showingForm = show
	if show {
		r.list.SetPinned(listtree.NewPlaceholder[*domain.Subject](listtree.KindSearchForm))
		return
	}
	r.list.SetPinned(nil)
}

// Subjects returns every subject in view order, collapsed or not.
func (r *Results) Subjects() []*domain.Subject {
	var out []*domain.Subject
	r.list.Walk(func(s *domain.Subject) { out = append(out, s) })
	return out
}

func (r *Results) SubjectIDs() []int64 {
	return r.collectIDs(func(*domain.Subject) bool { return true })
}

// ResurrectableIDs returns the burned subjects.
func (r *Results) ResurrectableIDs() []int64 {
	return r.collectIDs((*domain.Subject).IsResurrectable)
}

// BurnableIDs returns subjects that were resurrected and are not burned again.
func (r *Results) BurnableIDs() []int64 {
	return r.collectIDs((*domain.Subject).IsBurnable)
}

func (r *Results) collectIDs(keep func(*domain.Subject) bool) []int64 {
	var ids []int64
	r.list.Walk(func(s *domain.Subject) {
		if keep(s) {
			ids = append(ids, s.ID)
		}
	})
	return ids
}
