package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/repository"
	"github.com/alexanderramin/kioku/internal/search"
	"golang.org/x/sync/errgroup"
)

type searchService struct {
	subjects repository.SubjectRepo
	tags     repository.CollapsedTagRepo
	now      func() time.Time
	observer UseCaseObserver
}

func NewSearchService(subjects repository.SubjectRepo, tags repository.CollapsedTagRepo, observers ...UseCaseObserver) SearchService {
	return &searchService{
		subjects: subjects,
		tags:     tags,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *searchService) Search(ctx context.Context, p search.Parameters) ([]*domain.Subject, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	subjects, err := s.subjects.Search(ctx, p.Filter())
	if err != nil {
		return nil, fmt.Errorf("searching subjects: %w", err)
	}
	return subjects, nil
}

func (s *searchService) LoadView(ctx context.Context, p search.Parameters) (view *SearchView, err error) {
	fields := map[string]any{"order": p.Order.Description()}
	done := observe(ctx, s.observer, "load-search", fields)
	defer func() { done(err) }()

	view = &SearchView{Parameters: p, SearchTime: s.now()}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		subjects, err := s.Search(gctx, p)
		view.Subjects = subjects
		return err
	})
	g.Go(func() error {
		tags, err := s.tags.List(gctx, domain.ListSearch)
		if err != nil {
			return fmt.Errorf("loading collapsed tags: %w", err)
		}
		view.CollapsedTags = tags
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}
	fields["subjects"] = len(view.Subjects)
	return view, nil
}
