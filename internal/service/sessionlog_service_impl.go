package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/kioku/internal/db"
	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/repository"
	"golang.org/x/sync/errgroup"
)

// maxLogEvents bounds how much history the session log shows.
const maxLogEvents = 200

type sessionLogService struct {
	items    repository.SessionItemRepo
	events   repository.SessionEventRepo
	subjects repository.SubjectRepo
	tags     repository.CollapsedTagRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSessionLogService(
	items repository.SessionItemRepo,
	events repository.SessionEventRepo,
	subjects repository.SubjectRepo,
	tags repository.CollapsedTagRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) SessionLogService {
	return &sessionLogService{
		items:    items,
		events:   events,
		subjects: subjects,
		tags:     tags,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sessionLogService) Load(ctx context.Context) (view *SessionLogView, err error) {
	fields := map[string]any{}
	done := observe(ctx, s.observer, "load-session-log", fields)
	defer func() { done(err) }()

	view = &SessionLogView{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.items.List(gctx)
		if err != nil {
			return fmt.Errorf("loading session items: %w", err)
		}
		view.Items = items
		return nil
	})
	g.Go(func() error {
		events, err := s.events.ListRecent(gctx, maxLogEvents)
		if err != nil {
			return fmt.Errorf("loading session events: %w", err)
		}
		view.Events = events
		return nil
	})
	g.Go(func() error {
		tags, err := s.tags.List(gctx, domain.ListSessionLog)
		if err != nil {
			return fmt.Errorf("loading collapsed tags: %w", err)
		}
		view.CollapsedTags = tags
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	if err = s.linkEventItems(ctx, view); err != nil {
		return nil, err
	}
	fields["items"] = len(view.Items)
	fields["events"] = len(view.Events)
	return view, nil
}

// linkEventItems points events at the loaded session items, and loads the
// subjects of events whose item has left the session.
func (s *sessionLogService) linkEventItems(ctx context.Context, view *SessionLogView) error {
	byID := make(map[string]*domain.SessionItem, len(view.Items))
	for _, item := range view.Items {
		byID[item.ID] = item
	}

	var missing []int64
	for _, ev := range view.Events {
		if ev.SessionItem == nil {
			continue
		}
		if item, ok := byID[ev.SessionItem.ID]; ok {
			ev.SessionItem = item
			continue
		}
		missing = append(missing, ev.SessionItem.SubjectID)
	}
	if len(missing) == 0 {
		return nil
	}

	subjects, err := s.subjects.ListByIDs(ctx, missing)
	if err != nil {
		return fmt.Errorf("loading event subjects: %w", err)
	}
	bySubject := make(map[int64]*domain.Subject, len(subjects))
	for _, subj := range subjects {
		bySubject[subj.ID] = subj
	}
	for _, ev := range view.Events {
		if ev.SessionItem != nil && ev.SessionItem.Subject == nil {
			ev.SessionItem.Subject = bySubject[ev.SessionItem.SubjectID]
		}
	}
	return nil
}

func (s *sessionLogService) RecordEvent(ctx context.Context, ev *domain.LogEvent) error {
	if err := s.events.Create(ctx, ev); err != nil {
		return fmt.Errorf("recording session event: %w", err)
	}
	return nil
}

func (s *sessionLogService) UpdateItem(ctx context.Context, item *domain.SessionItem) error {
	if err := s.items.Update(ctx, item); err != nil {
		return fmt.Errorf("updating session item: %w", err)
	}
	return nil
}

func (s *sessionLogService) Clear(ctx context.Context) (err error) {
	done := observe(ctx, s.observer, "clear-session", nil)
	defer func() { done(err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteSessionEventRepo(tx).DeleteAll(ctx); err != nil {
			return err
		}
		return repository.NewSQLiteSessionItemRepo(tx).DeleteAll(ctx)
	})
}
