package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/kioku/internal/db"
	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/repository"
)

type preferenceService struct {
	tags     repository.CollapsedTagRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPreferenceService(tags repository.CollapsedTagRepo, uow db.UnitOfWork, observers ...UseCaseObserver) PreferenceService {
	return &preferenceService{tags: tags, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *preferenceService) CollapsedTags(ctx context.Context, list domain.ListName) ([]string, error) {
	tags, err := s.tags.List(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("loading collapsed tags for %s: %w", list, err)
	}
	return tags, nil
}

func (s *preferenceService) SaveCollapsedTags(ctx context.Context, list domain.ListName, tags []string) (err error) {
	fields := map[string]any{"list": string(list), "tags": len(tags)}
	done := observe(ctx, s.observer, "save-collapsed-tags", fields)
	defer func() { done(err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteCollapsedTagRepo(tx).Replace(ctx, list, tags)
	})
}
