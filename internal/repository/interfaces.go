package repository

import (
	"context"

	"github.com/alexanderramin/kioku/internal/domain"
)

type SubjectRepo interface {
	Upsert(ctx context.Context, s *domain.Subject) error
	GetByID(ctx context.Context, id int64) (*domain.Subject, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.Subject, error)
	Search(ctx context.Context, f domain.SubjectFilter) ([]*domain.Subject, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}

type SessionItemRepo interface {
	Create(ctx context.Context, item *domain.SessionItem) error
	GetByID(ctx context.Context, id string) (*domain.SessionItem, error)
	// List returns every item of the current session with its subject, in
	// session order.
	List(ctx context.Context) ([]*domain.SessionItem, error)
	Update(ctx context.Context, item *domain.SessionItem) error
	DeleteAll(ctx context.Context) error
}

type SessionEventRepo interface {
	Create(ctx context.Context, ev *domain.LogEvent) error
	// ListRecent returns up to limit events, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.LogEvent, error)
	DeleteAll(ctx context.Context) error
}

// CollapsedTagRepo persists the collapsed section tags of each list.
type CollapsedTagRepo interface {
	List(ctx context.Context, list domain.ListName) ([]string, error)
	Replace(ctx context.Context, list domain.ListName, tags []string) error
}
