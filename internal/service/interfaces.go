package service

import (
	"context"
	"time"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/importer"
	"github.com/alexanderramin/kioku/internal/search"
)

// SearchView is everything the search list needs to render one search.
type SearchView struct {
	Parameters    search.Parameters
	Subjects      []*domain.Subject
	CollapsedTags []string
	SearchTime    time.Time
}

type SearchService interface {
	search.Provider
	// LoadView runs the search and loads the persisted collapsed tags.
	LoadView(ctx context.Context, p search.Parameters) (*SearchView, error)
}

type PreferenceService interface {
	CollapsedTags(ctx context.Context, list domain.ListName) ([]string, error)
	SaveCollapsedTags(ctx context.Context, list domain.ListName, tags []string) error
}

// SessionLogView is the persisted state of the current session log.
type SessionLogView struct {
	Items         []*domain.SessionItem
	Events        []*domain.LogEvent
	CollapsedTags []string
}

type SessionLogService interface {
	Load(ctx context.Context) (*SessionLogView, error)
	RecordEvent(ctx context.Context, ev *domain.LogEvent) error
	UpdateItem(ctx context.Context, item *domain.SessionItem) error
	// Clear ends the session: items and events are deleted.
	Clear(ctx context.Context) error
}

// ImportResult holds the outcome of an import.
type ImportResult struct {
	SubjectCount int
	SessionItems int
	SessionType  domain.SessionType
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
