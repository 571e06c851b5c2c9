package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/repository"
	"github.com/alexanderramin/kioku/internal/testutil"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, ev UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, ev)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

type testRepos struct {
	db       *sql.DB
	subjects *repository.SQLiteSubjectRepo
	items    *repository.SQLiteSessionItemRepo
	events   *repository.SQLiteSessionEventRepo
	tags     *repository.SQLiteCollapsedTagRepo
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:       database,
		subjects: repository.NewSQLiteSubjectRepo(database),
		items:    repository.NewSQLiteSessionItemRepo(database),
		events:   repository.NewSQLiteSessionEventRepo(database),
		tags:     repository.NewSQLiteCollapsedTagRepo(database),
	}
}

func (r testRepos) seed(t *testing.T, subjects ...*domain.Subject) {
	t.Helper()
	for _, s := range subjects {
		require.NoError(t, r.subjects.Upsert(context.Background(), s))
	}
}
