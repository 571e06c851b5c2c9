package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/search"
	"github.com/alexanderramin/kioku/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchService_LoadView(t *testing.T) {
	repos := setupRepos(t)
	k := testutil.NewTestSubject(domain.SubjectKanji, "水", testutil.WithLevel(3))
	v := testutil.NewTestSubject(domain.SubjectVocabulary, "水曜日", testutil.WithLevel(4))
	repos.seed(t, k, v)
	ctx := context.Background()
	require.NoError(t, repos.tags.Replace(ctx, domain.ListSearch, []string{"3"}))
	require.NoError(t, repos.tags.Replace(ctx, domain.ListSessionLog, []string{"events"}))

	obs := &recordingObserver{}
	svc := NewSearchService(repos.subjects, repos.tags, obs)
	svc.(*searchService).now = func() time.Time { return testutil.RefTime }

	params := search.Parameters{MaxLevel: 3, Order: search.OrderLevelType}
	view, err := svc.LoadView(ctx, params)
	require.NoError(t, err)

	require.Len(t, view.Subjects, 1)
	assert.Equal(t, k.ID, view.Subjects[0].ID)
	assert.Equal(t, []string{"3"}, view.CollapsedTags)
	assert.Equal(t, testutil.RefTime, view.SearchTime)
	assert.Equal(t, params, view.Parameters)

	ev := obs.last()
	assert.Equal(t, "load-search", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 1, ev.Fields["subjects"])
	assert.Equal(t, "Level, Type", ev.Fields["order"])
}

func TestSearchService_RejectsInvalidParameters(t *testing.T) {
	repos := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewSearchService(repos.subjects, repos.tags, obs)

	_, err := svc.LoadView(context.Background(), search.Parameters{MinLevel: 5, MaxLevel: 2})
	require.ErrorIs(t, err, search.ErrInvalidParameters)
	assert.False(t, obs.last().Success)

	_, err = svc.Search(context.Background(), search.Parameters{StageTags: []string{"legendary"}})
	assert.ErrorIs(t, err, search.ErrInvalidParameters)
}
