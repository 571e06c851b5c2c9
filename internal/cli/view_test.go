package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/search"
	"github.com/alexanderramin/kioku/internal/service"
	"github.com/alexanderramin/kioku/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchDriver(t *testing.T, app *App, p search.Parameters, showForm bool) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newSearchModel(app, p, showForm), teatest.WithSize(60, 20))
	d.DrainInit()
	return d
}

func newLogDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newLogModel(app), teatest.WithSize(60, 20))
	d.DrainInit()
	return d
}

type failingSearch struct{ err error }

func (f failingSearch) Search(context.Context, search.Parameters) ([]*domain.Subject, error) {
	return nil, f.err
}

func (f failingSearch) LoadView(context.Context, search.Parameters) (*service.SearchView, error) {
	return nil, f.err
}

// --- search view ---

func TestSearchView_ToggleHeaderPersistsTags(t *testing.T) {
	env := testApp(t)
	seedSubjects(t, env)
	d := newSearchDriver(t, env.app, search.Parameters{}, false)

	assert.Equal(t, "SEARCH  all subjects by Type", d.Lines()[0])
	assert.True(t, d.Contains("▾ Radicals · 1 burned"))

	d.PressEnter()

	assert.True(t, d.Contains("▸ Radicals · 1 burned"))
	assert.False(t, d.Contains("一"))
	assert.Equal(t, 1, d.SeenCount(tagsSavedMsg{}))

	tags, err := env.app.Prefs.CollapsedTags(context.Background(), domain.ListSearch)
	require.NoError(t, err)
	assert.Equal(t, []string{"RADICAL"}, tags)
}

func TestSearchView_BackToBackTogglesPersistLatestTags(t *testing.T) {
	env := testApp(t)
	seedSubjects(t, env)
	prefs := &slowPrefs{delay: 5 * time.Millisecond}
	env.app.Prefs = prefs
	d := newSearchDriver(t, env.app, search.Parameters{}, false)
	m := d.Model.(*searchModel)
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	// Fold Radicals, then Kanji, before the first save has finished.
	_, first := m.Update(enter)
	require.NotNil(t, first)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, second := m.Update(enter)
	assert.Nil(t, second, "the second save waits for the first")
	require.Equal(t, []string{"KANJI", "RADICAL"}, m.results.CollapsedTags())

	_, next := m.Update(first())
	require.NotNil(t, next)
	_, last := m.Update(next())
	assert.Nil(t, last)

	saves := prefs.saves()
	require.Len(t, saves, 2)
	assert.Equal(t, []string{"RADICAL"}, saves[0])
	assert.Equal(t, m.results.CollapsedTags(), saves[1])
}

func TestSearchView_LoadsPersistedTags(t *testing.T) {
	env := testApp(t)
	seedSubjects(t, env)
	require.NoError(t, env.app.Prefs.SaveCollapsedTags(context.Background(), domain.ListSearch, []string{"KANJI"}))

	d := newSearchDriver(t, env.app, search.Parameters{}, false)

	assert.True(t, d.Contains("▸ Kanji"))
	assert.False(t, d.Contains("水"))
	assert.True(t, d.Contains("4 subjects"))
}

func TestSearchView_SortKeyCyclesOrders(t *testing.T) {
	env := testApp(t)
	seedSubjects(t, env)
	d := newSearchDriver(t, env.app, search.Parameters{}, false)

	d.PressKey('s')
	assert.Equal(t, "SEARCH  all subjects by Level, Type", d.Lines()[0])
	assert.True(t, d.Contains("▾ Level 1 · 1 passed, 1 burned"))

	d.PressKey('s')
	assert.True(t, d.Contains("by Next review, Type"))
	d.PressKey('s')
	assert.True(t, d.Contains("▾ Apprentice"))
	d.PressKey('s')
	assert.Equal(t, "SEARCH  all subjects by Type", d.Lines()[0])
}

func TestSearchView_FormRow(t *testing.T) {
	env := testApp(t)
	seedSubjects(t, env)
	d := newSearchDriver(t, env.app, search.Parameters{}, false)
	m := d.Model.(*searchModel)

	d.PressKey('/')
	require.True(t, m.results.ShowingForm())
	assert.Equal(t, "Search: all subjects by Type  (enter to edit)", d.Lines()[1])
	assert.Equal(t, 1, m.host.Cursor(), "cursor stays on the Radicals header")

	d.Press(tea.KeyHome)
	d.PressEnter()
	require.NotNil(t, m.form)

	d.PressEsc()
	assert.Nil(t, m.form)
	assert.True(t, d.Contains("Search unchanged"))
	assert.False(t, d.Quitting)

	d.PressKey('/')
	assert.False(t, m.results.ShowingForm())
	assert.Equal(t, 0, m.host.Cursor())
}

func TestSearchView_ShowsSearchErrors(t *testing.T) {
	env := testApp(t)
	env.app.Search = failingSearch{err: errors.New("index unavailable")}

	d := newSearchDriver(t, env.app, search.Parameters{}, false)

	assert.True(t, d.Contains("Error: index unavailable"))
}

// --- log view ---

func TestLogView_AbandonItem(t *testing.T) {
	env := testApp(t)
	env.app.Columns = 1
	subjects := seedSubjects(t, env)
	items := seedSession(t, env, subjects)
	d := newLogDriver(t, env.app)

	assert.True(t, d.Contains("1/3"))
	assert.Equal(t, "▾ Completed items · 1 item", d.Lines()[1])

	// 0 Completed, 1 水, 2 Started, 3 火
	d.PressDownN(3)
	d.PressKey('a')

	assert.True(t, d.Contains("▾ Abandoned items · 1 item"))
	assert.True(t, d.Contains("now  Abandoned 火"))
	assert.True(t, d.Contains("2/3"))
	assert.False(t, d.Contains("Started items"))

	ctx := context.Background()
	stored, err := env.items.GetByID(ctx, items[1].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionItemAbandoned, stored.State)

	events, err := env.events.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Abandoned 火", events[0].Text)
}

func TestLogView_AbandonOnlyActiveItems(t *testing.T) {
	env := testApp(t)
	env.app.Columns = 1
	seedSession(t, env, seedSubjects(t, env))
	d := newLogDriver(t, env.app)

	d.PressDown() // 水, completed
	d.PressKey('a')

	assert.True(t, d.Contains("Only active items can be abandoned"))
	events, err := env.events.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestLogView_EnterOnItemShowsSection(t *testing.T) {
	env := testApp(t)
	env.app.Columns = 1
	seedSession(t, env, seedSubjects(t, env))
	d := newLogDriver(t, env.app)

	d.PressDown()
	d.PressEnter()

	assert.True(t, d.Contains("1 subject in this section"))
	assert.Zero(t, d.SeenCount(logSavedMsg{}))
}

func TestLogView_ToggleHeaderPersistsTags(t *testing.T) {
	env := testApp(t)
	env.app.Columns = 1
	seedSession(t, env, seedSubjects(t, env))
	d := newLogDriver(t, env.app)

	d.PressEnter()
	assert.True(t, d.Contains("▸ Completed items · 1 item"))

	tags, err := env.app.Prefs.CollapsedTags(context.Background(), domain.ListSessionLog)
	require.NoError(t, err)
	assert.Equal(t, []string{"completed"}, tags)

	// The collapsed section survives a reload.
	d.PressKey('r')
	assert.True(t, d.Contains("▸ Completed items"))
}

func TestLogView_EmptySession(t *testing.T) {
	env := testApp(t)
	d := newLogDriver(t, env.app)

	assert.True(t, d.Contains("No session in progress."))
	assert.True(t, d.Contains("0/0"))
}
