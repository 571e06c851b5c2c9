package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/kioku/internal/cli/formatter"
	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/listtree"
	"github.com/alexanderramin/kioku/internal/search"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"
)

// chromeLines is the number of screen lines list views use outside the grid:
// title, status and help.
const chromeLines = 3

// searchDoneMsg carries finished search results back to the UI loop.
type searchDoneMsg struct {
	params   search.Parameters
	subjects []*domain.Subject
	tags     []string
	withTags bool
	at       time.Time
	err      error
}

type searchKeyMap struct {
	Form    key.Binding
	Sort    key.Binding
	Refresh key.Binding
}

func defaultSearchKeys() searchKeyMap {
	return searchKeyMap{
		Form:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search form")),
		Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

// subjectRenderer renders search rows. params is read at bind time so the
// form row always shows the current search.
func subjectRenderer(params func() search.Parameters) rowRenderer[*domain.Subject] {
	return func(n listtree.Node[*domain.Subject]) (string, lipgloss.Style, error) {
		switch v := n.(type) {
		case listtree.SectionNode[*domain.Subject]:
			style := formatter.StyleHeader
			if v.Kind() == listtree.KindTypeHeader {
				style = formatter.StyleBold
			}
			return formatter.HeaderText(v.Title(), v.Summary(), v.Collapsed()), style, nil
		case *listtree.Leaf[*domain.Subject]:
			s := v.Value()
			if s == nil {
				return "", lipgloss.Style{}, fmt.Errorf("empty subject row")
			}
			return formatter.SubjectText(s), formatter.TypeStyle(s.Type), nil
		}
		if n.Kind() == listtree.KindSearchForm {
			return formatter.SearchFormText(params()), formatter.StyleGreen, nil
		}
		return "", lipgloss.Style{}, fmt.Errorf("no renderer for %s row", n.Kind())
	}
}

// searchModel is the interactive search result list.
type searchModel struct {
	app        *App
	results    *search.Results
	host       *listHost[*domain.Subject]
	tags       *tagSaver
	keys       searchKeyMap
	form       *huh.Form
	formValues *searchFormValues
	loading    bool
	err        error
	status     string
}

func newSearchModel(app *App, params search.Parameters, showForm bool) *searchModel {
	results := search.NewResults(params, app.logger())
	m := &searchModel{
		app:     app,
		results: results,
		keys:    defaultSearchKeys(),
		loading: true,
	}
	m.host = newListHost(results.List(), subjectRenderer(results.Parameters), app.Columns)
	m.tags = newTagSaver(app.Prefs, domain.ListSearch, results.CollapsedTags)
	results.SetShowingForm(showForm)
	return m
}

func (m *searchModel) Init() tea.Cmd {
	svc, p := m.app.Search, m.results.Parameters()
	return func() tea.Msg {
		view, err := svc.LoadView(context.Background(), p)
		if err != nil {
			return searchDoneMsg{params: p, err: err}
		}
		return searchDoneMsg{
			params:   view.Parameters,
			subjects: view.Subjects,
			tags:     view.CollapsedTags,
			withTags: true,
			at:       view.SearchTime,
		}
	}
}

// runSearch searches again, keeping the collapse state of this session.
func (m *searchModel) runSearch(p search.Parameters) tea.Cmd {
	m.loading = true
	svc, now := m.app.Search, m.app.now
	return func() tea.Msg {
		subjects, err := svc.Search(context.Background(), p)
		return searchDoneMsg{params: p, subjects: subjects, at: now(), err: err}
	}
}

func (m *searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.host.setSize(size.Width, size.Height-chromeLines)
		if m.form != nil {
			m.form = m.form.WithWidth(size.Width)
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case searchDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.withTags {
			m.results.SetCollapsedTags(msg.tags)
		}
		m.results.SetParameters(msg.params)
		if err := m.results.SetResult(msg.subjects, msg.at); err != nil {
			m.err = err
			return m, nil
		}
		m.status = english.Plural(m.results.NumSubjects(), "subject", "subjects")
		return m, nil

	case tagsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, m.tags.done()

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.updateKey(msg)
	}
	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m *searchModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.host.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Form):
		m.results.SetShowingForm(!m.results.ShowingForm())
		return m, nil
	case key.Matches(msg, m.keys.Sort):
		p := m.results.Parameters()
		i := slices.Index(search.AllOrders, p.Order)
		p.Order = search.AllOrders[(i+1)%len(search.AllOrders)]
		m.status = "Sorting by " + p.Order.Description()
		return m, m.runSearch(p)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.runSearch(m.results.Parameters())
	case key.Matches(msg, m.host.keys.Toggle):
		if m.results.List().RowKindAt(m.host.Cursor()) == listtree.KindSearchForm {
			return m, m.openForm()
		}
		if m.host.handleKey(msg) {
			return m, m.tags.request()
		}
		return m, nil
	}
	m.host.handleKey(msg)
	return m, nil
}

func (m *searchModel) openForm() tea.Cmd {
	m.formValues = newSearchFormValues(m.results.Parameters())
	m.form = newSearchForm(m.formValues).WithWidth(m.host.width)
	return m.form.Init()
}

func (m *searchModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form, m.formValues = nil, nil
		m.status = "Search unchanged"
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		values := m.formValues
		m.form, m.formValues = nil, nil
		p, err := values.parameters(m.results.Order())
		if err != nil {
			m.err = err
			return m, cmd
		}
		return m, tea.Batch(cmd, m.runSearch(p))
	case huh.StateAborted:
		m.form, m.formValues = nil, nil
	}
	return m, cmd
}

func (m *searchModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("SEARCH") + "  " + formatter.Dim(m.results.Parameters().Describe()) + "\n")

	switch {
	case m.form != nil:
		b.WriteString(m.form.View())
		b.WriteString("\n")
	case m.loading && m.results.NumSubjects() == 0:
		b.WriteString(formatter.Dim("Searching...") + "\n")
	case m.results.List().RowCount() == 0:
		b.WriteString(formatter.Dim("No subjects match.") + "\n")
	default:
		b.WriteString(m.host.view(true))
	}

	status := m.host.position()
	if m.status != "" {
		status += " · " + m.status
	}
	b.WriteString(formatter.Dim(status))
	if m.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(renderHelp(append(m.host.keys.ShortHelp(), m.keys.Form, m.keys.Sort)))
	return b.String()
}
