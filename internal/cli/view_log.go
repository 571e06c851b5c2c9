package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/kioku/internal/cli/formatter"
	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/listtree"
	"github.com/alexanderramin/kioku/internal/service"
	"github.com/alexanderramin/kioku/internal/sessionlog"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"
)

type logLoadedMsg struct {
	view *service.SessionLogView
	err  error
}

// logSavedMsg reports the outcome of a background session write.
type logSavedMsg struct{ err error }

type logKeyMap struct {
	Abandon key.Binding
	Reload  key.Binding
}

func defaultLogKeys() logKeyMap {
	return logKeyMap{
		Abandon: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "abandon")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

// logRenderer renders session log rows. Event ages are relative to now().
func logRenderer(now func() time.Time) rowRenderer[sessionlog.Entry] {
	return func(n listtree.Node[sessionlog.Entry]) (string, lipgloss.Style, error) {
		switch v := n.(type) {
		case listtree.SectionNode[sessionlog.Entry]:
			return formatter.HeaderText(v.Title(), v.Summary(), v.Collapsed()), formatter.StyleHeader, nil
		case *listtree.Leaf[sessionlog.Entry]:
			e := v.Value()
			switch {
			case e.IsItem():
				return formatter.LogItemText(e.Item), formatter.ItemStateStyle(e.Item), nil
			case e.IsEvent():
				return formatter.LogEventText(e.Event, now()), formatter.StyleDim, nil
			}
		}
		return "", lipgloss.Style{}, fmt.Errorf("no renderer for %s row", n.Kind())
	}
}

// logModel is the interactive session log.
type logModel struct {
	app     *App
	log     *sessionlog.Log
	host    *listHost[sessionlog.Entry]
	tags    *tagSaver
	keys    logKeyMap
	items   []*domain.SessionItem
	loading bool
	err     error
	status  string
}

func newLogModel(app *App) *logModel {
	log := sessionlog.NewLog(app.logger()).WithClock(app.now)
	return &logModel{
		app:     app,
		log:     log,
		host:    newListHost(log.List(), logRenderer(app.now), app.Columns),
		tags:    newTagSaver(app.Prefs, domain.ListSessionLog, log.List().CollapsedTags),
		keys:    defaultLogKeys(),
		loading: true,
	}
}

func (m *logModel) Init() tea.Cmd { return m.load() }

func (m *logModel) load() tea.Cmd {
	m.loading = true
	svc := m.app.SessionLog
	return func() tea.Msg {
		view, err := svc.Load(context.Background())
		return logLoadedMsg{view: view, err: err}
	}
}

// itemAt returns the session item shown at pos, if that row is an item.
func (m *logModel) itemAt(pos int) (*domain.SessionItem, bool) {
	n, ok := m.log.List().NodeAt(pos)
	if !ok {
		return nil, false
	}
	leaf, ok := n.(*listtree.Leaf[sessionlog.Entry])
	if !ok || !leaf.Value().IsItem() {
		return nil, false
	}
	return leaf.Value().Item, true
}

// abandon moves the active item at the cursor to the abandoned section and
// records an event for it. The write happens in the background.
func (m *logModel) abandon() tea.Cmd {
	item, ok := m.itemAt(m.host.Cursor())
	if !ok {
		return nil
	}
	if !item.IsActive() {
		m.status = "Only active items can be abandoned"
		return nil
	}
	label := "item"
	if item.Subject != nil {
		label = item.Subject.Label()
	}
	item.State = domain.SessionItemAbandoned
	ev := m.log.AddEventItem(item, "Abandoned "+label)
	m.log.Initialize(m.items)
	m.status = ev.Text

	svc := m.app.SessionLog
	return func() tea.Msg {
		ctx := context.Background()
		if err := svc.UpdateItem(ctx, item); err != nil {
			return logSavedMsg{err: err}
		}
		return logSavedMsg{err: svc.RecordEvent(ctx, ev)}
	}
}

func (m *logModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.host.setSize(msg.Width, msg.Height-chromeLines)
		return m, nil

	case logLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.items = msg.view.Items
		m.log.List().SetCollapsedTags(msg.view.CollapsedTags)
		m.log.SetEvents(msg.view.Events)
		m.log.Initialize(m.items)
		return m, nil

	case logSavedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case tagsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, m.tags.done()

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *logModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.host.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Abandon):
		return m, m.abandon()
	case key.Matches(msg, m.keys.Reload):
		return m, m.load()
	case key.Matches(msg, m.host.keys.Toggle):
		if ids := m.log.SiblingSubjectIDs(m.host.Cursor()); ids != nil {
			m.status = fmt.Sprintf("%s in this section", english.Plural(len(ids), "subject", "subjects"))
			return m, nil
		}
		if m.host.handleKey(msg) {
			return m, m.tags.request()
		}
		return m, nil
	}
	m.host.handleKey(msg)
	return m, nil
}

// progress counts finished items: completed or abandoned.
func (m *logModel) progress() (done, total int) {
	for _, item := range m.items {
		if !item.IsActive() {
			done++
		}
	}
	return done, len(m.items)
}

func (m *logModel) View() string {
	var b strings.Builder
	done, total := m.progress()
	b.WriteString(formatter.StyleHeader.Render("SESSION") + "  " + formatter.RenderProgress(done, total, 20) + "\n")

	switch {
	case m.loading && m.log.List().RowCount() == 0:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	case m.log.List().RowCount() == 0:
		b.WriteString(formatter.Dim("No session in progress.") + "\n")
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
	b.WriteString(renderHelp(append(m.host.keys.ShortHelp(), m.keys.Abandon)))
	return b.String()
}
