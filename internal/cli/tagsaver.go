package cli

import (
	"context"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// tagsSavedMsg reports the outcome of persisting one list's collapsed tags.
type tagsSavedMsg struct {
	list domain.ListName
	err  error
}

// tagSaver persists the collapsed tags of one list, one write at a time.
// A save requested while a write is running is held back and sent when that
// write finishes, with the tags current at that point, so the last write
// always carries the latest set.
type tagSaver struct {
	prefs    service.PreferenceService
	list     domain.ListName
	current  func() []string
	inFlight bool
	pending  bool
}

func newTagSaver(prefs service.PreferenceService, list domain.ListName, current func() []string) *tagSaver {
	return &tagSaver{prefs: prefs, list: list, current: current}
}

// request asks for the current tags to be saved.
func (s *tagSaver) request() tea.Cmd {
	if s.prefs == nil {
		return nil
	}
	if s.inFlight {
		s.pending = true
		return nil
	}
	return s.start()
}

// done handles the tagsSavedMsg of the running write and starts the held
// back one, if any.
func (s *tagSaver) done() tea.Cmd {
	s.inFlight = false
	if !s.pending {
		return nil
	}
	return s.start()
}

func (s *tagSaver) start() tea.Cmd {
	s.inFlight, s.pending = true, false
	prefs, list, tags := s.prefs, s.list, s.current()
	return func() tea.Msg {
		return tagsSavedMsg{list: list, err: prefs.SaveCollapsedTags(context.Background(), list, tags)}
	}
}
