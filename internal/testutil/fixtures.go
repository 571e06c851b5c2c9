package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/google/uuid"
)

var testSubjectIDCounter atomic.Int64

// RefTime is a fixed search time for deterministic grouping tests.
var RefTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Subject options
type SubjectOption func(*domain.Subject)

func WithID(id int64) SubjectOption {
	return func(s *domain.Subject) { s.ID = id }
}

func WithLevel(level int) SubjectOption {
	return func(s *domain.Subject) { s.Level = level }
}

func WithStage(stage domain.Stage) SubjectOption {
	return func(s *domain.Subject) { s.Stage = stage }
}

func WithMeaning(m string) SubjectOption {
	return func(s *domain.Subject) { s.Meaning = m }
}

func WithAvailableAt(t time.Time) SubjectOption {
	return func(s *domain.Subject) { s.AvailableAt = t }
}

func WithPassedAt(t time.Time) SubjectOption {
	return func(s *domain.Subject) { s.PassedAt = t }
}

func WithResurrectedAt(t time.Time) SubjectOption {
	return func(s *domain.Subject) { s.ResurrectedAt = t }
}

// NewTestSubject builds a level 1, initial-stage subject with a unique ID.
func NewTestSubject(typ domain.SubjectType, chars string, opts ...SubjectOption) *domain.Subject {
	now := RefTime
	s := &domain.Subject{
		ID:         testSubjectIDCounter.Add(1),
		Type:       typ,
		Level:      1,
		Characters: chars,
		Meaning:    chars,
		Stage:      domain.StageInitial,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionItem options
type SessionItemOption func(*domain.SessionItem)

func WithState(state domain.SessionItemState) SessionItemOption {
	return func(i *domain.SessionItem) { i.State = state }
}

func WithQuestionsDone(n int) SessionItemOption {
	return func(i *domain.SessionItem) { i.QuestionsDone = n }
}

func WithOrder(n int) SessionItemOption {
	return func(i *domain.SessionItem) { i.Order = n }
}

// NewTestSessionItem builds an active, unstarted item for subject.
func NewTestSessionItem(subject *domain.Subject, opts ...SessionItemOption) *domain.SessionItem {
	item := &domain.SessionItem{
		ID:        uuid.New().String(),
		SubjectID: subject.ID,
		Subject:   subject,
		State:     domain.SessionItemActive,
		UpdatedAt: RefTime,
	}
	for _, opt := range opts {
		opt(item)
	}
	return item
}
