package domain

import "time"

type SessionItem struct {
	ID            string
	SubjectID     int64
	Subject       *Subject
	State         SessionItemState
	QuestionsDone int
	Order         int
	UpdatedAt     time.Time
}

func (i *SessionItem) IsActive() bool    { return i.State == SessionItemActive }
func (i *SessionItem) IsPending() bool   { return i.State == SessionItemPending }
func (i *SessionItem) IsReported() bool  { return i.State == SessionItemReported }
func (i *SessionItem) IsAbandoned() bool { return i.State == SessionItemAbandoned }

// IsStarted reports whether an active item has at least one answered question.
func (i *SessionItem) IsStarted() bool {
	return i.IsActive() && i.QuestionsDone > 0
}

// LogEvent is a free-text entry in the session activity log.
type LogEvent struct {
	ID          string
	At          time.Time
	SessionItem *SessionItem
	Text        string
}
