package domain

import "time"

type Subject struct {
	ID         int64
	Type       SubjectType
	Level      int
	Characters string
	Meaning    string
	Stage      Stage

	// AvailableAt is the next review time; zero means none scheduled.
	AvailableAt   time.Time
	PassedAt      time.Time
	ResurrectedAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPassed reports whether the subject has ever reached a passed stage.
func (s *Subject) IsPassed() bool {
	return !s.PassedAt.IsZero() || s.Stage.IsPassed()
}

// IsResurrectable reports whether a burned subject can be put back into review.
func (s *Subject) IsResurrectable() bool {
	return s.Stage.IsCompleted()
}

// IsBurnable reports whether a previously resurrected subject can be burned again.
func (s *Subject) IsBurnable() bool {
	return !s.Stage.IsCompleted() && !s.ResurrectedAt.IsZero()
}

// Label returns the characters, falling back to the meaning for radicals
// that have no character representation.
func (s *Subject) Label() string {
	return CoalesceStr(s.Characters, s.Meaning, "?")
}
