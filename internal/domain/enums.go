package domain

import (
	"fmt"
	"strings"
)

type SubjectType string

const (
	SubjectRadical    SubjectType = "radical"
	SubjectKanji      SubjectType = "kanji"
	SubjectVocabulary SubjectType = "vocabulary"
)

// ValidSubjectTypes is the canonical set of accepted subject type strings.
var ValidSubjectTypes = map[string]bool{
	"radical": true, "kanji": true, "vocabulary": true,
}

// Order returns a numeric code used to order subject types: radicals first,
// then kanji, then vocabulary. Unknown types sort last.
func (t SubjectType) Order() int {
	switch t {
	case SubjectRadical:
		return 1
	case SubjectKanji:
		return 2
	case SubjectVocabulary:
		return 3
	default:
		return 99
	}
}

// Name returns the upper-case name used in section tags, e.g. "KANJI".
func (t SubjectType) Name() string {
	return strings.ToUpper(string(t))
}

// Valid reports whether t is one of the known subject types.
func (t SubjectType) Valid() bool {
	return ValidSubjectTypes[string(t)]
}

// ParseSubjectType accepts either the lower-case value or the tag name.
func ParseSubjectType(s string) (SubjectType, error) {
	t := SubjectType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown subject type %q", s)
	}
	return t, nil
}

type SessionItemState string

const (
	SessionItemActive    SessionItemState = "active"
	SessionItemPending   SessionItemState = "pending"
	SessionItemReported  SessionItemState = "reported"
	SessionItemAbandoned SessionItemState = "abandoned"
)

type SessionType string

const (
	SessionLesson    SessionType = "lesson"
	SessionReview    SessionType = "review"
	SessionSelfStudy SessionType = "self_study"
)

// Description returns the human-readable session type name.
func (t SessionType) Description() string {
	switch t {
	case SessionLesson:
		return "Lesson"
	case SessionReview:
		return "Review"
	case SessionSelfStudy:
		return "Self-study"
	default:
		return "Unknown"
	}
}

// ListName identifies a grouped list whose collapsed sections are persisted.
type ListName string

const (
	ListSearch     ListName = "search"
	ListSessionLog ListName = "sessionlog"
)
