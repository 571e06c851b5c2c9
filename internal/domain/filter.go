package domain

import (
	"slices"
	"strings"
)

// SubjectFilter selects subjects. Zero values mean "no filter".
type SubjectFilter struct {
	Text      string
	MinLevel  int
	MaxLevel  int
	Types     []SubjectType
	StageTags []string
}

// Matches reports whether s passes every filter in f. Text matches the
// characters or the meaning, case-insensitively.
func (f SubjectFilter) Matches(s *Subject) bool {
	if s == nil {
		return false
	}
	if f.MinLevel > 0 && s.Level < f.MinLevel {
		return false
	}
	if f.MaxLevel > 0 && s.Level > f.MaxLevel {
		return false
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, s.Type) {
		return false
	}
	if len(f.StageTags) > 0 && !slices.Contains(f.StageTags, s.Stage.SearchTag()) {
		return false
	}
	if text := strings.TrimSpace(f.Text); text != "" {
		text = strings.ToLower(text)
		if !strings.Contains(strings.ToLower(s.Characters), text) &&
			!strings.Contains(strings.ToLower(s.Meaning), text) {
			return false
		}
	}
	return true
}
