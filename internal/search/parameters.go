package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/kioku/internal/domain"
)

var ErrInvalidParameters = errors.New("invalid search parameters")

// Parameters describe an advanced search. Zero values mean "no filter".
type Parameters struct {
	Text      string
	MinLevel  int
	MaxLevel  int
	Types     []domain.SubjectType
	StageTags []string
	Order     SortOrder
}

// Provider runs a search. Implementations must not touch any list; results
// are handed back to the UI goroutine.
type Provider interface {
	Search(ctx context.Context, p Parameters) ([]*domain.Subject, error)
}

func (p Parameters) Validate() error {
	if p.MinLevel < 0 || p.MaxLevel < 0 {
		return fmt.Errorf("level bounds must not be negative: %w", ErrInvalidParameters)
	}
	if p.MaxLevel > 0 && p.MinLevel > p.MaxLevel {
		return fmt.Errorf("min level %d above max level %d: %w", p.MinLevel, p.MaxLevel, ErrInvalidParameters)
	}
	for _, t := range p.Types {
		if !t.Valid() {
			return fmt.Errorf("unknown subject type %q: %w", t, ErrInvalidParameters)
		}
	}
	for _, tag := range p.StageTags {
		if !domain.ValidStageTags[tag] {
			return fmt.Errorf("unknown stage %q: %w", tag, ErrInvalidParameters)
		}
	}
	if !p.Order.valid() {
		return fmt.Errorf("unknown sort order %d: %w", p.Order, ErrInvalidParameters)
	}
	return nil
}

// Filter returns the subject filters of p without the sort order.
func (p Parameters) Filter() domain.SubjectFilter {
	return domain.SubjectFilter{
		Text:      p.Text,
		MinLevel:  p.MinLevel,
		MaxLevel:  p.MaxLevel,
		Types:     p.Types,
		StageTags: p.StageTags,
	}
}

// Matches reports whether s passes every filter in p.
func (p Parameters) Matches(s *domain.Subject) bool { return p.Filter().Matches(s) }

// Describe summarises the active filters for the search form row.
func (p Parameters) Describe() string {
	var parts []string
	if t := strings.TrimSpace(p.Text); t != "" {
		parts = append(parts, fmt.Sprintf("%q", t))
	}
	switch {
	case p.MinLevel > 0 && p.MaxLevel > 0:
		parts = append(parts, fmt.Sprintf("level %d-%d", p.MinLevel, p.MaxLevel))
	case p.MinLevel > 0:
		parts = append(parts, fmt.Sprintf("level %d+", p.MinLevel))
	case p.MaxLevel > 0:
		parts = append(parts, fmt.Sprintf("level ≤%d", p.MaxLevel))
	}
	if len(p.Types) > 0 {
		names := make([]string, len(p.Types))
		for i, t := range p.Types {
			names[i] = string(t)
		}
		parts = append(parts, strings.Join(names, "/"))
	}
	if len(p.StageTags) > 0 {
		parts = append(parts, strings.Join(p.StageTags, "/"))
	}
	if len(parts) == 0 {
		parts = append(parts, "all subjects")
	}
	return strings.Join(parts, " · ") + " by " + p.Order.Description()
}
