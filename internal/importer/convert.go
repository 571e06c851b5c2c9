package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/google/uuid"
)

// Generated holds the domain objects of an import, ready for persistence.
type Generated struct {
	Subjects    []*domain.Subject
	SessionType domain.SessionType
	Items       []*domain.SessionItem
}

// Convert turns a validated schema into domain objects. Call
// ValidateImportSchema first.
func Convert(schema *ImportSchema, now time.Time) (*Generated, error) {
	out := &Generated{Subjects: make([]*domain.Subject, 0, len(schema.Subjects))}
	byID := make(map[int64]*domain.Subject, len(schema.Subjects))

	for _, si := range schema.Subjects {
		s := &domain.Subject{
			ID:         si.ID,
			Type:       domain.SubjectType(si.Type),
			Level:      si.Level,
			Characters: si.Characters,
			Meaning:    si.Meaning,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if si.Stage != "" {
			stage, err := domain.ParseStage(si.Stage)
			if err != nil {
				return nil, fmt.Errorf("subject %d: %w", si.ID, err)
			}
			s.Stage = stage
		}
		var err error
		if s.AvailableAt, err = parseOptionalTime(si.AvailableAt); err != nil {
			return nil, fmt.Errorf("subject %d available_at: %w", si.ID, err)
		}
		if s.PassedAt, err = parseOptionalTime(si.PassedAt); err != nil {
			return nil, fmt.Errorf("subject %d passed_at: %w", si.ID, err)
		}
		if s.ResurrectedAt, err = parseOptionalTime(si.ResurrectedAt); err != nil {
			return nil, fmt.Errorf("subject %d resurrected_at: %w", si.ID, err)
		}
		out.Subjects = append(out.Subjects, s)
		byID[s.ID] = s
	}

	if schema.Session != nil {
		out.SessionType = domain.SessionType(schema.Session.Type)
		for i, ii := range schema.Session.Items {
			state := domain.SessionItemState(domain.CoalesceStr(ii.State, string(domain.SessionItemActive)))
			out.Items = append(out.Items, &domain.SessionItem{
				ID:            uuid.New().String(),
				SubjectID:     ii.SubjectID,
				Subject:       byID[ii.SubjectID],
				State:         state,
				QuestionsDone: ii.QuestionsDone,
				Order:         i,
				UpdatedAt:     now,
			})
		}
	}
	return out, nil
}

func parseOptionalTime(v *string) (time.Time, error) {
	if v == nil || *v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, *v)
}
