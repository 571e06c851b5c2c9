package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/kioku/internal/domain"
)

var validItemStates = map[string]bool{"active": true, "pending": true, "reported": true, "abandoned": true}

var validSessionTypes = map[string]bool{"lesson": true, "review": true, "self_study": true}

// ValidationError names the offending field of an import file.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Msg
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// ValidateImportSchema checks the schema before conversion and returns
// every problem found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error
	if len(schema.Subjects) == 0 && schema.Session == nil {
		errs = append(errs, invalid("subjects", "nothing to import"))
	}

	ids := make(map[int64]bool, len(schema.Subjects))
	for i, s := range schema.Subjects {
		errs = append(errs, validateSubject(fmt.Sprintf("subjects[%d]", i), &s, ids)...)
	}
	if schema.Session != nil {
		errs = append(errs, validateSession(schema.Session, ids)...)
	}
	return errs
}

func validateSubject(field string, s *SubjectImport, ids map[int64]bool) []error {
	var errs []error
	if s.ID <= 0 {
		errs = append(errs, invalid(field+".id", "must be positive"))
	} else if ids[s.ID] {
		errs = append(errs, invalid(field+".id", "duplicate id %d", s.ID))
	}
	ids[s.ID] = true

	if !domain.ValidSubjectTypes[s.Type] {
		errs = append(errs, invalid(field+".type", "invalid value %q", s.Type))
	}
	if s.Level < 0 {
		errs = append(errs, invalid(field+".level", "must not be negative"))
	}
	if s.Characters == "" && s.Meaning == "" {
		errs = append(errs, invalid(field, "characters or meaning is required"))
	}
	if s.Stage != "" {
		if _, err := domain.ParseStage(s.Stage); err != nil {
			errs = append(errs, invalid(field+".stage", "invalid value %q", s.Stage))
		}
	}
	for _, tf := range []struct {
		name string
		v    *string
	}{
		{"available_at", s.AvailableAt},
		{"passed_at", s.PassedAt},
		{"resurrected_at", s.ResurrectedAt},
	} {
		if tf.v == nil {
			continue
		}
		if _, err := time.Parse(time.RFC3339, *tf.v); err != nil {
			errs = append(errs, invalid(field+"."+tf.name, "invalid time %q (expected RFC 3339)", *tf.v))
		}
	}
	return errs
}

func validateSession(s *SessionImport, subjectIDs map[int64]bool) []error {
	var errs []error
	if !validSessionTypes[s.Type] {
		errs = append(errs, invalid("session.type", "invalid value %q", s.Type))
	}
	seen := make(map[int64]bool, len(s.Items))
	for i, item := range s.Items {
		field := fmt.Sprintf("session.items[%d]", i)
		if !subjectIDs[item.SubjectID] {
			errs = append(errs, invalid(field+".subject_id", "unknown subject %d", item.SubjectID))
		}
		if seen[item.SubjectID] {
			errs = append(errs, invalid(field+".subject_id", "subject %d appears twice", item.SubjectID))
		}
		seen[item.SubjectID] = true
		if item.State != "" && !validItemStates[item.State] {
			errs = append(errs, invalid(field+".state", "invalid value %q", item.State))
		}
		if item.QuestionsDone < 0 {
			errs = append(errs, invalid(field+".questions_done", "must not be negative"))
		}
	}
	return errs
}
