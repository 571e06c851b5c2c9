package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/kioku/internal/db"
	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/importer"
	"github.com/alexanderramin/kioku/internal/repository"
	"github.com/alexanderramin/kioku/internal/sessionlog"
	"github.com/google/uuid"
)

// ErrImportInvalid is wrapped by imports rejected during validation.
var ErrImportInvalid = errors.New("import validation failed")

type importService struct {
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

// NewImportService writes every import in a single transaction: an import
// either lands completely or not at all.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, now: time.Now, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{"subjects": len(schema.Subjects)}
	done := observe(ctx, s.observer, "import", fields)
	defer func() { done(err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	now := s.now().UTC()
	generated, err := importer.Convert(schema, now)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		subjects := repository.NewSQLiteSubjectRepo(tx)
		for _, subj := range generated.Subjects {
			if err := subjects.Upsert(ctx, subj); err != nil {
				return fmt.Errorf("importing subject %d: %w", subj.ID, err)
			}
		}
		if schema.Session == nil {
			return nil
		}
		return replaceSession(ctx, tx, generated, now)
	})
	if err != nil {
		return nil, err
	}

	fields["session_items"] = len(generated.Items)
	return &ImportResult{
		SubjectCount: len(generated.Subjects),
		SessionItems: len(generated.Items),
		SessionType:  generated.SessionType,
	}, nil
}

func replaceSession(ctx context.Context, tx db.DBTX, generated *importer.Generated, now time.Time) error {
	items := repository.NewSQLiteSessionItemRepo(tx)
	events := repository.NewSQLiteSessionEventRepo(tx)
	if err := events.DeleteAll(ctx); err != nil {
		return err
	}
	if err := items.DeleteAll(ctx); err != nil {
		return err
	}
	for _, item := range generated.Items {
		if err := items.Create(ctx, item); err != nil {
			return fmt.Errorf("importing session item for subject %d: %w", item.SubjectID, err)
		}
	}
	return events.Create(ctx, &domain.LogEvent{
		ID:   uuid.New().String(),
		At:   now,
		Text: sessionlog.StartSessionText(generated.SessionType),
	})
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors:", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return fmt.Errorf("%w: %s", ErrImportInvalid, b.String())
}
