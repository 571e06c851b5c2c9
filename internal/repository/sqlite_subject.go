package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/kioku/internal/db"
	"github.com/alexanderramin/kioku/internal/domain"
)

const subjectColumns = `id, type, level, characters, meaning, stage,
	available_at, passed_at, resurrected_at, created_at, updated_at`

// SQLiteSubjectRepo implements SubjectRepo using a SQLite database.
type SQLiteSubjectRepo struct {
	db db.DBTX
}

func NewSQLiteSubjectRepo(conn db.DBTX) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{db: conn}
}

// Upsert inserts s or replaces the stored subject with the same ID. A zero
// CreatedAt is set to now.
func (r *SQLiteSubjectRepo) Upsert(ctx context.Context, s *domain.Subject) error {
	now := nowUTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	query := `INSERT INTO subjects (` + subjectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			level = excluded.level,
			characters = excluded.characters,
			meaning = excluded.meaning,
			stage = excluded.stage,
			available_at = excluded.available_at,
			passed_at = excluded.passed_at,
			resurrected_at = excluded.resurrected_at,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		string(s.Type),
		s.Level,
		s.Characters,
		s.Meaning,
		int(s.Stage),
		nullableTime(s.AvailableAt),
		nullableTime(s.PassedAt),
		nullableTime(s.ResurrectedAt),
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting subject %d: %w", s.ID, err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) GetByID(ctx context.Context, id int64) (*domain.Subject, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE id = ?`, id)
	s, err := scanSubject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subject %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning subject: %w", err)
	}
	return s, nil
}

// ListByIDs returns the subjects that exist among ids, ordered by ID.
func (r *SQLiteSubjectRepo) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Subject, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE id IN (` + placeholders(len(ids)) + `) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing subjects by id: %w", err)
	}
	defer rows.Close()
	return scanSubjects(rows, nil)
}

// Search narrows by level and type in SQL, then applies the remaining
// filters in memory. Results are in ID order; grouping reorders them.
func (r *SQLiteSubjectRepo) Search(ctx context.Context, f domain.SubjectFilter) ([]*domain.Subject, error) {
	var where []string
	var args []any
	if f.MinLevel > 0 {
		where = append(where, "level >= ?")
		args = append(args, f.MinLevel)
	}
	if f.MaxLevel > 0 {
		where = append(where, "level <= ?")
		args = append(args, f.MaxLevel)
	}
	if len(f.Types) > 0 {
		where = append(where, "type IN ("+placeholders(len(f.Types))+")")
		for _, t := range f.Types {
			args = append(args, string(t))
		}
	}

	query := `SELECT ` + subjectColumns + ` FROM subjects`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching subjects: %w", err)
	}
	defer rows.Close()
	return scanSubjects(rows, f.Matches)
}

func (r *SQLiteSubjectRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subjects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting subjects: %w", err)
	}
	return n, nil
}

func (r *SQLiteSubjectRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting subject %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("subject %d: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubject(row rowScanner) (*domain.Subject, error) {
	var s domain.Subject
	var typ string
	var stage int
	var availableAt, passedAt, resurrectedAt sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&s.ID, &typ, &s.Level, &s.Characters, &s.Meaning, &stage,
		&availableAt, &passedAt, &resurrectedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	s.Type = domain.SubjectType(typ)
	s.Stage = domain.Stage(stage)
	s.AvailableAt = parseNullableTime(availableAt)
	s.PassedAt = parseNullableTime(passedAt)
	s.ResurrectedAt = parseNullableTime(resurrectedAt)
	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = parseTime(updatedAt)
	return &s, nil
}

// scanSubjects reads every row, keeping those accepted by keep (all when nil).
func scanSubjects(rows *sql.Rows, keep func(*domain.Subject) bool) ([]*domain.Subject, error) {
	var out []*domain.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subject row: %w", err)
		}
		if keep == nil || keep(s) {
			out = append(out, s)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subject rows: %w", err)
	}
	return out, nil
}
