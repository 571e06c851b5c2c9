package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/kioku/internal/db"
	"github.com/alexanderramin/kioku/internal/domain"
)

// SQLiteSessionItemRepo implements SessionItemRepo using a SQLite database.
type SQLiteSessionItemRepo struct {
	db db.DBTX
}

func NewSQLiteSessionItemRepo(conn db.DBTX) *SQLiteSessionItemRepo {
	return &SQLiteSessionItemRepo{db: conn}
}

const sessionItemSelect = `SELECT i.id, i.subject_id, i.state, i.questions_done, i.order_index, i.updated_at,
	s.id, s.type, s.level, s.characters, s.meaning, s.stage,
	s.available_at, s.passed_at, s.resurrected_at, s.created_at, s.updated_at
	FROM session_items i
	JOIN subjects s ON s.id = i.subject_id`

func (r *SQLiteSessionItemRepo) Create(ctx context.Context, item *domain.SessionItem) error {
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = nowUTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_items (id, subject_id, state, questions_done, order_index, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.SubjectID,
		string(item.State),
		item.QuestionsDone,
		item.Order,
		formatTime(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting session item: %w", err)
	}
	return nil
}

func (r *SQLiteSessionItemRepo) GetByID(ctx context.Context, id string) (*domain.SessionItem, error) {
	row := r.db.QueryRowContext(ctx, sessionItemSelect+` WHERE i.id = ?`, id)
	item, err := scanSessionItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session item: %w", err)
	}
	return item, nil
}

func (r *SQLiteSessionItemRepo) List(ctx context.Context) ([]*domain.SessionItem, error) {
	rows, err := r.db.QueryContext(ctx, sessionItemSelect+` ORDER BY i.order_index, i.id`)
	if err != nil {
		return nil, fmt.Errorf("listing session items: %w", err)
	}
	defer rows.Close()

	var items []*domain.SessionItem
	for rows.Next() {
		item, err := scanSessionItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session items: %w", err)
	}
	return items, nil
}

func (r *SQLiteSessionItemRepo) Update(ctx context.Context, item *domain.SessionItem) error {
	item.UpdatedAt = nowUTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE session_items SET state = ?, questions_done = ?, order_index = ?, updated_at = ? WHERE id = ?`,
		string(item.State), item.QuestionsDone, item.Order, formatTime(item.UpdatedAt), item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating session item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session item %s: %w", item.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionItemRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_items`); err != nil {
		return fmt.Errorf("clearing session items: %w", err)
	}
	return nil
}

func scanSessionItem(row rowScanner) (*domain.SessionItem, error) {
	var item domain.SessionItem
	var state, updatedAt string
	var s domain.Subject
	var typ string
	var stage int
	var availableAt, passedAt, resurrectedAt sql.NullString
	var createdAt, subjectUpdatedAt string
	err := row.Scan(
		&item.ID, &item.SubjectID, &state, &item.QuestionsDone, &item.Order, &updatedAt,
		&s.ID, &typ, &s.Level, &s.Characters, &s.Meaning, &stage,
		&availableAt, &passedAt, &resurrectedAt, &createdAt, &subjectUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.State = domain.SessionItemState(state)
	item.UpdatedAt = parseTime(updatedAt)

	s.Type = domain.SubjectType(typ)
	s.Stage = domain.Stage(stage)
	s.AvailableAt = parseNullableTime(availableAt)
	s.PassedAt = parseNullableTime(passedAt)
	s.ResurrectedAt = parseNullableTime(resurrectedAt)
	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = parseTime(subjectUpdatedAt)
	item.Subject = &s
	return &item, nil
}
