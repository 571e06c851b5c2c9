package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/kioku/internal/db"
	"github.com/alexanderramin/kioku/internal/domain"
)

// SQLiteSessionEventRepo implements SessionEventRepo using a SQLite database.
type SQLiteSessionEventRepo struct {
	db db.DBTX
}

func NewSQLiteSessionEventRepo(conn db.DBTX) *SQLiteSessionEventRepo {
	return &SQLiteSessionEventRepo{db: conn}
}

func (r *SQLiteSessionEventRepo) Create(ctx context.Context, ev *domain.LogEvent) error {
	var itemID any
	if ev.SessionItem != nil {
		itemID = ev.SessionItem.ID
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_events (id, session_item_id, text, at) VALUES (?, ?, ?, ?)`,
		ev.ID, itemID, ev.Text, formatTime(ev.At),
	)
	if err != nil {
		return fmt.Errorf("inserting session event: %w", err)
	}
	return nil
}

// ListRecent loads events with their session item, if it still exists. The
// item's subject is left nil; callers resolve it against the item list.
func (r *SQLiteSessionEventRepo) ListRecent(ctx context.Context, limit int) ([]*domain.LogEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.id, e.text, e.at, i.id, i.subject_id, i.state, i.questions_done, i.order_index
		FROM session_events e
		LEFT JOIN session_items i ON i.id = e.session_item_id
		ORDER BY e.at DESC, e.rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing session events: %w", err)
	}
	defer rows.Close()

	var events []*domain.LogEvent
	for rows.Next() {
		var ev domain.LogEvent
		var at string
		var itemID, state sql.NullString
		var subjectID, questionsDone, order sql.NullInt64
		if err := rows.Scan(&ev.ID, &ev.Text, &at, &itemID, &subjectID, &state, &questionsDone, &order); err != nil {
			return nil, fmt.Errorf("scanning session event: %w", err)
		}
		ev.At = parseTime(at)
		if itemID.Valid {
			ev.SessionItem = &domain.SessionItem{
				ID:            itemID.String,
				SubjectID:     subjectID.Int64,
				State:         domain.SessionItemState(state.String),
				QuestionsDone: int(questionsDone.Int64),
				Order:         int(order.Int64),
			}
		}
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session events: %w", err)
	}
	return events, nil
}

func (r *SQLiteSessionEventRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_events`); err != nil {
		return fmt.Errorf("clearing session events: %w", err)
	}
	return nil
}
