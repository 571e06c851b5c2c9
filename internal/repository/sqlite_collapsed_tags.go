package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/kioku/internal/db"
	"github.com/alexanderramin/kioku/internal/domain"
)

// SQLiteCollapsedTagRepo implements CollapsedTagRepo using a SQLite database.
type SQLiteCollapsedTagRepo struct {
	db db.DBTX
}

func NewSQLiteCollapsedTagRepo(conn db.DBTX) *SQLiteCollapsedTagRepo {
	return &SQLiteCollapsedTagRepo{db: conn}
}

// List returns the collapsed tags of list, sorted.
func (r *SQLiteCollapsedTagRepo) List(ctx context.Context, list domain.ListName) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tag FROM collapsed_tags WHERE list = ? ORDER BY tag`, string(list))
	if err != nil {
		return nil, fmt.Errorf("listing collapsed tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scanning collapsed tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collapsed tags: %w", err)
	}
	return tags, nil
}

// Replace stores exactly tags for list. Run it inside a unit of work to make
// the delete and inserts atomic.
func (r *SQLiteCollapsedTagRepo) Replace(ctx context.Context, list domain.ListName, tags []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM collapsed_tags WHERE list = ?`, string(list)); err != nil {
		return fmt.Errorf("clearing collapsed tags: %w", err)
	}
	for _, tag := range tags {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO collapsed_tags (list, tag) VALUES (?, ?)`, string(list), tag); err != nil {
			return fmt.Errorf("inserting collapsed tag %q: %w", tag, err)
		}
	}
	return nil
}
