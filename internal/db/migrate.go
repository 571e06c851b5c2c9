package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent, so it
// is safe to run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS subjects (
		id           INTEGER PRIMARY KEY,
		type         TEXT NOT NULL CHECK(type IN ('radical','kanji','vocabulary')),
		level        INTEGER NOT NULL CHECK(level >= 0),
		characters   TEXT NOT NULL DEFAULT '',
		meaning      TEXT NOT NULL DEFAULT '',
		stage        INTEGER NOT NULL DEFAULT 0 CHECK(stage BETWEEN -1 AND 9),
		available_at TEXT,
		passed_at    TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_subjects_level ON subjects(level)`,
	`CREATE INDEX IF NOT EXISTS idx_subjects_stage ON subjects(stage)`,

	`CREATE TABLE IF NOT EXISTS session_items (
		id             TEXT PRIMARY KEY,
		subject_id     INTEGER NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		state          TEXT NOT NULL DEFAULT 'active'
		               CHECK(state IN ('active','pending','reported','abandoned')),
		questions_done INTEGER NOT NULL DEFAULT 0,
		order_index    INTEGER NOT NULL DEFAULT 0,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_session_items_subject ON session_items(subject_id)`,

	`CREATE TABLE IF NOT EXISTS session_events (
		id              TEXT PRIMARY KEY,
		session_item_id TEXT REFERENCES session_items(id) ON DELETE SET NULL,
		text            TEXT NOT NULL,
		at              TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_session_events_at ON session_events(at)`,

	`CREATE TABLE IF NOT EXISTS collapsed_tags (
		list TEXT NOT NULL,
		tag  TEXT NOT NULL,
		PRIMARY KEY (list, tag)
	)`,

	// Resurrection tracking was added after the first release.
	`ALTER TABLE subjects ADD COLUMN resurrected_at TEXT`,
}
