package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"subjects", "session_items", "session_events", "collapsed_tags"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{
		"idx_subjects_level",
		"idx_subjects_stage",
		"idx_session_items_subject",
		"idx_session_events_at",
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestMigrate_InMemoryJournalMode(t *testing.T) {
	// WAL only applies to file databases; :memory: keeps its own mode.
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestMigrate_AddsResurrectedAtToLegacySchema(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE subjects (
		id           INTEGER PRIMARY KEY,
		type         TEXT NOT NULL,
		level        INTEGER NOT NULL,
		characters   TEXT NOT NULL DEFAULT '',
		meaning      TEXT NOT NULL DEFAULT '',
		stage        INTEGER NOT NULL DEFAULT 0,
		available_at TEXT,
		passed_at    TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO subjects (id, type, level, characters, created_at, updated_at)
		VALUES (7, 'kanji', 3, '水', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var chars string
	var resurrected sql.NullString
	require.NoError(t, db.QueryRow(`SELECT characters, resurrected_at FROM subjects WHERE id = 7`).Scan(&chars, &resurrected))
	assert.Equal(t, "水", chars)
	assert.False(t, resurrected.Valid)
}

func TestMigrate_CascadesSessionItemsOnSubjectDelete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO subjects (id, type, level, created_at, updated_at)
		VALUES (1, 'radical', 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO session_items (id, subject_id, updated_at) VALUES ('a', 1, '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM subjects WHERE id = 1`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM session_items`).Scan(&n))
	assert.Zero(t, n)
}
