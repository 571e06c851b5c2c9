package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/kioku/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func hasTag(t *testing.T, uow *db.SQLiteUnitOfWork, list, tag string) bool {
	t.Helper()
	var n int
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM collapsed_tags WHERE list = ? AND tag = ?`, list, tag).Scan(&n)
	})
	require.NoError(t, err)
	return n > 0
}

func insertTag(ctx context.Context, tx db.DBTX, tag string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO collapsed_tags (list, tag) VALUES ('search', ?)`, tag)
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertTag(ctx, tx, "3")
	})
	require.NoError(t, err)
	assert.True(t, hasTag(t, uow, "search", "3"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertTag(ctx, tx, "3 KANJI"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, hasTag(t, uow, "search", "3 KANJI"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertTag(ctx, tx, "burned")
			panic("boom")
		})
	})
	assert.False(t, hasTag(t, uow, "search", "burned"))
}
