package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/omnigratum/timeclock/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertProject(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO projects
		(id, name, description, created_by, status, created_at)
		VALUES (?, ?, '', 'tester', 'active', '2026-08-24T09:00:00Z')`, id, "proj-"+id)
	return err
}

func projectExists(uow *db.SQLiteUnitOfWork, id string) bool {
	found := false
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		row := tx.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE id = ?`, id)
		var one int
		if err := row.Scan(&one); err == nil {
			found = true
		}
		return nil
	})
	return found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := newTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertProject(ctx, tx, "p1")
	})
	require.NoError(t, err)

	assert.True(t, projectExists(uow, "p1"), "row should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := newTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertProject(ctx, tx, "p2"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	assert.False(t, projectExists(uow, "p2"), "row should be rolled back")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := newTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			if err := insertProject(ctx, tx, "p3"); err != nil {
				return err
			}
			panic("boom")
		})
	})

	assert.False(t, projectExists(uow, "p3"), "row should be rolled back after panic")
}
