package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubTx struct {
	DBExecutor
}

func (s *stubTx) Commit() error   { return nil }
func (s *stubTx) Rollback() error { return nil }

func TestOperation(t *testing.T) {
	assert.Equal(t, "SELECT", operation("  select id FROM appointments"))
	assert.Equal(t, "INSERT", operation("INSERT\nINTO clients"))
	assert.Equal(t, "COMMIT", operation("COMMIT"))
}

func TestGetExecutor(t *testing.T) {
	var db *sql.DB
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Equal(t, DBExecutor(db), GetExecutor(ctx, db))

	tx := &stubTx{}
	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}
