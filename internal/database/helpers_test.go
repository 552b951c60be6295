package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTx_RollsBackOnError(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := withTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO design_partners (name, email, stage) VALUES ('x', 'x@y.z', 'Design')`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM design_partners`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestBuildPatchSet(t *testing.T) {
	set, args := buildPatchSet([]string{"name", "stage"}, []any{"a", "b"})
	assert.Equal(t, "name = ?, stage = ?", set)
	assert.Equal(t, []any{"a", "b"}, args)
}
