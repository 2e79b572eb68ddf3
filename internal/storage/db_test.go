package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	ctx := context.Background()

	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// Both tables exist and accept writes after migration.
	_, err = db.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES ('k', 'v')`)
	assert.NoError(t, err)

	_, err = db.ExecContext(ctx, `
		INSERT INTO diaries (date, year, month, day, entry_type, filename, word_count, created_at, modified_at)
		VALUES ('2025-06-01', 2025, 6, 1, 'daily', 'diaries/2025-06-01.md', 10, '1', '1')`)
	assert.NoError(t, err)
}
