package settings

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/tracediary/internal/common"
	"github.com/dmitrijs2005/tracediary/internal/dbx"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func TestGet_Missing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Get(context.Background(), KeyPasswordHash)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSetGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyKdfSalt, "c2FsdA=="))

	got, err := r.Get(ctx, KeyKdfSalt)
	require.NoError(t, err)
	assert.Equal(t, "c2FsdA==", got)
}

func TestSet_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyLastVerifiedAt, "100"))
	require.NoError(t, r.Set(ctx, KeyLastVerifiedAt, "200"))

	got, err := r.Get(ctx, KeyLastVerifiedAt)
	require.NoError(t, err)
	assert.Equal(t, "200", got)
}

func TestRepository_InsideTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyPasswordHash, "hash"); err != nil {
			return err
		}
		return repo.Set(ctx, KeyKdfSalt, "salt")
	})
	require.NoError(t, err)

	repo := NewSQLiteRepository(db)
	hash, err := repo.Get(ctx, KeyPasswordHash)
	require.NoError(t, err)
	assert.Equal(t, "hash", hash)
}
