package diaries

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/tracediary/internal/common"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE diaries (
  date TEXT PRIMARY KEY,
  year INTEGER NOT NULL,
  month INTEGER NOT NULL,
  day INTEGER NOT NULL,
  entry_type TEXT NOT NULL,
  filename TEXT NOT NULL,
  word_count INTEGER NOT NULL,
  created_at TEXT NOT NULL,
  modified_at TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func meta(date string, year, month, day int, wordCount int64, ts string) *Meta {
	return &Meta{
		Date:       date,
		Year:       year,
		Month:      month,
		Day:        day,
		EntryType:  EntryTypeDaily,
		Filename:   "diaries/" + date + ".md",
		WordCount:  wordCount,
		CreatedAt:  ts,
		ModifiedAt: ts,
	}
}

func TestFindByDate_Missing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.FindByDate(context.Background(), "2025-06-01")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpsert_InsertThenUpdate(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, meta("2025-06-01", 2025, 6, 1, 10, "100")))

	got, err := r.FindByDate(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.WordCount)
	assert.Equal(t, "100", got.CreatedAt)
	assert.Equal(t, "100", got.ModifiedAt)

	// Update keeps created_at, replaces the mutable fields.
	require.NoError(t, r.Upsert(ctx, meta("2025-06-01", 2025, 6, 1, 42, "200")))

	got, err = r.FindByDate(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.WordCount)
	assert.Equal(t, "100", got.CreatedAt)
	assert.Equal(t, "200", got.ModifiedAt)
}

func TestDaysInMonth_SortedUnique(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, meta("2026-02-20", 2026, 2, 20, 1, "2")))
	require.NoError(t, r.Upsert(ctx, meta("2026-02-05", 2026, 2, 5, 1, "1")))
	require.NoError(t, r.Upsert(ctx, meta("2026-03-01", 2026, 3, 1, 1, "3")))

	days, err := r.DaysInMonth(ctx, 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 20}, days)

	days, err = r.DaysInMonth(ctx, 2026, 4)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestHistoricalByMonthDay_ExcludesCurrentYearSortsDesc(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	for year := 2022; year <= 2026; year++ {
		date := fmt.Sprintf("%d-02-05", year)
		require.NoError(t, r.Upsert(ctx, meta(date, year, 2, 5, int64(year), "1")))
	}

	items, err := r.HistoricalByMonthDay(ctx, 2, 5, 2022, 2026)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, 2025, items[0].Year)
	assert.Equal(t, 2022, items[3].Year)
	assert.Equal(t, int64(2025), items[0].WordCount)
}
