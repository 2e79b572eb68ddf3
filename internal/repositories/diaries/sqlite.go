package diaries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tracediary/internal/common"
	"github.com/dmitrijs2005/tracediary/internal/dbx"
)

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or
// *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) FindByDate(ctx context.Context, date string) (*Meta, error) {
	var m Meta
	err := r.db.QueryRowContext(ctx, `
		SELECT date, year, month, day, entry_type, filename, word_count, created_at, modified_at
		FROM diaries
		WHERE date = ?`, date).
		Scan(&m.Date, &m.Year, &m.Month, &m.Day, &m.EntryType, &m.Filename, &m.WordCount, &m.CreatedAt, &m.ModifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no metadata for %s", common.ErrNotFound, date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find diary meta for %s: %w", date, err)
	}
	return &m, nil
}

// Upsert inserts the row or replaces all mutable fields of an existing one.
// created_at is written on insert only; modified_at follows every write.
func (r *SQLiteRepository) Upsert(ctx context.Context, m *Meta) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO diaries
			(date, year, month, day, entry_type, filename, word_count, created_at, modified_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			year        = excluded.year,
			month       = excluded.month,
			day         = excluded.day,
			entry_type  = excluded.entry_type,
			filename    = excluded.filename,
			word_count  = excluded.word_count,
			modified_at = excluded.modified_at
	`, m.Date, m.Year, m.Month, m.Day, m.EntryType, m.Filename, m.WordCount, m.CreatedAt, m.ModifiedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert diary meta for %s: %w", m.Date, err)
	}
	return nil
}

// DaysInMonth lists the distinct days within year/month that have a daily
// entry, ascending.
func (r *SQLiteRepository) DaysInMonth(ctx context.Context, year, month int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT day
		FROM diaries
		WHERE year = ? AND month = ? AND entry_type = ?
		ORDER BY day ASC`, year, month, EntryTypeDaily)
	if err != nil {
		return nil, fmt.Errorf("failed to list days in month: %w", err)
	}
	defer rows.Close()

	var days []int
	for rows.Next() {
		var day int
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate days: %w", err)
	}
	return days, nil
}

// HistoricalByMonthDay lists entries sharing the same month/day across years
// [minYear, maxYearExclusive), newest first.
func (r *SQLiteRepository) HistoricalByMonthDay(ctx context.Context, month, day, minYear, maxYearExclusive int) ([]HistoricalMeta, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, year, word_count
		FROM diaries
		WHERE month = ? AND day = ? AND year >= ? AND year < ? AND entry_type = ?
		ORDER BY year DESC`, month, day, minYear, maxYearExclusive, EntryTypeDaily)
	if err != nil {
		return nil, fmt.Errorf("failed to list historical meta: %w", err)
	}
	defer rows.Close()

	var items []HistoricalMeta
	for rows.Next() {
		var m HistoricalMeta
		if err := rows.Scan(&m.Date, &m.Year, &m.WordCount); err != nil {
			return nil, fmt.Errorf("failed to scan historical meta: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate historical meta: %w", err)
	}
	return items, nil
}
