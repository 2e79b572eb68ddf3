// Package diaries implements the diary metadata store: one row per calendar
// date, upserted on every successful write of the encrypted blob.
package diaries

import "context"

// EntryTypeDaily is the only entry type currently produced.
const EntryTypeDaily = "daily"

// Meta is the stored metadata row for one diary date. WordCount and
// ModifiedAt always reflect the most recently successfully written
// plaintext, never the ciphertext. Timestamps are decimal Unix-seconds
// strings.
type Meta struct {
	Date       string
	Year       int
	Month      int
	Day        int
	EntryType  string
	Filename   string
	WordCount  int64
	CreatedAt  string
	ModifiedAt string
}

// HistoricalMeta is the projection returned by the on-this-day query.
type HistoricalMeta struct {
	Date      string
	Year      int
	WordCount int64
}

// Repository is the diary metadata contract. FindByDate returns
// common.ErrNotFound when no row exists for the date.
type Repository interface {
	FindByDate(ctx context.Context, date string) (*Meta, error)
	Upsert(ctx context.Context, m *Meta) error
	DaysInMonth(ctx context.Context, year, month int) ([]int, error)
	HistoricalByMonthDay(ctx context.Context, month, day, minYear, maxYearExclusive int) ([]HistoricalMeta, error)
}
