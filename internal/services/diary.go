package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrijs2005/tracediary/internal/blobstore"
	"github.com/dmitrijs2005/tracediary/internal/common"
	"github.com/dmitrijs2005/tracediary/internal/cryptox"
	"github.com/dmitrijs2005/tracediary/internal/dbx"
	"github.com/dmitrijs2005/tracediary/internal/keyringx"
	"github.com/dmitrijs2005/tracediary/internal/logging"
	"github.com/dmitrijs2005/tracediary/internal/repositories/diaries"
)

// MinYear is the earliest year a diary entry may carry.
const MinYear = 2022

// previewLines is how many non-empty lines go into an on-this-day preview.
const previewLines = 3

var dateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// ValidateDate checks the YYYY-MM-DD format and the value ranges: year >=
// 2022, month 1-12, day 1-31. Range check only, no calendar validity
// (2025-02-30 passes). Runs before any cryptographic or storage operation.
func ValidateDate(date string) (year, month, day int, err error) {
	m := dateRe.FindStringSubmatch(date)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("%w: %q is not YYYY-MM-DD", common.ErrInvalidDate, date)
	}

	year, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	day, _ = strconv.Atoi(m[3])

	if year < MinYear {
		return 0, 0, 0, fmt.Errorf("%w: year %d is before %d", common.ErrInvalidDate, year, MinYear)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("%w: month %d out of range", common.ErrInvalidDate, month)
	}
	if day < 1 || day > 31 {
		return 0, 0, 0, fmt.Errorf("%w: day %d out of range", common.ErrInvalidDate, day)
	}
	return year, month, day, nil
}

// WordCount counts the non-whitespace characters of content; "hello world"
// counts as 10.
func WordCount(content string) int64 {
	var n int64
	for _, r := range content {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// Entry is a decrypted diary entry paired with its metadata.
type Entry struct {
	Date       string
	Content    string
	WordCount  int64
	ModifiedAt string
}

// HistoricalEntry is one on-this-day result: an entry from a past year
// sharing the queried month and day.
type HistoricalEntry struct {
	Date      string
	Year      int
	Preview   string
	WordCount int64
}

// DiaryService coordinates the encrypted read/write path: validate the
// date, require the cached master key, drive the envelope, and keep blob
// and metadata consistent.
type DiaryService interface {
	Read(ctx context.Context, date string) (*Entry, error)
	Write(ctx context.Context, date, content string) error
	DaysInMonth(ctx context.Context, year, month int) ([]int, error)
	OnThisDay(ctx context.Context, month, day, currentYear int) ([]HistoricalEntry, error)
}

type diaryService struct {
	db    *sql.DB
	cache keyringx.Cache
	blobs *blobstore.Store
	log   logging.Logger
	now   func() time.Time
}

// NewDiaryService constructs a DiaryService over the metadata store, the OS
// secret cache and the blob store.
func NewDiaryService(db *sql.DB, cache keyringx.Cache, blobs *blobstore.Store, log logging.Logger) DiaryService {
	return &diaryService{db: db, cache: cache, blobs: blobs, log: log, now: time.Now}
}

// requireKey loads the cached master key or reports the locked state.
func (s *diaryService) requireKey() ([]byte, error) {
	key, err := s.cache.Load()
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, common.ErrLocked
	}
	return key, nil
}

func (s *diaryService) Read(ctx context.Context, date string) (*Entry, error) {
	if _, _, _, err := ValidateDate(date); err != nil {
		return nil, err
	}

	key, err := s.requireKey()
	if err != nil {
		return nil, err
	}
	defer cryptox.Zero(key)

	envelope, err := s.blobs.Read(date)
	if err != nil {
		return nil, err
	}

	content, err := cryptox.DecryptText(key, envelope)
	if err != nil {
		return nil, err
	}

	entry := &Entry{Date: date, Content: content}

	meta, err := diaries.NewSQLiteRepository(s.db).FindByDate(ctx, date)
	switch {
	case errors.Is(err, common.ErrNotFound):
		// Entries written before the metadata table existed have a blob but
		// no row: recompute the word count and leave modified-at empty.
		entry.WordCount = WordCount(content)
	case err != nil:
		return nil, fmt.Errorf("failed to read entry metadata: %w", err)
	default:
		entry.WordCount = meta.WordCount
		entry.ModifiedAt = meta.ModifiedAt
	}
	return entry, nil
}

func (s *diaryService) Write(ctx context.Context, date, content string) error {
	year, month, day, err := ValidateDate(date)
	if err != nil {
		return err
	}

	key, err := s.requireKey()
	if err != nil {
		return err
	}
	defer cryptox.Zero(key)

	envelope, err := cryptox.EncryptText(key, content)
	if err != nil {
		return err
	}

	if err := s.blobs.Write(date, envelope); err != nil {
		return err
	}

	nowStr := strconv.FormatInt(s.now().Unix(), 10)
	meta := &diaries.Meta{
		Date:       date,
		Year:       year,
		Month:      month,
		Day:        day,
		EntryType:  diaries.EntryTypeDaily,
		Filename:   s.blobs.RelativePath(date),
		WordCount:  WordCount(content),
		CreatedAt:  nowStr,
		ModifiedAt: nowStr,
	}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return diaries.NewSQLiteRepository(tx).Upsert(ctx, meta)
	})
	if err != nil {
		return fmt.Errorf("failed to upsert entry metadata: %w", err)
	}

	s.log.Info(ctx, "entry saved", "date", date, "word_count", meta.WordCount)
	return nil
}

// DaysInMonth lists the days within year/month that have an entry. Metadata
// only: no key is required and nothing is decrypted.
func (s *diaryService) DaysInMonth(ctx context.Context, year, month int) ([]int, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d out of range", common.ErrInvalidDate, month)
	}
	return diaries.NewSQLiteRepository(s.db).DaysInMonth(ctx, year, month)
}

// OnThisDay lists entries from past years sharing month/day, newest first,
// each with a short decrypted preview. A metadata row whose blob is missing
// keeps its place with an empty preview.
func (s *diaryService) OnThisDay(ctx context.Context, month, day, currentYear int) ([]HistoricalEntry, error) {
	// No history can exist before MinYear: short-circuit before any
	// argument validation, so an out-of-range month still yields an empty
	// result for such years.
	if currentYear < MinYear {
		return nil, nil
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d out of range", common.ErrInvalidDate, month)
	}
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("%w: day %d out of range", common.ErrInvalidDate, day)
	}

	key, err := s.requireKey()
	if err != nil {
		return nil, err
	}
	defer cryptox.Zero(key)

	metas, err := diaries.NewSQLiteRepository(s.db).HistoricalByMonthDay(ctx, month, day, MinYear, currentYear)
	if err != nil {
		return nil, err
	}

	items := make([]HistoricalEntry, 0, len(metas))
	for _, meta := range metas {
		var preview string
		envelope, err := s.blobs.Read(meta.Date)
		switch {
		case errors.Is(err, common.ErrNotFound):
		case err != nil:
			return nil, err
		default:
			content, err := cryptox.DecryptText(key, envelope)
			if err != nil {
				return nil, err
			}
			preview = firstNonEmptyLines(content, previewLines)
		}
		items = append(items, HistoricalEntry{
			Date:      meta.Date,
			Year:      meta.Year,
			Preview:   preview,
			WordCount: meta.WordCount,
		})
	}
	return items, nil
}

// firstNonEmptyLines returns up to max trimmed non-empty lines of content,
// joined with '\n'.
func firstNonEmptyLines(content string, max int) string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
		if len(out) >= max {
			break
		}
	}
	return strings.Join(out, "\n")
}
