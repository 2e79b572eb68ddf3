// Package blobstore persists encrypted diary envelopes: one text file per
// calendar date under the diaries directory. Writes go through a temp file
// and a rename so a crash never leaves a half-written blob behind.
package blobstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/tracediary/internal/common"
)

const subdir = "diaries"

// Store keeps blob files under <root>/diaries.
type Store struct {
	root string
}

// New returns a Store rooted at the application data directory.
func New(root string) *Store {
	return &Store{root: root}
}

// RelativePath is the path recorded in the metadata row, relative to the
// application data directory.
func (s *Store) RelativePath(date string) string {
	return subdir + "/" + date + ".md"
}

func (s *Store) absPath(date string) string {
	return filepath.Join(s.root, subdir, date+".md")
}

// Exists reports whether a blob file is present for date.
func (s *Store) Exists(date string) (bool, error) {
	_, err := os.Stat(s.absPath(date))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat blob for %s: %w", date, err)
}

// Read returns the envelope text for date, or common.ErrNotFound when no
// blob exists.
func (s *Store) Read(date string) (string, error) {
	data, err := os.ReadFile(s.absPath(date))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: no entry for %s", common.ErrNotFound, date)
		}
		return "", fmt.Errorf("failed to read blob for %s: %w", date, err)
	}
	return string(data), nil
}

// Write replaces the blob for date, creating the diaries directory on first
// use. The envelope lands in a uniquely named temp file first and is then
// renamed over the target.
func (s *Store) Write(date, envelope string) error {
	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create diaries dir: %w", err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", date, uuid.NewString()))
	if err := os.WriteFile(tmp, []byte(envelope), 0o600); err != nil {
		return fmt.Errorf("failed to write blob for %s: %w", date, err)
	}
	if err := os.Rename(tmp, s.absPath(date)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace blob for %s: %w", date, err)
	}
	return nil
}
