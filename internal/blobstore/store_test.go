package blobstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tracediary/internal/common"
)

func TestRead_Missing(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.Read("2025-06-01")
	assert.ErrorIs(t, err, common.ErrNotFound)

	ok, err := s.Exists("2025-06-01")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteRead(t *testing.T) {
	root := t.TempDir()
	s := New(root)

	require.NoError(t, s.Write("2025-06-01", `{"v":1}`))

	got, err := s.Read("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, got)

	ok, err := s.Exists("2025-06-01")
	require.NoError(t, err)
	assert.True(t, ok)

	// one file per date, placed under diaries/
	_, err = os.Stat(filepath.Join(root, "diaries", "2025-06-01.md"))
	assert.NoError(t, err)
}

func TestWrite_Overwrites(t *testing.T) {
	s := New(t.TempDir())

	require.NoError(t, s.Write("2025-06-01", "first"))
	require.NoError(t, s.Write("2025-06-01", "second"))

	got, err := s.Read("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	s := New(root)

	require.NoError(t, s.Write("2025-06-01", "content"))

	entries, err := os.ReadDir(filepath.Join(root, "diaries"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-06-01.md", entries[0].Name())
}

func TestRelativePath(t *testing.T) {
	s := New(t.TempDir())
	assert.Equal(t, "diaries/2025-06-01.md", s.RelativePath("2025-06-01"))
}
