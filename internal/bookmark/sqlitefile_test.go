// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bookmark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperwatch/pkg/types"
)

func TestSQLiteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bookmarks.db")
	f := NewSQLiteFile(path)

	records, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	want := []types.Record{
		types.ToRecord(entry("b")),
		types.ToRecord(entry("a")),
		{ID: "c"},
	}
	require.NoError(t, f.Save(want))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, f.Save(want[:1]))
	got, err = f.Load()
	require.NoError(t, err)
	assert.Equal(t, want[:1], got)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.db")
	cfg := types.BookmarkConfig{Path: path, Format: types.BookmarkSQLite}

	s, err := Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, s.Add(entry("a")))
	require.NoError(t, s.Add(entry("b")))
	require.NoError(t, s.Add(entry("a")))
	require.NoError(t, s.Remove("b"))

	again, err := Open(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Len())
	assert.True(t, again.IsBookmarked("a"))
	assert.Equal(t, s.List(), again.List())
}

func TestSQLiteCorruptFileFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.db")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a sqlite database, just text padding it out"), 0o644))

	s := New(NewSQLiteFile(path), nil)
	require.Error(t, s.Load())
	assert.Equal(t, 0, s.Len())

	matches, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	require.NoError(t, s.Add(entry("a")))
	assert.True(t, s.IsBookmarked("a"))
}
