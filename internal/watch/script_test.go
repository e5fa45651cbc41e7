// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperwatch/internal/bookmark"
	"github.com/pdiddy/paperwatch/internal/curate"
	"github.com/pdiddy/paperwatch/pkg/types"
)

func TestScript(t *testing.T) {
	store, err := bookmark.Open(types.BookmarkConfig{Path: filepath.Join(t.TempDir(), "b.json")}, nil)
	require.NoError(t, err)

	sess := NewSession(types.FeedConfig{Keywords: []string{"CNN"}}, Deps{
		Fetcher:   staticFetcher(readFixture(t, "mixed.xml")),
		Bookmarks: store,
		Citer:     stubCiter{text: "@article"},
	})

	v, err := sess.Script(context.Background(),
		Fetch{},
		Sort{Key: curate.SortAuthor},
		ToggleBookmark{ID: idAlpha},
		Cite{ID: idBeta},
	)
	require.NoError(t, err)

	assert.Equal(t, curate.SortAuthor, v.SortKey)
	assert.Equal(t, []string{idBeta, idAlpha, idGamma}, v.IDs())
	assert.Equal(t, 1, v.Bookmarks)
	assert.True(t, store.IsBookmarked(idAlpha))
	require.NotNil(t, v.Citation)
	assert.Equal(t, idBeta, v.Citation.ID)
}

func TestScriptContextCancelled(t *testing.T) {
	store, err := bookmark.Open(types.BookmarkConfig{Path: filepath.Join(t.TempDir(), "b.json")}, nil)
	require.NoError(t, err)
	sess := NewSession(types.FeedConfig{}, Deps{Fetcher: staticFetcher(nil), Bookmarks: store})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sess.Script(ctx, Fetch{})
	assert.Error(t, err)
}
