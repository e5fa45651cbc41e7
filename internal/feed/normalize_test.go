// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperwatch/pkg/types"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func arxivItem() *gofeed.Item {
	return &gofeed.Item{
		GUID:        "http://arxiv.org/abs/2510.07692v1",
		Title:       "Lightweight CNN Backbones",
		Description: "Abstract text.",
		Link:        "http://arxiv.org/abs/2510.07692v1",
		Published:   "2025-10-08T17:59:58Z",
		Authors:     []*gofeed.Person{{Name: "Ada Lovelace"}, {Name: "Alan Turing"}},
		Categories:  []string{"cs.CV", "cs.LG"},
		Extensions: ext.Extensions{
			"arxiv": {
				"primary_category": {{Name: "primary_category", Attrs: map[string]string{"term": "cs.CV"}}},
			},
		},
	}
}

func TestDeriveDOI(t *testing.T) {
	tests := []struct {
		link   string
		want   string
		wantOK bool
	}{
		{"http://arxiv.org/abs/2510.07692v1", "https://doi.org/10.48550/arXiv.2510.07692", true},
		{"https://arxiv.org/abs/2301.07041", "https://doi.org/10.48550/arXiv.2301.07041", true},
		{"https://export.arxiv.org/abs/2301.07041v12", "https://doi.org/10.48550/arXiv.2301.07041", true},
		{"http://arxiv.org/pdf/2510.07692v1", "", false},
		{"http://arxiv.org/abs/hep-th/9901001v1", "", false},
		{"http://example.org/papers/77", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := DeriveDOI(tt.link)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("DeriveDOI(%q) = (%q, %v), want (%q, %v)", tt.link, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer(types.NormalizeConfig{}, nil)

	e, err := n.Normalize(arxivItem())
	require.NoError(t, err)

	assert.Equal(t, "http://arxiv.org/abs/2510.07692v1", e.ID)
	assert.Equal(t, "Lightweight CNN Backbones", e.Title)
	assert.Equal(t, "Abstract text.", e.Abstract)
	assert.Equal(t, []string{"Ada Lovelace", "Alan Turing"}, e.Authors)
	assert.Equal(t, "2025-10-08 17:59:58", e.Published)
	assert.Equal(t, []string{"cs.CV", "cs.LG"}, e.Tags)
	assert.Equal(t, "cs.CV", e.PrimaryCategory)
	assert.Equal(t, "https://doi.org/10.48550/arXiv.2510.07692", e.DOI)
}

func TestNormalizeSuppliedDOIWins(t *testing.T) {
	item := arxivItem()
	item.Extensions["arxiv"]["doi"] = []ext.Extension{{Name: "doi", Value: " 10.1109/CVPR.2025.00042 "}}

	e, err := NewNormalizer(types.NormalizeConfig{}, nil).Normalize(item)
	require.NoError(t, err)
	assert.Equal(t, "10.1109/CVPR.2025.00042", e.DOI)
}

func TestNormalizeMissingPrimaryCategory(t *testing.T) {
	item := arxivItem()
	item.Extensions = nil

	e, err := NewNormalizer(types.NormalizeConfig{}, nil).Normalize(item)
	require.NoError(t, err)
	assert.Equal(t, types.Uncategorized, e.PrimaryCategory)
}

func TestNormalizeDOIPolicy(t *testing.T) {
	item := arxivItem()
	item.Link = "http://example.org/papers/77"

	t.Run("lenient leaves DOI empty", func(t *testing.T) {
		n := NewNormalizer(types.NormalizeConfig{DOIPolicy: types.DOIPolicyLenient}, nil)
		e, err := n.Normalize(item)
		require.NoError(t, err)
		assert.Empty(t, e.DOI)
	})

	t.Run("strict raises ParseError", func(t *testing.T) {
		n := NewNormalizer(types.NormalizeConfig{DOIPolicy: types.DOIPolicyStrict}, nil)
		_, err := n.Normalize(item)
		var perr *types.ParseError
		require.True(t, errors.As(err, &perr), "got %v", err)
		assert.Equal(t, "doi", perr.Field)
	})

	t.Run("default is lenient", func(t *testing.T) {
		assert.Equal(t, types.DOIPolicyLenient, NewNormalizer(types.NormalizeConfig{}, nil).Policy())
	})
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name  string
		item  func() *gofeed.Item
		field string
	}{
		{"nil item", func() *gofeed.Item { return nil }, "entry"},
		{"missing id", func() *gofeed.Item { i := arxivItem(); i.GUID = ""; return i }, "id"},
		{"bad timestamp", func() *gofeed.Item { i := arxivItem(); i.Published = "Oct 8, 2025"; return i }, "published"},
		{"empty timestamp", func() *gofeed.Item { i := arxivItem(); i.Published = ""; return i }, "published"},
	}
	n := NewNormalizer(types.NormalizeConfig{}, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.item())
			var perr *types.ParseError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestIngestFromFeed(t *testing.T) {
	n := NewNormalizer(types.NormalizeConfig{}, nil)
	res, err := n.IngestFromBytes(readFixture(t, "arxiv.xml"))
	require.NoError(t, err)

	require.Len(t, res.Entries, 3)
	require.Len(t, res.Dropped, 1, "the record with a broken timestamp is dropped")

	first := res.Entries[0]
	assert.Equal(t, "http://arxiv.org/abs/2510.07692v1", first.ID)
	assert.Equal(t, "http://arxiv.org/abs/2510.07692v1", first.Link)
	assert.Equal(t, []string{"Ada Lovelace", "Alan Turing"}, first.Authors)
	assert.Equal(t, "cs.CV", first.PrimaryCategory)
	assert.ElementsMatch(t, []string{"cs.CV", "cs.LG"}, first.Tags)
	assert.Equal(t, "https://doi.org/10.48550/arXiv.2510.07692", first.DOI)

	assert.Equal(t, "10.1109/CVPR.2025.00042", res.Entries[1].DOI)

	mirror := res.Entries[2]
	assert.Equal(t, types.Uncategorized, mirror.PrimaryCategory)
	assert.Empty(t, mirror.DOI)

	var perr *types.ParseError
	require.True(t, errors.As(res.Dropped[0], &perr))
	assert.Equal(t, "published", perr.Field)
}

func TestIngestFromFeedStrictDropsUnderivableDOI(t *testing.T) {
	n := NewNormalizer(types.NormalizeConfig{DOIPolicy: types.DOIPolicyStrict}, nil)
	res, err := n.IngestFromBytes(readFixture(t, "arxiv.xml"))
	require.NoError(t, err)

	assert.Len(t, res.Entries, 2)
	assert.Len(t, res.Dropped, 2)
	for _, e := range res.Entries {
		assert.NotEmpty(t, e.DOI)
	}
}

func TestIngestFromFeedMalformed(t *testing.T) {
	n := NewNormalizer(types.NormalizeConfig{}, nil)
	_, err := n.IngestFromFeed(strings.NewReader("this is not a feed"))
	var perr *types.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, "feed", perr.Field)
}

func TestIngestFromFeedDropsDuplicateIDs(t *testing.T) {
	payload := `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry><id>http://arxiv.org/abs/2510.00001v1</id><title>A</title><published>2025-10-01T00:00:00Z</published><link href="http://arxiv.org/abs/2510.00001v1" rel="alternate"/></entry>
  <entry><id>http://arxiv.org/abs/2510.00001v1</id><title>A again</title><published>2025-10-01T00:00:00Z</published><link href="http://arxiv.org/abs/2510.00001v1" rel="alternate"/></entry>
</feed>`
	res, err := NewNormalizer(types.NormalizeConfig{}, nil).IngestFromFeed(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "A", res.Entries[0].Title)
	assert.Len(t, res.Dropped, 1)
}

func TestIngestFromEntries(t *testing.T) {
	in := []types.Entry{
		{ID: "a", Authors: []string{"X"}},
		{ID: ""},
		{ID: "b"},
		{ID: "a", Title: "dup"},
	}
	res := IngestFromEntries(in)

	require.Len(t, res.Entries, 2)
	assert.Equal(t, "a", res.Entries[0].ID)
	assert.Equal(t, "b", res.Entries[1].ID)
	assert.Len(t, res.Dropped, 2)

	res.Entries[0].Authors[0] = "changed"
	assert.Equal(t, "X", in[0].Authors[0], "ingested entries must not alias the input")
}
