// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		subjects []string
		want     string
		wantOK   bool
	}{
		{"empty", nil, nil, "", false},
		{"blank entries only", []string{" ", ""}, []string{""}, "", false},
		{"single keyword", []string{"CNN"}, nil, "ti:CNN", true},
		{"keywords conjunction", []string{"CNN", "transformer"}, nil, "ti:CNN+AND+ti:transformer", true},
		{"phrase keyword", []string{"Machine  Learning"}, nil, "ti:%22Machine+Learning%22", true},
		{"subjects disjunction", nil, []string{"cs.CV", "cs.LG"}, "cat:cs.CV+OR+cat:cs.LG", true},
		{
			"both groups",
			[]string{"CNN"},
			[]string{"cs.CV"},
			"%28ti:CNN%29+AND+%28cat:cs.CV%29",
			true,
		},
		{
			"both groups, several terms",
			[]string{"CNN", "Machine Learning"},
			[]string{"astro-ph.CO", "cs.CV"},
			"%28ti:CNN+AND+ti:%22Machine+Learning%22%29+AND+%28cat:astro-ph.CO+OR+cat:cs.CV%29",
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Build(tt.keywords, tt.subjects)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.False(t, strings.ContainsAny(got, " \t\n"), "query must not contain whitespace")
		})
	}
}

func TestURL(t *testing.T) {
	expr, ok := Build([]string{"CNN"}, []string{"cs.CV"})
	require.True(t, ok)

	raw := URL("https://export.arxiv.org/api/query", expr, Params{MaxResults: 2, SortBy: "relevance"})

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "export.arxiv.org", u.Host)

	q := u.Query()
	assert.Equal(t, "(ti:CNN) AND (cat:cs.CV)", q.Get("search_query"))
	assert.Equal(t, "0", q.Get("start"))
	assert.Equal(t, "2", q.Get("max_results"))
	assert.Equal(t, "relevance", q.Get("sortBy"))
	assert.Equal(t, DefaultSortOrder, q.Get("sortOrder"))
}

func TestURLDefaults(t *testing.T) {
	raw := URL("http://feed.test/api", "ti:x", Params{Start: -3})
	assert.Equal(t, "http://feed.test/api?search_query=ti:x&start=0&max_results=50&sortBy=submittedDate&sortOrder=descending", raw)
}
