// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperwatch/internal/query"
	"github.com/pdiddy/paperwatch/pkg/types"
)

func TestClientFetch(t *testing.T) {
	fixture := readFixture(t, "arxiv.xml")

	var gotQuery, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search_query")
		gotUA = r.Header.Get("User-Agent")
		assert.Equal(t, "2", r.URL.Query().Get("max_results"))
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write(fixture)
	}))
	defer ts.Close()

	c := NewClient(types.FeedConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"},
		BaseURL:    ts.URL,
	})
	expr, ok := query.Build([]string{"CNN"}, []string{"cs.CV"})
	require.True(t, ok)

	body, err := c.Fetch(context.Background(), expr, query.Params{MaxResults: 2})
	require.NoError(t, err)
	assert.Equal(t, fixture, body)
	assert.Equal(t, "(ti:CNN) AND (cat:cs.CV)", gotQuery)
	assert.Equal(t, "test/0.1", gotUA)
}

func TestClientFetchServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := NewClient(types.FeedConfig{BaseURL: ts.URL})
	_, err := c.Fetch(context.Background(), "ti:x", query.Params{})

	var netErr *types.NetworkError
	require.True(t, errors.As(err, &netErr), "got %v", err)
	assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(types.FeedConfig{})
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, defaultUserAgent, c.UserAgent)
	assert.Equal(t, defaultTimeout, c.HTTP.Timeout)

	p := ParamsFromConfig(types.FeedConfig{MaxResults: 7, SortBy: "relevance"})
	assert.Equal(t, query.Params{MaxResults: 7, SortBy: "relevance"}, p)
}
