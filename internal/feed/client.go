// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/pdiddy/paperwatch/internal/httputil"
	"github.com/pdiddy/paperwatch/internal/query"
	"github.com/pdiddy/paperwatch/pkg/types"
)

// DefaultBaseURL is the arXiv search endpoint.
const DefaultBaseURL = "https://export.arxiv.org/api/query"

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "paperwatch/0.1"
)

// Fetcher retrieves the raw feed for a search expression.
type Fetcher interface {
	Fetch(ctx context.Context, expr string, p query.Params) ([]byte, error)
}

// Client fetches the Atom feed over HTTP.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
}

// NewClient builds a Client from the feed configuration.
func NewClient(cfg types.FeedConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		BaseURL:   base,
		UserAgent: ua,
	}
}

// Fetch issues one request for expr and returns the raw feed body. Failures
// are *types.NetworkError and are not retried.
func (c *Client) Fetch(ctx context.Context, expr string, p query.Params) ([]byte, error) {
	h := http.Header{}
	h.Set("User-Agent", c.UserAgent)
	h.Set("Accept", "application/atom+xml")
	return httputil.Get(ctx, c.HTTP, query.URL(c.BaseURL, expr, p), h)
}

// ParamsFromConfig extracts the request parameters from the feed configuration.
func ParamsFromConfig(cfg types.FeedConfig) query.Params {
	return query.Params{
		Start:      cfg.Start,
		MaxResults: cfg.MaxResults,
		SortBy:     cfg.SortBy,
		SortOrder:  cfg.SortOrder,
	}
}
