// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite resolves DOIs to formatted citations and exports entries as
// CSL-YAML for reference managers.
package cite

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/paperwatch/internal/httputil"
	"github.com/pdiddy/paperwatch/internal/logging"
	"github.com/pdiddy/paperwatch/pkg/types"
)

const (
	// DefaultBaseURL is the DOI resolver used for content negotiation.
	DefaultBaseURL = "https://doi.org/"

	// DefaultAccept requests a BibTeX record.
	DefaultAccept = "application/x-bibtex"

	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "paperwatch/0.1"
)

// doiPrefixes are stripped before a DOI is resolved.
var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi:",
}

// Client fetches citations from a DOI resolver.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	Accept    string
	UserAgent string
	log       *zap.Logger
}

// NewClient builds a Client from cfg, filling defaults for empty fields.
func NewClient(cfg types.CitationConfig, log *zap.Logger) *Client {
	c := &Client{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		BaseURL:   cfg.BaseURL,
		Accept:    cfg.Accept,
		UserAgent: cfg.UserAgent,
		log:       logging.OrNop(log),
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = defaultTimeout
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	if c.Accept == "" {
		c.Accept = DefaultAccept
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	return c
}

// Lookup returns the citation text for doi in the configured format. The
// doi may be bare (10.48550/arXiv.2510.07692) or a resolver URL.
func (c *Client) Lookup(ctx context.Context, doi string) (string, error) {
	bare := BareDOI(doi)
	if bare == "" {
		return "", fmt.Errorf("empty DOI")
	}

	header := http.Header{}
	header.Set("Accept", c.Accept)
	header.Set("User-Agent", c.UserAgent)

	body, err := httputil.Get(ctx, c.HTTP, c.BaseURL+bare, header)
	if err != nil {
		return "", err
	}
	c.log.Debug("resolved citation", zap.String("doi", bare), zap.Int("bytes", len(body)))
	return strings.TrimSpace(string(body)), nil
}

// BareDOI strips resolver prefixes and whitespace from doi.
func BareDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, p := range doiPrefixes {
		if len(doi) >= len(p) && strings.EqualFold(doi[:len(p)], p) {
			return strings.TrimSpace(doi[len(p):])
		}
	}
	return doi
}
