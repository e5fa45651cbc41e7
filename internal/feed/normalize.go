// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed fetches the Atom search feed and normalizes its records into
// canonical Entries.
// Implements: record normalization, the two ingestion entry points
// (raw feed, already-normalized entries), and the feed transport client.
package feed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
	"go.uber.org/zap"

	"github.com/pdiddy/paperwatch/pkg/types"
)

// feedTimeLayout is the timestamp pattern of the feed's published element
// (YYYY-MM-DDTHH:MM:SSZ).
const feedTimeLayout = time.RFC3339

// arXiv Atom extension namespace prefix and element names.
const (
	arxivNS             = "arxiv"
	arxivPrimaryElement = "primary_category"
	arxivDOIElement     = "doi"
)

var errNoDOI = errors.New("no DOI supplied and link is not an abstract URL")

// Normalizer maps raw feed records into Entries.
type Normalizer struct {
	policy types.DOIPolicy
	log    *zap.Logger
}

// NewNormalizer builds a Normalizer. An empty policy means lenient.
func NewNormalizer(cfg types.NormalizeConfig, log *zap.Logger) *Normalizer {
	policy := cfg.DOIPolicy
	if policy == "" {
		policy = types.DOIPolicyLenient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{policy: policy, log: log}
}

// Policy returns the DOI policy in effect.
func (n *Normalizer) Policy() types.DOIPolicy { return n.policy }

// Normalize converts one feed item into an Entry. It returns a
// *types.ParseError when the identifier is missing, the published timestamp
// does not match the feed pattern, or (under the strict policy) no DOI can
// be supplied or derived.
func (n *Normalizer) Normalize(item *gofeed.Item) (types.Entry, error) {
	if item == nil {
		return types.Entry{}, &types.ParseError{Field: "entry", Err: errors.New("nil item")}
	}
	if item.GUID == "" {
		return types.Entry{}, &types.ParseError{Field: "id", Value: item.Link, Err: errors.New("missing identifier")}
	}

	published, err := canonicalTime(item.Published)
	if err != nil {
		return types.Entry{}, &types.ParseError{Field: "published", Value: item.Published, Err: err}
	}

	e := types.Entry{
		ID:              item.GUID,
		Title:           item.Title,
		Abstract:        item.Description,
		Link:            item.Link,
		Authors:         authorNames(item.Authors),
		Published:       published,
		Tags:            append([]string{}, item.Categories...),
		PrimaryCategory: primaryCategory(item.Extensions),
	}

	e.DOI = extensionValue(item.Extensions, arxivDOIElement)
	if e.DOI == "" {
		if doi, ok := DeriveDOI(e.Link); ok {
			e.DOI = doi
		} else if n.policy == types.DOIPolicyStrict {
			return types.Entry{}, &types.ParseError{Field: "doi", Value: e.Link, Err: errNoDOI}
		}
	}

	return e, nil
}

// IngestResult holds the entries of one batch and the records that were
// dropped from it.
type IngestResult struct {
	Entries []types.Entry
	Dropped []error
}

// IngestFromFeed parses an Atom payload and normalizes every record. A
// payload that cannot be parsed as a feed fails the whole batch. Records
// that fail normalization, and records repeating an earlier identifier, are
// dropped and reported in Dropped; the rest of the batch is kept.
func (n *Normalizer) IngestFromFeed(r io.Reader) (IngestResult, error) {
	parsed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return IngestResult{}, &types.ParseError{Field: "feed", Err: err}
	}

	var result IngestResult
	seen := make(map[string]struct{}, len(parsed.Items))
	for _, item := range parsed.Items {
		e, err := n.Normalize(item)
		if err != nil {
			n.log.Warn("dropping feed record", zap.Error(err))
			result.Dropped = append(result.Dropped, err)
			continue
		}
		if _, dup := seen[e.ID]; dup {
			result.Dropped = append(result.Dropped, duplicateError(e.ID))
			continue
		}
		seen[e.ID] = struct{}{}
		result.Entries = append(result.Entries, e)
	}

	n.log.Debug("ingested feed",
		zap.Int("records", len(parsed.Items)),
		zap.Int("entries", len(result.Entries)),
		zap.Int("dropped", len(result.Dropped)))
	return result, nil
}

// IngestFromBytes is IngestFromFeed over an in-memory payload.
func (n *Normalizer) IngestFromBytes(body []byte) (IngestResult, error) {
	return n.IngestFromFeed(bytes.NewReader(body))
}

// IngestFromEntries accepts entries that are already normalized, applying
// the same batch invariants as IngestFromFeed: non-empty, unique IDs.
// Entries are cloned so the batch shares no slices with the caller.
func IngestFromEntries(entries []types.Entry) IngestResult {
	var result IngestResult
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			result.Dropped = append(result.Dropped, &types.ParseError{Field: "id", Value: e.Link, Err: errors.New("missing identifier")})
			continue
		}
		if _, dup := seen[e.ID]; dup {
			result.Dropped = append(result.Dropped, duplicateError(e.ID))
			continue
		}
		seen[e.ID] = struct{}{}
		result.Entries = append(result.Entries, e.Clone())
	}
	return result
}

func duplicateError(id string) error {
	return &types.ParseError{Field: "id", Value: id, Err: errors.New("duplicate identifier in batch")}
}

func canonicalTime(s string) (string, error) {
	t, err := time.Parse(feedTimeLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("expected YYYY-MM-DDTHH:MM:SSZ: %w", err)
	}
	return t.UTC().Format(types.PublishedLayout), nil
}

func authorNames(people []*gofeed.Person) []string {
	names := make([]string, 0, len(people))
	for _, p := range people {
		if p == nil {
			continue
		}
		names = append(names, p.Name)
	}
	return names
}

func primaryCategory(exts ext.Extensions) string {
	for _, el := range exts[arxivNS][arxivPrimaryElement] {
		if term := el.Attrs["term"]; term != "" {
			return term
		}
	}
	return types.Uncategorized
}

func extensionValue(exts ext.Extensions, name string) string {
	for _, el := range exts[arxivNS][name] {
		if v := strings.TrimSpace(el.Value); v != "" {
			return v
		}
	}
	return ""
}
