// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paperwatch pipeline.
// Implements: the Entry and bookmark record data model, the error taxonomy
// (network, parse, persistence), and the configuration structs shared by
// the feed, normalization, bookmark, and citation stages.
package types

import (
	"strings"
	"time"
)

// Uncategorized is the primary category assigned when the feed omits one.
const Uncategorized = "uncategorized"

// PublishedLayout is the canonical representation of Entry.Published (UTC).
const PublishedLayout = time.DateTime

// Entry is the canonical in-memory representation of one paper record.
// Entries are values: pipeline stages return fresh slices and never modify
// an Entry they did not construct.
type Entry struct {
	// ID is the external identifier from the feed; unique within a fetch
	// batch and within the bookmark store.
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the feed.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper summary.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Link is the canonical landing-page URL (e.g. http://arxiv.org/abs/2510.07692v1).
	Link string `json:"link" yaml:"link"`

	// Authors lists author display names in feed order. The first author
	// is the sort key for author sorting.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the publication timestamp in PublishedLayout.
	Published string `json:"published" yaml:"published"`

	// Tags holds every category code attached to the paper.
	Tags []string `json:"tags" yaml:"tags"`

	// PrimaryCategory is the main category code, or Uncategorized.
	PrimaryCategory string `json:"primary_category" yaml:"primary_category"`

	// DOI is feed-supplied, derived from Link, or empty.
	DOI string `json:"doi" yaml:"doi"`
}

// PDFLink returns the PDF URL for the entry by swapping the "abs" path
// segment of Link for "pdf". Links without that segment are returned as-is.
func (e Entry) PDFLink() string {
	return strings.Replace(e.Link, "/abs/", "/pdf/", 1)
}

// PublishedTime parses Published using PublishedLayout.
func (e Entry) PublishedTime() (time.Time, error) {
	return time.ParseInLocation(PublishedLayout, e.Published, time.UTC)
}

// FirstAuthor returns the first author name, or "" if there are none.
func (e Entry) FirstAuthor() string {
	if len(e.Authors) == 0 {
		return ""
	}
	return e.Authors[0]
}

// Clone returns a copy of e that shares no slices with it.
func (e Entry) Clone() Entry {
	c := e
	if e.Authors != nil {
		c.Authors = append([]string(nil), e.Authors...)
	}
	if e.Tags != nil {
		c.Tags = append([]string(nil), e.Tags...)
	}
	return c
}
