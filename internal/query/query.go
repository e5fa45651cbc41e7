// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query turns search criteria into the feed endpoint's query language.
// Implements: search expression building (keyword and subject groups) and the
// request URL assembly for the Atom search endpoint.
package query

import (
	"fmt"
	"strings"
)

// Field-scoped boolean operators, already encoded for the URL.
const (
	opAnd      = "+AND+"
	opOr       = "+OR+"
	openGroup  = "%28"
	closeGroup = "%29"
	quote      = "%22"
)

// Build joins keywords as a title conjunction and subjects as a category
// disjunction. Both groups are combined with AND when non-empty. The second
// return value is false when there is nothing to search for, in which case
// the caller must not issue a fetch.
func Build(keywords, subjects []string) (string, bool) {
	var titles []string
	for _, kw := range keywords {
		if term := encodeTerm(kw); term != "" {
			titles = append(titles, "ti:"+term)
		}
	}

	var cats []string
	for _, s := range subjects {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		cats = append(cats, "cat:"+s)
	}

	kwGroup := strings.Join(titles, opAnd)
	catGroup := strings.Join(cats, opOr)

	switch {
	case kwGroup != "" && catGroup != "":
		return openGroup + kwGroup + closeGroup + opAnd + openGroup + catGroup + closeGroup, true
	case kwGroup != "":
		return kwGroup, true
	case catGroup != "":
		return catGroup, true
	default:
		return "", false
	}
}

// encodeTerm returns a single term as-is and a multi-word term as a quoted
// phrase with its words joined by "+".
func encodeTerm(kw string) string {
	words := strings.Fields(kw)
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	default:
		return quote + strings.Join(words, "+") + quote
	}
}

// Params holds the non-query request parameters of a feed fetch.
type Params struct {
	Start      int
	MaxResults int
	SortBy     string
	SortOrder  string
}

// Defaults for Params fields left zero.
const (
	DefaultMaxResults = 50
	DefaultSortBy     = "submittedDate"
	DefaultSortOrder  = "descending"
)

// URL assembles the request URL for base with the already-encoded search
// expression expr. The expression is not re-encoded.
func URL(base, expr string, p Params) string {
	maxResults := p.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	sortOrder := p.SortOrder
	if sortOrder == "" {
		sortOrder = DefaultSortOrder
	}
	start := p.Start
	if start < 0 {
		start = 0
	}

	return fmt.Sprintf("%s?search_query=%s&start=%d&max_results=%d&sortBy=%s&sortOrder=%s",
		base, expr, start, maxResults, sortBy, sortOrder)
}
