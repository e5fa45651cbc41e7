// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// authorSeparator joins author names in a bookmark record. Names that
// themselves contain a comma do not survive a ToRecord/FromRecord round
// trip; changing that requires a new record schema.
const authorSeparator = ", "

// Record is the persisted snapshot of an Entry in the bookmark file.
// It differs from Entry only in that Authors is a single comma-joined string.
type Record struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Authors         string   `json:"authors" yaml:"authors"`
	Published       string   `json:"published" yaml:"published"`
	Abstract        string   `json:"abstract" yaml:"abstract"`
	Link            string   `json:"link" yaml:"link"`
	Tags            []string `json:"tags" yaml:"tags"`
	PrimaryCategory string   `json:"primary_category" yaml:"primary_category"`
	DOI             string   `json:"doi" yaml:"doi"`
}

// ToRecord flattens e into its persisted form.
func ToRecord(e Entry) Record {
	var tags []string
	if e.Tags != nil {
		tags = append([]string{}, e.Tags...)
	}
	return Record{
		ID:              e.ID,
		Title:           e.Title,
		Authors:         strings.Join(e.Authors, authorSeparator),
		Published:       e.Published,
		Abstract:        e.Abstract,
		Link:            e.Link,
		Tags:            tags,
		PrimaryCategory: e.PrimaryCategory,
		DOI:             e.DOI,
	}
}

// FromRecord rebuilds an Entry from its persisted form, re-splitting the
// author string on commas.
func FromRecord(r Record) Entry {
	var tags []string
	if r.Tags != nil {
		tags = append([]string{}, r.Tags...)
	}
	return Entry{
		ID:              r.ID,
		Title:           r.Title,
		Abstract:        r.Abstract,
		Link:            r.Link,
		Authors:         splitAuthors(r.Authors),
		Published:       r.Published,
		Tags:            tags,
		PrimaryCategory: r.PrimaryCategory,
		DOI:             r.DOI,
	}
}

func splitAuthors(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		authors = append(authors, strings.TrimSpace(p))
	}
	return authors
}
