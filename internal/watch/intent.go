// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import "github.com/pdiddy/paperwatch/internal/curate"

// Intent is a request from the presentation layer into the session.
type Intent interface {
	intent()
}

// Fetch issues a new feed request with the current search criteria. Any
// fetch still outstanding is superseded: its result will be discarded.
type Fetch struct{}

// SetQuery replaces the search criteria used by the next Fetch.
type SetQuery struct {
	Keywords []string
	Subjects []string
}

// Sort selects a sort key. Selecting the current key flips the direction.
type Sort struct {
	Key curate.SortKey
}

// SetFilter replaces the subject allow-list and the DOI-only flag.
type SetFilter struct {
	Subjects []string
	DOIOnly  bool
}

// ToggleBookmark bookmarks the entry with ID, or removes it if it is
// already bookmarked.
type ToggleBookmark struct {
	ID string
}

// Open opens the entry's landing page, or its PDF when PDF is set.
type Open struct {
	ID  string
	PDF bool
}

// Cite requests a citation for the entry's DOI.
type Cite struct {
	ID string
}

func (Fetch) intent()          {}
func (SetQuery) intent()       {}
func (Sort) intent()           {}
func (SetFilter) intent()      {}
func (ToggleBookmark) intent() {}
func (Open) intent()           {}
func (Cite) intent()           {}
