// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import (
	"github.com/pdiddy/paperwatch/internal/curate"
	"github.com/pdiddy/paperwatch/pkg/types"
)

// StatusKind classifies the transient status line.
type StatusKind string

const (
	StatusIdle    StatusKind = "idle"
	StatusLoading StatusKind = "loading"
	StatusInfo    StatusKind = "info"
	StatusError   StatusKind = "error"
)

// Status is the message shown after the most recent event. Err holds the
// underlying error for StatusError so callers can match it with errors.As.
type Status struct {
	Kind    StatusKind
	Message string
	Err     error
}

// Item is one visible entry with its bookmark flag.
type Item struct {
	Entry      types.Entry
	Bookmarked bool
}

// Citation is the result of the most recent Cite intent.
type Citation struct {
	ID   string
	DOI  string
	Text string
}

// ViewModel is a snapshot of the session. Each one is freshly built and
// shares no mutable state with the session or with earlier snapshots.
type ViewModel struct {
	// Items are the filtered, sorted entries of the latest accepted fetch.
	Items []Item

	SortKey   curate.SortKey
	Direction curate.Direction

	FilterSubjects []string
	DOIOnly        bool

	// Fetched is the number of entries before filtering.
	Fetched int

	// Bookmarks is the number of bookmarked entries.
	Bookmarks int

	Status   Status
	Loading  bool
	Citation *Citation

	// Seq is the sequence number of the latest fetch issued.
	Seq uint64

	// Stale counts fetch completions discarded because a newer fetch had
	// been issued.
	Stale int
}

// IDs returns the IDs of the visible items in order.
func (v ViewModel) IDs() []string {
	ids := make([]string, len(v.Items))
	for i, it := range v.Items {
		ids[i] = it.Entry.ID
	}
	return ids
}
