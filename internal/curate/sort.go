// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curate

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/pdiddy/paperwatch/pkg/types"
)

// SortKey selects the comparator used by the Sorter.
type SortKey string

const (
	SortDate   SortKey = "date"
	SortTitle  SortKey = "title"
	SortAuthor SortKey = "author"
)

// ParseSortKey accepts "date", "title", or "author" in any case.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortDate, SortTitle, SortAuthor:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want date, title, or author)", s)
	}
}

// Direction is the sort order.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// DefaultDirection is adopted whenever the sort key changes.
const DefaultDirection = Descending

// Sorter holds the current sort key and direction. The zero value is not
// ready for use; call NewSorter.
type Sorter struct {
	key SortKey
	dir Direction
}

// NewSorter starts sorted by date, newest first.
func NewSorter() *Sorter {
	return &Sorter{key: SortDate, dir: DefaultDirection}
}

// Key returns the current sort key.
func (s *Sorter) Key() SortKey { return s.key }

// Direction returns the current sort direction.
func (s *Sorter) Direction() Direction { return s.dir }

// SortBy selects key and sorts entries. Selecting the current key flips the
// direction; selecting a different key adopts it with DefaultDirection.
func (s *Sorter) SortBy(entries []types.Entry, key SortKey) []types.Entry {
	if key == s.key {
		s.dir = flip(s.dir)
	} else {
		s.key = key
		s.dir = DefaultDirection
	}
	return s.Apply(entries)
}

// Apply sorts entries under the current key and direction without changing
// them. The sort is stable in both directions and returns a new slice.
func (s *Sorter) Apply(entries []types.Entry) []types.Entry {
	return Sorted(entries, s.key, s.dir)
}

// Sorted returns a stably sorted copy of entries.
func Sorted(entries []types.Entry, key SortKey, dir Direction) []types.Entry {
	out := slices.Clone(entries)
	cmp := comparator(key)
	if dir == Descending {
		asc := cmp
		cmp = func(a, b sortable) int { return -asc(a, b) }
	}

	// Sort keys are computed once per entry.
	decorated := make([]sortable, len(out))
	fold := cases.Fold()
	for i, e := range out {
		decorated[i] = sortable{
			entry:  e,
			when:   publishedOrZero(e),
			title:  fold.String(e.Title),
			author: fold.String(e.FirstAuthor()),
		}
	}
	slices.SortStableFunc(decorated, cmp)

	for i := range decorated {
		out[i] = decorated[i].entry
	}
	return out
}

type sortable struct {
	entry  types.Entry
	when   time.Time
	title  string
	author string
}

func comparator(key SortKey) func(a, b sortable) int {
	switch key {
	case SortTitle:
		return func(a, b sortable) int { return strings.Compare(a.title, b.title) }
	case SortAuthor:
		return func(a, b sortable) int { return strings.Compare(a.author, b.author) }
	default:
		return func(a, b sortable) int { return a.when.Compare(b.when) }
	}
}

// publishedOrZero treats an unparsable timestamp as the oldest possible.
func publishedOrZero(e types.Entry) time.Time {
	t, err := e.PublishedTime()
	if err != nil {
		return time.Time{}
	}
	return t
}

func flip(d Direction) Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}
