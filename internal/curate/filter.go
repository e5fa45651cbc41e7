// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package curate filters and orders normalized entries.
// Implements: subject allow-list and DOI-only filtering, and stable
// date/title/author sorting with toggle semantics.
package curate

import "github.com/pdiddy/paperwatch/pkg/types"

// Filter returns the entries whose primary category is in subjects (or all
// entries when subjects is empty) and, when doiOnly is set, that carry a
// DOI. The result preserves input order and never aliases the input slice.
func Filter(entries []types.Entry, subjects []string, doiOnly bool) []types.Entry {
	allow := make(map[string]struct{}, len(subjects))
	for _, s := range subjects {
		allow[s] = struct{}{}
	}

	out := make([]types.Entry, 0, len(entries))
	for _, e := range entries {
		if len(allow) > 0 {
			if _, ok := allow[e.PrimaryCategory]; !ok {
				continue
			}
		}
		if doiOnly && e.DOI == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}
