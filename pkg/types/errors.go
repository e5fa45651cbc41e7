// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// NetworkError reports a transport failure or a non-success response from
// the feed or citation endpoint. It is surfaced as a transient status and
// never retried.
type NetworkError struct {
	URL        string
	StatusCode int // 0 when the request never produced a response
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network: %s returned HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("network: %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a malformed feed payload or a field that could not be
// parsed under its expected pattern.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("parse %s %q", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// PersistenceError reports a bookmark file that is missing, unreadable,
// structurally invalid, or could not be written.
type PersistenceError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("bookmarks %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
