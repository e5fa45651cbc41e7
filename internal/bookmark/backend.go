// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bookmark

import (
	"fmt"

	"github.com/pdiddy/paperwatch/pkg/types"
)

// Backend reads and rewrites the whole bookmark sequence. Load returns an
// empty sequence and no error when nothing has been persisted yet.
type Backend interface {
	Load() ([]types.Record, error)
	Save(records []types.Record) error
	Path() string
}

// NewBackend selects the backend named by cfg.Format. An empty format
// means JSON.
func NewBackend(cfg types.BookmarkConfig) (Backend, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("bookmark path is not configured")
	}
	switch cfg.Format {
	case "", types.BookmarkJSON:
		return &JSONFile{path: cfg.Path}, nil
	case types.BookmarkSQLite:
		return &SQLiteFile{path: cfg.Path}, nil
	default:
		return nil, fmt.Errorf("unknown bookmark format %q (want json or sqlite)", cfg.Format)
	}
}
