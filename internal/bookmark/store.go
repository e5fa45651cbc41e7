// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bookmark keeps the user's saved entries, deduplicated by ID and
// persisted as a whole after every change.
// Implements: the bookmark store (fail-open load, idempotent add, remove,
// clear) over a JSON or SQLite backend.
package bookmark

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/paperwatch/internal/logging"
	"github.com/pdiddy/paperwatch/pkg/types"
)

// Store is an ordered, ID-unique list of bookmarked entries. The in-memory
// state only changes after the backend accepts the new sequence, so
// IsBookmarked always agrees with what is on disk. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	log     *zap.Logger
	now     func() time.Time

	entries []types.Entry
	index   map[string]struct{}
}

// New returns an empty store over backend. Call Load to read existing
// bookmarks.
func New(backend Backend, log *zap.Logger) *Store {
	return &Store{
		backend: backend,
		log:     logging.OrNop(log),
		now:     time.Now,
		index:   map[string]struct{}{},
	}
}

// Open builds the configured backend and loads it. A load failure is
// logged and the store starts empty; only an invalid configuration is
// returned as an error.
func Open(cfg types.BookmarkConfig, log *zap.Logger) (*Store, error) {
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}
	s := New(backend, log)
	if err := s.Load(); err != nil {
		s.log.Warn("bookmarks unavailable, starting empty", zap.Error(err))
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.backend.Path() }

// Load replaces the in-memory state with the persisted sequence. A missing
// file yields an empty store and no error. An unreadable or malformed file
// also yields an empty store; it is renamed to <path>.corrupt-<unix> so the
// next write cannot destroy it, and a *types.PersistenceError is returned.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.backend.Load()
	if err != nil {
		s.reset(nil)
		perr := &types.PersistenceError{Op: "read", Path: s.backend.Path(), Err: err}
		s.backupCorrupt()
		return perr
	}

	entries := make([]types.Entry, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		entries = append(entries, types.FromRecord(r))
	}
	if len(entries) != len(records) {
		s.log.Warn("skipped invalid or duplicate bookmark records",
			zap.String("path", s.backend.Path()),
			zap.Int("records", len(records)),
			zap.Int("kept", len(entries)))
	}
	s.reset(entries)
	s.log.Debug("loaded bookmarks", zap.String("path", s.backend.Path()), zap.Int("count", len(entries)))
	return nil
}

func (s *Store) backupCorrupt() {
	path := s.backend.Path()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return
	}
	backup := fmt.Sprintf("%s.corrupt-%d", path, s.now().Unix())
	if err := os.Rename(path, backup); err != nil {
		s.log.Error("could not back up unreadable bookmarks", zap.String("path", path), zap.Error(err))
		return
	}
	s.log.Warn("backed up unreadable bookmarks", zap.String("path", path), zap.String("backup", backup))
}

// Add bookmarks e. Adding an ID that is already present is a no-op and
// does not touch the file.
func (s *Store) Add(e types.Entry) error {
	if e.ID == "" {
		return fmt.Errorf("bookmark entry has no id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[e.ID]; ok {
		return nil
	}
	next := make([]types.Entry, len(s.entries), len(s.entries)+1)
	copy(next, s.entries)
	next = append(next, e.Clone())
	return s.commit(next)
}

// Remove drops the entry with id. The file is rewritten only when
// something was removed.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]types.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	if len(next) == len(s.entries) {
		s.reset(s.entries)
		return nil
	}
	return s.commit(next)
}

// Toggle removes id when it is bookmarked and adds e otherwise. It reports
// whether the entry is bookmarked afterwards.
func (s *Store) Toggle(e types.Entry) (bool, error) {
	if s.IsBookmarked(e.ID) {
		return false, s.Remove(e.ID)
	}
	return true, s.Add(e)
}

// Clear removes every bookmark and persists the empty sequence.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(nil)
}

// IsBookmarked reports whether id is in the store.
func (s *Store) IsBookmarked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// Get returns the bookmarked entry with id.
func (s *Store) Get(id string) (types.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return types.Entry{}, false
}

// List returns a copy of the bookmarks in insertion order.
func (s *Store) List() []types.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

// Len returns the number of bookmarks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// commit persists next and adopts it only on success. Callers hold mu.
func (s *Store) commit(next []types.Entry) error {
	records := make([]types.Record, len(next))
	for i, e := range next {
		records[i] = types.ToRecord(e)
	}
	if err := s.backend.Save(records); err != nil {
		perr := &types.PersistenceError{Op: "write", Path: s.backend.Path(), Err: err}
		s.log.Error("persisting bookmarks", zap.Error(perr))
		return perr
	}
	s.reset(next)
	return nil
}

// reset adopts entries and rebuilds the ID index. Callers hold mu.
func (s *Store) reset(entries []types.Entry) {
	s.entries = entries
	s.index = make(map[string]struct{}, len(entries))
	for _, e := range entries {
		s.index[e.ID] = struct{}{}
	}
}
