// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bookmark

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdiddy/paperwatch/pkg/types"
)

// JSONFile stores bookmarks as a single JSON array of records.
type JSONFile struct {
	path string
}

// NewJSONFile returns a JSON backend rooted at path.
func NewJSONFile(path string) *JSONFile { return &JSONFile{path: path} }

// Path returns the bookmark file path.
func (f *JSONFile) Path() string { return f.path }

// Load reads the file. A missing or blank file is an empty sequence.
func (f *JSONFile) Load() ([]types.Record, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []types.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.path, err)
	}
	return records, nil
}

// Save rewrites the file through a temp file and rename, so readers see
// either the old or the new sequence.
func (f *JSONFile) Save(records []types.Record) error {
	if records == nil {
		records = []types.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding bookmarks: %w", err)
	}
	data = append(data, '\n')
	return writeFileAtomic(f.path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
