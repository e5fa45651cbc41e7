// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bookmark

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paperwatch/pkg/types"
)

const bookmarksTable = "bookmarks"

var recordColumns = []string{
	"position", "id", "title", "authors", "published",
	"abstract", "link", "tags", "primary_category", "doi",
}

// SQLiteFile stores bookmarks in a single-table SQLite database. The
// database is opened per operation so the file can be backed up or
// replaced between calls.
type SQLiteFile struct {
	path string
}

// NewSQLiteFile returns a SQLite backend rooted at path.
func NewSQLiteFile(path string) *SQLiteFile { return &SQLiteFile{path: path} }

// Path returns the database file path.
func (f *SQLiteFile) Path() string { return f.path }

func (f *SQLiteFile) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", f.path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + bookmarksTable + ` (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		title TEXT,
		authors TEXT,
		published TEXT,
		abstract TEXT,
		link TEXT,
		tags TEXT,
		primary_category TEXT,
		doi TEXT
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}

// Load reads every row in position order. A missing file is an empty
// sequence; the file is not created.
func (f *SQLiteFile) Load() ([]types.Record, error) {
	if _, err := os.Stat(f.path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	db, err := f.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query, args, err := sq.Select(recordColumns[1:]...).
		From(bookmarksTable).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying bookmarks: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var r types.Record
		var tags string
		if err := rows.Scan(&r.ID, &r.Title, &r.Authors, &r.Published,
			&r.Abstract, &r.Link, &tags, &r.PrimaryCategory, &r.DOI); err != nil {
			return nil, fmt.Errorf("scanning bookmark: %w", err)
		}
		if tags != "" {
			if err := json.Unmarshal([]byte(tags), &r.Tags); err != nil {
				return nil, fmt.Errorf("decoding tags for %s: %w", r.ID, err)
			}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookmarks: %w", err)
	}
	return records, nil
}

// Save replaces every row in one transaction.
func (f *SQLiteFile) Save(records []types.Record) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	db, err := f.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	del, args, err := sq.Delete(bookmarksTable).ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}
	if _, err := tx.Exec(del, args...); err != nil {
		return fmt.Errorf("clearing bookmarks: %w", err)
	}

	for i, r := range records {
		tags := ""
		if r.Tags != nil {
			b, err := json.Marshal(r.Tags)
			if err != nil {
				return fmt.Errorf("encoding tags for %s: %w", r.ID, err)
			}
			tags = string(b)
		}
		ins, args, err := sq.Insert(bookmarksTable).
			Columns(recordColumns...).
			Values(i, r.ID, r.Title, r.Authors, r.Published,
				r.Abstract, r.Link, tags, r.PrimaryCategory, r.DOI).
			ToSql()
		if err != nil {
			return fmt.Errorf("building insert: %w", err)
		}
		if _, err := tx.Exec(ins, args...); err != nil {
			return fmt.Errorf("inserting %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing bookmarks: %w", err)
	}
	return nil
}
