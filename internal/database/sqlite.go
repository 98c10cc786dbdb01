package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLite backs up a database file. Dumps go through VACUUM INTO instead of a
// plain file copy, so the result is a consistent snapshot even while other
// connections are writing.
type SQLite struct {
	path string
}

func (s *SQLite) Name() string { return s.path }

func (s *SQLite) String() string {
	return fmt.Sprintf("<SQLITE %q>", s.path)
}

func (s *SQLite) open(readOnly bool) (*sql.DB, error) {
	dsn := "file:" + s.path
	if readOnly {
		dsn += "?mode=ro"
	}
	return sql.Open("sqlite", dsn)
}

func (s *SQLite) Test(ctx context.Context) error {
	db, err := s.open(true)
	if err != nil {
		return fmt.Errorf("opening %s: %w", s, err)
	}
	defer db.Close()

	// Ping alone does not touch the file; reading the schema version does.
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA schema_version").Scan(&version); err != nil {
		return fmt.Errorf("reading %s: %w", s, err)
	}
	return nil
}

func (s *SQLite) Dump(ctx context.Context, dir, stamp string, index int) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_%d.db", stamp, dumpName(s.path), index))

	db, err := s.open(false)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", s, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return "", fmt.Errorf("snapshotting %s: %w", s, err)
	}
	return path, nil
}
