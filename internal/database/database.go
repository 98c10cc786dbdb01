// Package database dumps the configured databases into a backup workspace.
// Each provider is a concrete type behind the Database interface; adding a
// provider means adding a type, not another branch of a tag switch.
package database

import (
	"context"
	"sort"
	"strings"

	"github.com/rauves/backstop/internal/config"
)

// Database is one configured database to back up.
type Database interface {
	// Name identifies the database in logs and dump filenames.
	Name() string
	// String describes the database with secrets redacted.
	String() string
	// Test verifies the database is reachable before the run starts.
	Test(ctx context.Context) error
	// Dump writes a point-in-time copy into dir and returns its path. The
	// stamp and index keep dump names unique within one workspace.
	Dump(ctx context.Context, dir, stamp string, index int) (string, error)
}

// FromConfig builds the databases from config, ordered by name so dump
// indices are stable across runs.
func FromConfig(cfg config.DatabasesConfig) []Database {
	dbs := make([]Database, 0, len(cfg.Postgres)+len(cfg.SQLite))
	for _, pg := range cfg.Postgres {
		dbs = append(dbs, &Postgres{cfg: pg})
	}
	for _, sq := range cfg.SQLite {
		dbs = append(dbs, &SQLite{path: sq.Path})
	}
	sort.Slice(dbs, func(i, j int) bool { return dbs[i].Name() < dbs[j].Name() })
	return dbs
}

// dumpName flattens a database name into a filename component.
func dumpName(name string) string {
	r := strings.NewReplacer("/", "_", ".", "_", `\`, "_")
	return r.Replace(name)
}
