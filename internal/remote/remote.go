// Package remote talks to the off-site archive store. The retention core
// never imports this package: it consumes the listing and produces a plan,
// and the orchestration layer issues the deletions.
package remote

import "context"

// Store lists, receives and deletes remote archives.
type Store interface {
	// List returns the names of all archives currently in the store.
	List(ctx context.Context) ([]string, error)
	// Upload copies a local file into the store.
	Upload(ctx context.Context, localPath string) error
	// Delete removes one archive by name.
	Delete(ctx context.Context, name string) error
}
