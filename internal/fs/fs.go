// Package fs is the filesystem layer used to stage backup workspaces. It
// keeps copies consistent (a source file changing mid-copy aborts the copy)
// and retries transient failures.
package fs

import (
	"context"
	"time"
)

type FileInfo struct {
	Path  string
	Size  int64
	MTime time.Time
	Inode uint64
}

type FS interface {
	Stat(path string) (FileInfo, error)
	CopyFile(ctx context.Context, src, dst string) error
	// CopyDir recursively stages srcDir under dstDir.
	CopyDir(ctx context.Context, srcDir, dstDir string) error
	MkdirAll(path string) error
	RemoveAll(path string) error
}
