//go:build windows

package fs

import "os"

// Windows does not expose POSIX inodes; zero disables the inode comparison
// and change detection falls back to mtime and size.
func inodeOf(info os.FileInfo) uint64 {
	_ = info
	return 0
}
