package types

import (
	"io/fs"
)

// FS is what the document store and dispatcher need from a filesystem.
// Paths are host paths; implementations live in pkg/filesystem.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
	Remove(name string) error
	// Rename replaces newpath atomically when both are on one filesystem
	Rename(oldpath, newpath string) error
}
