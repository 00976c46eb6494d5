//go:build unix

package bookmark

import (
	"golang.org/x/sys/unix"
)

// checkReadable reports whether the current process may read path
func checkReadable(path string) error {
	return unix.Access(path, unix.R_OK)
}
