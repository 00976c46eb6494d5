//go:build unix && !linux && !darwin

package bookmark

import (
	"golang.org/x/sys/unix"
)

// birthTime is not read on these systems; relocation relies on the inode
func birthTime(*unix.Stat_t) int64 {
	return 0
}
