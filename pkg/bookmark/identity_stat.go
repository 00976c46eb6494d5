//go:build unix && !linux

package bookmark

import (
	"golang.org/x/sys/unix"
)

// statIdentity reads the identity of the file at path, following symlinks
func statIdentity(path string) (identity, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return identity{}, err
	}
	id := identity{
		Device: uint64(st.Dev),
		Inode:  uint64(st.Ino),
		Dir:    uint32(st.Mode)&unix.S_IFMT == unix.S_IFDIR,
		Birth:  birthTime(&st),
	}
	if !id.Dir {
		id.Size = st.Size
	}
	return id, nil
}
