package bookmark

import (
	"golang.org/x/sys/unix"
)

// statIdentity reads the identity of the file at path, following symlinks.
// statx is used for the birth time, which plain stat does not report.
func statIdentity(path string) (identity, error) {
	var st unix.Statx_t
	mask := unix.STATX_TYPE | unix.STATX_INO | unix.STATX_SIZE | unix.STATX_BTIME
	if err := unix.Statx(unix.AT_FDCWD, path, 0, mask, &st); err != nil {
		return identity{}, err
	}
	id := identity{
		Device: unix.Mkdev(st.Dev_major, st.Dev_minor),
		Inode:  st.Ino,
		Dir:    uint32(st.Mode)&unix.S_IFMT == unix.S_IFDIR,
	}
	if !id.Dir {
		id.Size = int64(st.Size)
	}
	if st.Mask&unix.STATX_BTIME != 0 {
		id.Birth = st.Btime.Sec*1e9 + int64(st.Btime.Nsec)
	}
	return id, nil
}
