package bookmark

import (
	"golang.org/x/sys/unix"
)

func birthTime(st *unix.Stat_t) int64 {
	return st.Birthtimespec.Nano()
}
