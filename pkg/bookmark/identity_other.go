//go:build !unix

package bookmark

import (
	"os"
)

// statIdentity only records the kind of the file; without device and inode
// numbers relocation is limited to same-path refreshes.
func statIdentity(path string) (identity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return identity{}, err
	}
	return identity{Dir: info.IsDir()}, nil
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
