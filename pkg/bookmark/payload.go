package bookmark

import (
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	payloadVersion = 1
	scopeReadOnly  = "read-only"
)

type identity struct {
	Device uint64 `toml:"device"`
	Inode  uint64 `toml:"inode"`
	Dir    bool   `toml:"dir"`
	// Birth is the creation time in nanoseconds, zero where the filesystem
	// does not record one
	Birth int64 `toml:"birth,omitempty"`
	// Size stands in for Birth on filesystems without it; unused for folders
	Size int64 `toml:"size,omitempty"`
}

// known reports whether the identity can be used to relocate a file
func (i identity) known() bool {
	return i.Inode != 0
}

// sameFile reports whether other is the file i was taken from. Inode numbers
// are reused once a file is deleted, so the birth time has to match as well,
// or the size of a file when no birth time is recorded.
func (i identity) sameFile(other identity) bool {
	if !i.known() || i.Device != other.Device || i.Inode != other.Inode || i.Dir != other.Dir {
		return false
	}
	if i.Birth != 0 && other.Birth != 0 {
		return i.Birth == other.Birth
	}
	return i.Dir || i.Size == other.Size
}

// payload is the content of a FileProvider reference
type payload struct {
	Version  int       `toml:"version"`
	Scope    string    `toml:"scope"`
	Path     string    `toml:"path"`
	Identity identity  `toml:"identity"`
	Created  time.Time `toml:"created"`
}

func encodePayload(p payload) (Reference, error) {
	out, err := toml.Marshal(p)
	if err != nil {
		return nil, err
	}
	return Reference(out), nil
}

func decodePayload(ref Reference) (payload, error) {
	var p payload
	if err := toml.Unmarshal(ref, &p); err != nil {
		return payload{}, err
	}
	return p, nil
}
