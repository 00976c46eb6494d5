package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stapler/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EnvironmentOverrides(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(tmp, "cfg"))
	t.Setenv(EnvDataDir, filepath.Join(tmp, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmp, "cfg"), p.ConfigDir())
	assert.Equal(t, filepath.Join(tmp, "data"), p.DataDir())
	assert.Equal(t, filepath.Join(tmp, "state", AppDirName), p.StateDir())
	assert.Equal(t, filepath.Join(tmp, "cfg", ConfigFileName), p.ConfigFilePath())
	assert.Equal(t, filepath.Join(tmp, "state", AppDirName, LogFileName), p.LogFilePath())
}

func TestNormalize(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"absolute", "/tmp/a/../b", "/tmp/b"},
		{"home", "~/notes.txt", filepath.Join(home, "notes.txt")},
		{"bare tilde", "~", home},
		{"other user untouched", "~bob/x", mustAbs(t, "~bob/x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = Normalize("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestDocumentPath(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	got, err := p.DocumentPath("/tmp/work")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/work.stapled", got)

	got, err = p.DocumentPath("/tmp/Work.STAPLED")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/Work.STAPLED", got)
}

func TestIsWithin(t *testing.T) {
	assert.True(t, IsWithin("/proc/self", "/proc"))
	assert.True(t, IsWithin("/proc", "/proc"))
	assert.False(t, IsWithin("/processes", "/proc"))
	assert.False(t, IsWithin("/", "/proc"))
	assert.True(t, IsWithin("/tmp/..data/x", "/tmp"))
}

func mustAbs(t *testing.T, p string) string {
	t.Helper()
	abs, err := filepath.Abs(p)
	require.NoError(t, err)
	return abs
}
