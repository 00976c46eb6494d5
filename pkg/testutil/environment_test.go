package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stapler/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvironment(t *testing.T) {
	env := NewEnvironment(t)

	assert.DirExists(t, env.Dir)
	assert.Equal(t, NoopCommand, os.Getenv("STAPLER_SHELL_OPEN"))
	assert.Equal(t, env.StateDir, os.Getenv("XDG_STATE_HOME"))

	p, err := paths.New()
	require.NoError(t, err)
	assert.Equal(t, env.ConfigFile, p.ConfigFilePath())
}

func TestEnvironment_Files(t *testing.T) {
	env := NewEnvironment(t)

	path := env.File(t, "notes.md")
	assert.Equal(t, "notes.md", ReadFile(t, path))

	moved := filepath.Join(env.Dir, "archive", "notes.md")
	Move(t, path, moved)
	assert.NoFileExists(t, path)
	assert.FileExists(t, moved)

	assert.Equal(t, filepath.Join(env.Dir, "work.stapled"), env.Document("work"))
}
