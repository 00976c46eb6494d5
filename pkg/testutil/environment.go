package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stapler/pkg/paths"
)

// NoopCommand is used as opener so launch and reveal succeed without a
// desktop.
const NoopCommand = "true"

// Environment is an isolated place to run stapler in a test.
type Environment struct {
	// Dir holds the items and documents of the test
	Dir string
	// ConfigFile is where stapler looks for its configuration
	ConfigFile string
	// StateDir receives the log file
	StateDir string
}

// NewEnvironment points the stapler directories into a temp dir and
// disables colors and real openers for the duration of t.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()
	root := t.TempDir()

	env := &Environment{
		Dir:      CreateDir(t, root, "work"),
		StateDir: filepath.Join(root, "state"),
	}
	configDir := filepath.Join(root, "config")
	env.ConfigFile = filepath.Join(configDir, paths.ConfigFileName)

	t.Setenv("HOME", root)
	t.Setenv("XDG_STATE_HOME", env.StateDir)
	t.Setenv(paths.EnvConfigDir, configDir)
	t.Setenv(paths.EnvDataDir, filepath.Join(root, "data"))
	t.Setenv("STAPLER_SHELL_OPEN", NoopCommand)
	t.Setenv("STAPLER_SHELL_REVEAL", NoopCommand)
	t.Setenv("NO_COLOR", "1")
	return env
}

// File creates an item named name with its name as content.
func (e *Environment) File(t *testing.T, name string) string {
	t.Helper()
	return CreateFile(t, e.Dir, name, name)
}

// Document returns the path of a document named name in Dir.
func (e *Environment) Document(name string) string {
	return filepath.Join(e.Dir, name+paths.DocumentExtension)
}
