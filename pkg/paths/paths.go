package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/stapler/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for stapler
	EnvConfigDir = "STAPLER_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for stapler
	EnvDataDir = "STAPLER_DATA_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for stapler-specific files
	AppDirName = "stapler"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "stapler.log"

	// DocumentExtension is the extension of stapler documents
	DocumentExtension = ".stapled"

	// UntitledDocument is the file name proposed for new documents
	UntitledDocument = "Untitled" + DocumentExtension
)

// Paths provides centralized path management for stapler
type Paths interface {
	ConfigDir() string
	DataDir() string
	StateDir() string
	ConfigFilePath() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
	DocumentPath(path string) (string, error)
}

type paths struct {
	xdgConfig string
	xdgData   string
	xdgState  string
}

// New creates a new Paths instance, respecting environment overrides
func New() (Paths, error) {
	p := &paths{}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AppDirName)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p, nil
}

// ConfigDir returns the XDG config directory for stapler
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// DataDir returns the XDG data directory for stapler
func (p *paths) DataDir() string {
	return p.xdgData
}

// StateDir returns the XDG state directory for stapler
func (p *paths) StateDir() string {
	return p.xdgState
}

// ConfigFilePath returns the path of the user configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// LogFilePath returns the path of the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath expands home, makes the path absolute and cleans it
func (p *paths) NormalizePath(path string) (string, error) {
	return Normalize(path)
}

// DocumentPath normalizes path and appends the document extension when missing
func (p *paths) DocumentPath(path string) (string, error) {
	return DocumentFile(path)
}

// DocumentFile is DocumentPath without a Paths instance
func DocumentFile(path string) (string, error) {
	normalized, err := Normalize(path)
	if err != nil {
		return "", err
	}
	if !strings.EqualFold(filepath.Ext(normalized), DocumentExtension) {
		normalized += DocumentExtension
	}
	return normalized, nil
}

// Normalize is NormalizePath without a Paths instance
func Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}

	return filepath.Clean(abs), nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	return expandHome(path)
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// IsWithin reports whether path equals root or lies below it
func IsWithin(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
