package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// GenerateConfigContent returns the defaults file with every assignment
// commented out, ready to be written as a user config.
func GenerateConfigContent() string {
	lines := strings.Split(GetDefaultsContent(), "\n")
	for i, line := range lines {
		if isAssignment(line) {
			lines[i] = "# " + line
		}
	}
	return strings.Join(lines, "\n")
}

// isAssignment reports whether a TOML line sets a value, as opposed to a
// blank line, a comment or a table header
func isAssignment(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "", strings.HasPrefix(trimmed, "#"), strings.HasPrefix(trimmed, "["):
		return false
	}
	return true
}

// DumpYAML renders the effective configuration as YAML
func DumpYAML(cfg *Config) (string, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
