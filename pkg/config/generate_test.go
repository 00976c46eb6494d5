package config

import (
	"strings"
	"testing"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[launch]\n")
	assert.Contains(t, content, `# delay = "0ms"`)
	assert.Contains(t, content, `# untitled = "Untitled.stapled"`)

	for _, line := range strings.Split(content, "\n") {
		assert.True(t, !isAssignment(line), "value left active: %q", line)
	}

	// only tables remain, so the generated file changes nothing
	values, err := toml.Parser().Unmarshal([]byte(content))
	require.NoError(t, err)
	for table, v := range values {
		assert.Empty(t, v, table)
	}
}

func TestDumpYAML(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	out, err := DumpYAML(cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "debounce: 300ms")
	assert.Contains(t, out, "untitled: Untitled.stapled")
}
