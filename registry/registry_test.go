package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpec(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const yamlSpec = `
name: nightly
description: Nightly regression suite
tests:
  - name: sanity
    path: ./bin/tc_sanity
  - name: serial
    path: ./bin/tc_serial
    timeout: 120
  - name: stress
    path: ./bin/tc_stress
    enabled: false
`

const jsonSpec = `{
  "name": "nightly",
  "description": "Nightly regression suite",
  "tests": [
    {"name": "sanity", "path": "./bin/tc_sanity"},
    {"name": "serial", "path": "./bin/tc_serial", "timeout": 120},
    {"name": "stress", "path": "./bin/tc_stress", "enabled": false}
  ]
}`

func TestLoadYAMLSpec(t *testing.T) {
	path := writeSpec(t, "suite.yaml", yamlSpec)

	reg, err := NewRegistry(Config{SuiteSpecFile: path})
	require.NoError(t, err)

	suite := reg.Suite()
	assert.Equal(t, "nightly", suite.Name)
	require.Len(t, suite.Tests, 3)

	// Defaults: enabled unless stated, 600s timeout unless stated.
	assert.True(t, suite.Tests[0].IsEnabled())
	assert.Equal(t, 600*time.Second, suite.Tests[0].TestTimeout())
	assert.Equal(t, 120*time.Second, suite.Tests[1].TestTimeout())
	assert.False(t, suite.Tests[2].IsEnabled())
	assert.Equal(t, 2, reg.EnabledCount())
}

func TestYAMLAndJSONFormsAreEquivalent(t *testing.T) {
	fromYAML, err := LoadSuiteSpec(writeSpec(t, "suite.yaml", yamlSpec))
	require.NoError(t, err)
	fromJSON, err := LoadSuiteSpec(writeSpec(t, "suite.json", jsonSpec))
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromJSON)
}

func TestMissingFileIsConfigurationError(t *testing.T) {
	_, err := NewRegistry(Config{SuiteSpecFile: "/nonexistent/suite.yaml"})
	assert.Error(t, err)
}

func TestUnsupportedExtensionRejected(t *testing.T) {
	path := writeSpec(t, "suite.toml", "name = 'x'")
	_, err := LoadSuiteSpec(path)
	assert.ErrorContains(t, err, "unsupported suite spec format")
}

func TestValidationRejectsEntryWithoutPath(t *testing.T) {
	path := writeSpec(t, "suite.yaml", `
name: broken
tests:
  - name: missing-path
`)
	_, err := LoadSuiteSpec(path)
	assert.ErrorContains(t, err, "has no path")
}

func TestValidationRejectsEmptySuite(t *testing.T) {
	path := writeSpec(t, "suite.yaml", "name: empty\ntests: []\n")
	_, err := LoadSuiteSpec(path)
	assert.ErrorContains(t, err, "contains no tests")
}

func TestRegistryRequiresSpecFile(t *testing.T) {
	_, err := NewRegistry(Config{})
	assert.ErrorContains(t, err, "suite spec file is required")
}
