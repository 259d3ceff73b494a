package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTestLogStripsANSI(t *testing.T) {
	logger, err := NewFileLogger(t.TempDir())
	require.NoError(t, err)

	stdout := []byte("\x1b[32mPASS\x1b[0m step one\n")
	stderr := []byte("warning: slow response\n")
	require.NoError(t, logger.WriteTestLog("run-1", "tc serial", stdout, stderr))

	data, err := os.ReadFile(filepath.Join(logger.RunDir("run-1"), "tc_serial.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "PASS step one")
	assert.NotContains(t, string(data), "\x1b[")
	assert.Contains(t, string(data), "--- stderr ---")
	assert.Contains(t, string(data), "warning: slow response")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "tc_serial_v2", SanitizeFilename("tc serial/v2"))
	assert.Equal(t, "unnamed", SanitizeFilename("  "))
	assert.Equal(t, "a-b.c_d", SanitizeFilename("a-b.c_d"))
}

func TestNewFileLoggerRequiresDir(t *testing.T) {
	_, err := NewFileLogger("")
	assert.Error(t, err)
}
