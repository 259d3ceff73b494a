package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bench-labs/rig-acceptor/logging"
	"github.com/bench-labs/rig-acceptor/registry"
	"github.com/bench-labs/rig-acceptor/types"
)

// writeScript drops an executable shell script acting as a test binary.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func makeRegistry(t *testing.T, spec string) *registry.Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(spec), 0o644))
	reg, err := registry.NewRegistry(registry.Config{SuiteSpecFile: path})
	require.NoError(t, err)
	return reg
}

func runSuite(t *testing.T, reg *registry.Registry, cfg Config) *types.SuiteResult {
	t.Helper()
	cfg.Registry = reg
	r, err := NewSuiteRunner(cfg)
	require.NoError(t, err)
	result, err := r.RunSuite(context.Background())
	require.NoError(t, err)
	return result
}

func TestSuiteRunsEnabledTestsAndSkipsDisabled(t *testing.T) {
	dir := t.TempDir()
	pass := writeScript(t, dir, "tc_pass", "exit 0")

	spec := fmt.Sprintf(`
name: mixed
tests:
  - name: one
    path: %s
  - name: two
    path: %s
  - name: three
    path: %s
  - name: off
    path: %s
    enabled: false
`, pass, pass, pass, pass)

	result := runSuite(t, makeRegistry(t, spec), Config{})

	require.Len(t, result.Results, 4)
	assert.Equal(t, 3, result.Stats.Passed)
	assert.Equal(t, 1, result.Stats.Skipped)
	assert.Equal(t, types.TestStatusSkipped, result.Results[3].Status)
	assert.Equal(t, types.TestStatusPass, result.Status())
}

func TestFailingTestRecordsExitCode(t *testing.T) {
	dir := t.TempDir()
	fail := writeScript(t, dir, "tc_fail", "echo 'assertion failed: outlet stayed on' >&2\nexit 1")

	spec := fmt.Sprintf("name: failing\ntests:\n  - name: bad\n    path: %s\n", fail)
	result := runSuite(t, makeRegistry(t, spec), Config{})

	require.Len(t, result.Results, 1)
	res := result.Results[0]
	assert.Equal(t, types.TestStatusFail, res.Status)
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Reason, "assertion failed: outlet stayed on")
	assert.Equal(t, types.TestStatusFail, result.Status())
}

func TestTimeoutIsDistinctFromFail(t *testing.T) {
	dir := t.TempDir()
	slow := writeScript(t, dir, "tc_slow", "sleep 30")

	spec := fmt.Sprintf("name: slow\ntests:\n  - name: hang\n    path: %s\n    timeout: 1\n", slow)
	result := runSuite(t, makeRegistry(t, spec), Config{})

	require.Len(t, result.Results, 1)
	res := result.Results[0]
	assert.Equal(t, types.TestStatusTimeout, res.Status)
	assert.NotEqual(t, types.TestStatusFail, res.Status)
	assert.Contains(t, res.Reason, "timeout")
	assert.Equal(t, 1, result.Stats.Timeout)
	assert.Equal(t, types.TestStatusFail, result.Status())
}

func TestMissingBinaryRecordsError(t *testing.T) {
	spec := "name: broken\ntests:\n  - name: ghost\n    path: /nonexistent/tc_ghost\n"
	result := runSuite(t, makeRegistry(t, spec), Config{})

	require.Len(t, result.Results, 1)
	assert.Equal(t, types.TestStatusError, result.Results[0].Status)
	assert.Equal(t, 1, result.Stats.Errored)
	assert.Equal(t, types.TestStatusFail, result.Status())
}

func TestOneFailureNeverAbortsTheSuite(t *testing.T) {
	dir := t.TempDir()
	fail := writeScript(t, dir, "tc_fail", "exit 1")
	pass := writeScript(t, dir, "tc_pass", "exit 0")

	spec := fmt.Sprintf(`
name: resilient
tests:
  - name: first
    path: %s
  - name: second
    path: %s
`, fail, pass)
	result := runSuite(t, makeRegistry(t, spec), Config{})

	require.Len(t, result.Results, 2)
	assert.Equal(t, types.TestStatusFail, result.Results[0].Status)
	assert.Equal(t, types.TestStatusPass, result.Results[1].Status)
}

func TestResultsKeepSuiteOrder(t *testing.T) {
	dir := t.TempDir()
	pass := writeScript(t, dir, "tc_pass", "exit 0")

	spec := fmt.Sprintf(`
name: ordered
tests:
  - name: alpha
    path: %s
  - name: beta
    path: %s
  - name: gamma
    path: %s
`, pass, pass, pass)
	result := runSuite(t, makeRegistry(t, spec), Config{})

	names := make([]string, 0, len(result.Results))
	for _, r := range result.Results {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, names)
}

func TestHardwareConfigForwardedToTests(t *testing.T) {
	dir := t.TempDir()
	probe := writeScript(t, dir, "tc_probe", `echo "env=$RIG_HWCFG args=$@"`)

	fileLogger, err := logging.NewFileLogger(filepath.Join(dir, "logs"))
	require.NoError(t, err)

	spec := fmt.Sprintf("name: hwcfg\ntests:\n  - name: probe\n    path: %s\n", probe)
	result := runSuite(t, makeRegistry(t, spec), Config{
		HardwareConfig: "/etc/rig/hardware.yaml",
		FileLogger:     fileLogger,
	})
	require.Equal(t, types.TestStatusPass, result.Status())

	data, err := os.ReadFile(filepath.Join(fileLogger.RunDir(result.RunID), "probe.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "env=/etc/rig/hardware.yaml")
	assert.Contains(t, string(data), "args=--hwcfg /etc/rig/hardware.yaml")
}

func TestSuiteResultCarriesRunIDAndDuration(t *testing.T) {
	dir := t.TempDir()
	pass := writeScript(t, dir, "tc_pass", "exit 0")

	spec := fmt.Sprintf("name: ids\ntests:\n  - name: one\n    path: %s\n", pass)
	result := runSuite(t, makeRegistry(t, spec), Config{})

	assert.NotEmpty(t, result.RunID)
	assert.Greater(t, result.Duration, time.Duration(0))
	assert.WithinDuration(t, time.Now(), result.StartedAt, time.Minute)
}

func TestNewSuiteRunnerRequiresRegistry(t *testing.T) {
	_, err := NewSuiteRunner(Config{})
	assert.Error(t, err)
}

func TestLastLine(t *testing.T) {
	assert.Equal(t, "final", lastLine([]byte("first\nsecond\nfinal\n")))
	assert.Equal(t, "only", lastLine([]byte("only")))
	assert.Equal(t, "", lastLine(nil))
	assert.Equal(t, "trailing", lastLine([]byte("trailing\n\n  \n")))
}
