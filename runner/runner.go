// Package runner executes a loaded suite specification: every enabled
// entry runs as an isolated subprocess with an enforced wall-clock
// deadline, strictly in suite order. Tests share one physical device under
// test, so the runner never parallelizes across them.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/bench-labs/rig-acceptor/logging"
	"github.com/bench-labs/rig-acceptor/metrics"
	"github.com/bench-labs/rig-acceptor/registry"
	"github.com/bench-labs/rig-acceptor/types"
)

// HwcfgEnvVar carries the hardware config path into test subprocesses.
const HwcfgEnvVar = "RIG_HWCFG"

// RunIDEnvVar carries the suite run ID into test subprocesses.
const RunIDEnvVar = "RIG_RUN_ID"

// SuiteRunner runs a whole suite and reports aggregate results.
type SuiteRunner interface {
	RunSuite(ctx context.Context) (*types.SuiteResult, error)
}

// Config configures a suite runner.
type Config struct {
	Registry       *registry.Registry
	WorkDir        string // working directory for test subprocesses
	HardwareConfig string // optional path forwarded to every test via --hwcfg
	Log            *log.Logger
	FileLogger     *logging.FileLogger // optional per-test output capture
}

type suiteRunner struct {
	registry   *registry.Registry
	workDir    string
	hwcfg      string
	log        *log.Logger
	fileLogger *logging.FileLogger
	tracer     trace.Tracer
	runID      string
}

// NewSuiteRunner creates a runner for the registry's suite.
func NewSuiteRunner(cfg Config) (SuiteRunner, error) {
	if cfg.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.Default()
	}
	return &suiteRunner{
		registry:   cfg.Registry,
		workDir:    cfg.WorkDir,
		hwcfg:      cfg.HardwareConfig,
		log:        cfg.Log,
		fileLogger: cfg.FileLogger,
		tracer:     otel.Tracer("suite runner"),
	}, nil
}

// RunSuite executes every entry in suite order. One test's failure never
// aborts the suite; the runner always proceeds to the next enabled entry.
func (r *suiteRunner) RunSuite(ctx context.Context) (*types.SuiteResult, error) {
	suite := r.registry.Suite()
	r.runID = uuid.New().String()

	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("suite %s", suite.Name))
	defer span.End()

	r.log.Info("suite starting", "suite", suite.Name, "run_id", r.runID,
		"tests", len(suite.Tests), "enabled", r.registry.EnabledCount())

	result := &types.SuiteResult{
		RunID:     r.runID,
		SuiteName: suite.Name,
		StartedAt: time.Now(),
	}

	for i := range suite.Tests {
		entry := &suite.Tests[i]
		if !entry.IsEnabled() {
			r.log.Info("test skipped", "test", entry.Name, "reason", "disabled in suite spec")
			result.Results = append(result.Results, types.TestRunResult{
				Name:   entry.Name,
				Path:   entry.Path,
				Status: types.TestStatusSkipped,
				Reason: "disabled in suite spec",
			})
			continue
		}
		testResult := r.runSingleTest(ctx, entry)
		result.Results = append(result.Results, testResult)
		metrics.RecordTestRun(suite.Name, r.runID, entry.Name, string(testResult.Status), testResult.Duration)
	}

	result.Duration = time.Since(result.StartedAt)
	result.Recount()

	metrics.RecordSuiteRun(suite.Name, r.runID, string(result.Status()),
		result.Stats.Total, result.Stats.Passed, result.Stats.Failed,
		result.Stats.Timeout, result.Stats.Errored, result.Duration)

	r.log.Info("suite finished", "suite", suite.Name, "run_id", r.runID,
		"status", result.Status(), "duration", result.Duration)
	return result, nil
}

// runSingleTest runs one entry as a subprocess under its wall-clock
// deadline. Exceeding the deadline forcibly terminates the process and
// records TIMEOUT: unlike a FAIL, there is no guarantee the test's own
// teardown ran to completion.
func (r *suiteRunner) runSingleTest(ctx context.Context, entry *types.TestEntry) types.TestRunResult {
	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("test %s", entry.Name))
	defer span.End()

	timeout := entry.TestTimeout()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := entry.Args
	if r.hwcfg != "" {
		args = append(append([]string{}, args...), "--hwcfg", r.hwcfg)
	}
	cmd := exec.CommandContext(ctx, entry.Path, args...)
	cmd.Dir = r.workDir
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("%s=%s", RunIDEnvVar, r.runID),
	)
	if r.hwcfg != "" {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", HwcfgEnvVar, r.hwcfg))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Info("test starting", "test", entry.Name, "path", entry.Path, "timeout", timeout)
	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if r.fileLogger != nil {
		if logErr := r.fileLogger.WriteTestLog(r.runID, entry.Name, stdout.Bytes(), stderr.Bytes()); logErr != nil {
			r.log.Error("failed to write test log", "test", entry.Name, "error", logErr)
		}
	}

	result := types.TestRunResult{
		Name:     entry.Name,
		Path:     entry.Path,
		Duration: duration,
	}

	switch {
	case ctx.Err() == context.DeadlineExceeded:
		result.Status = types.TestStatusTimeout
		result.ExitCode = -1
		result.Reason = fmt.Sprintf("test exceeded timeout of %s", timeout)
	case err == nil:
		result.Status = types.TestStatusPass
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.Status = types.TestStatusFail
			result.ExitCode = exitErr.ExitCode()
			result.Reason = lastLine(stderr.Bytes())
		} else {
			// The process never ran: missing binary, permission problem.
			result.Status = types.TestStatusError
			result.ExitCode = -1
			result.Reason = err.Error()
			metrics.RecordErrorDetails("test spawn failed", err)
		}
	}

	r.log.Info("test finished", "test", entry.Name, "status", result.Status,
		"exit_code", result.ExitCode, "duration", duration)
	return result
}

// lastLine extracts the final non-empty stderr line as a short diagnostic.
func lastLine(out []byte) string {
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		if line := bytes.TrimSpace(lines[i]); len(line) > 0 {
			return string(line)
		}
	}
	return ""
}
