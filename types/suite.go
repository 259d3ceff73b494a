package types

import (
	"fmt"
	"time"
)

// DefaultTestTimeout is applied to suite entries that do not set their own.
const DefaultTestTimeout = 600 * time.Second

// TestStatus represents the suite-level state of one test execution.
// TIMEOUT is deliberately distinct from FAIL: a FAIL is a clean verdict
// from the test itself, a TIMEOUT is a forced abort with no guarantee that
// the test's teardown ran to completion.
type TestStatus string

const (
	TestStatusPass    TestStatus = "pass"
	TestStatusFail    TestStatus = "fail"
	TestStatusTimeout TestStatus = "timeout"
	TestStatusError   TestStatus = "error"
	TestStatusSkipped TestStatus = "skipped"
)

// TestEntry is one test in a suite specification.
type TestEntry struct {
	Name    string   `yaml:"name" json:"name"`
	Path    string   `yaml:"path" json:"path"`
	Args    []string `yaml:"args,omitempty" json:"args,omitempty"`
	Enabled *bool    `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Timeout *int     `yaml:"timeout,omitempty" json:"timeout,omitempty"` // seconds
}

// IsEnabled reports whether the entry should run. Entries are enabled by
// default.
func (e *TestEntry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// TestTimeout returns the entry's wall-clock deadline.
func (e *TestEntry) TestTimeout() time.Duration {
	if e.Timeout == nil || *e.Timeout <= 0 {
		return DefaultTestTimeout
	}
	return time.Duration(*e.Timeout) * time.Second
}

// SuiteSpec is an ordered suite of test entries. The YAML and JSON forms
// carry identical semantics.
type SuiteSpec struct {
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Tests       []TestEntry `yaml:"tests" json:"tests"`
}

// Validate checks the spec for the problems that should abort a run before
// any test executes.
func (s *SuiteSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("suite name is required")
	}
	if len(s.Tests) == 0 {
		return fmt.Errorf("suite %q contains no tests", s.Name)
	}
	for i, t := range s.Tests {
		if t.Name == "" {
			return fmt.Errorf("test at index %d has no name", i)
		}
		if t.Path == "" {
			return fmt.Errorf("test %q has no path", t.Name)
		}
	}
	return nil
}

// SuiteStats holds per-status counts for a suite run.
type SuiteStats struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Timeout int `json:"timeout"`
	Errored int `json:"errored"`
	Skipped int `json:"skipped"`
}

// TestRunResult is the suite runner's record of one entry.
type TestRunResult struct {
	Name     string        `json:"name"`
	Path     string        `json:"path"`
	Status   TestStatus    `json:"status"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
	Reason   string        `json:"reason,omitempty"` // skip reason or error detail
}

// SuiteResult is the artifact produced by one suite run.
type SuiteResult struct {
	RunID     string          `json:"run_id"`
	SuiteName string          `json:"suite_name"`
	StartedAt time.Time       `json:"started_at"`
	Duration  time.Duration   `json:"duration"`
	Stats     SuiteStats      `json:"stats"`
	Results   []TestRunResult `json:"results"`
}

// Status derives the suite-level outcome: pass iff zero fail, timeout and
// error entries among enabled tests.
func (r *SuiteResult) Status() TestStatus {
	if r.Stats.Failed > 0 || r.Stats.Timeout > 0 || r.Stats.Errored > 0 {
		return TestStatusFail
	}
	return TestStatusPass
}

// Recount rebuilds Stats from the Results slice.
func (r *SuiteResult) Recount() {
	stats := SuiteStats{Total: len(r.Results)}
	for _, res := range r.Results {
		switch res.Status {
		case TestStatusPass:
			stats.Passed++
		case TestStatusFail:
			stats.Failed++
		case TestStatusTimeout:
			stats.Timeout++
		case TestStatusError:
			stats.Errored++
		case TestStatusSkipped:
			stats.Skipped++
		}
	}
	r.Stats = stats
}

func (r *SuiteResult) String() string {
	return fmt.Sprintf("Suite %q: %s (%d tests: %d passed, %d failed, %d timeout, %d error, %d skipped) in %.1fs",
		r.SuiteName, r.Status(), r.Stats.Total, r.Stats.Passed, r.Stats.Failed,
		r.Stats.Timeout, r.Stats.Errored, r.Stats.Skipped, r.Duration.Seconds())
}
