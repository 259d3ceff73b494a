package metrics

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	MetricsNamespace = "rig"
)

var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	testRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "test_runs_total",
		Help:      "Count of individual test executions",
	}, []string{
		"suite_name",
		"run_id",
		"test",
		"status",
	})

	testDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "test_duration_seconds",
		Help:      "Duration of individual test executions",
	}, []string{
		"suite_name",
		"run_id",
		"test",
	})

	suiteResults = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_results",
		Help:      "Result of suite runs",
	}, []string{
		"suite_name",
		"run_id",
		"status",
	})

	suiteTestTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_test_total",
		Help:      "Total number of tests in a suite run",
	}, []string{
		"suite_name",
		"run_id",
	})

	suiteTestPassed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_test_passed",
		Help:      "Number of passed tests in a suite run",
	}, []string{
		"suite_name",
		"run_id",
	})

	suiteTestFailed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_test_failed",
		Help:      "Number of failed tests in a suite run",
	}, []string{
		"suite_name",
		"run_id",
	})

	suiteTestTimeout = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_test_timeout",
		Help:      "Number of timed-out tests in a suite run",
	}, []string{
		"suite_name",
		"run_id",
	})

	suiteTestErrored = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_test_errored",
		Help:      "Number of errored tests in a suite run",
	}, []string{
		"suite_name",
		"run_id",
	})

	suiteDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "suite_duration_seconds",
		Help:      "Duration of suite runs",
	}, []string{
		"suite_name",
		"run_id",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

// RecordTestRun records the outcome of one test subprocess.
func RecordTestRun(suiteName, runID, test, status string, duration time.Duration) {
	testRunsTotal.WithLabelValues(suiteName, runID, test, status).Inc()
	testDuration.WithLabelValues(suiteName, runID, test).Set(duration.Seconds())
}

// RecordSuiteRun records aggregate results for a whole suite run.
func RecordSuiteRun(suiteName, runID, status string, total, passed, failed, timeout, errored int, duration time.Duration) {
	suiteResults.WithLabelValues(suiteName, runID, status).Set(1)
	suiteTestTotal.WithLabelValues(suiteName, runID).Set(float64(total))
	suiteTestPassed.WithLabelValues(suiteName, runID).Set(float64(passed))
	suiteTestFailed.WithLabelValues(suiteName, runID).Set(float64(failed))
	suiteTestTimeout.WithLabelValues(suiteName, runID).Set(float64(timeout))
	suiteTestErrored.WithLabelValues(suiteName, runID).Set(float64(errored))
	suiteDuration.WithLabelValues(suiteName, runID).Set(duration.Seconds())
}
