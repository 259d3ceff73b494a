package reporting

import (
	"github.com/charmbracelet/log"

	"github.com/bench-labs/rig-acceptor/types"
)

// LogEmitter streams engine events to the structured logger so a test run
// can be followed live on the console.
type LogEmitter struct {
	log *log.Logger
}

// NewLogEmitter creates a log-backed event sink.
func NewLogEmitter(logger *log.Logger) *LogEmitter {
	if logger == nil {
		logger = log.Default()
	}
	return &LogEmitter{log: logger}
}

func (e *LogEmitter) PhaseStarted(phase types.Phase) {
	e.log.Info("phase starting", "phase", phase)
}

func (e *LogEmitter) StepStarted(label, name string) {
	e.log.Info("step starting", "label", label, "name", name)
}

func (e *LogEmitter) StepEnded(result *types.StepResult) {
	switch result.Outcome {
	case types.OutcomePass, types.OutcomePassNeg:
		e.log.Info("step finished", "label", result.Label, "outcome", result.Outcome, "duration", result.Duration)
	case types.OutcomeSkip:
		e.log.Warn("step skipped", "label", result.Label, "reason", result.Message)
	default:
		e.log.Error("step failed", "label", result.Label, "outcome", result.Outcome, "message", result.Message)
	}
}

func (e *LogEmitter) PhaseEnded(report *types.PhaseReport) {
	e.log.Info("phase finished", "phase", report.Phase, "outcome", report.Outcome)
}

func (e *LogEmitter) TestEnded(verdict *types.TestVerdict) {
	if verdict.Result == types.OutcomePass {
		e.log.Info("test passed", "test", verdict.Name, "duration", verdict.Duration)
	} else {
		e.log.Error("test failed", "test", verdict.Name, "duration", verdict.Duration)
	}
}
