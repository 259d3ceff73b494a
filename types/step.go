package types

import "time"

// StepResult captures the outcome of one action or composed step. Composite
// results carry their children in execution order; leaf results have none.
// A StepResult is immutable once the composer has sealed it.
type StepResult struct {
	Label    string        `json:"label"` // e.g. "STEP 2", "TEARDOWN 1.3"
	Name     string        `json:"name"`
	Outcome  Outcome       `json:"outcome"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
	Children []*StepResult `json:"children,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

// FoldOutcomes folds child outcomes into a composite outcome: FAIL iff at
// least one child resolved to FAIL, FAIL_NEG or ERROR, otherwise PASS. The
// fold is commutative, so parallel groups may apply it regardless of finish
// order.
func FoldOutcomes(children []*StepResult) Outcome {
	for _, c := range children {
		if c.Outcome.Failing() {
			return OutcomeFail
		}
	}
	return OutcomePass
}

// PhaseReport holds the ordered top-level step results of one phase and the
// phase-level outcome.
type PhaseReport struct {
	Phase   Phase         `json:"phase"`
	Outcome Outcome       `json:"outcome"`
	Steps   []*StepResult `json:"steps,omitempty"`
	Ran     bool          `json:"ran"` // false when the test case does not define this phase
}

// TestVerdict is the single authoritative conclusion of one test run.
// Teardown's phase outcome is recorded but never influences Result.
type TestVerdict struct {
	Name     string        `json:"name"`
	Result   Outcome       `json:"result"` // PASS or FAIL
	Phases   []PhaseReport `json:"phases"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Duration time.Duration `json:"duration"`
}

// PhaseReport returns the report for the given phase, or nil when the run
// produced none.
func (v *TestVerdict) PhaseReport(p Phase) *PhaseReport {
	for i := range v.Phases {
		if v.Phases[i].Phase == p {
			return &v.Phases[i]
		}
	}
	return nil
}
