package types

// Outcome represents the result of a single action or composed step.
type Outcome string

const (
	OutcomePass    Outcome = "PASS"
	OutcomeFail    Outcome = "FAIL"
	OutcomePassNeg Outcome = "PASS_NEG" // negative-test action whose underlying check failed, as expected
	OutcomeFailNeg Outcome = "FAIL_NEG" // negative-test action whose underlying check unexpectedly passed
	OutcomeSkip    Outcome = "SKIP"
	OutcomeError   Outcome = "ERROR" // the action's operation faulted rather than failed its check
)

// Failing reports whether this outcome counts as a failure for
// aggregation and short-circuit purposes. PASS_NEG is a passing outcome;
// FAIL_NEG is not, because an unexpectedly-passing negative test means the
// device is not behaving as validated.
func (o Outcome) Failing() bool {
	return o == OutcomeFail || o == OutcomeFailNeg || o == OutcomeError
}

// Phase identifies one of the four stages of a test run.
type Phase string

const (
	PhasePre      Phase = "pre"
	PhaseSetup    Phase = "setup"
	PhasePost     Phase = "post"
	PhaseTeardown Phase = "teardown"
)

// LabelPrefix returns the step-number prefix used for this phase's labels
// (e.g. "STEP 2", "TEARDOWN 1.3").
func (p Phase) LabelPrefix() string {
	switch p {
	case PhasePre:
		return "PRE"
	case PhaseSetup:
		return "STEP"
	case PhasePost:
		return "POST"
	case PhaseTeardown:
		return "TEARDOWN"
	default:
		return "STEP"
	}
}
