package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeFailing(t *testing.T) {
	assert.False(t, OutcomePass.Failing())
	assert.False(t, OutcomePassNeg.Failing())
	assert.False(t, OutcomeSkip.Failing())
	assert.True(t, OutcomeFail.Failing())
	assert.True(t, OutcomeFailNeg.Failing())
	assert.True(t, OutcomeError.Failing())
}

func TestPhaseLabelPrefixes(t *testing.T) {
	assert.Equal(t, "PRE", PhasePre.LabelPrefix())
	assert.Equal(t, "STEP", PhaseSetup.LabelPrefix())
	assert.Equal(t, "POST", PhasePost.LabelPrefix())
	assert.Equal(t, "TEARDOWN", PhaseTeardown.LabelPrefix())
}

func TestFoldOutcomes(t *testing.T) {
	tests := map[string]struct {
		outcomes []Outcome
		want     Outcome
	}{
		"all pass":            {[]Outcome{OutcomePass, OutcomePass}, OutcomePass},
		"empty":               {nil, OutcomePass},
		"one fail":            {[]Outcome{OutcomePass, OutcomeFail, OutcomePass}, OutcomeFail},
		"fail_neg counts":     {[]Outcome{OutcomePass, OutcomeFailNeg}, OutcomeFail},
		"error counts":        {[]Outcome{OutcomeError}, OutcomeFail},
		"pass_neg is passing": {[]Outcome{OutcomePassNeg, OutcomePass}, OutcomePass},
		"skip is passing":     {[]Outcome{OutcomePass, OutcomeSkip}, OutcomePass},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			children := make([]*StepResult, len(tc.outcomes))
			for i, o := range tc.outcomes {
				children[i] = &StepResult{Outcome: o}
			}
			assert.Equal(t, tc.want, FoldOutcomes(children))
		})
	}
}

func TestSTEAndPTEDefaultNames(t *testing.T) {
	a := &Action{Name: "a"}
	b := &Action{Name: "b"}

	ste := STE("", a, b)
	assert.Equal(t, "Multi-action step with 2 sub-steps", ste.Name)
	assert.Equal(t, "named", STE("named", a).Name)

	pte := PTE("", a, b)
	assert.Equal(t, "Parallel step with 2 sub-steps", pte.Name)
}

func TestTestEntryDefaults(t *testing.T) {
	entry := TestEntry{Name: "t", Path: "./t"}
	assert.True(t, entry.IsEnabled())
	assert.Equal(t, 600*time.Second, entry.TestTimeout())

	off := false
	seconds := 42
	entry = TestEntry{Name: "t", Path: "./t", Enabled: &off, Timeout: &seconds}
	assert.False(t, entry.IsEnabled())
	assert.Equal(t, 42*time.Second, entry.TestTimeout())
}

func TestSuiteSpecValidate(t *testing.T) {
	valid := SuiteSpec{Name: "s", Tests: []TestEntry{{Name: "t", Path: "./t"}}}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&SuiteSpec{Tests: []TestEntry{{Name: "t", Path: "./t"}}}).Validate())
	assert.Error(t, (&SuiteSpec{Name: "s"}).Validate())
	assert.Error(t, (&SuiteSpec{Name: "s", Tests: []TestEntry{{Path: "./t"}}}).Validate())
	assert.Error(t, (&SuiteSpec{Name: "s", Tests: []TestEntry{{Name: "t"}}}).Validate())
}

func TestSuiteResultRecountAndStatus(t *testing.T) {
	result := SuiteResult{Results: []TestRunResult{
		{Status: TestStatusPass},
		{Status: TestStatusPass},
		{Status: TestStatusSkipped},
	}}
	result.Recount()
	assert.Equal(t, SuiteStats{Total: 3, Passed: 2, Skipped: 1}, result.Stats)
	assert.Equal(t, TestStatusPass, result.Status(), "skips do not fail a suite")

	result.Results = append(result.Results, TestRunResult{Status: TestStatusTimeout})
	result.Recount()
	assert.Equal(t, TestStatusFail, result.Status(), "a timeout fails the suite")
}

func TestVerdictPhaseReportLookup(t *testing.T) {
	v := TestVerdict{Phases: []PhaseReport{
		{Phase: PhasePre},
		{Phase: PhaseSetup, Ran: true},
	}}
	assert.NotNil(t, v.PhaseReport(PhaseSetup))
	assert.True(t, v.PhaseReport(PhaseSetup).Ran)
	assert.Nil(t, v.PhaseReport(PhaseTeardown))
}
