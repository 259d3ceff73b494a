package reporting

import (
	"fmt"
	"strings"

	"github.com/bench-labs/rig-acceptor/types"
	"github.com/bench-labs/rig-acceptor/ui"
)

// OutcomeSymbol returns the console marker for a step outcome.
func OutcomeSymbol(o types.Outcome) string {
	switch o {
	case types.OutcomePass:
		return "✓"
	case types.OutcomePassNeg:
		return "✓(neg)"
	case types.OutcomeFailNeg:
		return "✗(neg)"
	case types.OutcomeSkip:
		return "-"
	case types.OutcomeError:
		return "!"
	default:
		return "✗"
	}
}

// FormatVerdict renders a test verdict as a box-drawing tree, one line per
// phase and step.
func FormatVerdict(v *types.TestVerdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Test %s: %s (%.1fs)\n", v.Name, v.Result, v.Duration.Seconds())

	ran := make([]types.PhaseReport, 0, len(v.Phases))
	for _, p := range v.Phases {
		if p.Ran {
			ran = append(ran, p)
		}
	}

	for i, phase := range ran {
		last := i == len(ran)-1
		fmt.Fprintf(&b, "%s%s: %s\n", ui.BuildTreePrefix(1, last, nil), phase.Phase, phase.Outcome)
		writeSteps(&b, phase.Steps, 2, []bool{last})
	}
	return b.String()
}

func writeSteps(b *strings.Builder, steps []*types.StepResult, depth int, parentIsLast []bool) {
	for i, step := range steps {
		last := i == len(steps)-1
		line := fmt.Sprintf("%s %s %s", OutcomeSymbol(step.Outcome), step.Label, step.Name)
		if step.Message != "" && step.Outcome.Failing() {
			line += fmt.Sprintf(": %s", step.Message)
		}
		fmt.Fprintf(b, "%s%s (%.1fs)\n", ui.BuildTreePrefix(depth, last, parentIsLast), line, step.Duration.Seconds())
		if len(step.Children) > 0 {
			childParents := append(append([]bool{}, parentIsLast...), last)
			writeSteps(b, step.Children, depth+1, childParents)
		}
	}
}
