package rig

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bench-labs/rig-acceptor/types"
)

// renderResultsTable prints the suite results to w as a colored table with
// one row per test and a summary footer.
func renderResultsTable(w io.Writer, result *types.SuiteResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Suite %s (%s)", result.SuiteName, formatSeconds(result.Duration.Seconds())))

	t.AppendHeader(table.Row{
		"Test", "Status", "Exit", "Duration", "Detail",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Test", WidthMax: 40, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Exit", Align: text.AlignRight},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Detail", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, res := range result.Results {
		exit := fmt.Sprintf("%d", res.ExitCode)
		if res.Status == types.TestStatusSkipped {
			exit = "-"
		}
		t.AppendRow(table.Row{
			res.Name,
			statusString(res.Status),
			exit,
			formatSeconds(res.Duration.Seconds()),
			res.Reason,
		})
	}

	if result.Status() == types.TestStatusPass {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("TOTAL %d", result.Stats.Total),
		statusString(result.Status()),
		"",
		formatSeconds(result.Duration.Seconds()),
		fmt.Sprintf("%d passed, %d failed, %d timeout, %d error, %d skipped",
			result.Stats.Passed, result.Stats.Failed, result.Stats.Timeout,
			result.Stats.Errored, result.Stats.Skipped),
	})

	t.Render()
}

// statusString returns a marked string for a suite-level test status.
func statusString(status types.TestStatus) string {
	switch status {
	case types.TestStatusPass:
		return "✓ pass"
	case types.TestStatusSkipped:
		return "- skip"
	case types.TestStatusTimeout:
		return "⊗ timeout"
	case types.TestStatusError:
		return "! error"
	default:
		return "✗ fail"
	}
}

// formatSeconds formats a duration in seconds with 1 decimal place.
func formatSeconds(s float64) string {
	return fmt.Sprintf("%.1fs", s)
}
