package rig

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/bench-labs/rig-acceptor/engine"
	"github.com/bench-labs/rig-acceptor/exitcodes"
	"github.com/bench-labs/rig-acceptor/reporting"
	"github.com/bench-labs/rig-acceptor/types"
)

// RunTestMain executes a single test case with live console reporting and
// returns the exit code for the test binary's main function: 0 on PASS,
// 1 on FAIL. Test binaries invoked by the suite runner call this from
// main:
//
//	func main() {
//		os.Exit(rig.RunTestMain(&SerialEchoTest{}))
//	}
func RunTestMain(tc engine.TestCase) int {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          tc.Name(),
	})

	orchestrator := engine.NewOrchestrator(logger, reporting.NewLogEmitter(logger))
	verdict := orchestrator.Run(tc)

	fmt.Print(reporting.FormatVerdict(verdict))

	if verdict.Result == types.OutcomePass {
		return exitcodes.Success
	}
	return exitcodes.TestFailure
}
