// Package exitcodes defines the standard exit codes used by rig-acceptor.
package exitcodes

// Exit code constants used by rig-acceptor
// These constants define the exit codes that the application uses to indicate
// various states when it exits:
//
// * Success (0): Used when every enabled test passes
// * TestFailure (1): Used when at least one enabled test fails, errors or times out
// * RuntimeErr (2): Used when the suite could not be loaded or run at all
const (
	Success     = 0 // All enabled tests pass
	TestFailure = 1 // Test failures, errors or timeouts
	RuntimeErr  = 2 // Configuration or runtime errors
)
