// Package engine is the test execution core: it composes actions into
// sequential and parallel steps, drives the pre → setup → post → teardown
// phase state machine, and folds per-action outcomes into a single
// authoritative verdict with guaranteed teardown.
//
// The engine treats actions as opaque capabilities. How an action performs
// I/O against the device under test, and how results are rendered, are the
// concern of action factories and reporters outside this package.
package engine
