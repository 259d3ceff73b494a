package engine

import (
	"github.com/bench-labs/rig-acceptor/types"
)

// Emitter receives the engine's event stream: phase-start, step-start,
// step-end, phase-end, test-end. Delivery is best-effort; a panicking
// emitter never blocks or fails the test run.
type Emitter interface {
	PhaseStarted(phase types.Phase)
	StepStarted(label, name string)
	StepEnded(result *types.StepResult)
	PhaseEnded(report *types.PhaseReport)
	TestEnded(verdict *types.TestVerdict)
}

// NopEmitter discards all events.
type NopEmitter struct{}

func (NopEmitter) PhaseStarted(types.Phase)      {}
func (NopEmitter) StepStarted(string, string)    {}
func (NopEmitter) StepEnded(*types.StepResult)   {}
func (NopEmitter) PhaseEnded(*types.PhaseReport) {}
func (NopEmitter) TestEnded(*types.TestVerdict)  {}

// MultiEmitter fans events out to several sinks.
type MultiEmitter []Emitter

func (m MultiEmitter) PhaseStarted(p types.Phase) {
	for _, e := range m {
		e.PhaseStarted(p)
	}
}

func (m MultiEmitter) StepStarted(label, name string) {
	for _, e := range m {
		e.StepStarted(label, name)
	}
}

func (m MultiEmitter) StepEnded(r *types.StepResult) {
	for _, e := range m {
		e.StepEnded(r)
	}
}

func (m MultiEmitter) PhaseEnded(r *types.PhaseReport) {
	for _, e := range m {
		e.PhaseEnded(r)
	}
}

func (m MultiEmitter) TestEnded(v *types.TestVerdict) {
	for _, e := range m {
		e.TestEnded(v)
	}
}

// emit shields the engine from reporter faults.
func emit(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
