package engine

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/bench-labs/rig-acceptor/types"
)

// TestCase is the contract a test object must satisfy. Setup is the one
// required phase; the optional phases are discovered once at orchestration
// start via the capability interfaces below. Each phase method is asked for
// its action list exactly once per run.
type TestCase interface {
	Name() string
	Setup() []types.Node
}

// HasPre marks a test case with a preparation phase that must succeed
// before the test is meaningful.
type HasPre interface {
	Pre() []types.Node
}

// HasPost marks a test case with success-only bookkeeping that must not
// run after a failure.
type HasPost interface {
	Post() []types.Node
}

// HasTeardown marks a test case with cleanup that runs unconditionally,
// modeling the hardware safety requirement that equipment is always
// returned to a safe state.
type HasTeardown interface {
	Teardown() []types.Node
}

// Orchestrator drives one test case through the pre → setup → post →
// teardown state machine and produces its verdict.
type Orchestrator struct {
	log      *log.Logger
	emitter  Emitter
	composer *Composer
}

// NewOrchestrator creates an orchestrator. A nil emitter disables event
// delivery.
func NewOrchestrator(logger *log.Logger, emitter Emitter) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	if emitter == nil {
		emitter = NopEmitter{}
	}
	return &Orchestrator{
		log:      logger,
		emitter:  emitter,
		composer: NewComposer(logger, emitter),
	}
}

// Run executes the test case. Failure routing:
//
//  1. PRE failure bypasses SETUP and POST entirely; their action lists are
//     never requested.
//  2. SETUP failure bypasses POST.
//  3. POST failure marks the test failed but POST's results stay recorded.
//  4. TEARDOWN always runs exactly once; its failures are recorded and
//     logged but never change the already-determined verdict.
func (o *Orchestrator) Run(tc TestCase) *types.TestVerdict {
	start := time.Now()
	failed := false

	// Capability detection happens once here, not per-call.
	pre, hasPre := tc.(HasPre)
	post, hasPost := tc.(HasPost)
	teardown, hasTeardown := tc.(HasTeardown)

	o.log.Info("test starting", "test", tc.Name(),
		"pre", hasPre, "post", hasPost, "teardown", hasTeardown)

	var phases []types.PhaseReport

	if hasPre {
		report := o.composer.RunPhase(types.PhasePre, pre.Pre())
		phases = append(phases, *report)
		if report.Outcome.Failing() {
			o.log.Error("pre phase failed, jumping to teardown", "test", tc.Name())
			failed = true
		}
	} else {
		phases = append(phases, types.PhaseReport{Phase: types.PhasePre})
	}

	if !failed {
		report := o.composer.RunPhase(types.PhaseSetup, tc.Setup())
		phases = append(phases, *report)
		if report.Outcome.Failing() {
			o.log.Error("setup phase failed, jumping to teardown", "test", tc.Name())
			failed = true
		}
	} else {
		phases = append(phases, types.PhaseReport{Phase: types.PhaseSetup})
	}

	if !failed && hasPost {
		report := o.composer.RunPhase(types.PhasePost, post.Post())
		phases = append(phases, *report)
		if report.Outcome.Failing() {
			o.log.Error("post phase failed", "test", tc.Name())
			failed = true
		}
	} else {
		phases = append(phases, types.PhaseReport{Phase: types.PhasePost})
	}

	if hasTeardown {
		report := o.composer.RunPhase(types.PhaseTeardown, teardown.Teardown())
		phases = append(phases, *report)
		if report.Outcome.Failing() {
			// Teardown failures never flip the verdict.
			o.log.Warn("teardown reported failures", "test", tc.Name())
		}
	} else {
		phases = append(phases, types.PhaseReport{Phase: types.PhaseTeardown})
	}

	verdict := &types.TestVerdict{
		Name:     tc.Name(),
		Phases:   phases,
		Start:    start,
		End:      time.Now(),
		Result:   types.OutcomePass,
		Duration: time.Since(start),
	}
	if failed {
		verdict.Result = types.OutcomeFail
	}

	o.log.Info("test finished", "test", tc.Name(), "result", verdict.Result, "duration", verdict.Duration)
	emit(func() { o.emitter.TestEnded(verdict) })
	return verdict
}
