package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bench-labs/rig-acceptor/types"
)

// Composer executes the node tree of one phase and seals the resulting
// StepResults. Sequential groups short-circuit on the first non-negative
// failure; parallel groups always run every child to completion.
type Composer struct {
	log     *log.Logger
	emitter Emitter
}

// NewComposer creates a composer. A nil emitter is replaced with NopEmitter.
func NewComposer(logger *log.Logger, emitter Emitter) *Composer {
	if logger == nil {
		logger = log.Default()
	}
	if emitter == nil {
		emitter = NopEmitter{}
	}
	return &Composer{log: logger, emitter: emitter}
}

// RunPhase executes the ordered top-level nodes of a phase. The top level
// follows sequential semantics: the first failing step short-circuits the
// remainder, which are recorded as SKIP. Teardown keeps dotted numbering
// even at the top level (TEARDOWN 1.1, TEARDOWN 1.2, ...) to visually
// distinguish it as cleanup.
func (c *Composer) RunPhase(phase types.Phase, nodes []types.Node) *types.PhaseReport {
	emit(func() { c.emitter.PhaseStarted(phase) })

	prefix := phase.LabelPrefix()
	labelFor := func(i int) string {
		if phase == types.PhaseTeardown {
			return fmt.Sprintf("%s 1.%d", prefix, i+1)
		}
		return fmt.Sprintf("%s %d", prefix, i+1)
	}

	report := &types.PhaseReport{Phase: phase, Ran: true}
	shortCircuited := false
	for i, node := range nodes {
		if shortCircuited {
			report.Steps = append(report.Steps, c.skipNode(labelFor(i), node))
			continue
		}
		result := c.runNode(labelFor(i), node)
		report.Steps = append(report.Steps, result)
		if result.Outcome.Failing() {
			shortCircuited = true
		}
	}
	report.Outcome = types.FoldOutcomes(report.Steps)

	emit(func() { c.emitter.PhaseEnded(report) })
	return report
}

// runNode dispatches on the node variant.
func (c *Composer) runNode(label string, node types.Node) *types.StepResult {
	switch n := node.(type) {
	case *types.Action:
		return c.runAction(label, n)
	case *types.Sequential:
		return c.runSequential(label, n)
	case *types.Parallel:
		return c.runParallel(label, n)
	default:
		// Unknown node kinds are a harness defect, not a device failure.
		return &types.StepResult{
			Label:   label,
			Name:    node.NodeName(),
			Outcome: types.OutcomeError,
			Message: fmt.Sprintf("unsupported node type %T", node),
		}
	}
}

// runAction invokes a single action exactly once. An error return is an
// assertion failure (FAIL); a panic escaping the action is an invocation
// error (ERROR), negative or not. Negative actions invert assertion
// outcomes: an error return becomes PASS_NEG, an unexpected success
// becomes FAIL_NEG.
func (c *Composer) runAction(label string, a *types.Action) *types.StepResult {
	name := a.Name
	if a.SubLabel != "" {
		name = a.SubLabel
	}
	emit(func() { c.emitter.StepStarted(label, name) })

	start := time.Now()
	msg, err, panicked := invoke(a)
	duration := time.Since(start)

	result := &types.StepResult{
		Label:    label,
		Name:     name,
		Duration: duration,
		Metadata: a.Metadata,
	}

	switch {
	case panicked:
		result.Outcome = types.OutcomeError
		result.Message = err.Error()
	case a.Negative && err != nil:
		result.Outcome = types.OutcomePassNeg
		result.Message = err.Error()
	case a.Negative:
		result.Outcome = types.OutcomeFailNeg
		result.Message = fmt.Sprintf("negative test unexpectedly passed: %s", msg)
	case err != nil:
		result.Outcome = types.OutcomeFail
		result.Message = err.Error()
	default:
		result.Outcome = types.OutcomePass
		result.Message = msg
	}

	c.log.Debug("action finished", "label", label, "name", name, "outcome", result.Outcome, "duration", duration)
	emit(func() { c.emitter.StepEnded(result) })
	return result
}

// invoke calls the action's function, converting an escaping panic into an
// error so nothing propagates past the composer boundary.
func invoke(a *types.Action) (msg string, err error, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			panicked = true
		}
	}()
	if a.Run == nil {
		return "", fmt.Errorf("action %q has no run function", a.Name), true
	}
	msg, err = a.Run()
	return msg, err, false
}

// runSequential executes children strictly in order on the calling
// goroutine. The first child resolving to FAIL, FAIL_NEG or ERROR stops
// the remaining siblings, which are recorded as SKIP.
func (c *Composer) runSequential(label string, s *types.Sequential) *types.StepResult {
	emit(func() { c.emitter.StepStarted(label, s.Name) })
	start := time.Now()

	result := &types.StepResult{Label: label, Name: s.Name}
	shortCircuited := false
	for i, child := range s.Children {
		childLabel := fmt.Sprintf("%s.%d", label, i+1)
		if shortCircuited {
			result.Children = append(result.Children, c.skipNode(childLabel, child))
			continue
		}
		childResult := c.runNode(childLabel, child)
		result.Children = append(result.Children, childResult)
		if childResult.Outcome.Failing() {
			shortCircuited = true
		}
	}

	result.Outcome = types.FoldOutcomes(result.Children)
	result.Duration = time.Since(start)
	if result.Outcome == types.OutcomeFail {
		result.Message = firstFailureMessage(result.Children)
	}
	emit(func() { c.emitter.StepEnded(result) })
	return result
}

// runParallel dispatches every child concurrently and joins on the slowest
// one. There is no short-circuit and no cancellation between siblings;
// the fold over child outcomes is commutative, so finish order is
// irrelevant.
func (c *Composer) runParallel(label string, p *types.Parallel) *types.StepResult {
	emit(func() { c.emitter.StepStarted(label, p.Name) })
	start := time.Now()

	children := make([]*types.StepResult, len(p.Children))
	var wg sync.WaitGroup
	for i, child := range p.Children {
		wg.Add(1)
		go func(i int, child types.Node) {
			defer wg.Done()
			children[i] = c.runNode(fmt.Sprintf("%s.%d", label, i+1), child)
		}(i, child)
	}
	wg.Wait()

	result := &types.StepResult{
		Label:    label,
		Name:     p.Name,
		Outcome:  types.FoldOutcomes(children),
		Duration: time.Since(start),
		Children: children,
	}
	if result.Outcome == types.OutcomeFail {
		result.Message = firstFailureMessage(children)
	}
	emit(func() { c.emitter.StepEnded(result) })
	return result
}

// skipNode records a node (and its visible children) as SKIP without
// invoking anything.
func (c *Composer) skipNode(label string, node types.Node) *types.StepResult {
	result := &types.StepResult{
		Label:   label,
		Name:    node.NodeName(),
		Outcome: types.OutcomeSkip,
		Message: "skipped: earlier step failed",
	}
	emit(func() { c.emitter.StepEnded(result) })
	return result
}

// firstFailureMessage surfaces the first failing descendant's diagnostic
// verbatim; the original message is never replaced with a generic one.
func firstFailureMessage(children []*types.StepResult) string {
	for _, child := range children {
		if child.Outcome.Failing() {
			if child.Message != "" {
				return fmt.Sprintf("%s: %s", child.Label, child.Message)
			}
			return fmt.Sprintf("%s failed", child.Label)
		}
	}
	return ""
}
