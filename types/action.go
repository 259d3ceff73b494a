package types

import "fmt"

// ActionFunc performs the actual unit of work for an action. It returns an
// optional diagnostic message and an error describing the failure, if any.
// The engine calls it exactly once per run.
type ActionFunc func() (string, error)

// Action is the atomic unit of test work: a named operation with a
// pass/fail outcome. Actions are built by protocol-specific factories and
// consumed once by the step composer.
type Action struct {
	Name     string
	Run      ActionFunc
	Negative bool              // expected to fail; see Outcome docs
	SubLabel string            // optional label override for nested reporting
	Metadata map[string]string // attached at construction time, passed through to reporting
}

// Node is the variant over everything a phase list may contain: a leaf
// Action, a Sequential group or a Parallel group. The step composer
// recurses over this variant.
type Node interface {
	NodeName() string
	isNode()
}

func (a *Action) NodeName() string { return a.Name }
func (a *Action) isNode()          {}

// Sequential groups child nodes under one named step and executes them
// strictly in order, short-circuiting on the first non-negative failure.
type Sequential struct {
	Name     string
	Children []Node
}

func (s *Sequential) NodeName() string { return s.Name }
func (s *Sequential) isNode()          {}

// Parallel groups child nodes under one named step and executes them all
// concurrently, joining on the slowest child. No short-circuit: partial
// results from slower children are never lost.
type Parallel struct {
	Name     string
	Children []Node
}

func (p *Parallel) NodeName() string { return p.Name }
func (p *Parallel) isNode()          {}

// STE builds a sequential step group.
func STE(name string, children ...Node) *Sequential {
	if name == "" {
		name = fmt.Sprintf("Multi-action step with %d sub-steps", len(children))
	}
	return &Sequential{Name: name, Children: children}
}

// PTE builds a parallel step group.
func PTE(name string, children ...Node) *Parallel {
	if name == "" {
		name = fmt.Sprintf("Parallel step with %d sub-steps", len(children))
	}
	return &Parallel{Name: name, Children: children}
}

// PSE is an accepted alias of PTE.
func PSE(name string, children ...Node) *Parallel {
	return PTE(name, children...)
}
