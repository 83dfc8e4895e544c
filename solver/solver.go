// Package solver defines the Solver contract the Executor drives, plus
// Defaults, an embeddable type substituting for the trait-default methods
// a Rust Solver trait would provide.
package solver

import (
	"github.com/rwcarlsen/optimum"
	"github.com/rwcarlsen/optimum/problem"
	"github.com/rwcarlsen/optimum/state"
)

// Solver is parameterized by the problem type it needs (its required
// capability bounds are expressed by the concrete solver's own methods,
// since Go forbids type parameters on interface methods) and by the
// concrete State type St it drives.
type Solver[O any, St any] interface {
	// Name identifies the solver for observers and logs.
	Name() string

	// Init runs once before the main loop: computing an initial
	// cost/gradient, validating the state, or seeding values. Returns the
	// (possibly updated) state and an optional KV of solver-specific
	// initialization metrics.
	Init(w *problem.Wrapper[O], st St) (St, *optimum.KV, error)

	// NextIter performs exactly one algorithmic step. It receives
	// ownership of st and returns a new state plus an optional KV of
	// per-iteration metrics for observers.
	NextIter(w *problem.Wrapper[O], st St) (St, *optimum.KV, error)

	// Terminate applies solver-specific convergence checks, consulted
	// only after the engine's own iter/target-cost checks
	// (state.CheckInternalTermination) have both passed.
	Terminate(st St) optimum.TerminationStatus
}

// Defaults is embedded by solvers that have no bespoke Init or Terminate
// logic, substituting for the default trait methods a Rust Solver trait
// would supply. A solver embedding Defaults need only implement Name and
// NextIter itself.
type Defaults[O any, St any] struct{}

func (Defaults[O, St]) Init(w *problem.Wrapper[O], st St) (St, *optimum.KV, error) {
	return st, nil, nil
}

func (Defaults[O, St]) Terminate(st St) optimum.TerminationStatus {
	return optimum.NotTerminatedStatus
}

// StateOf is a named interface type with the same method set as the state
// package's State contract, for solver implementations that want to
// declare their state bound in one place. It is a defined type, not an
// alias of state.State.
type StateOf[St any] state.State[St]
