// Package state provides the concrete State implementations the executor
// drives: IterState for point-to-point solvers (descent methods, Newton
// variants, line searches) and PopulationState for population-based
// heuristics (particle swarm and friends).
package state

import (
	"time"

	"github.com/rwcarlsen/optimum"
)

// State is the contract the Executor requires from whatever state type a
// solver uses. St is the concrete pointer-receiver state type itself
// (self-referential so Update/IncrementIter/etc. can hand back the same
// concrete type instead of an erased interface).
type State[St any] interface {
	// Update is called by the Executor after each step. It promotes
	// param to prev_param, applies the best-tracking rule, and updates
	// last_best_iter. It must be idempotent-safe to call once per
	// completed iteration.
	Update() St

	// IncrementIter bumps the iteration counter by one.
	IncrementIter() St

	// GetIter returns the current iteration number.
	GetIter() uint64

	// IsBest reports whether the most recent Update call set a new best.
	IsBest() bool

	// Terminated reports whether TerminationStatus is Terminated(...).
	Terminated() bool

	// TerminationStatus returns the latched termination status.
	TerminationStatus() optimum.TerminationStatus

	// TerminateWith latches reason. Idempotent once already terminated.
	TerminateWith(reason optimum.TerminationReason) St

	// CheckInternalTermination applies the engine-owned checks (max
	// iterations reached, target cost reached) ahead of any
	// solver-specific check.
	CheckInternalTermination() optimum.TerminationStatus

	// WithFuncCounts copies the Problem wrapper's evaluation counters
	// into the state.
	WithFuncCounts(counts optimum.Counts) St

	// WithTime stamps the elapsed wall-clock duration since the run
	// started.
	WithTime(d time.Duration) St
}
