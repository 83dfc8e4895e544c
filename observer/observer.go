// Package observer defines the Observer contract the Executor drives at
// configured cadence, and Registry, the ordered collection of observers an
// Executor consults each iteration.
package observer

import "github.com/rwcarlsen/optimum"

// Observer is any value that wants to be told about a run's progress. It
// is never called to mutate state — only to report.
type Observer[St any] interface {
	// ObserveInit is called once, after solver.Init and before the main
	// loop, with the solver's reported name and its initial KV (which
	// may be empty, never nil).
	ObserveInit(name string, state St, kv *optimum.KV) error
	// ObserveIter is called once per iteration that matches the
	// observer's Mode, after state.Update/IncrementIter and the
	// iteration's termination check.
	ObserveIter(state St, kv *optimum.KV) error
}

// ModeKind selects when a registered observer is invoked.
type ModeKind int

const (
	Never ModeKind = iota
	Always
	NewBest
	Every
)

// Mode pairs a ModeKind with the period N that Every uses.
type Mode struct {
	Kind ModeKind
	N    uint64
}

func AlwaysMode() Mode   { return Mode{Kind: Always} }
func NeverMode() Mode    { return Mode{Kind: Never} }
func NewBestMode() Mode  { return Mode{Kind: NewBest} }
func EveryMode(n uint64) Mode {
	if n == 0 {
		n = 1
	}
	return Mode{Kind: Every, N: n}
}

// matches reports whether an iteration should be observed, given the
// current iteration number and whether this iteration produced a new
// best. iter is the post-increment iteration count, matching the
// Executor's call site.
func (m Mode) matches(iter uint64, isBest bool) bool {
	switch m.Kind {
	case Always:
		return true
	case NewBest:
		return isBest
	case Every:
		return iter%m.N == 0
	default:
		return false
	}
}

type registration[St any] struct {
	observer Observer[St]
	mode     Mode
}

// Registry is an ordered sequence of observers; invocation order equals
// registration order, and an observer returning an error aborts the run
// with that error.
type Registry[St any] struct {
	regs []registration[St]
}

func NewRegistry[St any]() *Registry[St] {
	return &Registry[St]{}
}

// Add appends an observer under the given mode, returning the registry for
// chaining from an Executor builder.
func (r *Registry[St]) Add(o Observer[St], mode Mode) *Registry[St] {
	r.regs = append(r.regs, registration[St]{observer: o, mode: mode})
	return r
}

// Init invokes ObserveInit on every registered observer in order,
// regardless of mode (NewBest/Every/Never still receive the init call, per
// SPEC_FULL.md: init is unconditional — only iteration observation is
// mode-gated).
func (r *Registry[St]) Init(name string, state St, kv *optimum.KV) error {
	if kv == nil {
		kv = optimum.NewKV()
	}
	for _, reg := range r.regs {
		if err := reg.observer.ObserveInit(name, state, kv); err != nil {
			return optimum.NewIOError("observe_init", err)
		}
	}
	return nil
}

// Iter invokes ObserveIter on every registered observer whose Mode matches
// this iteration, in registration order.
func (r *Registry[St]) Iter(iter uint64, isBest bool, state St, kv *optimum.KV) error {
	if kv == nil {
		kv = optimum.NewKV()
	}
	for _, reg := range r.regs {
		if !reg.mode.matches(iter, isBest) {
			continue
		}
		if err := reg.observer.ObserveIter(state, kv); err != nil {
			return optimum.NewIOError("observe_iter", err)
		}
	}
	return nil
}
