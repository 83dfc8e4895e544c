// Package executor assembles a Problem wrapper, a Solver, a State, an
// observer registry, and an optional checkpoint into the engine's main
// driver loop.
package executor

import (
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rwcarlsen/optimum"
	"github.com/rwcarlsen/optimum/checkpoint"
	"github.com/rwcarlsen/optimum/observer"
	"github.com/rwcarlsen/optimum/problem"
	"github.com/rwcarlsen/optimum/solver"
	"github.com/rwcarlsen/optimum/state"
)

// OptimizationResult owns the problem, solver, and final state on return
// from Run.
type OptimizationResult[O, S, St any] struct {
	Problem O
	Solver  S
	State   St
}

// Reporter is the subset of a State's methods Summary needs to render a
// human-readable report.
type Reporter interface {
	GetIter() uint64
	TerminationStatus() optimum.TerminationStatus
	FuncCounts() optimum.Counts
	BestCostFloat() float64
}

// Summary renders a short human-readable report: termination reason,
// iteration count, best cost, and evaluation counts.
func Summary[O, S any, St Reporter](r OptimizationResult[O, S, St]) string {
	reason, _ := r.State.TerminationStatus().Reason()
	s := "iterations=" + strconv.FormatUint(r.State.GetIter(), 10) +
		" best_cost=" + strconv.FormatFloat(r.State.BestCostFloat(), 'g', -1, 64) +
		" reason=" + reason.String()
	for _, kind := range []optimum.CapabilityKind{optimum.CapCost, optimum.CapGradient, optimum.CapJacobian, optimum.CapHessian, optimum.CapOperator, optimum.CapAnneal} {
		if n := r.State.FuncCounts().Get(kind); n > 0 {
			s += " " + string(kind) + "=" + strconv.FormatUint(n, 10)
		}
	}
	return s
}

// Executor drives the main optimization loop: init, then repeated
// next_iter/update/terminate/checkpoint/observe cycles until a
// TerminationReason is latched.
type Executor[O any, S solver.Solver[O, St], St state.State[St]] struct {
	wrapper    *problem.Wrapper[O]
	solverImpl S
	initState  St

	timeout    time.Duration
	hasTimeout bool

	observers  *observer.Registry[St]
	checkpoint checkpoint.Checkpoint[S, St]
	cpMode     checkpoint.Mode
}

// New builds an Executor around problem and solver, with a zeroed
// evaluation-counter wrapper and the given initial state (typically
// state.New[...]() or state.NewPopulation[...]()).
func New[O any, S solver.Solver[O, St], St state.State[St]](p O, sv S, initState St) *Executor[O, S, St] {
	return &Executor[O, S, St]{
		wrapper:    problem.New(p),
		solverImpl: sv,
		initState:  initState,
		observers:  observer.NewRegistry[St](),
		cpMode:     checkpoint.NeverMode(),
	}
}

// Configure passes the default state through fn, the sole mechanism for
// seeding Param, MaxIters, TargetCost, and any seed gradients/Hessians.
func (e *Executor[O, S, St]) Configure(fn func(St) St) *Executor[O, S, St] {
	e.initState = fn(e.initState)
	return e
}

// Timeout sets a wall-clock cap checked after each iteration.
func (e *Executor[O, S, St]) Timeout(d time.Duration) *Executor[O, S, St] {
	e.timeout = d
	e.hasTimeout = d > 0
	return e
}

// AddObserver appends an observer under the given mode.
func (e *Executor[O, S, St]) AddObserver(o observer.Observer[St], mode observer.Mode) *Executor[O, S, St] {
	e.observers.Add(o, mode)
	return e
}

// Checkpointing installs cp, saved at the given mode's cadence.
func (e *Executor[O, S, St]) Checkpointing(cp checkpoint.Checkpoint[S, St], mode checkpoint.Mode) *Executor[O, S, St] {
	e.checkpoint = cp
	e.cpMode = mode
	return e
}

// Parallel enables parallel bulk dispatch on the underlying problem
// wrapper.
func (e *Executor[O, S, St]) Parallel(enabled bool) *Executor[O, S, St] {
	e.wrapper.Parallel = enabled
	return e
}

// installInterruptHandler arms a process-wide SIGINT/SIGTERM/SIGHUP
// listener and returns a function reporting whether it has fired, plus a
// cleanup to disarm it. Only one handler is ever active per process at a
// time is not assumed; each Run installs and tears down its own.
func installInterruptHandler() (interrupted func() bool, stop func()) {
	var flag int32
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	go func() {
		select {
		case <-ch:
			atomic.StoreInt32(&flag, 1)
		case <-done:
		}
	}()
	return func() bool { return atomic.LoadInt32(&flag) == 1 }, func() {
		signal.Stop(ch)
		close(done)
	}
}

// Run executes the main loop and returns the OptimizationResult, or an
// error describing an unrecoverable failure. See SPEC_FULL.md §4.8 for the
// exact loop order this follows.
func (e *Executor[O, S, St]) Run() (OptimizationResult[O, S, St], error) {
	var zero OptimizationResult[O, S, St]

	st := e.initState
	sv := e.solverImpl

	interrupted, stopInterrupt := installInterruptHandler()
	defer stopInterrupt()

	resumed := false
	if e.checkpoint != nil {
		loadedSolver, loadedState, ok, err := e.checkpoint.Load()
		if err != nil {
			return zero, err
		}
		if ok {
			sv, st = loadedSolver, loadedState
			resumed = true
		}
	}

	start := time.Now()

	var initKV *optimum.KV
	if !resumed || st.GetIter() == 0 {
		var err error
		st, initKV, err = sv.Init(e.wrapper, st)
		if err != nil {
			return zero, e.convertOrPropagate(err, st)
		}
	}

	st = st.WithFuncCounts(e.wrapper.Counts()).WithTime(time.Since(start))
	if err := e.observers.Init(sv.Name(), st, initKV); err != nil {
		return zero, err
	}

	for {
		nextSt, iterKV, err := sv.NextIter(e.wrapper, st)
		if err != nil {
			converted, convErr := e.convertOrPropagateTerminal(err, st)
			if convErr != nil {
				return zero, convErr
			}
			nextSt = converted
			iterKV = nil
		}
		st = nextSt
		st = st.Update()
		st = st.IncrementIter()
		st = st.WithFuncCounts(e.wrapper.Counts()).WithTime(time.Since(start))

		candidates := []optimum.TerminationStatus{}
		if st.Terminated() {
			// NextIter's own error may already have latched a graceful
			// SolverExit via convertOrPropagateTerminal.
			candidates = append(candidates, st.TerminationStatus())
		}
		if interrupted() {
			candidates = append(candidates, optimum.Terminated(optimum.TerminationReason{Kind: optimum.Interrupt}))
		}
		if e.hasTimeout && time.Since(start) >= e.timeout {
			candidates = append(candidates, optimum.Terminated(optimum.TerminationReason{Kind: optimum.Timeout}))
		}
		if status := st.CheckInternalTermination(); status.IsTerminated() {
			candidates = append(candidates, status)
		} else if status := sv.Terminate(st); status.IsTerminated() {
			candidates = append(candidates, status)
		}

		final := optimum.FirstTermination(candidates...)
		if final.IsTerminated() {
			reason, _ := final.Reason()
			st = st.TerminateWith(reason)

			if e.checkpoint != nil {
				if err := e.checkpoint.Save(sv, st); err != nil {
					return zero, err
				}
			}
			if err := e.observers.Iter(st.GetIter(), st.IsBest(), st, iterKV); err != nil {
				return zero, err
			}
			break
		}

		if e.checkpoint != nil && e.cpMode.Matches(st.GetIter()) {
			if err := e.checkpoint.Save(sv, st); err != nil {
				return zero, err
			}
		}

		if err := e.observers.Iter(st.GetIter(), st.IsBest(), st, iterKV); err != nil {
			return zero, err
		}
	}

	return OptimizationResult[O, S, St]{Problem: e.wrapper.Problem, Solver: sv, State: st}, nil
}

// convertOrPropagate implements SPEC_FULL.md §7's propagation policy: a
// ConditionViolatedError raised by Init becomes a graceful SolverExit only
// when the state already has a usable (finite) best cost; Init runs before
// any Update call ever establishes one, so it always propagates.
func (e *Executor[O, S, St]) convertOrPropagate(err error, st St) error {
	return err
}

// convertOrPropagateTerminal converts a ConditionViolatedError raised
// during NextIter into a graceful SolverExit when st already carries a
// usable best, else returns the error unchanged for the caller to
// propagate.
func (e *Executor[O, S, St]) convertOrPropagateTerminal(err error, st St) (St, error) {
	var cv *optimum.ConditionViolatedError
	if bc, ok := any(st).(interface{ BestCostFloat() float64 }); ok && errors.As(err, &cv) && optimum.IsFinite(bc.BestCostFloat()) {
		return st.TerminateWith(optimum.NewSolverExit(cv.Condition)), nil
	}
	return st, err
}
