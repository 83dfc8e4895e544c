// Package steepestdescent implements gradient descent: each outer
// iteration moves along the negative gradient, choosing the step size by
// driving a nested line search (solver/linesearch) to convergence.
// Grounded on the Rust source's src/gradientdescent.rs, generalized from
// its hard-coded BacktrackingLineSearch gamma-update variant to any
// LineSearch implementation.
package steepestdescent

import (
	"github.com/rwcarlsen/optimum"
	"github.com/rwcarlsen/optimum/linalg"
	"github.com/rwcarlsen/optimum/problem"
	"github.com/rwcarlsen/optimum/solver"
	"github.com/rwcarlsen/optimum/solver/linesearch"
	"github.com/rwcarlsen/optimum/state"
)

// The state SteepestDescent drives is
// *state.IterState[P, P, struct{}, struct{}, struct{}, F]: an IterState
// whose gradient type equals its parameter type.


// Vector is the parameter-type capability set: negation (via Scale(-1))
// plus everything the nested line search needs.
type Vector[P any, F optimum.Float] interface {
	linesearch.Vector[P, F]
	linalg.Scaler[P, F]
}

// LineSearch is the contract a nested step-size solver must satisfy: the
// ordinary Solver contract plus a way to point it along this iteration's
// descent direction. LS is self-referential so SetSearchDirection can
// hand back the concrete line search type instead of an erased
// interface, the same way state.State[St] ties a state type to its own
// methods.
type LineSearch[LS any, O any, P any, F optimum.Float] interface {
	Name() string
	Init(w *problem.Wrapper[O], st *state.IterState[P, P, struct{}, struct{}, struct{}, F]) (*state.IterState[P, P, struct{}, struct{}, struct{}, F], *optimum.KV, error)
	NextIter(w *problem.Wrapper[O], st *state.IterState[P, P, struct{}, struct{}, struct{}, F]) (*state.IterState[P, P, struct{}, struct{}, struct{}, F], *optimum.KV, error)
	Terminate(st *state.IterState[P, P, struct{}, struct{}, struct{}, F]) optimum.TerminationStatus
	SetSearchDirection(d P) LS
}

// SteepestDescent moves along the negative gradient every iteration.
type SteepestDescent[O linesearch.Problem[P, F], P Vector[P, F], F optimum.Float, LS LineSearch[LS, O, P, F]] struct {
	solver.Defaults[O, *state.IterState[P, P, struct{}, struct{}, struct{}, F]]

	// NewLineSearch builds a fresh, unconfigured line search for each
	// outer iteration; SteepestDescent calls SetSearchDirection on it
	// before driving it to convergence.
	NewLineSearch func() LS

	// MaxLineSearchIters bounds the nested line search's own inner
	// loop, since it is driven directly rather than through a nested
	// Executor (package solver cannot import executor without an import
	// cycle).
	MaxLineSearchIters uint64

	// GradientTol declares convergence once the gradient's L2 norm
	// drops below this threshold.
	GradientTol F
}

// New returns a SteepestDescent with a gradient tolerance of 1e-6 and up
// to 100 nested line search iterations per outer step.
func New[O linesearch.Problem[P, F], P Vector[P, F], F optimum.Float, LS LineSearch[LS, O, P, F]](newLineSearch func() LS) *SteepestDescent[O, P, F, LS] {
	return &SteepestDescent[O, P, F, LS]{
		NewLineSearch:      newLineSearch,
		MaxLineSearchIters: 100,
		GradientTol:        1e-6,
	}
}

func (d *SteepestDescent[O, P, F, LS]) Name() string { return "steepestdescent" }

// Init computes the cost and gradient at the caller-provided starting
// point.
func (d *SteepestDescent[O, P, F, LS]) Init(w *problem.Wrapper[O], st *state.IterState[P, P, struct{}, struct{}, struct{}, F]) (*state.IterState[P, P, struct{}, struct{}, struct{}, F], *optimum.KV, error) {
	if !st.HasParam() {
		return st, nil, optimum.NewNotInitializedError("Param")
	}
	cost, err := problem.Cost[O, P, F](w, st.Param)
	if err != nil {
		return st, nil, err
	}
	grad, err := problem.Grad[O, P, P](w, st.Param)
	if err != nil {
		return st, nil, err
	}
	st.Cost = cost
	st.Gradient = grad
	return st, nil, nil
}

// NextIter drives a fresh line search along the negative gradient to
// convergence, lending it the same *problem.Wrapper so its evaluations
// accrue into the outer run's counts, then adopts its final point.
func (d *SteepestDescent[O, P, F, LS]) NextIter(w *problem.Wrapper[O], st *state.IterState[P, P, struct{}, struct{}, struct{}, F]) (*state.IterState[P, P, struct{}, struct{}, struct{}, F], *optimum.KV, error) {
	direction := st.Gradient.Scale(-1)

	ls := d.NewLineSearch()
	ls.SetSearchDirection(direction)

	lsState := linesearch.NewState[P, F](st.Param, st.Cost, st.Gradient).WithMaxIters(d.MaxLineSearchIters)
	lsState, _, err := ls.Init(w.Lend(), lsState)
	if err != nil {
		return st, nil, err
	}

	for {
		lsState, _, err = ls.NextIter(w.Lend(), lsState)
		if err != nil {
			return st, nil, err
		}
		lsState = lsState.Update().IncrementIter()

		if lsState.CheckInternalTermination().IsTerminated() || ls.Terminate(lsState).IsTerminated() {
			break
		}
	}

	st.Param = lsState.Param
	st.Cost = lsState.Cost
	st.Gradient = lsState.Gradient

	kv := optimum.NewKV().With("linesearch", optimum.StringValue(ls.Name()))
	if normer, ok := any(st.Gradient).(linalg.L2Normer[P, F]); ok {
		kv = kv.With("gradnorm", optimum.FloatValue(float64(normer.L2Norm())))
	}
	return st, kv, nil
}

// Terminate reports SolverConverged once the gradient's L2 norm drops
// below GradientTol.
func (d *SteepestDescent[O, P, F, LS]) Terminate(st *state.IterState[P, P, struct{}, struct{}, struct{}, F]) optimum.TerminationStatus {
	if normer, ok := any(st.Gradient).(linalg.L2Normer[P, F]); ok && normer.L2Norm() < d.GradientTol {
		return optimum.Terminated(optimum.TerminationReason{Kind: optimum.SolverConverged})
	}
	return optimum.NotTerminatedStatus
}
