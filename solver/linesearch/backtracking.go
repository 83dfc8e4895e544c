package linesearch

import (
	"github.com/rwcarlsen/optimum"
	"github.com/rwcarlsen/optimum/problem"
	"github.com/rwcarlsen/optimum/solver"
	"github.com/rwcarlsen/optimum/state"
)

// Backtracking shrinks the step size by a fixed contraction factor until
// its acceptance Condition is met, grounded on the Rust source's
// BacktrackingLineSearch (constructor defaults: rho 0.9, strong Wolfe
// condition with mu/eta 0.0001/0.9).
type Backtracking[O Problem[P, F], P Vector[P, F], F optimum.Float] struct {
	solver.Defaults[O, *state.IterState[P, P, struct{}, struct{}, struct{}, F]]

	// Rho is the contraction factor applied to alpha every iteration;
	// must be in (0, 1).
	Rho F
	// Condition is the acceptance criterion checked after each trial.
	Condition Condition[F]
	// InitialAlpha is the starting step size; must be > 0.
	InitialAlpha F

	searchDirection    P
	hasSearchDirection bool

	initParam P
	initCost  F
	initGrad  P

	alpha F
}

// NewBacktracking returns a Backtracking line search with the Rust
// source's defaults: rho=0.9, strong Wolfe condition (1e-4, 0.9), initial
// alpha 1.0.
func NewBacktracking[O Problem[P, F], P Vector[P, F], F optimum.Float]() *Backtracking[O, P, F] {
	cond, _ := NewStrongWolfeCondition[F](1e-4, 0.9)
	return &Backtracking[O, P, F]{
		Rho:          0.9,
		Condition:    cond,
		InitialAlpha: 1.0,
	}
}

// SetSearchDirection sets the direction to step along; required before
// Init.
func (b *Backtracking[O, P, F]) SetSearchDirection(d P) *Backtracking[O, P, F] {
	b.searchDirection = d
	b.hasSearchDirection = true
	return b
}

func (b *Backtracking[O, P, F]) Name() string { return "backtracking" }

// Init reads the starting point/cost/gradient off st and validates the
// search direction was set and is, in fact, a descent direction.
func (b *Backtracking[O, P, F]) Init(w *problem.Wrapper[O], st *state.IterState[P, P, struct{}, struct{}, struct{}, F]) (*state.IterState[P, P, struct{}, struct{}, struct{}, F], *optimum.KV, error) {
	if !b.hasSearchDirection {
		return st, nil, optimum.NewNotInitializedError("SearchDirection")
	}
	if b.Rho <= 0 || b.Rho >= 1 {
		return st, nil, optimum.NewConditionViolatedError("Backtracking: rho must be in (0, 1)")
	}
	if b.InitialAlpha <= 0 {
		return st, nil, optimum.NewConditionViolatedError("Backtracking: initial alpha must be > 0")
	}

	b.initParam = st.Param
	b.initCost = st.Cost
	b.initGrad = st.Gradient

	sd, err := b.initGrad.Dot(b.searchDirection)
	if err != nil {
		return st, nil, err
	}
	if sd >= 0 {
		return st, nil, optimum.NewConditionViolatedError("Backtracking: search direction is not a descent direction")
	}

	b.alpha = b.InitialAlpha
	return st, nil, nil
}

// NextIter takes one contraction step: evaluate the trial point, contract
// alpha by Rho for next time.
func (b *Backtracking[O, P, F]) NextIter(w *problem.Wrapper[O], st *state.IterState[P, P, struct{}, struct{}, struct{}, F]) (*state.IterState[P, P, struct{}, struct{}, struct{}, F], *optimum.KV, error) {
	trial, err := b.initParam.ScaledAdd(b.alpha, b.searchDirection)
	if err != nil {
		return st, nil, err
	}

	cost, err := problem.Cost[O, P, F](w, trial)
	if err != nil {
		return st, nil, err
	}

	var curGrad P
	if b.Condition.RequiresCurGrad() {
		curGrad, err = problem.Grad[O, P, P](w, trial)
		if err != nil {
			return st, nil, err
		}
	}

	st.Param = trial
	st.Cost = cost
	st.Gradient = curGrad

	b.alpha *= b.Rho

	kv := optimum.NewKV().With("alpha", optimum.FloatValue(float64(b.alpha)))
	return st, kv, nil
}

// Terminate reports SolverConverged once Condition is satisfied at the
// current trial.
func (b *Backtracking[O, P, F]) Terminate(st *state.IterState[P, P, struct{}, struct{}, struct{}, F]) optimum.TerminationStatus {
	initDot, err := b.initGrad.Dot(b.searchDirection)
	if err != nil {
		return optimum.NotTerminatedStatus
	}

	var curDirDot F
	if b.Condition.RequiresCurGrad() {
		curDirDot, err = st.Gradient.Dot(b.searchDirection)
		if err != nil {
			return optimum.NotTerminatedStatus
		}
	}

	if b.Condition.Eval(st.Cost, b.initCost, initDot, curDirDot, b.lastAlpha()) {
		return optimum.Terminated(optimum.TerminationReason{Kind: optimum.SolverConverged})
	}
	return optimum.NotTerminatedStatus
}

// lastAlpha returns the alpha value used to produce the current trial
// point (alpha was already contracted by Rho for the next call inside
// NextIter, so it is recovered by dividing back out).
func (b *Backtracking[O, P, F]) lastAlpha() F {
	return b.alpha / b.Rho
}
