// Package linesearch implements one-dimensional step-size sub-solvers —
// backtracking and More-Thuente-style bracketing — sharing the
// solver.Solver[O,St] contract used by the rest of the engine. A line
// search is itself a nested solver: descent methods such as
// steepestdescent drive one to completion on every outer iteration,
// lending it the same *problem.Wrapper so evaluation counts accumulate
// into the outer run's totals (SPEC_FULL.md §4.3's lending mechanism).
//
// Grounded on the Rust source's src/solver/linesearch/backtracking.rs and
// src/solver/linesearch/morethuente.rs (the struct fields: rho, mu, delta,
// alpha/alpha_l/alpha_u/alpha_min/alpha_max) and its
// src/solver/linesearch/condition.rs acceptance conditions.
package linesearch

import (
	"github.com/rwcarlsen/optimum"
	"github.com/rwcarlsen/optimum/linalg"
	"github.com/rwcarlsen/optimum/problem"
	"github.com/rwcarlsen/optimum/state"
)

// Problem is the capability set a line search needs from the problem it
// is run against: a scalar cost and its gradient, both at the same
// parameter type P.
type Problem[P any, F optimum.Float] interface {
	problem.CostFunction[P, F]
	problem.Gradient[P, P]
}

// Vector is the capability set a line search needs from its parameter
// type: it must support the fused scaled step used to build trial points
// and the dot product used to evaluate the acceptance conditions. It is
// self-referential (P constrained by an interface parameterized by P) the
// same way state.State[St] ties a concrete state type to its own methods.
type Vector[P any, F optimum.Float] interface {
	linalg.ScaledAdder[P, F]
	linalg.Dotter[P, P, F]
}

// The state a line search drives is
// *state.IterState[P, P, struct{}, struct{}, struct{}, F]: a 1-D IterState
// whose gradient type equals its parameter type, with the Jacobian/
// Hessian/Residuals slots unused.


// NewState returns a fresh line-search state seeded with the current
// point, cost, and gradient a descent method is stepping away from.
func NewState[P any, F optimum.Float](param P, cost F, grad P) *state.IterState[P, P, struct{}, struct{}, struct{}, F] {
	return state.New[P, P, struct{}, struct{}, struct{}, F]().
		WithParam(param).WithCost(cost).WithGradient(grad)
}
