// Package problem defines the capability interfaces a user-supplied
// optimization problem may implement, and Wrapper, the engine-owned value
// that holds the user problem for the life of a run and counts every
// scalar evaluation performed against it.
package problem

import "github.com/rwcarlsen/optimum"

// CostFunction evaluates the objective at param, lower is better.
type CostFunction[P any, F optimum.Float] interface {
	Cost(param P) (F, error)
}

// BulkCostFunction lets a problem evaluate many parameters at once more
// efficiently than looping Cost. It is optional; Wrapper falls back to
// calling Cost sequentially (or in parallel, see Parallel) when a problem
// does not implement it.
type BulkCostFunction[P any, F optimum.Float] interface {
	BulkCost(params []P) ([]F, error)
}

// Gradient computes the gradient of the objective at param.
type Gradient[P, G any] interface {
	Gradient(param P) (G, error)
}

type BulkGradient[P, G any] interface {
	BulkGradient(params []P) ([]G, error)
}

// Jacobian computes the Jacobian of a vector-valued objective at param.
type Jacobian[P, J any] interface {
	Jacobian(param P) (J, error)
}

type BulkJacobian[P, J any] interface {
	BulkJacobian(params []P) ([]J, error)
}

// Hessian computes the Hessian of the objective at param.
type Hessian[P, H any] interface {
	Hessian(param P) (H, error)
}

type BulkHessian[P, H any] interface {
	BulkHessian(params []P) ([]H, error)
}

// Operator applies a (possibly nonlinear) operator to param, used by
// solvers that work against a residual/forward-model formulation rather
// than a scalar cost.
type Operator[P, O any] interface {
	Apply(param P) (O, error)
}

type BulkOperator[P, O any] interface {
	BulkApply(params []P) ([]O, error)
}

// Anneal perturbs param at the given temperature, used by simulated
// annealing style solvers.
type Anneal[P any, F optimum.Float] interface {
	Anneal(param P, temperature F) (P, error)
}

type BulkAnneal[P any, F optimum.Float] interface {
	BulkAnneal(params []P, temperature F) ([]P, error)
}

// Parallelizer is an optional per-capability hook: when a problem
// implements it for a given capability argument, Wrapper consults it to
// decide whether a bulk call should run in parallel. Problems that don't
// implement it are treated as parallelizable (default true), matching
// SPEC_FULL.md §4.2.
type Parallelizer interface {
	Parallelize(capability optimum.CapabilityKind) bool
}

func parallelize(problem any, capability optimum.CapabilityKind) bool {
	if p, ok := problem.(Parallelizer); ok {
		return p.Parallelize(capability)
	}
	return true
}
