package state

import (
	"time"

	"github.com/rwcarlsen/optimum"
)

// IterState is the workhorse state for point-to-point solvers: descent
// methods, Newton-family methods, and the line searches that sit inside
// them. P is the parameter type, G the gradient, J the Jacobian, H the
// Hessian, R the residual vector (Gauss-Newton/CG), and F the scalar float
// type.
type IterState[P, G, J, H, R any, F optimum.Float] struct {
	Param, PrevParam         P
	BestParam, PrevBestParam P
	hasParam                 bool

	Cost, PrevCost, BestCost, PrevBestCost F
	TargetCost                             F

	Gradient, PrevGradient G
	Jacobian, PrevJacobian J
	Hessian, PrevHessian   H
	InvHessian, PrevInvHessian H
	Residuals, PrevResiduals   R

	Iter         uint64
	LastBestIter uint64
	MaxIters     uint64

	counts optimum.Counts
	time   *time.Duration
	status optimum.TerminationStatus
	isBest bool
}

// New returns a fresh IterState with spec-mandated defaults: iter=0,
// max_iters=unbounded, best_cost=+Inf, target_cost=-Inf,
// status=NotTerminated.
func New[P, G, J, H, R any, F optimum.Float]() *IterState[P, G, J, H, R, F] {
	return &IterState[P, G, J, H, R, F]{
		Cost:         optimum.PosInf[F](),
		PrevCost:     optimum.PosInf[F](),
		BestCost:     optimum.PosInf[F](),
		PrevBestCost: optimum.PosInf[F](),
		TargetCost:   optimum.NegInf[F](),
		MaxIters:     ^uint64(0),
		counts:       optimum.NewCounts(),
	}
}

// WithParam sets the current parameter. This is the only supported way to
// seed Param; it is meant to be called from the closure passed to
// Executor.Configure.
func (s *IterState[P, G, J, H, R, F]) WithParam(p P) *IterState[P, G, J, H, R, F] {
	s.Param = p
	s.hasParam = true
	return s
}

// HasParam reports whether WithParam has ever been called.
func (s *IterState[P, G, J, H, R, F]) HasParam() bool { return s.hasParam }

func (s *IterState[P, G, J, H, R, F]) WithCost(c F) *IterState[P, G, J, H, R, F] {
	s.Cost = c
	return s
}

func (s *IterState[P, G, J, H, R, F]) WithTargetCost(c F) *IterState[P, G, J, H, R, F] {
	s.TargetCost = c
	return s
}

func (s *IterState[P, G, J, H, R, F]) WithMaxIters(n uint64) *IterState[P, G, J, H, R, F] {
	s.MaxIters = n
	return s
}

func (s *IterState[P, G, J, H, R, F]) WithGradient(g G) *IterState[P, G, J, H, R, F] {
	s.Gradient = g
	return s
}

func (s *IterState[P, G, J, H, R, F]) WithHessian(h H) *IterState[P, G, J, H, R, F] {
	s.Hessian = h
	return s
}

func (s *IterState[P, G, J, H, R, F]) WithInvHessian(h H) *IterState[P, G, J, H, R, F] {
	s.InvHessian = h
	return s
}

func (s *IterState[P, G, J, H, R, F]) WithResiduals(r R) *IterState[P, G, J, H, R, F] {
	s.Residuals = r
	return s
}

// Update promotes param to prev_param, applies the best-tracking rule from
// SPEC_FULL.md §3, and records whether this call produced a new best.
func (s *IterState[P, G, J, H, R, F]) Update() *IterState[P, G, J, H, R, F] {
	s.PrevParam = s.Param
	s.PrevCost = s.Cost
	s.PrevGradient = s.Gradient
	s.PrevJacobian = s.Jacobian
	s.PrevHessian = s.Hessian
	s.PrevInvHessian = s.InvHessian
	s.PrevResiduals = s.Residuals

	improved := s.Cost < s.BestCost
	bothNonFinite := !optimum.IsFinite(s.BestCost) && !optimum.IsFinite(s.Cost)
	if improved || bothNonFinite {
		s.PrevBestParam = s.BestParam
		s.PrevBestCost = s.BestCost
		s.BestParam = s.Param
		s.BestCost = s.Cost
		s.LastBestIter = s.Iter
		s.isBest = true
	} else {
		s.isBest = false
	}
	return s
}

func (s *IterState[P, G, J, H, R, F]) IncrementIter() *IterState[P, G, J, H, R, F] {
	s.Iter++
	return s
}

func (s *IterState[P, G, J, H, R, F]) GetIter() uint64 { return s.Iter }

func (s *IterState[P, G, J, H, R, F]) IsBest() bool { return s.isBest }

func (s *IterState[P, G, J, H, R, F]) Terminated() bool { return s.status.IsTerminated() }

func (s *IterState[P, G, J, H, R, F]) TerminationStatus() optimum.TerminationStatus {
	return s.status
}

func (s *IterState[P, G, J, H, R, F]) TerminateWith(reason optimum.TerminationReason) *IterState[P, G, J, H, R, F] {
	if !s.status.IsTerminated() {
		s.status = optimum.Terminated(reason)
	}
	return s
}

// CheckInternalTermination implements the engine-owned portion of
// Solver.TerminateInternal: iter >= max_iters, then best_cost <=
// target_cost.
func (s *IterState[P, G, J, H, R, F]) CheckInternalTermination() optimum.TerminationStatus {
	if s.Iter >= s.MaxIters {
		return optimum.Terminated(optimum.TerminationReason{Kind: optimum.MaxItersReached})
	}
	if s.BestCost <= s.TargetCost {
		return optimum.Terminated(optimum.TerminationReason{Kind: optimum.TargetCostReached})
	}
	return optimum.NotTerminatedStatus
}

func (s *IterState[P, G, J, H, R, F]) WithFuncCounts(counts optimum.Counts) *IterState[P, G, J, H, R, F] {
	s.counts = counts
	return s
}

func (s *IterState[P, G, J, H, R, F]) FuncCounts() optimum.Counts { return s.counts }

func (s *IterState[P, G, J, H, R, F]) WithTime(d time.Duration) *IterState[P, G, J, H, R, F] {
	s.time = &d
	return s
}

func (s *IterState[P, G, J, H, R, F]) Time() *time.Duration { return s.time }

// BestCostFloat returns BestCost widened to float64, for sinks (metrics,
// logging) that need a backend-agnostic scalar regardless of F.
func (s *IterState[P, G, J, H, R, F]) BestCostFloat() float64 { return float64(s.BestCost) }
