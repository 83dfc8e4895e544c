package linesearch

import "github.com/rwcarlsen/optimum"

// Condition decides whether a trial step satisfies a line search's
// acceptance criterion. Implementations take the two dot products a
// caller has already computed — initDot = initGrad.searchDirection,
// curDirDot = curGrad.searchDirection — rather than the vectors
// themselves, since every condition only ever needs the scalar
// projections. Grounded on the Rust source's
// src/solver/linesearch/condition.rs LineSearchCondition trait.
type Condition[F optimum.Float] interface {
	// Eval reports whether the condition is met at the given trial.
	Eval(curCost, initCost, initDot, curDirDot, alpha F) bool

	// RequiresCurGrad reports whether Eval needs curDirDot computed,
	// letting a line search skip an unnecessary gradient evaluation.
	RequiresCurGrad() bool
}

// ArmijoCondition is the sufficient-decrease condition alone.
type ArmijoCondition[F optimum.Float] struct {
	C F
}

// NewArmijoCondition validates c is in (0, 1).
func NewArmijoCondition[F optimum.Float](c F) (*ArmijoCondition[F], error) {
	if c <= 0 || c >= 1 {
		return nil, optimum.NewConditionViolatedError("ArmijoCondition: parameter c must be in (0, 1)")
	}
	return &ArmijoCondition[F]{C: c}, nil
}

func (a *ArmijoCondition[F]) Eval(curCost, initCost, initDot, _, alpha F) bool {
	return curCost <= initCost+a.C*alpha*initDot
}

func (a *ArmijoCondition[F]) RequiresCurGrad() bool { return false }

// WolfeCondition pairs sufficient decrease with the (weak) curvature
// condition.
type WolfeCondition[F optimum.Float] struct {
	C1, C2 F
}

// NewWolfeCondition validates 0 < c1 < c2 < 1.
func NewWolfeCondition[F optimum.Float](c1, c2 F) (*WolfeCondition[F], error) {
	if c1 <= 0 || c1 >= 1 {
		return nil, optimum.NewConditionViolatedError("WolfeCondition: parameter c1 must be in (0, 1)")
	}
	if c2 <= c1 || c2 >= 1 {
		return nil, optimum.NewConditionViolatedError("WolfeCondition: parameter c2 must be in (c1, 1)")
	}
	return &WolfeCondition[F]{C1: c1, C2: c2}, nil
}

func (w *WolfeCondition[F]) Eval(curCost, initCost, initDot, curDirDot, alpha F) bool {
	return curCost <= initCost+w.C1*alpha*initDot && curDirDot >= w.C2*initDot
}

func (w *WolfeCondition[F]) RequiresCurGrad() bool { return true }

// StrongWolfeCondition replaces Wolfe's curvature condition with its
// absolute-value form, ruling out points where the gradient norm is
// merely growing fast in the search direction's favor.
type StrongWolfeCondition[F optimum.Float] struct {
	C1, C2 F
}

// NewStrongWolfeCondition validates 0 < c1 < c2 < 1.
func NewStrongWolfeCondition[F optimum.Float](c1, c2 F) (*StrongWolfeCondition[F], error) {
	if c1 <= 0 || c1 >= 1 {
		return nil, optimum.NewConditionViolatedError("StrongWolfeCondition: parameter c1 must be in (0, 1)")
	}
	if c2 <= c1 || c2 >= 1 {
		return nil, optimum.NewConditionViolatedError("StrongWolfeCondition: parameter c2 must be in (c1, 1)")
	}
	return &StrongWolfeCondition[F]{C1: c1, C2: c2}, nil
}

func (s *StrongWolfeCondition[F]) Eval(curCost, initCost, initDot, curDirDot, alpha F) bool {
	return curCost <= initCost+s.C1*alpha*initDot && abs(curDirDot) <= s.C2*abs(initDot)
}

func (s *StrongWolfeCondition[F]) RequiresCurGrad() bool { return true }

// GoldsteinCondition brackets the decrease between two linear bounds
// instead of checking curvature directly.
type GoldsteinCondition[F optimum.Float] struct {
	C F
}

// NewGoldsteinCondition validates c is in (0, 0.5).
func NewGoldsteinCondition[F optimum.Float](c F) (*GoldsteinCondition[F], error) {
	if c <= 0 || c >= 0.5 {
		return nil, optimum.NewConditionViolatedError("GoldsteinCondition: parameter c must be in (0, 0.5)")
	}
	return &GoldsteinCondition[F]{C: c}, nil
}

func (g *GoldsteinCondition[F]) Eval(curCost, initCost, initDot, _, alpha F) bool {
	tmp := alpha * initDot
	return initCost+(1-g.C)*tmp <= curCost && curCost <= initCost+g.C*tmp
}

func (g *GoldsteinCondition[F]) RequiresCurGrad() bool { return false }

func abs[F optimum.Float](v F) F {
	if v < 0 {
		return -v
	}
	return v
}
