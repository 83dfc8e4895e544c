package linesearch

import (
	"github.com/rwcarlsen/optimum"
	"github.com/rwcarlsen/optimum/problem"
	"github.com/rwcarlsen/optimum/solver"
	"github.com/rwcarlsen/optimum/state"
)

// MoreThuente is a safeguarded bracket-and-zoom line search satisfying
// the strong Wolfe conditions. Grounded on the Rust source's
// MoreThuenteLineSearch struct shape (mu, delta, alpha/alpha_l/alpha_u/
// alpha_min/alpha_max, sd) and the auxiliary psi/psi_deriv functions its
// next_iter left commented out and unimplemented; the bracketing/zoom
// update here is a completed, working replacement for that sketch rather
// than a line-for-line port, since the Rust next_iter body was
// `unimplemented!()`.
type MoreThuente[O Problem[P, F], P Vector[P, F], F optimum.Float] struct {
	solver.Defaults[O, *state.IterState[P, P, struct{}, struct{}, struct{}, F]]

	// Mu is the sufficient-decrease constant (c1 in Nocedal & Wright).
	Mu F
	// Eta is the curvature constant (c2).
	Eta F
	// Delta expands alpha by this factor while the bracket is still
	// open; must be > 1.
	Delta F
	// AlphaMax caps how far the search may extrapolate before giving up.
	AlphaMax F

	searchDirection    P
	hasSearchDirection bool

	initParam P
	initCost  F
	initGrad  P
	sd        F // initGrad.searchDirection; must be < 0.

	alpha     F
	alphaLo   F
	costLo    F
	alphaHi   F
	bracketed bool
	converged bool
}

// NewMoreThuente returns a MoreThuente line search with standard
// defaults: mu=1e-4, eta=0.9, delta=1.1, alpha starting at 1.0, alphaMax
// 1e20.
func NewMoreThuente[O Problem[P, F], P Vector[P, F], F optimum.Float]() *MoreThuente[O, P, F] {
	return &MoreThuente[O, P, F]{
		Mu:       1e-4,
		Eta:      0.9,
		Delta:    1.1,
		AlphaMax: F(1e20),
		alpha:    1.0,
	}
}

func (m *MoreThuente[O, P, F]) SetSearchDirection(d P) *MoreThuente[O, P, F] {
	m.searchDirection = d
	m.hasSearchDirection = true
	return m
}

func (m *MoreThuente[O, P, F]) Name() string { return "morethuente" }

func (m *MoreThuente[O, P, F]) Init(w *problem.Wrapper[O], st *state.IterState[P, P, struct{}, struct{}, struct{}, F]) (*state.IterState[P, P, struct{}, struct{}, struct{}, F], *optimum.KV, error) {
	if !m.hasSearchDirection {
		return st, nil, optimum.NewNotInitializedError("SearchDirection")
	}
	if m.Delta <= 1 {
		return st, nil, optimum.NewConditionViolatedError("MoreThuente: delta must be > 1")
	}

	m.initParam = st.Param
	m.initCost = st.Cost
	m.initGrad = st.Gradient

	sd, err := m.initGrad.Dot(m.searchDirection)
	if err != nil {
		return st, nil, err
	}
	if sd >= 0 {
		return st, nil, optimum.NewConditionViolatedError("MoreThuente: search direction is not a descent direction")
	}
	m.sd = sd

	m.alphaLo, m.costLo = 0, m.initCost
	m.alphaHi = m.AlphaMax
	m.bracketed = false
	m.converged = false
	return st, nil, nil
}

// NextIter performs one bracket-or-zoom step of the safeguarded line
// search: it evaluates the trial point and either shrinks the bracket
// (sufficient decrease failed, or cost rose above the low point),
// accepts it as converged (strong Wolfe curvature satisfied), advances
// the low end of the bracket, or extrapolates further out when no
// bracket has been found yet.
func (m *MoreThuente[O, P, F]) NextIter(w *problem.Wrapper[O], st *state.IterState[P, P, struct{}, struct{}, struct{}, F]) (*state.IterState[P, P, struct{}, struct{}, struct{}, F], *optimum.KV, error) {
	if m.alpha > m.AlphaMax {
		return st, nil, optimum.NewConditionViolatedError("MoreThuente: alpha exceeded alpha_max without satisfying strong Wolfe conditions")
	}
	prevLo := m.alphaLo

	trial, err := m.initParam.ScaledAdd(m.alpha, m.searchDirection)
	if err != nil {
		return st, nil, err
	}
	cost, err := problem.Cost[O, P, F](w, trial)
	if err != nil {
		return st, nil, err
	}

	sufficientDecrease := cost <= m.initCost+m.Mu*m.alpha*m.sd
	if !sufficientDecrease || (m.bracketed && cost >= m.costLo) {
		m.alphaHi = m.alpha
		m.bracketed = true
	} else {
		grad, err := problem.Grad[O, P, P](w, trial)
		if err != nil {
			return st, nil, err
		}
		curDot, err := grad.Dot(m.searchDirection)
		if err != nil {
			return st, nil, err
		}

		if abs(curDot) <= -m.Eta*m.sd {
			st.Param = trial
			st.Cost = cost
			st.Gradient = grad
			m.converged = true
			kv := optimum.NewKV().With("alpha", optimum.FloatValue(float64(m.alpha)))
			return st, kv, nil
		}

		if curDot*(m.alphaHi-m.alphaLo) >= 0 {
			m.alphaHi = m.alphaLo
			m.bracketed = true
		}
		m.alphaLo, m.costLo = m.alpha, cost
		st.Gradient = grad
	}

	st.Param = trial
	st.Cost = cost

	var next F
	if m.bracketed {
		next = (m.alphaLo + m.alphaHi) / 2
	} else {
		next = m.alpha + m.Delta*(m.alpha-prevLo)
		if next > m.AlphaMax {
			next = m.AlphaMax
		}
	}
	m.alpha = next

	kv := optimum.NewKV().With("alpha", optimum.FloatValue(float64(m.alpha)))
	return st, kv, nil
}

func (m *MoreThuente[O, P, F]) Terminate(st *state.IterState[P, P, struct{}, struct{}, struct{}, F]) optimum.TerminationStatus {
	if m.converged {
		return optimum.Terminated(optimum.TerminationReason{Kind: optimum.SolverConverged})
	}
	return optimum.NotTerminatedStatus
}
