package linesearch

import (
	"testing"

	"github.com/rwcarlsen/optimum/linalg/nativevec"
	"github.com/rwcarlsen/optimum/problem"
	"github.com/stretchr/testify/require"
)

// quadratic is f(x) = x.x, gradient 2x, minimized at the origin — a
// convex bowl any descent direction's line search should make progress
// on.
type quadratic struct{}

func (quadratic) Cost(p nativevec.Vec[float64]) (float64, error) {
	v, err := p.Dot(p)
	return v, err
}

func (quadratic) Gradient(p nativevec.Vec[float64]) (nativevec.Vec[float64], error) {
	return p.Scale(2), nil
}

func TestArmijoConditionRejectsInvalidC(t *testing.T) {
	_, err := NewArmijoCondition[float64](0)
	require.Error(t, err)
	_, err = NewArmijoCondition[float64](1)
	require.Error(t, err)
	_, err = NewArmijoCondition[float64](0.5)
	require.NoError(t, err)
}

func TestWolfeConditionOrdering(t *testing.T) {
	_, err := NewWolfeCondition[float64](0.9, 0.1)
	require.Error(t, err, "c2 must exceed c1")
	_, err = NewWolfeCondition[float64](0.1, 0.9)
	require.NoError(t, err)
}

func TestGoldsteinConditionRange(t *testing.T) {
	_, err := NewGoldsteinCondition[float64](0.6)
	require.Error(t, err)
	_, err = NewGoldsteinCondition[float64](0.25)
	require.NoError(t, err)
}

func TestBacktrackingReducesCost(t *testing.T) {
	w := problem.New[quadratic](quadratic{})
	start := nativevec.Vec[float64]{3, 4}
	cost, err := problem.Cost[quadratic, nativevec.Vec[float64], float64](w, start)
	require.NoError(t, err)
	grad, err := problem.Grad[quadratic, nativevec.Vec[float64], nativevec.Vec[float64]](w, start)
	require.NoError(t, err)

	bls := NewBacktracking[quadratic, nativevec.Vec[float64], float64]()
	bls.SetSearchDirection(grad.Scale(-1))

	st := NewState[nativevec.Vec[float64], float64](start, cost, grad).WithMaxIters(50)
	st, _, err = bls.Init(w, st)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		var nErr error
		st, _, nErr = bls.NextIter(w, st)
		require.NoError(t, nErr)
		st = st.Update().IncrementIter()
		if bls.Terminate(st).IsTerminated() {
			break
		}
	}

	require.Less(t, st.Cost, cost)
}

func TestMoreThuenteReducesCost(t *testing.T) {
	w := problem.New[quadratic](quadratic{})
	start := nativevec.Vec[float64]{3, 4}
	cost, err := problem.Cost[quadratic, nativevec.Vec[float64], float64](w, start)
	require.NoError(t, err)
	grad, err := problem.Grad[quadratic, nativevec.Vec[float64], nativevec.Vec[float64]](w, start)
	require.NoError(t, err)

	mt := NewMoreThuente[quadratic, nativevec.Vec[float64], float64]()
	mt.SetSearchDirection(grad.Scale(-1))

	st := NewState[nativevec.Vec[float64], float64](start, cost, grad).WithMaxIters(50)
	st, _, err = mt.Init(w, st)
	require.NoError(t, err)

	terminated := false
	for i := 0; i < 50; i++ {
		var nErr error
		st, _, nErr = mt.NextIter(w, st)
		require.NoError(t, nErr)
		st = st.Update().IncrementIter()
		if mt.Terminate(st).IsTerminated() {
			terminated = true
			break
		}
	}

	require.True(t, terminated)
	require.Less(t, st.Cost, cost)
}

func TestArmijoConditionEval(t *testing.T) {
	cond, err := NewArmijoCondition[float64](1e-4)
	require.NoError(t, err)
	require.False(t, cond.RequiresCurGrad())

	// initDot = -1 (descent direction), alpha=1: threshold is
	// initCost - 1e-4.
	require.True(t, cond.Eval(9.0, 10.0, -1.0, 0, 1.0))
	require.False(t, cond.Eval(10.5, 10.0, -1.0, 0, 1.0))
}
