package steepestdescent

import (
	"testing"

	"github.com/rwcarlsen/optimum"
	"github.com/rwcarlsen/optimum/executor"
	"github.com/rwcarlsen/optimum/linalg/nativevec"
	"github.com/rwcarlsen/optimum/solver/linesearch"
	"github.com/rwcarlsen/optimum/state"
	"github.com/stretchr/testify/require"
)

type point = nativevec.Vec[float64]

// rosenbrock2D is the classic banana-shaped cost function used in
// SPEC_FULL.md's S1 scenario.
type rosenbrock2D struct{}

func (rosenbrock2D) Cost(p point) (float64, error) {
	x, y := p[0], p[1]
	a, b := 1.0, 100.0
	return (a-x)*(a-x) + b*(y-x*x)*(y-x*x), nil
}

func (rosenbrock2D) Gradient(p point) (point, error) {
	x, y := p[0], p[1]
	a, b := 1.0, 100.0
	dx := -2*(a-x) - 4*b*x*(y-x*x)
	dy := 2 * b * (y - x*x)
	return point{dx, dy}, nil
}

func newSolver() *SteepestDescent[rosenbrock2D, point, float64, *linesearch.Backtracking[rosenbrock2D, point, float64]] {
	return New[rosenbrock2D, point, float64](func() *linesearch.Backtracking[rosenbrock2D, point, float64] {
		return linesearch.NewBacktracking[rosenbrock2D, point, float64]()
	})
}

func TestSteepestDescentReducesRosenbrockCost(t *testing.T) {
	sd := newSolver()

	st := state.New[point, point, struct{}, struct{}, struct{}, float64]().
		WithParam(point{-1.2, 1.0}).
		WithMaxIters(10).
		WithTargetCost(0.0)

	ex := executor.New[rosenbrock2D, *SteepestDescent[rosenbrock2D, point, float64, *linesearch.Backtracking[rosenbrock2D, point, float64]], *state.IterState[point, point, struct{}, struct{}, struct{}, float64]](
		rosenbrock2D{}, sd, st)

	result, err := ex.Run()
	require.NoError(t, err)

	initCost, _ := rosenbrock2D{}.Cost(point{-1.2, 1.0})
	require.Less(t, float64(result.State.BestCost), initCost)
	require.Greater(t, result.State.FuncCounts().Get(optimum.CapGradient), uint64(0))
	require.Greater(t, result.State.FuncCounts().Get(optimum.CapCost), uint64(10))

	reason, ok := result.State.TerminationStatus().Reason()
	require.True(t, ok)
	require.Equal(t, optimum.MaxItersReached, reason.Kind)
}
