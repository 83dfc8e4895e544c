package executor

import (
	"errors"
	"testing"

	"github.com/rwcarlsen/optimum"
	"github.com/rwcarlsen/optimum/checkpoint"
	"github.com/rwcarlsen/optimum/checkpoint/filecheckpoint"
	"github.com/rwcarlsen/optimum/observer"
	"github.com/rwcarlsen/optimum/problem"
	"github.com/rwcarlsen/optimum/solver"
	"github.com/rwcarlsen/optimum/state"
	"github.com/stretchr/testify/require"
)

type point = []float64

type St = *state.IterState[point, point, point, point, point, float64]

type fakeProblem struct{}

func (fakeProblem) Cost(p point) (float64, error) {
	return -float64(len(p)), nil
}

// countdownSolver decrements cost by one every iteration and never
// converges on its own; the engine's MaxIters check ends the run.
type countdownSolver struct {
	solver.Defaults[fakeProblem, St]
}

func (countdownSolver) Name() string { return "countdown" }

func (countdownSolver) NextIter(w *problem.Wrapper[fakeProblem], st St) (St, *optimum.KV, error) {
	cost, err := problem.Cost[fakeProblem, point, float64](w, st.Param)
	if err != nil {
		return st, nil, err
	}
	st.Cost = cost - float64(st.Iter)
	return st, optimum.NewKV().With("cost", optimum.FloatValue(float64(st.Cost))), nil
}

func newState() St {
	return state.New[point, point, point, point, point, float64]().WithParam(point{1, 2, 3}).WithMaxIters(5)
}

func TestExecutorRunsToMaxIters(t *testing.T) {
	ex := New[fakeProblem, countdownSolver, St](fakeProblem{}, countdownSolver{}, newState())
	result, err := ex.Run()
	require.NoError(t, err)
	require.Equal(t, uint64(5), result.State.GetIter())
	reason, ok := result.State.TerminationStatus().Reason()
	require.True(t, ok)
	require.Equal(t, optimum.MaxItersReached, reason.Kind)
}

func TestExecutorCounterFaithfulness(t *testing.T) {
	ex := New[fakeProblem, countdownSolver, St](fakeProblem{}, countdownSolver{}, newState())
	result, err := ex.Run()
	require.NoError(t, err)
	require.Equal(t, uint64(5), result.State.FuncCounts().Get(optimum.CapCost))
}

func TestExecutorObserverCadence(t *testing.T) {
	ex := New[fakeProblem, countdownSolver, St](fakeProblem{}, countdownSolver{}, newState())
	obs := &countingObserver{}
	ex.AddObserver(obs, observer.AlwaysMode())
	_, err := ex.Run()
	require.NoError(t, err)
	require.Equal(t, 1, obs.initCalls)
	require.Equal(t, 5, obs.iterCalls)
}

type countingObserver struct {
	initCalls int
	iterCalls int
}

func (c *countingObserver) ObserveInit(name string, st St, kv *optimum.KV) error {
	c.initCalls++
	return nil
}

func (c *countingObserver) ObserveIter(st St, kv *optimum.KV) error {
	c.iterCalls++
	return nil
}

func TestExecutorCheckpointSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	cp := filecheckpoint.New[countdownSolver, St](dir + "/run.gob")

	ex := New[fakeProblem, countdownSolver, St](fakeProblem{}, countdownSolver{}, newState())
	ex.Checkpointing(cp, checkpoint.EveryMode(2))
	result, err := ex.Run()
	require.NoError(t, err)
	require.Equal(t, uint64(5), result.State.GetIter())

	solver2, state2, ok, err := cp.Load()
	require.NoError(t, err)
	require.True(t, ok)
	_ = solver2
	require.True(t, state2.GetIter() > 0)
}

func TestExecutorTargetCostReached(t *testing.T) {
	st := state.New[point, point, point, point, point, float64]().
		WithParam(point{1, 2, 3}).
		WithMaxIters(1000).
		WithTargetCost(-100)
	ex := New[fakeProblem, countdownSolver, St](fakeProblem{}, countdownSolver{}, st)
	result, err := ex.Run()
	require.NoError(t, err)
	reason, _ := result.State.TerminationStatus().Reason()
	require.Equal(t, optimum.TargetCostReached, reason.Kind)
}

type erroringSolver struct {
	solver.Defaults[fakeProblem, St]
}

func (erroringSolver) Name() string { return "erroring" }

func (erroringSolver) NextIter(w *problem.Wrapper[fakeProblem], st St) (St, *optimum.KV, error) {
	return st, nil, errors.New("boom")
}

func TestExecutorPropagatesUnconvertedError(t *testing.T) {
	ex := New[fakeProblem, erroringSolver, St](fakeProblem{}, erroringSolver{}, newState())
	_, err := ex.Run()
	require.Error(t, err)
}
