package filecheckpoint

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSolver struct {
	Name string
	Runs int
}

type fakeState struct {
	Iter uint64
	Best []float64
}

func TestLoadMissingIsNotError(t *testing.T) {
	dir := t.TempDir()
	sink := New[fakeSolver, fakeState](filepath.Join(dir, "checkpoint.gob"))

	_, _, ok, err := sink.Load()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	sink := New[fakeSolver, fakeState](filepath.Join(dir, "nested", "checkpoint.gob"))

	solver := fakeSolver{Name: "steepestdescent", Runs: 3}
	state := fakeState{Iter: 42, Best: []float64{1, 2, 3}}

	require.NoError(t, sink.Save(solver, state))

	gotSolver, gotState, ok, err := sink.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, solver, gotSolver)
	require.Equal(t, state, gotState)
}

func TestRunIDPersistsAcrossSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkpoint.gob")
	sink := New[fakeSolver, fakeState](path)
	firstID := sink.RunID()

	require.NoError(t, sink.Save(fakeSolver{Name: "a"}, fakeState{Iter: 1}))

	resumed := New[fakeSolver, fakeState](path)
	require.NotEqual(t, firstID, resumed.RunID(), "a fresh Sink generates its own ID before Load")

	_, _, ok, err := resumed.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, firstID, resumed.RunID(), "Load should adopt the saved snapshot's run ID")

	require.NoError(t, resumed.Save(fakeSolver{Name: "b"}, fakeState{Iter: 2}))
	again := New[fakeSolver, fakeState](path)
	_, _, ok, err = again.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, firstID, again.RunID(), "the run ID should survive a second save under the same run")
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkpoint.gob")
	sink := New[fakeSolver, fakeState](path)

	require.NoError(t, sink.Save(fakeSolver{Name: "a"}, fakeState{Iter: 1}))
	require.NoError(t, sink.Save(fakeSolver{Name: "b"}, fakeState{Iter: 2}))

	gotSolver, gotState, ok, err := sink.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "b", gotSolver.Name)
	require.Equal(t, uint64(2), gotState.Iter)
}
