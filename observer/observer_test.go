package observer

import (
	"testing"

	"github.com/rwcarlsen/optimum"
	"github.com/stretchr/testify/require"
)

type fakeObserver struct {
	initCalls int
	iterCalls int
}

func (f *fakeObserver) ObserveInit(name string, state int, kv *optimum.KV) error {
	f.initCalls++
	return nil
}

func (f *fakeObserver) ObserveIter(state int, kv *optimum.KV) error {
	f.iterCalls++
	return nil
}

func TestRegistryAlwaysMode(t *testing.T) {
	r := NewRegistry[int]()
	obs := &fakeObserver{}
	r.Add(obs, AlwaysMode())

	require.NoError(t, r.Init("solver", 0, nil))
	for i := uint64(1); i <= 5; i++ {
		require.NoError(t, r.Iter(i, false, 0, nil))
	}
	require.Equal(t, 1, obs.initCalls)
	require.Equal(t, 5, obs.iterCalls)
}

func TestRegistryEveryMode(t *testing.T) {
	r := NewRegistry[int]()
	obs := &fakeObserver{}
	r.Add(obs, EveryMode(5))

	for i := uint64(1); i <= 37; i++ {
		require.NoError(t, r.Iter(i, false, 0, nil))
	}
	require.Equal(t, 7, obs.iterCalls, "floor(37/5) == 7")
}

func TestRegistryNewBestMode(t *testing.T) {
	r := NewRegistry[int]()
	obs := &fakeObserver{}
	r.Add(obs, NewBestMode())

	bests := []bool{true, false, true, true, false}
	for i, b := range bests {
		require.NoError(t, r.Iter(uint64(i+1), b, 0, nil))
	}
	require.Equal(t, 3, obs.iterCalls)
}

func TestRegistryOrderPreserved(t *testing.T) {
	r := NewRegistry[int]()
	var order []int
	mkObs := func(id int) *orderObserver { return &orderObserver{id: id, order: &order} }
	r.Add(mkObs(1), AlwaysMode())
	r.Add(mkObs(2), AlwaysMode())
	r.Add(mkObs(3), AlwaysMode())

	require.NoError(t, r.Iter(1, false, 0, nil))
	require.Equal(t, []int{1, 2, 3}, order)
}

type orderObserver struct {
	id    int
	order *[]int
}

func (o *orderObserver) ObserveInit(name string, state int, kv *optimum.KV) error { return nil }
func (o *orderObserver) ObserveIter(state int, kv *optimum.KV) error {
	*o.order = append(*o.order, o.id)
	return nil
}

type erroringObserver struct{}

func (erroringObserver) ObserveInit(name string, state int, kv *optimum.KV) error { return nil }
func (erroringObserver) ObserveIter(state int, kv *optimum.KV) error {
	return errObserve
}

var errObserve = &optimum.IOError{Op: "test"}

func TestRegistryErrorAborts(t *testing.T) {
	r := NewRegistry[int]()
	r.Add(erroringObserver{}, AlwaysMode())
	err := r.Iter(1, false, 0, nil)
	require.Error(t, err)
}
