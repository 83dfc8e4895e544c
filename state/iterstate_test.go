package state

import (
	"math"
	"testing"

	"github.com/rwcarlsen/optimum"
	"github.com/stretchr/testify/require"
)

type vec = []float64

func TestIterStateBestTrackingFiniteWins(t *testing.T) {
	s := New[vec, vec, vec, vec, vec, float64]()
	require.True(t, math.IsInf(s.BestCost, 1))

	s.Param = vec{1, 1}
	s.Cost = 10
	s.Update()
	require.Equal(t, vec{1, 1}, s.BestParam)
	require.Equal(t, 10.0, s.BestCost)
	require.True(t, s.IsBest())

	s.Param = vec{2, 2}
	s.Cost = 11
	s.Update()
	require.Equal(t, vec{1, 1}, s.BestParam)
	require.Equal(t, 10.0, s.BestCost)
	require.False(t, s.IsBest())
}

func TestIterStateBestTrackingNonFiniteLastWins(t *testing.T) {
	s := New[vec, vec, vec, vec, vec, float64]()
	s.Param = vec{0, 0}
	s.Update()
	require.True(t, math.IsInf(s.BestCost, 1))
	require.True(t, s.IsBest(), "first non-finite cost must count as an improvement")

	s.Param = vec{1, 1}
	s.Cost = math.Inf(1)
	s.Update()
	require.Equal(t, vec{1, 1}, s.BestParam, "last non-finite wins when all costs are non-finite")
}

func TestIterStateTerminationLatchIsIdempotent(t *testing.T) {
	s := New[vec, vec, vec, vec, vec, float64]()
	s.TerminateWith(optimum.TerminationReason{Kind: optimum.MaxItersReached})
	require.True(t, s.Terminated())

	s.TerminateWith(optimum.TerminationReason{Kind: optimum.Timeout})
	reason, ok := s.TerminationStatus().Reason()
	require.True(t, ok)
	require.Equal(t, "MaxItersReached", reason.String())
}

func TestIterStateInternalTermination(t *testing.T) {
	s := New[vec, vec, vec, vec, vec, float64]()
	s.MaxIters = 3
	s.Iter = 3
	status := s.CheckInternalTermination()
	require.True(t, status.IsTerminated())
	reason, _ := status.Reason()
	require.Equal(t, "MaxItersReached", reason.String())

	s2 := New[vec, vec, vec, vec, vec, float64]()
	s2.TargetCost = 1.0
	s2.BestCost = 0.5
	status2 := s2.CheckInternalTermination()
	reason2, _ := status2.Reason()
	require.Equal(t, "TargetCostReached", reason2.String())
}
