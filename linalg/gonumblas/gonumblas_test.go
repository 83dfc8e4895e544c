package gonumblas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVecAddSub(t *testing.T) {
	a := FromSlice([]float64{1, 2, 3})
	b := FromSlice([]float64{4, 5, 6})

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, []float64{5, 7, 9}, sum.V.Data)

	diff, err := b.Sub(a)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 3, 3}, diff.V.Data)
}

func TestVecDotAndNorms(t *testing.T) {
	a := FromSlice([]float64{3, 4})
	dot, err := a.Dot(a)
	require.NoError(t, err)
	require.Equal(t, 25.0, dot)
	require.Equal(t, 5.0, a.L2Norm())

	zero := NewVec(3)
	require.Equal(t, 0.0, zero.L2Norm())
}

func TestMatInvRoundTrip(t *testing.T) {
	m := NewMat(2, 2)
	m.M.Data = []float64{4, 7, 2, 6}
	inv, err := m.Inv()
	require.NoError(t, err)
	require.InDelta(t, 0.6, inv.M.Data[0], 1e-9)
	require.InDelta(t, -0.7, inv.M.Data[1], 1e-9)
}

func TestMatDotVec(t *testing.T) {
	m := NewMat(2, 2)
	m.M.Data = []float64{1, 0, 0, 1}
	v := FromSlice([]float64{5, 6})
	out, err := m.Dot(v)
	require.NoError(t, err)
	require.Equal(t, []float64{5, 6}, out.V.Data)
}

func TestMatInvSingularFails(t *testing.T) {
	m := NewMat(2, 2)
	_, err := m.Inv()
	require.Error(t, err)
}
