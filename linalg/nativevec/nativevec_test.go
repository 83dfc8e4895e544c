package nativevec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVecAddSub(t *testing.T) {
	a := Vec[float64]{1, 2, 3}
	b := Vec[float64]{4, 5, 6}

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, Vec[float64]{5, 7, 9}, sum)

	diff, err := b.Sub(a)
	require.NoError(t, err)
	require.Equal(t, Vec[float64]{3, 3, 3}, diff)
}

func TestVecAddDimensionMismatch(t *testing.T) {
	a := Vec[float64]{1, 2}
	b := Vec[float64]{1, 2, 3}
	_, err := a.Add(b)
	require.Error(t, err)
}

func TestVecDotAndNorms(t *testing.T) {
	a := Vec[float64]{3, 4}
	dot, err := a.Dot(a)
	require.NoError(t, err)
	require.Equal(t, 25.0, dot)
	require.Equal(t, 5.0, a.L2Norm())
	require.Equal(t, 7.0, a.L1Norm())

	zero := Vec[float64]{0, 0, 0}
	require.Equal(t, 0.0, zero.L2Norm())
	require.Equal(t, 0.0, zero.L1Norm())
}

func TestVecScaledAddSub(t *testing.T) {
	a := Vec[float64]{1, 1}
	b := Vec[float64]{2, 2}
	out, err := a.ScaledAdd(2, b)
	require.NoError(t, err)
	require.Equal(t, Vec[float64]{5, 5}, out)

	out2, err := a.ScaledSub(2, b)
	require.NoError(t, err)
	require.Equal(t, Vec[float64]{-3, -3}, out2)
}

func TestVecSignum(t *testing.T) {
	v := Vec[float64]{-2, 0, 3}
	require.Equal(t, Vec[float64]{-1, 0, 1}, v.Signum())
}

func TestMatInvIdentity(t *testing.T) {
	m := NewMat[float64](2, 2)
	m.Set(0, 0, 1)
	m.Set(1, 1, 1)
	inv, err := m.Inv()
	require.NoError(t, err)
	require.Equal(t, 1.0, inv.At(0, 0))
	require.Equal(t, 1.0, inv.At(1, 1))
	require.Equal(t, 0.0, inv.At(0, 1))
}

func TestMatInvSingularFails(t *testing.T) {
	m := NewMat[float64](2, 2)
	_, err := m.Inv()
	require.Error(t, err)
}

func TestMatInvNonSquareFails(t *testing.T) {
	m := NewMat[float64](2, 3)
	_, err := m.Inv()
	require.Error(t, err)
}

func TestMatInvRoundTrip(t *testing.T) {
	m := NewMat[float64](2, 2)
	m.Set(0, 0, 4)
	m.Set(0, 1, 7)
	m.Set(1, 0, 2)
	m.Set(1, 1, 6)

	inv, err := m.Inv()
	require.NoError(t, err)
	require.InDelta(t, 0.6, inv.At(0, 0), 1e-9)
	require.InDelta(t, -0.7, inv.At(0, 1), 1e-9)
	require.InDelta(t, -0.2, inv.At(1, 0), 1e-9)
	require.InDelta(t, 0.4, inv.At(1, 1), 1e-9)
}
