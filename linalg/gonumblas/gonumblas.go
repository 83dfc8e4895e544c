// Package gonumblas is a second dense backend, built directly on
// gonum.org/v1/gonum/blas/blas64 level-1/2/3 routines rather than the mat
// package's operator-overload style, the way the teacher's pop package
// drives blas64.Vector/blas64.General straight through raw BLAS calls
// instead of going through mat64's Dense wrapper. Its existence proves the
// linalg trait layer is backend-agnostic: steepestdescent and pso compile
// unchanged against either dense backend.
package gonumblas

import (
	"math"
	"math/rand"

	"github.com/rwcarlsen/optimum"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// Vec wraps a blas64.Vector with unit stride.
type Vec struct {
	V blas64.Vector
}

func NewVec(n int) Vec {
	return Vec{V: blas64.Vector{N: n, Data: make([]float64, n), Inc: 1}}
}

func FromSlice(data []float64) Vec {
	return Vec{V: blas64.Vector{N: len(data), Data: data, Inc: 1}}
}

func (v Vec) clone() Vec {
	data := make([]float64, v.V.N)
	copy(data, v.V.Data)
	return Vec{V: blas64.Vector{N: v.V.N, Data: data, Inc: 1}}
}

// Add returns v + other via Axpy(1, other, copy(v)).
func (v Vec) Add(other Vec) (Vec, error) {
	if v.V.N != other.V.N {
		return Vec{}, optimum.NewDimensionMismatchError("Add", v.V.N, other.V.N)
	}
	out := v.clone()
	blas64.Axpy(1, other.V, out.V)
	return out, nil
}

// Sub returns v - other.
func (v Vec) Sub(other Vec) (Vec, error) {
	if v.V.N != other.V.N {
		return Vec{}, optimum.NewDimensionMismatchError("Sub", v.V.N, other.V.N)
	}
	out := v.clone()
	blas64.Axpy(-1, other.V, out.V)
	return out, nil
}

func (v Vec) Scale(factor float64) Vec {
	out := v.clone()
	blas64.Scal(factor, out.V)
	return out
}

// ScaledAdd returns v + factor*other via a single Axpy call.
func (v Vec) ScaledAdd(factor float64, other Vec) (Vec, error) {
	if v.V.N != other.V.N {
		return Vec{}, optimum.NewDimensionMismatchError("ScaledAdd", v.V.N, other.V.N)
	}
	out := v.clone()
	blas64.Axpy(factor, other.V, out.V)
	return out, nil
}

func (v Vec) ScaledSub(factor float64, other Vec) (Vec, error) {
	return v.ScaledAdd(-factor, other)
}

func (v Vec) Dot(other Vec) (float64, error) {
	if v.V.N != other.V.N {
		return 0, optimum.NewDimensionMismatchError("Dot", v.V.N, other.V.N)
	}
	return blas64.Dot(v.V, other.V), nil
}

func (v Vec) L1Norm() float64 { return blas64.Asum(v.V) }
func (v Vec) L2Norm() float64 { return blas64.Nrm2(v.V) }

func (v Vec) Min(other Vec) Vec {
	out := v.clone()
	for i := range out.V.Data {
		if other.V.Data[i] < out.V.Data[i] {
			out.V.Data[i] = other.V.Data[i]
		}
	}
	return out
}

func (v Vec) Max(other Vec) Vec {
	out := v.clone()
	for i := range out.V.Data {
		if other.V.Data[i] > out.V.Data[i] {
			out.V.Data[i] = other.V.Data[i]
		}
	}
	return out
}

func (v Vec) Signum() Vec {
	out := v.clone()
	for i, x := range out.V.Data {
		switch {
		case x > 0:
			out.V.Data[i] = 1
		case x < 0:
			out.V.Data[i] = -1
		default:
			out.V.Data[i] = 0
		}
	}
	return out
}

func (v Vec) Random(rng *rand.Rand, low, high float64) Vec {
	out := NewVec(v.V.N)
	for i := range out.V.Data {
		out.V.Data[i] = low + rng.Float64()*(high-low)
	}
	return out
}

func (v Vec) ZeroLike() Vec { return NewVec(v.V.N) }

// Mat wraps a blas64.General row-major dense matrix.
type Mat struct {
	M blas64.General
}

func NewMat(rows, cols int) Mat {
	return Mat{M: blas64.General{Rows: rows, Cols: cols, Stride: cols, Data: make([]float64, rows*cols)}}
}

// Dot computes mat.vec -> vec via Gemv.
func (m Mat) Dot(v Vec) (Vec, error) {
	if m.M.Cols != v.V.N {
		return Vec{}, optimum.NewDimensionMismatchError("Dot", m.M.Cols, v.V.N)
	}
	out := NewVec(m.M.Rows)
	blas64.Gemv(blas.NoTrans, 1, m.M, v.V, 0, out.V)
	return out, nil
}

// Transpose returns the transpose of m, computed by direct index copy since
// blas64 has no in-place transpose primitive.
func (m Mat) Transpose() Mat {
	out := NewMat(m.M.Cols, m.M.Rows)
	for i := 0; i < m.M.Rows; i++ {
		for j := 0; j < m.M.Cols; j++ {
			out.M.Data[j*out.M.Stride+i] = m.M.Data[i*m.M.Stride+j]
		}
	}
	return out
}

func (m Mat) Eye(n int) Mat {
	out := NewMat(n, n)
	for i := 0; i < n; i++ {
		out.M.Data[i*out.M.Stride+i] = 1
	}
	return out
}

// Inv computes the matrix inverse via Gauss-Jordan elimination with partial
// pivoting directly on the blas64.General buffer; blas64 itself provides no
// inversion routine.
func (m Mat) Inv() (Mat, error) {
	n := m.M.Rows
	if n != m.M.Cols {
		return Mat{}, optimum.NewInverseError("matrix is not square")
	}
	aug := make([]float64, n*2*n)
	stride := 2 * n
	for i := 0; i < n; i++ {
		copy(aug[i*stride:i*stride+n], m.M.Data[i*m.M.Stride:i*m.M.Stride+n])
		aug[i*stride+n+i] = 1
	}
	for col := 0; col < n; col++ {
		pivot := col
		best := math.Abs(aug[col*stride+col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(aug[r*stride+col]); v > best {
				best = v
				pivot = r
			}
		}
		if best < 1e-300 {
			return Mat{}, optimum.NewInverseError("matrix is singular")
		}
		if pivot != col {
			for j := 0; j < stride; j++ {
				aug[col*stride+j], aug[pivot*stride+j] = aug[pivot*stride+j], aug[col*stride+j]
			}
		}
		pv := aug[col*stride+col]
		for j := 0; j < stride; j++ {
			aug[col*stride+j] /= pv
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r*stride+col]
			if factor == 0 {
				continue
			}
			for j := 0; j < stride; j++ {
				aug[r*stride+j] -= factor * aug[col*stride+j]
			}
		}
	}
	out := NewMat(n, n)
	for i := 0; i < n; i++ {
		copy(out.M.Data[i*out.M.Stride:i*out.M.Stride+n], aug[i*stride+n:i*stride+2*n])
	}
	return out, nil
}

// WeightedDot computes x.W.y for a square weight Mat of compatible size.
func (v Vec) WeightedDot(weight Mat, other Vec) (float64, error) {
	n := v.V.N
	if weight.M.Rows != n || weight.M.Cols != n || other.V.N != n {
		return 0, optimum.NewDimensionMismatchError("WeightedDot", n, other.V.N)
	}
	tmp, err := weight.Dot(other)
	if err != nil {
		return 0, err
	}
	return blas64.Dot(v.V, tmp.V), nil
}
