// Package gonummat is a dense linalg backend built on gonum.org/v1/gonum/mat,
// the modernized successor of the github.com/gonum/matrix/mat64 API the
// mesh-projection code once called directly for basis inversion. It backs
// solvers that need a real dense matrix type for the Hessian/Jacobian
// capability traits rather than a flat native slice.
package gonummat

import (
	"math/rand"

	"github.com/rwcarlsen/optimum"
	"gonum.org/v1/gonum/mat"
)

// Vec adapts *mat.VecDense to the linalg capability traits.
type Vec struct {
	V *mat.VecDense
}

func NewVec(n int, data []float64) Vec {
	return Vec{V: mat.NewVecDense(n, data)}
}

func (v Vec) Add(other Vec) (Vec, error) {
	if v.V.Len() != other.V.Len() {
		return Vec{}, optimum.NewDimensionMismatchError("Add", v.V.Len(), other.V.Len())
	}
	out := mat.NewVecDense(v.V.Len(), nil)
	out.AddVec(v.V, other.V)
	return Vec{V: out}, nil
}

func (v Vec) Sub(other Vec) (Vec, error) {
	if v.V.Len() != other.V.Len() {
		return Vec{}, optimum.NewDimensionMismatchError("Sub", v.V.Len(), other.V.Len())
	}
	out := mat.NewVecDense(v.V.Len(), nil)
	out.SubVec(v.V, other.V)
	return Vec{V: out}, nil
}

func (v Vec) Scale(factor float64) Vec {
	out := mat.NewVecDense(v.V.Len(), nil)
	out.ScaleVec(factor, v.V)
	return Vec{V: out}
}

func (v Vec) ScaledAdd(factor float64, other Vec) (Vec, error) {
	if v.V.Len() != other.V.Len() {
		return Vec{}, optimum.NewDimensionMismatchError("ScaledAdd", v.V.Len(), other.V.Len())
	}
	out := mat.NewVecDense(v.V.Len(), nil)
	out.AddScaledVec(v.V, factor, other.V)
	return Vec{V: out}, nil
}

func (v Vec) ScaledSub(factor float64, other Vec) (Vec, error) {
	return v.ScaledAdd(-factor, other)
}

func (v Vec) Dot(other Vec) (float64, error) {
	if v.V.Len() != other.V.Len() {
		return 0, optimum.NewDimensionMismatchError("Dot", v.V.Len(), other.V.Len())
	}
	return mat.Dot(v.V, other.V), nil
}

func (v Vec) L1Norm() float64 { return mat.Norm(v.V, 1) }
func (v Vec) L2Norm() float64 { return mat.Norm(v.V, 2) }

func (v Vec) Min(other Vec) Vec {
	n := v.V.Len()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		a, b := v.V.AtVec(i), other.V.AtVec(i)
		if b < a {
			a = b
		}
		out.SetVec(i, a)
	}
	return Vec{V: out}
}

func (v Vec) Max(other Vec) Vec {
	n := v.V.Len()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		a, b := v.V.AtVec(i), other.V.AtVec(i)
		if b > a {
			a = b
		}
		out.SetVec(i, a)
	}
	return Vec{V: out}
}

func (v Vec) Signum() Vec {
	n := v.V.Len()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x := v.V.AtVec(i)
		switch {
		case x > 0:
			out.SetVec(i, 1)
		case x < 0:
			out.SetVec(i, -1)
		default:
			out.SetVec(i, 0)
		}
	}
	return Vec{V: out}
}

func (v Vec) Random(rng *rand.Rand, low, high float64) Vec {
	n := v.V.Len()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetVec(i, low+rng.Float64()*(high-low))
	}
	return Vec{V: out}
}

func (v Vec) ZeroLike() Vec { return Vec{V: mat.NewVecDense(v.V.Len(), nil)} }

// Mat adapts *mat.Dense to the matrix capability traits, the direct
// successor of mat64.Dense/mat64.Inverse as used for mesh basis inversion.
type Mat struct {
	M *mat.Dense
}

func NewMat(r, c int, data []float64) Mat {
	return Mat{M: mat.NewDense(r, c, data)}
}

func (m Mat) Transpose() Mat {
	r, c := m.M.Dims()
	out := mat.NewDense(c, r, nil)
	out.Copy(m.M.T())
	return Mat{M: out}
}

// Inv computes the matrix inverse, reporting an InverseError for a
// singular or non-square operand instead of gonum's panic-on-singular
// default.
func (m Mat) Inv() (Mat, error) {
	r, c := m.M.Dims()
	if r != c {
		return Mat{}, optimum.NewInverseError("matrix is not square")
	}
	out := mat.NewDense(r, c, nil)
	if err := out.Inverse(m.M); err != nil {
		return Mat{}, optimum.NewInverseError(err.Error())
	}
	return Mat{M: out}, nil
}

func (m Mat) Eye(n int) Mat {
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		out.Set(i, i, 1)
	}
	return Mat{M: out}
}

// Dot computes mat.vec -> vec.
func (m Mat) Dot(v Vec) (Vec, error) {
	_, c := m.M.Dims()
	if c != v.V.Len() {
		return Vec{}, optimum.NewDimensionMismatchError("Dot", c, v.V.Len())
	}
	r, _ := m.M.Dims()
	out := mat.NewVecDense(r, nil)
	out.MulVec(m.M, v.V)
	return Vec{V: out}, nil
}

// WeightedDot computes x.W.y for a square weight Mat of compatible size.
func (v Vec) WeightedDot(weight Mat, other Vec) (float64, error) {
	n := v.V.Len()
	wr, wc := weight.M.Dims()
	if wr != n || wc != n || other.V.Len() != n {
		return 0, optimum.NewDimensionMismatchError("WeightedDot", n, other.V.Len())
	}
	tmp := mat.NewVecDense(n, nil)
	tmp.MulVec(weight.M, other.V)
	return mat.Dot(v.V, tmp), nil
}
