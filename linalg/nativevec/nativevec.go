// Package nativevec is the stdlib-only linalg backend: a dense vector of
// scalars backed by a plain slice, with every math capability trait
// implemented by hand. It exists so the engine has at least one backend
// that pulls in no third-party dependency at all, exercising the same
// solver code the gonum-backed backends do.
package nativevec

import (
	"math"
	"math/rand"

	"github.com/rwcarlsen/optimum"
)

// Vec is a dense vector of F over the native slice representation.
type Vec[F optimum.Float] []F

func New[F optimum.Float](n int) Vec[F] { return make(Vec[F], n) }

func (v Vec[F]) Add(other Vec[F]) (Vec[F], error) {
	if len(v) != len(other) {
		return nil, optimum.NewDimensionMismatchError("Add", len(v), len(other))
	}
	out := make(Vec[F], len(v))
	for i := range v {
		out[i] = v[i] + other[i]
	}
	return out, nil
}

func (v Vec[F]) Sub(other Vec[F]) (Vec[F], error) {
	if len(v) != len(other) {
		return nil, optimum.NewDimensionMismatchError("Sub", len(v), len(other))
	}
	out := make(Vec[F], len(v))
	for i := range v {
		out[i] = v[i] - other[i]
	}
	return out, nil
}

func (v Vec[F]) Scale(factor F) Vec[F] {
	out := make(Vec[F], len(v))
	for i := range v {
		out[i] = v[i] * factor
	}
	return out
}

func (v Vec[F]) ScaledAdd(factor F, other Vec[F]) (Vec[F], error) {
	if len(v) != len(other) {
		return nil, optimum.NewDimensionMismatchError("ScaledAdd", len(v), len(other))
	}
	out := make(Vec[F], len(v))
	for i := range v {
		out[i] = v[i] + factor*other[i]
	}
	return out, nil
}

func (v Vec[F]) ScaledSub(factor F, other Vec[F]) (Vec[F], error) {
	if len(v) != len(other) {
		return nil, optimum.NewDimensionMismatchError("ScaledSub", len(v), len(other))
	}
	out := make(Vec[F], len(v))
	for i := range v {
		out[i] = v[i] - factor*other[i]
	}
	return out, nil
}

// Dot computes the inner product with other, returning a scalar.
func (v Vec[F]) Dot(other Vec[F]) (F, error) {
	if len(v) != len(other) {
		return 0, optimum.NewDimensionMismatchError("Dot", len(v), len(other))
	}
	var sum F
	for i := range v {
		sum += v[i] * other[i]
	}
	return sum, nil
}

func (v Vec[F]) L1Norm() F {
	var sum F
	for _, x := range v {
		if x < 0 {
			sum -= x
		} else {
			sum += x
		}
	}
	return sum
}

func (v Vec[F]) L2Norm() F {
	var sumSq F
	for _, x := range v {
		sumSq += x * x
	}
	return F(math.Sqrt(float64(sumSq)))
}

func (v Vec[F]) Min(other Vec[F]) Vec[F] {
	out := make(Vec[F], len(v))
	for i := range v {
		if other[i] < v[i] {
			out[i] = other[i]
		} else {
			out[i] = v[i]
		}
	}
	return out
}

func (v Vec[F]) Max(other Vec[F]) Vec[F] {
	out := make(Vec[F], len(v))
	for i := range v {
		if other[i] > v[i] {
			out[i] = other[i]
		} else {
			out[i] = v[i]
		}
	}
	return out
}

func (v Vec[F]) Signum() Vec[F] {
	out := make(Vec[F], len(v))
	for i, x := range v {
		switch {
		case x > 0:
			out[i] = 1
		case x < 0:
			out[i] = -1
		default:
			out[i] = 0
		}
	}
	return out
}

func (v Vec[F]) Random(rng *rand.Rand, low, high F) Vec[F] {
	out := make(Vec[F], len(v))
	for i := range out {
		out[i] = low + F(rng.Float64())*(high-low)
	}
	return out
}

func (v Vec[F]) ZeroLike() Vec[F] { return make(Vec[F], len(v)) }

// WeightedDot computes x.W.y for a square weight matrix stored
// row-major as a flat Vec[F] of length len(v)*len(other).
func (v Vec[F]) WeightedDot(weight Vec[F], other Vec[F]) (F, error) {
	n := len(v)
	if len(other) != n || len(weight) != n*n {
		return 0, optimum.NewDimensionMismatchError("WeightedDot", n, len(other))
	}
	var total F
	for i := 0; i < n; i++ {
		var rowDot F
		for j := 0; j < n; j++ {
			rowDot += weight[i*n+j] * other[j]
		}
		total += v[i] * rowDot
	}
	return total, nil
}

// Mat is a dense Rows x Cols row-major matrix of F, the native backend's
// counterpart to Vec for the Inv/Transpose traits.
type Mat[F optimum.Float] struct {
	Rows, Cols int
	Data       []F
}

func NewMat[F optimum.Float](rows, cols int) *Mat[F] {
	return &Mat[F]{Rows: rows, Cols: cols, Data: make([]F, rows*cols)}
}

func (m *Mat[F]) At(i, j int) F     { return m.Data[i*m.Cols+j] }
func (m *Mat[F]) Set(i, j int, v F) { m.Data[i*m.Cols+j] = v }

func (m *Mat[F]) Transpose() *Mat[F] {
	out := NewMat[F](m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Set(j, i, m.At(i, j))
		}
	}
	return out
}

func (m *Mat[F]) Eye(n int) *Mat[F] {
	out := NewMat[F](n, n)
	for i := 0; i < n; i++ {
		out.Set(i, i, 1)
	}
	return out
}

// Inv computes the matrix inverse via Gauss-Jordan elimination with
// partial pivoting, failing with an InverseError when the matrix is
// non-square or numerically singular.
func (m *Mat[F]) Inv() (*Mat[F], error) {
	n := m.Rows
	if n != m.Cols {
		return nil, optimum.NewInverseError("matrix is not square")
	}
	aug := NewMat[F](n, 2*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			aug.Set(i, j, m.At(i, j))
		}
		aug.Set(i, n+i, 1)
	}
	for col := 0; col < n; col++ {
		pivot := col
		best := math.Abs(float64(aug.At(col, col)))
		for r := col + 1; r < n; r++ {
			if v := math.Abs(float64(aug.At(r, col))); v > best {
				best = v
				pivot = r
			}
		}
		if best < 1e-300 {
			return nil, optimum.NewInverseError("matrix is singular")
		}
		if pivot != col {
			for j := 0; j < 2*n; j++ {
				aug.Data[col*aug.Cols+j], aug.Data[pivot*aug.Cols+j] = aug.Data[pivot*aug.Cols+j], aug.Data[col*aug.Cols+j]
			}
		}
		pv := aug.At(col, col)
		for j := 0; j < 2*n; j++ {
			aug.Set(col, j, aug.At(col, j)/pv)
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug.At(r, col)
			if factor == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				aug.Set(r, j, aug.At(r, j)-factor*aug.At(col, j))
			}
		}
	}
	out := NewMat[F](n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, aug.At(i, n+j))
		}
	}
	return out, nil
}
