// Package linalg defines the math capability traits that let a solver be
// written once and compiled against any numeric backend a user's Param,
// Gradient, Jacobian, etc. types choose to implement. Each trait is a
// single-method interface; a backend implements only the traits the
// solvers it is paired with actually need.
package linalg

import (
	"math/rand"

	"github.com/rwcarlsen/optimum"
)

// Adder computes the pointwise sum of two values of the same shape.
type Adder[T any] interface {
	Add(other T) (T, error)
}

// Suber computes the pointwise difference of two values of the same shape.
type Suber[T any] interface {
	Sub(other T) (T, error)
}

// Scaler multiplies every lane by a scalar.
type Scaler[T any, F optimum.Float] interface {
	Scale(factor F) T
}

// ScaledAdder computes self + factor*other in one fused pass.
type ScaledAdder[T any, F optimum.Float] interface {
	ScaledAdd(factor F, other T) (T, error)
}

// ScaledSuber computes self - factor*other in one fused pass.
type ScaledSuber[T any, F optimum.Float] interface {
	ScaledSub(factor F, other T) (T, error)
}

// Dotter computes an inner product; vec.vec -> scalar, mat.vec -> vec,
// mat.mat -> mat depending on the concrete T/R/Out triple.
type Dotter[T, R, Out any] interface {
	Dot(other R) (Out, error)
}

// L1Normer returns the L1 (taxicab) norm. The zero value must return
// exactly zero.
type L1Normer[T any, F optimum.Float] interface {
	L1Norm() F
}

// L2Normer returns the L2 (Euclidean) norm. The zero value must return
// exactly zero.
type L2Normer[T any, F optimum.Float] interface {
	L2Norm() F
}

// Inverter computes the matrix inverse, failing with InverseError on a
// singular or non-square operand.
type Inverter[T any] interface {
	Inv() (T, error)
}

// Transposer computes the matrix transpose.
type Transposer[T, Out any] interface {
	Transpose() Out
}

// MinMaxer computes the elementwise min/max against another value of the
// same shape.
type MinMaxer[T any] interface {
	Min(other T) T
	Max(other T) T
}

// Signumer computes the elementwise sign, with sign(0) defined as 0.
type Signumer[T any] interface {
	Signum() T
}

// Randomer draws a new value of the same shape with entries uniform in
// [low, high) using the caller-provided RNG, so that every draw a solver
// makes comes from the one *rand.Rand it owns and passes in
// (reproducibility, SPEC_FULL.md §5 RNG ownership).
type Randomer[T any, F optimum.Float] interface {
	Random(rng *rand.Rand, low, high F) T
}

// Zeroer produces the additive identity of the same shape as the receiver.
type Zeroer[T any] interface {
	ZeroLike() T
}

// Eyer produces an identity matrix of size n.
type Eyer[T any] interface {
	Eye(n int) T
}

// WeightedDotter computes x.W.y for a square weight matrix W of
// compatible size.
type WeightedDotter[T, W any, F optimum.Float] interface {
	WeightedDot(weight W, other T) (F, error)
}
