// Package testfunctions provides benchmark optimization problems used by
// cmd/optimum and by solver tests: standard functions from
// http://en.wikipedia.org/wiki/Test_functions_for_optimization, ported
// and trimmed from the teacher's bench/bench.go. Each Func implements
// problem.CostFunction against nativevec.Vec[float64] directly, rather
// than the teacher's []float64 + a separate optim.Point wrapper.
package testfunctions

import (
	"fmt"
	"math"

	"github.com/rwcarlsen/optimum/linalg/nativevec"
)

// Point is the parameter type every benchmark function costs against.
type Point = nativevec.Vec[float64]

// Func is a benchmark cost function with known bounds and a known global
// optimum, used by cmd/optimum's list subcommand to report each
// function's bounds and optimum cost.
type Func interface {
	Name() string
	Cost(p Point) (float64, error)
	// Bounds returns the same [low, high] range applied to every
	// dimension.
	Bounds() (low, high float64)
	// Optimum returns the known global minimum's location and value.
	Optimum() (Point, float64)
}

// All lists every benchmark function at its default dimensionality, the
// same roster as teacher's bench.AllFuncs minus the functions specific
// to 2-D-only inputs that don't generalize (CrossTray, Eggholder,
// HolderTable, Schaffer2 — each hard-coded to exactly two dimensions in
// the original; dropped here since testfunctions.Func is dimension
// generic and every other entry scales).
var All = []Func{
	Sphere{NDim: 2},
	Ackley{},
	Styblinski{NDim: 2},
	Styblinski{NDim: 10},
	Rosenbrock{NDim: 2},
	Rosenbrock{NDim: 10},
}

// Sphere is f(x) = sum(x_i^2), minimized at the origin. Not present in
// the teacher's bench package; added because it's the simplest possible
// convex sanity check for a new solver.
type Sphere struct{ NDim int }

func (fn Sphere) Name() string { return fmt.Sprintf("Sphere_%vD", fn.NDim) }

func (fn Sphere) Cost(p Point) (float64, error) {
	return p.Dot(p)
}

func (fn Sphere) Bounds() (low, high float64) { return -10, 10 }

func (fn Sphere) Optimum() (Point, float64) {
	return make(Point, fn.NDim), 0
}

// Ackley is a classic 2-D multimodal benchmark with a single global
// minimum at the origin surrounded by many shallow local minima.
type Ackley struct{}

func (fn Ackley) Name() string { return "Ackley" }

func (fn Ackley) Cost(p Point) (float64, error) {
	if len(p) != 2 {
		return 0, fmt.Errorf("testfunctions: Ackley requires exactly 2 dimensions, got %d", len(p))
	}
	x, y := p[0], p[1]
	return -20*math.Exp(-0.2*math.Sqrt(0.5*(x*x+y*y))) -
		math.Exp(0.5*(math.Cos(2*math.Pi*x)+math.Cos(2*math.Pi*y))) +
		20 + math.E, nil
}

func (fn Ackley) Bounds() (low, high float64) { return -5, 5 }

func (fn Ackley) Optimum() (Point, float64) { return Point{0, 0}, 0 }

// Styblinski is the Styblinski-Tang function, a separable multimodal
// benchmark that scales to any dimension.
type Styblinski struct{ NDim int }

func (fn Styblinski) Name() string { return fmt.Sprintf("Styblinski_%vD", fn.NDim) }

func (fn Styblinski) Cost(p Point) (float64, error) {
	var tot float64
	for _, v := range p {
		tot += math.Pow(v, 4) - 16*math.Pow(v, 2) + 5*v
	}
	return tot / 2, nil
}

func (fn Styblinski) Bounds() (low, high float64) { return -5, 5 }

func (fn Styblinski) Optimum() (Point, float64) {
	pos := make(Point, fn.NDim)
	for i := range pos {
		pos[i] = -2.903534
	}
	return pos, -39.16599 * float64(fn.NDim)
}

// Rosenbrock is the classic banana-shaped valley function, minimized at
// the all-ones vector.
type Rosenbrock struct{ NDim int }

func (fn Rosenbrock) Name() string { return fmt.Sprintf("Rosenbrock_%vD", fn.NDim) }

func (fn Rosenbrock) Cost(p Point) (float64, error) {
	var tot float64
	for i := 0; i < fn.NDim-1; i++ {
		tot += 100*math.Pow(p[i+1]-p[i]*p[i], 2) + math.Pow(p[i]-1, 2)
	}
	return tot, nil
}

func (fn Rosenbrock) Gradient(p Point) (Point, error) {
	grad := make(Point, fn.NDim)
	for i := 0; i < fn.NDim-1; i++ {
		grad[i] += -400*p[i]*(p[i+1]-p[i]*p[i]) - 2*(1-p[i])
		grad[i+1] += 200 * (p[i+1] - p[i]*p[i])
	}
	return grad, nil
}

func (fn Rosenbrock) Bounds() (low, high float64) { return -5, 10 }

func (fn Rosenbrock) Optimum() (Point, float64) {
	pos := make(Point, fn.NDim)
	for i := range pos {
		pos[i] = 1
	}
	return pos, 0
}
