// Package bench provides benchmark objective functions from
// http://en.wikipedia.org/wiki/Test_functions_for_optimization for exercising
// the swarm optimizers.
package bench

import (
	"fmt"
	"math"

	"github.com/SioKCronin/pyswarms"
	"github.com/SioKCronin/pyswarms/swarm"
)

var (
	cos  = math.Cos
	abs  = math.Abs
	exp  = math.Exp
	sqrt = math.Sqrt
)

var AllFuncs = []Func{
	Sphere{NDim: 2},
	Sphere{NDim: 10},
	Ackley{},
	Styblinski{NDim: 2},
	Styblinski{NDim: 10},
	Rosenbrock{NDim: 2},
	Rosenbrock{NDim: 10},
}

type Func interface {
	Eval(v []float64) float64
	Bounds() (low, up []float64)
	Optima() []pyswarms.Point
	Name() string
}

// Sphere is the sum of squared coordinates, minimized at the origin.
type Sphere struct {
	NDim int
}

func (fn Sphere) Name() string { return fmt.Sprintf("Sphere_%vD", fn.NDim) }

func (fn Sphere) Eval(v []float64) float64 {
	tot := 0.0
	for _, x := range v {
		tot += x * x
	}
	return tot
}

func (fn Sphere) Bounds() (low, up []float64) {
	return uniformBounds(fn.NDim, -5.12, 5.12)
}

func (fn Sphere) Optima() []pyswarms.Point {
	return []pyswarms.Point{
		pyswarms.NewPoint(make([]float64, fn.NDim), 0),
	}
}

type Ackley struct{}

func (fn Ackley) Name() string { return "Ackley" }

func (fn Ackley) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}

	x := v[0]
	y := v[1]
	return -20*exp(-0.2*sqrt(0.5*(x*x+y*y))) -
		exp(0.5*(cos(2*math.Pi*x)+cos(2*math.Pi*y))) +
		20 + math.E
}

func (fn Ackley) Bounds() (low, up []float64) {
	return []float64{-5, -5}, []float64{5, 5}
}

func (fn Ackley) Optima() []pyswarms.Point {
	return []pyswarms.Point{
		pyswarms.NewPoint([]float64{0, 0}, 0),
	}
}

type Styblinski struct {
	NDim int
}

func (fn Styblinski) Name() string { return fmt.Sprintf("Styblinski_%vD", fn.NDim) }

func (fn Styblinski) Eval(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(1)
	}

	tot := 0.0
	for _, v := range x {
		tot += math.Pow(v, 4) - 16*math.Pow(v, 2) + 5*v
	}
	return tot / 2
}

func (fn Styblinski) Bounds() (low, up []float64) {
	return uniformBounds(fn.NDim, -5, 5)
}

func (fn Styblinski) Optima() []pyswarms.Point {
	pos := make([]float64, fn.NDim)
	for i := range pos {
		pos[i] = -2.903534
	}
	return []pyswarms.Point{
		pyswarms.NewPoint(pos, -39.16599*float64(fn.NDim)),
	}
}

type Rosenbrock struct {
	NDim int
}

func (fn Rosenbrock) Name() string { return fmt.Sprintf("Rosenbrock_%vD", fn.NDim) }

func (fn Rosenbrock) Eval(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(1)
	}

	tot := 0.0
	for i := 0; i < fn.NDim-1; i++ {
		tot += 100*math.Pow(x[i+1]-x[i]*x[i], 2) + math.Pow(x[i]-1, 2)
	}
	return tot
}

func (fn Rosenbrock) Bounds() (low, up []float64) {
	return uniformBounds(fn.NDim, -30, 30)
}

func (fn Rosenbrock) Optima() []pyswarms.Point {
	pos := make([]float64, fn.NDim)
	for i := range pos {
		pos[i] = 1
	}
	return []pyswarms.Point{
		pyswarms.NewPoint(pos, 0),
	}
}

// Benchmark runs s against fn in chunks until the swarm best comes within
// tol of the known optimum or maxiter iterations elapse.  The swarm should
// be constructed with bounds matching fn.Bounds().
func Benchmark(s *swarm.Swarm, fn Func, tol float64, maxiter int) (best pyswarms.Point, niter int, err error) {
	obj := pyswarms.Func(fn.Eval)
	optimum := fn.Optima()[0].Val
	thresh := tol * abs(optimum)
	if thresh < 0.001 {
		thresh = 0.001
	}

	const chunk = 10
	for niter < maxiter {
		n := chunk
		if maxiter-niter < n {
			n = maxiter - niter
		}
		best, err = s.Optimize(obj, n)
		niter += n
		if err != nil {
			return best, niter, err
		} else if abs(optimum-best.Val) < thresh {
			return best, niter, nil
		}
	}
	return best, niter, nil
}

// InsideBounds reports whether p lies inside fn's box bounds.
func InsideBounds(p []float64, fn Func) bool {
	low, up := fn.Bounds()
	for i := range p {
		if p[i] < low[i] || p[i] > up[i] {
			return false
		}
	}
	return true
}

func uniformBounds(ndim int, l, u float64) (low, up []float64) {
	low = make([]float64, ndim)
	up = make([]float64, ndim)
	for i := range low {
		low[i] = l
		up[i] = u
	}
	return low, up
}
