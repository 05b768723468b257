package bench

import (
	"math"
	"testing"

	"github.com/SioKCronin/pyswarms"
	"github.com/SioKCronin/pyswarms/swarm"
)

const maxiter = 2000

const seed = 7

func buildSwarm(t *testing.T, fn Func, n int) *swarm.Swarm {
	low, up := fn.Bounds()
	s, err := swarm.New(n, len(low), pyswarms.DefaultOptions(n),
		swarm.Bounds(low, up),
		swarm.Seed(seed),
	)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSphereConverges(t *testing.T) {
	fn := Sphere{NDim: 2}
	s := buildSwarm(t, fn, 30)

	best, niter, err := Benchmark(s, fn, .01, maxiter)
	if err != nil {
		t.Fatalf("[ERROR:%v] %v", fn.Name(), err)
	}

	optimum := fn.Optima()[0].Val
	if math.Abs(best.Val-optimum) > 1.0 {
		t.Errorf("[FAIL:%v] %v iter: optimum is %v, got %v", fn.Name(), niter, optimum, best.Val)
	} else {
		t.Logf("[pass:%v] %v iter: optimum is %v, got %v", fn.Name(), niter, optimum, best.Val)
	}
}

func TestAllFuncsRun(t *testing.T) {
	for _, fn := range AllFuncs {
		s := buildSwarm(t, fn, 30)

		best, niter, err := Benchmark(s, fn, .01, 200)
		if err != nil {
			t.Errorf("[ERROR:%v] %v", fn.Name(), err)
			continue
		}
		if math.IsInf(best.Val, 1) {
			t.Errorf("[FAIL:%v] no finite cost found in %v iter", fn.Name(), niter)
			continue
		}
		t.Logf("[info:%v] %v iter: optimum is %v, got %v", fn.Name(), niter, fn.Optima()[0].Val, best.Val)
	}
}

func TestNeighborhoodVariantRuns(t *testing.T) {
	fn := Ackley{}
	low, up := fn.Bounds()

	opt := pyswarms.DefaultOptions(20)
	opt.Neighbors = 4
	opt.Norm = pyswarms.NormL1
	s, err := swarm.New(20, len(low), opt, swarm.Bounds(low, up), swarm.Seed(seed))
	if err != nil {
		t.Fatal(err)
	}

	best, niter, err := Benchmark(s, fn, .01, 500)
	if err != nil {
		t.Fatalf("[ERROR:%v] %v", fn.Name(), err)
	}
	t.Logf("[info:%v] %v iter with ring neighborhood: got %v", fn.Name(), niter, best.Val)
}

func TestInsideBounds(t *testing.T) {
	fn := Ackley{}
	if !InsideBounds([]float64{0, 0}, fn) {
		t.Errorf("origin reported outside Ackley bounds")
	}
	if InsideBounds([]float64{6, 0}, fn) {
		t.Errorf("out-of-range point reported inside Ackley bounds")
	}
}
