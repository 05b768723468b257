// Package pyswarms implements particle swarm optimization over continuous
// and binary search spaces.  The root package holds the contracts shared by
// the optimizers: candidate points, batched objective evaluation, and the
// hyperparameter option set.
package pyswarms

import (
	"crypto/sha1"
	"encoding/binary"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Point is a position in the search space tagged with its objective value.
type Point struct {
	pos []float64
	Val float64
}

func NewPoint(pos []float64, val float64) Point {
	cpos := make([]float64, len(pos))
	copy(cpos, pos)
	return Point{pos: cpos, Val: val}
}

func (p Point) At(i int) float64 { return p.pos[i] }

func (p Point) Len() int { return len(p.pos) }

func (p Point) Pos() []float64 {
	pos := make([]float64, len(p.pos))
	copy(pos, p.pos)
	return pos
}

// Objectiver evaluates a batch of candidate positions.  Objective is called
// once per iteration with the full n-by-dims position matrix and must return
// one cost per row, preserving row order.  The objective function must be
// framed so that lower values are better.  A returned error aborts the
// optimization run and propagates unmodified to the caller.
type Objectiver interface {
	Objective(pos *mat.Dense) ([]float64, error)
}

// Func adapts a plain per-point objective function to the batched Objectiver
// interface by evaluating rows serially.
type Func func(x []float64) float64

func (f Func) Objective(pos *mat.Dense) ([]float64, error) {
	n, _ := pos.Dims()
	cost := make([]float64, n)
	for i := 0; i < n; i++ {
		cost[i] = f(mat.Row(nil, i, pos))
	}
	return cost, nil
}

// ParallelFunc evaluates the rows of each batch concurrently across Nworker
// goroutines.  The returned cost vector always matches the row order of the
// batch, so results are identical to serial evaluation.  If Nworker is zero,
// runtime.NumCPU workers are used.
type ParallelFunc struct {
	F       func(x []float64) (float64, error)
	Nworker int
}

func (pf ParallelFunc) Objective(pos *mat.Dense) ([]float64, error) {
	n, _ := pos.Dims()
	nw := pf.Nworker
	if nw <= 0 {
		nw = runtime.NumCPU()
	}
	if nw > n {
		nw = n
	}

	cost := make([]float64, n)
	errs := make([]error, n)
	rows := make(chan int)
	var wg sync.WaitGroup
	wg.Add(nw)
	for w := 0; w < nw; w++ {
		go func() {
			defer wg.Done()
			for i := range rows {
				cost[i], errs[i] = pf.F(mat.Row(nil, i, pos))
			}
		}()
	}
	for i := 0; i < n; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return cost, nil
}

func hashRow(x []float64) [sha1.Size]byte {
	data := make([]byte, len(x)*8)
	for i, v := range x {
		binary.BigEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}
	return sha1.Sum(data)
}

// CacheObjectiver wraps an Objectiver and memoizes row costs by position.
// Repeated evaluations of an already seen candidate skip the wrapped
// objective, which pays off when a grid search revisits the same seeded
// trajectory under many hyperparameter combinations.
type CacheObjectiver struct {
	obj   Objectiver
	cache map[[sha1.Size]byte]float64
}

func NewCacheObjectiver(obj Objectiver) *CacheObjectiver {
	return &CacheObjectiver{
		obj:   obj,
		cache: map[[sha1.Size]byte]float64{},
	}
}

func (co *CacheObjectiver) Objective(pos *mat.Dense) ([]float64, error) {
	n, dims := pos.Dims()
	cost := make([]float64, n)
	miss := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if val, ok := co.cache[hashRow(pos.RawRowView(i))]; ok {
			cost[i] = val
		} else {
			miss = append(miss, i)
		}
	}
	if len(miss) == 0 {
		return cost, nil
	}

	sub := mat.NewDense(len(miss), dims, nil)
	for j, i := range miss {
		sub.SetRow(j, pos.RawRowView(i))
	}
	vals, err := co.obj.Objective(sub)
	if err != nil {
		return nil, err
	}
	for j, i := range miss {
		cost[i] = vals[j]
		co.cache[hashRow(pos.RawRowView(i))] = vals[j]
	}
	return cost, nil
}
