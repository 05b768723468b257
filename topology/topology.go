// Package topology computes per-particle neighborhoods from a snapshot of a
// swarm's position matrix.  All functions are pure: they read the snapshot
// and return fresh index slices, so callers recompute them every iteration
// as positions and costs change.
package topology

import (
	"fmt"

	"github.com/petar/GoLLRB/llrb"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// candidate orders prospective neighbors by distance, with ties broken by
// ascending particle index.
type candidate struct {
	dist float64
	idx  int
}

func (c candidate) Less(than llrb.Item) bool {
	o := than.(candidate)
	if c.dist != o.dist {
		return c.dist < o.dist
	}
	return c.idx < o.idx
}

// Neighbors returns, for every row of pos, the indices of its k nearest rows
// under the Minkowski p-norm, in ascending distance order.  Every particle
// is at zero distance from itself, so k=1 reduces each neighborhood to the
// particle alone and k=n connects the whole swarm.  k and p are assumed to
// have been validated against the swarm options; out-of-range values panic.
func Neighbors(pos *mat.Dense, k, p int) [][]int {
	n, _ := pos.Dims()
	if k < 1 || k > n {
		panic(fmt.Sprintf("topology: neighborhood size %v out of range for %v particles", k, n))
	}
	if p != 1 && p != 2 {
		panic(fmt.Sprintf("topology: unsupported norm order %v", p))
	}

	nbrs := make([][]int, n)
	for i := 0; i < n; i++ {
		// Keep only the k best candidates seen so far, evicting the
		// current worst as better ones arrive.
		tree := llrb.New()
		for j := 0; j < n; j++ {
			d := floats.Distance(pos.RawRowView(i), pos.RawRowView(j), float64(p))
			tree.InsertNoReplace(candidate{dist: d, idx: j})
			if tree.Len() > k {
				tree.DeleteMax()
			}
		}
		set := make([]int, 0, k)
		for tree.Len() > 0 {
			set = append(set, tree.DeleteMin().(candidate).idx)
		}
		nbrs[i] = set
	}
	return nbrs
}

// Best returns, for each particle, the index of the minimum-cost particle in
// its neighborhood.  The particle itself always competes, so the result is
// never worse than the particle's own cost entry.  Cost ties resolve to the
// lowest index.
func Best(neighbors [][]int, cost []float64) []int {
	best := make([]int, len(neighbors))
	for i, set := range neighbors {
		b := i
		for _, j := range set {
			if cost[j] < cost[b] || (cost[j] == cost[b] && j < b) {
				b = j
			}
		}
		best[i] = b
	}
	return best
}

// GlobalBest returns the index of the minimum-cost particle: the degenerate
// k = n topology where the whole swarm shares one neighborhood.
func GlobalBest(cost []float64) int {
	return floats.MinIdx(cost)
}
