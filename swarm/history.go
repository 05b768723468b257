package swarm

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// history holds one entry per completed iteration since the last Reset.
type history struct {
	cost      []float64
	meanPbest []float64
	meanNbest []float64
	pos       []*mat.Dense
	vel       []*mat.Dense
}

// record appends the snapshot for the iteration that just completed.
func (s *Swarm) record(nbest []int) {
	nbcost := make([]float64, s.n)
	for i, b := range nbest {
		nbcost[i] = s.pbestCost[b]
	}

	s.hist.cost = append(s.hist.cost, s.bestCost)
	s.hist.meanPbest = append(s.hist.meanPbest, stat.Mean(s.pbestCost, nil))
	s.hist.meanNbest = append(s.hist.meanNbest, stat.Mean(nbcost, nil))
	s.hist.pos = append(s.hist.pos, mat.DenseCopyOf(s.pos))
	s.hist.vel = append(s.hist.vel, mat.DenseCopyOf(s.vel))
}

// CostHistory returns the swarm-best cost recorded at each iteration since
// the last Reset.  The sequence is non-increasing.  The returned slice is
// owned by the swarm and must not be modified.
func (s *Swarm) CostHistory() []float64 { return s.hist.cost }

// MeanPbestHistory returns the per-iteration mean of the personal-best cost
// vector.  The returned slice must not be modified.
func (s *Swarm) MeanPbestHistory() []float64 { return s.hist.meanPbest }

// MeanNbestHistory returns the per-iteration mean of the neighborhood-best
// cost vector.  The returned slice must not be modified.
func (s *Swarm) MeanNbestHistory() []float64 { return s.hist.meanNbest }

// PosHistory returns a position-matrix snapshot per iteration.
func (s *Swarm) PosHistory() []*mat.Dense { return s.hist.pos }

// VelHistory returns a velocity-matrix snapshot per iteration.
func (s *Swarm) VelHistory() []*mat.Dense { return s.hist.vel }
