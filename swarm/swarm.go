// Package swarm implements the particle swarm optimization loop over
// continuous and binary search spaces.  A Swarm owns the mutable state of
// one optimization run: positions, velocities, personal bests, and the
// recorded trajectory.  Swarms are not safe for concurrent use; drivers that
// evaluate many hyperparameter combinations construct one swarm per
// combination.
package swarm

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/SioKCronin/pyswarms"
	"github.com/SioKCronin/pyswarms/topology"
)

type runState int

const (
	initialized runState = iota
	running
	exhausted
)

// Swarm is a particle swarm optimizer for a fixed particle count and
// dimensionality.  Construct with New or NewBinary.
type Swarm struct {
	n, dims int
	opt     pyswarms.Options
	bounds  *pyswarms.Bounds
	clamp   []float64
	binary  bool
	seed    int64
	every   int
	db      *sql.DB

	rng *rand.Rand

	pos      *mat.Dense
	vel      *mat.Dense
	pbestPos *mat.Dense

	cost      []float64
	pbestCost []float64
	bestCost  float64
	bestPos   []float64

	state runState
	iter  int
	hist  history
}

// Option configures a Swarm at construction time.
type Option func(*Swarm)

// Bounds box-constrains positions of a continuous swarm.  Initial positions
// are drawn inside the bounds and every position update is clamped
// component-wise back into range.
func Bounds(low, up []float64) Option {
	return func(s *Swarm) {
		s.bounds = &pyswarms.Bounds{Low: low, Up: up}
	}
}

// VelocityClamp bounds every velocity component to [min, max] after each
// velocity update.  The clamp must be exactly a (min, max) pair with
// min < max; any other shape fails construction.
func VelocityClamp(clamp ...float64) Option {
	return func(s *Swarm) {
		s.clamp = clamp
	}
}

// Seed sets the seed for the swarm's private random source.  The source is
// re-created from this seed on every Reset, so repeated Reset/Optimize
// cycles retrace the identical trajectory.
func Seed(seed int64) Option {
	return func(s *Swarm) {
		s.seed = seed
	}
}

// DB records the optimization trajectory into sqlite tables on db (see
// TblParticles, TblParticlesBest, and TblBest).
func DB(db *sql.DB) Option {
	return func(s *Swarm) {
		s.db = db
	}
}

// Verbose logs the swarm best every `every` iterations.
func Verbose(every int) Option {
	return func(s *Swarm) {
		s.every = every
	}
}

// New creates a continuous-space swarm of n particles in dims dimensions.
// All validation runs before any swarm array is allocated; a failed
// construction returns nil and an error matching pyswarms.ErrMissingOption,
// pyswarms.ErrInvalidParameter, or pyswarms.ErrTypeMismatch.
func New(n, dims int, opt pyswarms.Options, opts ...Option) (*Swarm, error) {
	return newSwarm(n, dims, opt, false, opts)
}

// NewBinary creates a swarm whose positions are {0, 1} valued.  Velocities
// stay continuous; every position update redraws each component by
// thresholding a uniform draw against the sigmoid of its velocity, so
// positions are recomputed from velocity rather than accumulated.  Bounds do
// not apply to binary swarms.
func NewBinary(n, dims int, opt pyswarms.Options, opts ...Option) (*Swarm, error) {
	return newSwarm(n, dims, opt, true, opts)
}

func newSwarm(n, dims int, opt pyswarms.Options, binary bool, opts []Option) (*Swarm, error) {
	if n < 1 || dims < 1 {
		return nil, fmt.Errorf("%w: swarm shape %vx%v", pyswarms.ErrInvalidParameter, n, dims)
	}

	s := &Swarm{n: n, dims: dims, opt: opt, binary: binary, seed: 1}
	for _, o := range opts {
		o(s)
	}

	if err := opt.Validate(n); err != nil {
		return nil, err
	}
	if err := pyswarms.ValidateClamp(s.clamp); err != nil {
		return nil, err
	}
	if s.bounds != nil {
		if s.binary {
			return nil, fmt.Errorf("%w: bounds do not apply to binary swarms", pyswarms.ErrInvalidParameter)
		}
		if err := s.bounds.Validate(dims); err != nil {
			return nil, err
		}
	}

	if s.db != nil {
		if err := s.initdb(); err != nil {
			return nil, err
		}
	}

	s.Reset()
	return s, nil
}

// Reset restores the swarm to its freshly constructed state: positions and
// velocities are redrawn from a source reseeded with the configured seed,
// personal-best costs return to +Inf, the swarm best returns to +Inf with no
// position, and all recorded history is dropped.  The swarm can be rerun
// without reconstructing it.
func (s *Swarm) Reset() {
	s.rng = rand.New(rand.NewSource(s.seed))

	s.pos = mat.NewDense(s.n, s.dims, nil)
	s.vel = mat.NewDense(s.n, s.dims, nil)
	for i := 0; i < s.n; i++ {
		for j := 0; j < s.dims; j++ {
			s.vel.Set(i, j, s.rng.Float64())
			switch {
			case s.binary:
				if s.rng.Float64() < 0.5 {
					s.pos.Set(i, j, 1)
				}
			case s.bounds != nil:
				low, up := s.bounds.Low[j], s.bounds.Up[j]
				s.pos.Set(i, j, low+s.rng.Float64()*(up-low))
			default:
				s.pos.Set(i, j, s.rng.Float64())
			}
		}
	}

	s.pbestPos = mat.DenseCopyOf(s.pos)
	s.cost = make([]float64, s.n)
	s.pbestCost = make([]float64, s.n)
	for i := range s.pbestCost {
		s.pbestCost[i] = math.Inf(1)
	}
	s.bestCost = math.Inf(1)
	s.bestPos = nil

	s.state = initialized
	s.iter = 0
	s.hist = history{}
}

// Best returns the best point found since the last Reset.
func (s *Swarm) Best() pyswarms.Point {
	return pyswarms.NewPoint(s.bestPos, s.bestCost)
}

// Optimize runs the swarm against obj for exactly iters iterations and
// returns the best point found.  Each iteration evaluates the full position
// matrix in one batched call and appends exactly one history entry.  An
// objective failure aborts the run with no partial result.  Calling Optimize
// again continues from the current swarm state, extending the history.
func (s *Swarm) Optimize(obj pyswarms.Objectiver, iters int) (pyswarms.Point, error) {
	if iters < 1 {
		return pyswarms.Point{}, fmt.Errorf("%w: iters=%v must be a positive integer", pyswarms.ErrInvalidParameter, iters)
	}

	s.state = running
	for i := 0; i < iters; i++ {
		if err := s.step(obj); err != nil {
			return pyswarms.Point{}, err
		}
	}
	s.state = exhausted
	return s.Best(), nil
}

// step advances the swarm by one iteration: evaluate, update personal and
// neighborhood bests, move, record.
func (s *Swarm) step(obj pyswarms.Objectiver) error {
	s.iter++

	cost, err := obj.Objective(s.pos)
	if err != nil {
		return err
	}
	if len(cost) != s.n {
		return fmt.Errorf("%w: objective returned %v costs for %v particles", pyswarms.ErrTypeMismatch, len(cost), s.n)
	}
	copy(s.cost, cost)

	// Personal bests move only on strict improvement.
	for i, c := range s.cost {
		if c < s.pbestCost[i] {
			s.pbestCost[i] = c
			s.pbestPos.SetRow(i, s.pos.RawRowView(i))
		}
	}

	nbest := s.neighborhoodBest()

	if b := topology.GlobalBest(s.pbestCost); s.pbestCost[b] < s.bestCost {
		s.bestCost = s.pbestCost[b]
		s.bestPos = append([]float64(nil), s.pbestPos.RawRowView(b)...)
	}

	s.move(nbest)
	s.record(nbest)
	if s.db != nil {
		if err := s.updatedb(); err != nil {
			return err
		}
	}
	if s.every > 0 && s.iter%s.every == 0 {
		log.Printf("iteration %v, best cost: %v", s.iter, s.bestCost)
	}
	return nil
}

// neighborhoodBest resolves each particle's neighborhood-best index over the
// personal-best cost vector.  The full k = n neighborhood skips the distance
// search since every particle then shares the swarm-wide best.
func (s *Swarm) neighborhoodBest() []int {
	nbest := make([]int, s.n)
	if s.opt.Neighbors == s.n {
		b := topology.GlobalBest(s.pbestCost)
		for i := range nbest {
			nbest[i] = b
		}
		return nbest
	}
	nbrs := topology.Neighbors(s.pos, s.opt.Neighbors, s.opt.Norm)
	return topology.Best(nbrs, s.pbestCost)
}

func (s *Swarm) move(nbest []int) {
	for i := 0; i < s.n; i++ {
		pb := s.pbestPos.RawRowView(i)
		nb := s.pbestPos.RawRowView(nbest[i])
		for j := 0; j < s.dims; j++ {
			// r1 and r2 MUST be drawn fresh for every particle and
			// every dimension.
			r1 := s.rng.Float64()
			r2 := s.rng.Float64()
			x := s.pos.At(i, j)
			v := s.opt.Inertia*s.vel.At(i, j) +
				s.opt.Cognition*r1*(pb[j]-x) +
				s.opt.Social*r2*(nb[j]-x)
			if s.clamp != nil {
				v = math.Min(s.clamp[1], math.Max(s.clamp[0], v))
			}
			s.vel.Set(i, j, v)
		}
	}

	if s.binary {
		for i := 0; i < s.n; i++ {
			for j := 0; j < s.dims; j++ {
				if s.rng.Float64() < sigmoid(s.vel.At(i, j)) {
					s.pos.Set(i, j, 1)
				} else {
					s.pos.Set(i, j, 0)
				}
			}
		}
		return
	}

	s.pos.Add(s.pos, s.vel)
	if s.bounds != nil {
		for i := 0; i < s.n; i++ {
			for j := 0; j < s.dims; j++ {
				x := s.pos.At(i, j)
				s.pos.Set(i, j, math.Min(s.bounds.Up[j], math.Max(s.bounds.Low[j], x)))
			}
		}
	}
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}
