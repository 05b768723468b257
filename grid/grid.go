// Package grid implements exhaustive hyperparameter search: the cartesian
// product of per-option candidate values is generated and one optimization
// run is scored per combination.
package grid

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SioKCronin/pyswarms"
	"github.com/SioKCronin/pyswarms/swarm"
)

// Axis is one hyperparameter's candidate values.  In YAML an axis may be
// given either as a sequence or as a bare scalar, which is treated as a
// single-element list.
type Axis []float64

func (a *Axis) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		*a = Axis{v}
	case yaml.SequenceNode:
		var vs []float64
		if err := node.Decode(&vs); err != nil {
			return err
		}
		*a = Axis(vs)
	default:
		return fmt.Errorf("%w: option values must be a scalar or a sequence", pyswarms.ErrTypeMismatch)
	}
	return nil
}

// Grid lists the candidate values for each swarm option.
type Grid struct {
	C1 Axis `yaml:"c1"`
	C2 Axis `yaml:"c2"`
	W  Axis `yaml:"w"`
	K  Axis `yaml:"k"`
	P  Axis `yaml:"p"`
}

// Load reads a Grid from a YAML file.
func Load(path string) (Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Grid{}, err
	}
	var g Grid
	if err := yaml.Unmarshal(data, &g); err != nil {
		return Grid{}, err
	}
	return g, nil
}

// Generate returns every combination of the grid's axis values, one complete
// option set per cartesian-product element.  Axes advance in the fixed order
// c1, c2, w, k, p with c1 varying slowest and p fastest.  An empty axis
// fails with ErrMissingOption; fractional k values fail with
// ErrInvalidParameter.
func (g Grid) Generate() ([]pyswarms.Options, error) {
	axes := []struct {
		key  string
		vals Axis
	}{
		{"c1", g.C1}, {"c2", g.C2}, {"w", g.W}, {"k", g.K}, {"p", g.P},
	}

	total := 1
	for _, ax := range axes {
		if len(ax.vals) == 0 {
			return nil, fmt.Errorf("%w: %v", pyswarms.ErrMissingOption, ax.key)
		}
		total *= len(ax.vals)
	}
	for _, k := range g.K {
		if k != math.Trunc(k) {
			return nil, fmt.Errorf("%w: k=%v must be an integer", pyswarms.ErrInvalidParameter, k)
		}
	}
	for _, p := range g.P {
		if p != math.Trunc(p) {
			return nil, fmt.Errorf("%w: p=%v must be an integer", pyswarms.ErrInvalidParameter, p)
		}
	}

	combos := make([]pyswarms.Options, 0, total)
	idx := make([]int, len(axes))
	for {
		combos = append(combos, pyswarms.Options{
			Cognition: g.C1[idx[0]],
			Social:    g.C2[idx[1]],
			Inertia:   g.W[idx[2]],
			Neighbors: int(g.K[idx[3]]),
			Norm:      int(g.P[idx[4]]),
		})

		// odometer advance, last axis fastest
		d := len(axes) - 1
		for ; d >= 0; d-- {
			idx[d]++
			if idx[d] < len(axes[d].vals) {
				break
			}
			idx[d] = 0
		}
		if d < 0 {
			return combos, nil
		}
	}
}

// Search drives one optimization run per grid combination.
type Search struct {
	NParticles int
	Dims       int
	Iters      int
	// Binary selects the binary position-update variant.
	Binary bool
	// Maximize selects the highest- instead of lowest-scoring combination.
	Maximize bool
	// Seed seeds every combination's private random source, so combinations
	// share no mutable state and the search is reproducible.
	Seed int64
	// SwarmOpts apply to every constructed swarm (bounds, velocity clamp,
	// trajectory recording).
	SwarmOpts []swarm.Option
}

// Search evaluates obj under every combination of g and returns the best
// final score with the options that produced it.  Ties keep the combination
// generated first.  Any construction or run failure aborts the whole search.
func (sr Search) Search(obj pyswarms.Objectiver, g Grid) (float64, pyswarms.Options, error) {
	combos, err := g.Generate()
	if err != nil {
		return 0, pyswarms.Options{}, err
	}

	bestScore := math.Inf(1)
	if sr.Maximize {
		bestScore = math.Inf(-1)
	}
	var bestOpt pyswarms.Options

	for _, opt := range combos {
		opts := append([]swarm.Option{swarm.Seed(sr.Seed)}, sr.SwarmOpts...)

		var s *swarm.Swarm
		if sr.Binary {
			s, err = swarm.NewBinary(sr.NParticles, sr.Dims, opt, opts...)
		} else {
			s, err = swarm.New(sr.NParticles, sr.Dims, opt, opts...)
		}
		if err != nil {
			return 0, pyswarms.Options{}, err
		}

		best, err := s.Optimize(obj, sr.Iters)
		if err != nil {
			return 0, pyswarms.Options{}, err
		}

		if (sr.Maximize && best.Val > bestScore) || (!sr.Maximize && best.Val < bestScore) {
			bestScore = best.Val
			bestOpt = opt
		}
	}
	return bestScore, bestOpt, nil
}
