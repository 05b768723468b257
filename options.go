package pyswarms

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrMissingOption reports a required hyperparameter left unset.
	ErrMissingOption = errors.New("pyswarms: missing required option")
	// ErrInvalidParameter reports an option or argument outside its valid
	// range.
	ErrInvalidParameter = errors.New("pyswarms: invalid parameter")
	// ErrTypeMismatch reports a malformed option shape, such as a velocity
	// clamp that is not a (min, max) pair.
	ErrTypeMismatch = errors.New("pyswarms: type mismatch")
)

// Minkowski norm orders accepted by the neighbor search.
const (
	NormL1 = 1
	NormL2 = 2
)

// These params are calculated using a constriction factor originally
// described in:
//
//	Clerc and M.  “The swarm and the queen: towards a deterministic and
//	adaptive particle swarm optimization” Proc. 1999 Congress on
//	Evolutionary Computation, pp. 1951-1957
//
// DefaultCognition and DefaultSocial are c1 and c2 values of 2.05 multiplied
// by their constriction coefficient; DefaultInertia is the coefficient
// itself.
const (
	DefaultCognition = 1.496179765663133
	DefaultSocial    = 1.496179765663133
	DefaultInertia   = 0.7298437881283576
)

// Constriction calculates the constriction coefficient for the given c1 and
// c2 in the particle velocity equation.  c1+c2 should usually be greater
// than (but close to) 4.
func Constriction(c1, c2 float64) float64 {
	phi := c1 + c2
	return 2 / math.Abs(2-phi-math.Sqrt(phi*phi-4*phi))
}

// Options is the hyperparameter set for one optimization run.  All five
// fields are required; a zero value is treated as unset and fails validation
// with ErrMissingOption.  The fields are fixed for the duration of a run.
type Options struct {
	// Cognition is c1, the weight pulling a particle toward its own best
	// known position.
	Cognition float64 `yaml:"c1"`
	// Social is c2, the weight pulling a particle toward its neighborhood
	// best.
	Social float64 `yaml:"c2"`
	// Inertia is w, the weight applied to the particle's current velocity.
	Inertia float64 `yaml:"w"`
	// Neighbors is k, the neighborhood size used by the topology.  Must
	// satisfy 0 < k <= number of particles; k equal to the swarm size
	// degenerates to a single global-best neighborhood.
	Neighbors int `yaml:"k"`
	// Norm is p, the Minkowski distance order for the neighbor search.
	// NormL1 is sum-of-absolute-differences, NormL2 is Euclidean.
	Norm int `yaml:"p"`
}

// DefaultOptions returns the Clerc constriction parameters with a global
// (k = nparticles) Euclidean topology.
func DefaultOptions(nparticles int) Options {
	return Options{
		Cognition: DefaultCognition,
		Social:    DefaultSocial,
		Inertia:   DefaultInertia,
		Neighbors: nparticles,
		Norm:      NormL2,
	}
}

// Validate checks the option set against the swarm size.  Checks run in a
// fixed order and the first violation is returned: presence of all five
// options, then the k range, then the p norm.
func (o Options) Validate(nparticles int) error {
	switch {
	case o.Cognition == 0:
		return fmt.Errorf("%w: c1", ErrMissingOption)
	case o.Social == 0:
		return fmt.Errorf("%w: c2", ErrMissingOption)
	case o.Inertia == 0:
		return fmt.Errorf("%w: w", ErrMissingOption)
	case o.Neighbors == 0:
		return fmt.Errorf("%w: k", ErrMissingOption)
	case o.Norm == 0:
		return fmt.Errorf("%w: p", ErrMissingOption)
	}
	if o.Neighbors < 0 || o.Neighbors > nparticles {
		return fmt.Errorf("%w: k=%v must satisfy 0 < k <= %v particles", ErrInvalidParameter, o.Neighbors, nparticles)
	}
	if o.Norm != NormL1 && o.Norm != NormL2 {
		return fmt.Errorf("%w: p=%v must be %v or %v", ErrInvalidParameter, o.Norm, NormL1, NormL2)
	}
	return nil
}

// ValidateClamp checks a velocity clamp.  A nil clamp is valid and means
// unclamped.  Anything other than a (min, max) pair is a type mismatch, and
// min must be strictly below max.
func ValidateClamp(clamp []float64) error {
	if clamp == nil {
		return nil
	}
	if len(clamp) != 2 {
		return fmt.Errorf("%w: velocity clamp must be a (min, max) pair, got %v values", ErrTypeMismatch, len(clamp))
	}
	if clamp[0] >= clamp[1] {
		return fmt.Errorf("%w: velocity clamp min %v >= max %v", ErrInvalidParameter, clamp[0], clamp[1])
	}
	return nil
}

// Bounds box-constrains the position space of a continuous swarm, one
// (low, up) pair per dimension.
type Bounds struct {
	Low []float64
	Up  []float64
}

// Validate checks the bounds against the problem dimensionality.
func (b Bounds) Validate(dims int) error {
	if len(b.Low) != dims || len(b.Up) != dims {
		return fmt.Errorf("%w: bounds must hold %v values per side, got %v low and %v up",
			ErrTypeMismatch, dims, len(b.Low), len(b.Up))
	}
	for i := range b.Low {
		if b.Low[i] >= b.Up[i] {
			return fmt.Errorf("%w: bounds dimension %v has low %v >= up %v",
				ErrInvalidParameter, i, b.Low[i], b.Up[i])
		}
	}
	return nil
}
