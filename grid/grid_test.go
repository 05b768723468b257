package grid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/SioKCronin/pyswarms"
	"github.com/SioKCronin/pyswarms/swarm"
)

func sphere(x []float64) float64 {
	tot := 0.0
	for _, v := range x {
		tot += v * v
	}
	return tot
}

func TestGenerateProduct(t *testing.T) {
	g := Grid{
		C1: Axis{1, 2, 3},
		C2: Axis{1, 2, 3},
		W:  Axis{2, 3, 5},
		K:  Axis{5, 10, 15},
		P:  Axis{1},
	}
	combos, err := g.Generate()
	require.NoError(t, err)
	require.Len(t, combos, 81)

	for _, opt := range combos {
		assert.Equal(t, pyswarms.NormL1, opt.Norm)
	}

	// first axis varies slowest, last fastest
	assert.Equal(t, pyswarms.Options{Cognition: 1, Social: 1, Inertia: 2, Neighbors: 5, Norm: 1}, combos[0])
	assert.Equal(t, pyswarms.Options{Cognition: 1, Social: 1, Inertia: 2, Neighbors: 10, Norm: 1}, combos[1])
	assert.Equal(t, pyswarms.Options{Cognition: 2, Social: 1, Inertia: 2, Neighbors: 5, Norm: 1}, combos[27])
	assert.Equal(t, pyswarms.Options{Cognition: 3, Social: 3, Inertia: 5, Neighbors: 15, Norm: 1}, combos[80])
}

func TestGenerateEmptyAxis(t *testing.T) {
	g := Grid{C1: Axis{1}, C2: Axis{1}, W: Axis{1}, K: Axis{2}}
	_, err := g.Generate()
	require.ErrorIs(t, err, pyswarms.ErrMissingOption)
	assert.Contains(t, err.Error(), "p")
}

func TestGenerateFractionalK(t *testing.T) {
	g := Grid{C1: Axis{1}, C2: Axis{1}, W: Axis{1}, K: Axis{2.5}, P: Axis{2}}
	_, err := g.Generate()
	require.ErrorIs(t, err, pyswarms.ErrInvalidParameter)
}

func TestAxisYAMLScalarOrList(t *testing.T) {
	src := []byte("c1: 0.5\nc2: [0.3, 0.7]\nw: 0.9\nk: 2\np: 2\n")
	var g Grid
	require.NoError(t, yaml.Unmarshal(src, &g))

	assert.Equal(t, Axis{0.5}, g.C1)
	assert.Equal(t, Axis{0.3, 0.7}, g.C2)
	assert.Equal(t, Axis{0.9}, g.W)
	assert.Equal(t, Axis{2}, g.K)
	assert.Equal(t, Axis{2}, g.P)

	combos, err := g.Generate()
	require.NoError(t, err)
	require.Len(t, combos, 2)
}

func TestAxisYAMLMapping(t *testing.T) {
	var g Grid
	err := yaml.Unmarshal([]byte("c1: {low: 1}\n"), &g)
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("c1: [1, 2]\nc2: 0.7\nw: 0.9\nk: [2, 5]\np: [1, 2]\n"), 0o644))

	g, err := Load(path)
	require.NoError(t, err)

	combos, err := g.Generate()
	require.NoError(t, err)
	require.Len(t, combos, 8)
}

func TestSearchSphere(t *testing.T) {
	g := Grid{
		C1: Axis{0.5},
		C2: Axis{0.3, 0.7},
		W:  Axis{0.9},
		K:  Axis{2, 5},
		P:  Axis{1, 2},
	}
	search := Search{
		NParticles: 5,
		Dims:       2,
		Iters:      30,
		Seed:       7,
		SwarmOpts: []swarm.Option{
			swarm.Bounds([]float64{-1, -1}, []float64{1, 1}),
		},
	}

	score, opt, err := search.Search(pyswarms.Func(sphere), g)
	require.NoError(t, err)
	require.NoError(t, opt.Validate(5))
	assert.GreaterOrEqual(t, score, 0.0)
	assert.Less(t, score, 2.0)
}

func TestSearchTieKeepsFirst(t *testing.T) {
	// duplicated axis values make every pair of adjacent combinations
	// identical, so ties must resolve to the earlier one
	g := Grid{
		C1: Axis{0.5},
		C2: Axis{0.7, 0.7},
		W:  Axis{0.9},
		K:  Axis{2},
		P:  Axis{2},
	}
	search := Search{NParticles: 4, Dims: 2, Iters: 10, Seed: 3}

	combos, err := g.Generate()
	require.NoError(t, err)
	require.Len(t, combos, 2)

	_, opt, err := search.Search(pyswarms.Func(sphere), g)
	require.NoError(t, err)
	assert.Equal(t, combos[0], opt)
}

func TestSearchMaximize(t *testing.T) {
	g := Grid{C1: Axis{0.5}, C2: Axis{0.7}, W: Axis{0.9}, K: Axis{2, 4}, P: Axis{2}}
	search := Search{NParticles: 4, Dims: 2, Iters: 10, Seed: 3, Maximize: true}

	score, opt, err := search.Search(pyswarms.Func(sphere), g)
	require.NoError(t, err)
	require.NoError(t, opt.Validate(4))
	assert.False(t, score < 0)
}

func TestSearchInvalidCombination(t *testing.T) {
	// k larger than the particle count fails construction and aborts
	g := Grid{C1: Axis{0.5}, C2: Axis{0.7}, W: Axis{0.9}, K: Axis{50}, P: Axis{2}}
	search := Search{NParticles: 4, Dims: 2, Iters: 10}

	_, _, err := search.Search(pyswarms.Func(sphere), g)
	require.ErrorIs(t, err, pyswarms.ErrInvalidParameter)
}

func TestSearchBinary(t *testing.T) {
	g := Grid{C1: Axis{0.5}, C2: Axis{0.7}, W: Axis{0.9}, K: Axis{2}, P: Axis{2}}
	search := Search{NParticles: 6, Dims: 3, Iters: 20, Seed: 5, Binary: true}

	score, _, err := search.Search(pyswarms.Func(sphere), g)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.0)
}
