// Command swarmbench runs the swarm optimizer against a benchmark function,
// either as a single run or as a grid search over a YAML hyperparameter
// file, and can record the trajectory into a sqlite database.
package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mxk/go-sqlite/sqlite3"
	"github.com/spf13/pflag"

	"github.com/SioKCronin/pyswarms"
	"github.com/SioKCronin/pyswarms/bench"
	"github.com/SioKCronin/pyswarms/grid"
	"github.com/SioKCronin/pyswarms/swarm"
)

var (
	fnname    = pflag.String("fn", "Ackley", "benchmark function name")
	particles = pflag.Int("particles", 30, "number of particles")
	iters     = pflag.Int("iters", 1000, "number of iterations")
	seed      = pflag.Int64("seed", 1, "random seed")
	k         = pflag.Int("k", 0, "neighborhood size (default: all particles)")
	p         = pflag.Int("p", 2, "Minkowski norm order for the neighbor search")
	gridfile  = pflag.String("grid", "", "YAML grid file; runs a grid search instead of a single run")
	dbfile    = pflag.String("db", "", "sqlite file for trajectory recording")
	every     = pflag.Int("verbose", 0, "log the swarm best every N iterations")
)

func main() {
	pflag.Parse()
	log.SetFlags(0)

	fn := lookup(*fnname)
	if fn == nil {
		log.Fatalf("unknown benchmark function %q", *fnname)
	}
	low, up := fn.Bounds()

	if *gridfile != "" {
		g, err := grid.Load(*gridfile)
		if err != nil {
			log.Fatal(err)
		}
		search := grid.Search{
			NParticles: *particles,
			Dims:       len(low),
			Iters:      *iters,
			Seed:       *seed,
			SwarmOpts:  []swarm.Option{swarm.Bounds(low, up)},
		}
		score, opt, err := search.Search(pyswarms.NewCacheObjectiver(pyswarms.Func(fn.Eval)), g)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%v: best score %v\n", fn.Name(), score)
		fmt.Printf("    options: %+v\n", opt)
		return
	}

	opt := pyswarms.DefaultOptions(*particles)
	if *k > 0 {
		opt.Neighbors = *k
	}
	opt.Norm = *p

	opts := []swarm.Option{
		swarm.Bounds(low, up),
		swarm.Seed(*seed),
		swarm.Verbose(*every),
	}
	if *dbfile != "" {
		db, err := sql.Open("sqlite3", *dbfile)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		opts = append(opts, swarm.DB(db))
	}

	s, err := swarm.New(*particles, len(low), opt, opts...)
	if err != nil {
		log.Fatal(err)
	}

	best, niter, err := bench.Benchmark(s, fn, .01, *iters)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%v (%v iterations):\n", fn.Name(), niter)
	fmt.Printf("    optimum: %v at %v\n", fn.Optima()[0].Val, fn.Optima()[0].Pos())
	fmt.Printf("    best: %v at %v\n", best.Val, best.Pos())
}

func lookup(name string) bench.Func {
	for _, fn := range bench.AllFuncs {
		if fn.Name() == name {
			return fn
		}
	}
	return nil
}
