package runner

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/san-kum/deckmenu/internal/script"
	"golang.org/x/sync/errgroup"
)

// Ensemble plays many random scripts, each against its own session.
type Ensemble struct {
	NumRuns   int
	SeedStart int64
	// Horizon bounds the offsets of generated steps.
	Horizon time.Duration
	Workers int
	Options Options
}

// EnsembleResult pairs a generated script with its outcome.
type EnsembleResult struct {
	Seed   int64
	Script *script.Script
	Result *Result
}

func (e *Ensemble) Run(ctx context.Context) ([]EnsembleResult, error) {
	if e.NumRuns <= 0 {
		return nil, fmt.Errorf("ensemble needs at least one run")
	}
	horizon := e.Horizon
	if horizon <= 0 {
		horizon = 8 * time.Second
	}
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]EnsembleResult, e.NumRuns)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < e.NumRuns; i++ {
		seed := e.SeedStart + int64(i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sc := script.Random(rand.New(rand.NewSource(seed)), horizon)
			res, err := Run(gctx, sc, e.Options)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = EnsembleResult{Seed: seed, Script: sc, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
