package dynamo

import (
	"context"
	"sync"
)

// Ensemble runs the same propagation many times with perturbed initial
// states, one goroutine per run. Perturb receives the run index and the
// nominal state and returns the state to propagate; a nil Perturb reuses the
// nominal state for every run.
//
// Each run steps with its own integrator from newIntegrator: integrators may
// keep per-step scratch buffers, so a single instance must never be shared
// across concurrent runs.
type Ensemble struct {
	dyn           System
	newIntegrator func() Integrator
	numRuns       int
	perturb       func(run int, x0 State) State
}

func NewEnsemble(dyn System, newIntegrator func() Integrator, numRuns int, perturb func(run int, x0 State) State) *Ensemble {
	return &Ensemble{dyn: dyn, newIntegrator: newIntegrator, numRuns: numRuns, perturb: perturb}
}

func (e *Ensemble) Run(ctx context.Context, x0 State, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			start := x0.Clone()
			if e.perturb != nil {
				start = e.perturb(idx, start)
			}

			p := New(e.dyn, e.newIntegrator())
			results[idx], errs[idx] = p.Run(ctx, start, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
