package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"
)

// ErrNoCompletedRuns reports that every run failed, so there is no result
// to reduce. Distinct from a successful-but-poor search.
var ErrNoCompletedRuns = errors.New("no runs completed")

// SearchResult is the reduced outcome of a full search.
type SearchResult struct {
	Best      *Assignment
	Cost      float64
	RunCosts  []float64 // best cost of each completed run
	Completed int
	Failed    int
	Errors    []error // one entry per failed run
	Elapsed   time.Duration
}

// seedStride spaces per-run RNG streams apart (golden-ratio increment).
const seedStride = 0x9e3779b9

// Search executes cfg.Runs independent annealing runs on cfg.Jobs workers
// and reduces their results to the minimum-cost assignment. Runs share no
// mutable state: each gets its own RNG seeded from cfg.Seed and its run
// index, so a fixed seed reproduces the search exactly regardless of how
// runs land on workers. Individual run failures are collected and excluded;
// only zero completed runs is an error.
func Search(cfg Config, model CostModel) (*SearchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	tracker, err := newBestTracker(cfg.BestFile)
	if err != nil {
		return nil, err
	}
	defer tracker.Close()

	start := time.Now()
	results := make([]RunResult, cfg.Runs)

	runCh := make(chan int, cfg.Runs)
	for i := 0; i < cfg.Runs; i++ {
		runCh <- i
	}
	close(runCh)

	numWorkers := cfg.Jobs
	if numWorkers > cfg.Runs {
		numWorkers = cfg.Runs
	}

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range runCh {
				rng := rand.New(rand.NewSource(seed + int64(idx)*seedStride))
				run := NewRun(idx, cfg, model, rng)
				res := run.Execute()
				results[idx] = res // each slot has exactly one writer
				if res.Err != nil {
					fmt.Fprintf(logw(), "[run] #%d failed: %v\n", idx, res.Err)
					continue
				}
				if cfg.Verbose {
					fmt.Fprintf(logw(), "[run] #%d done: cost=%g steps=%d accepted=%d\n",
						idx, res.Cost, res.Steps, res.Accepted)
				}
				tracker.Observe(res)
			}
		}()
	}
	wg.Wait()

	// Single-threaded reduction in run-index order: ties go to the lowest
	// index, so the winner is independent of scheduling.
	out := &SearchResult{Elapsed: time.Since(start)}
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			out.Failed++
			out.Errors = append(out.Errors, fmt.Errorf("run %d: %w", res.Run, res.Err))
			continue
		}
		out.Completed++
		out.RunCosts = append(out.RunCosts, res.Cost)
		if out.Best == nil || res.Cost < out.Cost {
			out.Best = res.Best
			out.Cost = res.Cost
		}
	}
	if out.Completed == 0 {
		return nil, fmt.Errorf("%w: %d failed", ErrNoCompletedRuns, out.Failed)
	}
	return out, nil
}

// bestTracker streams incremental global-best improvements to a log file as
// runs finish. Observability only: the final reduction never reads it.
type bestTracker struct {
	mu   sync.Mutex
	f    *os.File
	best float64
	seen bool
}

func newBestTracker(path string) (*bestTracker, error) {
	t := &bestTracker{}
	if path == "" {
		return t, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open best file: %w", err)
	}
	t.f = f
	return t, nil
}

func (t *bestTracker) Observe(res RunResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.seen && res.Cost >= t.best {
		return
	}
	t.best = res.Cost
	t.seen = true
	fmt.Fprintf(logw(), "[best] cost=%g holes=%s\n", res.Cost, res.Best.HolesKey())
	if t.f != nil {
		fmt.Fprintf(t.f, "cost: %g holes: %s\n", res.Cost, res.Best.HolesKey())
		t.f.Sync()
	}
}

func (t *bestTracker) Close() {
	if t.f != nil {
		t.f.Close()
	}
}

func logw() *os.File { return os.Stderr }
