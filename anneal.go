package main

import (
	"fmt"
	"math"
	"math/rand"
)

// RunResult is what one annealing run hands back to the scheduler. Err is
// set when the run could not complete; such results are excluded from the
// reduction.
type RunResult struct {
	Run      int
	Best     *Assignment
	Cost     float64
	Steps    int64
	Accepted int64
	Err      error
}

// Run is one independent simulated-annealing trial. It exclusively owns its
// assignment, RNG and best-so-far snapshot for its whole lifetime; nothing
// is shared with other runs.
type Run struct {
	id    int
	cfg   Config
	model CostModel
	delta DeltaModel // nil when the model has no incremental form
	mut   *Mutator
	rng   *rand.Rand

	cur      *Assignment
	curCost  float64
	best     *Assignment
	bestCost float64
	steps    int64
	accepted int64
}

// NewRun prepares a run; nothing is evaluated until Execute.
func NewRun(id int, cfg Config, model CostModel, rng *rand.Rand) *Run {
	r := &Run{
		id:    id,
		cfg:   cfg,
		model: model,
		mut:   NewMutator(rng),
		rng:   rng,
	}
	if dm, ok := model.(DeltaModel); ok {
		r.delta = dm
	}
	return r
}

func (r *Run) init() error {
	r.cur = RandomAssignment(r.rng)
	cost, err := r.model.Evaluate(r.cur)
	if err != nil {
		return fmt.Errorf("initial evaluation: %w", err)
	}
	r.curCost = cost
	r.best = r.cur.Clone()
	r.bestCost = cost
	return nil
}

// step executes one proposal/acceptance round at the given temperature.
func (r *Run) step(temp float64) error {
	mv := r.mut.Propose(r.cur)
	r.steps++

	var delta, candCost float64
	haveCand := false
	if r.delta != nil {
		delta = r.delta.Delta(r.cur, mv)
	} else {
		r.mut.Apply(r.cur, mv)
		c, err := r.model.Evaluate(r.cur)
		r.mut.Revert(r.cur, mv)
		if err != nil {
			return fmt.Errorf("evaluate proposal: %w", err)
		}
		candCost, haveCand = c, true
		delta = c - r.curCost
	}

	// Metropolis: worsening moves survive with probability exp(-delta/T).
	if delta > 0 && r.rng.Float64() >= math.Exp(-delta/temp) {
		return nil
	}

	r.mut.Apply(r.cur, mv)
	if haveCand {
		r.curCost = candCost
	} else {
		r.curCost += delta
	}
	r.accepted++
	if r.curCost < r.bestCost {
		r.bestCost = r.curCost
		r.best = r.cur.Clone()
	}
	return nil
}

func (r *Run) phase(temp float64, iters int) error {
	for i := 0; i < iters; i++ {
		if err := r.step(temp); err != nil {
			return err
		}
	}
	return nil
}

// Execute drives the run to completion: random initialization, then
// NumHeatCycles alternating low-heat (exploit) and high-heat (explore)
// phases. With zero cycles or zero iteration counts the initialization
// result is returned untouched.
func (r *Run) Execute() RunResult {
	res := RunResult{Run: r.id}
	if err := r.init(); err != nil {
		res.Err = err
		return res
	}
	for cycle := 0; cycle < r.cfg.NumHeatCycles; cycle++ {
		if err := r.phase(r.cfg.LowHeat, r.cfg.LowHeatIters); err != nil {
			res.Err = err
			return res
		}
		if err := r.phase(r.cfg.HighHeat, r.cfg.HighHeatIters); err != nil {
			res.Err = err
			return res
		}
	}
	res.Best = r.best
	res.Cost = r.bestCost
	res.Steps = r.steps
	res.Accepted = r.accepted
	return res
}
