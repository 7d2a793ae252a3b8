package main

import "fmt"

// Config holds the search parameters. Adjust these to trade runtime for
// solution quality: more runs and more cycles explore more of the space.
type Config struct {
	// Jobs is the number of worker goroutines executing runs in parallel.
	Jobs int
	// Runs is the total number of independent annealing runs.
	Runs int
	// LowHeat is the temperature of the exploitation phase.
	LowHeat float64
	// HighHeat is the temperature of the exploration (reheat) phase.
	HighHeat float64
	// LowHeatIters is the number of steps per low-heat phase.
	LowHeatIters int
	// HighHeatIters is the number of steps per high-heat phase.
	HighHeatIters int
	// NumHeatCycles is how many low/high phase pairs each run executes.
	// Zero means no optimization: the random initial assignment is returned.
	NumHeatCycles int
	// Seed fixes the random streams for reproducible searches. Zero seeds
	// from the clock.
	Seed int64
	// BestFile, if non-empty, receives an appended line whenever a finished
	// run improves on the best cost seen so far.
	BestFile string
	// Verbose enables detailed per-run progress on stderr.
	Verbose bool
}

// DefaultConfig returns the stock search parameters.
func DefaultConfig() Config {
	return Config{
		Jobs:          4,
		Runs:          8,
		LowHeat:       0.06,
		HighHeat:      0.4,
		LowHeatIters:  400,
		HighHeatIters: 50,
		NumHeatCycles: 25,
	}
}

// Validate rejects configurations that could not drive a search. It is
// called before any run starts; a config that passes never fails a run.
func (c Config) Validate() error {
	if c.Jobs <= 0 {
		return fmt.Errorf("jobs must be positive, got %d", c.Jobs)
	}
	if c.Runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", c.Runs)
	}
	if c.LowHeat <= 0 {
		return fmt.Errorf("low heat must be positive, got %g", c.LowHeat)
	}
	if c.HighHeat <= 0 {
		return fmt.Errorf("high heat must be positive, got %g", c.HighHeat)
	}
	if c.LowHeatIters < 0 {
		return fmt.Errorf("low heat iterations must be non-negative, got %d", c.LowHeatIters)
	}
	if c.HighHeatIters < 0 {
		return fmt.Errorf("high heat iterations must be non-negative, got %d", c.HighHeatIters)
	}
	if c.NumHeatCycles < 0 {
		return fmt.Errorf("heat cycles must be non-negative, got %d", c.NumHeatCycles)
	}
	return nil
}
