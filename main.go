//go:build !lambda

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
)

const usage = `Usage: ternary-compression [flags]

Searches for an assignment of the 243 ternary weight quintuples to the 256
eight-bit codes that minimizes decoder hardware cost, using parallel
simulated-annealing runs. The winning table is written as a memh file.

Flags:
`

func main() {
	def := DefaultConfig()
	jobs := flag.Int("jobs", def.Jobs, "number of parallel workers")
	runs := flag.Int("runs", def.Runs, "total independent annealing runs")
	cycles := flag.Int("cycles", def.NumHeatCycles, "heat cycles per run (0 = return random init)")
	lowHeat := flag.Float64("low-heat", def.LowHeat, "exploitation-phase temperature")
	highHeat := flag.Float64("high-heat", def.HighHeat, "exploration-phase temperature")
	lowIters := flag.Int("low-iters", def.LowHeatIters, "steps per low-heat phase")
	highIters := flag.Int("high-iters", def.HighHeatIters, "steps per high-heat phase")
	seed := flag.Int64("seed", 0, "random seed (0 = from clock)")
	costModel := flag.String("cost", "gate", "cost model: gate or yosys")
	workDir := flag.String("work-dir", "memh_files", "cache directory for the yosys model")
	lutVerilog := flag.String("lut-verilog", "lut.v", "verilog harness for the yosys model")
	outPath := flag.String("out", "", "write the winning memh table to this file (default stdout)")
	bestFile := flag.String("best-file", "", "append incremental global bests to this file")
	jsonOut := flag.Bool("json", false, "output the result as JSON")
	verbose := flag.Bool("verbose", false, "print detailed search progress to stderr")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := Config{
		Jobs:          *jobs,
		Runs:          *runs,
		LowHeat:       *lowHeat,
		HighHeat:      *highHeat,
		LowHeatIters:  *lowIters,
		HighHeatIters: *highIters,
		NumHeatCycles: *cycles,
		Seed:          *seed,
		BestFile:      *bestFile,
		Verbose:       *verbose,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var model CostModel
	switch *costModel {
	case "gate":
		model = NewGateCostModel()
	case "yosys":
		m, err := NewYosysCostModel(*workDir, *lutVerilog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		model = m
	default:
		fmt.Fprintf(os.Stderr, "error: unknown cost model %q\n", *costModel)
		os.Exit(1)
	}

	fmt.Fprintf(logw(), "[init] jobs=%d runs=%d cycles=%d heat=%g/%g iters=%d/%d model=%s\n",
		cfg.Jobs, cfg.Runs, cfg.NumHeatCycles, cfg.LowHeat, cfg.HighHeat,
		cfg.LowHeatIters, cfg.HighHeatIters, *costModel)

	res, err := Search(cfg, model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	for _, runErr := range res.Errors {
		fmt.Fprintf(logw(), "[warn] %v\n", runErr)
	}
	fmt.Fprintf(logw(), "[done] %s, elapsed=%v\n", SummarizeRuns(res.RunCosts), res.Elapsed)

	if *outPath != "" {
		if err := WriteMemh(*outPath, res.Best); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(logw(), "[out] wrote %s\n", *outPath)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(buildOutput(cfg, res))
	} else if *outPath == "" {
		fmt.Print(FormatTable(res.Best, res.Cost))
	} else {
		fmt.Printf("cost: %g holes: %s\n", res.Cost, res.Best.HolesKey())
	}
}
