package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
)

// SearchOutput is the JSON-serializable result of one search invocation,
// shared by the CLI -json mode and the lambda entry point.
type SearchOutput struct {
	Date      string   `json:"date"`
	Jobs      int      `json:"jobs"`
	Runs      int      `json:"runs"`
	Cost      float64  `json:"cost"`
	Holes     []int    `json:"holes"`
	Table     []string `json:"table"` // 256 memh entries, "xxx" for holes
	Completed int      `json:"completed"`
	Failed    int      `json:"failed"`
	RunErrors []string `json:"runErrors,omitempty"`
	TimeMs    int64    `json:"timeMs"`
}

func buildOutput(cfg Config, res *SearchResult) SearchOutput {
	out := SearchOutput{
		Date:      time.Now().UTC().Format(time.RFC3339),
		Jobs:      cfg.Jobs,
		Runs:      cfg.Runs,
		Cost:      res.Cost,
		Holes:     res.Best.Holes(),
		Table:     strings.Fields(FormatMemh(res.Best)),
		Completed: res.Completed,
		Failed:    res.Failed,
		TimeMs:    res.Elapsed.Milliseconds(),
	}
	for _, err := range res.Errors {
		out.RunErrors = append(out.RunErrors, err.Error())
	}
	return out
}

// HoleMark is the placeholder emitted for don't-care codes. $readmemh
// treats x digits as don't-care bits, which is what lets synthesis prune
// the unused codes.
const HoleMark = "xxx"

// FormatMemh renders the assignment as a 256-line memh table: one
// three-digit hex output per code, HoleMark for the 13 unused codes.
func FormatMemh(a *Assignment) string {
	var b strings.Builder
	b.Grow(NumCodes * 4)
	for c := 0; c < NumCodes; c++ {
		if out, ok := a.Output(c); ok {
			fmt.Fprintf(&b, "%03x\n", out)
		} else {
			b.WriteString(HoleMark + "\n")
		}
	}
	return b.String()
}

// WriteMemh persists the memh table to path.
func WriteMemh(path string, a *Assignment) error {
	if err := os.WriteFile(path, []byte(FormatMemh(a)), 0o644); err != nil {
		return fmt.Errorf("write memh: %w", err)
	}
	return nil
}

// FormatTable renders a human-readable code listing with decoded weights.
func FormatTable(a *Assignment, cost float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "cost: %g\n", cost)
	fmt.Fprintf(&b, "holes: %s\n", a.HolesKey())
	fmt.Fprintf(&b, "%-6s %-6s %s\n", "code", "out", "weights")
	for c := 0; c < NumCodes; c++ {
		q, ok := a.Quintuple(c)
		if !ok {
			fmt.Fprintf(&b, "0x%02x   %-6s (unused)\n", c, HoleMark)
			continue
		}
		out, _ := a.Output(c)
		weights := make([]string, WeightsPerCode)
		for i, w := range q {
			weights[i] = fmt.Sprintf("%+d", w)
		}
		fmt.Fprintf(&b, "0x%02x   0x%03x  %s\n", c, out, strings.Join(weights, " "))
	}
	return b.String()
}

// SummarizeRuns reports the cost distribution over completed runs.
func SummarizeRuns(costs []float64) string {
	if len(costs) == 0 {
		return "runs: none completed"
	}
	best, worst := costs[0], costs[0]
	for _, c := range costs[1:] {
		if c < best {
			best = c
		}
		if c > worst {
			worst = c
		}
	}
	mean, std := stat.MeanStdDev(costs, nil)
	if len(costs) == 1 {
		std = 0
	}
	return fmt.Sprintf("runs=%d best=%g mean=%.2f stddev=%.2f worst=%g",
		len(costs), best, mean, std, worst)
}
