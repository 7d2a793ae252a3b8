package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/tidwall/gjson"
)

// YosysCostModel scores an assignment with a real synthesis pass: it writes
// the candidate memh table, synthesizes the lut module down to an AIG with
// yosys, and reads the cell count from the stat report. This is the exact
// metric the downstream hardware pays for, at the price of a subprocess per
// evaluation -- use it with small iteration budgets, or to re-score winners
// found with the gate model.
//
// Stat reports are cached in WorkDir keyed by memh content, so re-visiting
// an assignment (across runs or invocations) is free.
type YosysCostModel struct {
	// WorkDir holds memh files and cached stat JSON.
	WorkDir string
	// Verilog is the path to the lut harness read by yosys.
	Verilog string
	// Timeout bounds one yosys invocation.
	Timeout time.Duration
}

// NewYosysCostModel creates the model and its cache directory.
func NewYosysCostModel(workDir, verilog string) (*YosysCostModel, error) {
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	return &YosysCostModel{
		WorkDir: workDir,
		Verilog: verilog,
		Timeout: 60 * time.Second,
	}, nil
}

// memhBase names cache artifacts by memh content hash.
func memhBase(memh string) string {
	sum := sha256.Sum256([]byte(memh))
	return hex.EncodeToString(sum[:8])
}

// Evaluate synthesizes the assignment and returns the AIG cell count.
func (m *YosysCostModel) Evaluate(a *Assignment) (float64, error) {
	memh := FormatMemh(a)
	base := memhBase(memh)
	statPath := filepath.Join(m.WorkDir, base+".stat.json")

	if data, err := os.ReadFile(statPath); err == nil {
		if cost, err := parseNumCells(data); err == nil {
			return cost, nil
		}
		// stale or truncated report: regenerate
	}

	memhPath := filepath.Join(m.WorkDir, base+".memh")
	if err := os.WriteFile(memhPath, []byte(memh), 0o644); err != nil {
		return 0, fmt.Errorf("write memh: %w", err)
	}

	script := fmt.Sprintf(
		`read_verilog -DMEMH_FILENAME="%s" %s; synth; opt -full; aigmap; opt -full; tee -o "%s" stat -json`,
		memhPath, m.Verilog, statPath)

	ctx, cancel := context.WithTimeout(context.Background(), m.Timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, "yosys", "-p", script)
	if out, err := cmd.CombinedOutput(); err != nil {
		return 0, fmt.Errorf("yosys: %w (output: %.200s)", err, string(out))
	}

	data, err := os.ReadFile(statPath)
	if err != nil {
		return 0, fmt.Errorf("read stat report: %w", err)
	}
	return parseNumCells(data)
}

// parseNumCells extracts modules.\lut.num_cells from a yosys stat -json
// report.
func parseNumCells(data []byte) (float64, error) {
	mod, ok := gjson.GetBytes(data, "modules").Map()[`\lut`]
	if !ok {
		return 0, fmt.Errorf("stat report has no \\lut module")
	}
	cells := mod.Get("num_cells")
	if !cells.Exists() {
		return 0, fmt.Errorf("stat report missing num_cells")
	}
	return cells.Float(), nil
}
