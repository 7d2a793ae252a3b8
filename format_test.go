package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

// The output table always has exactly 256 entries: 243 distinct assigned
// values and 13 don't-care markers.
func TestFormatMemhShape(t *testing.T) {
	a := RandomAssignment(rand.New(rand.NewSource(31)))
	lines := strings.Split(strings.TrimSuffix(FormatMemh(a), "\n"), "\n")
	if len(lines) != NumCodes {
		t.Fatalf("got %d lines, want %d", len(lines), NumCodes)
	}

	valid := make(map[uint16]bool, NumValues)
	for _, v := range lutValues {
		valid[v] = true
	}

	seen := make(map[uint16]bool)
	holes := 0
	for i, line := range lines {
		if line == HoleMark {
			holes++
			continue
		}
		if len(line) != 3 {
			t.Fatalf("line %d: %q is not three digits", i, line)
		}
		v, err := strconv.ParseUint(line, 16, 16)
		if err != nil {
			t.Fatalf("line %d: %q: %v", i, line, err)
		}
		out := uint16(v)
		if !valid[out] {
			t.Errorf("line %d: %#x is not a legal lut value", i, out)
		}
		if seen[out] {
			t.Errorf("line %d: value %#x emitted twice", i, out)
		}
		seen[out] = true
	}
	if holes != NumHoles {
		t.Errorf("got %d hole markers, want %d", holes, NumHoles)
	}
	if len(seen) != NumValues {
		t.Errorf("got %d distinct values, want %d", len(seen), NumValues)
	}
}

func TestWriteMemh(t *testing.T) {
	a := RandomAssignment(rand.New(rand.NewSource(32)))
	path := filepath.Join(t.TempDir(), "lut.memh")
	if err := WriteMemh(path, a); err != nil {
		t.Fatalf("WriteMemh: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != FormatMemh(a) {
		t.Error("file contents differ from FormatMemh")
	}
}

func TestFormatTable(t *testing.T) {
	a := RandomAssignment(rand.New(rand.NewSource(33)))
	out := FormatTable(a, 1234)
	if !strings.Contains(out, "cost: 1234") {
		t.Error("table missing cost line")
	}
	if !strings.Contains(out, "holes: "+a.HolesKey()) {
		t.Error("table missing holes line")
	}
	if got := strings.Count(out, "(unused)"); got != NumHoles {
		t.Errorf("table marks %d codes unused, want %d", got, NumHoles)
	}
}

func TestSummarizeRuns(t *testing.T) {
	if got := SummarizeRuns(nil); got != "runs: none completed" {
		t.Errorf("empty summary = %q", got)
	}
	one := SummarizeRuns([]float64{5})
	if !strings.Contains(one, "runs=1") || !strings.Contains(one, "best=5") {
		t.Errorf("single-run summary = %q", one)
	}
	multi := SummarizeRuns([]float64{4, 2, 6})
	for _, want := range []string{"runs=3", "best=2", "worst=6", "mean=4.00"} {
		if !strings.Contains(multi, want) {
			t.Errorf("summary %q missing %q", multi, want)
		}
	}
}

func TestBuildOutput(t *testing.T) {
	a := RandomAssignment(rand.New(rand.NewSource(34)))
	cfg := DefaultConfig()
	res := &SearchResult{
		Best:      a,
		Cost:      99,
		RunCosts:  []float64{99, 120},
		Completed: 2,
		Elapsed:   3 * time.Second,
	}
	out := buildOutput(cfg, res)
	if len(out.Table) != NumCodes {
		t.Errorf("table has %d entries, want %d", len(out.Table), NumCodes)
	}
	if len(out.Holes) != NumHoles {
		t.Errorf("output lists %d holes, want %d", len(out.Holes), NumHoles)
	}
	if out.Cost != 99 || out.Completed != 2 || out.Failed != 0 {
		t.Errorf("unexpected output fields: %+v", out)
	}
	if out.TimeMs != 3000 {
		t.Errorf("TimeMs = %d, want 3000", out.TimeMs)
	}
	if len(out.RunErrors) != 0 {
		t.Errorf("unexpected run errors: %v", out.RunErrors)
	}
}
