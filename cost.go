package main

import "math/bits"

// CostModel estimates decoder hardware complexity for an assignment.
// Lower is better. Evaluate must be deterministic and total over valid
// assignments; the search loop depends on nothing else about the formula.
type CostModel interface {
	Evaluate(a *Assignment) (float64, error)
}

// DeltaModel is a CostModel that can additionally score a single proposed
// swap incrementally, without mutating the assignment. The annealer uses
// Delta when available; models without it fall back to full re-evaluation
// per step.
type DeltaModel interface {
	CostModel
	Delta(a *Assignment, mv Move) float64
}

// GateCostModel scores an assignment by its adjacency bit-transition count:
// for every pair of codes differing in one input bit, the Hamming distance
// between their ten-bit outputs. Inputs that decode to similar outputs when
// they look similar need less logic, so fewer transitions approximates a
// cheaper decoder. Pairs touching a hole cost zero -- a don't-care output
// imposes no constraint.
type GateCostModel struct{}

// NewGateCostModel returns the default cost model.
func NewGateCostModel() *GateCostModel { return &GateCostModel{} }

func edgeCost(i1, i2 int16) int {
	if i1 == Hole || i2 == Hole {
		return 0
	}
	return bits.OnesCount16(lutValues[i1] ^ lutValues[i2])
}

// Evaluate computes the full transition count. Never fails.
func (m *GateCostModel) Evaluate(a *Assignment) (float64, error) {
	total := 0
	for c := 0; c < NumCodes; c++ {
		for b := 0; b < 8; b++ {
			n := c ^ (1 << b)
			if n < c {
				continue // each unordered pair once
			}
			total += edgeCost(a.codes[c], a.codes[n])
		}
	}
	return float64(total), nil
}

// Delta returns cost(a after swap) - cost(a), touching only the edges
// incident to the two swapped codes.
func (m *GateCostModel) Delta(a *Assignment, mv Move) float64 {
	return float64(m.localCost(a, mv, true) - m.localCost(a, mv, false))
}

// localCost sums the edges incident to mv.A or mv.B, reading entries as if
// the swap had (or had not) been applied. The A-B edge itself, if the two
// codes are input-adjacent, is counted once.
func (m *GateCostModel) localCost(a *Assignment, mv Move, swapped bool) int {
	at := func(c int) int16 {
		if swapped {
			switch c {
			case mv.A:
				c = mv.B
			case mv.B:
				c = mv.A
			}
		}
		return a.codes[c]
	}
	total := 0
	for _, c := range [2]int{mv.A, mv.B} {
		for b := 0; b < 8; b++ {
			n := c ^ (1 << b)
			if (n == mv.A || n == mv.B) && c > n {
				continue // shared edge already counted from the other end
			}
			total += edgeCost(at(c), at(n))
		}
	}
	return total
}
