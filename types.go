package main

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

const (
	// NumCodes is the size of the compressed code space (8-bit).
	NumCodes = 256
	// NumValues is the number of distinct ternary quintuples (3^5).
	NumValues = 243
	// NumHoles is the number of codes left unassigned (don't-care).
	NumHoles = NumCodes - NumValues
	// WeightsPerCode is the number of ternary weights packed into one code.
	WeightsPerCode = 5
)

// Hole marks an unassigned code in the assignment table.
const Hole = int16(-1)

// lutValues lists the 243 ten-bit decoder outputs in ascending order.
// Each output packs five ternary weights as 2-bit two's-complement fields,
// so every base-4 digit is 0, 1 or 3 -- never 2.
var lutValues = buildLUTValues()

func buildLUTValues() []uint16 {
	vals := make([]uint16, 0, NumValues)
	for n := 0; n < 1024; n++ {
		x := n
		hasTwo := false
		for i := 0; i < WeightsPerCode; i++ {
			if x%4 == 2 {
				hasTwo = true
				break
			}
			x /= 4
		}
		if !hasTwo {
			vals = append(vals, uint16(n))
		}
	}
	if len(vals) != NumValues {
		panic(fmt.Sprintf("lut value table has %d entries, want %d", len(vals), NumValues))
	}
	return vals
}

// Quintuple is one decompressed weight group: five values in {-1, 0, 1}.
type Quintuple [WeightsPerCode]int8

// DecodeLUT expands a ten-bit output into its five ternary weights.
// Field order is low bits first: weight i lives in bits [2i+1:2i].
func DecodeLUT(v uint16) Quintuple {
	var q Quintuple
	for i := 0; i < WeightsPerCode; i++ {
		switch v & 3 {
		case 0:
			q[i] = 0
		case 1:
			q[i] = 1
		case 3:
			q[i] = -1
		}
		v >>= 2
	}
	return q
}

// Assignment maps each of the 256 codes to an index into lutValues, or to
// Hole for the 13 don't-care codes. The non-hole entries always form a
// permutation of 0..242: every quintuple is assigned to exactly one code.
type Assignment struct {
	codes [NumCodes]int16
}

// RandomAssignment builds a uniformly random valid assignment: a random
// 13-code hole subset and a random permutation of the 243 outputs over the
// remaining codes.
func RandomAssignment(rng *rand.Rand) *Assignment {
	a := &Assignment{}
	order := rng.Perm(NumCodes)
	vals := rng.Perm(NumValues)
	for i, c := range order {
		if i < NumValues {
			a.codes[c] = int16(vals[i])
		} else {
			a.codes[c] = Hole
		}
	}
	return a
}

// At returns the lutValues index assigned to code, or Hole.
func (a *Assignment) At(code int) int16 { return a.codes[code] }

// IsHole reports whether code is one of the 13 don't-care codes.
func (a *Assignment) IsHole(code int) bool { return a.codes[code] == Hole }

// Output returns the ten-bit decoder output for code. ok is false for holes.
func (a *Assignment) Output(code int) (uint16, bool) {
	idx := a.codes[code]
	if idx == Hole {
		return 0, false
	}
	return lutValues[idx], true
}

// Quintuple returns the weight group for code. ok is false for holes.
func (a *Assignment) Quintuple(code int) (Quintuple, bool) {
	out, ok := a.Output(code)
	if !ok {
		return Quintuple{}, false
	}
	return DecodeLUT(out), true
}

// Holes returns the don't-care codes in ascending order.
func (a *Assignment) Holes() []int {
	holes := make([]int, 0, NumHoles)
	for c := 0; c < NumCodes; c++ {
		if a.codes[c] == Hole {
			holes = append(holes, c)
		}
	}
	return holes
}

// Clone returns an independent copy.
func (a *Assignment) Clone() *Assignment {
	c := *a
	return &c
}

// swap exchanges the table entries of two codes. This is the only mutation
// applied after initialization, so the bijection invariant can never break:
// swapping cannot duplicate or drop a quintuple.
func (a *Assignment) swap(c1, c2 int) {
	a.codes[c1], a.codes[c2] = a.codes[c2], a.codes[c1]
}

// Validate checks the bijection invariant: exactly 13 holes, and the
// remaining entries a permutation of 0..242.
func (a *Assignment) Validate() error {
	var seen [NumValues]bool
	holes := 0
	for c := 0; c < NumCodes; c++ {
		idx := a.codes[c]
		if idx == Hole {
			holes++
			continue
		}
		if idx < 0 || int(idx) >= NumValues {
			return fmt.Errorf("code %d: lut index %d out of range", c, idx)
		}
		if seen[idx] {
			return fmt.Errorf("code %d: lut index %d assigned twice", c, idx)
		}
		seen[idx] = true
	}
	if holes != NumHoles {
		return fmt.Errorf("assignment has %d holes, want %d", holes, NumHoles)
	}
	return nil
}

// HolesKey renders the hole positions joined by underscores, e.g.
// "3_17_..._250". Used for best-file lines and log output.
func (a *Assignment) HolesKey() string {
	holes := a.Holes()
	parts := make([]string, len(holes))
	for i, h := range holes {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, "_")
}

// Move is a proposed mutation: swap the table entries of codes A and B.
type Move struct {
	A, B int
}
