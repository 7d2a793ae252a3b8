package main

import "math/rand"

// Mutator proposes single-swap perturbations of an assignment. A proposal
// exchanges the table entries of two codes: two assigned codes trade
// quintuples, or an assigned code trades with a hole, which moves the
// don't-care. Either way the bijection invariant holds by construction.
//
// The mutator carries no search history -- only the RNG that drives it.
type Mutator struct {
	rng *rand.Rand
}

// NewMutator returns a mutator drawing from rng.
func NewMutator(rng *rand.Rand) *Mutator { return &Mutator{rng: rng} }

// Propose picks the next move: a uniformly random assigned code paired with
// a distinct uniformly random code. The first code is always assigned so a
// proposal is never a hole-with-hole no-op.
func (m *Mutator) Propose(a *Assignment) Move {
	var c1 int
	for {
		c1 = m.rng.Intn(NumCodes)
		if !a.IsHole(c1) {
			break
		}
	}
	c2 := m.rng.Intn(NumCodes - 1)
	if c2 >= c1 {
		c2++
	}
	return Move{A: c1, B: c2}
}

// Apply performs the swap on a.
func (m *Mutator) Apply(a *Assignment, mv Move) { a.swap(mv.A, mv.B) }

// Revert undoes a previously applied move. Swaps are involutions, so this
// is the same operation.
func (m *Mutator) Revert(a *Assignment, mv Move) { a.swap(mv.A, mv.B) }
