package soup

import "github.com/davidgedye/alife/bff"

// shufflePerm rebuilds perm as a uniform random permutation,
// back-to-front Fisher-Yates on the driver's PRNG.  Splitting the
// shuffled permutation at npairs pairs every tape with exactly one
// partner per epoch.
func (s *Soup) shufflePerm() {
	for i := range s.perm {
		s.perm[i] = uint32(i)
	}
	for i := len(s.perm) - 1; i > 0; i-- {
		j := int(s.rng.Uint64() % uint64(i+1))
		s.perm[i], s.perm[j] = s.perm[j], s.perm[i]
	}
}

// Epoch executes one shuffle+pair+execute cycle over the whole arena.
// The driver's arrival at the start barrier releases the workers; its
// arrival at the end barrier blocks until every pair has run.  Between
// the two arrivals the driver touches nothing the workers can see.
// Mutation is a separate call so the caller controls the epoch number
// stamped into mutated cells.
func (s *Soup) Epoch() {
	s.shufflePerm()
	s.start.await()
	s.end.await()
}

// runPairs executes pair indices [lo, hi).  Because perm is a
// permutation, the half-tape pairs {perm[i], perm[i+npairs]} are
// disjoint across workers: each soup entry is read once and written
// once per epoch, without locks.
func (s *Soup) runPairs(lo, hi int, combined []bff.Token) {
	npairs := len(s.pairSteps)
	for i := lo; i < hi; i++ {
		ai := int(s.perm[i])
		bi := int(s.perm[i+npairs])
		copy(combined[:bff.HalfLen], s.Tape(ai))
		copy(combined[bff.HalfLen:], s.Tape(bi))
		s.pairSteps[i] = bff.Run(combined)
		copy(s.Tape(ai), combined[:bff.HalfLen])
		copy(s.Tape(bi), combined[bff.HalfLen:])
	}
}
