package soup

import (
	"math"

	"github.com/davidgedye/alife/bff"
)

// Mutate scatters k random single-cell writes across the arena, where
// k ~ Poisson(SoupSize * HalfLen * rate), sampled with Knuth's
// product-of-uniforms method.  Each write replaces one cell with a
// fresh token: new lineage id, the given epoch, a uniform random char.
// Runs on the driver between epochs; a zero rate draws nothing from
// the PRNG.
func (s *Soup) Mutate(rate float64, epoch int) {
	if rate <= 0 {
		return
	}

	lambda := float64(len(s.cells)) * rate
	limit := math.Exp(-lambda)
	p := 1.0
	k := 0
	for {
		k++
		p *= s.rng.Float64()
		if p <= limit {
			break
		}
	}
	k--

	for m := 0; m < k; m++ {
		r := s.rng.Uint64()
		pos := int(r>>s.idxShift) & s.idxMask
		s.cells[pos] = bff.MakeToken(s.nextTokenID, uint16(epoch), byte(r))
		s.nextTokenID++
	}
}
