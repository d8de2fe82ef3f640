// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package soup

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"runtime"
	"sync"

	"blainsmith.com/go/seahash"
	"github.com/davidgedye/alife/bff"
)

const (
	// DefaultSoupSize is the reference arena size: 2^17 half-tapes,
	// 2^23 cells.
	DefaultSoupSize = 1 << 17
	// MaxThreads caps the worker pool.
	MaxThreads = 256
)

// Opts configures a Soup.
type Opts struct {
	// SoupSize is the number of half-tapes in the arena.  Must be a
	// power of two (so pairing and the mutation index mask stay exact).
	SoupSize int
	// Threads is the worker count; 0 detects available CPUs.  Clamped
	// to MaxThreads and to the pair count.
	Threads int
	// Seed seeds the PRNG; 0 derives a process-local seed.
	Seed uint64
	// MutationRate is the per-cell mutation probability per epoch.
	MutationRate float64
}

// DefaultOpts is the reference configuration.
var DefaultOpts = Opts{
	SoupSize: DefaultSoupSize,
}

// Soup owns the arena and all per-run state: the population of
// half-tapes, the pairing permutation, the per-pair step counts, the
// PRNG, the lineage-id counter and the worker pool.  It is created
// once, mutated in place by epochs, and torn down with Close.
type Soup struct {
	opts Opts
	rng  *RNG

	// cells is the flat arena; half-tape i is
	// cells[i*bff.HalfLen : (i+1)*bff.HalfLen].
	cells []bff.Token
	// perm pairs index i with index i+npairs after each shuffle.
	perm []uint32
	// pairSteps[i] is the step count of pair i in the last epoch,
	// written by the owning worker, read by the driver after the end
	// barrier.
	pairSteps []uint32

	// idxShift/idxMask map the top bits of a PRNG word onto a flat
	// cell index; derived from SoupSize so the mutation scatter spans
	// exactly log2(SoupSize*HalfLen) bits.
	idxShift uint
	idxMask  int

	// nextTokenID wraps at 2^32; on long runs under heavy mutation new
	// cells can collide with surviving old lineages.
	nextTokenID uint32

	nthreads int
	start    *barrier
	end      *barrier
	// down is written before the driver's final arrival at the start
	// barrier; the barrier release is the synchronization edge under
	// which workers read it.
	down bool
	wg   sync.WaitGroup
}

// New allocates the arena, fills it with random cells (each carrying a
// fresh lineage id at epoch 0) and starts the worker pool.
func New(opts Opts) (*Soup, error) {
	if opts.SoupSize < 2 || opts.SoupSize&(opts.SoupSize-1) != 0 {
		return nil, fmt.Errorf("soup: size %d must be a power of two >= 2", opts.SoupSize)
	}
	if opts.MutationRate < 0 {
		return nil, fmt.Errorf("soup: negative mutation rate %v", opts.MutationRate)
	}
	nthreads := opts.Threads
	if nthreads <= 0 {
		nthreads = runtime.NumCPU()
	}
	if nthreads > MaxThreads {
		nthreads = MaxThreads
	}
	npairs := opts.SoupSize / 2
	if nthreads > npairs {
		nthreads = npairs
	}
	s := &Soup{
		opts:      opts,
		rng:       NewRNG(opts.Seed),
		cells:     make([]bff.Token, opts.SoupSize*bff.HalfLen),
		perm:      make([]uint32, opts.SoupSize),
		pairSteps: make([]uint32, npairs),
		nthreads:  nthreads,
	}
	total := len(s.cells)
	s.idxMask = total - 1
	s.idxShift = uint(64 - bits.TrailingZeros(uint(total)))
	for i := range s.cells {
		s.cells[i] = bff.MakeToken(s.nextTokenID, 0, byte(s.rng.Uint64()))
		s.nextTokenID++
	}
	s.startWorkers()
	return s, nil
}

// Size returns the number of half-tapes in the arena.
func (s *Soup) Size() int { return s.opts.SoupSize }

// Threads returns the resolved worker count.
func (s *Soup) Threads() int { return s.nthreads }

// Seed returns the resolved PRNG seed.
func (s *Soup) Seed() uint64 { return s.rng.Seed() }

// Tape returns half-tape i as a mutable slice into the arena.
func (s *Soup) Tape(i int) []bff.Token {
	return s.cells[i*bff.HalfLen : (i+1)*bff.HalfLen]
}

// PairSteps returns the per-pair step counts of the most recent epoch.
// Valid between epochs only.
func (s *Soup) PairSteps() []uint32 { return s.pairSteps }

// NextTokenID returns the lineage-id counter.
func (s *Soup) NextTokenID() uint32 { return s.nextTokenID }

// Fingerprint hashes every token in index order.  Equal fingerprints
// mean bit-identical arenas, lineage metadata included; the epoch
// pipeline is deterministic for a fixed seed regardless of worker
// count, and this is the cheap way to check that.
func (s *Soup) Fingerprint() uint64 {
	h := seahash.New()
	var buf [8192]byte
	n := 0
	for _, tok := range s.cells {
		binary.LittleEndian.PutUint64(buf[n:], uint64(tok))
		n += 8
		if n == len(buf) {
			h.Write(buf[:]) // nolint: errcheck
			n = 0
		}
	}
	if n > 0 {
		h.Write(buf[:n]) // nolint: errcheck
	}
	return h.Sum64()
}

// Close shuts down the worker pool.  The arena stays readable; only
// Epoch becomes invalid.
func (s *Soup) Close() {
	s.down = true
	s.start.await()
	s.wg.Wait()
}
