// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package soup

import (
	"sort"
	"strings"

	"github.com/davidgedye/alife/bff"
	"github.com/grailbio/base/traverse"
)

// Stats is a pure snapshot of arena-level order, computed between
// epochs.
type Stats struct {
	// MeanOps and MedianOps summarize instruction density: the number
	// of valid instruction bytes per half-tape, in [0, HalfLen].
	MeanOps   float64
	MedianOps float64
	// UniqueIDs is the number of distinct lineage ids present.
	UniqueIDs int
	// ModalID is the most common lineage id and ModalCount its cell
	// population.  Ties go to the lowest id.
	ModalID    uint32
	ModalCount int
	// Representative renders the half-tape carrying the most ModalID
	// cells (lowest index on ties): instruction characters where the
	// cell holds one, spaces elsewhere.
	Representative string
}

// Stats computes the snapshot.  Reads only; caller must not run an
// epoch concurrently.
func (s *Soup) Stats() Stats {
	n := s.opts.SoupSize

	// Density sweep, sharded across the pool width.  Each shard builds
	// its own counting-sort table; integer merges make the result
	// independent of the shard count.
	njobs := s.nthreads
	if njobs > n {
		njobs = n
	}
	freqs := make([][]int, njobs)
	totals := make([]int64, njobs)
	traverse.Each(njobs, func(job int) error { // nolint: errcheck
		lo := job * n / njobs
		hi := (job + 1) * n / njobs
		freq := make([]int, bff.HalfLen+1)
		var total int64
		for i := lo; i < hi; i++ {
			ops := bff.CountOps(s.Tape(i))
			freq[ops]++
			total += int64(ops)
		}
		freqs[job] = freq
		totals[job] = total
		return nil
	})
	freq := make([]int, bff.HalfLen+1)
	var total int64
	for job := 0; job < njobs; job++ {
		for v, c := range freqs[job] {
			freq[v] += c
		}
		total += totals[job]
	}

	st := Stats{MeanOps: float64(total) / float64(n)}

	// Median straight off the frequency table: locate the two middle
	// ranks and average them.
	posLo, posHi := n/2-1, n/2
	cumul := 0
	loVal, hiVal := -1, -1
	for v := 0; v <= bff.HalfLen; v++ {
		cumul += freq[v]
		if loVal < 0 && cumul > posLo {
			loVal = v
		}
		if hiVal < 0 && cumul > posHi {
			hiVal = v
		}
		if loVal >= 0 && hiVal >= 0 {
			break
		}
	}
	st.MedianOps = float64(loVal+hiVal) / 2

	// Lineage census: sort a flat copy of every id and walk the runs.
	// The first maximum wins, so ties resolve to the lowest id; when
	// every id is a singleton the first id in sorted order is modal.
	ids := make([]uint32, len(s.cells))
	for i, tok := range s.cells {
		ids[i] = tok.ID()
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	unique := 1
	modalID, modalCount := ids[0], 0
	curID, curCount := ids[0], 1
	for _, id := range ids[1:] {
		if id == curID {
			curCount++
			continue
		}
		unique++
		if curCount > modalCount {
			modalID, modalCount = curID, curCount
		}
		curID, curCount = id, 1
	}
	if curCount > modalCount {
		modalID, modalCount = curID, curCount
	}
	st.UniqueIDs = unique
	st.ModalID = modalID
	st.ModalCount = modalCount

	// Representative tape: the strictly-greater comparison in a
	// forward scan keeps the lowest index on ties, which keeps reports
	// reproducible.
	best, bestCount := 0, 0
	for i := 0; i < n; i++ {
		cnt := 0
		for _, tok := range s.Tape(i) {
			if tok.ID() == modalID {
				cnt++
			}
		}
		if cnt > bestCount {
			best, bestCount = i, cnt
		}
	}
	var sb strings.Builder
	sb.Grow(bff.HalfLen)
	for _, tok := range s.Tape(best) {
		if ch := tok.Char(); bff.IsOp(ch) {
			sb.WriteByte(ch)
		} else {
			sb.WriteByte(' ')
		}
	}
	st.Representative = sb.String()
	return st
}
