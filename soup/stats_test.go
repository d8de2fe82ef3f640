package soup

import (
	"strings"
	"testing"

	"github.com/davidgedye/alife/bff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillTape overwrites half-tape i so that its first n cells carry
// (id, ch) and the rest (restID, 0).
func fillTape(s *Soup, i, n int, id uint32, ch byte, restID uint32) {
	tape := s.Tape(i)
	for j := range tape {
		if j < n {
			tape[j] = bff.MakeToken(id, 0, ch)
		} else {
			tape[j] = bff.MakeToken(restID, 0, 0)
		}
	}
}

func TestStatsHandComputed(t *testing.T) {
	s := newTestSoup(t, Opts{SoupSize: 4, Threads: 2, Seed: 1})
	defer s.Close()

	fillTape(s, 0, bff.HalfLen, 5, '+', 0) // density 64, 64 cells of id 5
	fillTape(s, 1, 32, 5, '<', 6)          // density 32, 32 cells of id 5
	fillTape(s, 2, bff.HalfLen, 7, 'x', 0) // 'x' is not an instruction
	fillTape(s, 3, 10, 5, ',', 8)          // density 10, 10 cells of id 5

	st := s.Stats()
	// Densities are {64, 32, 0, 10}: mean 26.5, middle ranks 10 and 32.
	assert.Equal(t, 26.5, st.MeanOps)
	assert.Equal(t, 21.0, st.MedianOps)
	// ids present: 5 (106 cells), 6 (32), 7 (64), 8 (54).
	assert.Equal(t, 4, st.UniqueIDs)
	assert.Equal(t, uint32(5), st.ModalID)
	assert.Equal(t, 106, st.ModalCount)
	// Tape 0 carries the most id-5 cells and renders as all '+'.
	assert.Equal(t, strings.Repeat("+", bff.HalfLen), st.Representative)
}

func TestStatsFreshSoupAllSingletons(t *testing.T) {
	s := newTestSoup(t, Opts{SoupSize: 2, Threads: 1, Seed: 17})
	defer s.Close()

	st := s.Stats()
	// Every cell of a fresh soup has a distinct id, so the modal
	// lineage defaults to the first id in sorted order.
	assert.Equal(t, 2*bff.HalfLen, st.UniqueIDs)
	assert.Equal(t, uint32(0), st.ModalID)
	assert.Equal(t, 1, st.ModalCount)
	require.Equal(t, bff.HalfLen, len(st.Representative))
}

func TestStatsRepresentativeTieBreak(t *testing.T) {
	s := newTestSoup(t, Opts{SoupSize: 4, Threads: 1, Seed: 2})
	defer s.Close()

	// Every tape ties on the modal count; only tape 0 renders as '[',
	// the others as ']', and the forward scan keeps tape 0.
	for i := 0; i < s.Size(); i++ {
		ch := byte(']')
		if i == 0 {
			ch = '['
		}
		fillTape(s, i, 8, 1, ch, 1)
	}
	st := s.Stats()
	assert.Equal(t, uint32(1), st.ModalID)
	assert.Equal(t, 4*bff.HalfLen, st.ModalCount)
	assert.Equal(t, strings.Repeat("[", 8)+strings.Repeat(" ", bff.HalfLen-8), st.Representative)
	assert.Equal(t, 8.0, st.MeanOps)
	assert.Equal(t, 8.0, st.MedianOps)
	assert.Equal(t, 1, st.UniqueIDs)
}

func TestStatsLineagePigeonhole(t *testing.T) {
	// After some evolution, modal_count * unique_ids >= total cells is
	// impossible to violate; check on a live arena.
	s := newTestSoup(t, Opts{SoupSize: 64, Threads: 2, Seed: 33})
	defer s.Close()
	for e := 1; e <= 2; e++ {
		s.Epoch()
		s.Mutate(1e-3, e)
	}
	st := s.Stats()
	total := s.Size() * bff.HalfLen
	assert.True(t, st.UniqueIDs <= total)
	assert.True(t, st.ModalCount*st.UniqueIDs >= total,
		"modal %d x unique %d < %d cells", st.ModalCount, st.UniqueIDs, total)
}
