package soup

import (
	"sync"

	"github.com/davidgedye/alife/bff"
)

// barrier is a reusable rendezvous for a fixed number of goroutines,
// the moral equivalent of pthread_barrier_t.  The mutex hand-off at
// each generation is the acquire/release edge the epoch protocol
// relies on: workers observe the driver's shuffle and mutation writes,
// the driver observes the workers' arena and pairSteps writes.
type barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	waiting int
	round   uint64
}

func newBarrier(parties int) *barrier {
	b := &barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// await blocks until parties goroutines have arrived, then releases
// them all and resets for the next round.
func (b *barrier) await() {
	b.mu.Lock()
	round := b.round
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.round++
		b.cond.Broadcast()
		b.mu.Unlock()
		return
	}
	for round == b.round {
		b.cond.Wait()
	}
	b.mu.Unlock()
}

// startWorkers launches the persistent pool.  Both barriers are sized
// nthreads+1: the workers plus the driver.  Slice bounds are fixed for
// the pool's lifetime: worker t owns pair indices [t*chunk, t*chunk+chunk),
// with the last worker absorbing the remainder.
func (s *Soup) startWorkers() {
	npairs := len(s.pairSteps)
	s.start = newBarrier(s.nthreads + 1)
	s.end = newBarrier(s.nthreads + 1)
	chunk := npairs / s.nthreads
	for t := 0; t < s.nthreads; t++ {
		lo := t * chunk
		hi := lo + chunk
		if t == s.nthreads-1 {
			hi = npairs
		}
		s.wg.Add(1)
		go s.workerLoop(lo, hi)
	}
}

// workerLoop parks on the start barrier, runs its pair slice on a
// goroutine-local scratch tape, and parks on the end barrier.  On
// shutdown it exits without touching the arena.
func (s *Soup) workerLoop(lo, hi int) {
	defer s.wg.Done()
	var combined [bff.TapeLen]bff.Token
	for {
		s.start.await()
		if s.down {
			return
		}
		s.runPairs(lo, hi, combined[:])
		s.end.await()
	}
}
