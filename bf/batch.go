package bf

import (
	"runtime"
	"sync/atomic"

	"github.com/grailbio/base/traverse"
	"v.io/x/lib/vlog"
)

// batchSize is how many programs a worker claims per atomic increment.
const batchSize = 64

// RunBatch executes programs[i] into results[i] using nthreads
// concurrent workers; pass nthreads <= 0 to use all logical CPUs.
// Workers claim contiguous batches off a shared atomic counter, so
// skewed run times (a few near-cap programs among many trivial ones)
// self-balance.
func RunBatch(programs []Program, results []Result, nthreads int) {
	if len(programs) == 0 {
		return
	}
	if len(programs) != len(results) {
		vlog.Fatalf("bf.RunBatch: %d programs, %d results", len(programs), len(results))
	}
	if nthreads <= 0 {
		nthreads = runtime.NumCPU()
	}
	if nthreads > len(programs) {
		nthreads = len(programs)
	}
	vlog.VI(1).Infof("bf batch: %d programs on %d workers", len(programs), nthreads)

	var next int64
	traverse.Each(nthreads, func(_ int) error { // nolint: errcheck
		for {
			base := int(atomic.AddInt64(&next, batchSize)) - batchSize
			if base >= len(programs) {
				return nil
			}
			end := base + batchSize
			if end > len(programs) {
				end = len(programs)
			}
			for i := base; i < end; i++ {
				results[i] = Run(programs[i])
			}
		}
	})
}
