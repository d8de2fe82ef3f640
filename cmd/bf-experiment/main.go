package main

/*
bf-experiment is a census of random classical-Brainfuck programs: how
long does a uniformly random byte string typically run before halting?
It generates fixed-length random programs (all 256 byte values equally
likely), runs them in batch under a step cap, prints a log10 run-length
histogram, and dumps the longest-running program that halted normally.
*/

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/davidgedye/alife/bf"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
)

const (
	progLen  = 64
	nBuckets = 6 // log10 buckets: [1,9] .. [100000,999999]
	barWidth = 50
)

var (
	nPrograms = flag.Int("programs", 1000000, "Number of random programs to run")
	threads   = flag.Int("threads", 0, "Worker threads; 0 = all available CPUs")
	seed      = flag.Int64("seed", 0, "Generator seed; 0 seeds from the clock")
)

func stepsBucket(steps uint32) int {
	k := 0
	lo := uint32(1)
	for k < nBuckets-1 && steps >= lo*10 {
		lo *= 10
		k++
	}
	return k
}

func bar(w *strings.Builder, count, max int) string {
	w.Reset()
	for i := 0; i < count*barWidth/max; i++ {
		w.WriteByte('#')
	}
	return w.String()
}

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	programs := make([]bf.Program, *nPrograms)
	for i := range programs {
		src := make([]byte, progLen)
		rng.Read(src)
		programs[i] = bf.Program{Src: src, MaxSteps: bf.DefaultMaxSteps}
	}

	log.Printf("running %d programs of %d bytes (max %d steps each)",
		*nPrograms, progLen, bf.DefaultMaxSteps)

	results := make([]bf.Result, len(programs))
	bf.RunBatch(programs, results, *threads)

	var (
		bestIdx           = -1
		bestSteps         uint32
		nHalted, nTimeout int
		nZero             int // malformed, or zero effective steps
		hist              [nBuckets]int
	)
	for i, res := range results {
		switch {
		case res.Halted && res.Steps > 0:
			nHalted++
			hist[stepsBucket(res.Steps)]++
			if res.Steps > bestSteps {
				bestSteps = res.Steps
				bestIdx = i
			}
		case !res.Halted && res.Steps > 0:
			nTimeout++
		default:
			nZero++
		}
	}

	log.Printf("  halted normally: %d", nHalted)
	log.Printf("  timed out:       %d", nTimeout)
	log.Printf("  zero steps:      %d", nZero)

	max := nTimeout
	if nZero > max {
		max = nZero
	}
	for _, c := range hist {
		if c > max {
			max = c
		}
	}
	if max == 0 {
		max = 1
	}

	var sb strings.Builder
	fmt.Println("\n=== Run length histogram ===")
	fmt.Printf("%7d %9s | %s %d\n", 0, "", bar(&sb, nZero, max), nZero)
	lo := 1
	for k := 0; k < nBuckets; k++ {
		fmt.Printf("%7d - %7d | %s %d\n", lo, lo*10-1, bar(&sb, hist[k], max), hist[k])
		lo *= 10
	}
	fmt.Printf("      > %7d | %s %d\n", bf.DefaultMaxSteps, bar(&sb, nTimeout, max), nTimeout)

	if bestIdx < 0 {
		log.Printf("no program halted normally")
		os.Exit(1)
	}

	winner := programs[bestIdx]
	res := results[bestIdx]
	fmt.Println("\n=== Winner ===")
	fmt.Printf("Program (%d bytes, hex): %x\n", len(winner.Src), winner.Src)
	printable := make([]byte, len(winner.Src))
	for i, b := range winner.Src {
		if b < unicode.MaxASCII && unicode.IsPrint(rune(b)) {
			printable[i] = b
		} else {
			printable[i] = '.'
		}
	}
	fmt.Printf("Program (printable):    %s\n", printable)
	fmt.Printf("Steps: %d\n", res.Steps)
	if len(res.Out) == 0 {
		fmt.Println("Output: (none)")
	} else {
		fmt.Printf("Output (%d bytes): % 02x\n", len(res.Out), res.Out)
	}
}
