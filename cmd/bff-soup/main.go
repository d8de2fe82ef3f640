// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

/*
bff-soup evolves a primordial soup of self-modifying BFF programs.

Each epoch the population is shuffled into random pairs, every pair is
concatenated and executed in place (self-modification is the only way
anything ever replicates), and a Poisson-sampled sprinkle of random
byte mutations is scattered over the arena.  Instruction density and
lineage statistics go to stdout on a fixed cadence:

   bff-soup --epochs 100000 --mutation 1e-6 --seed 1 --stats 500

With --runlog PATH the per-pair step counts of every epoch are appended
to PATH as raw little-endian uint32s (gzipped if PATH ends in .gz).
*/

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/davidgedye/alife/bff"
	"github.com/davidgedye/alife/soup"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
)

var (
	epochs        = flag.Int("epochs", 10000, "Number of epochs to run")
	threads       = flag.Int("threads", 0, "Worker threads; 0 = all available CPUs, capped at 256")
	seed          = flag.Uint64("seed", 0, "PRNG seed; 0 derives a process-local seed")
	statsInterval = flag.Int("stats", 100, "Emit statistics every this many epochs (epoch 0 always reports)")
	mutationRate  = flag.Float64("mutation", 0.0, "Per-cell mutation probability per epoch")
	runlogPath    = flag.String("runlog", "", "Append per-pair step counts to this file; .gz compresses")
	soupSize      = flag.Int("soup-size", soup.DefaultSoupSize, "Number of half-tapes in the arena; must be a power of two")
)

// writeStats emits one stdout row.  pairSteps is nil at epoch 0, before
// anything has run.
func writeStats(w *tsv.Writer, epoch int, st soup.Stats, pairSteps []uint32) {
	var meanSteps float64
	var maxSteps uint32
	if len(pairSteps) > 0 {
		var sum float64
		for _, v := range pairSteps {
			sum += float64(v)
			if v > maxSteps {
				maxSteps = v
			}
		}
		meanSteps = sum / float64(len(pairSteps))
	}
	w.WriteString(strconv.Itoa(epoch))
	w.WriteString(strconv.FormatFloat(st.MeanOps, 'f', 4, 64))
	w.WriteString(strconv.FormatFloat(st.MedianOps, 'f', 1, 64))
	w.WriteString(strconv.FormatFloat(meanSteps, 'f', 1, 64))
	w.WriteUint32(maxSteps)
	w.WriteString(strconv.Itoa(st.UniqueIDs))
	w.WriteUint32(st.ModalID)
	w.WriteString(fmt.Sprintf("|%s| (%d)", st.Representative, st.ModalCount))
	if err := w.EndLine(); err != nil {
		log.Fatalf("stdout: %v", err)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("stdout: %v", err)
	}
}

func main() {
	shutdown := grail.Init()
	defer shutdown()
	ctx := vcontext.Background()

	if *epochs < 0 || *statsInterval <= 0 {
		log.Fatalf("bad --epochs %d / --stats %d", *epochs, *statsInterval)
	}
	opts := soup.DefaultOpts
	opts.SoupSize = *soupSize
	opts.Threads = *threads
	opts.Seed = *seed
	opts.MutationRate = *mutationRate
	s, err := soup.New(opts)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer s.Close()

	log.Printf("BFF soup: %d tapes x %d cells, %d epochs, %d threads, stats every %d, mutation rate %.2g",
		s.Size(), bff.HalfLen, *epochs, s.Threads(), *statsInterval, *mutationRate)
	log.Printf("seed: %d", s.Seed())

	var runlog *soup.RunLog
	if *runlogPath != "" {
		if runlog, err = soup.CreateRunLog(ctx, *runlogPath); err != nil {
			log.Fatalf("%v", err)
		}
	}

	out := tsv.NewWriter(os.Stdout)
	out.WriteString("epoch\tmean_ops\tmedian_ops\tmean_steps\tmax_steps\tunique_ids\tmodal_id\trepresentative_tape (modal_count)")
	if err = out.EndLine(); err != nil {
		log.Fatalf("stdout: %v", err)
	}
	writeStats(out, 0, s.Stats(), nil)

	for epoch := 1; epoch <= *epochs; epoch++ {
		s.Epoch()
		s.Mutate(*mutationRate, epoch)
		if runlog != nil {
			if err = runlog.Append(s.PairSteps()); err != nil {
				log.Fatalf("%v", err)
			}
		}
		if epoch%*statsInterval == 0 {
			writeStats(out, epoch, s.Stats(), s.PairSteps())
		}
	}

	if runlog != nil {
		if err = runlog.Close(ctx); err != nil {
			log.Fatalf("%v", err)
		}
	}
	log.Printf("soup fingerprint: %016x", s.Fingerprint())
}
