package main

/*
bf runs classical Brainfuck programs in batch: one program per stdin
line, one result per stdout line.

   OK <hex bytes>     halted normally, output as hex
   OK (no output)     halted normally, nothing written
   ERR                malformed bracket nesting

Blank lines are skipped; sources longer than 128 bytes are truncated.
*/

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/davidgedye/alife/bf"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
)

var threads = flag.Int("threads", 0, "Worker threads; 0 = all available CPUs")

func main() {
	shutdown := grail.Init()
	defer shutdown()

	var programs []bf.Program
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		programs = append(programs, bf.Program{Src: []byte(line)})
	}
	if err := sc.Err(); err != nil {
		log.Fatalf("stdin: %v", err)
	}
	if len(programs) == 0 {
		return
	}

	results := make([]bf.Result, len(programs))
	bf.RunBatch(programs, results, *threads)

	w := bufio.NewWriter(os.Stdout)
	for _, res := range results {
		switch {
		case !res.Halted:
			fmt.Fprintln(w, "ERR")
		case len(res.Out) == 0:
			fmt.Fprintln(w, "OK (no output)")
		default:
			w.WriteString("OK")
			for _, b := range res.Out {
				fmt.Fprintf(w, " %02x", b)
			}
			w.WriteByte('\n')
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("stdout: %v", err)
	}
}
