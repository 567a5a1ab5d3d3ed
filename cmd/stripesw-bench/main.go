// Copyright © 2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"flag"

	"github.com/pkg/profile"
	"github.com/shenwei356/stripesw"
)

var version = "0.1.0"

func main() {
	app := filepath.Base(os.Args[0])
	usage := fmt.Sprintf(`
Striped SIMD Smith-Waterman local alignment in Golang

 Author: Wei Shen <shenwei356@gmail.com>
   Code: https://github.com/shenwei356/stripesw
Version: v%s

Usage:
  1. Align two sequences from the positional arguments.

        %s [options] <query seq> <target seq>

  2. Align sequence pairs from an input file, one FASTA-like
     record pair per two lines, '>' prefixing the query and '<'
     prefixing the target.

        %s [options] -i input.txt

Options/Flags:
`, version, app, app)

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	help := flag.Bool("h", false, "print help message")
	infile := flag.String("i", "", "input file")
	noOutput := flag.Bool("N", false, "do not output alignment (for benchmark)")
	wide := flag.Bool("16", false, "start directly in 16-bit precision, skipping the 8-bit attempt")
	seed := flag.Uint64("seed", 1, "backtrace tie-break random seed")
	core := flag.Int("core", 0, "require the backtrace to pass through the <core> rows/cols ending at the best-scoring cell (its start cell) before terminating; 0 disables")

	pprofCPU := flag.Bool("p", false, "cpu pprof. go tool pprof -http=:8080 cpu.pprof")
	pprofMem := flag.Bool("m", false, "mem pprof. go tool pprof -http=:8080 mem.pprof")

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	if *pprofCPU {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	} else if *pprofMem {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	outfh := bufio.NewWriter(os.Stdout)
	defer outfh.Flush()

	sc := stripesw.NewDefaultScoring(stripesw.DefaultPenalties)
	tal := stripesw.NewMutexMemoryTally()
	rnd := stripesw.NewDefaultRandomSource(*seed)

	falign2Seq := func(q, t string) {
		qb := stripesw.EncodeSeq(nil, q)
		tb := stripesw.EncodeSeq(nil, t)

		prob := stripesw.NewDPProblem(sc, tal)
		defer stripesw.RecycleDPProblem(prob)

		prec := stripesw.PrecisionU8
		if *wide {
			prec = stripesw.PrecisionS16
		}

		var status stripesw.FillStatus
		for {
			if err := prob.Configure(qb, tb, prec); err != nil {
				checkError(err)
			}
			var err error
			status, err = prob.Fill()
			checkError(err)
			if status != stripesw.FillSaturated || prec == stripesw.PrecisionS16 {
				break
			}
			prec = stripesw.PrecisionS16
		}
		if status != stripesw.FillOk {
			fmt.Fprintf(outfh, "query   %s\ntarget  %s\nno alignment (status: %s)\n\n", q, t, status)
			return
		}

		row, col, score := prob.BestCell()
		if *core > 0 {
			prob.SetCore(row-*core+1, row+1, col-*core+1, col+1)
		}
		align := prob.Backtrace(row, col, rnd)
		if align == nil {
			fmt.Fprintf(outfh, "query   %s\ntarget  %s\nno alignment (backtrace failed)\n\n", q, t)
			return
		}
		defer stripesw.RecycleAlignment(align)

		if !*noOutput {
			fmt.Fprintf(outfh, "query   %s\n", q)
			fmt.Fprintf(outfh, "target  %s\n", t)
			fmt.Fprintf(outfh, "cigar   %s\n", align.CIGAR())
			alignLen := align.Matches + align.Mismatches + align.Gaps
			fmt.Fprintf(outfh, "score: %d, length: %d, matches: %d (%.2f%%), gaps: %d, gap regions: %d\n",
				score, alignLen, align.Matches, float64(align.Matches)/float64(alignLen)*100,
				align.Gaps, align.GapRegions)
			fmt.Fprintln(outfh)
		}
	}

	var q, t string

	if *infile == "" {
		if flag.NArg() != 2 {
			checkError(fmt.Errorf("if flag -i not given, please give me two sequences"))
		}
		q = flag.Arg(0)
		t = flag.Arg(1)

		falign2Seq(q, t)

		return
	}

	fh, err := os.Open(*infile)
	if err != nil {
		checkError(fmt.Errorf("failed to read file: %s", *infile))
	}
	defer fh.Close()

	scanner := bufio.NewScanner(fh)
	var more bool
	for scanner.Scan() {
		q = scanner.Text()
		more = scanner.Scan()
		if !more {
			break
		}
		t = scanner.Text()

		falign2Seq(q[1:], t[1:])
	}
	if err = scanner.Err(); err != nil {
		checkError(fmt.Errorf("something wrong in reading file: %s", *infile))
	}
}

func checkError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
