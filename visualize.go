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

package stripesw

import (
	"fmt"
	"io"
)

// DumpScores writes mat's scalar scores for mtype as a tab-delimited
// text table, one row per query position, one column per reference
// position. Debug-only; never called on the fill/backtrace hot path.
func DumpScores(w io.Writer, mat *DPMatrix, mtype Matrix) {
	fmt.Fprint(w, "row")
	for c := 0; c < mat.NCol(); c++ {
		fmt.Fprintf(w, "\t%d", c)
	}
	fmt.Fprintln(w)
	for r := 0; r < mat.NRow(); r++ {
		fmt.Fprintf(w, "%d", r)
		for c := 0; c < mat.NCol(); c++ {
			fmt.Fprintf(w, "\t%d", mat.Elt(r, c, mtype))
		}
		fmt.Fprintln(w)
	}
}

// DumpMasks writes mat's per-cell mask words as a tab-delimited text
// table, rendering each cell as reportedThrough/H/E/F bit groups, e.g.
// ".:h101:e00:f00" for reportedThrough=false, hMask=0b101, eMask=0, fMask=0.
func DumpMasks(w io.Writer, mat *DPMatrix) {
	fmt.Fprint(w, "row")
	for c := 0; c < mat.NCol(); c++ {
		fmt.Fprintf(w, "\t%d", c)
	}
	fmt.Fprintln(w)
	for r := 0; r < mat.NRow(); r++ {
		fmt.Fprintf(w, "%d", r)
		for c := 0; c < mat.NCol(); c++ {
			rt := "."
			if mat.ReportedThrough(r, c) {
				rt = "R"
			}
			fmt.Fprintf(w, "\t%s:h%03b:e%02b:f%02b", rt, mat.HMask(r, c), mat.EMask(r, c), mat.FMask(r, c))
		}
		fmt.Fprintln(w)
	}
}
