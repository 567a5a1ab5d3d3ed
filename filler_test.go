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

import "testing"

// naiveScalarFill computes the same affine-gap local-alignment DP with
// a plain triple-nested scalar loop (no striping, no saturation), for
// cross-checking the vectorized Filler's scores.
func naiveScalarFill(query, reference []byte, sc Scoring) (h, e, f [][]int32, best int32) {
	nrow, ncol := len(query), len(reference)
	open, ext := sc.GapOpen(), sc.GapExtend()
	floor := sc.ScoreFloor()

	h = make([][]int32, nrow)
	e = make([][]int32, nrow)
	f = make([][]int32, nrow)
	for r := range h {
		h[r] = make([]int32, ncol)
		e[r] = make([]int32, ncol)
		f[r] = make([]int32, ncol)
	}

	const negInf = int32(-1 << 20)

	best = floor
	for c := 0; c < ncol; c++ {
		for r := 0; r < nrow; r++ {
			prevHc, prevEc := int32(0), negInf // H[r][c-1], E[r][c-1]
			if c > 0 {
				prevHc = h[r][c-1]
				prevEc = e[r][c-1]
			}
			e[r][c] = max2(prevEc-ext, prevHc-open-ext)

			prevHr, prevFr := int32(0), negInf // H[r-1][c], F[r-1][c]
			if r > 0 {
				prevHr = h[r-1][c]
				prevFr = f[r-1][c]
			}
			f[r][c] = max2(prevFr-ext, prevHr-open-ext)

			var diag int32
			if r > 0 && c > 0 {
				diag = h[r-1][c-1]
			}
			hd := diag + sc.ScoreMatch(query[r], reference[c])

			hv := hd
			if e[r][c] > hv {
				hv = e[r][c]
			}
			if f[r][c] > hv {
				hv = f[r][c]
			}
			if floor > hv {
				hv = floor
			}
			h[r][c] = hv
			if hv > best {
				best = hv
			}
		}
	}
	return h, e, f, best
}

func max2(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func fillAndCompare(t *testing.T, query, reference []byte, sc Scoring, prec Precision) {
	t.Helper()
	nh, _, _, nbest := naiveScalarFill(query, reference, sc)

	prof, err := BuildQueryProfile(query, sc, prec, nil)
	if err != nil {
		t.Fatalf("BuildQueryProfile: %v", err)
	}
	defer prof.Free()

	mat := NewDPMatrix(nil)
	if err := mat.Init(len(query), len(reference), prec, prof.Bias); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer mat.Free()

	filler := NewFiller()
	status, err := filler.Fill(mat, prof, reference, sc)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if status != FillOk {
		t.Fatalf("Fill status = %v, want FillOk", status)
	}

	var best int32 = sc.ScoreFloor()
	for c := 0; c < len(reference); c++ {
		for r := 0; r < len(query); r++ {
			got := mat.elt(r, c, MatH)
			if got != nh[r][c] {
				t.Fatalf("H[%d][%d] = %d, want %d (naive)", r, c, got, nh[r][c])
			}
			if got > best {
				best = got
			}
		}
	}
	if best != nbest {
		t.Fatalf("best score = %d, want %d", best, nbest)
	}
}

func TestFillMatchesNaiveScalar(t *testing.T) {
	sc := NewDefaultScoring(DefaultPenalties)
	cases := []struct {
		name string
		q, r string
	}{
		{"identical", "ACGTACGTAC", "ACGTACGTAC"},
		{"single mismatch", "ACGTACGTAC", "ACGTCCGTAC"},
		{"indel", "ACGTACGTAC", "ACGTACCGTAC"},
		{"unrelated", "AAAAAAAAAA", "TTTTTTTTTT"},
		{"query shorter than one vector", "AC", "ACGTACGTACGTACGTACGT"},
		{"with N", "ACGTNCGTAC", "ACGTACGTAC"},
	}
	for _, tc := range cases {
		for _, prec := range []Precision{PrecisionU8, PrecisionS16} {
			name := tc.name
			if prec == PrecisionU8 {
				name += "/u8"
			} else {
				name += "/s16"
			}
			t.Run(name, func(t *testing.T) {
				q := EncodeSeq(nil, tc.q)
				r := EncodeSeq(nil, tc.r)
				fillAndCompare(t, q, r, sc, prec)
			})
		}
	}
}

func TestFillBoundaryLengthsAtExactVectorMultiple(t *testing.T) {
	sc := NewDefaultScoring(DefaultPenalties)
	// 16 is exactly one u8 vector; 17 spills one lane into a second
	// segment, exercising the wraparound carry at segLen boundaries.
	for _, n := range []int{1, 15, 16, 17, 33} {
		seq := make([]byte, n)
		for i := range seq {
			seq[i] = byte(i % 4)
		}
		t.Run("", func(t *testing.T) {
			fillAndCompare(t, seq, seq, sc, PrecisionU8)
		})
	}
}

func TestFillHDominatesEAndF(t *testing.T) {
	sc := NewDefaultScoring(DefaultPenalties)
	q := EncodeSeq(nil, "ACGTACGTACGTACGTACGT")
	r := EncodeSeq(nil, "ACGTCCGTACGTTTGTACCT")

	prof, err := BuildQueryProfile(q, sc, PrecisionS16, nil)
	if err != nil {
		t.Fatalf("BuildQueryProfile: %v", err)
	}
	defer prof.Free()

	mat := NewDPMatrix(nil)
	if err := mat.Init(len(q), len(r), PrecisionS16, prof.Bias); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer mat.Free()

	filler := NewFiller()
	if status, err := filler.Fill(mat, prof, r, sc); err != nil || status != FillOk {
		t.Fatalf("Fill: status=%v err=%v", status, err)
	}

	for c := 0; c < len(r); c++ {
		for row := 0; row < len(q); row++ {
			h, e, f := mat.elt(row, c, MatH), mat.elt(row, c, MatE), mat.elt(row, c, MatF)
			if h < e {
				t.Fatalf("H[%d][%d]=%d < E=%d", row, c, h, e)
			}
			if h < f {
				t.Fatalf("H[%d][%d]=%d < F=%d", row, c, h, f)
			}
		}
	}
}

func TestFillDetectsU8Saturation(t *testing.T) {
	// A long run of matches at a generous match bonus overflows the
	// biased u8 lane range well before the sequences end.
	p := Penalties{Match: 100, Mismatch: 4, NPenalty: 4, GapOpen: 6, GapExtend: 1, Floor: 0}
	sc := NewDefaultScoring(p)
	seq := make([]byte, 64)
	for i := range seq {
		seq[i] = byte(i % 4)
	}

	prof, err := BuildQueryProfile(seq, sc, PrecisionU8, nil)
	if err != nil {
		// Overflow may already be detected at profile-build time; that
		// also satisfies "the caller must fall back to s16".
		return
	}
	defer prof.Free()

	mat := NewDPMatrix(nil)
	if err := mat.Init(len(seq), len(seq), PrecisionU8, prof.Bias); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer mat.Free()

	filler := NewFiller()
	status, err := filler.Fill(mat, prof, seq, sc)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if status != FillSaturated {
		t.Fatalf("Fill status = %v, want FillSaturated", status)
	}
}
