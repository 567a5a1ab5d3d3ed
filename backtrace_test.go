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

// fixedRandom always returns 0, making chooseBit deterministic: the
// lowest-numbered set bit wins every tie.
type fixedRandom struct{}

func (fixedRandom) Intn(int) int { return 0 }

func buildFilled(t *testing.T, q, r string, sc Scoring) (*DPMatrix, *QueryProfile) {
	t.Helper()
	qb := EncodeSeq(nil, q)
	rb := EncodeSeq(nil, r)

	prof, err := BuildQueryProfile(qb, sc, PrecisionS16, nil)
	if err != nil {
		t.Fatalf("BuildQueryProfile: %v", err)
	}
	mat := NewDPMatrix(nil)
	if err := mat.Init(len(qb), len(rb), PrecisionS16, prof.Bias); err != nil {
		t.Fatalf("Init: %v", err)
	}
	filler := NewFiller()
	if status, err := filler.Fill(mat, prof, rb, sc); err != nil || status != FillOk {
		t.Fatalf("Fill: status=%v err=%v", status, err)
	}
	return mat, prof
}

func TestBacktraceRecoversPerfectMatch(t *testing.T) {
	sc := NewDefaultScoring(DefaultPenalties)
	q, r := "ACGTACGTAC", "ACGTACGTAC"
	mat, prof := buildFilled(t, q, r, sc)
	rb := EncodeSeq(nil, r)

	bt := NewBacktracer()
	align := bt.Backtrace(mat, prof, rb, sc, len(q)-1, len(r)-1, fixedRandom{})
	if align == nil {
		t.Fatal("Backtrace returned nil for a perfect match")
	}
	defer RecycleAlignment(align)

	if align.CIGAR() != "10M" {
		t.Fatalf("CIGAR() = %q, want %q", align.CIGAR(), "10M")
	}
	if align.Matches != 10 || align.Mismatches != 0 || align.Gaps != 0 {
		t.Fatalf("tallies = %d/%d/%d, want 10/0/0", align.Matches, align.Mismatches, align.Gaps)
	}
}

func TestBacktraceReportsThroughBlocksReuse(t *testing.T) {
	sc := NewDefaultScoring(DefaultPenalties)
	q, r := "ACGTACGTAC", "ACGTACGTAC"
	mat, prof := buildFilled(t, q, r, sc)
	rb := EncodeSeq(nil, r)

	bt := NewBacktracer()
	first := bt.Backtrace(mat, prof, rb, sc, len(q)-1, len(r)-1, fixedRandom{})
	if first == nil {
		t.Fatal("first Backtrace unexpectedly failed")
	}
	RecycleAlignment(first)

	second := bt.Backtrace(mat, prof, rb, sc, len(q)-1, len(r)-1, fixedRandom{})
	if second != nil {
		RecycleAlignment(second)
		t.Fatal("second Backtrace from the same reported-through origin should fail")
	}
	if bt.Metrics.BacktraceFailures != 1 {
		t.Fatalf("BacktraceFailures = %d, want 1", bt.Metrics.BacktraceFailures)
	}
}

func TestBacktraceCoreRejection(t *testing.T) {
	sc := NewDefaultScoring(DefaultPenalties)
	q, r := "ACGTACGTAC", "ACGTACGTAC"
	mat, prof := buildFilled(t, q, r, sc)
	rb := EncodeSeq(nil, r)

	bt := NewBacktracer()
	// A core far outside the matrix can never be visited, so every walk
	// must fail with a core rejection instead of succeeding.
	bt.CoreRowLo, bt.CoreRowHi = 1000, 1001
	bt.CoreColLo, bt.CoreColHi = 1000, 1001

	align := bt.Backtrace(mat, prof, rb, sc, len(q)-1, len(r)-1, fixedRandom{})
	if align != nil {
		RecycleAlignment(align)
		t.Fatal("Backtrace succeeded despite an unreachable core rectangle")
	}
	if bt.Metrics.CoreRejections != 1 {
		t.Fatalf("CoreRejections = %d, want 1", bt.Metrics.CoreRejections)
	}
}

func TestBacktraceRejectsNWithoutAllowNtoN(t *testing.T) {
	p := DefaultPenalties
	p.AllowNN = false
	sc := NewDefaultScoring(p)
	q, r := "ACGTNCGTAC", "ACGTNCGTAC"
	mat, prof := buildFilled(t, q, r, sc)
	rb := EncodeSeq(nil, r)

	bt := NewBacktracer()
	align := bt.Backtrace(mat, prof, rb, sc, len(q)-1, len(r)-1, fixedRandom{})
	if align != nil {
		RecycleAlignment(align)
		t.Fatal("Backtrace should reject an N-to-N diagonal when AllowNtoN is false")
	}
	if bt.Metrics.NRejections != 1 {
		t.Fatalf("NRejections = %d, want 1", bt.Metrics.NRejections)
	}
}

func TestBacktraceAllowsNWithAllowNtoN(t *testing.T) {
	p := DefaultPenalties
	p.AllowNN = true
	sc := NewDefaultScoring(p)
	q, r := "ACGTNCGTAC", "ACGTNCGTAC"
	mat, prof := buildFilled(t, q, r, sc)
	rb := EncodeSeq(nil, r)

	bt := NewBacktracer()
	align := bt.Backtrace(mat, prof, rb, sc, len(q)-1, len(r)-1, fixedRandom{})
	if align == nil {
		t.Fatal("Backtrace should succeed through N-to-N when AllowNtoN is true")
	}
	RecycleAlignment(align)
}
