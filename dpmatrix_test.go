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

func TestDPMatrixInitRejectsBadDimensions(t *testing.T) {
	m := NewDPMatrix(nil)
	if err := m.Init(0, 5, PrecisionS16, 0); err != ErrBadDimensions {
		t.Fatalf("Init(0,5,...) = %v, want ErrBadDimensions", err)
	}
	if err := m.Init(5, 0, PrecisionS16, 0); err != ErrBadDimensions {
		t.Fatalf("Init(5,0,...) = %v, want ErrBadDimensions", err)
	}
}

func TestDPMatrixEltRoundTrip(t *testing.T) {
	m := NewDPMatrix(nil)
	if err := m.Init(20, 7, PrecisionU8, 10); err != nil {
		t.Fatalf("Init: %v", err)
	}
	*m.hvec(0, 3) = fillVec(int16(10+42), m.Width())
	if got := m.elt(0, 3, MatH); got != 42 {
		t.Fatalf("elt(0,3,H) = %d, want 42 (bias removed)", got)
	}

	m2 := NewDPMatrix(nil)
	if err := m2.Init(20, 7, PrecisionS16, 0); err != nil {
		t.Fatalf("Init: %v", err)
	}
	*m2.fvec(1, 2) = fillVec(-17, m2.Width())
	// Every logical row mapping to vector-row 1 (rowelt==1) shares the
	// same underlying Vec, so elt() must read -17 back for all of them.
	for lane := 0; lane < m2.Width(); lane++ {
		row := 1 + lane*m2.SegLen()
		if row >= m2.NRow() {
			break
		}
		if got := m2.elt(row, 2, MatF); got != -17 {
			t.Fatalf("elt(%d,2,F) = %d, want -17", row, got)
		}
	}
}

func TestDPMatrixMaskMonotonicallyShedsBits(t *testing.T) {
	m := NewDPMatrix(nil)
	if err := m.Init(4, 4, PrecisionS16, 0); err != nil {
		t.Fatalf("Init: %v", err)
	}

	m.HMaskSet(0, 0, hBitDiagMatch|hBitFromE|hBitFromF)
	if !m.IsHMaskSet(0, 0) {
		t.Fatal("IsHMaskSet false after HMaskSet")
	}
	if got := m.HMask(0, 0); got != hBitDiagMatch|hBitFromE|hBitFromF {
		t.Fatalf("HMask = %03b, want all three bits set", got)
	}

	m.HMaskConsume(0, 0, hBitFromE)
	if got := m.HMask(0, 0); got != hBitDiagMatch|hBitFromF {
		t.Fatalf("HMask after consume = %03b, want hBitFromE cleared", got)
	}
	if !m.IsHMaskSet(0, 0) {
		t.Fatal("IsHMaskSet cleared by consume, should stay set")
	}
}

func TestDPMatrixReportedThroughIsMonotonic(t *testing.T) {
	m := NewDPMatrix(nil)
	if err := m.Init(3, 3, PrecisionS16, 0); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if m.ReportedThrough(1, 1) {
		t.Fatal("ReportedThrough true before being set")
	}
	m.SetReportedThrough(1, 1)
	if !m.ReportedThrough(1, 1) {
		t.Fatal("ReportedThrough false after SetReportedThrough")
	}
	// Setting other, unrelated bits must not clear it.
	m.HMaskSet(1, 1, hBitDiagMatch)
	m.EMaskSet(1, 1, eBitOpenFromH)
	m.FMaskSet(1, 1, fBitOpenFromH)
	if !m.ReportedThrough(1, 1) {
		t.Fatal("ReportedThrough cleared by an unrelated mask write")
	}
}

func TestDPMatrixResetPreservesBuffersForReuse(t *testing.T) {
	m := NewDPMatrix(nil)
	if err := m.Init(8, 8, PrecisionU8, 5); err != nil {
		t.Fatalf("Init: %v", err)
	}
	capBefore := m.vecs.Cap()
	m.Reset()
	if err := m.Init(8, 8, PrecisionU8, 5); err != nil {
		t.Fatalf("re-Init after Reset: %v", err)
	}
	if m.vecs.Cap() > capBefore*2 {
		t.Fatalf("Reset+Init grew capacity unexpectedly: %d vs %d", m.vecs.Cap(), capBefore)
	}
}
