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

func TestEncodeDecodeSeqRoundTrip(t *testing.T) {
	in := "ACGTacgtN"
	enc := EncodeSeq(nil, in)
	want := []byte{0, 1, 2, 3, 0, 1, 2, 3, 4}
	for i, v := range want {
		if enc[i] != v {
			t.Fatalf("enc[%d] = %d, want %d", i, enc[i], v)
		}
	}
	if got := DecodeSeq(enc); got != "ACGTACGTN" {
		t.Fatalf("DecodeSeq round trip = %q, want %q", got, "ACGTACGTN")
	}
}

func TestEncodeSeqAmbiguityCodesFoldToN(t *testing.T) {
	enc := EncodeSeq(nil, "RYSWKM")
	for i, v := range enc {
		if v != N {
			t.Fatalf("enc[%d] = %d, want N (%d) for an IUPAC ambiguity code", i, v, N)
		}
	}
}

func TestEncodeSeqReusesBackingArrayWhenLargeEnough(t *testing.T) {
	dst := make([]byte, 8)
	out := EncodeSeq(dst[:0], "ACGT")
	if len(out) != 4 {
		t.Fatalf("len(out) = %d, want 4", len(out))
	}
	if cap(out) != cap(dst) {
		t.Fatalf("EncodeSeq reallocated despite sufficient capacity: cap(out)=%d, cap(dst)=%d", cap(out), cap(dst))
	}
}
