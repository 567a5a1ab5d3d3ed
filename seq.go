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

// baseCode is a 256-entry ASCII lookup table mapping nucleotide bytes to
// the {0..4} alphabet the DP core operates on (A=0, C=1, G=2, T=3,
// N/anything else=4). Lowercase bases map like their uppercase forms;
// IUPAC ambiguity codes fold to N.
var baseCode = func() (t [256]byte) {
	for i := range t {
		t[i] = N
	}
	t['A'], t['a'] = 0, 0
	t['C'], t['c'] = 1, 1
	t['G'], t['g'] = 2, 2
	t['T'], t['t'] = 3, 3
	return t
}()

// EncodeSeq maps an ASCII nucleotide sequence into the {0..4} byte
// alphabet in place, reusing dst's backing array when it's long enough
// and allocating a fresh one otherwise.
func EncodeSeq(dst []byte, src string) []byte {
	if cap(dst) < len(src) {
		dst = make([]byte, len(src))
	}
	dst = dst[:len(src)]
	for i := 0; i < len(src); i++ {
		dst[i] = baseCode[src[i]]
	}
	return dst
}

var baseChar = [AlphabetSize]byte{'A', 'C', 'G', 'T', 'N'}

// DecodeSeq renders a {0..4}-encoded sequence back to ASCII.
func DecodeSeq(b []byte) string {
	out := make([]byte, len(b))
	for i, v := range b {
		if int(v) < len(baseChar) {
			out[i] = baseChar[v]
		} else {
			out[i] = 'N'
		}
	}
	return string(out)
}
