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

// QueryProfile is the striped, per-reference-symbol score table spec
// §4.1 describes: profile[c][i] holds the W lanewise scores of query
// positions {i, i+segLen, i+2*segLen, ...} against reference symbol c.
type QueryProfile struct {
	Q       int
	W       int
	SegLen  int
	Bias    int32
	Prec    Precision
	tables  [AlphabetSize][]Vec // tables[c][i], i in [0, SegLen)
	query   []byte
	tal     MemoryTally
	nvecs   int
}

// BuildQueryProfile constructs a QueryProfile for query (bytes in
// {0..4}) under scoring sc at precision prec. In PrecisionU8 mode a bias
// is computed per spec §4.1 and every lane is shifted up by it; if any
// resulting lane would exceed 255 it returns ErrScoreOverflow so the
// caller can retry with PrecisionS16.
func BuildQueryProfile(query []byte, sc Scoring, prec Precision, tal MemoryTally) (*QueryProfile, error) {
	if tal == nil {
		tal = NopMemoryTally{}
	}
	w := prec.Lanes()
	q := len(query)
	segLen := (q + w - 1) / w
	if segLen < 1 {
		segLen = 1
	}

	var bias int32
	if prec == PrecisionU8 {
		bias = computeBias(sc)
	}

	var pad int32
	if prec == PrecisionU8 {
		// Neutral padding value (spec §3): raw score 0, biased.
		// Padding lanes are never read through elt() (row<Q only), but
		// must still be representable and inert under max().
		pad = bias
	} else {
		pad = floorS16
	}

	prof := &QueryProfile{Q: q, W: w, SegLen: segLen, Bias: bias, Prec: prec, tal: tal, query: query}
	for c := 0; c < AlphabetSize; c++ {
		table := make([]Vec, segLen)
		for i := 0; i < segLen; i++ {
			var v Vec
			for j := 0; j < w; j++ {
				pos := i + j*segLen
				if pos >= q {
					v.L[j] = int16(pad)
					continue
				}
				raw := sc.ScoreMatch(query[pos], byte(c))
				val := raw
				if prec == PrecisionU8 {
					val += bias
					if val < 0 || val > satU8Max {
						return nil, ErrScoreOverflow
					}
				}
				v.L[j] = int16(val)
			}
			table[i] = v
		}
		prof.tables[c] = table
		prof.nvecs += segLen
	}
	tal.Add(CategoryQueryProfile, int64(prof.nvecs)*16)
	return prof, nil
}

// At returns profile[c][i].
func (p *QueryProfile) At(c byte, i int) Vec {
	return p.tables[c][i]
}

// queryAt returns the raw query base at logical row, used by the mask
// computation pass to tell diagonal match from diagonal mismatch.
func (p *QueryProfile) queryAt(row int) byte {
	return p.query[row]
}

// Free reports the profile's storage back to the memory tally. The
// QueryProfile itself is owned by the caller's DP problem and is not
// pooled (spec §3, "Ownership").
func (p *QueryProfile) Free() {
	if p.nvecs > 0 {
		p.tal.Del(CategoryQueryProfile, int64(p.nvecs)*16)
		p.nvecs = 0
	}
}
