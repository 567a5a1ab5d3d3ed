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

import "math"

// Precision selects the working lane width, mirroring the two SSE modes
// a striped filler can run in: 16 lanes of unsigned 8-bit, or 8 lanes of
// signed 16-bit (spec §1, §3).
type Precision int

const (
	// PrecisionU8 packs 16 biased u8 lanes per 128-bit vector.
	PrecisionU8 Precision = iota
	// PrecisionS16 packs 8 signed s16 lanes per 128-bit vector.
	PrecisionS16
)

// Lanes returns the number of lanes W for the precision.
func (p Precision) Lanes() int {
	if p == PrecisionU8 {
		return 16
	}
	return 8
}

// maxLanes is the widest lane count either precision uses; Vec always
// carries this many int16 slots so both modes share one representation,
// the way grailbio/base/biosimd's !amd64 generic fallback stands in
// scalar Go loops for what a real build vectorizes with intrinsics.
const maxLanes = 16

// satU8Max is the saturation ceiling for biased u8 lanes.
const satU8Max = 255

// floorS16 is the sentinel used as "negative infinity" in s16 mode,
// with enough margin that a chain of gap-extend subtractions can't wrap
// around int16 (spec §4.4 "sentinel is INT16_MIN + margin").
const floorS16 = math.MinInt16 / 2

// Vec is one 128-bit striped SIMD lane group, represented portably as
// 16 int16 slots. Only the first Precision.Lanes() slots are meaningful;
// the representation is shared across precisions to keep VectorBuffer's
// storage and addressing uniform (spec §4.3's quartet stride math).
type Vec struct {
	L [maxLanes]int16
}

// fillVec returns a Vec with every lane (up to w) set to v.
func fillVec(v int16, w int) (out Vec) {
	for i := 0; i < w; i++ {
		out.L[i] = v
	}
	return out
}

func clampU8(x int32) int16 {
	if x < 0 {
		return 0
	}
	if x > satU8Max {
		return satU8Max
	}
	return int16(x)
}

func clampS16(x int32) int16 {
	if x < floorS16 {
		return floorS16
	}
	if x > math.MaxInt16-1024 {
		return math.MaxInt16 - 1024
	}
	return int16(x)
}

func clamp(x int32, p Precision) int16 {
	if p == PrecisionU8 {
		return clampU8(x)
	}
	return clampS16(x)
}

// addSat returns a+b lanewise, clamped per precision, over w lanes.
func addSat(a, b Vec, w int, p Precision) (out Vec) {
	for i := 0; i < w; i++ {
		out.L[i] = clamp(int32(a.L[i])+int32(b.L[i]), p)
	}
	return out
}

// subScalarSat returns a-delta lanewise, clamped per precision.
func subScalarSat(a Vec, delta int16, w int, p Precision) (out Vec) {
	for i := 0; i < w; i++ {
		out.L[i] = clamp(int32(a.L[i])-int32(delta), p)
	}
	return out
}

// max3 returns the lanewise max of a, b and c over w lanes.
func max3(a, b, c Vec, w int) (out Vec) {
	for i := 0; i < w; i++ {
		m := a.L[i]
		if b.L[i] > m {
			m = b.L[i]
		}
		if c.L[i] > m {
			m = c.L[i]
		}
		out.L[i] = m
	}
	return out
}

// max4 returns the lanewise max of a, b, c and d over w lanes.
func max4(a, b, c, d Vec, w int) (out Vec) {
	for i := 0; i < w; i++ {
		m := a.L[i]
		if b.L[i] > m {
			m = b.L[i]
		}
		if c.L[i] > m {
			m = c.L[i]
		}
		if d.L[i] > m {
			m = d.L[i]
		}
		out.L[i] = m
	}
	return out
}

// maxOf returns the lanewise max of a and b over w lanes.
func maxOf(a, b Vec, w int) (out Vec) {
	for i := 0; i < w; i++ {
		if a.L[i] > b.L[i] {
			out.L[i] = a.L[i]
		} else {
			out.L[i] = b.L[i]
		}
	}
	return out
}

// equalLanes reports whether a and b agree on the first w lanes.
func equalLanes(a, b Vec, w int) bool {
	for i := 0; i < w; i++ {
		if a.L[i] != b.L[i] {
			return false
		}
	}
	return true
}

// shiftLanesUp returns a vector where lane 0 is boundary and lane j
// (j>0, j<w) is a.L[j-1]; the outgoing lane a.L[w-1] is dropped. This is
// the single explicit "shift by one lane" operation Farrar's striped
// layout needs at each vector-row boundary (spec §4.4, GLOSSARY "lazy-F
// fix-up").
func shiftLanesUp(a Vec, boundary int16, w int) (out Vec) {
	out.L[0] = boundary
	for i := 1; i < w; i++ {
		out.L[i] = a.L[i-1]
	}
	return out
}
