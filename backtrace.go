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

import "math/bits"

// Backtracer walks a filled DPMatrix's mask grid to recover one
// alignment per call (spec §4.5). It owns its own Metrics value; it
// also owns the core-rejection window, since "core" is explicitly
// left as a per-problem configurable (spec §4.5 "configurable core").
type Backtracer struct {
	Metrics Metrics

	// CoreRowLo/CoreRowHi/CoreColLo/CoreColHi define the half-open
	// rectangle [CoreRowLo,CoreRowHi) x [CoreColLo,CoreColHi) a
	// backtrace must pass through before it may legally terminate by
	// walking off the matrix's top or left edge. Zero-value
	// Backtracer disables the check (the whole matrix is core).
	CoreRowLo, CoreRowHi int
	CoreColLo, CoreColHi int
}

// NewBacktracer returns a Backtracer with core rejection disabled.
func NewBacktracer() *Backtracer {
	return &Backtracer{}
}

// coreEnabled reports whether a core rectangle was configured.
func (b *Backtracer) coreEnabled() bool {
	return b.CoreRowHi > b.CoreRowLo && b.CoreColHi > b.CoreColLo
}

func (b *Backtracer) inCore(r, c int) bool {
	if !b.coreEnabled() {
		return true
	}
	return r >= b.CoreRowLo && r < b.CoreRowHi && c >= b.CoreColLo && c < b.CoreColHi
}

type btCell struct {
	r, c int
	ct   Matrix
}

// Backtrace walks from H-level cell (r0,c0) back to an origin,
// returning the recovered Alignment, or nil if the walk fails (mask
// exhaustion, reportedThrough, core rejection or N rejection — all
// NoAlignment per spec §7, not errors). The caller owns the returned
// Alignment and must RecycleAlignment it.
func (b *Backtracer) Backtrace(mat *DPMatrix, profile *QueryProfile, reference []byte, sc Scoring, r0, c0 int, rnd RandomSource) *Alignment {
	b.Metrics.BacktraceStarts++
	floor := sc.ScoreFloor()

	align := NewAlignment()
	align.Score = mat.elt(r0, c0, MatH)
	align.QEnd, align.REnd = r0+1, c0+1

	cur := btCell{r0, c0, MatH}
	visitedCore := b.inCore(r0, c0)
	var traversedH [][2]int

	fail := func() *Alignment {
		RecycleAlignment(align)
		b.Metrics.BacktraceFailures++
		return nil
	}
	succeed := func(originR, originC int) *Alignment {
		if n := len(traversedH); n == 0 || traversedH[n-1] != [2]int{originR, originC} {
			traversedH = append(traversedH, [2]int{originR, originC})
		}
		for _, p := range traversedH {
			mat.SetReportedThrough(p[0], p[1])
		}
		align.QStart, align.RStart = originR, originC
		align.finalize()
		b.Metrics.BacktraceSuccesses++
		return align
	}

	for {
		r, c, ct := cur.r, cur.c, cur.ct

		if ct == MatH && mat.ReportedThrough(r, c) {
			return fail()
		}

		b.Metrics.CellsTraversed++
		if b.inCore(r, c) {
			visitedCore = true
		}

		score := mat.elt(r, c, ct)
		if ct == MatH && score <= floor {
			return succeed(r, c)
		}

		bitsSet, isSet := b.maskBits(mat, r, c, ct)
		if !isSet {
			hbits, ebits, fbits := computeCellMasks(mat, profile, reference[c], r, c, sc, int32(sc.GapOpen())+int32(sc.GapExtend()), sc.GapExtend())
			switch ct {
			case MatH:
				mat.HMaskSet(r, c, hbits)
				bitsSet = hbits
			case MatE:
				mat.EMaskSet(r, c, ebits)
				bitsSet = ebits
			default:
				mat.FMaskSet(r, c, fbits)
				bitsSet = fbits
			}
		}
		if bitsSet == 0 {
			return fail()
		}

		chosen := b.chooseBit(bitsSet, rnd)
		if bits.OnesCount16(bitsSet) > 1 {
			b.consume(mat, r, c, ct, chosen)
		}

		if ct == MatH {
			traversedH = append(traversedH, [2]int{r, c})
		}

		next, emit, boundary, ok := transition(r, c, ct, chosen)
		if !ok {
			return fail()
		}

		if emit != 0 {
			if emit == OpMatch || emit == OpMismatch {
				qb, rb := profile.queryAt(r), reference[c]
				if (qb == N || rb == N) && !sc.AllowNtoN() {
					b.Metrics.NRejections++
					return fail()
				}
			}
			align.add(emit)
		}

		if boundary {
			if !visitedCore {
				b.Metrics.CoreRejections++
				return fail()
			}
			return succeed(r, c)
		}

		cur = next
	}
}

func (b *Backtracer) maskBits(mat *DPMatrix, r, c int, ct Matrix) (uint16, bool) {
	switch ct {
	case MatH:
		return mat.HMask(r, c), mat.IsHMaskSet(r, c)
	case MatE:
		return mat.EMask(r, c), mat.IsEMaskSet(r, c)
	default:
		return mat.FMask(r, c), mat.IsFMaskSet(r, c)
	}
}

func (b *Backtracer) consume(mat *DPMatrix, r, c int, ct Matrix, bit uint16) {
	switch ct {
	case MatH:
		mat.HMaskConsume(r, c, bit)
	case MatE:
		mat.EMaskConsume(r, c, bit)
	default:
		mat.FMaskConsume(r, c, bit)
	}
}

// chooseBit uniformly picks one set bit out of word via rnd (spec
// §4.5 step 4, "uniformly choose one predecessor via rand").
func (b *Backtracer) chooseBit(word uint16, rnd RandomSource) uint16 {
	n := bits.OnesCount16(word)
	if n == 1 {
		return word
	}
	k := rnd.Intn(n)
	for i := 0; i < 16; i++ {
		bit := uint16(1) << uint(i)
		if word&bit == 0 {
			continue
		}
		if k == 0 {
			return bit
		}
		k--
	}
	return 0 // unreachable given n == OnesCount16(word)
}

// transition implements the state machine table of spec §4.5: given
// the current cell, matrix and the chosen predecessor bit, it returns
// the next (r,c,ct), the edit to emit (0 for none), and whether this
// move walks off the matrix's top or left edge (in which case next is
// meaningless and the caller must run the core-rejection check before
// treating it as a successful origin).
func transition(r, c int, ct Matrix, bit uint16) (next btCell, emit byte, boundary bool, ok bool) {
	switch ct {
	case MatH:
		switch bit {
		case hBitDiagMatch, hBitDiagMismatch:
			if bit == hBitDiagMatch {
				emit = OpMatch
			} else {
				emit = OpMismatch
			}
			if r == 0 || c == 0 {
				return btCell{}, emit, true, true
			}
			return btCell{r - 1, c - 1, MatH}, emit, false, true
		case hBitFromE:
			return btCell{r, c, MatE}, 0, false, true
		case hBitFromF:
			return btCell{r, c, MatF}, 0, false, true
		}
	case MatE:
		switch bit {
		case eBitOpenFromH:
			if c == 0 {
				return btCell{}, OpReadGap, true, true
			}
			return btCell{r, c - 1, MatH}, OpReadGap, false, true
		case eBitExtendFromE:
			return btCell{r, c - 1, MatE}, OpReadGap, false, true
		}
	case MatF:
		switch bit {
		case fBitOpenFromH:
			if r == 0 {
				return btCell{}, OpRefGap, true, true
			}
			return btCell{r - 1, c, MatH}, OpRefGap, false, true
		case fBitExtendFromF:
			return btCell{r - 1, c, MatF}, OpRefGap, false, true
		}
	}
	return btCell{}, 0, false, false
}
