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

// FillStatus is the outcome of a Filler.Fill call (spec §6).
type FillStatus int

const (
	FillOk FillStatus = iota
	FillSaturated
	FillFailed
)

func (s FillStatus) String() string {
	switch s {
	case FillOk:
		return "Ok"
	case FillSaturated:
		return "Saturated"
	default:
		return "Failed"
	}
}

// Filler fills one DPMatrix at a time using a Farrar-style striped
// column update with a lazy-F fix-up pass (spec §4.4). It owns its own
// Metrics value; combine several Fillers' metrics with MetricsSink.
type Filler struct {
	Metrics Metrics
}

// NewFiller returns a Filler with zeroed metrics.
func NewFiller() *Filler {
	return &Filler{}
}

// Fill fills matrix column by column against reference (bytes in
// {0..4}) using profile and sc. Reference and the query profile must
// agree on precision/bias; the matrix must already be Init'd with the
// right dimensions.
func (f *Filler) Fill(mat *DPMatrix, profile *QueryProfile, reference []byte, sc Scoring) (FillStatus, error) {
	if mat.NCol() != len(reference) || mat.NRow() != profile.Q {
		f.Metrics.DPsFailed++
		return FillFailed, ErrBadDimensions
	}
	f.Metrics.DPsTried++

	w := mat.Width()
	prec := mat.Precision()
	segLen := mat.SegLen()
	open := int16(sc.GapOpen())
	ext := int16(sc.GapExtend())
	openExt := open + ext

	floorRaw := sc.ScoreFloor()
	floorBiased := floorRaw
	if prec == PrecisionU8 {
		floorBiased += mat.Bias()
	}
	floorVec := fillVec(int16(floorBiased), w)
	negInf := int16(floorS16)
	if prec == PrecisionU8 {
		negInf = 0 // unsigned space has no true -inf; 0 already saturates correctly.
	}
	negInfVec := fillVec(negInf, w)

	for c := 0; c < mat.NCol(); c++ {
		cref := reference[c]
		if int(cref) >= AlphabetSize {
			f.Metrics.DPsFailed++
			return FillFailed, ErrBadDimensions
		}

		// Step 1: E vectors, purely per-vector (no cross-vector shift).
		for r := 0; r < segLen; r++ {
			var prevE Vec
			if c > 0 {
				prevE = *mat.evec(r, c-1)
			} else {
				prevE = negInfVec
			}
			prevH := mat.hvecPrevCol(r, c)
			a := subScalarSat(prevE, ext, w, prec)
			b := subScalarSat(prevH, openExt, w, prec)
			*mat.evec(r, c) = maxOf(a, b, w)
		}

		// Step 2: main pass computing Hd (diagonal, shifted from column
		// c-1), F (vertical carry within this column) and H = max(Hd,E,F,floor).
		// Vector-row 0's true predecessor (row -1 of vector segLen-1,
		// wrapped) isn't known yet on this first pass, so its F seeds
		// from -inf; the fix-up loop below corrects it.
		f.runColumnPass(mat, profile, cref, c, w, segLen, prec, openExt, ext, floorVec, negInfVec, negInfVec, nil)
		f.Metrics.InnerIters += int64(segLen)

		// Lazy-F fix-up: reseed the wraparound carry from the H and F
		// vectors we just computed at vector-row segLen-1, and
		// reprocess until no H value in the column changes. Each pass
		// carries the vertical gap across one more lane boundary, so the
		// loop is bounded by w-1 passes (spec §4.4, GLOSSARY "lazy-F
		// fix-up").
		for pass := 1; pass < w; pass++ {
			wrapH := shiftLanesUp(*mat.hvec(segLen-1, c), negInf, w)
			wrapF := shiftLanesUp(*mat.fvec(segLen-1, c), negInf, w)
			changed := f.runColumnPass(mat, profile, cref, c, w, segLen, prec, openExt, ext, floorVec, wrapH, wrapF, mat)
			f.Metrics.FixupIters++
			if !changed {
				break
			}
		}

		if s := f.checkSaturation(mat, c, segLen, prec); s {
			f.Metrics.DPsSaturated++
			return FillSaturated, nil
		}

		f.computeColumnMasks(mat, profile, cref, c, sc, open, ext, floorRaw)

		f.Metrics.ColumnsFilled++
		f.Metrics.CellsFilled += int64(mat.NRow())
	}

	f.Metrics.DPsSucceeded++
	return FillOk, nil
}

// runColumnPass is shared by the initial fill and every lazy-F fix-up
// pass. wrapH and wrapF are the shifted H and F contributions from
// vector-row segLen-1's last lane, used only when computing
// vector-row 0's F candidate (spec §4.4 "carrying F via a byte/word
// shift across lanes"). When compareAgainst is non-nil, the pass
// reports whether any resulting H vector differs from what
// compareAgainst currently stores (used for fix-up convergence); the
// initial pass passes compareAgainst=nil and its return value is
// ignored by the caller.
func (f *Filler) runColumnPass(mat *DPMatrix, profile *QueryProfile, cref byte, c, w, segLen int, prec Precision, openExt, ext int16, floorVec Vec, wrapH, wrapF Vec, compareAgainst *DPMatrix) bool {
	changed := false
	var prevH, prevF Vec
	for r := 0; r < segLen; r++ {
		// Diagonal candidate Hd, from column c-1 shifted by one lane
		// at vector-row 0 (the wraparound described in spec §4.4/§9).
		var hdSrc Vec
		if r == 0 {
			if c == 0 {
				hdSrc = fillVec(int16(mat.Bias()), w) // boundary: raw 0 for row -1
			} else {
				hdSrc = shiftLanesUp(*mat.hvec(segLen-1, c-1), int16(mat.Bias()), w)
			}
		} else {
			hdSrc = mat.hvecPrevCol(r-1, c)
		}
		prof := profile.At(cref, r)
		var hd Vec
		if prec == PrecisionU8 {
			hd = addSat(subScalarSat(hdSrc, int16(mat.Bias()), w, PrecisionS16), prof, w, prec)
		} else {
			hd = addSat(hdSrc, prof, w, prec)
		}

		e := *mat.evec(r, c)

		var fCand Vec
		if r == 0 {
			a := subScalarSat(wrapH, openExt, w, prec)
			b := subScalarSat(wrapF, ext, w, prec)
			fCand = maxOf(a, b, w)
		} else {
			a := subScalarSat(prevH, openExt, w, prec)
			b := subScalarSat(prevF, ext, w, prec)
			fCand = maxOf(a, b, w)
		}

		hNew := max4(hd, e, fCand, floorVec, w)

		if compareAgainst != nil {
			old := *compareAgainst.hvec(r, c)
			if !equalLanes(old, hNew, w) {
				changed = true
			}
		}

		*mat.hvec(r, c) = hNew
		*mat.fvec(r, c) = fCand
		prevH, prevF = hNew, fCand
	}
	return changed
}

// checkSaturation reports whether any H lane in column c reached the
// u8 saturation ceiling (spec §4.4 "Saturation").
func (f *Filler) checkSaturation(mat *DPMatrix, c, segLen int, prec Precision) bool {
	if prec != PrecisionU8 {
		return false
	}
	for r := 0; r < segLen; r++ {
		v := mat.hvec(r, c)
		for i := 0; i < mat.Width(); i++ {
			if v.L[i] >= satU8Max {
				return true
			}
		}
	}
	return false
}

// computeColumnMasks derives and stores each scalar cell's backtrack
// mask for column c eagerly, right after the column converges (spec §9
// "eager, cheap if backtraces are frequent"). Masks are written only
// here, matching spec §4.4's "written only on the first fill".
func (f *Filler) computeColumnMasks(mat *DPMatrix, profile *QueryProfile, cref byte, c int, sc Scoring, open, ext int16, floorRaw int32) {
	openExt := int32(open) + int32(ext)
	for row := 0; row < mat.NRow(); row++ {
		hbits, ebits, fbits := computeCellMasks(mat, profile, cref, row, c, sc, openExt, int32(ext))
		mat.HMaskSet(row, c, hbits)
		mat.EMaskSet(row, c, ebits)
		mat.FMaskSet(row, c, fbits)
	}
}

// computeCellMasks derives the H/E/F predecessor bits for a single
// scalar cell (row, col) against reference symbol cref, by recomputing
// the score equation each matrix satisfies and testing which
// predecessor(s) achieve the stored value (spec §4.5 step 3, "lazily
// compute the mask by recomputing the score equation"). Shared by the
// eager fill-time pass and Backtracer's lazy fallback so both produce
// bit-for-bit identical masks.
func computeCellMasks(mat *DPMatrix, profile *QueryProfile, cref byte, row, c int, sc Scoring, openExt, ext int32) (hbits, ebits, fbits uint16) {
	var diagPrev int32
	if row == 0 || c == 0 {
		diagPrev = 0
	} else {
		diagPrev = mat.elt(row-1, c-1, MatH)
	}
	qb := profile.queryAt(row)
	matchScore := sc.ScoreMatch(qb, cref)
	diagCandidate := diagPrev + matchScore

	eRaw := mat.elt(row, c, MatE)
	fRaw := mat.elt(row, c, MatF)
	hRaw := mat.elt(row, c, MatH)

	if diagCandidate == hRaw {
		if isMatchByte(qb, cref) {
			hbits |= hBitDiagMatch
		} else {
			hbits |= hBitDiagMismatch
		}
	}
	if eRaw == hRaw {
		hbits |= hBitFromE
	}
	if fRaw == hRaw {
		hbits |= hBitFromF
	}

	var openFromH int32
	if c == 0 {
		openFromH = -openExt
	} else {
		openFromH = mat.elt(row, c-1, MatH) - openExt
	}
	if eRaw == openFromH {
		ebits |= eBitOpenFromH
	}
	if c > 0 {
		extendFromE := mat.elt(row, c-1, MatE) - ext
		if eRaw == extendFromE {
			ebits |= eBitExtendFromE
		}
	}

	if row > 0 {
		openFromHf := mat.elt(row-1, c, MatH) - openExt
		extendFromF := mat.elt(row-1, c, MatF) - ext
		if fRaw == openFromHf {
			fbits |= fBitOpenFromH
		}
		if fRaw == extendFromF {
			fbits |= fBitExtendFromF
		}
	}
	return hbits, ebits, fbits
}

func isMatchByte(a, b byte) bool {
	return a == b && a != N
}
