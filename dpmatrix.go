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

// slot indices within a quartet {E, F, H, TMP} (spec §3, "Quartet").
const (
	slotE = iota
	slotF
	slotH
	slotTMP
	quartetSize = 4
)

// DPMatrix is the striped E/F/H/TMP vector storage plus the parallel
// mask grid over scalar cells (spec §3, §4.3). Logical dimensions are
// nrow=Q (query length) by ncol=R (reference length); physical vector
// storage groups quartets per vector-row per column, with one extra
// staged column (logical index -1) holding the initial H boundary.
type DPMatrix struct {
	nrow, ncol int
	segLen     int
	w          int
	prec       Precision
	bias       int32

	vecs  *VectorBuffer
	masks []uint16

	tal MemoryTally
}

// NewDPMatrix returns an empty DPMatrix; Init sizes it for a problem.
// tal receives allocation accounting for both the vector storage and
// the mask grid, tagged separately (spec §6 MemoryTally).
func NewDPMatrix(tal MemoryTally) *DPMatrix {
	if tal == nil {
		tal = NopMemoryTally{}
	}
	return &DPMatrix{tal: tal, vecs: NewVectorBuffer(CategoryDPMatrixVec, tal)}
}

// Init (re)initializes the matrix for a nrow x ncol problem at the given
// precision and bias, zeroing all masks and the staged initial-H column
// (spec §4.3 "init(nrow, ncol, wperv)").
func (m *DPMatrix) Init(nrow, ncol int, prec Precision, bias int32) error {
	if nrow <= 0 || ncol <= 0 {
		return ErrBadDimensions
	}
	w := prec.Lanes()
	segLen := (nrow + w - 1) / w
	if segLen < 1 {
		segLen = 1
	}
	m.nrow, m.ncol, m.segLen, m.w, m.prec, m.bias = nrow, ncol, segLen, w, prec, bias

	nvecs := quartetSize * segLen * (ncol + 1)
	m.vecs.ResizeExact(nvecs)
	for i := 0; i < nvecs; i++ {
		m.vecs.Set(i, Vec{})
	}

	nmasks := nrow * ncol
	if cap(m.masks) >= nmasks {
		m.masks = m.masks[:nmasks]
	} else {
		old := len(m.masks)
		m.masks = make([]uint16, nmasks)
		m.tal.Add(CategoryDPMatrixMask, int64(nmasks-old)*2)
	}
	for i := range m.masks {
		m.masks[i] = 0
	}

	// Stage the initial H column (logical column -1): local-mode
	// boundary is the biased representation of raw score 0.
	initH := int16(bias)
	for r := 0; r < segLen; r++ {
		*m.tmpvecInit(r) = fillVec(initH, w)
	}
	return nil
}

// Reset clears the matrix for reuse without releasing the underlying
// buffers, matching VectorBuffer.Clear's hot-path-reuse contract (spec
// §3 "Lifecycle").
func (m *DPMatrix) Reset() {
	m.vecs.Clear()
	m.masks = m.masks[:0]
}

// Free releases the matrix's storage back to the memory tally.
func (m *DPMatrix) Free() {
	m.vecs.Free()
	if len(m.masks) > 0 {
		m.tal.Del(CategoryDPMatrixMask, int64(cap(m.masks))*2)
	}
	m.masks = nil
}

func (m *DPMatrix) colStride() int { return quartetSize * m.segLen }

// physCol maps a logical column (-1..ncol-1) to a physical column index
// (0..ncol).
func (m *DPMatrix) physCol(c int) int { return c + 1 }

func (m *DPMatrix) vecIndex(r, c, slot int) int {
	return m.physCol(c)*m.colStride() + r*quartetSize + slot
}

// evec returns a pointer to the E vector at vector-row r, column c.
func (m *DPMatrix) evec(r, c int) *Vec { return m.vecs.At(m.vecIndex(r, c, slotE)) }

// fvec returns a pointer to the F vector at vector-row r, column c.
func (m *DPMatrix) fvec(r, c int) *Vec { return m.vecs.At(m.vecIndex(r, c, slotF)) }

// hvec returns a pointer to the H vector at vector-row r, column c.
func (m *DPMatrix) hvec(r, c int) *Vec { return m.vecs.At(m.vecIndex(r, c, slotH)) }

// tmpvec returns a pointer to the TMP vector at vector-row r, column c.
func (m *DPMatrix) tmpvec(r, c int) *Vec { return m.vecs.At(m.vecIndex(r, c, slotTMP)) }

// tmpvecInit returns a pointer to the staged initial-H vector for
// vector-row r (logical column -1).
func (m *DPMatrix) tmpvecInit(r int) *Vec { return m.vecs.At(m.vecIndex(r, -1, slotTMP)) }

// hvecPrevCol returns the H vector to use as the diagonal source when
// filling column c: the real H column c-1, or the staged initial column
// when c==0.
func (m *DPMatrix) hvecPrevCol(r, c int) Vec {
	if c == 0 {
		return *m.tmpvecInit(r)
	}
	return *m.hvec(r, c-1)
}

// SegLen returns the number of vectors per column.
func (m *DPMatrix) SegLen() int { return m.segLen }

// Width returns the lane count W.
func (m *DPMatrix) Width() int { return m.w }

// Precision returns the working precision.
func (m *DPMatrix) Precision() Precision { return m.prec }

// Bias returns the additive bias (0 in PrecisionS16).
func (m *DPMatrix) Bias() int32 { return m.bias }

// NRow, NCol return the logical dimensions.
func (m *DPMatrix) NRow() int { return m.nrow }
func (m *DPMatrix) NCol() int { return m.ncol }

// elt returns the unbiased scalar score at logical cell (row, col) of
// matrix mat (spec §4.3 "elt(row, col, mat)").
type Matrix int

const (
	MatE Matrix = iota
	MatF
	MatH
)

func (m *DPMatrix) elt(row, col int, mat Matrix) int32 {
	rowvec := row / m.segLen
	rowelt := row % m.segLen
	var slot int
	switch mat {
	case MatE:
		slot = slotE
	case MatF:
		slot = slotF
	default:
		slot = slotH
	}
	v := m.vecs.Get(m.vecIndex(rowelt, col, slot))
	raw := int32(v.L[rowvec])
	if m.prec == PrecisionU8 {
		raw -= m.bias
	}
	return raw
}

// Elt is the exported scalar accessor.
func (m *DPMatrix) Elt(row, col int, mat Matrix) int32 { return m.elt(row, col, mat) }

func (m *DPMatrix) maskIndex(row, col int) int { return row*m.ncol + col }

func (m *DPMatrix) maskWord(row, col int) uint16 { return m.masks[m.maskIndex(row, col)] }

func (m *DPMatrix) setMaskWord(row, col int, w uint16) { m.masks[m.maskIndex(row, col)] = w }

// IsHMaskSet reports whether the H backtrack mask has been initialized
// for (row, col).
func (m *DPMatrix) IsHMaskSet(row, col int) bool {
	return maskHasBit(m.maskWord(row, col), bitHMaskSet)
}

// IsEMaskSet reports whether the E backtrack mask has been initialized.
func (m *DPMatrix) IsEMaskSet(row, col int) bool {
	return maskHasBit(m.maskWord(row, col), bitEMaskSet)
}

// IsFMaskSet reports whether the F backtrack mask has been initialized.
func (m *DPMatrix) IsFMaskSet(row, col int) bool {
	return maskHasBit(m.maskWord(row, col), bitFMaskSet)
}

// HMask returns the current H mask subfield (bits 2-6, up to 5 bits).
func (m *DPMatrix) HMask(row, col int) uint16 {
	return maskGetBits(m.maskWord(row, col), shiftHMask, widthHMask)
}

// EMask returns the current E mask subfield.
func (m *DPMatrix) EMask(row, col int) uint16 {
	return maskGetBits(m.maskWord(row, col), shiftEMask, widthEMask)
}

// FMask returns the current F mask subfield.
func (m *DPMatrix) FMask(row, col int) uint16 {
	return maskGetBits(m.maskWord(row, col), shiftFMask, widthFMask)
}

// HMaskSet sets the H mask's "set" bit and subfield. Once set, the "set"
// bit never clears (spec §3 invariant); the subfield itself may only
// shed bits afterwards (via HMaskConsume).
func (m *DPMatrix) HMaskSet(row, col int, mask uint16) {
	w := m.maskWord(row, col)
	w = maskSetBit(w, bitHMaskSet)
	w = maskSetBits(w, shiftHMask, widthHMask, mask)
	m.setMaskWord(row, col, w)
}

// EMaskSet sets the E mask's "set" bit and subfield.
func (m *DPMatrix) EMaskSet(row, col int, mask uint16) {
	w := m.maskWord(row, col)
	w = maskSetBit(w, bitEMaskSet)
	w = maskSetBits(w, shiftEMask, widthEMask, mask)
	m.setMaskWord(row, col, w)
}

// FMaskSet sets the F mask's "set" bit and subfield.
func (m *DPMatrix) FMaskSet(row, col int, mask uint16) {
	w := m.maskWord(row, col)
	w = maskSetBit(w, bitFMaskSet)
	w = maskSetBits(w, shiftFMask, widthFMask, mask)
	m.setMaskWord(row, col, w)
}

// HMaskConsume clears bit from the stored H mask subfield, used by
// Backtrace when it walks through a branch point (spec §3 "the mask
// subfield may only monotonically shed bits").
func (m *DPMatrix) HMaskConsume(row, col int, bit uint16) {
	cur := m.HMask(row, col)
	m.HMaskSet(row, col, cur&^bit)
}

// EMaskConsume clears bit from the stored E mask subfield.
func (m *DPMatrix) EMaskConsume(row, col int, bit uint16) {
	cur := m.EMask(row, col)
	m.EMaskSet(row, col, cur&^bit)
}

// FMaskConsume clears bit from the stored F mask subfield.
func (m *DPMatrix) FMaskConsume(row, col int, bit uint16) {
	cur := m.FMask(row, col)
	m.FMaskSet(row, col, cur&^bit)
}

// ReportedThrough reports whether a prior successful backtrace has
// passed through (row, col) at H level.
func (m *DPMatrix) ReportedThrough(row, col int) bool {
	return maskHasBit(m.maskWord(row, col), bitReportedThrough)
}

// SetReportedThrough marks (row, col) as passed-through by a completed
// backtrace. Monotonic: never cleared (spec §3).
func (m *DPMatrix) SetReportedThrough(row, col int) {
	w := m.maskWord(row, col)
	m.setMaskWord(row, col, maskSetBit(w, bitReportedThrough))
}
