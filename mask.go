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

// Bit layout of a mask word (spec §3):
//
//	bit 0       reportedThrough
//	bit 1       hMaskSet
//	bits 2-6    hMask (5 bits)
//	bit 7       eMaskSet
//	bits 8-9    eMask (2 bits)
//	bit 10      fMaskSet
//	bits 11-12  fMask (2 bits)
const (
	bitReportedThrough = 0
	bitHMaskSet        = 1
	shiftHMask         = 2
	widthHMask         = 5
	bitEMaskSet        = 7
	shiftEMask         = 8
	widthEMask         = 2
	bitFMaskSet        = 10
	shiftFMask         = 11
	widthFMask         = 2
)

// H-mask bit assignments (spec §9 open question: "left to the
// implementer, but must be stable within a build").
const (
	hBitDiagMatch uint16 = 1 << iota
	hBitDiagMismatch
	hBitFromE
	hBitFromF
	_ // reserved: the 5th H-mask bit is unused by this build's recurrence,
	// which folds read-gap and ref-gap predecessors into hBitFromE/
	// hBitFromF and lets E's/F's own masks distinguish open vs extend.
)

// E-mask bit assignments.
const (
	eBitOpenFromH uint16 = 1 << iota
	eBitExtendFromE
)

// F-mask bit assignments.
const (
	fBitOpenFromH uint16 = 1 << iota
	fBitExtendFromF
)

func maskGetBits(word uint16, shift uint, width uint) uint16 {
	return (word >> shift) & ((1 << width) - 1)
}

func maskSetBits(word uint16, shift uint, width uint, bits uint16) uint16 {
	clearMask := uint16((1<<width)-1) << shift
	return (word &^ clearMask) | ((bits & ((1 << width) - 1)) << shift)
}

func maskHasBit(word uint16, bit int) bool {
	return word&(1<<uint(bit)) != 0
}

func maskSetBit(word uint16, bit int) uint16 {
	return word | (1 << uint(bit))
}
