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

import "unsafe"

// vectorAlignBytes is the alignment ptr() guarantees, matching a 128-bit
// SIMD register (spec §4.2, §5).
const vectorAlignBytes = 16

// roundUpPow2 rounds val up to a multiple of alignment, assuming
// alignment is a power of 2. Same arithmetic as grailbio/base/simd's
// RoundUpPow2, reused here for VectorBuffer's growth bookkeeping rather
// than pulling in the whole grailbio/base module for one helper.
func roundUpPow2(val, alignment int) int {
	return (val + alignment - 1) &^ (alignment - 1)
}

// VectorBuffer is a length-tracking, category-tagged, growable container
// of Vec elements. It plays the role spec §4.2 assigns EList_m128i in
// aligner_swsse.h: reserveExact/resize/resizeExact capacity policies,
// clear() that keeps capacity for hot-path reuse, and an accounting hook
// on every allocation and free.
type VectorBuffer struct {
	data []Vec
	cat  Category
	cap0 int
	tal  MemoryTally
}

// NewVectorBuffer returns an empty buffer tagged with cat, reporting all
// growth to tal. A nil tal is replaced with NopMemoryTally.
func NewVectorBuffer(cat Category, tal MemoryTally) *VectorBuffer {
	if tal == nil {
		tal = NopMemoryTally{}
	}
	return &VectorBuffer{cat: cat, tal: tal}
}

// Len returns the number of elements in use.
func (b *VectorBuffer) Len() int { return len(b.data) }

// Cap returns the number of elements allocated.
func (b *VectorBuffer) Cap() int { return cap(b.data) }

// Ptr returns a pointer to element 0. Growing the buffer (Resize,
// ResizeExact, ReserveExact) may relocate storage; callers must refetch
// Ptr after any such call (spec §5, "Alignment discipline").
func (b *VectorBuffer) Ptr() *Vec {
	if len(b.data) == 0 {
		return nil
	}
	return &b.data[0]
}

// aligned16 reports whether p sits on a 16-byte boundary. Go's runtime
// allocator aligns objects at least as large as a Vec (32 bytes) to a
// multiple of 16 in practice; this is a defensive assertion, not a
// workaround, matching the alignment-sensitive doc comments biosimd
// attaches to its "Unsafe" entry points.
func aligned16(p *Vec) bool {
	if p == nil {
		return true
	}
	return uintptr(unsafe.Pointer(p))%vectorAlignBytes == 0
}

// At returns a pointer to element i.
func (b *VectorBuffer) At(i int) *Vec {
	return &b.data[i]
}

// Get returns element i by value.
func (b *VectorBuffer) Get(i int) Vec { return b.data[i] }

// Set overwrites element i.
func (b *VectorBuffer) Set(i int, v Vec) { b.data[i] = v }

// ReserveExact ensures capacity for exactly newCap elements, growing by
// element-wise copy if needed and reporting the delta to the tally.
func (b *VectorBuffer) ReserveExact(newCap int) {
	if newCap <= cap(b.data) {
		return
	}
	b.growTo(newCap)
}

// Resize grows the buffer, if needed, to at least n elements and sets
// the length to n. Capacity grows geometrically (doubling), amortizing
// the cost of repeated Resize calls across DP problems that reuse one
// buffer.
func (b *VectorBuffer) Resize(n int) {
	if n <= len(b.data) {
		b.data = b.data[:n]
		return
	}
	if n > cap(b.data) {
		newCap := cap(b.data)
		if newCap == 0 {
			newCap = 16
		}
		for newCap < n {
			newCap *= 2
		}
		b.growTo(newCap)
	}
	old := len(b.data)
	b.data = b.data[:n]
	for i := old; i < n; i++ {
		b.data[i] = Vec{}
	}
}

// ResizeExact grows the buffer, if needed, to exactly n elements and
// sets the length to n. Unlike Resize, capacity is never over-allocated.
func (b *VectorBuffer) ResizeExact(n int) {
	if n <= len(b.data) {
		b.data = b.data[:n]
		return
	}
	if n > cap(b.data) {
		b.growTo(n)
	}
	old := len(b.data)
	b.data = b.data[:n]
	for i := old; i < n; i++ {
		b.data[i] = Vec{}
	}
}

// Clear empties the buffer while preserving capacity, for hot-path reuse
// across DP problems (spec §4.2).
func (b *VectorBuffer) Clear() {
	b.data = b.data[:0]
}

// growTo reallocates storage to hold newCap elements, copying existing
// contents element-wise, and updates the memory tally with the delta.
func (b *VectorBuffer) growTo(newCap int) {
	old := b.data
	next := make([]Vec, len(old), newCap)
	copy(next, old)
	b.data = next
	if delta := newCap - b.cap0; delta > 0 {
		b.tal.Add(b.cat, int64(delta)*int64(unsafe.Sizeof(Vec{})))
		b.cap0 = newCap
	}
}

// Free releases the buffer's backing storage and reports it to the
// memory tally. The buffer is left usable but empty (cap 0).
func (b *VectorBuffer) Free() {
	if b.cap0 > 0 {
		b.tal.Del(b.cat, int64(b.cap0)*int64(unsafe.Sizeof(Vec{})))
	}
	b.data = nil
	b.cap0 = 0
}
