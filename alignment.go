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

import (
	"bytes"
	"strconv"
	"sync"
)

// Edit op bytes, SAM-flavored: 'M' match, 'X' mismatch, 'D' read-gap
// (reference base consumed, no read base — horizontal/E move), 'I'
// ref-gap (read base consumed, no reference base — vertical/F move).
const (
	OpMatch    byte = 'M'
	OpMismatch byte = 'X'
	OpReadGap  byte = 'D'
	OpRefGap   byte = 'I'
)

// AlignRecord is one run-length CIGAR-style record.
type AlignRecord struct {
	N  uint32
	Op byte
}

// Alignment is the edit-list output of a Backtracer run (spec §4.5
// "an alignment as a sequence of edits"), pooled the way the teacher
// pools CIGAR/CIGARRecord.
type Alignment struct {
	Ops   []*AlignRecord
	Score int32

	// QStart, QEnd, RStart, REnd are 0-based, half-open [start,end)
	// logical coordinates of the aligned region (the origin through
	// the starting cell), not including any flanking clip.
	QStart, QEnd int
	RStart, REnd int

	Matches    uint32
	Mismatches uint32
	Gaps       uint32
	GapRegions uint32

	processed bool
}

var poolAlignment = &sync.Pool{New: func() interface{} {
	return &Alignment{Ops: make([]*AlignRecord, 0, 64)}
}}

var poolAlignRecord = &sync.Pool{New: func() interface{} {
	return &AlignRecord{}
}}

var poolBytesBuffer = &sync.Pool{New: func() interface{} {
	return new(bytes.Buffer)
}}

// NewAlignment returns a zeroed Alignment from the object pool.
func NewAlignment() *Alignment {
	a := poolAlignment.Get().(*Alignment)
	a.reset()
	return a
}

func (a *Alignment) reset() {
	for _, r := range a.Ops {
		poolAlignRecord.Put(r)
	}
	a.Ops = a.Ops[:0]
	a.Score = 0
	a.QStart, a.QEnd, a.RStart, a.REnd = 0, 0, 0, 0
	a.Matches, a.Mismatches, a.Gaps, a.GapRegions = 0, 0, 0, 0
	a.processed = false
}

// RecycleAlignment returns a to the object pool.
func RecycleAlignment(a *Alignment) {
	if a != nil {
		poolAlignment.Put(a)
	}
}

// add appends one edit, merging it into the last record when the op
// repeats. Backtrace calls this as it walks backward from (r0,c0) to the
// origin, so Ops accumulates in reverse order; finalize reverses it.
func (a *Alignment) add(op byte) {
	if n := len(a.Ops); n > 0 && a.Ops[n-1].Op == op {
		a.Ops[n-1].N++
		return
	}
	r := poolAlignRecord.Get().(*AlignRecord)
	r.Op, r.N = op, 1
	a.Ops = append(a.Ops, r)
}

// finalize reverses Ops (built back-to-front during backtrace) into
// query order and tallies stats. Idempotent.
func (a *Alignment) finalize() {
	if a.processed {
		return
	}
	s := a.Ops
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	for _, r := range s {
		switch r.Op {
		case OpMatch:
			a.Matches += r.N
		case OpMismatch:
			a.Mismatches += r.N
		case OpReadGap, OpRefGap:
			a.Gaps += r.N
			a.GapRegions++
		}
	}
	a.processed = true
}

// CIGAR renders the alignment's run-length operations as a CIGAR
// string, e.g. "3M1I2M".
func (a *Alignment) CIGAR() string {
	a.finalize()
	buf := poolBytesBuffer.Get().(*bytes.Buffer)
	buf.Reset()
	for _, r := range a.Ops {
		buf.WriteString(strconv.Itoa(int(r.N)))
		buf.WriteByte(r.Op)
	}
	text := buf.String()
	poolBytesBuffer.Put(buf)
	return text
}
