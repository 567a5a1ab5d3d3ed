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

import "sync"

// DPProblem bundles one query/reference pair with its QueryProfile,
// DPMatrix, Filler and Backtracer, giving callers a single Configure/
// Fill/Backtrace entry point (spec §6 "external interfaces"). It is
// pooled, the way the teacher pools its top-level Aligner, so repeated
// alignment calls reuse buffers instead of reallocating per pair.
type DPProblem struct {
	Scoring Scoring
	Tally   MemoryTally

	query     []byte
	reference []byte
	prec      Precision

	profile *QueryProfile
	matrix  *DPMatrix
	filler  *Filler
	bt      *Backtracer
}

var poolDPProblem = &sync.Pool{New: func() interface{} {
	return &DPProblem{}
}}

// NewDPProblem returns a DPProblem from the object pool, wired to sc
// and tal. A nil tal disables memory accounting.
func NewDPProblem(sc Scoring, tal MemoryTally) *DPProblem {
	p := poolDPProblem.Get().(*DPProblem)
	p.reset()
	p.Scoring = sc
	p.Tally = tal
	if tal == nil {
		p.Tally = NopMemoryTally{}
	}
	if p.matrix == nil {
		p.matrix = NewDPMatrix(p.Tally)
	}
	if p.filler == nil {
		p.filler = NewFiller()
	}
	if p.bt == nil {
		p.bt = NewBacktracer()
	}
	return p
}

// RecycleDPProblem frees p's owned buffers and returns it to the pool.
func RecycleDPProblem(p *DPProblem) {
	if p == nil {
		return
	}
	if p.profile != nil {
		p.profile.Free()
		p.profile = nil
	}
	if p.matrix != nil {
		p.matrix.Free()
	}
	poolDPProblem.Put(p)
}

func (p *DPProblem) reset() {
	p.Scoring = nil
	p.Tally = nil
	p.query = nil
	p.reference = nil
	if p.profile != nil {
		p.profile.Free()
		p.profile = nil
	}
	if p.matrix != nil {
		p.matrix.Reset()
	}
	if p.filler != nil {
		p.filler.Metrics = Metrics{}
	}
	if p.bt != nil {
		p.bt.Metrics = Metrics{}
	}
}

// Configure installs query and reference (both byte sequences over
// {0..4}) and builds the query profile at prec, returning
// ErrScoreOverflow if u8-mode biasing would overflow.
func (p *DPProblem) Configure(query, reference []byte, prec Precision) error {
	if p.profile != nil {
		p.profile.Free()
		p.profile = nil
	}
	prof, err := BuildQueryProfile(query, p.Scoring, prec, p.Tally)
	if err != nil {
		return err
	}
	p.query, p.reference, p.prec = query, reference, prec
	p.profile = prof
	return p.matrix.Init(len(query), len(reference), prec, prof.Bias)
}

// Fill runs the filler over the configured matrix.
func (p *DPProblem) Fill() (FillStatus, error) {
	status, err := p.filler.Fill(p.matrix, p.profile, p.reference, p.Scoring)
	return status, err
}

// Backtrace recovers one alignment starting at H-level cell (r0,c0).
// Returns nil if the walk fails to find a legal alignment.
func (p *DPProblem) Backtrace(r0, c0 int, rnd RandomSource) *Alignment {
	return p.bt.Backtrace(p.matrix, p.profile, p.reference, p.Scoring, r0, c0, rnd)
}

// SetCore configures the Backtracer's core-rejection rectangle; see
// Backtracer.CoreRowLo etc.
func (p *DPProblem) SetCore(rowLo, rowHi, colLo, colHi int) {
	p.bt.CoreRowLo, p.bt.CoreRowHi = rowLo, rowHi
	p.bt.CoreColLo, p.bt.CoreColHi = colLo, colHi
}

// Matrix exposes the underlying DPMatrix for callers that need direct
// elt()/mask access (debugging, visualization).
func (p *DPProblem) Matrix() *DPMatrix { return p.matrix }

// Metrics returns the combined fill+backtrace metrics for this problem.
func (p *DPProblem) Metrics() Metrics {
	var m Metrics
	m.Add(&p.filler.Metrics)
	m.Add(&p.bt.Metrics)
	return m
}

// BestCell scans the filled matrix's H values and returns the
// highest-scoring cell, for callers that don't already know a start
// cell for Backtrace.
func (p *DPProblem) BestCell() (row, col int, score int32) {
	best := int32(-1 << 31)
	for c := 0; c < p.matrix.NCol(); c++ {
		for r := 0; r < p.matrix.NRow(); r++ {
			v := p.matrix.Elt(r, c, MatH)
			if v > best {
				best, row, col = v, r, c
			}
		}
	}
	return row, col, best
}
