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

// N is the alphabet index reserved for an ambiguous base, mirroring
// spec's {0..4} alphabet with N=4.
const N byte = 4

// AlphabetSize is the number of reference symbols a QueryProfile indexes,
// {A,C,G,T,N}.
const AlphabetSize = 5

// Scoring is the collaborator interface the DP core consumes for match,
// mismatch, gap and floor parameters. Callers own the concrete scheme;
// the core never mutates it.
type Scoring interface {
	// ScoreMatch returns the score for aligning read base a against
	// reference base b, both in {0..4}. Implementations decide how N
	// bases are scored (typically NPenalty()).
	ScoreMatch(a, b byte) int32

	GapOpen() int32
	GapExtend() int32
	NPenalty() int32
	ScoreFloor() int32

	// AllowNtoN reports whether a diagonal step that involves an N base
	// (in the read, the reference, or both) is permitted without
	// triggering N-rejection during backtrace (spec §4.5, "N rejection").
	AllowNtoN() bool
}

// Penalties holds the small integers a DefaultScoring is built from. All
// are given as positive magnitudes; DefaultScoring negates them internally
// where the DP recurrence subtracts.
type Penalties struct {
	Match     int32
	Mismatch  int32
	NPenalty  int32
	GapOpen   int32
	GapExtend int32
	Floor     int32
	AllowNN   bool
}

// DefaultPenalties mirrors typical short-read aligner defaults: match +2,
// mismatch -4 (i.e. penalty magnitude 4), affine gap open+extend 6+1, N
// penalty as costly as a mismatch, local-mode floor at 0.
var DefaultPenalties = Penalties{
	Match:     2,
	Mismatch:  4,
	NPenalty:  4,
	GapOpen:   6,
	GapExtend: 1,
	Floor:     0,
	AllowNN:   false,
}

// DefaultScoring is a simple Scoring implementation driven by Penalties.
type DefaultScoring struct {
	P Penalties
}

// NewDefaultScoring builds a DefaultScoring from p.
func NewDefaultScoring(p Penalties) *DefaultScoring {
	return &DefaultScoring{P: p}
}

// ScoreMatch implements Scoring.
func (s *DefaultScoring) ScoreMatch(a, b byte) int32 {
	if a == N || b == N {
		return -s.P.NPenalty
	}
	if a == b {
		return s.P.Match
	}
	return -s.P.Mismatch
}

// GapOpen implements Scoring.
func (s *DefaultScoring) GapOpen() int32 { return s.P.GapOpen }

// GapExtend implements Scoring.
func (s *DefaultScoring) GapExtend() int32 { return s.P.GapExtend }

// NPenalty implements Scoring.
func (s *DefaultScoring) NPenalty() int32 { return s.P.NPenalty }

// ScoreFloor implements Scoring.
func (s *DefaultScoring) ScoreFloor() int32 { return s.P.Floor }

// AllowNtoN implements Scoring.
func (s *DefaultScoring) AllowNtoN() bool { return s.P.AllowNN }

// computeBias returns the bias b such that scoreMatch(a,b)+b, and the
// (negative) gap/N penalties all shift into [0, 255] for u8-mode. Per
// spec §4.1: bias = max(|mismatch|, gapOpen+gapExtend, NPenalty).
func computeBias(sc Scoring) int32 {
	// mismatch magnitude: probe with two distinct non-N bases.
	mismatch := -sc.ScoreMatch(0, 1)
	if mismatch < 0 {
		mismatch = 0
	}
	bias := mismatch
	if v := sc.GapOpen() + sc.GapExtend(); v > bias {
		bias = v
	}
	if v := sc.NPenalty(); v > bias {
		bias = v
	}
	if bias < 0 {
		bias = 0
	}
	return bias
}
