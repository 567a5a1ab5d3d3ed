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

// Metrics is a per-problem value a Filler and Backtracer accumulate
// into (spec §4.4, §9 "Metrics as a per-problem value"). Each DP
// instance should own one; Merge combines per-thread totals under a
// mutex at teardown, the way spec §5 describes the shared accounting
// sink.
type Metrics struct {
	DPsTried     int64
	DPsSaturated int64
	DPsFailed    int64
	DPsSucceeded int64

	ColumnsFilled int64
	CellsFilled   int64
	InnerIters    int64
	FixupIters    int64

	BacktraceStarts    int64
	BacktraceSuccesses int64
	BacktraceFailures  int64
	CellsTraversed     int64
	CoreRejections     int64
	NRejections        int64
}

// Add accumulates other into m, field by field. Intended for lock-free
// per-thread accumulation; use MetricsSink for the shared merge point.
func (m *Metrics) Add(other *Metrics) {
	m.DPsTried += other.DPsTried
	m.DPsSaturated += other.DPsSaturated
	m.DPsFailed += other.DPsFailed
	m.DPsSucceeded += other.DPsSucceeded
	m.ColumnsFilled += other.ColumnsFilled
	m.CellsFilled += other.CellsFilled
	m.InnerIters += other.InnerIters
	m.FixupIters += other.FixupIters
	m.BacktraceStarts += other.BacktraceStarts
	m.BacktraceSuccesses += other.BacktraceSuccesses
	m.BacktraceFailures += other.BacktraceFailures
	m.CellsTraversed += other.CellsTraversed
	m.CoreRejections += other.CoreRejections
	m.NRejections += other.NRejections
}

// MetricsSink is the shared, mutex-guarded merge point spec §5 calls
// out: "metrics.merge(other) takes the lock; per-thread accumulation is
// lock-free."
type MetricsSink struct {
	mu    sync.Mutex
	total Metrics
}

// Merge locks the sink and folds other into the running total.
func (s *MetricsSink) Merge(other *Metrics) {
	s.mu.Lock()
	s.total.Add(other)
	s.mu.Unlock()
}

// Snapshot returns a read-only copy of the accumulated totals (spec §6
// "Metrics: read-only snapshot").
func (s *MetricsSink) Snapshot() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}
