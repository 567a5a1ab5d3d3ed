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

// Category identifies a memory-accounting bucket. The core treats the
// tally as an opaque sink (spec §1); it never reads these back.
type Category int

const (
	CategoryQueryProfile Category = iota
	CategoryDPMatrixVec
	CategoryDPMatrixMask
	CategoryAlignment
)

// MemoryTally is the collaborator VectorBuffer and DPMatrix report
// allocations and frees to (spec §6).
type MemoryTally interface {
	Add(cat Category, n int64)
	Del(cat Category, n int64)
}

// NopMemoryTally discards all accounting. Useful for tests and callers
// that don't care about the memory-category breakdown.
type NopMemoryTally struct{}

// Add implements MemoryTally.
func (NopMemoryTally) Add(Category, int64) {}

// Del implements MemoryTally.
func (NopMemoryTally) Del(Category, int64) {}

// MutexMemoryTally is a simple mutex-guarded MemoryTally, matching spec
// §5's "shared state...guarded by a single mutex" for the accounting sink.
type MutexMemoryTally struct {
	mu     sync.Mutex
	counts map[Category]int64
}

// NewMutexMemoryTally returns an empty tally.
func NewMutexMemoryTally() *MutexMemoryTally {
	return &MutexMemoryTally{counts: make(map[Category]int64)}
}

// Add implements MemoryTally.
func (t *MutexMemoryTally) Add(cat Category, n int64) {
	t.mu.Lock()
	t.counts[cat] += n
	t.mu.Unlock()
}

// Del implements MemoryTally.
func (t *MutexMemoryTally) Del(cat Category, n int64) {
	t.mu.Lock()
	t.counts[cat] -= n
	t.mu.Unlock()
}

// Snapshot returns a copy of the current per-category totals.
func (t *MutexMemoryTally) Snapshot() map[Category]int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[Category]int64, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}
