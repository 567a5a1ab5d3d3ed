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

import "math/rand/v2"

// RandomSource is the collaborator Backtrace consumes for tie-breaking
// among multiple legal predecessors (spec §6).
type RandomSource interface {
	// Intn returns a uniform integer in [0, n). n is always > 0.
	Intn(n int) int
}

// DefaultRandomSource wraps a *rand.Rand from math/rand/v2.
type DefaultRandomSource struct {
	r *rand.Rand
}

// NewDefaultRandomSource returns a RandomSource seeded from seed. Two
// sources built from the same seed produce the same backtrace path over
// the same matrix, which is useful for reproducing a reported alignment.
func NewDefaultRandomSource(seed uint64) *DefaultRandomSource {
	return &DefaultRandomSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn implements RandomSource.
func (d *DefaultRandomSource) Intn(n int) int {
	return d.r.IntN(n)
}
