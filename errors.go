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

import "errors"

// ErrScoreOverflow is returned by QueryProfile construction when a biased
// score would not fit in a u8 lane. The caller should retry with
// PrecisionS16.
var ErrScoreOverflow = errors.New("stripesw: biased score overflows u8 range")

// ErrOutOfMemory is a fatal error from VectorBuffer growth.
var ErrOutOfMemory = errors.New("stripesw: out of memory growing vector buffer")

// ErrBadDimensions is a programming error: a caller asked for a matrix or
// profile with an invalid shape.
var ErrBadDimensions = errors.New("stripesw: invalid matrix dimensions")
