// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package utf8scan

import (
	"unicode/utf8"

	"github.com/charlievieth/utf8scan/internal/bytealg"
	"github.com/charlievieth/utf8scan/internal/codec"
)

// DefaultStride is the number of code points per bucket of the Index
// allocated by Locate.
const DefaultStride = 1000

// unknownOffset marks a bucket whose offset has not been discovered yet.
const unknownOffset = -1

// An Index maps code point indexes of one valid UTF-8 buffer to byte offsets.
// It records the byte offset of every stride'th code point as lookups walk
// past it, so repeated lookups into the same region cost at most one stride
// of decoding.
//
// An Index is bound to the content of the buffer it was first used with and
// is not safe for concurrent use.
type Index struct {
	stride int
	n      int // code points in the buffer

	// buckets[k-1] is the byte offset of code point k*stride. Bucket 0 is
	// always at offset 0 and is not stored.
	buckets []int
}

// NewIndex returns an Index for a buffer of n code points with stride code
// points per bucket, or nil if n <= stride since such a buffer is cheap to
// scan. DefaultStride is used if stride <= 0.
func NewIndex(n, stride int) *Index {
	if stride <= 0 {
		stride = DefaultStride
	}
	if n <= stride {
		return nil
	}
	nb := (n + stride - 1) / stride
	buckets := make([]int, nb-1)
	for i := range buckets {
		buckets[i] = unknownOffset
	}
	return &Index{stride: stride, n: n, buckets: buckets}
}

// FreeIndex releases the Index pointed to by tab, if any, and sets *tab to
// nil.
func FreeIndex(tab **Index) {
	if tab == nil || *tab == nil {
		return
	}
	(*tab).buckets = nil
	*tab = nil
}

// Stride returns the number of code points per bucket.
func (x *Index) Stride() int {
	if x == nil {
		return 0
	}
	return x.stride
}

// Len returns the number of code points of the indexed buffer.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return x.n
}

// Known returns the number of buckets whose offset has been discovered,
// excluding bucket 0.
func (x *Index) Known() int {
	if x == nil {
		return 0
	}
	n := 0
	for _, off := range x.buckets {
		if off != unknownOffset {
			n++
		}
	}
	return n
}

// start returns the closest known code point at or before code point i and
// its byte offset.
func (x *Index) start(i int) (cp, off int) {
	if x == nil {
		return 0, 0
	}
	k := i / x.stride
	if k > len(x.buckets) {
		k = len(x.buckets)
	}
	for ; k > 0; k-- {
		if o := x.buckets[k-1]; o != unknownOffset {
			return k * x.stride, o
		}
	}
	return 0, 0
}

// mark records that code point cp starts at byte offset off.
func (x *Index) mark(cp, off int) {
	if x == nil || cp%x.stride != 0 {
		return
	}
	if k := cp / x.stride; k > 0 && k <= len(x.buckets) && x.buckets[k-1] == unknownOffset {
		x.buckets[k-1] = off
	}
}

// markRun records the bucket boundaries in the run of n single byte code
// points that follows code point cp at byte offset off.
func (x *Index) markRun(cp, off, n int) {
	if x == nil {
		return
	}
	// First boundary after cp.
	k := cp/x.stride + 1
	for b := k * x.stride; b <= cp+n; b += x.stride {
		x.mark(b, off+(b-cp))
	}
}

// Locate returns the byte offset of code point i of b or Invalid if i is out
// of range. The buffer must be valid UTF-8 and must be the buffer the Index
// was created for. A nil Index scans b from the start.
func (x *Index) Locate(b []byte, i int) int {
	if i == 0 {
		return 0
	}
	if i < 0 || (x != nil && i >= x.n) {
		return Invalid
	}
	cp, off := x.start(i)
	for cp < i {
		if off >= len(b) {
			return Invalid
		}
		if b[off] < utf8.RuneSelf {
			run := i - cp
			if rest := len(b) - off; rest < run {
				run = rest
			}
			if j := bytealg.IndexNonASCII(b[off : off+run]); j >= 0 {
				run = j
			}
			x.markRun(cp, off, run)
			cp += run
			off += run
			continue
		}
		off += codec.SeqLen(b[off])
		cp++
		x.mark(cp, off)
	}
	if off >= len(b) {
		return Invalid // i == number of code points in b
	}
	return off
}

// Locate returns the byte offset of code point i of b, which must be valid
// UTF-8 containing n code points, or Invalid if i >= n. Code point 0 is
// always at offset 0.
//
// If tab is not nil it is used to memoize offsets across calls: when *tab is
// nil and n exceeds DefaultStride a new Index is allocated and stored in
// *tab. The caller owns the Index and must use it with only this buffer.
func Locate(b []byte, i, n int, tab **Index) int {
	if i == 0 {
		return 0
	}
	if i < 0 || i >= n {
		return Invalid
	}
	var x *Index
	if tab != nil {
		if *tab == nil {
			*tab = NewIndex(n, DefaultStride)
		}
		x = *tab
	}
	return x.Locate(b, i)
}
