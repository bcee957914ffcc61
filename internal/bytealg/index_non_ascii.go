// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package bytealg provides word at a time byte scanning primitives.
package bytealg

import (
	"encoding/binary"
	"math/bits"
	"unicode/utf8"
	"unsafe"
)

const hi8 = 0x8080808080808080

// IndexNonASCII returns the index of the first byte of b that is not ASCII
// or -1 if b is all ASCII.
func IndexNonASCII(b []byte) int {
	i := 0
	for ; len(b)-i >= 16; i += 16 {
		w0 := binary.LittleEndian.Uint64(b[i:])
		w1 := binary.LittleEndian.Uint64(b[i+8:])
		if (w0|w1)&hi8 != 0 {
			if m := w0 & hi8; m != 0 {
				return i + bits.TrailingZeros64(m)/8
			}
			return i + 8 + bits.TrailingZeros64(w1&hi8)/8
		}
	}
	if len(b)-i >= 8 {
		if m := binary.LittleEndian.Uint64(b[i:]) & hi8; m != 0 {
			return i + bits.TrailingZeros64(m)/8
		}
		i += 8
	}
	for ; i < len(b); i++ {
		if b[i] >= utf8.RuneSelf {
			return i
		}
	}
	return -1
}

// IndexNonASCIIString is the string version of IndexNonASCII.
func IndexNonASCIIString(s string) int {
	return IndexNonASCII(unsafe.Slice(unsafe.StringData(s), len(s)))
}
