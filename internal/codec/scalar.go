// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package codec

import "unicode/utf8"

// Invalid is returned by the codecs when the input is not valid UTF-8.
const Invalid = -1

const (
	locb = 0x80 // lowest continuation byte
	hicb = 0xBF // highest continuation byte
)

// SeqLen returns the length of the UTF-8 sequence that starts with leading
// byte c. It does not validate c and returns 1 for bytes that cannot start a
// multi-byte sequence, which makes it suitable for walking input that is
// already known to be valid.
func SeqLen(c byte) int {
	switch {
	case c < 0xC0:
		return 1
	case c < 0xE0:
		return 2
	case c < 0xF0:
		return 3
	default:
		return 4
	}
}

// Scalar returns the number of code points in b or Invalid if b is not valid
// UTF-8. Encoded surrogate halves (U+D800..U+DFFF) are only accepted if
// allowSurrogates is true.
//
// This is the reference implementation that the vector codecs must agree
// with for every input.
func Scalar(b []byte, allowSurrogates bool) int {
	n := 0
	for i := 0; i < len(b); {
		c := b[i]
		if c < utf8.RuneSelf {
			i++
			n++
			continue
		}
		switch {
		case c < 0xC2:
			// Continuation byte without a leader or an overlong
			// encoding of ASCII (0xC0, 0xC1).
			return Invalid
		case c < 0xE0:
			if len(b)-i < 2 || !isCont(b[i+1]) {
				return Invalid
			}
			i += 2
		case c < 0xF0:
			if len(b)-i < 3 || !isCont(b[i+1]) || !isCont(b[i+2]) {
				return Invalid
			}
			switch c1 := b[i+1]; {
			case c == 0xE0 && c1 < 0xA0:
				return Invalid // overlong
			case c == 0xED && c1 > 0x9F && !allowSurrogates:
				return Invalid // surrogate half
			}
			i += 3
		case c <= 0xF4:
			if len(b)-i < 4 || !isCont(b[i+1]) || !isCont(b[i+2]) || !isCont(b[i+3]) {
				return Invalid
			}
			switch c1 := b[i+1]; {
			case c == 0xF0 && c1 < 0x90:
				return Invalid // overlong
			case c == 0xF4 && c1 > 0x8F:
				return Invalid // > U+10FFFF
			}
			i += 4
		default:
			return Invalid
		}
		n++
	}
	return n
}

func isCont(c byte) bool { return locb <= c && c <= hicb }
