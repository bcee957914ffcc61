// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package codec

import "encoding/binary"

// Vec128 returns the number of code points in b or Invalid if b is not valid
// UTF-8. It processes 16 byte lanes held in two 64-bit words and hands any
// remainder shorter than a lane to Scalar.
func Vec128(b []byte, allowSurrogates bool) int {
	const width = 16
	n := 0
	i := 0
	for len(b)-i >= width {
		w0 := binary.LittleEndian.Uint64(b[i:])
		w1 := binary.LittleEndian.Uint64(b[i+8:])
		if (w0|w1)&msb == 0 {
			n += width
			i += width
			continue
		}

		var l lane
		l.add(w0, 0)
		l.add(w1, 8)
		if l.lead3 != 0 {
			l.add3(w0, 0)
			l.add3(w1, 8)
			if l.lead4 != 0 {
				l.add4(w0, 0)
				l.add4(w1, 8)
			}
		}
		count, consumed := l.check(width, allowSurrogates)
		if count == Invalid {
			return Invalid
		}
		n += count
		i += consumed
	}
	rest := Scalar(b[i:], allowSurrogates)
	if rest == Invalid {
		return Invalid
	}
	return n + rest
}
