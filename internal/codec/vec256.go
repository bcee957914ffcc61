// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package codec

import "encoding/binary"

// Vec256 is the 32 byte lane version of Vec128.
func Vec256(b []byte, allowSurrogates bool) int {
	const width = 32
	n := 0
	i := 0
	for len(b)-i >= width {
		w0 := binary.LittleEndian.Uint64(b[i:])
		w1 := binary.LittleEndian.Uint64(b[i+8:])
		w2 := binary.LittleEndian.Uint64(b[i+16:])
		w3 := binary.LittleEndian.Uint64(b[i+24:])
		if (w0|w1|w2|w3)&msb == 0 {
			n += width
			i += width
			continue
		}

		var l lane
		l.add(w0, 0)
		l.add(w1, 8)
		l.add(w2, 16)
		l.add(w3, 24)
		if l.lead3 != 0 {
			l.add3(w0, 0)
			l.add3(w1, 8)
			l.add3(w2, 16)
			l.add3(w3, 24)
			if l.lead4 != 0 {
				l.add4(w0, 0)
				l.add4(w1, 8)
				l.add4(w2, 16)
				l.add4(w3, 24)
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
