// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package codec

import "math/bits"

// SWAR constants: each operates on the 8 bytes of a uint64 independently.
const (
	lsb  = 0x0101010101010101
	msb  = 0x8080808080808080
	low7 = 0x7F7F7F7F7F7F7F7F

	// Multiplying a word that only has msb bits set by gather moves the
	// high bit of byte i to bit 56+i.
	gather = 0x0002040810204081
)

// geq sets the high bit of every byte of w that is >= t. The threshold must
// have its high bit set, which lets the low 7 bits be compared with a biased
// subtraction that cannot borrow across bytes.
func geq(w uint64, t byte) uint64 {
	d := (w&low7 | msb) - uint64(t&0x7F)*lsb
	return d & w & msb
}

// eq sets the high bit of every byte of w that equals c.
func eq(w uint64, c byte) uint64 {
	x := w ^ uint64(c)*lsb
	return ^((x&low7 + low7) | x) & msb
}

// cont sets the high bit of every continuation byte (10xxxxxx) of w.
func cont(w uint64) uint64 {
	return w &^ (w << 1) & msb
}

// movemask compresses the high bit of each byte of m into one bit per byte:
// byte i maps to bit i.
func movemask(m uint64) uint32 {
	return uint32((m & msb) * gather >> 56)
}

// A lane holds one bit per byte position for each byte class the validator
// needs. Bit i describes byte i of the lane.
type lane struct {
	lead2 uint32 // >= 0xC0
	lead3 uint32 // >= 0xE0
	lead4 uint32 // >= 0xF0
	bad   uint32 // 0xC0, 0xC1 and >= 0xF5
	cont  uint32 // 0x80..0xBF

	// Only populated for lanes that contain 3 and 4 byte leaders.
	e0, ed, geA0 uint32
	f0, f4, ge90 uint32
}

// add classifies the 8 bytes of w which start at lane position pos.
func (l *lane) add(w uint64, pos uint) {
	ge2 := geq(w, 0xC0)
	l.lead2 |= movemask(ge2) << pos
	l.lead3 |= movemask(geq(w, 0xE0)) << pos
	l.lead4 |= movemask(geq(w, 0xF0)) << pos
	l.bad |= movemask(ge2&^geq(w, 0xC2)|geq(w, 0xF5)) << pos
	l.cont |= movemask(cont(w)) << pos
}

func (l *lane) add3(w uint64, pos uint) {
	l.e0 |= movemask(eq(w, 0xE0)) << pos
	l.ed |= movemask(eq(w, 0xED)) << pos
	l.geA0 |= movemask(geq(w, 0xA0)) << pos
}

func (l *lane) add4(w uint64, pos uint) {
	l.f0 |= movemask(eq(w, 0xF0)) << pos
	l.f4 |= movemask(eq(w, 0xF4)) << pos
	l.ge90 |= movemask(geq(w, 0x90)) << pos
}

// boundary returns the number of trailing bytes of a lane of the given width
// that start a sequence extending past the end of the lane. Those bytes are
// re-offered to the next iteration so that the sequence is parsed there as a
// whole. Only the last 3 positions can start such a sequence and the
// earliest one wins: any later leader would sit where a continuation byte is
// required and fails validation anyway.
func boundary(width int, lead2, lead3, lead4 uint32) int {
	for k := 3; k > 0; k-- {
		bit := uint32(1) << uint(width-k)
		if lead2&bit == 0 {
			continue
		}
		trail := 1
		if lead3&bit != 0 {
			trail = 2
		}
		if lead4&bit != 0 {
			trail = 3
		}
		if trail >= k {
			return k
		}
	}
	return 0
}

// check validates a classified lane of the given width and returns the
// number of code points that start in the consumed part of the lane and the
// number of bytes consumed. The count is Invalid if the lane is malformed.
func (l *lane) check(width int, allowSurrogates bool) (count, consumed int) {
	if l.bad != 0 {
		return Invalid, 0
	}
	full := ^uint32(0) >> uint(32-width)
	k := boundary(width, l.lead2, l.lead3, l.lead4)
	keep := full >> uint(k)

	lead2 := l.lead2 & keep
	lead3 := l.lead3 & keep
	lead4 := l.lead4 & keep

	// Continuation bytes expected after each kept leader. Expectations that
	// reach into the re-offered tail must fail here since the tail starts a
	// new sequence.
	expect := (lead2<<1 | lead3<<2 | lead4<<3) & full
	if expect != l.cont&keep {
		return Invalid, 0
	}

	if lead3 != 0 {
		next := l.geA0 >> 1 // second byte >= 0xA0
		if l.e0&keep&^next != 0 {
			return Invalid, 0
		}
		if !allowSurrogates && l.ed&keep&next != 0 {
			return Invalid, 0
		}
	}
	if lead4 != 0 {
		next := l.ge90 >> 1 // second byte >= 0x90
		if l.f0&keep&^next != 0 {
			return Invalid, 0
		}
		if l.f4&keep&next != 0 {
			return Invalid, 0
		}
	}
	return bits.OnesCount32(keep &^ l.cont), width - k
}
