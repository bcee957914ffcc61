// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package codec

import (
	"encoding/binary"
	"math/rand"
	"testing"
	"time"
)

// bytewise builds the expected SWAR result by applying pred to each byte.
func bytewise(w uint64, pred func(c byte) bool) uint64 {
	var m uint64
	for i := 0; i < 8; i++ {
		if pred(byte(w >> (8 * i))) {
			m |= 0x80 << (8 * i)
		}
	}
	return m
}

// testWords returns words that place every byte value at every position
// along with random words.
func testWords() []uint64 {
	var words []uint64
	for c := 0; c < 256; c++ {
		for i := 0; i < 8; i++ {
			words = append(words, uint64(c)<<(8*i))
			words = append(words, uint64(c)<<(8*i)|0x4141414141414141&^(0xFF<<(8*i)))
			words = append(words, uint64(c)<<(8*i)|0xC3A9C3A9C3A9C3A9&^(0xFF<<(8*i)))
		}
	}
	rr := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 10_000; i++ {
		words = append(words, rr.Uint64())
	}
	return words
}

func TestGeq(t *testing.T) {
	words := testWords()
	for _, th := range []byte{0x80, 0x90, 0xA0, 0xC0, 0xC2, 0xE0, 0xF0, 0xF5, 0xFF} {
		fails := 0
		for _, w := range words {
			want := bytewise(w, func(c byte) bool { return c >= th })
			if got := geq(w, th); got != want {
				fails++
				if fails <= 10 {
					t.Errorf("geq(%#016x, %#x) = %#016x; want: %#016x", w, th, got, want)
				}
			}
		}
	}
}

func TestEq(t *testing.T) {
	words := testWords()
	for _, c := range []byte{0x00, 0x80, 0xE0, 0xED, 0xF0, 0xF4, 0xFF} {
		fails := 0
		for _, w := range words {
			want := bytewise(w, func(b byte) bool { return b == c })
			if got := eq(w, c); got != want {
				fails++
				if fails <= 10 {
					t.Errorf("eq(%#016x, %#x) = %#016x; want: %#016x", w, c, got, want)
				}
			}
		}
	}
}

func TestCont(t *testing.T) {
	for _, w := range testWords() {
		want := bytewise(w, func(c byte) bool { return c&0xC0 == 0x80 })
		if got := cont(w); got != want {
			t.Fatalf("cont(%#016x) = %#016x; want: %#016x", w, got, want)
		}
	}
}

func TestMovemask(t *testing.T) {
	for m := 0; m < 256; m++ {
		var w uint64
		for i := 0; i < 8; i++ {
			if m&(1<<i) != 0 {
				w |= 0x80 << (8 * i)
			}
		}
		if got := movemask(w); got != uint32(m) {
			t.Errorf("movemask(%#016x) = %08b; want: %08b", w, got, m)
		}
		// Low bits must be ignored.
		if got := movemask(w | low7); got != uint32(m) {
			t.Errorf("movemask(%#016x) = %08b; want: %08b", w|low7, got, m)
		}
	}
}

func TestBoundary(t *testing.T) {
	tests := []struct {
		tail string // last bytes of the lane
		want int
	}{
		{"abc", 0},
		{"a\xc3\xa9", 0},
		{"\xe2\x82\xac", 0},
		{"ab\xc3", 1},
		{"ab\xe2", 1},
		{"ab\xf0", 1},
		{"a\xe2\x82", 2},
		{"a\xf0\x9f", 2},
		{"a\xc3\xa9", 0},
		{"\xf0\x9f\x98", 3},
		{"\xe2\x82\xac", 0},
		{"\xc3\xa9\xc3", 1},
		{"\xc3\xa9a", 0},
		// Earliest straddling leader wins.
		{"\xf0\xc3\xa9", 3},
	}
	for _, width := range []int{16, 32} {
		for _, tt := range tests {
			b := make([]byte, width)
			for i := range b {
				b[i] = 'x'
			}
			copy(b[width-len(tt.tail):], tt.tail)
			var l lane
			for i := 0; i < width; i += 8 {
				l.add(binary.LittleEndian.Uint64(b[i:]), uint(i))
			}
			if got := boundary(width, l.lead2, l.lead3, l.lead4); got != tt.want {
				t.Errorf("%d: boundary(%+q) = %d; want: %d", width, tt.tail, got, tt.want)
			}
		}
	}
}
