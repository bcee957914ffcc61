// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package test

import (
	"math/rand"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/rangetable"
)

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// assigned contains every assigned code point except for surrogates, which
// are not Unicode scalar values.
var assigned = sync.OnceValue(func() []rune {
	rt := rangetable.Merge(
		unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z,
		unicode.Cc, unicode.Cf, unicode.Co,
	)
	n := 0
	rangetable.Visit(rt, func(rune) { n++ })
	all := make([]rune, 0, n)
	rangetable.Visit(rt, func(r rune) {
		all = append(all, r)
	})
	if len(all) == 0 {
		panic("no assigned runes for Unicode version: " + unicode.Version)
	}
	return all
})

// AssignedRunes returns all assigned Unicode scalar values for the Unicode
// version of the running Go release. The result is cached and must not be
// modified.
func AssignedRunes() []rune { return assigned() }

func surrogate(rr *rand.Rand) rune {
	return surrogateMin + rr.Int31n(surrogateMax-surrogateMin+1)
}

// scalarValue returns a random valid Unicode scalar value, assigned or not.
func scalarValue(rr *rand.Rand) rune {
	for {
		r := rr.Int31n(utf8.MaxRune + 1)
		if utf8.ValidRune(r) {
			return r
		}
	}
}

// randRune returns a random rune biased towards ASCII and the lengths that
// exercise lane boundaries.
func randRune(rr *rand.Rand) rune {
	switch n := rr.Intn(100); {
	case n < 30:
		return rr.Int31n(utf8.RuneSelf)
	case n < 45:
		return 0x80 + rr.Int31n(0x800-0x80) // 2 bytes
	case n < 60:
		for {
			r := 0x800 + rr.Int31n(0x10000-0x800) // 3 bytes
			if r < surrogateMin || r > surrogateMax {
				return r
			}
		}
	case n < 70:
		return 0x10000 + rr.Int31n(utf8.MaxRune+1-0x10000) // 4 bytes
	case n < 75:
		// Edges of each encoded length.
		edges := [...]rune{
			0x7F, 0x80, 0x7FF, 0x800, 0xD7FF, 0xE000, 0xFFFF, 0x10000,
			utf8.MaxRune,
		}
		return edges[rr.Intn(len(edges))]
	case n < 90:
		runes := AssignedRunes()
		return runes[rr.Intn(len(runes))]
	default:
		return scalarValue(rr)
	}
}

// AppendRandRunes appends the UTF-8 encoding of n random Unicode scalar
// values to b.
func AppendRandRunes(b []byte, rr *rand.Rand, n int) []byte {
	for i := 0; i < n; i++ {
		b = utf8.AppendRune(b, randRune(rr))
	}
	return b
}

// AppendSurrogate appends the (invalid in strict UTF-8) 3 byte encoding of a
// random surrogate half to b.
func AppendSurrogate(b []byte, rr *rand.Rand) []byte {
	r := surrogate(rr)
	return append(b,
		0xE0|byte(r>>12),
		0x80|byte(r>>6)&0x3F,
		0x80|byte(r)&0x3F,
	)
}
