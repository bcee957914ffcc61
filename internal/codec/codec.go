// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package codec implements the UTF-8 validating code point counters.
//
// Scalar is the byte at a time reference. Vec128 and Vec256 validate 16 and
// 32 byte lanes using SWAR arithmetic on 64-bit words: per-byte predicates
// are computed for a whole word at once and compressed into one bit per
// byte, after which a lane is validated with a handful of mask operations.
// All three return identical results for every input.
package codec

// A Codec counts the code points of a UTF-8 buffer.
type Codec interface {
	// Name returns a short name for the codec.
	Name() string

	// Width returns the lane width in bytes (1 for the scalar codec).
	Width() int

	// Count returns the number of code points in b or Invalid.
	Count(b []byte, allowSurrogates bool) int
}

type scalarCodec struct{}

func (scalarCodec) Name() string                             { return "scalar" }
func (scalarCodec) Width() int                               { return 1 }
func (scalarCodec) Count(b []byte, allowSurrogates bool) int { return Scalar(b, allowSurrogates) }

type vec128Codec struct{}

func (vec128Codec) Name() string                             { return "vec128" }
func (vec128Codec) Width() int                               { return 16 }
func (vec128Codec) Count(b []byte, allowSurrogates bool) int { return Vec128(b, allowSurrogates) }

type vec256Codec struct{}

func (vec256Codec) Name() string                             { return "vec256" }
func (vec256Codec) Width() int                               { return 32 }
func (vec256Codec) Count(b []byte, allowSurrogates bool) int { return Vec256(b, allowSurrogates) }

var (
	scalarImpl Codec = scalarCodec{}
	vec128Impl Codec = vec128Codec{}
	vec256Impl Codec = vec256Codec{}
)

// All returns every codec, narrowest first.
func All() []Codec {
	return []Codec{scalarImpl, vec128Impl, vec256Impl}
}

// Select returns the widest codec that capability c supports and that has
// at least one full lane of input in n bytes.
func Select(c Capability, n int) Codec {
	switch {
	case n >= 32 && c.Has(Lane256):
		return vec256Impl
	case n >= 16 && c.Has(Lane128):
		return vec128Impl
	default:
		return scalarImpl
	}
}
