// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package test contains the test cases and random input generators shared by
// the codec and utf8scan tests.
package test

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// A CountFunc returns the number of code points in b or -1 if b is not
// valid UTF-8.
type CountFunc func(b []byte) int

// StringCountFunc adapts a string counter to a CountFunc.
func StringCountFunc(fn func(s string) int) CountFunc {
	return func(b []byte) int {
		return fn(string(b))
	}
}

// Reference returns the number of code points in b or -1 if b is not valid
// strict UTF-8 (surrogate halves are rejected). It is implemented with the
// standard library and is used to check the tests themselves.
func Reference(b []byte) int {
	if !utf8.Valid(b) {
		return -1
	}
	return utf8.RuneCount(b)
}

// ReferenceSurrogates is Reference with encoded surrogate halves accepted
// as 3 byte code points.
func ReferenceSurrogates(b []byte) int {
	n := 0
	for len(b) > 0 {
		if isSurrogate(b) {
			b = b[3:]
			n++
			continue
		}
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			return -1
		}
		b = b[size:]
		n++
	}
	return n
}

func isSurrogate(b []byte) bool {
	return len(b) >= 3 && b[0] == 0xED && 0xA0 <= b[1] && b[1] <= 0xBF &&
		0x80 <= b[2] && b[2] <= 0xBF
}

// A CountTest is a buffer and its expected code point count.
type CountTest struct {
	In         string
	Out        int // strict
	Surrogates int // with surrogates allowed
}

func valid(s string) CountTest {
	n := utf8.RuneCountInString(s)
	return CountTest{s, n, n}
}

func invalid(s string) CountTest {
	return CountTest{s, -1, -1}
}

// CountTests are the hand written count tests.
var CountTests = []CountTest{
	valid(""),
	valid("a"),
	valid("hello, world"),
	valid("\x00"),
	valid("\x7f"),
	valid("\u0080"),
	valid("\u07ff"),
	valid("\u0800"),
	valid("\ud7ff"),
	valid("\ue000"),
	valid("\uffff"),
	valid("\U00010000"),
	valid("\U0010ffff"),
	valid("日本語"),
	valid("Hello, 世界"),
	valid("☺☻☹"),
	valid("αβγδεζηθικλμνξοπρστυφχψω"),
	valid("🤖🤖🤖🤖🤖🤖🤖🤖🤖🤖🤖🤖"),
	valid(strings.Repeat("a", 15) + "é"),
	valid(strings.Repeat("a", 15) + "€"),
	valid(strings.Repeat("a", 15) + "𝄞"),
	valid(strings.Repeat("a", 31) + "𝄞"),

	// Overlong encodings
	invalid("\xc0\x80"),
	invalid("\xc1\xbf"),
	invalid("\xe0\x80\x80"),
	invalid("\xe0\x9f\xbf"),
	invalid("\xf0\x80\x80\x80"),
	invalid("\xf0\x8f\xbf\xbf"),

	// Truncated sequences
	invalid("\xc2"),
	invalid("\xe2\x82"),
	invalid("\xe2"),
	invalid("\xf0\x9f\x98"),
	invalid("\xf0\x9f"),
	invalid("\xf0"),
	invalid("a\xc2"),
	invalid(strings.Repeat("a", 15) + "\xe2\x82"),
	invalid(strings.Repeat("a", 31) + "\xf0\x9f\x98"),

	// Bad continuation bytes
	invalid("\xc2\x7f"),
	invalid("\xc2\xc0"),
	invalid("\xe2\x28\xa1"),
	invalid("\xe2\x82\x28"),
	invalid("\xf0\x28\x8c\xbc"),
	invalid("\xf0\x90\x28\xbc"),
	invalid("\xf0\x90\x8c\x28"),

	// Lone continuation bytes
	invalid("\x80"),
	invalid("\xbf"),
	invalid("a\x80b"),
	invalid("\xe2\x82\xac\x80"),

	// Out of range
	invalid("\xf4\x90\x80\x80"),
	invalid("\xf5\x80\x80\x80"),
	invalid("\xf7\xbf\xbf\xbf"),
	invalid("\xf8\x88\x80\x80\x80"),
	invalid("\xfe"),
	invalid("\xff"),

	// Surrogate halves
	{"\xed\xa0\x80", -1, 1},
	{"\xed\xbf\xbf", -1, 1},
	{"a\xed\xb0\x80b", -1, 3},
	{"\xed\xa0\x80\xed\xb0\x80", -1, 2},
	valid("\xed\x9f\xbf"), // U+D7FF
}

// CheckCountTests checks that CountTests agree with Reference and
// ReferenceSurrogates.
func CheckCountTests(t testing.TB) {
	t.Helper()
	for i, test := range CountTests {
		if got := Reference([]byte(test.In)); got != test.Out {
			t.Errorf("%d: Reference(%+q) = %d; want: %d", i, test.In, got, test.Out)
		}
		if got := ReferenceSurrogates([]byte(test.In)); got != test.Surrogates {
			t.Errorf("%d: ReferenceSurrogates(%+q) = %d; want: %d",
				i, test.In, got, test.Surrogates)
		}
	}
}
