// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package benchtest

import (
	"flag"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charlievieth/utf8scan"
)

var benchStdLib = flag.Bool("stdlib", false, "Use unicode/utf8 in benchmarks (for comparison)")

// stdCount is the stdlib equivalent of utf8scan.Count.
func stdCount(b []byte) int {
	if !utf8.Valid(b) {
		return -1
	}
	return utf8.RuneCount(b)
}

func stdCountString(s string) int {
	if !utf8.ValidString(s) {
		return -1
	}
	return utf8.RuneCountInString(s)
}

func benchCount(b *testing.B, buf []byte) {
	b.SetBytes(int64(len(buf)))
	if *benchStdLib {
		for i := 0; i < b.N; i++ {
			stdCount(buf)
		}
	} else {
		for i := 0; i < b.N; i++ {
			utf8scan.Count(buf)
		}
	}
}

func benchCountString(b *testing.B, s string) {
	b.SetBytes(int64(len(s)))
	if *benchStdLib {
		for i := 0; i < b.N; i++ {
			stdCountString(s)
		}
	} else {
		for i := 0; i < b.N; i++ {
			utf8scan.CountString(s)
		}
	}
}

func benchValid(b *testing.B, buf []byte) {
	b.SetBytes(int64(len(buf)))
	if *benchStdLib {
		for i := 0; i < b.N; i++ {
			utf8.Valid(buf)
		}
	} else {
		for i := 0; i < b.N; i++ {
			utf8scan.Valid(buf)
		}
	}
}

func benchLocate(b *testing.B, buf []byte, idx []int) {
	n := utf8.RuneCount(buf)
	if *benchStdLib {
		for i := 0; i < b.N; i++ {
			k := idx[i%len(idx)]
			off := 0
			for j := 0; j < k; j++ {
				_, size := utf8.DecodeRune(buf[off:])
				off += size
			}
		}
	} else {
		var tab *utf8scan.Index
		for i := 0; i < b.N; i++ {
			utf8scan.Locate(buf, idx[i%len(idx)], n, &tab)
		}
	}
}

// checkCount fails the benchmark if utf8scan and the stdlib disagree.
func checkCount(b *testing.B, buf []byte) {
	if got, want := utf8scan.Count(buf), stdCount(buf); got != want {
		b.Fatalf("utf8scan.Count = %d; want: %d", got, want)
	}
}

var benchInputs = []struct {
	name string
	s    string
}{
	{"ASCII", "0123456789"},
	{"Japanese", "日本語日本語日本語日"},
	{"Mixed", "Hello, 世界! 𝄞 é"},
	{"Emoji", "😀😃😄😁😆😅🤣😂🙂🙃"},
	{"Greek", "ΑΔΕΛΦΟΣΎΝΗΣ αδελφοσύνης"},
}

func BenchmarkCount(b *testing.B) {
	for _, in := range benchInputs {
		for _, n := range []int{1, 4, 64, 1024} {
			buf := []byte(strings.Repeat(in.s, n))
			checkCount(b, buf)
			b.Run(fmt.Sprintf("%s/%d", in.name, len(buf)), func(b *testing.B) {
				benchCount(b, buf)
			})
		}
	}
}

func BenchmarkCountString(b *testing.B) {
	for _, in := range benchInputs {
		s := strings.Repeat(in.s, 256)
		b.Run(in.name, func(b *testing.B) {
			benchCountString(b, s)
		})
	}
}

// Invalid input is rejected near the end so the whole buffer is scanned.
func BenchmarkCountInvalid(b *testing.B) {
	for _, in := range benchInputs {
		buf := []byte(strings.Repeat(in.s, 256) + "\xed\xa0\x80!")
		checkCount(b, buf)
		b.Run(in.name, func(b *testing.B) {
			benchCount(b, buf)
		})
	}
}

func BenchmarkValidTenASCIIChars(b *testing.B) {
	benchValid(b, []byte("0123456789"))
}

func BenchmarkValidTenJapaneseChars(b *testing.B) {
	benchValid(b, []byte("日本語日本語日本語日"))
}

func BenchmarkValidLongMostlyASCII(b *testing.B) {
	benchValid(b, []byte(strings.Repeat("0123456789", 1<<10)+"日"))
}

func BenchmarkValidLongJapanese(b *testing.B) {
	benchValid(b, []byte(strings.Repeat("日本語日本語日本語日", 1<<10)))
}

func BenchmarkLocate(b *testing.B) {
	for _, in := range benchInputs {
		buf := []byte(strings.Repeat(in.s, 1024))
		n := utf8.RuneCount(buf)
		idx := make([]int, 256)
		for i := range idx {
			idx[i] = (i * 7919) % n
		}
		b.Run(in.name, func(b *testing.B) {
			benchLocate(b, buf, idx)
		})
	}
}
