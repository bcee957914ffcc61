// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package test

import (
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

var exhaustiveFuzz = flag.Bool("exhaustive", false, "Run exhaustive fuzz tests (slow).")

func cryptoRandInt(t testing.TB) int64 {
	var b [8]byte
	if _, err := io.ReadFull(crand.Reader, b[:]); err != nil {
		if t != nil {
			t.Fatal(err)
		}
		panic(err)
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

func intn(rr *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rr.Intn(n)
}

// corrupt applies one random edit to b that makes it invalid UTF-8, unless
// the edit happens to produce a valid sequence (replacing a byte with an
// ASCII byte can). Callers must compare against Reference.
func corrupt(rr *rand.Rand, b []byte) []byte {
	i := intn(rr, len(b))
	switch rr.Intn(8) {
	case 0: // lone continuation byte
		c := byte(0x80 + rr.Intn(0x40))
		b = append(b[:i], append([]byte{c}, b[i:]...)...)
	case 1: // truncate the input inside a multi-byte sequence
		for j := len(b) - 1; j > 0; j-- {
			if b[j] >= 0xC0 {
				return b[:j+1]
			}
		}
		b = append(b, 0xE2, 0x82)
	case 2: // overlong
		overlong := [...][]byte{
			{0xC0, 0x80}, {0xC1, 0xBF}, {0xE0, 0x80, 0x80}, {0xE0, 0x9F, 0xBF},
			{0xF0, 0x80, 0x80, 0x80}, {0xF0, 0x8F, 0xBF, 0xBF},
		}
		o := overlong[rr.Intn(len(overlong))]
		b = append(b[:i], append(append([]byte(nil), o...), b[i:]...)...)
	case 3: // surrogate
		tail := append([]byte(nil), b[i:]...)
		b = append(AppendSurrogate(b[:i], rr), tail...)
	case 4: // out of range
		c := byte(0xF5 + rr.Intn(0x0B))
		if rr.Intn(2) == 0 {
			c = 0xF4
			b = append(b[:i], append([]byte{c, 0x90 + byte(rr.Intn(0x30)), 0x80, 0x80}, b[i:]...)...)
		} else {
			b = append(b[:i], append([]byte{c, 0x80, 0x80, 0x80}, b[i:]...)...)
		}
	default: // random byte
		if len(b) == 0 {
			return append(b, byte(0x80+rr.Intn(0x80)))
		}
		b[i] = byte(rr.Intn(256))
	}
	return b
}

func fuzzNumCPU() int {
	numCPU := runtime.NumCPU()
	if numCPU < 1 {
		numCPU = 1
	}
	return numCPU
}

func randomTestSeeds(t *testing.T) []int64 {
	seeds := []int64{
		1,
		time.Now().UnixNano(),
		cryptoRandInt(t),
		cryptoRandInt(t),
	}
	if !testing.Short() {
		numCPU := fuzzNumCPU()
		for i := len(seeds); i < numCPU; i++ {
			seeds = append(seeds, cryptoRandInt(t))
		}
	}
	return seeds
}

// RunRandomTest calls fn repeatedly, in parallel, with a Rand seeded from a
// fixed seed, the current time and crypto/rand. The seed is the name of
// the subtest so that failures can be reproduced.
func RunRandomTest(t *testing.T, fn func(t *FuzzTest)) {
	if *exhaustiveFuzz && testing.Short() {
		t.Fatal(`Cannot combine "-short" and "-exhaustive" flags`)
	}
	// Count is the total number of test iterations to run.
	count := 2_500
	if testing.Short() {
		count /= 2
	}
	seeds := randomTestSeeds(t)
	if *exhaustiveFuzz {
		d := 4_000_000
		count = d / len(seeds)
		t.Logf("N: %d", count)
	}
	for _, seed := range seeds {
		seed := seed
		t.Run(fmt.Sprintf("%d", seed), func(t *testing.T) {
			t.Parallel()
			start := time.Now()
			if testing.Verbose() {
				t.Cleanup(func() { t.Logf("duration: %s", time.Since(start)) })
			}
			tt := newFuzzTest(t, seed)
			for i := 0; i < count; i++ {
				fn(tt)
			}
		})
		if t.Failed() && testing.Short() {
			return
		}
	}
}

// A FuzzTest is passed to the function run by RunRandomTest.
type FuzzTest struct {
	testing.TB
	Rand *rand.Rand
	buf  []byte // scratch space
}

func newFuzzTest(t *testing.T, seed int64) *FuzzTest {
	if seed < 0 {
		seed = cryptoRandInt(t)
	}
	return &FuzzTest{
		TB:   &testWrapper{T: t},
		Rand: rand.New(rand.NewSource(seed)),
		buf:  make([]byte, 0, 512),
	}
}

// Valid returns a random valid UTF-8 buffer and its code point count. The
// buffer is only valid until the next call to Valid or Args.
func (t *FuzzTest) Valid() ([]byte, int) {
	const maxRunes = 200
	n := t.Rand.Intn(maxRunes + 1)
	t.buf = AppendRandRunes(t.buf[:0], t.Rand, n)
	return t.buf, n
}

// Args returns a random buffer that is valid UTF-8 half of the time along
// with the expected result of a strict count.
func (t *FuzzTest) Args() ([]byte, int) {
	b, n := t.Valid()
	if t.Rand.Float64() < 0.5 {
		return b, n
	}
	for i := 0; i < 1+t.Rand.Intn(3); i++ {
		b = corrupt(t.Rand, b)
	}
	t.buf = b
	return b, Reference(b)
}

// CountFuzz checks that fn agrees with Reference on random valid and
// corrupted input.
func CountFuzz(t *testing.T, fn CountFunc) {
	RunRandomTest(t, func(t *FuzzTest) {
		b, want := t.Args()
		if got := fn(b); got != want {
			t.Errorf("Count\n"+
				"In:   %+q\n"+
				"Len:  %d\n"+
				"Got:  %d\n"+
				"Want: %d\n",
				b, len(b), got, want)
		}
	})
}

var _ testing.TB = (*testWrapper)(nil)

// A testWrapper wraps a testing.T and will immediately fail the test
// if more that N errors occur.
type testWrapper struct {
	*testing.T
	fails int32
}

func (c *testWrapper) check() {
	c.T.Helper()
	if n := atomic.AddInt32(&c.fails, 1); n >= 10 {
		// We run tests in parallel so only call Fatal on the
		// test that crossed the threshold.
		if n == 10 {
			c.T.Fatal("Too many errors:", n)
		} else {
			c.T.FailNow() // Abort subsequent tests
		}
		panic(fmt.Sprintf("aborting test: too many errors: %d", n)) // unreachable
	}
}

func (c *testWrapper) Error(args ...any) {
	c.T.Helper()
	c.T.Error(args...)
	c.check()
}

func (c *testWrapper) Errorf(format string, args ...any) {
	c.T.Helper()
	c.T.Errorf(format, args...)
	c.check()
}

func (c *testWrapper) Fail() {
	c.T.Helper()
	c.T.Fail()
	c.check()
}

func (c *testWrapper) FailNow() {
	c.T.Helper()
	c.T.FailNow()
	c.check()
}

func (c *testWrapper) Fatal(args ...any) {
	c.T.Helper()
	c.T.Fatal(args...)
	c.check()
}

func (c *testWrapper) Fatalf(format string, args ...any) {
	c.T.Helper()
	c.T.Fatalf(format, args...)
	c.check()
}
