// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package utf8scan

import (
	"io"
	"log"
	"os"
	"sync"
	"unsafe"

	"github.com/charlievieth/utf8scan/internal/codec"
)

// WARN: DEV ONLY
const debug = false

var logger = newLogger()

func newLogger() *log.Logger {
	if debug {
		return log.New(os.Stderr, "utf8scan: ", log.Lshortfile)
	}
	return log.New(io.Discard, "", 0)
}

// Invalid is returned by the counting functions when the input is not valid
// UTF-8 and by Locate when the index is out of range.
const Invalid = codec.Invalid

// Config controls which inputs are accepted as UTF-8. The zero value
// implements strict UTF-8.
type Config struct {
	// AllowSurrogates accepts the 3 byte encodings of the UTF-16 surrogate
	// halves U+D800..U+DFFF (0xED 0xA0..0xBF 0x80..0xBF) as code points.
	AllowSurrogates bool
}

var capability = sync.OnceValue(func() codec.Capability {
	c := codec.Detect()
	logger.Printf("vector capability: %s", c)
	return c
})

// VectorWidth returns the widest lane, in bytes, used on this machine or 0
// if only the scalar codec is available.
func VectorWidth() int {
	c := capability()
	switch {
	case c.Has(codec.Lane256):
		return 32
	case c.Has(codec.Lane128):
		return 16
	}
	return 0
}

// Count returns the number of code points in b or Invalid if b is not valid
// UTF-8.
func (c Config) Count(b []byte) int {
	return codec.Select(capability(), len(b)).Count(b, c.AllowSurrogates)
}

// CountString is like Count but takes a string.
func (c Config) CountString(s string) int {
	return c.Count(bytesOf(s))
}

// Valid reports whether b is valid UTF-8.
func (c Config) Valid(b []byte) bool {
	return c.Count(b) != Invalid
}

// ValidString reports whether s is valid UTF-8.
func (c Config) ValidString(s string) bool {
	return c.Count(bytesOf(s)) != Invalid
}

// Count returns the number of code points in b or Invalid if b is not valid
// strict UTF-8.
func Count(b []byte) int { return Config{}.Count(b) }

// CountString is like Count but takes a string.
func CountString(s string) int { return Config{}.CountString(s) }

// Valid reports whether b is valid strict UTF-8.
func Valid(b []byte) bool { return Config{}.Valid(b) }

// ValidString reports whether s is valid strict UTF-8.
func ValidString(s string) bool { return Config{}.ValidString(s) }

// bytesOf returns the bytes of s without copying. The result must not be
// modified.
func bytesOf(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
