// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package utf8scan

import (
	"fmt"
	"sync"
	"unicode/utf8"
)

// A Text is an immutable, validated UTF-8 string with random access by code
// point. Offsets are memoized in an Index which is allocated on first use
// for texts longer than DefaultStride code points. A Text is safe for
// concurrent use.
type Text struct {
	s     string
	n     int
	conf  Config
	mu    sync.Mutex
	index *Index
}

// NewText returns a Text for s or an error wrapping ErrInvalidUTF8 if s is
// not valid strict UTF-8.
func NewText(s string) (*Text, error) {
	return Config{}.NewText(s)
}

// NewText returns a Text for s or an error wrapping ErrInvalidUTF8 if s is
// not valid UTF-8 under c.
func (c Config) NewText(s string) (*Text, error) {
	n := c.CountString(s)
	if n == Invalid {
		return nil, fmt.Errorf("%w: %d byte string", ErrInvalidUTF8, len(s))
	}
	return &Text{s: s, n: n, conf: c}, nil
}

// Len returns the number of code points in t.
func (t *Text) Len() int { return t.n }

// Size returns the length of t in bytes.
func (t *Text) Size() int { return len(t.s) }

// String returns the text as a string.
func (t *Text) String() string { return t.s }

// IsASCII reports whether t only contains ASCII characters.
func (t *Text) IsASCII() bool { return t.n == len(t.s) }

// Offset returns the byte offset of code point i. Len() is a valid index and
// maps to Size().
func (t *Text) Offset(i int) (int, error) {
	switch {
	case i < 0 || i > t.n:
		return 0, fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, i, t.n)
	case i == t.n:
		return len(t.s), nil
	case t.IsASCII():
		return i, nil
	}
	t.mu.Lock()
	off := Locate(bytesOf(t.s), i, t.n, &t.index)
	t.mu.Unlock()
	if off == Invalid {
		// Unreachable: t.s was validated and i is in range.
		return 0, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return off, nil
}

// RuneAt returns code point i of t. Surrogate halves accepted by
// Config.AllowSurrogates are decoded to their code point value.
func (t *Text) RuneAt(i int) (rune, error) {
	if i == t.n {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, t.n)
	}
	off, err := t.Offset(i)
	if err != nil {
		return 0, err
	}
	return decodeRune(t.s[off:]), nil
}

// Slice returns the code points [i, j) of t.
func (t *Text) Slice(i, j int) (string, error) {
	if i > j {
		return "", fmt.Errorf("%w: invalid slice [%d:%d]", ErrIndexOutOfRange, i, j)
	}
	start, err := t.Offset(i)
	if err != nil {
		return "", err
	}
	end, err := t.Offset(j)
	if err != nil {
		return "", err
	}
	return t.s[start:end], nil
}

// Release frees the memoized offsets of t. The Text remains usable.
func (t *Text) Release() {
	t.mu.Lock()
	FreeIndex(&t.index)
	t.mu.Unlock()
}

// decodeRune decodes the first code point of valid UTF-8 s, including
// encoded surrogate halves which utf8.DecodeRuneInString rejects.
func decodeRune(s string) rune {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size == 1 && len(s) >= 3 && s[0] == 0xED {
		return rune(s[0]&0x0F)<<12 | rune(s[1]&0x3F)<<6 | rune(s[2]&0x3F)
	}
	return r
}
