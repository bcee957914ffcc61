// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package utf8scan

import "errors"

var (
	// ErrInvalidUTF8 is returned when input is not valid UTF-8. Use a byte
	// level scan (e.g. utf8.DecodeRune) to find the offending sequence.
	ErrInvalidUTF8 = errors.New("utf8scan: invalid UTF-8")

	// ErrIndexOutOfRange is returned when a code point index is outside of
	// the text.
	ErrIndexOutOfRange = errors.New("utf8scan: index out of range")
)
