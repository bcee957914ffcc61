// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package utf8scan validates UTF-8, counts code points and maps code point
// indexes to byte offsets over large immutable buffers.
//
// Count and the other counting functions treat a buffer as valid or invalid
// as a whole: they return the number of code points or -1 (Invalid) and never
// a partial count. Inputs of at least one lane are processed 32 or 16 bytes
// at a time, depending on the vector width of the CPU, and shorter inputs
// are processed one byte at a time. The result does not depend on the path
// taken.
//
// Locate and Index provide amortized random access by code point into one
// buffer, and Text combines both into an immutable string value.
package utf8scan
