// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package benchtest is used for benchmarking utf8scan against the Go stdlib's
// unicode/utf8 package.
//
// Most of the inputs here were taken from Go's unicode/utf8 and strings
// package benchmarks.
//
// It is not part of the utf8scan package so that the stdlib comparison can
// be toggled with the -stdlib flag without affecting the package tests.
package benchtest
