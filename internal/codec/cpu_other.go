// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

//go:build !amd64 && !arm64
// +build !amd64,!arm64

package codec

func detect() Capability { return 0 }
