// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package codec

import "golang.org/x/sys/cpu"

func detect() Capability {
	var c Capability
	if cpu.X86.HasSSE41 {
		c |= Lane128
	}
	if cpu.X86.HasAVX2 {
		c |= Lane256
	}
	return c
}
