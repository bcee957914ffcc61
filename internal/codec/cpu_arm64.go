// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package codec

import "golang.org/x/sys/cpu"

// NEON only has 128-bit registers.
func detect() Capability {
	if cpu.ARM64.HasASIMD {
		return Lane128
	}
	return 0
}
