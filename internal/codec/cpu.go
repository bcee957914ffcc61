// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package codec

import (
	"os"
	"strings"
	"sync"
)

// Capability is the set of vector tiers usable on this machine.
type Capability uint8

const (
	Lane128 Capability = 1 << iota // 128-bit lanes
	Lane256                         // 256-bit lanes
)

// NoVectorEnv is the environment variable that disables every vector tier
// when set to a true value ("1", "true", "yes").
const NoVectorEnv = "UTF8SCAN_NOVECTOR"

// Has reports if all tiers in f are present in c.
func (c Capability) Has(f Capability) bool { return c&f == f }

func (c Capability) String() string {
	var a []string
	if c.Has(Lane128) {
		a = append(a, "vec128")
	}
	if c.Has(Lane256) {
		a = append(a, "vec256")
	}
	if len(a) == 0 {
		return "scalar"
	}
	return strings.Join(a, "|")
}

var detected = sync.OnceValue(func() Capability {
	if noVector(os.Getenv(NoVectorEnv)) {
		return 0
	}
	return detect()
})

// Detect returns the capability of the current machine. Detection runs once
// per process and the result never changes.
func Detect() Capability { return detected() }

func noVector(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes":
		return true
	}
	return false
}
