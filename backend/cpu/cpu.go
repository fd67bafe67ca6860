// Copyright 2026 The Crux Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the host compute backend.
//
// Importing this package registers the CPU kernels with the dispatch
// tables; cpu.New() returns the backend handle tensors are created with.
package cpu

import (
	internalcpu "github.com/crux-ml/crux/internal/backend/cpu"
	"github.com/crux-ml/crux/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/crux-ml/crux/backend/cpu"
//	    "github.com/crux-ml/crux/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}
