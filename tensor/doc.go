// Copyright 2026 The Crux Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe multi-dimensional arrays for the Crux
// numeric library.
//
// # Overview
//
// Tensors are the fundamental data structure in Crux. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Zero-copy broadcast views
//   - Device abstraction (CPU, WebGPU)
//
// # Basic Usage
//
//	import (
//	    "github.com/crux-ml/crux/tensor"
//	    "github.com/crux-ml/crux/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    a := tensor.Zeros[float32](tensor.Shape{4, 3}, backend)
//	    b := tensor.Ones[float32](tensor.Shape{4, 3}, backend)
//	    _ = a
//	    _ = b
//	}
//
// # Supported Data Types
//
// The tensor package supports the following element types via the DType
// constraint:
//   - float32, float64, float16.Float16 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers, useful for images)
//   - bool (boolean masks)
//
// # Device Support
//
// Tensors carry a device tag identifying the backend their data belongs to.
// Operations dispatch to the kernel registered for that tag; adding a new
// backend is a single registration call at load time.
//
// # Broadcasting
//
// Two shapes are broadcast-compatible iff, after right-aligning and treating
// missing leading dimensions as extent 1, every paired extent is equal or
// one of the pair is 1. Stretched dimensions become stride-0 views: no data
// is copied until a kernel needs contiguous memory.
package tensor
