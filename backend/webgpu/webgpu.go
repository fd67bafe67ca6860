//go:build windows

// Copyright 2026 The Crux Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated kernels.
//
// Importing this package registers the WebGPU kernels with the dispatch
// tables. The GPU context itself is brought up lazily on the first kernel
// call, so the import is safe on machines without a usable adapter; kernel
// calls then fail with a device-unavailable error.
package webgpu

import (
	internalwebgpu "github.com/crux-ml/crux/internal/backend/webgpu"
	"github.com/crux-ml/crux/tensor"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (*Backend, error) {
	return internalwebgpu.New()
}
