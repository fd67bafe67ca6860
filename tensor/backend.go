// Copyright 2026 The Crux Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/crux-ml/crux/internal/tensor"
)

// Backend is the handle a typed Tensor carries to identify where its data
// lives and which kernels operate on it.
//
// Crux does not put every operation behind this interface. Computation is
// routed through per-operation dispatch tables keyed by Device; each backend
// package registers its kernels once at load time, so adding a backend
// requires no change to the shape/axis pipeline.
//
// Implementations:
//   - backend/cpu: pure Go host kernels, parallelized across output slices
//   - backend/webgpu: GPU kernels via WebGPU compute shaders
type Backend = tensor.Backend
