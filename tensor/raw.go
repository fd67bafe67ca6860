// Copyright 2026 The Crux Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/crux-ml/crux/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape, stride and type information via Shape(), Strides(), DType(), Device()
//   - Type-safe data access via AsFloat32(), AsInt64(), etc.
//   - Reference-counted buffer sharing via Clone() and broadcast views
//   - Contiguity queries via IsContiguous() and Contiguous()
//
// Most users should use the high-level Tensor[T, B] type instead.
type RawTensor = tensor.RawTensor
