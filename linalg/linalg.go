// Copyright 2026 The Crux Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides linear-algebra operations over tensors.
//
// Operations are device-polymorphic: each dispatches to the kernel
// registered for the operands' device tag. Import a backend package
// (e.g. backend/cpu) to make its kernels available.
//
// Example:
//
//	backend := cpu.New()
//	a, _ := tensor.FromSlice([]float32{1, 0, 0}, tensor.Shape{3}, backend)
//	b, _ := tensor.FromSlice([]float32{0, 1, 0}, tensor.Shape{3}, backend)
//	c, _ := linalg.Cross(a, b) // (0, 0, 1)
package linalg

import (
	"github.com/pkg/errors"

	"github.com/crux-ml/crux/internal/dispatch"
	internallinalg "github.com/crux-ml/crux/internal/linalg"
	"github.com/crux-ml/crux/tensor"
)

// Sentinel errors, re-exported for errors.Is checks.
var (
	// ErrNoSuitableAxis: no dim was given and no shape dimension has extent 3.
	ErrNoSuitableAxis = internallinalg.ErrNoSuitableAxis

	// ErrAxisExtentMismatch: the resolved dim's extent (after broadcasting) is not 3.
	ErrAxisExtentMismatch = internallinalg.ErrAxisExtentMismatch

	// ErrUnsupportedDevice: no kernel is registered for the operands' device tag.
	ErrUnsupportedDevice = dispatch.ErrUnsupportedDevice

	// ErrDuplicateRegistration: a backend registered the same device tag twice.
	ErrDuplicateRegistration = dispatch.ErrDuplicateRegistration

	// ErrIncompatibleShapes: the operand shapes cannot be broadcast together.
	ErrIncompatibleShapes = tensor.ErrIncompatibleShapes
)

// optionalDim converts the variadic dim argument to the internal optional.
func optionalDim(dim []int) (*int, error) {
	switch len(dim) {
	case 0:
		return nil, nil
	case 1:
		return &dim[0], nil
	default:
		return nil, errors.Errorf("at most one dim may be given, got %d", len(dim))
	}
}

// Cross returns the cross product of a and b along dim. When dim is
// omitted, the first axis of extent 3 in a's shape is used; negative values
// wrap against the broadcast rank. The inputs are broadcast to a common
// shape, which becomes the result's shape.
func Cross[T tensor.DType, B tensor.Backend](a, b *tensor.Tensor[T, B], dim ...int) (*tensor.Tensor[T, B], error) {
	d, err := optionalDim(dim)
	if err != nil {
		return nil, err
	}
	raw, err := internallinalg.Cross(a.Raw(), b.Raw(), d)
	if err != nil {
		return nil, err
	}
	return tensor.New[T, B](raw, a.Backend()), nil
}

// CrossInto computes the cross product of a and b along dim into out,
// resizing out to the broadcast shape as needed (with a warning when
// non-empty contents are discarded). Returns out.
func CrossInto[T tensor.DType, B tensor.Backend](out, a, b *tensor.Tensor[T, B], dim ...int) (*tensor.Tensor[T, B], error) {
	d, err := optionalDim(dim)
	if err != nil {
		return nil, err
	}
	if err := internallinalg.CrossInto(out.Raw(), a.Raw(), b.Raw(), d); err != nil {
		return nil, err
	}
	return out, nil
}

// CrossDim is Cross with a required, explicit dim.
func CrossDim[T tensor.DType, B tensor.Backend](a, b *tensor.Tensor[T, B], dim int) (*tensor.Tensor[T, B], error) {
	raw, err := internallinalg.CrossDim(a.Raw(), b.Raw(), dim)
	if err != nil {
		return nil, err
	}
	return tensor.New[T, B](raw, a.Backend()), nil
}

// CrossDimInto is CrossInto with a required, explicit dim. Returns out.
func CrossDimInto[T tensor.DType, B tensor.Backend](out, a, b *tensor.Tensor[T, B], dim int) (*tensor.Tensor[T, B], error) {
	if err := internallinalg.CrossDimInto(out.Raw(), a.Raw(), b.Raw(), dim); err != nil {
		return nil, err
	}
	return out, nil
}
