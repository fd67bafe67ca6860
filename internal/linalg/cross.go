// Package linalg implements linear-algebra operations over raw tensors.
// Every binary operation here follows the same skeleton: resolve the
// operation axis, infer the broadcast shape, expand the operands, prepare
// the output in place, then dispatch to a device kernel by tag.
package linalg

import (
	"github.com/pkg/errors"

	"github.com/crux-ml/crux/internal/dispatch"
	"github.com/crux-ml/crux/internal/tensor"
)

var (
	// ErrNoSuitableAxis is returned when no axis was given and no shape
	// dimension has extent 3.
	ErrNoSuitableAxis = errors.New("no dimension of size 3 in input")

	// ErrAxisExtentMismatch is returned when the resolved axis does not have
	// extent 3 after broadcasting.
	ErrAxisExtentMismatch = errors.New("cross dimension does not have size 3")
)

// CrossKernel is the per-device entry point for the cross product. out, a
// and b share a shape whose extent at dim is 3; a and b may be broadcast
// views (stride 0 on stretched dimensions). Slices along dim are
// independent, so kernels are free to parallelize arbitrarily.
type CrossKernel func(out, a, b *tensor.RawTensor, dim int) error

var crossStub = dispatch.NewStub[CrossKernel]("cross")

// RegisterCrossKernel registers the cross-product kernel for a device.
// Backend packages call this exactly once from init().
func RegisterCrossKernel(device tensor.Device, kernel CrossKernel) {
	crossStub.MustRegister(device, kernel)
}

// resolveCrossDim picks the operation axis: an explicit dim passes through
// unmodified (wrapping happens later, against the concrete rank), otherwise
// the first axis of extent 3 wins. The first-match tie-break when several
// axes have extent 3 is load-bearing: callers depend on it, see the tests.
func resolveCrossDim(dim *int, shape tensor.Shape) (int, error) {
	if dim != nil {
		return *dim, nil
	}
	for i, extent := range shape {
		if extent == 3 {
			return i, nil
		}
	}
	return 0, errors.Wrapf(ErrNoSuitableAxis, "shape %v", shape)
}

// Cross computes the cross product of a and b along dim, allocating a fresh
// output. A nil dim selects the first axis of extent 3 in a's shape.
func Cross(a, b *tensor.RawTensor, dim *int) (*tensor.RawTensor, error) {
	d, err := resolveCrossDim(dim, a.Shape())
	if err != nil {
		return nil, err
	}
	return CrossDim(a, b, d)
}

// CrossInto is Cross writing into a caller-supplied output buffer.
func CrossInto(out, a, b *tensor.RawTensor, dim *int) error {
	d, err := resolveCrossDim(dim, a.Shape())
	if err != nil {
		return err
	}
	return CrossDimInto(out, a, b, d)
}

// CrossDim computes the cross product along an explicit dim, allocating a
// fresh output.
func CrossDim(a, b *tensor.RawTensor, dim int) (*tensor.RawTensor, error) {
	out, err := tensor.EmptyLike(tensor.Shape{0}, a)
	if err != nil {
		return nil, err
	}
	if err := CrossDimInto(out, a, b, dim); err != nil {
		return nil, err
	}
	return out, nil
}

// CrossDimInto is the full pipeline: broadcast-infer the common shape of a
// and b, expand both to it (a no-op view when shapes already match), wrap
// dim against the broadcast rank, check the extent-3 invariant, resize out
// in place, then dispatch to the kernel registered for the operands' device
// tag.
func CrossDimInto(out, a, b *tensor.RawTensor, dim int) error {
	if a.Device() != b.Device() {
		return errors.Errorf("cross: operands must share a device, got %s and %s", a.Device(), b.Device())
	}
	if a.DType() != b.DType() {
		return errors.Errorf("cross: operands must share a dtype, got %s and %s", a.DType(), b.DType())
	}
	if out.Device() != a.Device() {
		return errors.Errorf("cross: output on %s but operands on %s", out.Device(), a.Device())
	}
	if out.DType() != a.DType() {
		return errors.Errorf("cross: output dtype %s but operand dtype %s", out.DType(), a.DType())
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return err
	}

	ab, err := tensor.ExpandTo(a, outShape)
	if err != nil {
		return err
	}
	bb, err := tensor.ExpandTo(b, outShape)
	if err != nil {
		return err
	}

	// Re-wrap against the broadcast rank: it may exceed a's rank.
	d, err := tensor.WrapDim(dim, len(outShape))
	if err != nil {
		return err
	}
	if outShape[d] != 3 {
		return errors.Wrapf(ErrAxisExtentMismatch,
			"dimension %d of shape %v has size %d", dim, outShape, outShape[d])
	}

	if err := tensor.ResizeOutput(out, outShape); err != nil {
		return err
	}

	kernel, err := crossStub.Lookup(a.Device())
	if err != nil {
		return err
	}
	return kernel(out, ab, bb, d)
}
