package tensor

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ResizeOutput makes out's shape equal target, reallocating backing storage
// as needed. When out already has the target shape this is a no-op. When out
// held one or more elements, a warning is emitted: resizing discards the old
// contents, which usually means the caller passed a stale output buffer.
//
// After a successful call out.Shape().Equal(target) holds; callers never need
// to re-check.
func ResizeOutput(out *RawTensor, target Shape) error {
	if out.shape.Equal(target) {
		return nil
	}

	if err := target.Validate(); err != nil {
		return errors.Wrap(err, "resize output")
	}

	if out.NumElements() > 0 {
		klog.Warningf("an output with one or more elements was resized from %v to %v; its contents are discarded",
			out.shape, target)
	}

	byteSize := target.NumElements() * out.dtype.Size()
	if byteSize != len(out.buffer.data) || !out.IsUnique() || out.offset != 0 {
		out.buffer.release()
		out.buffer = newTensorBuffer(byteSize)
		out.offset = 0
	}
	out.shape = target.Clone()
	out.stride = target.ComputeStrides()
	return nil
}
