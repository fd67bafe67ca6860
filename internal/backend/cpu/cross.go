package cpu

import (
	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/crux-ml/crux/internal/parallel"
	"github.com/crux-ml/crux/internal/tensor"
)

// Cross is the host cross-product kernel. out, a and b share a shape whose
// extent at dim is 3; a and b may be broadcast views (stride 0 on stretched
// dimensions), which the strided iteration handles without materializing.
func Cross(out, a, b *tensor.RawTensor, dim int) error {
	shape := out.Shape()
	n := shape.NumElements() / 3

	switch out.DType() {
	case tensor.Float32:
		crossStrided(out.AsFloat32(), a.AsFloat32(), b.AsFloat32(),
			shape, out.Strides(), a.Strides(), b.Strides(), dim, n)
	case tensor.Float64:
		crossStrided(out.AsFloat64(), a.AsFloat64(), b.AsFloat64(),
			shape, out.Strides(), a.Strides(), b.Strides(), dim, n)
	case tensor.Int32:
		crossStrided(out.AsInt32(), a.AsInt32(), b.AsInt32(),
			shape, out.Strides(), a.Strides(), b.Strides(), dim, n)
	case tensor.Int64:
		crossStrided(out.AsInt64(), a.AsInt64(), b.AsInt64(),
			shape, out.Strides(), a.Strides(), b.Strides(), dim, n)
	case tensor.Float16:
		crossStridedFloat16(out.AsFloat16(), a.AsFloat16(), b.AsFloat16(),
			shape, out.Strides(), a.Strides(), b.Strides(), dim, n)
	default:
		return errors.Errorf("cpu: cross does not support dtype %s", out.DType())
	}
	return nil
}

// sliceOffsets maps the i-th independent slice (a multi-index over every
// dimension except dim) to base element offsets in dst, a and b.
func sliceOffsets(i int, shape tensor.Shape, dstStride, aStride, bStride []int, dim int) (dstOff, aOff, bOff int) {
	rem := i
	for d := len(shape) - 1; d >= 0; d-- {
		if d == dim {
			continue
		}
		coord := rem % shape[d]
		rem /= shape[d]
		dstOff += coord * dstStride[d]
		aOff += coord * aStride[d]
		bOff += coord * bStride[d]
	}
	return dstOff, aOff, bOff
}

func crossStrided[T ~float32 | ~float64 | ~int32 | ~int64](dst, a, b []T,
	shape tensor.Shape, dstStride, aStride, bStride []int, dim, n int) {
	ds, as, bs := dstStride[dim], aStride[dim], bStride[dim]
	parallel.For(n, func(i int) {
		dstOff, aOff, bOff := sliceOffsets(i, shape, dstStride, aStride, bStride, dim)
		a0, a1, a2 := a[aOff], a[aOff+as], a[aOff+2*as]
		b0, b1, b2 := b[bOff], b[bOff+bs], b[bOff+2*bs]
		dst[dstOff] = a1*b2 - a2*b1
		dst[dstOff+ds] = a2*b0 - a0*b2
		dst[dstOff+2*ds] = a0*b1 - a1*b0
	}, parallel.DefaultConfig())
}

// crossStridedFloat16 computes in float32 and rounds each result back to
// half precision, the usual contract for float16 arithmetic on hosts
// without native half-float units.
func crossStridedFloat16(dst, a, b []float16.Float16,
	shape tensor.Shape, dstStride, aStride, bStride []int, dim, n int) {
	ds, as, bs := dstStride[dim], aStride[dim], bStride[dim]
	parallel.For(n, func(i int) {
		dstOff, aOff, bOff := sliceOffsets(i, shape, dstStride, aStride, bStride, dim)
		a0, a1, a2 := a[aOff].Float32(), a[aOff+as].Float32(), a[aOff+2*as].Float32()
		b0, b1, b2 := b[bOff].Float32(), b[bOff+bs].Float32(), b[bOff+2*bs].Float32()
		dst[dstOff] = float16.Fromfloat32(a1*b2 - a2*b1)
		dst[dstOff+ds] = float16.Fromfloat32(a2*b0 - a0*b2)
		dst[dstOff+2*ds] = float16.Fromfloat32(a0*b1 - a1*b0)
	}, parallel.DefaultConfig())
}
