package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/crux-ml/crux/internal/tensor"
)

func newFilled(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), data)
	return raw
}

func TestCrossKernelBasic(t *testing.T) {
	a := newFilled(t, []float32{1, 0, 0}, tensor.Shape{3})
	b := newFilled(t, []float32{0, 1, 0}, tensor.Shape{3})
	out, err := tensor.NewRaw(tensor.Shape{3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	require.NoError(t, Cross(out, a, b, 0))
	assert.Equal(t, []float32{0, 0, 1}, out.AsFloat32())
}

func TestCrossKernelBroadcastView(t *testing.T) {
	// One operand is a stride-0 broadcast view; the kernel iterates it
	// without materialization.
	a := newFilled(t, []float32{2, 0, 0}, tensor.Shape{1, 3})
	av, err := tensor.ExpandTo(a, tensor.Shape{3, 3})
	require.NoError(t, err)
	require.False(t, av.IsContiguous())

	b := newFilled(t, []float32{
		0, 1, 0,
		0, 0, 1,
		0, 1, 0,
	}, tensor.Shape{3, 3})

	out, err := tensor.NewRaw(tensor.Shape{3, 3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	require.NoError(t, Cross(out, av, b, 1))
	assert.Equal(t, []float32{
		0, 0, 2,
		0, -2, 0,
		0, 0, 2,
	}, out.AsFloat32())
}

func TestCrossKernelMiddleAxis(t *testing.T) {
	// Shape (2, 3, 2), vectors along the middle axis.
	a, err := tensor.NewRaw(tensor.Shape{2, 3, 2}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	b, err := tensor.NewRaw(tensor.Shape{2, 3, 2}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	out, err := tensor.NewRaw(tensor.Shape{2, 3, 2}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	// Every slice holds a=(1,0,0), b=(0,1,0) so out must be (0,0,1).
	ad, bd := a.AsFloat32(), b.AsFloat32()
	for outer := 0; outer < 2; outer++ {
		for inner := 0; inner < 2; inner++ {
			base := outer*6 + inner
			ad[base] = 1    // component 0 (stride 2)
			bd[base+2] = 1  // component 1
		}
	}

	require.NoError(t, Cross(out, a, b, 1))
	od := out.AsFloat32()
	for outer := 0; outer < 2; outer++ {
		for inner := 0; inner < 2; inner++ {
			base := outer*6 + inner
			assert.Equal(t, float32(0), od[base])
			assert.Equal(t, float32(0), od[base+2])
			assert.Equal(t, float32(1), od[base+4])
		}
	}
}

func TestCrossKernelInt64(t *testing.T) {
	a, err := tensor.NewRaw(tensor.Shape{3}, tensor.Int64, tensor.CPU)
	require.NoError(t, err)
	b, err := tensor.NewRaw(tensor.Shape{3}, tensor.Int64, tensor.CPU)
	require.NoError(t, err)
	out, err := tensor.NewRaw(tensor.Shape{3}, tensor.Int64, tensor.CPU)
	require.NoError(t, err)

	copy(a.AsInt64(), []int64{2, 3, 4})
	copy(b.AsInt64(), []int64{5, 6, 7})

	require.NoError(t, Cross(out, a, b, 0))
	// (3*7-4*6, 4*5-2*7, 2*6-3*5) = (-3, 6, -3)
	assert.Equal(t, []int64{-3, 6, -3}, out.AsInt64())
}

func TestCrossKernelFloat16(t *testing.T) {
	a, err := tensor.NewRaw(tensor.Shape{3}, tensor.Float16, tensor.CPU)
	require.NoError(t, err)
	b, err := tensor.NewRaw(tensor.Shape{3}, tensor.Float16, tensor.CPU)
	require.NoError(t, err)
	out, err := tensor.NewRaw(tensor.Shape{3}, tensor.Float16, tensor.CPU)
	require.NoError(t, err)

	for i, v := range []float32{1, 0, 0} {
		a.AsFloat16()[i] = float16.Fromfloat32(v)
	}
	for i, v := range []float32{0, 1, 0} {
		b.AsFloat16()[i] = float16.Fromfloat32(v)
	}

	require.NoError(t, Cross(out, a, b, 0))
	got := out.AsFloat16()
	assert.Equal(t, float32(0), got[0].Float32())
	assert.Equal(t, float32(0), got[1].Float32())
	assert.Equal(t, float32(1), got[2].Float32())
}

func TestCrossKernelUnsupportedDType(t *testing.T) {
	a, err := tensor.NewRaw(tensor.Shape{3}, tensor.Bool, tensor.CPU)
	require.NoError(t, err)
	out, err := tensor.NewRaw(tensor.Shape{3}, tensor.Bool, tensor.CPU)
	require.NoError(t, err)

	assert.Error(t, Cross(out, a, a, 0))
}

// Large inputs exercise the parallel path; results must match the math
// regardless of how work is chunked.
func TestCrossKernelParallelConsistency(t *testing.T) {
	const rows = 10_000
	a, err := tensor.NewRaw(tensor.Shape{rows, 3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	b, err := tensor.NewRaw(tensor.Shape{rows, 3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	out, err := tensor.NewRaw(tensor.Shape{rows, 3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	ad, bd := a.AsFloat32(), b.AsFloat32()
	for i := 0; i < rows; i++ {
		ad[i*3], ad[i*3+1], ad[i*3+2] = float32(i), 1, 0
		bd[i*3], bd[i*3+1], bd[i*3+2] = 0, float32(i), 2
	}

	require.NoError(t, Cross(out, a, b, 1))

	od := out.AsFloat32()
	for i := 0; i < rows; i++ {
		fi := float32(i)
		assert.Equal(t, float32(2), od[i*3], "row %d", i)
		assert.Equal(t, -2*fi, od[i*3+1], "row %d", i)
		assert.Equal(t, fi*fi, od[i*3+2], "row %d", i)
	}
}
