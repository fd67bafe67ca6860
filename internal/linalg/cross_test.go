package linalg_test

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"

	// Registers the CPU cross kernel.
	_ "github.com/crux-ml/crux/internal/backend/cpu"
	"github.com/crux-ml/crux/internal/dispatch"
	"github.com/crux-ml/crux/internal/linalg"
	"github.com/crux-ml/crux/internal/tensor"
)

func rawFromSlice(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), data)
	return raw
}

func TestCrossUnitVectors(t *testing.T) {
	a := rawFromSlice(t, []float32{1, 0, 0}, tensor.Shape{3})
	b := rawFromSlice(t, []float32{0, 1, 0}, tensor.Shape{3})

	out, err := linalg.Cross(a, b, nil)
	require.NoError(t, err)
	assert.True(t, out.Shape().Equal(tensor.Shape{3}))
	assert.Equal(t, []float32{0, 0, 1}, out.AsFloat32())
}

func TestCrossAnticommutative(t *testing.T) {
	a := rawFromSlice(t, []float32{1, 2, 3, -4, 0.5, 2}, tensor.Shape{2, 3})
	b := rawFromSlice(t, []float32{-2, 1, 7, 3, 3, 1}, tensor.Shape{2, 3})

	ab, err := linalg.Cross(a, b, nil)
	require.NoError(t, err)
	ba, err := linalg.Cross(b, a, nil)
	require.NoError(t, err)

	abData := ab.AsFloat32()
	baData := ba.AsFloat32()
	require.Len(t, baData, len(abData))
	for i := range abData {
		assert.Equal(t, abData[i], -baData[i], "index %d", i)
	}
}

func TestCrossSelfIsZero(t *testing.T) {
	a := rawFromSlice(t, []float32{3, -1, 2, 0.25, 8, -5}, tensor.Shape{2, 3})

	out, err := linalg.Cross(a, a, nil)
	require.NoError(t, err)
	for i, v := range out.AsFloat32() {
		assert.Equal(t, float32(0), v, "index %d", i)
	}
}

func TestCrossDimExplicitAxis(t *testing.T) {
	// Shape (3, 2): vectors run down the first axis.
	a := rawFromSlice(t, []float32{
		1, 0,
		0, 1,
		0, 0,
	}, tensor.Shape{3, 2})
	b := rawFromSlice(t, []float32{
		0, 0,
		1, 0,
		0, 1,
	}, tensor.Shape{3, 2})

	out, err := linalg.CrossDim(a, b, 0)
	require.NoError(t, err)

	// Column 0: (1,0,0)x(0,1,0) = (0,0,1). Column 1: (0,1,0)x(0,0,1) = (1,0,0).
	assert.Equal(t, []float32{
		0, 1,
		0, 0,
		1, 0,
	}, out.AsFloat32())
}

func TestCrossNegativeDim(t *testing.T) {
	a := rawFromSlice(t, []float32{1, 0, 0}, tensor.Shape{1, 3})
	b := rawFromSlice(t, []float32{0, 1, 0}, tensor.Shape{1, 3})

	out, err := linalg.CrossDim(a, b, -1)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 1}, out.AsFloat32())
}

func TestCrossBroadcasts(t *testing.T) {
	// (1, 3) against (4, 3): the single vector is stretched across rows.
	a := rawFromSlice(t, []float32{1, 0, 0}, tensor.Shape{1, 3})
	b := rawFromSlice(t, []float32{
		0, 1, 0,
		0, 1, 0,
		0, 0, 1,
		0, 2, 0,
	}, tensor.Shape{4, 3})

	out, err := linalg.Cross(a, b, nil)
	require.NoError(t, err)
	assert.True(t, out.Shape().Equal(tensor.Shape{4, 3}))
	assert.Equal(t, []float32{
		0, 0, 1,
		0, 0, 1,
		0, -1, 0,
		0, 0, 2,
	}, out.AsFloat32())
}

func TestCrossIncompatibleShapes(t *testing.T) {
	a := rawFromSlice(t, make([]float32, 6), tensor.Shape{2, 3})
	b := rawFromSlice(t, make([]float32, 12), tensor.Shape{4, 3})

	_, err := linalg.Cross(a, b, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tensor.ErrIncompatibleShapes))
}

func TestCrossAxisExtentMismatch(t *testing.T) {
	a := rawFromSlice(t, make([]float32, 12), tensor.Shape{4, 3})
	b := rawFromSlice(t, make([]float32, 12), tensor.Shape{4, 3})

	_, err := linalg.CrossDim(a, b, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, linalg.ErrAxisExtentMismatch))
}

func TestCrossUnsupportedDevice(t *testing.T) {
	a, err := tensor.NewRaw(tensor.Shape{3}, tensor.Float32, tensor.Metal)
	require.NoError(t, err)
	b, err := tensor.NewRaw(tensor.Shape{3}, tensor.Float32, tensor.Metal)
	require.NoError(t, err)

	_, err = linalg.Cross(a, b, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dispatch.ErrUnsupportedDevice))
}

func TestCrossMixedDevices(t *testing.T) {
	a, err := tensor.NewRaw(tensor.Shape{3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	b, err := tensor.NewRaw(tensor.Shape{3}, tensor.Float32, tensor.Metal)
	require.NoError(t, err)

	_, err = linalg.Cross(a, b, nil)
	assert.Error(t, err)
}

func TestCrossIntoResizeWarnsOnce(t *testing.T) {
	a := rawFromSlice(t, []float32{1, 0, 0, 0, 1, 0}, tensor.Shape{2, 3})
	b := rawFromSlice(t, []float32{0, 1, 0, 0, 0, 1}, tensor.Shape{2, 3})

	// Pre-populated output with the wrong shape.
	out := rawFromSlice(t, []float32{9, 9, 9, 9, 9}, tensor.Shape{5})

	// Capture stderr through a pipe: in stderr mode klog emits each record
	// exactly once, so the line count below is reliable.
	r, w, pipeErr := os.Pipe()
	require.NoError(t, pipeErr)
	old := os.Stderr
	os.Stderr = w
	klog.LogToStderr(true)

	err := linalg.CrossInto(out, a, b, nil)
	klog.Flush()
	require.NoError(t, w.Close())
	os.Stderr = old

	var buf bytes.Buffer
	_, copyErr := io.Copy(&buf, r)
	require.NoError(t, copyErr)

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "contents are discarded"))
	assert.True(t, out.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, []float32{0, 0, 1, 1, 0, 0}, out.AsFloat32())
}
