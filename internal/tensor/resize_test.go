package tensor

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

// captureWarnings runs fn with stderr redirected through a pipe and returns
// everything klog wrote. In stderr mode klog emits each record exactly once,
// so line counts over the result are reliable; installing a writer with
// klog.SetOutput instead would see WARNING records again on the INFO stream.
func captureWarnings(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	old := os.Stderr
	os.Stderr = w
	klog.LogToStderr(true)
	defer func() { os.Stderr = old }()

	fn()
	klog.Flush()
	require.NoError(t, w.Close())

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestResizeOutputNoOp(t *testing.T) {
	out, err := NewRaw(Shape{2, 3}, Float32, CPU)
	require.NoError(t, err)
	out.AsFloat32()[0] = 42

	logged := captureWarnings(t, func() {
		require.NoError(t, ResizeOutput(out, Shape{2, 3}))
	})

	assert.Empty(t, logged)
	assert.Equal(t, float32(42), out.AsFloat32()[0], "no-op resize must not touch data")
}

func TestResizeOutputFromEmpty(t *testing.T) {
	out, err := NewRaw(Shape{0}, Float32, CPU)
	require.NoError(t, err)

	logged := captureWarnings(t, func() {
		require.NoError(t, ResizeOutput(out, Shape{4, 3}))
	})

	// Growing an empty buffer is the normal fresh-output path, no warning.
	assert.Empty(t, logged)
	assert.True(t, out.Shape().Equal(Shape{4, 3}))
	assert.Equal(t, 12, len(out.AsFloat32()))
}

func TestResizeOutputDiscardWarnsOnce(t *testing.T) {
	out, err := NewRaw(Shape{5}, Float32, CPU)
	require.NoError(t, err)

	logged := captureWarnings(t, func() {
		require.NoError(t, ResizeOutput(out, Shape{2, 3}))
	})

	assert.Equal(t, 1, strings.Count(logged, "contents are discarded"))
	assert.True(t, out.Shape().Equal(Shape{2, 3}))
}
