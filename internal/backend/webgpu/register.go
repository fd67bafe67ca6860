//go:build windows

package webgpu

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/crux-ml/crux/internal/linalg"
	"github.com/crux-ml/crux/internal/tensor"
)

var (
	sharedOnce sync.Once
	shared     *Backend
	sharedErr  error
)

// sharedBackend lazily brings up the GPU context. Registration happens at
// package load, but touching the adapter is deferred to the first kernel
// call so importing this package on a machine without a GPU stays cheap.
func sharedBackend() (*Backend, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = New()
	})
	return shared, sharedErr
}

// Cross is the WebGPU cross-product kernel entry point.
func Cross(out, a, b *tensor.RawTensor, dim int) error {
	backend, err := sharedBackend()
	if err != nil {
		return errors.Wrap(err, "webgpu: device unavailable")
	}
	return backend.runCross(out, a, b, dim)
}

func init() {
	linalg.RegisterCrossKernel(tensor.WebGPU, Cross)
}
