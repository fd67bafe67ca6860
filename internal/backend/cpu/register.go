package cpu

import (
	"github.com/crux-ml/crux/internal/linalg"
	"github.com/crux-ml/crux/internal/tensor"
)

// Kernels register at package load, before any operation can run. The
// dispatch tables are read-only afterwards.
func init() {
	linalg.RegisterCrossKernel(tensor.CPU, Cross)
}
