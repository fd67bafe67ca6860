// Package cpu implements the host backend: pure Go kernels parallelized
// over independent output slices.
package cpu

import (
	"github.com/crux-ml/crux/internal/tensor"
)

// CPUBackend is the host compute backend.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}
