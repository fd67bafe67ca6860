//go:build windows

// Package webgpu implements the GPU device kernels via WebGPU.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

import (
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/crux-ml/crux/internal/tensor"
)

// Backend holds the WebGPU device context shared by all GPU kernel calls.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	adapterInfo *wgpu.AdapterInfo

	// Memory tracking
	memoryStats struct {
		totalAllocatedBytes uint64
		peakBytes           uint64
		mu                  sync.Mutex
	}
}

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (backend *Backend, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	adapterInfo := adapter.GetInfo()

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Backend{
		instance:    instance,
		adapter:     adapter,
		device:      device,
		queue:       queue,
		shaders:     make(map[string]*wgpu.ShaderModule),
		pipelines:   make(map[string]*wgpu.ComputePipeline),
		adapterInfo: &adapterInfo,
	}, nil
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// trackAllocation records GPU buffer allocations for MemoryStats.
func (b *Backend) trackAllocation(bytes uint64) {
	b.memoryStats.mu.Lock()
	defer b.memoryStats.mu.Unlock()
	b.memoryStats.totalAllocatedBytes += bytes
	if b.memoryStats.totalAllocatedBytes > b.memoryStats.peakBytes {
		b.memoryStats.peakBytes = b.memoryStats.totalAllocatedBytes
	}
}

// MemoryStats returns a human-readable summary of GPU buffer allocations.
func (b *Backend) MemoryStats() string {
	b.memoryStats.mu.Lock()
	defer b.memoryStats.mu.Unlock()
	return fmt.Sprintf("webgpu: %s allocated (peak %s)",
		humanize.Bytes(b.memoryStats.totalAllocatedBytes),
		humanize.Bytes(b.memoryStats.peakBytes))
}

// Release releases all WebGPU resources.
// Must be called when the backend is no longer needed.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, pipeline := range b.pipelines {
		pipeline.Release()
	}
	b.pipelines = nil

	for _, shader := range b.shaders {
		shader.Release()
	}
	b.shaders = nil

	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
