package tensor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/x448/float16"
)

// Device identifies the compute backend a tensor's data belongs to.
// It is the key of the kernel dispatch tables: adding a new backend means
// registering its kernels under a new tag, nothing else changes.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Vulkan:
		return "Vulkan"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// tensorBuffer is a reference-counted shared buffer. Broadcast views and
// clones share it; it is deallocated when the last reference is released.
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newTensorBuffer creates a new reference-counted buffer with refCount = 1.
func newTensorBuffer(size int) *tensorBuffer {
	buf := &tensorBuffer{
		data: make([]byte, size),
	}
	buf.refCount.Store(1)
	return buf
}

// addRef increments the reference count (for Clone and view operations).
func (tb *tensorBuffer) addRef() {
	tb.refCount.Add(1)
}

// release decrements the reference count and deallocates if it reaches 0.
func (tb *tensorBuffer) release() {
	if tb.refCount.Add(-1) == 0 {
		tb.mu.Lock()
		defer tb.mu.Unlock()
		tb.data = nil
	}
}

// isUnique returns true if this buffer has only one reference.
func (tb *tensorBuffer) isUnique() bool {
	return tb.refCount.Load() == 1
}

// RawTensor is the low-level tensor representation: a reference-counted byte
// buffer plus shape, element strides, element type and device tag.
//
// Strides are in elements, not bytes. A stride of 0 marks a broadcast
// dimension: all indices along it map to the same memory. Such views are
// produced by ExpandTo and never own their buffer exclusively.
type RawTensor struct {
	buffer *tensorBuffer // Shared reference-counted buffer
	shape  Shape         // Tensor dimensions
	stride []int         // Element strides (row-major when contiguous)
	dtype  DataType      // Runtime type information
	device Device        // Compute device
	offset int           // Element offset into the buffer
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is allocated zero-initialized.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	numElements := shape.NumElements()
	byteSize := numElements * dtype.Size()

	return &RawTensor{
		buffer: newTensorBuffer(byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
		offset: 0,
	}, nil
}

// EmptyLike returns an uninitialized tensor with the given shape, taking
// element type and device from ref. The conventional fresh output buffer is
// EmptyLike(Shape{0}, ref), resized by the operation that fills it.
func EmptyLike(shape Shape, ref *RawTensor) (*RawTensor, error) {
	return NewRaw(shape, ref.dtype, ref.device)
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's element strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of logical elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the logical memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data returns the raw byte slice starting at the tensor's offset.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.buffer.data[r.offset*r.dtype.Size():]
}

// bufferElements is the number of addressable elements behind this tensor.
// For broadcast views this is smaller than NumElements().
func (r *RawTensor) bufferElements() int {
	return (len(r.buffer.data) - r.offset*r.dtype.Size()) / r.dtype.Size()
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	n := r.bufferElements()
	if n == 0 {
		return nil
	}
	data := r.Data()
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds come from the buffer itself
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), n)
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	n := r.bufferElements()
	if n == 0 {
		return nil
	}
	data := r.Data()
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds come from the buffer itself
	return unsafe.Slice((*float64)(unsafe.Pointer(&data[0])), n)
}

// AsFloat16 interprets the data as []float16.Float16 (IEEE 754 half
// precision, stored as uint16 bit patterns).
// Panics if the tensor's dtype is not Float16.
func (r *RawTensor) AsFloat16() []float16.Float16 {
	if r.dtype != Float16 {
		panic(fmt.Sprintf("tensor dtype is %s, not float16", r.dtype))
	}
	n := r.bufferElements()
	if n == 0 {
		return nil
	}
	data := r.Data()
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds come from the buffer itself
	return unsafe.Slice((*float16.Float16)(unsafe.Pointer(&data[0])), n)
}

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	if r.dtype != Int32 {
		panic(fmt.Sprintf("tensor dtype is %s, not int32", r.dtype))
	}
	n := r.bufferElements()
	if n == 0 {
		return nil
	}
	data := r.Data()
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds come from the buffer itself
	return unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), n)
}

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 {
	if r.dtype != Int64 {
		panic(fmt.Sprintf("tensor dtype is %s, not int64", r.dtype))
	}
	n := r.bufferElements()
	if n == 0 {
		return nil
	}
	data := r.Data()
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds come from the buffer itself
	return unsafe.Slice((*int64)(unsafe.Pointer(&data[0])), n)
}

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 {
	if r.dtype != Uint8 {
		panic(fmt.Sprintf("tensor dtype is %s, not uint8", r.dtype))
	}
	return r.Data()
}

// AsBool interprets the data as []bool.
// Panics if the tensor's dtype is not Bool.
func (r *RawTensor) AsBool() []bool {
	if r.dtype != Bool {
		panic(fmt.Sprintf("tensor dtype is %s, not bool", r.dtype))
	}
	n := r.bufferElements()
	if n == 0 {
		return nil
	}
	data := r.Data()
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds come from the buffer itself
	return unsafe.Slice((*bool)(unsafe.Pointer(&data[0])), n)
}

// Clone creates a shallow copy of the RawTensor (shares the buffer with
// reference counting).
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
		offset: r.offset,
	}
}

// view creates a tensor sharing this buffer with a different shape/strides.
func (r *RawTensor) view(shape Shape, stride []int) *RawTensor {
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  shape.Clone(),
		stride: stride,
		dtype:  r.dtype,
		device: r.device,
		offset: r.offset,
	}
}

// Release decrements the reference count and deallocates if it reaches 0.
func (r *RawTensor) Release() {
	r.buffer.release()
}

// IsUnique returns true if this tensor is the only reference to the buffer.
func (r *RawTensor) IsUnique() bool {
	return r.buffer.isUnique()
}

// IsContiguous reports whether the tensor's memory layout is dense row-major.
// Broadcast views (stride 0 on stretched dimensions) are not contiguous.
func (r *RawTensor) IsContiguous() bool {
	expected := r.shape.ComputeStrides()
	for i := range expected {
		if r.shape[i] > 1 && r.stride[i] != expected[i] {
			return false
		}
	}
	return true
}

// Contiguous returns a dense row-major tensor with the same logical contents.
// Contiguous tensors are returned unchanged; views are materialized by copy.
func (r *RawTensor) Contiguous() *RawTensor {
	if r.IsContiguous() {
		return r
	}

	out, err := NewRaw(r.shape, r.dtype, r.device)
	if err != nil {
		panic(fmt.Sprintf("contiguous: %v", err)) // shape was already validated
	}

	elem := r.dtype.Size()
	src := r.Data()
	dst := out.Data()
	outStrides := r.shape.ComputeStrides()

	n := r.shape.NumElements()
	for i := 0; i < n; i++ {
		rem := i
		srcElem := 0
		for d := 0; d < len(r.shape); d++ {
			coord := rem / outStrides[d]
			rem %= outStrides[d]
			srcElem += coord * r.stride[d]
		}
		copy(dst[i*elem:(i+1)*elem], src[srcElem*elem:(srcElem+1)*elem])
	}

	return out
}

// String returns a short description of the tensor.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor[%s]%v on %s", r.dtype, r.shape, r.device)
}
