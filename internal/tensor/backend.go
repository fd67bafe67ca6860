package tensor

// Backend is the handle a typed Tensor carries to identify where its data
// lives. Unlike frameworks that put every operation behind a backend
// interface, Crux routes computation through per-operation dispatch tables
// keyed by Device (see internal/dispatch), so the interface stays minimal:
// a backend only needs to name itself and its device tag. Kernels are
// registered by each backend package at load time.
type Backend interface {
	// Name returns the backend name (e.g., "CPU", "WebGPU").
	Name() string

	// Device returns the device tag kernels are dispatched on.
	Device() Device
}
