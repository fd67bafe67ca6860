// Package dispatch implements the process-wide kernel registries that make
// operations device-polymorphic. Each operation owns one Stub mapping a
// device tag to its kernel entry point; backend packages register their
// kernels at load time, and the shape/axis pipeline above this layer never
// names a concrete backend.
package dispatch

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/crux-ml/crux/internal/tensor"
)

var (
	// ErrUnsupportedDevice is returned when no kernel is registered for the
	// requested device tag.
	ErrUnsupportedDevice = errors.New("no kernel registered for device")

	// ErrDuplicateRegistration is returned when a backend attempts to
	// register a device tag twice. Registration is once per tag, at startup.
	ErrDuplicateRegistration = errors.New("kernel already registered for device")
)

// Stub is the dispatch table for a single operation. K is the operation's
// kernel signature, so lookups are fully typed.
//
// Entries are written only during package initialization and never mutated
// or removed afterwards, so concurrent Lookup calls are safe without
// locking.
type Stub[K any] struct {
	name    string
	kernels map[tensor.Device]K
}

// NewStub creates an empty dispatch table for the named operation.
func NewStub[K any](name string) *Stub[K] {
	return &Stub[K]{
		name:    name,
		kernels: make(map[tensor.Device]K),
	}
}

// Name returns the operation name this stub dispatches.
func (s *Stub[K]) Name() string {
	return s.name
}

// Register adds a kernel for the given device tag. At most one kernel per
// tag: a second registration returns ErrDuplicateRegistration.
func (s *Stub[K]) Register(device tensor.Device, kernel K) error {
	if _, ok := s.kernels[device]; ok {
		return errors.Wrapf(ErrDuplicateRegistration, "%s kernel on %s", s.name, device)
	}
	s.kernels[device] = kernel
	klog.V(2).Infof("registered %s kernel for %s", s.name, device)
	return nil
}

// MustRegister is Register for init() callers, where a duplicate tag is a
// programming error.
func (s *Stub[K]) MustRegister(device tensor.Device, kernel K) {
	if err := s.Register(device, kernel); err != nil {
		panic(err)
	}
}

// Lookup returns the kernel registered for the device tag, or
// ErrUnsupportedDevice when the backend never registered one.
func (s *Stub[K]) Lookup(device tensor.Device) (K, error) {
	kernel, ok := s.kernels[device]
	if !ok {
		var zero K
		return zero, errors.Wrapf(ErrUnsupportedDevice, "%s kernel on %s", s.name, device)
	}
	return kernel, nil
}
