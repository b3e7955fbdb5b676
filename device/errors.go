package device

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is returned when a launch is requested over a negative
// number of indices.
var ErrInvalidGrid = errors.New("invalid grid size")

// KernelError is returned when a kernel invocation fails. It wraps the
// kernel's error.
type KernelError struct {
	Index int
	Err   error
}

// Error returns a string representation of the error.
func (e KernelError) Error() string {
	return fmt.Sprintf("kernel failed at index %d: %v", e.Index, e.Err)
}

// Unwrap returns the kernel's error.
func (e KernelError) Unwrap() error {
	return e.Err
}
