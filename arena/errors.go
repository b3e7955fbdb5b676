package arena

import (
	"errors"
	"fmt"
)

/*
Errors raised by the arena package. Arena failures are fatal conditions for
the run that owns the arena, so they surface as panics carrying these values
rather than as returned errors.
*/

////////////////////////////////////////////////////////////////////////////////

// ErrExhausted is the panic value when an arena has no room for another
// allocation.
var ErrExhausted = errors.New("arena exhausted")

// ErrNilHandle is the panic value when a checked arena is asked to resolve the
// nil handle.
var ErrNilHandle = errors.New("nil handle")

// InvalidHandleError is the panic value when a checked arena is asked to
// resolve a handle it never issued.
type InvalidHandleError struct {
	Handle Handle
	Issued uint32
}

// Error returns a string representation of the error.
func (e InvalidHandleError) Error() string {
	return fmt.Sprintf("handle %d was never issued (issued: %d)", e.Handle, e.Issued)
}

// Is returns true if the target error is an InvalidHandleError.
func (e InvalidHandleError) Is(target error) bool {
	_, ok := target.(InvalidHandleError)
	return ok
}
