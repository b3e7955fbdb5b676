package arena

// Domain identifies the execution domain an arena serves. Host and device
// arenas are distinct pools and must never be mixed within one tree.
type Domain int

const (
	// Host is the serial construction domain.
	Host Domain = iota + 1
	// Device is the concurrent kernel execution domain.
	Device
)

// String returns a string representation of the domain.
func (d Domain) String() string {
	switch d {
	case Host:
		return "host"
	case Device:
		return "device"
	default:
		return "unknown"
	}
}

// Handle is a stable reference to one arena allocation. The zero Handle is
// the nil handle and is never returned by Alloc.
type Handle uint32

// Nil is the nil handle.
const Nil Handle = 0

// IsNil reports whether h is the nil handle.
func (h Handle) IsNil() bool {
	return h == Nil
}

// Allocator hands out zero-initialized storage for exactly one T per call.
// Allocations are never individually released.
type Allocator[T any] interface {
	// Alloc returns a handle to a fresh zero value of T. It never returns the
	// nil handle and is safe for concurrent use.
	Alloc() Handle

	// Get resolves a handle previously returned by Alloc. The returned
	// pointer remains valid until the arena is reset.
	Get(h Handle) *T

	// Domain returns the execution domain of the allocator.
	Domain() Domain
}
