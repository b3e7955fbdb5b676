package arena

import "math/bits"

const (
	defaultChunkSize = 256
	defaultMaxChunks = 4096
)

// Option is a functional option for an Arena.
type Option func(*options)

type options struct {
	chunkSize int
	maxChunks int
	checked   bool
}

// WithChunkSize sets the number of values per chunk. The size is rounded up to
// a power of two. Non-positive values are ignored.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = 1 << bits.Len(uint(n-1))
		}
	}
}

// WithMaxChunks sets the maximum number of chunks the arena may grow to.
// Non-positive values are ignored.
func WithMaxChunks(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxChunks = n
		}
	}
}

// WithChecked enables handle validation in Get.
func WithChecked(checked bool) Option {
	return func(o *options) {
		o.checked = checked
	}
}
