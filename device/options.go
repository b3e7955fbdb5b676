package device

import "runtime"

// Option is a functional option for a launch.
type Option func(*options)

type options struct {
	workers   int
	blockSize int
}

func defaultOptions() options {
	return options{
		workers:   runtime.GOMAXPROCS(0),
		blockSize: 64,
	}
}

// WithWorkers sets the number of goroutines running kernel blocks at once.
// Non-positive values are ignored.
func WithWorkers(workers int) Option {
	return func(o *options) {
		if workers > 0 {
			o.workers = workers
		}
	}
}

// WithBlockSize sets the number of consecutive indices each task runs.
// Non-positive values are ignored.
func WithBlockSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.blockSize = size
		}
	}
}
