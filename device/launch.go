package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wkalt/sparsetree/snode"
	"github.com/wkalt/sparsetree/util/log"
	"golang.org/x/sync/errgroup"
)

/*
The device package runs kernels in the device regime: a kernel body is invoked
once for every index of a flat grid, by many goroutines at once. Kernels share
the trees they touch, so they must use the concurrent half of the node
protocol: explicit activation, pure lookups, and appends.

The grid is split into blocks of consecutive indices. Blocks are scheduled on
a bounded errgroup; the first failing kernel cancels the launch and later
blocks are not started.
*/

////////////////////////////////////////////////////////////////////////////////

// Kernel is the body of a launch, invoked once per grid index.
type Kernel func(ctx context.Context, i int) error

// Launch runs kernel for every index in [0, n) and waits for all invocations
// to finish. It returns the first kernel failure as a KernelError, or the
// context's error if the launch was cancelled.
func Launch(ctx context.Context, n int, kernel Kernel, opts ...Option) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidGrid, n)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	ctx = log.AddTags(ctx, "launch", uuid.NewString())
	log.Debugw(ctx, "launching kernel", "grid", n, "workers", o.workers, "blockSize", o.blockSize)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for start := 0; start < n; start += o.blockSize {
		if gctx.Err() != nil {
			break
		}
		end := min(start+o.blockSize, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := kernel(gctx, i); err != nil {
					return KernelError{Index: i, Err: err}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var kerr KernelError
		if errors.As(err, &kerr) {
			log.Warnw(ctx, "kernel failed", "index", kerr.Index, "error", kerr.Err)
			return kerr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return cancelled(ctx, ctxErr)
		}
		return err
	}
	if err := ctx.Err(); err != nil {
		return cancelled(ctx, err)
	}
	log.Debugw(ctx, "kernel finished", "grid", n)
	return nil
}

func cancelled(ctx context.Context, err error) error {
	log.Infow(ctx, "launch cancelled", "error", err)
	return fmt.Errorf("launch cancelled: %w", err)
}

// LaunchOver runs kernel for every index in [0, node.N()), with the extent
// read once before the launch. It is the usual way to process the active list
// held by a Dynamic or Indirect node.
func LaunchOver(ctx context.Context, node snode.Any, kernel Kernel, opts ...Option) error {
	return Launch(ctx, node.N(), kernel, opts...)
}
