package arena

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/wkalt/sparsetree/util/log"
)

/*
Arena is a chunked bump allocator for values of a single type. Storage is
handed out in fixed-size chunks that never move once created, so a pointer
obtained from Get stays valid for as long as the arena is not reset.

Allocation takes a mutex. Resolution is lock-free: the chunk table has a fixed
length decided at construction and each slot is an atomic pointer, so a
reader holding a published handle never races with a concurrent Alloc that
grows the arena.

Handles are slot numbers offset by one, leaving zero free to mean "nil".
*/

////////////////////////////////////////////////////////////////////////////////

// Arena is an Allocator backed by fixed-size chunks.
type Arena[T any] struct {
	id        uuid.UUID
	domain    Domain
	chunkBits uint
	chunkMask uint32
	checked   bool

	chunks []atomic.Pointer[[]T]

	mtx  sync.Mutex
	next atomic.Uint32

	chunksInUse atomic.Int64
	resets      atomic.Int64
}

// Stats is a point-in-time summary of an arena.
type Stats struct {
	ID        string `json:"id"`
	Domain    string `json:"domain"`
	Allocated int64  `json:"allocated"`
	Chunks    int64  `json:"chunks"`
	ChunkSize int    `json:"chunkSize"`
	Capacity  int64  `json:"capacity"`
	Resets    int64  `json:"resets"`
}

// New returns a new, empty arena for the given domain.
func New[T any](ctx context.Context, domain Domain, opts ...Option) *Arena[T] {
	o := options{
		chunkSize: defaultChunkSize,
		maxChunks: defaultMaxChunks,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if limit := int(math.MaxUint32 / uint64(o.chunkSize)); o.maxChunks > limit {
		o.maxChunks = limit
	}
	a := &Arena[T]{
		id:        uuid.New(),
		domain:    domain,
		chunkBits: uint(bits.TrailingZeros(uint(o.chunkSize))),
		chunkMask: uint32(o.chunkSize - 1),
		checked:   o.checked,
		chunks:    make([]atomic.Pointer[[]T], o.maxChunks),
	}
	log.Debugw(ctx, "created arena",
		"arena", a.id,
		"domain", domain,
		"chunkSize", o.chunkSize,
		"maxChunks", o.maxChunks,
	)
	return a
}

// ID returns the unique identifier of the arena.
func (a *Arena[T]) ID() uuid.UUID {
	return a.id
}

// Domain returns the execution domain of the arena.
func (a *Arena[T]) Domain() Domain {
	return a.domain
}

// Alloc returns a handle to a zero value of T.
func (a *Arena[T]) Alloc() Handle {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	slot := a.next.Load()
	chunk := slot >> a.chunkBits
	if int(chunk) >= len(a.chunks) {
		err := fmt.Errorf("%w: %d values of %d", ErrExhausted, slot, a.capacity())
		log.Errorw(context.Background(), "arena exhausted", "arena", a.id, "domain", a.domain, "error", err)
		panic(err)
	}
	if a.chunks[chunk].Load() == nil {
		values := make([]T, a.chunkMask+1)
		a.chunks[chunk].Store(&values)
		a.chunksInUse.Add(1)
	}
	a.next.Store(slot + 1)
	return Handle(slot + 1)
}

// Get resolves a handle to its value.
func (a *Arena[T]) Get(h Handle) *T {
	if a.checked {
		if h.IsNil() {
			panic(ErrNilHandle)
		}
		if issued := a.next.Load(); uint32(h) > issued {
			panic(InvalidHandleError{Handle: h, Issued: issued})
		}
	}
	slot := uint32(h) - 1
	values := a.chunks[slot>>a.chunkBits].Load()
	return &(*values)[slot&a.chunkMask]
}

// Len returns the number of allocations made since creation or the last
// reset.
func (a *Arena[T]) Len() int {
	return int(a.next.Load())
}

// Reset reclaims every allocation at once. Chunks are zeroed and kept for
// reuse. Reset must not run concurrently with any other use of the arena, and
// every handle issued before it becomes invalid.
func (a *Arena[T]) Reset(ctx context.Context) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	released := a.next.Load()
	for i := range a.chunks {
		values := a.chunks[i].Load()
		if values == nil {
			break
		}
		clear(*values)
	}
	a.next.Store(0)
	a.resets.Add(1)
	if log.Enabled(ctx, slog.LevelDebug) {
		stats := a.Stats()
		log.Debugw(ctx, "reset arena",
			"arena", stats.ID,
			"domain", stats.Domain,
			"released", released,
			"chunks", stats.Chunks,
			"resets", stats.Resets,
		)
	}
}

// Stats returns a summary of the arena.
func (a *Arena[T]) Stats() Stats {
	return Stats{
		ID:        a.id.String(),
		Domain:    a.domain.String(),
		Allocated: int64(a.next.Load()),
		Chunks:    a.chunksInUse.Load(),
		ChunkSize: int(a.chunkMask + 1),
		Capacity:  a.capacity(),
		Resets:    a.resets.Load(),
	}
}

func (a *Arena[T]) capacity() int64 {
	return int64(len(a.chunks)) * int64(a.chunkMask+1)
}
