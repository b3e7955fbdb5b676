package snode

import (
	"fmt"
	"math"
	"sync/atomic"
)

/*
Dynamic is a growable list of children with a fixed capacity. The backing
array is allocated with the node; only the logical extent n grows.

Two growth paths exist and must not be mixed on a live node:

  - Append reserves a slot with an atomic fetch-and-add. Any number of
    goroutines may append concurrently.
  - LookUp in the host regime raises n to max(n, i+1) with a plain
    read-modify-write. It assumes a single caller and no concurrent Append.
*/

////////////////////////////////////////////////////////////////////////////////

// MaxCapacity is the largest capacity of a Dynamic or Indirect node. The
// extent is a 32-bit counter.
const MaxCapacity = math.MaxInt32

// Dynamic is a fixed-capacity list of children with a growing extent.
type Dynamic[C any] struct {
	host    bool
	checked bool
	clears  *atomic.Int64
	data    []C
	n       atomic.Int32
}

// NewDynamic returns an empty dynamic node with room for maxN children, each
// initialized by init. It panics with ErrCapacityRange unless maxN is in
// [0, MaxCapacity].
func NewDynamic[C any](cfg *Config, maxN int, init func(*C)) *Dynamic[C] {
	d := &Dynamic[C]{}
	d.Init(cfg, maxN, init)
	return d
}

// Init initializes d in place.
func (d *Dynamic[C]) Init(cfg *Config, maxN int, init func(*C)) {
	checkCapacity(DynamicKind, maxN)
	d.host = cfg.host()
	d.checked = cfg.checked
	d.clears = &cfg.counters.clears
	d.data = make([]C, maxN)
	if init != nil {
		for i := range d.data {
			init(&d.data[i])
		}
	}
	d.n.Store(0)
	cfg.counters.nodes[DynamicKind].Add(1)
}

// Append writes v to the next free slot and returns that slot. It is safe for
// concurrent use. Appending past capacity is a contract violation.
func (d *Dynamic[C]) Append(v C) int {
	slot := int(d.n.Add(1) - 1)
	if d.checked && slot >= len(d.data) {
		d.n.Add(-1)
		panic(CapacityError{Kind: DynamicKind, MaxN: len(d.data)})
	}
	d.data[slot] = v
	return slot
}

// LookUp returns the child at index i. In the host regime the extent is
// raised to cover i; callers must not use the node concurrently.
func (d *Dynamic[C]) LookUp(i int) *C {
	if d.checked && (i < 0 || i >= len(d.data)) {
		panic(IndexError{Kind: DynamicKind, Index: i, N: len(d.data)})
	}
	if d.host {
		if n := int32(i + 1); n > d.n.Load() {
			d.n.Store(n)
		}
	}
	return &d.data[i]
}

// Clear resets the extent to zero. Existing children are kept and get
// overwritten as the node grows again.
func (d *Dynamic[C]) Clear() {
	d.n.Store(0)
	d.clears.Add(1)
}

// Activate is a no-op.
func (d *Dynamic[C]) Activate(int) {}

// N returns the current extent.
func (d *Dynamic[C]) N() int {
	return int(d.n.Load())
}

// MaxN returns the capacity.
func (d *Dynamic[C]) MaxN() int {
	return len(d.data)
}

// HasNull returns false.
func (d *Dynamic[C]) HasNull() bool {
	return false
}

// Kind returns DynamicKind.
func (d *Dynamic[C]) Kind() Kind {
	return DynamicKind
}

// Child returns the child at index i as an untyped pointer.
func (d *Dynamic[C]) Child(i int) any {
	return d.LookUp(i)
}

func (d *Dynamic[C]) slots() []int {
	return sequence(d.N())
}

func (d *Dynamic[C]) peek(i int) any {
	return &d.data[i]
}

func checkCapacity(kind Kind, maxN int) {
	if maxN < 0 || maxN > MaxCapacity {
		panic(fmt.Errorf("%w: %s node capacity %d not in [0, %d]", ErrCapacityRange, kind, maxN, MaxCapacity))
	}
}
