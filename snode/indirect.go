package snode

import "sync/atomic"

// Indirect is a fixed-capacity table of raw integers with a growing extent,
// used to remap or compact indices. It follows Dynamic's growth discipline
// but holds no child nodes and never touches an arena. In the host regime
// LookUp raises the extent with a compare-and-swap loop.
type Indirect struct {
	host    bool
	checked bool
	clears  *atomic.Int64
	data    []int32
	n       atomic.Int32
}

// NewIndirect returns an empty indirect node with room for maxN entries. It
// panics with ErrCapacityRange unless maxN is in [0, MaxCapacity].
func NewIndirect(cfg *Config, maxN int) *Indirect {
	d := &Indirect{}
	d.Init(cfg, maxN)
	return d
}

// Init initializes d in place.
func (d *Indirect) Init(cfg *Config, maxN int) {
	checkCapacity(IndirectKind, maxN)
	d.host = cfg.host()
	d.checked = cfg.checked
	d.clears = &cfg.counters.clears
	d.data = make([]int32, maxN)
	d.n.Store(0)
	cfg.counters.nodes[IndirectKind].Add(1)
}

// Append writes v to the next free slot and returns that slot. It is safe for
// concurrent use.
func (d *Indirect) Append(v int32) int {
	slot := int(d.n.Add(1) - 1)
	if d.checked && slot >= len(d.data) {
		d.n.Add(-1)
		panic(CapacityError{Kind: IndirectKind, MaxN: len(d.data)})
	}
	d.data[slot] = v
	return slot
}

// LookUp returns the address of entry i. In the host regime the extent is
// raised to cover i.
func (d *Indirect) LookUp(i int) *int32 {
	if d.checked && (i < 0 || i >= len(d.data)) {
		panic(IndexError{Kind: IndirectKind, Index: i, N: len(d.data)})
	}
	if d.host {
		want := int32(i + 1)
		for {
			n := d.n.Load()
			if want <= n || d.n.CompareAndSwap(n, want) {
				break
			}
		}
	}
	return &d.data[i]
}

// Clear resets the extent to zero.
func (d *Indirect) Clear() {
	d.n.Store(0)
	d.clears.Add(1)
}

// Activate is a no-op.
func (d *Indirect) Activate(int) {}

// N returns the current extent.
func (d *Indirect) N() int {
	return int(d.n.Load())
}

// MaxN returns the capacity.
func (d *Indirect) MaxN() int {
	return len(d.data)
}

// HasNull returns false.
func (d *Indirect) HasNull() bool {
	return false
}

// Kind returns IndirectKind.
func (d *Indirect) Kind() Kind {
	return IndirectKind
}

// Child returns the address of entry i as an untyped pointer.
func (d *Indirect) Child(i int) any {
	return d.LookUp(i)
}

func (d *Indirect) slots() []int {
	return sequence(d.N())
}

func (d *Indirect) peek(i int) any {
	return &d.data[i]
}
