package snode

// Root is the single-child entry point of a tree. It exists so that the top
// of a tree answers the same protocol as inner nodes.
type Root[C any] struct {
	child C
}

// NewRoot returns a root whose child is initialized by init. A nil init
// leaves the child at its zero value.
func NewRoot[C any](cfg *Config, init func(*C)) *Root[C] {
	r := &Root[C]{}
	r.Init(cfg, init)
	return r
}

// Init initializes r in place.
func (r *Root[C]) Init(cfg *Config, init func(*C)) {
	if init != nil {
		init(&r.child)
	}
	cfg.counters.nodes[RootKind].Add(1)
}

// LookUp returns the child. The index is ignored.
func (r *Root[C]) LookUp(int) *C {
	return &r.child
}

// Activate is a no-op; the child always exists.
func (r *Root[C]) Activate(int) {}

// N returns 1.
func (r *Root[C]) N() int {
	return 1
}

// HasNull returns false.
func (r *Root[C]) HasNull() bool {
	return false
}

// Kind returns RootKind.
func (r *Root[C]) Kind() Kind {
	return RootKind
}

// Child returns the child as an untyped pointer.
func (r *Root[C]) Child(i int) any {
	return r.LookUp(i)
}

func (r *Root[C]) slots() []int {
	return []int{0}
}

func (r *Root[C]) peek(int) any {
	return &r.child
}
