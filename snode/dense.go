package snode

// Dense is a fixed-capacity array of children, all constructed with the node.
type Dense[C any] struct {
	checked  bool
	children []C
}

// NewDense returns a dense node of n children, each initialized by init. A
// nil init leaves children at their zero value.
func NewDense[C any](cfg *Config, n int, init func(*C)) *Dense[C] {
	d := &Dense[C]{}
	d.Init(cfg, n, init)
	return d
}

// Init initializes d in place.
func (d *Dense[C]) Init(cfg *Config, n int, init func(*C)) {
	d.checked = cfg.checked
	d.children = make([]C, n)
	if init != nil {
		for i := range d.children {
			init(&d.children[i])
		}
	}
	cfg.counters.nodes[DenseKind].Add(1)
}

// LookUp returns the child at index i. The index must be in [0, N()).
func (d *Dense[C]) LookUp(i int) *C {
	if d.checked && (i < 0 || i >= len(d.children)) {
		panic(IndexError{Kind: DenseKind, Index: i, N: len(d.children)})
	}
	return &d.children[i]
}

// Activate is a no-op; every child exists from construction.
func (d *Dense[C]) Activate(int) {}

// N returns the fixed capacity.
func (d *Dense[C]) N() int {
	return len(d.children)
}

// HasNull returns false.
func (d *Dense[C]) HasNull() bool {
	return false
}

// Kind returns DenseKind.
func (d *Dense[C]) Kind() Kind {
	return DenseKind
}

// Child returns the child at index i as an untyped pointer.
func (d *Dense[C]) Child(i int) any {
	return d.LookUp(i)
}

func (d *Dense[C]) slots() []int {
	return sequence(len(d.children))
}

func (d *Dense[C]) peek(i int) any {
	return &d.children[i]
}
