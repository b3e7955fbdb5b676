package snode

import (
	"sync"
	"sync/atomic"

	"github.com/wkalt/sparsetree/arena"
)

// Pointer holds at most one child, allocated from an arena the first time it
// is activated. The handle is published atomically after the child has been
// constructed; allocation itself is serialized by a mutex so that racing
// activations allocate once.
type Pointer[C any] struct {
	cfg   *Config
	alloc arena.Allocator[C]
	init  func(*C)

	mtx    sync.Mutex
	handle atomic.Uint32
}

// NewPointer returns an empty pointer node whose child is drawn from alloc
// and initialized by init. It panics with a DomainError if alloc serves a
// different domain than cfg.
func NewPointer[C any](cfg *Config, alloc arena.Allocator[C], init func(*C)) *Pointer[C] {
	p := &Pointer[C]{}
	p.Init(cfg, alloc, init)
	return p
}

// Init initializes p in place.
func (p *Pointer[C]) Init(cfg *Config, alloc arena.Allocator[C], init func(*C)) {
	cfg.checkDomain(PointerKind, alloc.Domain())
	p.cfg = cfg
	p.alloc = alloc
	p.init = init
	cfg.counters.nodes[PointerKind].Add(1)
}

// Activate ensures the child exists. The index is ignored.
func (p *Pointer[C]) Activate(int) {
	p.activate()
}

func (p *Pointer[C]) activate() arena.Handle {
	if handle := p.load(); !handle.IsNil() {
		return handle
	}
	p.mtx.Lock()
	defer p.mtx.Unlock()
	if handle := p.load(); !handle.IsNil() {
		return handle
	}
	handle := p.alloc.Alloc()
	if p.init != nil {
		p.init(p.alloc.Get(handle))
	}
	p.handle.Store(uint32(handle))
	p.cfg.counters.allocations.Add(1)
	return handle
}

func (p *Pointer[C]) load() arena.Handle {
	return arena.Handle(p.handle.Load())
}

// LookUp returns the child. In the host regime the child is activated first.
// In the device regime LookUp returns nil if the child is absent.
func (p *Pointer[C]) LookUp(int) *C {
	var handle arena.Handle
	if p.cfg.host() {
		handle = p.activate()
	} else {
		handle = p.load()
	}
	if handle.IsNil() {
		return nil
	}
	return p.alloc.Get(handle)
}

// N returns 1: there is one logical slot, populated or not.
func (p *Pointer[C]) N() int {
	return 1
}

// HasNull returns true.
func (p *Pointer[C]) HasNull() bool {
	return true
}

// Kind returns PointerKind.
func (p *Pointer[C]) Kind() Kind {
	return PointerKind
}

// Child returns the child, or nil if it is absent.
func (p *Pointer[C]) Child(i int) any {
	if child := p.LookUp(i); child != nil {
		return child
	}
	return nil
}

func (p *Pointer[C]) slots() []int {
	if p.load().IsNil() {
		return nil
	}
	return []int{0}
}

func (p *Pointer[C]) peek(int) any {
	handle := p.load()
	if handle.IsNil() {
		return nil
	}
	return p.alloc.Get(handle)
}
