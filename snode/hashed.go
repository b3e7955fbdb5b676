package snode

import (
	"encoding/binary"
	"slices"
	"sync"

	"github.com/spaolacci/murmur3"
	"github.com/wkalt/sparsetree/arena"
	"golang.org/x/exp/maps"
)

/*
Hashed is sparse, keyed storage for children that are materialized on demand.
Children are allocated from an arena and referenced by handle. Once present a
child is permanent: entries are never removed or reassigned.

Keys are spread over a power-of-two number of stripes, each a map guarded by
its own lock. A key always hashes to the same stripe, so the check for
absence, the allocation, the construction of the child and the insertion all
happen under one exclusive lock, and concurrent activations of the same key
allocate exactly once and agree on the child. Activations of keys in
different stripes proceed in parallel.
*/

////////////////////////////////////////////////////////////////////////////////

type stripe struct {
	mtx  sync.RWMutex
	data map[int]arena.Handle
}

// Hashed maps flattened indices to lazily allocated children.
type Hashed[C any] struct {
	cfg   *Config
	alloc arena.Allocator[C]
	init  func(*C)

	stripes []stripe
	mask    uint32
}

// NewHashed returns an empty hashed node whose children are drawn from alloc
// and initialized by init. It panics with a DomainError if alloc serves a
// different domain than cfg.
func NewHashed[C any](cfg *Config, alloc arena.Allocator[C], init func(*C)) *Hashed[C] {
	h := &Hashed[C]{}
	h.Init(cfg, alloc, init)
	return h
}

// Init initializes h in place.
func (h *Hashed[C]) Init(cfg *Config, alloc arena.Allocator[C], init func(*C)) {
	cfg.checkDomain(HashedKind, alloc.Domain())
	h.cfg = cfg
	h.alloc = alloc
	h.init = init
	h.stripes = make([]stripe, cfg.stripes)
	for i := range h.stripes {
		h.stripes[i].data = make(map[int]arena.Handle)
	}
	h.mask = uint32(cfg.stripes - 1)
	cfg.counters.nodes[HashedKind].Add(1)
}

func (h *Hashed[C]) stripe(i int) *stripe {
	if h.mask == 0 {
		return &h.stripes[0]
	}
	var key [8]byte
	binary.LittleEndian.PutUint64(key[:], uint64(i))
	return &h.stripes[murmur3.Sum32(key[:])&h.mask]
}

// Activate ensures a child exists for key i.
func (h *Hashed[C]) Activate(i int) {
	h.checkIndex(i)
	h.activate(i)
}

func (h *Hashed[C]) activate(i int) arena.Handle {
	s := h.stripe(i)
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if handle, ok := s.data[i]; ok {
		return handle
	}
	handle := h.alloc.Alloc()
	if h.init != nil {
		h.init(h.alloc.Get(handle))
	}
	s.data[i] = handle
	h.cfg.counters.allocations.Add(1)
	return handle
}

// LookUp returns the child for key i. In the host regime the child is
// activated first. In the device regime LookUp is a pure read and returns nil
// if the child is absent.
func (h *Hashed[C]) LookUp(i int) *C {
	h.checkIndex(i)
	if h.cfg.host() {
		return h.alloc.Get(h.activate(i))
	}
	return h.peekChild(i)
}

func (h *Hashed[C]) peekChild(i int) *C {
	s := h.stripe(i)
	s.mtx.RLock()
	handle, ok := s.data[i]
	s.mtx.RUnlock()
	if !ok {
		return nil
	}
	return h.alloc.Get(handle)
}

// N returns the number of children present. Stripes are counted one at a
// time, so under concurrent activation the result may lag.
func (h *Hashed[C]) N() int {
	n := 0
	for i := range h.stripes {
		s := &h.stripes[i]
		s.mtx.RLock()
		n += len(s.data)
		s.mtx.RUnlock()
	}
	return n
}

// Keys returns the keys of the children present in ascending order.
func (h *Hashed[C]) Keys() []int {
	var keys []int
	for i := range h.stripes {
		s := &h.stripes[i]
		s.mtx.RLock()
		keys = append(keys, maps.Keys(s.data)...)
		s.mtx.RUnlock()
	}
	slices.Sort(keys)
	return keys
}

// HasNull returns true.
func (h *Hashed[C]) HasNull() bool {
	return true
}

// Kind returns HashedKind.
func (h *Hashed[C]) Kind() Kind {
	return HashedKind
}

// Child returns the child for key i, or nil if it is absent.
func (h *Hashed[C]) Child(i int) any {
	if child := h.LookUp(i); child != nil {
		return child
	}
	return nil
}

func (h *Hashed[C]) checkIndex(i int) {
	if h.cfg.checked && i < 0 {
		panic(IndexError{Kind: HashedKind, Index: i})
	}
}

func (h *Hashed[C]) slots() []int {
	return h.Keys()
}

func (h *Hashed[C]) peek(i int) any {
	if child := h.peekChild(i); child != nil {
		return child
	}
	return nil
}
