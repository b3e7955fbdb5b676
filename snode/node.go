package snode

/*
Package snode defines the node archetypes of a sparse, hierarchical field.

A tree is built by nesting node kinds: the child type of an outer node is the
inner node type, down to a leaf payload. Every kind answers the same protocol
over an already flattened integer index:

	LookUp(i)   -> child pointer, nil only for kinds where HasNull is true
	Activate(i) -> ensure the child at i exists
	N()         -> current logical extent
	HasNull()   -> whether LookUp may yield nil

Nodes never interpret indices beyond "slot i". The mapping from coordinates to
flattened indices lives with whoever generates the lookups.

The execution regime is carried by a Config shared by every node of a tree. In
the host regime a single caller builds the tree and lookups activate missing
children on the way. In the device regime many goroutines use the tree at
once, lookups are pure reads, and callers activate explicitly before relying on
presence. Mixing regimes on one live tree is not supported.
*/

////////////////////////////////////////////////////////////////////////////////

// Kind identifies a node archetype.
type Kind int

const (
	RootKind Kind = iota + 1
	DenseKind
	HashedKind
	PointerKind
	DynamicKind
	IndirectKind
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case RootKind:
		return "root"
	case DenseKind:
		return "dense"
	case HashedKind:
		return "hashed"
	case PointerKind:
		return "pointer"
	case DynamicKind:
		return "dynamic"
	case IndirectKind:
		return "indirect"
	default:
		return "unknown"
	}
}

// Any is the untyped view of a node. Traversal code that walks trees of mixed
// child types works against Any.
type Any interface {
	// Kind returns the archetype of the node.
	Kind() Kind

	// HasNull reports whether lookups on this kind may find no child.
	HasNull() bool

	// N returns the current logical extent of the node.
	N() int

	// Activate ensures a child exists at index i.
	Activate(i int)

	// Child performs a lookup and returns the child pointer, or an untyped
	// nil when the child is absent.
	Child(i int) any
}

// Node is the typed capability contract implemented by every node kind.
type Node[C any] interface {
	Any

	// LookUp returns a pointer to the child at index i. It returns nil only
	// when HasNull is true and the child is absent.
	LookUp(i int) *C
}

// inspector exposes a node's populated slots without activating anything.
type inspector interface {
	slots() []int
	peek(i int) any
}

// compile time check
var (
	_ Node[int]   = (*Root[int])(nil)
	_ Node[int]   = (*Dense[int])(nil)
	_ Node[int]   = (*Hashed[int])(nil)
	_ Node[int]   = (*Pointer[int])(nil)
	_ Node[int]   = (*Dynamic[int])(nil)
	_ Node[int32] = (*Indirect)(nil)
	_ inspector   = (*Root[int])(nil)
	_ inspector   = (*Dense[int])(nil)
	_ inspector   = (*Hashed[int])(nil)
	_ inspector   = (*Pointer[int])(nil)
	_ inspector   = (*Dynamic[int])(nil)
	_ inspector   = (*Indirect)(nil)
)

func sequence(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}
