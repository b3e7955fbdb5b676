package snode

import (
	"fmt"
	"reflect"
	"slices"
)

// MaxNumIndices is the deepest path a leaf context can record.
const MaxNumIndices = 8

// LeafContext pairs the flattened index used at every level of a root-to-leaf
// traversal with the address of the leaf it reached. It is a value; once
// returned it is never modified.
type LeafContext[T any] struct {
	Indices [MaxNumIndices]int
	Depth   int
	Ptr     *T
}

// Path returns the recorded indices, one per level, root first.
func (l LeafContext[T]) Path() []int {
	return slices.Clone(l.Indices[:l.Depth])
}

// Traverse descends from root using one index per level and returns the leaf
// context of the leaf reached. Each level is resolved with a lookup, so in the
// host regime missing children are activated on the way and in the device
// regime an absent child ends the traversal with ErrAbsentChild.
func Traverse[T any](root Any, indices ...int) (LeafContext[T], error) {
	return traverse[T](root, false, indices)
}

// TraverseActivate is Traverse with an explicit activation before every
// lookup. It is the form device-regime callers use to materialize a path; it
// is safe to call concurrently on a shared tree.
func TraverseActivate[T any](root Any, indices ...int) (LeafContext[T], error) {
	return traverse[T](root, true, indices)
}

func traverse[T any](root Any, activate bool, indices []int) (LeafContext[T], error) {
	var lc LeafContext[T]
	var current any = root
	for _, i := range indices {
		node, ok := current.(Any)
		if !ok {
			return LeafContext[T]{}, fmt.Errorf(
				"%w: leaf reached after %d of %d indices", ErrPathLength, lc.Depth, len(indices),
			)
		}
		if lc.Depth == MaxNumIndices {
			return LeafContext[T]{}, fmt.Errorf("%w: more than %d levels", ErrPathTooDeep, MaxNumIndices)
		}
		if activate {
			node.Activate(i)
		}
		child := node.Child(i)
		if child == nil {
			return LeafContext[T]{}, fmt.Errorf(
				"%w: %s node at depth %d, index %d", ErrAbsentChild, node.Kind(), lc.Depth, i,
			)
		}
		lc.Indices[lc.Depth] = i
		lc.Depth++
		current = child
	}
	if node, ok := current.(Any); ok {
		return LeafContext[T]{}, fmt.Errorf(
			"%w: stopped at %s node after %d indices", ErrPathLength, node.Kind(), lc.Depth,
		)
	}
	ptr, ok := current.(*T)
	if !ok {
		return LeafContext[T]{}, LeafTypeError{
			Expected: reflect.TypeFor[*T]().String(),
			Found:    current,
		}
	}
	lc.Ptr = ptr
	return lc, nil
}
