package snode

import (
	"errors"
	"fmt"

	"github.com/wkalt/sparsetree/arena"
)

/*
Errors of the snode package. Node operations do not return errors: the
structural errors below are panic values raised only in checked mode (and for
domain mismatches at construction). Traversal returns the sentinel errors and
LeafTypeError.
*/

////////////////////////////////////////////////////////////////////////////////

var (
	// ErrPathTooDeep is returned when a traversal has more levels than a leaf
	// context can record.
	ErrPathTooDeep = errors.New("path too deep")

	// ErrAbsentChild is returned when a traversal meets an absent child.
	ErrAbsentChild = errors.New("absent child")

	// ErrPathLength is returned when the number of indices does not match the
	// depth of the tree.
	ErrPathLength = errors.New("path length does not match tree depth")

	// ErrCapacityRange is the panic value when a growable node is built with
	// a capacity outside [0, MaxCapacity].
	ErrCapacityRange = errors.New("capacity out of range")
)

// IndexError is raised when an index falls outside a node's addressable range.
type IndexError struct {
	Kind  Kind
	Index int
	N     int
}

// Error returns a string representation of the error.
func (e IndexError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s node: negative index %d", e.Kind, e.Index)
	}
	return fmt.Sprintf("%s node: index %d out of range [0, %d)", e.Kind, e.Index, e.N)
}

// Is returns true if the target error is an IndexError.
func (e IndexError) Is(target error) bool {
	_, ok := target.(IndexError)
	return ok
}

// CapacityError is raised when a growable node is appended to past capacity.
type CapacityError struct {
	Kind Kind
	MaxN int
}

// Error returns a string representation of the error.
func (e CapacityError) Error() string {
	return fmt.Sprintf("%s node: capacity %d exceeded", e.Kind, e.MaxN)
}

// Is returns true if the target error is a CapacityError.
func (e CapacityError) Is(target error) bool {
	_, ok := target.(CapacityError)
	return ok
}

// DomainError is raised when a node is given an allocator from a different
// execution domain than its tree.
type DomainError struct {
	Kind      Kind
	Regime    arena.Domain
	Allocator arena.Domain
}

// Error returns a string representation of the error.
func (e DomainError) Error() string {
	return fmt.Sprintf("%s node: %s allocator used in %s regime", e.Kind, e.Allocator, e.Regime)
}

// Is returns true if the target error is a DomainError.
func (e DomainError) Is(target error) bool {
	_, ok := target.(DomainError)
	return ok
}

// LeafTypeError is returned when a traversal reaches a leaf of an unexpected
// type.
type LeafTypeError struct {
	Expected string
	Found    any
}

// Error returns a string representation of the error.
func (e LeafTypeError) Error() string {
	return fmt.Sprintf("expected leaf %s but found %T", e.Expected, e.Found)
}

// Is returns true if the target error is a LeafTypeError.
func (e LeafTypeError) Is(target error) bool {
	_, ok := target.(LeafTypeError)
	return ok
}
