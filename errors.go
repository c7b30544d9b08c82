package birch

import (
	"errors"
	"fmt"
)

// Sentinel errors carried by TreeError panics and returned by lookups.
var (
	ErrCycle        = errors.New("a node cannot be added to itself or one of its descendants")
	ErrHasParent    = errors.New("child already has a parent; remove it first")
	ErrNotContainer = errors.New("node is not a container")
	ErrNotChild     = errors.New("node is not a child of this container")
	ErrIndexRange   = errors.New("child index out of range")
	ErrNotConnected = errors.New("nodes share no common ancestor")
	ErrBubbling     = errors.New("broadcast of bubbling events is prohibited")
)

// TreeError describes a rejected structural operation. Tree mutators panic
// with a *TreeError; the tree is left unchanged.
type TreeError struct {
	Op     string
	Parent string
	Child  string
	Err    error
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("birch: %s %q -> %q: %v", e.Op, e.Parent, e.Child, e.Err)
}

func (e *TreeError) Unwrap() error { return e.Err }

func treePanic(op string, parent, child *Node, err error) {
	te := &TreeError{Op: op, Err: err}
	if parent != nil {
		te.Parent = parent.Name
	}
	if child != nil {
		te.Child = child.Name
	}
	panic(te)
}
