// Package handler implements the per-control handler trees of a profile.
//
// A tree descends one shift level per layer of ShiftHandler branches and
// ends in exactly one leaf action. The branches of a node partition the
// state space of their level: each one starts right after the state its
// predecessor ended on, and once the node is complete the last one ends
// on the last state of the level.
package handler

import (
	"errors"
	"fmt"

	"github.com/dshills/joyprog/internal/action"
	"github.com/dshills/joyprog/internal/input/key"
)

// Handler tree errors.
var (
	// ErrNotContiguous indicates a branch that does not start right after
	// the last state covered by its predecessor.
	ErrNotContiguous = errors.New("shift handler states are not contiguous")

	// ErrMultipleLeaves indicates a leaf added to a node that already has
	// children.
	ErrMultipleLeaves = errors.New("a handler can have only one action")

	// ErrLeafAfterBranch indicates a branch added to a node that already
	// holds a leaf.
	ErrLeafAfterBranch = errors.New("a handler holding an action cannot have shift handlers")

	// ErrInvalidRange indicates a branch whose last state precedes its
	// first state.
	ErrInvalidRange = errors.New("the to-state should not be less than the from-state")

	// ErrNilChild indicates an empty child variant.
	ErrNilChild = errors.New("child is neither a shift handler nor an action")
)

// Child is an entry of a Tree: either a Branch or a Leaf.
type Child struct {
	branch *ShiftHandler
	leaf   action.Action
}

// Branch wraps a shift handler as a child.
func Branch(h *ShiftHandler) Child {
	return Child{branch: h}
}

// Leaf wraps an action as a child.
func Leaf(a action.Action) Child {
	return Child{leaf: a}
}

// IsLeaf returns true if the child is an action.
func (c Child) IsLeaf() bool {
	return c.leaf != nil
}

// Branch returns the shift handler of a branch child, or nil.
func (c Child) Branch() *ShiftHandler {
	return c.branch
}

// Leaf returns the action of a leaf child, or nil.
func (c Child) Leaf() action.Action {
	return c.leaf
}

// NeedsCancelOnRelease reports whether the child or any descendant action
// keeps running after the control event.
func (c Child) NeedsCancelOnRelease() bool {
	switch {
	case c.leaf != nil:
		return c.leaf.NeedsCancelOnRelease()
	case c.branch != nil:
		return c.branch.NeedsCancelOnRelease()
	default:
		return false
	}
}

// Tree is a node of a handler tree.
type Tree struct {
	children []Child
}

// Children returns the children in order. The slice must not be modified.
func (t *Tree) Children() []Child {
	return t.children
}

// NumChildren returns the number of children.
func (t *Tree) NumChildren() int {
	return len(t.children)
}

// HasLeaf returns true if the node holds an action.
func (t *Tree) HasLeaf() bool {
	return len(t.children) == 1 && t.children[0].IsLeaf()
}

// LastState returns the last state covered by the branches, or -1 if the
// node has no branch.
func (t *Tree) LastState() int {
	if len(t.children) == 0 {
		return -1
	}
	last := t.children[len(t.children)-1]
	if last.branch == nil {
		return -1
	}
	return last.branch.To
}

// AddChild appends a child, enforcing that branches are contiguous and
// that a leaf is the only child of its node.
func (t *Tree) AddChild(c Child) error {
	switch {
	case c.leaf != nil:
		if len(t.children) > 0 {
			return ErrMultipleLeaves
		}
	case c.branch != nil:
		if t.HasLeaf() {
			return ErrLeafAfterBranch
		}
		if c.branch.From != t.LastState()+1 {
			return fmt.Errorf("%w: expected from-state %d, got %d",
				ErrNotContiguous, t.LastState()+1, c.branch.From)
		}
	default:
		return ErrNilChild
	}
	t.children = append(t.children, c)
	return nil
}

// IsComplete reports whether the node covers the numStates states expected
// at its level. Zero states means the node is at the bottom of the tree
// and needs exactly one child.
func (t *Tree) IsComplete(numStates int) bool {
	if numStates == 0 {
		return len(t.children) == 1
	}
	return t.LastState()+1 == numStates
}

// NeedsCancelOnRelease reports whether any descendant action keeps running
// after the control event.
func (t *Tree) NeedsCancelOnRelease() bool {
	for _, c := range t.children {
		if c.NeedsCancelOnRelease() {
			return true
		}
	}
	return false
}

// ShiftHandler handles the inclusive range [From, To] of the states of one
// shift level.
type ShiftHandler struct {
	Tree
	From int
	To   int
}

// NewShiftHandler creates a handler for the states between from and to.
func NewShiftHandler(from, to int) (*ShiftHandler, error) {
	if to < from {
		return nil, fmt.Errorf("%w: %d < %d", ErrInvalidRange, to, from)
	}
	return &ShiftHandler{From: from, To: to}, nil
}

// IsSingle returns true if the handler covers exactly one state.
func (h *ShiftHandler) IsSingle() bool {
	return h.From == h.To
}

// KeyProfile is the root handler tree of one key or button.
type KeyProfile struct {
	Tree
	Code key.Code
}

// NewKeyProfile creates an empty profile for the given code.
func NewKeyProfile(code key.Code) *KeyProfile {
	return &KeyProfile{Code: code}
}

// Walk visits every node of the tree depth first with its depth. A leaf
// is passed to fn with a nil handler; visiting stops on the first error.
func Walk(t *Tree, fn func(depth int, h *ShiftHandler, leaf action.Action) error) error {
	return walk(t, 0, fn)
}

func walk(t *Tree, depth int, fn func(int, *ShiftHandler, action.Action) error) error {
	for _, c := range t.children {
		if c.leaf != nil {
			if err := fn(depth, nil, c.leaf); err != nil {
				return err
			}
			continue
		}
		if err := fn(depth, c.branch, nil); err != nil {
			return err
		}
		if err := walk(&c.branch.Tree, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}
