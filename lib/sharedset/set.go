// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sharedset

// Order declares whether the element order of a set carries meaning.
type Order uint8

const (
	// OrderStable means leaf and child order is part of the set's
	// contract: traversal yields direct leaves in insertion order,
	// then children in insertion order.
	OrderStable Order = iota

	// OrderUnordered means consumers must not rely on element
	// order. Traversal is still deterministic for a given set, but
	// the order is unspecified.
	OrderUnordered
)

// String returns the order name for logs and error messages.
func (o Order) String() string {
	switch o {
	case OrderStable:
		return "stable"
	case OrderUnordered:
		return "unordered"
	default:
		return "invalid"
	}
}

// node is the shared, immutable backing store of one set. All sets
// returned from a single Build call alias the same node; identity
// comparisons (and Node tokens) compare these pointers.
type node[T comparable] struct {
	order    Order
	leaves   []T
	children []*node[T]
}

// Set is an immutable collection of direct leaves plus references to
// child sets. The zero Set is the empty set. Set is a small value
// type; pass it by value and compare identity through [Set.Node].
type Set[T comparable] struct {
	n *node[T]
}

// Node is an opaque identity token for one distinct set node. Tokens
// are comparable and valid as map keys. Two Set values share a token
// exactly when they alias the same built node; all empty sets share
// the zero token.
type Node struct {
	ref any
}

// Node returns the identity token of the set.
func (s Set[T]) Node() Node {
	if s.n == nil {
		return Node{}
	}
	return Node{ref: s.n}
}

// IsEmpty reports whether the set contains no leaves and no children.
func (s Set[T]) IsEmpty() bool {
	return s.n == nil
}

// Order returns the set's order mode. The empty set reports
// OrderStable and is compatible with every builder order.
func (s Set[T]) Order() Order {
	if s.n == nil {
		return OrderStable
	}
	return s.n.order
}

// Leaves returns a copy of the set's direct leaves in insertion
// order. Leaves of child sets are not included; use ToList for the
// full flattened contents.
func (s Set[T]) Leaves() []T {
	if s.n == nil || len(s.n.leaves) == 0 {
		return nil
	}
	out := make([]T, len(s.n.leaves))
	copy(out, s.n.leaves)
	return out
}

// Children returns the set's child sets in insertion order. The
// returned slice is fresh, but the child sets alias their original
// nodes, so identity comparisons against other references hold.
func (s Set[T]) Children() []Set[T] {
	if s.n == nil || len(s.n.children) == 0 {
		return nil
	}
	out := make([]Set[T], len(s.n.children))
	for i, child := range s.n.children {
		out[i] = Set[T]{n: child}
	}
	return out
}

// Count returns the number of distinct values in the flattened set.
// It walks the whole graph; use IsEmpty for emptiness checks.
func (s Set[T]) Count() int {
	return len(s.ToList())
}

// ToList flattens the set: a depth-first traversal that visits each
// distinct node once, yields a node's direct leaves before descending
// into its children, and drops value-equal duplicates after their
// first occurrence. For OrderStable sets the result order is part of
// the contract; for OrderUnordered sets it is deterministic but
// unspecified.
func (s Set[T]) ToList() []T {
	if s.n == nil {
		return nil
	}
	var out []T
	visited := make(map[*node[T]]struct{})
	emitted := make(map[T]struct{})
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		if _, ok := visited[n]; ok {
			return
		}
		visited[n] = struct{}{}
		for _, leaf := range n.leaves {
			if _, ok := emitted[leaf]; ok {
				continue
			}
			emitted[leaf] = struct{}{}
			out = append(out, leaf)
		}
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(s.n)
	return out
}
