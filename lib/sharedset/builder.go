// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sharedset

import "fmt"

// Builder accumulates leaves and child sets and produces an immutable
// [Set]. The zero Builder is not usable; construct with [NewBuilder].
// Builders are not safe for concurrent use.
type Builder[T comparable] struct {
	order     Order
	leaves    []T
	leafSeen  map[T]struct{}
	children  []*node[T]
	childSeen map[*node[T]]struct{}
}

// NewBuilder returns a builder producing sets with the given order.
func NewBuilder[T comparable](order Order) *Builder[T] {
	return &Builder[T]{
		order:     order,
		leafSeen:  make(map[T]struct{}),
		childSeen: make(map[*node[T]]struct{}),
	}
}

// Add appends one direct leaf. A leaf value-equal to one already
// added is dropped; the first occurrence keeps its position.
func (b *Builder[T]) Add(item T) {
	if _, ok := b.leafSeen[item]; ok {
		return
	}
	b.leafSeen[item] = struct{}{}
	b.leaves = append(b.leaves, item)
}

// AddAll appends the given leaves in order, with the same
// deduplication as Add.
func (b *Builder[T]) AddAll(items ...T) {
	for _, item := range items {
		b.Add(item)
	}
}

// AddSet appends a child set by reference. Empty sets are skipped. A
// child identity-equal to one already added is dropped. Adding a
// non-empty set whose order differs from the builder's panics: mixing
// order contracts silently would let an unordered subtree corrupt a
// stable traversal.
func (b *Builder[T]) AddSet(s Set[T]) {
	if s.n == nil {
		return
	}
	if s.n.order != b.order {
		panic(fmt.Sprintf("sharedset: cannot add %v set to %v builder", s.n.order, b.order))
	}
	if _, ok := b.childSeen[s.n]; ok {
		return
	}
	b.childSeen[s.n] = struct{}{}
	b.children = append(b.children, s.n)
}

// Build produces the set. A build with no leaves and no children
// returns the empty set. A build with no leaves and exactly one child
// returns that child itself, preserving its identity, so wrapping a
// set never defeats downstream deduplication. Every other build
// allocates a new node with a new identity.
//
// The builder remains usable after Build; later additions do not
// affect previously built sets.
func (b *Builder[T]) Build() Set[T] {
	if len(b.leaves) == 0 {
		switch len(b.children) {
		case 0:
			return Set[T]{}
		case 1:
			return Set[T]{n: b.children[0]}
		}
	}
	n := &node[T]{order: b.order}
	if len(b.leaves) > 0 {
		n.leaves = make([]T, len(b.leaves))
		copy(n.leaves, b.leaves)
	}
	if len(b.children) > 0 {
		n.children = make([]*node[T], len(b.children))
		copy(n.children, b.children)
	}
	return Set[T]{n: n}
}

// FromLeaves builds a set holding only the given direct leaves.
func FromLeaves[T comparable](order Order, items ...T) Set[T] {
	b := NewBuilder[T](order)
	b.AddAll(items...)
	return b.Build()
}

// Union builds a set whose children are the given sets. Empty inputs
// are skipped; a union of one non-empty set returns that set itself.
func Union[T comparable](order Order, sets ...Set[T]) Set[T] {
	b := NewBuilder[T](order)
	for _, s := range sets {
		b.AddSet(s)
	}
	return b.Build()
}
