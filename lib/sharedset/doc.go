// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sharedset provides an immutable, structurally shared set
// container for values that participate in large overlapping
// collections, such as the transitive output sets of build actions.
//
// A [Set] holds a small number of direct leaves plus references to
// child sets. Child sets are shared by reference: adding the same set
// to a thousand parents stores one pointer a thousand times, not a
// thousand copies. This keeps set construction cheap for deeply
// nested, heavily overlapping collections where flat copies would be
// quadratic.
//
// Identity, not value, defines sharing. Two sets built from the same
// elements in separate Build calls are distinct nodes; consumers that
// deduplicate work (expand once, name once, emit once) key off the
// opaque [Node] token returned by [Set.Node], which is comparable and
// usable as a map key.
//
// Construction goes through [Builder]:
//
//	b := sharedset.NewBuilder[string](sharedset.OrderStable)
//	b.Add("a")
//	b.AddSet(child)
//	s := b.Build()
//
// Builders deduplicate value-equal direct leaves and identity-equal
// children, skip empty children, and collapse a build with no leaves
// and exactly one child into that child itself, preserving its
// identity. Sets are immutable after Build; accessors return copies
// of internal slices.
package sharedset
