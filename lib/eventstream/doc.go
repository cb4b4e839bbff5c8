// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package eventstream turns shared artifact sets into named,
// reference-linked build events.
//
// Build actions produce overlapping sets of outputs represented as
// [sharedset.Set] values. Flattening those sets into every event that
// mentions them would inflate the stream quadratically, so the stream
// mirrors the sharing instead: each distinct set node becomes one
// named group event carrying its direct files inline and its child
// sets as [GroupID] references. Consumers reassemble the full
// contents by following references.
//
// The pieces:
//
//   - [GroupNamer] assigns a stable [GroupID] to each distinct set
//     node, keyed by identity, not value. [CountingNamer] is the
//     standard implementation.
//   - [Group] is the named group event for one expanded set. Its
//     encoding inlines one [FileRecord] per direct leaf and one
//     reference per child; nothing from child sets is ever inlined.
//   - [PathConverter] maps physical paths to URIs for file records.
//     A converter may decline a path, which silently omits that
//     record.
//   - [Streamer] drives emission: it claims each node's ID, expands
//     the node's leaves through the caller's completion context,
//     recurses into children, and writes the parent after its
//     children, each distinct node exactly once per session.
//
// Identifier allocation is latched: the first encounter of a node
// fixes its ID forever, so concurrent reporters may write a
// reference to a group whose own event is still being encoded.
// Consumers must tolerate references that precede the referenced
// event in the stream.
package eventstream
