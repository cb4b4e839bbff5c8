// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package artifact models build outputs as they flow through the
// event stream: opaque references to declared outputs, the resolved
// entries they expand into once their producing actions complete, and
// the shallow one-level expansion that rewrites a shared set of
// references into a shared set of resolved entries.
//
// An [Artifact] is a reference only. This package never reads the
// filesystem and never decides whether an output exists; physical
// locations and expansion results come from a [CompletionContext]
// implemented by the action completion layer. Expansion through
// [ExpandSet] is shallow: it resolves the direct leaves of one set
// and passes child sets through untouched, so a subtree shared by
// many parents is expanded once by whoever reaches it first, not once
// per parent.
//
// Set leaves are [Element] values, a sealed sum of [Artifact] (not
// yet expanded) and [Resolved] (expanded). Downstream encoders
// require every leaf to be Resolved; a raw Artifact reaching an
// encoder is a sequencing bug in the caller, not an input error.
package artifact
