// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/buildevent/lib/sharedset"
)

// CompletionContext resolves artifact references against the results
// of completed actions. Implementations live in the action completion
// layer; this package only consumes them. Methods return an error
// when the underlying output could not be produced or located. Such
// failures are propagated to the caller, never retried here.
type CompletionContext interface {
	// ResolvePath returns the physical location of a directly
	// produced artifact.
	ResolvePath(a Artifact) (string, error)

	// ResolveTarget returns the physical location of a linked
	// entry's target path.
	ResolveTarget(target string) (string, error)

	// Expand returns the resolved entries an artifact stands for:
	// one direct entry for a plain output, several direct entries
	// for an expandable output, zero or more linked entries for a
	// mapping output. The returned order is preserved by callers.
	Expand(a Artifact) ([]Resolved, error)
}

// FileInfo describes the content of a resolved file for wire records
// that carry digests.
type FileInfo struct {
	// Digest is the lowercase hex content digest.
	Digest string

	// Length is the content length in bytes.
	Length int64
}

// FileInfoContext is an optional extension of [CompletionContext].
// Contexts that track content metadata implement it; encoders
// type-assert for it and attach digests when present, omitting them
// otherwise.
type FileInfoContext interface {
	// FileInfo returns content metadata for a directly produced
	// artifact. ok is false when the context has none.
	FileInfo(a Artifact) (info FileInfo, ok bool)
}

// UnresolvedError reports that a completion context could not
// resolve an artifact. The failure originates upstream (a missing or
// unproduced output); callers surface it and move on.
type UnresolvedError struct {
	Artifact Artifact
	Err      error
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("artifact %s unresolved: %v", e.Artifact.Path, e.Err)
}

func (e *UnresolvedError) Unwrap() error {
	return e.Err
}

// IsUnresolved reports whether err is or wraps an [UnresolvedError].
func IsUnresolved(err error) bool {
	var unresolved *UnresolvedError
	return errors.As(err, &unresolved)
}

// ExpandSet rewrites the direct leaves of one set: every raw
// [Artifact] leaf is replaced by the entries its completion context
// expands it into, and every [Resolved] leaf passes through
// unchanged. Child sets are carried over by reference, untouched and
// unexpanded, so shared subtrees keep their identity and remain
// expandable exactly once by their own caller. The input set is never
// mutated.
//
// Leaf order is preserved: expanded entries take the position of the
// artifact they came from, in the order the context returned them.
// A leaf that is neither Artifact nor Resolved cannot exist inside a
// sealed element set; encountering one panics.
func ExpandSet(cctx CompletionContext, s sharedset.Set[Element]) (sharedset.Set[Element], error) {
	if s.IsEmpty() {
		return s, nil
	}
	builder := sharedset.NewBuilder[Element](s.Order())
	for _, leaf := range s.Leaves() {
		switch element := leaf.(type) {
		case Resolved:
			builder.Add(element)
		case Artifact:
			entries, err := cctx.Expand(element)
			if err != nil {
				return sharedset.Set[Element]{}, &UnresolvedError{Artifact: element, Err: err}
			}
			for _, entry := range entries {
				builder.Add(entry)
			}
		default:
			panic(fmt.Sprintf("artifact: unexpected set element %T", leaf))
		}
	}
	for _, child := range s.Children() {
		builder.AddSet(child)
	}
	return builder.Build(), nil
}
