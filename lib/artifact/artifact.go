// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"fmt"
	"path"
)

// Artifact is an opaque reference to one declared build output,
// identified by its logical root-relative path. Artifacts are
// immutable values; equality is path equality.
type Artifact struct {
	// Path is the root-relative logical path of the output. It is
	// the name consumers see in wire file records, not a physical
	// filesystem location.
	Path string
}

// String returns the artifact's logical path.
func (a Artifact) String() string {
	return a.Path
}

// Element is a leaf of an artifact set: either a raw [Artifact]
// awaiting expansion or a [Resolved] entry produced by expansion.
// The sum is sealed; no other type participates.
type Element interface {
	element()
}

func (Artifact) element() {}
func (Resolved) element() {}

// EntryKind distinguishes the two shapes of a resolved entry.
type EntryKind uint8

const (
	// EntryDirect marks an entry whose artifact stands for its own
	// physical file.
	EntryDirect EntryKind = iota

	// EntryLinked marks an entry whose artifact stands for a named
	// mapping onto another file: the entry carries the name of the
	// link relative to the artifact and the path of the target it
	// points at.
	EntryLinked
)

// String returns the kind name for logs and error messages.
func (k EntryKind) String() string {
	switch k {
	case EntryDirect:
		return "direct"
	case EntryLinked:
		return "linked"
	default:
		return "invalid"
	}
}

// Resolved is one expanded leaf entry. Direct entries carry only the
// artifact; linked entries additionally carry RelativeName and
// Target, always both. Construct through [Direct] and [Linked];
// hand-built values must satisfy [Resolved.Validate].
type Resolved struct {
	Kind     EntryKind
	Artifact Artifact

	// RelativeName is the mapping name relative to the artifact's
	// path. Set exactly when Kind is EntryLinked.
	RelativeName string

	// Target is the path of the file the mapping points at. Set
	// exactly when Kind is EntryLinked.
	Target string
}

// Direct returns a resolved entry for an artifact that stands for
// its own file.
func Direct(a Artifact) Resolved {
	return Resolved{Kind: EntryDirect, Artifact: a}
}

// Linked returns a resolved entry for a mapping under the artifact.
// Both the relative name and the target must be present; a mapping
// with half its pair missing is corrupt and panics rather than
// propagating.
func Linked(a Artifact, relativeName, target string) Resolved {
	if relativeName == "" || target == "" {
		panic(fmt.Sprintf("artifact: linked entry for %s requires both relative name (%q) and target (%q)", a.Path, relativeName, target))
	}
	return Resolved{Kind: EntryLinked, Artifact: a, RelativeName: relativeName, Target: target}
}

// Validate reports whether the entry's fields are consistent with
// its kind. Encoders treat an inconsistent entry as fatal.
func (r Resolved) Validate() error {
	switch r.Kind {
	case EntryDirect:
		if r.RelativeName != "" || r.Target != "" {
			return fmt.Errorf("direct entry for %s carries mapping fields (%q -> %q)", r.Artifact.Path, r.RelativeName, r.Target)
		}
	case EntryLinked:
		if r.RelativeName == "" || r.Target == "" {
			return fmt.Errorf("linked entry for %s is missing half its pair (%q -> %q)", r.Artifact.Path, r.RelativeName, r.Target)
		}
	default:
		return fmt.Errorf("entry for %s has invalid kind %d", r.Artifact.Path, r.Kind)
	}
	return nil
}

// RecordName returns the name the entry contributes to a wire file
// record: the artifact's own path for a direct entry, the artifact
// path joined with the mapping-relative name for a linked entry.
func (r Resolved) RecordName() string {
	if r.Kind == EntryLinked {
		return path.Join(r.Artifact.Path, r.RelativeName)
	}
	return r.Artifact.Path
}
