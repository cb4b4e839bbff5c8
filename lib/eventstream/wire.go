// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventstream

// WireEvent is the serialized form of one build event: an identity,
// the identities of the events it announces as children, and the
// event payload. The only payload this library produces itself is
// NamedSet; other event kinds travel through with payload fields
// left nil.
//
// Wire types carry json tags only; the CBOR encoder reads them as
// fallback, so one tag serves both the stream file and inspector
// output.
type WireEvent struct {
	ID       EventID   `json:"id"`
	Children []EventID `json:"children,omitempty"`

	NamedSet *NamedFileSet `json:"named_set_of_files,omitempty"`
}

// NamedFileSet is the payload of a named artifact group event: the
// files of the group's direct leaves inline, and its child sets as
// references. Contents of child sets are never inlined; consumers
// reassemble them by following FileSetRefs to the events named by
// [GroupEventID].
type NamedFileSet struct {
	// Name is the group's identifier within the stream.
	Name string `json:"name"`

	// Files holds one record per direct leaf whose path converted
	// to a URI, in leaf order.
	Files []FileRecord `json:"files,omitempty"`

	// FileSetRefs holds one group reference per child set, in
	// child order.
	FileSetRefs []GroupID `json:"file_sets,omitempty"`
}

// FileRecord describes one file of a named group.
type FileRecord struct {
	// Name is the logical root-relative name of the file: the
	// artifact's path, extended with the mapping-relative name for
	// linked entries.
	Name string `json:"name"`

	// URI locates the file's content as produced by the stream's
	// path converter.
	URI string `json:"uri"`

	// Digest is the lowercase hex content digest, when the
	// completion context tracks one.
	Digest string `json:"digest,omitempty"`

	// Length is the content length in bytes, when known.
	Length int64 `json:"length,omitempty"`
}

// LocalFileKind classifies a file referenced by an event on the
// local machine.
type LocalFileKind uint8

const (
	// LocalFileOutput is a declared build output. Group events
	// reference only outputs.
	LocalFileOutput LocalFileKind = iota

	// LocalFileLog is a log produced by the build tool itself.
	LocalFileLog

	// LocalFileStdout is captured standard output of an action.
	LocalFileStdout

	// LocalFileStderr is captured standard error of an action.
	LocalFileStderr
)

// String returns the kind name for logs and inspector output.
func (k LocalFileKind) String() string {
	switch k {
	case LocalFileOutput:
		return "output"
	case LocalFileLog:
		return "log"
	case LocalFileStdout:
		return "stdout"
	case LocalFileStderr:
		return "stderr"
	default:
		return "invalid"
	}
}

// LocalFile names one local file an event references before any URI
// conversion, so uploaders can stage contents ahead of encoding.
type LocalFile struct {
	Path string
	Kind LocalFileKind
}
