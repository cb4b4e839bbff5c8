// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventstream

import (
	"fmt"

	"github.com/bureau-foundation/buildevent/lib/artifact"
	"github.com/bureau-foundation/buildevent/lib/sharedset"
)

// Group is the named artifact group event for one distinct set node.
// It carries the node's already-expanded set: every leaf must be an
// [artifact.Resolved] entry. A raw artifact leaf observed here means
// the caller encoded before expanding, which is a sequencing bug,
// not an input error, so both encoding paths panic on it.
//
// A Group event announces no children of its own. Child sets appear
// as payload references instead, named through the stream's
// [GroupNamer] at encode time.
type Group struct {
	id   GroupID
	cctx artifact.CompletionContext
	set  sharedset.Set[artifact.Element]
}

// NewGroup creates the group event for an expanded set. The id must
// be the one the stream's namer assigned to the set node that
// expanded into this set.
func NewGroup(id GroupID, cctx artifact.CompletionContext, expanded sharedset.Set[artifact.Element]) *Group {
	return &Group{id: id, cctx: cctx, set: expanded}
}

// GroupID returns the group's identifier.
func (g *Group) GroupID() GroupID {
	return g.id
}

// Set returns the group's backing set.
func (g *Group) Set() sharedset.Set[artifact.Element] {
	return g.set
}

// EventID implements [Event].
func (g *Group) EventID() EventID {
	return GroupEventID(g.id)
}

// ChildEventIDs implements [Event]. Group events announce no
// children; child sets are payload references, not event ordering
// edges.
func (g *Group) ChildEventIDs() []EventID {
	return nil
}

// LocalFiles implements [Event]: the physical locations of the
// direct leaves, every one an output. Files of child sets are not
// included; each child's own event accounts for them.
func (g *Group) LocalFiles() ([]LocalFile, error) {
	var files []LocalFile
	for _, leaf := range g.set.Leaves() {
		entry := g.resolvedLeaf(leaf)
		location, err := g.resolveLocation(entry)
		if err != nil {
			return nil, err
		}
		files = append(files, LocalFile{Path: location, Kind: LocalFileOutput})
	}
	return files, nil
}

// Encode implements [Event]. The payload inlines one file record per
// direct leaf whose physical path converts to a URI (declined paths
// are omitted) and one reference per child set. The event is built
// completely before it is returned; on error nothing is returned, so
// a partial message can never reach a sink.
func (g *Group) Encode(ctx Context) (*WireEvent, error) {
	convert := ctx.PathConverter()
	namer := ctx.Namer()

	namedSet := &NamedFileSet{Name: string(g.id)}
	for _, leaf := range g.set.Leaves() {
		entry := g.resolvedLeaf(leaf)
		location, err := g.resolveLocation(entry)
		if err != nil {
			return nil, err
		}
		uri, ok := convert(location)
		if !ok {
			continue
		}
		record := FileRecord{Name: entry.RecordName(), URI: uri}
		if infoContext, ok := g.cctx.(artifact.FileInfoContext); ok && entry.Kind == artifact.EntryDirect {
			if info, ok := infoContext.FileInfo(entry.Artifact); ok {
				record.Digest = info.Digest
				record.Length = info.Length
			}
		}
		namedSet.Files = append(namedSet.Files, record)
	}
	for _, child := range g.set.Children() {
		namedSet.FileSetRefs = append(namedSet.FileSetRefs, namer.IDFor(child.Node()))
	}
	event := Envelope(g)
	event.NamedSet = namedSet
	return event, nil
}

// resolvedLeaf asserts that a leaf has been expanded and is
// internally consistent.
func (g *Group) resolvedLeaf(leaf artifact.Element) artifact.Resolved {
	entry, ok := leaf.(artifact.Resolved)
	if !ok {
		panic(fmt.Sprintf("eventstream: unexpanded leaf %v in group %s", leaf, g.id))
	}
	if err := entry.Validate(); err != nil {
		panic(fmt.Sprintf("eventstream: corrupt entry in group %s: %v", g.id, err))
	}
	return entry
}

// resolveLocation returns the physical location an entry points at:
// the artifact's own file for direct entries, the mapping target for
// linked entries.
func (g *Group) resolveLocation(entry artifact.Resolved) (string, error) {
	var location string
	var err error
	switch entry.Kind {
	case artifact.EntryDirect:
		location, err = g.cctx.ResolvePath(entry.Artifact)
	case artifact.EntryLinked:
		location, err = g.cctx.ResolveTarget(entry.Target)
	}
	if err != nil {
		return "", &artifact.UnresolvedError{Artifact: entry.Artifact, Err: err}
	}
	return location, nil
}
