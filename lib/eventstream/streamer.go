// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventstream

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/buildevent/lib/artifact"
	"github.com/bureau-foundation/buildevent/lib/sharedset"
)

// Sink receives encoded events. The streamer serializes Write calls;
// implementations need no locking of their own.
type Sink interface {
	Write(event *WireEvent) error
}

// StreamerConfig carries the optional collaborators of a [Streamer].
type StreamerConfig struct {
	// Converter maps physical paths to file record URIs. Nil
	// selects [FileURIConverter].
	Converter PathConverter

	// Logger receives debug-level notes about written events. Nil
	// discards them.
	Logger *slog.Logger

	// Parallelism bounds the concurrent top-level reports of
	// [Streamer.ReportGroups]. Values below 1 select the default
	// of 4.
	Parallelism int
}

// Streamer writes named artifact group events to a sink, each
// distinct set node exactly once per stream. It owns the stream's
// [CountingNamer] and implements [Context] for event encoding.
type Streamer struct {
	sink        Sink
	converter   PathConverter
	namer       *CountingNamer
	logger      *slog.Logger
	parallelism int

	writeMu sync.Mutex
}

// NewStreamer creates a streamer writing to sink.
func NewStreamer(sink Sink, config StreamerConfig) *Streamer {
	if sink == nil {
		panic("eventstream: nil sink")
	}
	converter := config.Converter
	if converter == nil {
		converter = FileURIConverter
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	parallelism := config.Parallelism
	if parallelism < 1 {
		parallelism = 4
	}
	return &Streamer{
		sink:        sink,
		converter:   converter,
		namer:       NewCountingNamer(),
		logger:      logger,
		parallelism: parallelism,
	}
}

// PathConverter implements [Context].
func (s *Streamer) PathConverter() PathConverter {
	return s.converter
}

// Namer implements [Context].
func (s *Streamer) Namer() GroupNamer {
	return s.namer
}

// ReportGroup ensures the set and every subtree reachable from it
// has been written, and returns the set's group ID. The first report
// of a node expands its leaves through cctx, reports its children,
// and writes the node's own event after them, so the subtrees
// claimed by one report land in the stream child-first. A repeat
// report of an already-claimed node returns its ID without expanding
// or writing anything.
//
// Claims latch before the event is written: a concurrent reporter
// can receive (and embed) an ID whose event is still in flight.
// Within the stream this is the documented forward-reference case.
//
// Cancellation is checked between nodes, not inside expansion or
// encoding, so an interrupted report never leaves a half-written
// event behind.
func (s *Streamer) ReportGroup(ctx context.Context, cctx artifact.CompletionContext, set sharedset.Set[artifact.Element]) (GroupID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id, fresh := s.namer.Claim(set.Node())
	if !fresh {
		return id, nil
	}

	expanded, err := artifact.ExpandSet(cctx, set)
	if err != nil {
		return "", fmt.Errorf("expanding group %s: %w", id, err)
	}
	for _, child := range expanded.Children() {
		if _, err := s.ReportGroup(ctx, cctx, child); err != nil {
			return "", err
		}
	}

	group := NewGroup(id, cctx, expanded)
	event, err := group.Encode(s)
	if err != nil {
		return "", fmt.Errorf("encoding group %s: %w", id, err)
	}
	if err := s.write(event); err != nil {
		return "", err
	}
	s.logger.Debug("named artifact group written",
		"group", id,
		"files", len(event.NamedSet.Files),
		"file_sets", len(event.NamedSet.FileSetRefs))
	return id, nil
}

// ReportGroups reports several top-level sets concurrently and
// returns their IDs in input order. Shared subtrees are still
// written once: claims latch across goroutines, and whichever report
// reaches a shared node first emits it. The first error cancels the
// remaining reports.
func (s *Streamer) ReportGroups(ctx context.Context, cctx artifact.CompletionContext, sets []sharedset.Set[artifact.Element]) ([]GroupID, error) {
	ids := make([]GroupID, len(sets))
	reports, reportCtx := errgroup.WithContext(ctx)
	reports.SetLimit(s.parallelism)
	for i, set := range sets {
		reports.Go(func() error {
			id, err := s.ReportGroup(reportCtx, cctx, set)
			if err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}
	if err := reports.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}

// Post encodes one event and writes it. Use it for events other than
// named groups; group events flow through ReportGroup, which also
// maintains the emit-once contract.
func (s *Streamer) Post(event Event) error {
	wire, err := event.Encode(s)
	if err != nil {
		return fmt.Errorf("encoding event %s: %w", event.EventID(), err)
	}
	if err := s.write(wire); err != nil {
		return err
	}
	s.logger.Debug("event written", "id", wire.ID)
	return nil
}

func (s *Streamer) write(event *WireEvent) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.sink.Write(event); err != nil {
		return fmt.Errorf("writing event %s: %w", event.ID, err)
	}
	return nil
}
