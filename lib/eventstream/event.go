// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventstream

// Context supplies the stream-scoped collaborators an event needs to
// encode itself. [Streamer] implements it; tests substitute fixed
// values.
type Context interface {
	// PathConverter returns the converter mapping physical paths
	// to the URIs embedded in file records.
	PathConverter() PathConverter

	// Namer returns the stream's group namer. Encoders use it to
	// reference child sets by ID.
	Namer() GroupNamer
}

// Event is one build event. Implementations beyond [Group] live in
// the layers that own their payloads; the streamer only needs
// identity, announced children, referenced local files, and a wire
// encoding.
type Event interface {
	// EventID returns the event's identity in the stream.
	EventID() EventID

	// ChildEventIDs returns the identities of events this event
	// announces will follow. Order is preserved on the wire.
	ChildEventIDs() []EventID

	// LocalFiles returns the local files the event's encoding will
	// reference, so callers can stage contents before encoding.
	LocalFiles() ([]LocalFile, error)

	// Encode produces the event's wire form. Encoding is atomic:
	// either a complete event or an error, never a partial
	// message.
	Encode(ctx Context) (*WireEvent, error)
}

// Envelope returns the wire envelope for an event: its identity and
// announced children, with no payload. Encoders start from it and
// attach their payload, so every event kind chains identically.
func Envelope(event Event) *WireEvent {
	return &WireEvent{ID: event.EventID(), Children: event.ChildEventIDs()}
}
