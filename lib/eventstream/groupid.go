// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventstream

import "fmt"

// GroupID identifies one distinct artifact set node within a single
// event stream. IDs are allocated by a [GroupNamer] on first
// encounter and stable for the life of the stream; they carry no
// meaning across streams.
//
// GroupID implements encoding.TextMarshaler and TextUnmarshaler, so
// it serializes as a plain string in both CBOR and JSON.
type GroupID string

// String returns the identifier text.
func (id GroupID) String() string {
	return string(id)
}

// MarshalText implements encoding.TextMarshaler. An empty ID is a
// bug: it means a group was encoded before its namer assigned it.
func (id GroupID) MarshalText() ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("empty group ID")
	}
	return []byte(id), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *GroupID) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		return fmt.Errorf("empty group ID")
	}
	*id = GroupID(text)
	return nil
}

// EventID identifies one event in the stream. Exactly one field is
// set: NamedSet for named artifact group events, Opaque for every
// other event kind this library carries but does not interpret.
type EventID struct {
	NamedSet string `json:"named_set,omitempty"`
	Opaque   string `json:"opaque,omitempty"`
}

// GroupEventID returns the event identifier of the group event with
// the given ID. The mapping is deterministic: consumers holding a
// GroupID reference compute the same EventID to find the event.
func GroupEventID(id GroupID) EventID {
	return EventID{NamedSet: string(id)}
}

// OpaqueEventID returns an event identifier outside the named-group
// namespace, for events this library transports without interpreting.
func OpaqueEventID(value string) EventID {
	return EventID{Opaque: value}
}

// IsZero reports whether the identifier is unset.
func (id EventID) IsZero() bool {
	return id == EventID{}
}

// String renders the identifier for logs and inspector output.
func (id EventID) String() string {
	switch {
	case id.NamedSet != "":
		return "named_set:" + id.NamedSet
	case id.Opaque != "":
		return "opaque:" + id.Opaque
	default:
		return "unset"
	}
}
