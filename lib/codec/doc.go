// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard CBOR encoding configuration for
// build event payloads.
//
// The event stream uses two serialization formats with a clear
// boundary:
//
//   - CBOR for the durable stream: framed event payloads inside
//     stream files, where byte-for-byte determinism matters because
//     every frame carries a digest of its payload.
//   - JSON for human surfaces: inspector output through
//     encoding/json, authored converter rules through the JSONC
//     loader.
//
// This package provides the shared CBOR encoding and decoding modes
// so that every package encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC
// 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces
// identical bytes, so re-encoding an unchanged event never changes
// its frame digest.
//
// Wire types carry `json` struct tags only: fxamacker/cbor v2 reads
// json tags as fallback when cbor tags are absent, so a single tag
// controls field naming and omitempty for both the stream file and
// inspector output. Never add a `cbor` tag next to a `json` tag; the
// single tag documents that the type serves both formats.
package codec
