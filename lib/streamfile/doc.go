// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package streamfile reads and writes durable build event stream
// files: a length-framed sequence of CBOR event payloads behind a
// versioned header.
//
// A stream file is local durability, not delivery. A build driver
// attaches a [Writer] as the sink of an eventstream.Streamer to
// persist every event as it is emitted; consumers and tools read the
// file back with a [Reader], in write order, tolerating references
// to groups that appear later in the file.
//
// # Format
//
// The file opens with a 20-byte header: the 8-byte magic ("BEVENT" +
// version byte + reserved byte), the stream's requested compression
// tag, three reserved bytes, and the creation time in Unix
// milliseconds. Every following frame is:
//
//	1 byte   compression tag for this frame
//	3 bytes  reserved (zero)
//	4 bytes  payload length (little endian)
//	4 bytes  uncompressed payload size (little endian)
//	32 bytes frame-domain keyed BLAKE3 digest of the uncompressed payload
//	payload
//
// Frames carry their own compression tag because compression falls
// back per frame: a payload that does not shrink is stored
// uncompressed regardless of the stream's requested tag. Digests are
// computed over uncompressed bytes, so a frame's identity is stable
// across compression settings, and [Reader.Next] verifies the digest
// of every frame it returns.
package streamfile
