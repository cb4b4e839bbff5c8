// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package streamfile

import "time"

// Stream file format constants.
const (
	// streamVersion is the current format version, stored in byte 6
	// of the magic.
	streamVersion = 1

	// headerSize is the fixed file header: 8-byte magic + 1-byte
	// compression tag + 3 reserved bytes + 8-byte creation time in
	// Unix milliseconds.
	headerSize = 20

	// frameHeaderSize is the fixed per-frame header: 1-byte
	// compression tag + 3 reserved bytes + 4-byte payload length
	// + 4-byte uncompressed size + 32-byte payload digest.
	frameHeaderSize = 44

	// maxFramePayload bounds a single frame's uncompressed size. A
	// larger length field means the file is corrupt; refusing it
	// keeps a flipped length bit from turning into a giant
	// allocation.
	maxFramePayload = 64 << 20
)

// streamMagic is the 8-byte stream file signature: "BEVENT" +
// version byte + reserved byte.
var streamMagic = [8]byte{'B', 'E', 'V', 'E', 'N', 'T', streamVersion, 0}

// Header describes a stream file's fixed header.
type Header struct {
	// Version is the format version from the magic.
	Version uint8

	// Compression is the stream's requested compression tag.
	// Individual frames may still be CompressionNone where a
	// payload did not shrink.
	Compression CompressionTag

	// CreatedAt is the time the writer opened the stream.
	CreatedAt time.Time
}
