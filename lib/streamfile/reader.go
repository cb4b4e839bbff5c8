// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package streamfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bureau-foundation/buildevent/lib/codec"
	"github.com/bureau-foundation/buildevent/lib/eventstream"
)

// Reader reads a stream file sequentially. Every frame's digest is
// verified before its payload is returned.
type Reader struct {
	source io.Reader
	closer io.Closer
	header Header
	frame  int
}

// NewReader reads and validates the stream header from source and
// returns a reader positioned at the first frame.
func NewReader(source io.Reader) (*Reader, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(source, header[:]); err != nil {
		return nil, fmt.Errorf("reading stream header: %w", err)
	}

	var magic [8]byte
	copy(magic[:], header[:8])
	if magic != streamMagic {
		if string(magic[:6]) == "BEVENT" {
			return nil, fmt.Errorf("stream version %d is not supported (this code supports version %d)",
				magic[6], streamVersion)
		}
		return nil, fmt.Errorf("not a build event stream file (invalid magic bytes)")
	}

	compression := CompressionTag(header[8])
	if compression > CompressionZstd {
		return nil, fmt.Errorf("stream header has unsupported compression tag %d", compression)
	}
	if header[9] != 0 || header[10] != 0 || header[11] != 0 {
		return nil, fmt.Errorf("stream header has non-zero reserved bytes: %x", header[9:12])
	}
	createdAtMillis := binary.LittleEndian.Uint64(header[12:])

	return &Reader{
		source: source,
		header: Header{
			Version:     magic[6],
			Compression: compression,
			CreatedAt:   time.UnixMilli(int64(createdAtMillis)).UTC(),
		},
	}, nil
}

// Open opens the stream file at path. Closing the reader closes the
// file.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stream file: %w", err)
	}
	reader, err := NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	reader.closer = file
	return reader, nil
}

// Header returns the stream's validated header.
func (r *Reader) Header() Header {
	return r.header
}

// NextRaw returns the next frame's uncompressed, digest-verified
// payload. At the clean end of the stream it returns io.EOF; a file
// that ends inside a frame returns an error wrapping
// io.ErrUnexpectedEOF instead, so truncation is never mistaken for
// completion.
func (r *Reader) NextRaw() ([]byte, error) {
	var header [frameHeaderSize]byte
	if _, err := io.ReadFull(r.source, header[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading frame %d header: %w", r.frame, err)
	}

	tag := CompressionTag(header[0])
	if tag > CompressionZstd {
		return nil, fmt.Errorf("frame %d has unsupported compression tag %d", r.frame, tag)
	}
	if header[1] != 0 || header[2] != 0 || header[3] != 0 {
		return nil, fmt.Errorf("frame %d has non-zero reserved bytes: %x", r.frame, header[1:4])
	}
	storedLength := binary.LittleEndian.Uint32(header[4:])
	uncompressedSize := binary.LittleEndian.Uint32(header[8:])
	if storedLength > maxFramePayload || uncompressedSize > maxFramePayload {
		return nil, fmt.Errorf("frame %d claims %d/%d bytes, limit is %d",
			r.frame, storedLength, uncompressedSize, maxFramePayload)
	}
	var digest Digest
	copy(digest[:], header[12:])

	stored := make([]byte, storedLength)
	if _, err := io.ReadFull(r.source, stored); err != nil {
		return nil, fmt.Errorf("reading frame %d payload: %w", r.frame, err)
	}

	payload, err := decompressPayload(stored, tag, int(uncompressedSize))
	if err != nil {
		return nil, fmt.Errorf("frame %d: %w", r.frame, err)
	}
	if got := DigestPayload(payload); got != digest {
		return nil, fmt.Errorf("frame %d digest mismatch: stored %s, computed %s",
			r.frame, FormatDigest(digest), FormatDigest(got))
	}

	r.frame++
	return payload, nil
}

// Next decodes the next frame into a wire event. It returns io.EOF
// at the clean end of the stream.
func (r *Reader) Next() (*eventstream.WireEvent, error) {
	payload, err := r.NextRaw()
	if err != nil {
		return nil, err
	}
	var event eventstream.WireEvent
	if err := codec.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decoding frame %d: %w", r.frame-1, err)
	}
	return &event, nil
}

// Close closes the underlying file when the reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	if err := r.closer.Close(); err != nil {
		return fmt.Errorf("closing stream file: %w", err)
	}
	return nil
}
