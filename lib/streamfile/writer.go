// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package streamfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/buildevent/lib/clock"
	"github.com/bureau-foundation/buildevent/lib/codec"
	"github.com/bureau-foundation/buildevent/lib/eventstream"
)

// WriterOptions configures a stream file writer.
type WriterOptions struct {
	// Compression is the requested frame compression. The zero
	// value is CompressionNone; [Config] defaults to zstd for
	// streams configured from files.
	Compression CompressionTag

	// Clock supplies the header creation time. Nil selects the
	// real clock.
	Clock clock.Clock
}

// Writer writes a stream file: header first, then one frame per
// event. It implements eventstream.Sink, so it plugs directly into
// an eventstream.Streamer, which serializes Write calls; a Writer
// performs no locking of its own.
type Writer struct {
	destination io.Writer
	closer      io.Closer
	compression CompressionTag
	eventCount  int
}

// NewWriter writes the stream header to destination and returns a
// writer appending frames to it.
func NewWriter(destination io.Writer, options WriterOptions) (*Writer, error) {
	compression := options.Compression
	switch compression {
	case CompressionNone, CompressionLZ4, CompressionZstd:
	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", compression)
	}
	streamClock := options.Clock
	if streamClock == nil {
		streamClock = clock.Real()
	}

	writer := &Writer{destination: destination, compression: compression}
	if err := writer.writeHeader(streamClock.Now().UnixMilli()); err != nil {
		return nil, err
	}
	return writer, nil
}

// Create creates or truncates the file at path and returns a writer
// on it. Closing the writer closes the file.
func Create(path string, options WriterOptions) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating stream file: %w", err)
	}
	writer, err := NewWriter(file, options)
	if err != nil {
		file.Close()
		return nil, err
	}
	writer.closer = file
	return writer, nil
}

func (w *Writer) writeHeader(createdAtMillis int64) error {
	var header [headerSize]byte
	copy(header[:8], streamMagic[:])
	header[8] = byte(w.compression)
	// Bytes 9-11 are reserved and stay zero.
	binary.LittleEndian.PutUint64(header[12:], uint64(createdAtMillis))

	if _, err := w.destination.Write(header[:]); err != nil {
		return fmt.Errorf("writing stream header: %w", err)
	}
	return nil
}

// Write implements eventstream.Sink: it encodes the event to CBOR
// and appends it as one frame.
func (w *Writer) Write(event *eventstream.WireEvent) error {
	payload, err := codec.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event %s: %w", event.ID, err)
	}
	return w.writeFrame(payload)
}

// writeFrame appends one frame holding the uncompressed payload. The
// frame records the digest of the payload before compression;
// incompressible payloads fall back to CompressionNone for this
// frame only.
func (w *Writer) writeFrame(payload []byte) error {
	if len(payload) > maxFramePayload {
		return fmt.Errorf("frame payload is %d bytes, limit is %d", len(payload), maxFramePayload)
	}
	digest := DigestPayload(payload)

	tag := w.compression
	stored, err := compressPayload(payload, tag)
	if err != nil {
		if !isIncompressible(err) {
			return fmt.Errorf("compressing frame %d: %w", w.eventCount, err)
		}
		tag = CompressionNone
		stored = payload
	}

	var header [frameHeaderSize]byte
	header[0] = byte(tag)
	// Bytes 1-3 are reserved and stay zero.
	binary.LittleEndian.PutUint32(header[4:], uint32(len(stored)))
	binary.LittleEndian.PutUint32(header[8:], uint32(len(payload)))
	copy(header[12:], digest[:])

	if _, err := w.destination.Write(header[:]); err != nil {
		return fmt.Errorf("writing frame %d header: %w", w.eventCount, err)
	}
	if _, err := w.destination.Write(stored); err != nil {
		return fmt.Errorf("writing frame %d payload: %w", w.eventCount, err)
	}
	w.eventCount++
	return nil
}

// EventCount returns the number of frames written so far.
func (w *Writer) EventCount() int {
	return w.eventCount
}

// Close closes the underlying file when the writer owns one. Writers
// over plain io.Writer values close nothing.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	if err := w.closer.Close(); err != nil {
		return fmt.Errorf("closing stream file: %w", err)
	}
	return nil
}
