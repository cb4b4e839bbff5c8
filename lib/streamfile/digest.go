// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package streamfile

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is the 32-byte BLAKE3 digest of one frame's uncompressed
// payload.
type Digest [32]byte

// frameDomainKey is the BLAKE3 key for frame digests. Domain
// separation keeps frame digests distinct from any other BLAKE3 use
// of the same bytes. The value is the ASCII encoding of the domain
// name, zero-padded to 32 bytes, so the key is readable in hex dumps
// without weakening the keyed mode.
var frameDomainKey = [32]byte{
	'b', 'u', 'i', 'l', 'd', 'e', 'v', 'e', 'n', 't', '.', 's', 't', 'r', 'e', 'a',
	'm', '.', 'f', 'r', 'a', 'm', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// DigestPayload computes the frame-domain digest of an uncompressed
// payload. Digests are always computed before compression, so a
// frame's identity does not depend on the compression setting it was
// written under.
func DigestPayload(payload []byte) Digest {
	hasher, err := blake3.NewKeyed(frameDomainKey[:])
	if err != nil {
		panic("streamfile: BLAKE3 keyed hasher initialization failed: " + err.Error())
	}
	hasher.Write(payload)

	var digest Digest
	hasher.Sum(digest[:0])
	return digest
}

// FormatDigest returns the lowercase hex representation of a digest.
func FormatDigest(digest Digest) string {
	return hex.EncodeToString(digest[:])
}
