// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// buildevent-inspect reads a build event stream file and prints its
// contents. The default output is one summary line per event; --json
// switches to one JSON object per line, and --diagnose prints each
// frame in CBOR diagnostic notation without decoding it into the wire
// schema, which is useful when a stream was written by a newer tool
// version.
//
// The stream file is named either by a positional path or by --config
// pointing at the YAML configuration the writer ran with, in which
// case the configured stream path is inspected.
//
// Every frame's digest is verified while reading. A corrupt or
// truncated stream stops inspection with an error naming the frame,
// after the intact prefix has already been printed.
package main
