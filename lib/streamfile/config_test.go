// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package streamfile

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stream.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, "path: /var/log/build/events.bes\ncompression: lz4\n")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	want := &Config{Path: "/var/log/build/events.bes", Compression: "lz4"}
	if diff := cmp.Diff(want, config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing path", "compression: zstd\n"},
		{"unknown compression", "path: /tmp/events.bes\ncompression: gzip\n"},
		{"malformed yaml", "path: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("LoadConfig accepted %q", tt.content)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("LoadConfig succeeded on a missing file")
		}
	})
}

func TestConfigWriterOptions(t *testing.T) {
	tests := []struct {
		name        string
		compression string
		want        CompressionTag
	}{
		{"default is zstd", "", CompressionZstd},
		{"explicit none", "none", CompressionNone},
		{"explicit lz4", "lz4", CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{Path: "/tmp/events.bes", Compression: tt.compression}
			options, err := config.WriterOptions()
			if err != nil {
				t.Fatalf("WriterOptions failed: %v", err)
			}
			if options.Compression != tt.want {
				t.Errorf("Compression = %s, want %s", options.Compression, tt.want)
			}
		})
	}
}

func TestConfigCreate(t *testing.T) {
	config := &Config{Path: filepath.Join(t.TempDir(), "events.bes")}

	writer, err := config.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	events := sampleEvents(2)
	for _, event := range events {
		if err := writer.Write(event); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reader, err := Open(config.Path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer reader.Close()

	if got := reader.Header().Compression; got != CompressionZstd {
		t.Errorf("header compression = %s, want %s (config default)", got, CompressionZstd)
	}
	got := readStream(t, reader)
	if diff := cmp.Diff(events, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("Next after end = %v, want io.EOF", err)
	}
}
