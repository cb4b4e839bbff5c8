// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package streamfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the stream file section a build driver embeds in its
// configuration: where to write the stream and how to compress it.
// There is no discovery and no fallback path; an empty Path is a
// configuration error.
type Config struct {
	// Path is the stream file location.
	Path string `yaml:"path"`

	// Compression names the frame compression: "none", "lz4", or
	// "zstd". Empty selects zstd.
	Compression string `yaml:"compression"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &config, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("missing stream file path")
	}
	if c.Compression != "" {
		if _, err := ParseCompressionTag(c.Compression); err != nil {
			return err
		}
	}
	return nil
}

// WriterOptions converts the configuration into writer options.
func (c *Config) WriterOptions() (WriterOptions, error) {
	if err := c.Validate(); err != nil {
		return WriterOptions{}, err
	}
	compression := CompressionZstd
	if c.Compression != "" {
		tag, err := ParseCompressionTag(c.Compression)
		if err != nil {
			return WriterOptions{}, err
		}
		compression = tag
	}
	return WriterOptions{Compression: compression}, nil
}

// Create opens the configured stream file for writing.
func (c *Config) Create() (*Writer, error) {
	options, err := c.WriterOptions()
	if err != nil {
		return nil, err
	}
	return Create(c.Path, options)
}
