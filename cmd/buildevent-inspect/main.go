// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/buildevent/lib/codec"
	"github.com/bureau-foundation/buildevent/lib/eventstream"
	"github.com/bureau-foundation/buildevent/lib/streamfile"
	"github.com/bureau-foundation/buildevent/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options selects the inspector's output mode.
type options struct {
	jsonOutput bool
	diagnose   bool
}

func run() error {
	var opts options
	var configPath string

	flagSet := pflag.NewFlagSet("buildevent-inspect", pflag.ContinueOnError)
	flagSet.BoolVar(&opts.jsonOutput, "json", false, "print one JSON object per event")
	flagSet.BoolVar(&opts.diagnose, "diagnose", false, "print raw frames in CBOR diagnostic notation")
	flagSet.StringVar(&configPath, "config", "", "read the stream path from this writer configuration")

	// Handle --version before flag parsing to match other buildevent
	// binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("buildevent-inspect %s\n", version.Info())
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	path, err := resolveStreamPath(flagSet.Args(), configPath)
	if err != nil {
		return err
	}
	return inspect(path, opts, os.Stdout)
}

// resolveStreamPath picks the stream file from the positional
// argument or the writer configuration. Exactly one source must be
// given.
func resolveStreamPath(args []string, configPath string) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("unexpected argument: %s", args[1])
	case len(args) == 1 && configPath != "":
		return "", fmt.Errorf("both a stream file and --config given; use one")
	case len(args) == 1:
		return args[0], nil
	case configPath != "":
		config, err := streamfile.LoadConfig(configPath)
		if err != nil {
			return "", err
		}
		return config.Path, nil
	default:
		return "", fmt.Errorf("no stream file given (pass a path or --config)")
	}
}

func inspect(path string, opts options, out io.Writer) error {
	reader, err := streamfile.Open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	summary := !opts.jsonOutput && !opts.diagnose
	if summary {
		header := reader.Header()
		fmt.Fprintf(out, "stream: version %d, %s compression, created %s\n",
			header.Version, header.Compression, header.CreatedAt.Format(time.RFC3339))
	}

	encoder := json.NewEncoder(out)
	count := 0
	for {
		if opts.diagnose {
			payload, err := reader.NextRaw()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			notation, err := codec.Diagnose(payload)
			if err != nil {
				return fmt.Errorf("frame %d: %w", count, err)
			}
			fmt.Fprintln(out, notation)
		} else {
			event, err := reader.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				if err := encoder.Encode(event); err != nil {
					return fmt.Errorf("frame %d: %w", count, err)
				}
			} else {
				fmt.Fprintln(out, formatEvent(event))
			}
		}
		count++
	}

	if summary {
		fmt.Fprintf(out, "%d events\n", count)
	}
	return nil
}

// formatEvent renders one summary line. Group events show their
// payload shape; anything else shows its identity and child count.
func formatEvent(event *eventstream.WireEvent) string {
	if event.NamedSet != nil {
		return fmt.Sprintf("group %s: %d files, %d file set refs",
			event.NamedSet.Name, len(event.NamedSet.Files), len(event.NamedSet.FileSetRefs))
	}
	if len(event.Children) > 0 {
		return fmt.Sprintf("event %s: %d children", event.ID, len(event.Children))
	}
	return fmt.Sprintf("event %s", event.ID)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `buildevent-inspect — print the contents of a build event stream file.

Usage:
  buildevent-inspect [flags] <stream-file>
  buildevent-inspect [flags] --config <writer-config.yaml>

Flags:
%s
Examples:
  # Summarize a stream
  buildevent-inspect /var/log/build/events.bes

  # Dump full events as JSON lines
  buildevent-inspect --json events.bes

  # Show raw frames without decoding the wire schema
  buildevent-inspect --diagnose events.bes
`, flagSet.FlagUsages())
}
