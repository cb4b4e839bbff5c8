// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventstream

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFileURIConverter(t *testing.T) {
	uri, ok := FileURIConverter("/exec/out/bin/app")
	if !ok {
		t.Fatal("FileURIConverter declined an absolute path")
	}
	if uri != "file:///exec/out/bin/app" {
		t.Errorf("uri = %q, want %q", uri, "file:///exec/out/bin/app")
	}
}

func TestFileURIConverterDeclinesRelativePaths(t *testing.T) {
	if _, ok := FileURIConverter("out/bin/app"); ok {
		t.Error("FileURIConverter accepted a relative path")
	}
}

func TestPrefixConverterFirstMatchWins(t *testing.T) {
	convert := PrefixConverter([]ConverterRule{
		{Prefix: "/exec/out/special/", Replacement: "https://cache.example.com/special/"},
		{Prefix: "/exec/out/", Replacement: "https://cache.example.com/"},
	})

	uri, ok := convert("/exec/out/special/bin")
	if !ok {
		t.Fatal("converter declined a matching path")
	}
	if want := "https://cache.example.com/special/bin"; uri != want {
		t.Errorf("uri = %q, want %q", uri, want)
	}

	uri, ok = convert("/exec/out/other")
	if !ok {
		t.Fatal("converter declined a matching path")
	}
	if want := "https://cache.example.com/other"; uri != want {
		t.Errorf("uri = %q, want %q", uri, want)
	}
}

func TestPrefixConverterDeclinesUnmatched(t *testing.T) {
	convert := PrefixConverter([]ConverterRule{
		{Prefix: "/exec/out/", Replacement: "https://cache.example.com/"},
	})
	if _, ok := convert("/tmp/scratch"); ok {
		t.Error("converter accepted a path matching no rule")
	}
}

func TestParseConverterRules(t *testing.T) {
	data := []byte(`{
		// Serve action outputs from the shared cache.
		"rules": [
			{"prefix": "/exec/out/", "replacement": "https://cache.example.com/"},
			{"prefix": "/exec/logs/", "replacement": ""}, // strip entirely
		],
	}`)

	rules, err := ParseConverterRules(data)
	if err != nil {
		t.Fatalf("ParseConverterRules failed: %v", err)
	}
	want := []ConverterRule{
		{Prefix: "/exec/out/", Replacement: "https://cache.example.com/"},
		{Prefix: "/exec/logs/", Replacement: ""},
	}
	if diff := cmp.Diff(want, rules); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConverterRulesRejectsEmptyPrefix(t *testing.T) {
	_, err := ParseConverterRules([]byte(`{"rules": [{"prefix": "", "replacement": "x"}]}`))
	if err == nil {
		t.Fatal("ParseConverterRules accepted an empty prefix")
	}
	if !strings.Contains(err.Error(), "empty prefix") {
		t.Errorf("error %q does not mention the empty prefix", err)
	}
}

func TestParseConverterRulesRejectsMalformedInput(t *testing.T) {
	if _, err := ParseConverterRules([]byte(`{"rules": [`)); err == nil {
		t.Fatal("ParseConverterRules accepted malformed input")
	}
}

func TestLoadConverterRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.jsonc")
	content := `{
		"rules": [
			{"prefix": "/exec/out/", "replacement": "https://cache.example.com/"},
		],
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing rule file: %v", err)
	}

	rules, err := LoadConverterRules(path)
	if err != nil {
		t.Fatalf("LoadConverterRules failed: %v", err)
	}
	if len(rules) != 1 || rules[0].Prefix != "/exec/out/" {
		t.Errorf("rules = %+v, want one rule for /exec/out/", rules)
	}
}

func TestLoadConverterRulesMissingFile(t *testing.T) {
	_, err := LoadConverterRules(filepath.Join(t.TempDir(), "absent.jsonc"))
	if err == nil {
		t.Fatal("LoadConverterRules succeeded on a missing file")
	}
}
