// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package eventstream

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/tidwall/jsonc"
)

// PathConverter maps a physical file path to the URI embedded in a
// file record. ok=false means the converter declines the path; the
// record is then silently omitted from the event, which is the
// expected outcome for files a stream does not serve, not an error.
type PathConverter func(path string) (uri string, ok bool)

// FileURIConverter converts absolute paths to file:// URIs. It
// declines relative paths: a file:// URI without an absolute path
// would be meaningless to consumers on any machine.
func FileURIConverter(p string) (string, bool) {
	if !path.IsAbs(p) {
		return "", false
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String(), true
}

// ConverterRule rewrites one path prefix to a URI prefix.
type ConverterRule struct {
	// Prefix is the physical path prefix to match.
	Prefix string `json:"prefix"`

	// Replacement is the URI prefix substituted for a matched
	// Prefix. May be empty to strip the prefix entirely.
	Replacement string `json:"replacement"`
}

// converterRuleFile is the on-disk shape of an authored rule file.
type converterRuleFile struct {
	Rules []ConverterRule `json:"rules"`
}

// ParseConverterRules strips JSONC comments and trailing commas from
// data, then unmarshals the rule list. Rule files are authored by
// operators, so the format allows // line comments, /* block
// comments */, and trailing commas.
func ParseConverterRules(data []byte) ([]ConverterRule, error) {
	stripped := jsonc.ToJSON(data)

	var file converterRuleFile
	if err := json.Unmarshal(stripped, &file); err != nil {
		return nil, fmt.Errorf("parsing converter rules: %w", err)
	}
	for i, rule := range file.Rules {
		if rule.Prefix == "" {
			return nil, fmt.Errorf("converter rule %d: empty prefix", i)
		}
	}
	return file.Rules, nil
}

// LoadConverterRules reads a JSONC rule file from disk and parses it.
func LoadConverterRules(path string) ([]ConverterRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	rules, err := ParseConverterRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// PrefixConverter builds a converter from rewrite rules, applied
// first match wins. Paths matching no rule are declined.
func PrefixConverter(rules []ConverterRule) PathConverter {
	copied := make([]ConverterRule, len(rules))
	copy(copied, rules)
	return func(p string) (string, bool) {
		for _, rule := range copied {
			if strings.HasPrefix(p, rule.Prefix) {
				return rule.Replacement + strings.TrimPrefix(p, rule.Prefix), true
			}
		}
		return "", false
	}
}
