// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/claycms/claycli/lib/node"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// YAML parses source into a content tree. Common leading indentation is
// removed first so fixtures can be indented with the test code.
//
//	tree := testutil.YAML(t, `
//		_components:
//		  paragraph: {text: empty}
//	`)
func YAML(t TB, source string) node.Node {
	t.Helper()
	tree, err := node.FromYAML([]byte(dedent(source)))
	if err != nil {
		t.Fatalf("parsing YAML fixture: %v\n%s", err, source)
	}
	return tree
}

// Record parses source and requires a mapping at the root.
func Record(t TB, source string) *node.Record {
	t.Helper()
	tree := YAML(t, source)
	record := tree.Record()
	if record == nil {
		t.Fatalf("YAML fixture is a %s, want a record:\n%s", tree.Kind(), source)
	}
	return record
}

// Collect drains seq. It returns the values yielded before the first
// error and that error; iteration stops at the error.
func Collect[V any](seq iter.Seq2[V, error]) ([]V, error) {
	var values []V
	for value, err := range seq {
		if err != nil {
			return values, err
		}
		values = append(values, value)
	}
	return values, nil
}

// WriteFile writes content to name inside a fresh temporary directory
// and returns the full path.
func WriteFile(t interface {
	TB
	TempDir() string
}, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

// dedent strips the indentation shared by all non-blank lines. Tabs
// are expanded to two spaces at the start of lines so that fixtures
// indented with tabs still parse as YAML.
func dedent(source string) string {
	lines := strings.Split(source, "\n")
	for index, line := range lines {
		trimmed := strings.TrimLeft(line, "\t")
		lines[index] = strings.Repeat("  ", len(line)-len(trimmed)) + trimmed
	}

	margin := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " "))
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin <= 0 {
		return strings.Join(lines, "\n")
	}
	for index, line := range lines {
		if len(line) >= margin {
			lines[index] = line[margin:]
		} else {
			lines[index] = strings.TrimLeft(line, " ")
		}
	}
	return strings.Join(lines, "\n")
}
