// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"iter"
	"testing"

	"github.com/claycms/claycli/lib/bootstrap"
	"github.com/claycms/claycli/lib/node"
	"github.com/claycms/claycli/lib/testutil"
)

// documents returns a sequence over the YAML sources, one document
// each.
func documents(t *testing.T, sources ...string) iter.Seq2[*bootstrap.Document, error] {
	t.Helper()
	parsed := make([]*bootstrap.Document, len(sources))
	for index, source := range sources {
		document, err := bootstrap.FromRecord(testutil.Record(t, source))
		if err != nil {
			t.Fatalf("fixture %d: %v", index, err)
		}
		parsed[index] = document
	}
	return func(yield func(*bootstrap.Document, error) bool) {
		for _, document := range parsed {
			if !yield(document, nil) {
				return
			}
		}
	}
}

// entries parses a YAML list of single-key mappings.
func entries(t *testing.T, source string) []Entry {
	t.Helper()
	tree := testutil.YAML(t, source)
	if tree.Kind() != node.KindArray {
		t.Fatalf("entry fixture is a %s, want an array", tree.Kind())
	}
	parsed := make([]Entry, len(tree.Items()))
	for index, item := range tree.Items() {
		entry, err := EntryFromNode(item)
		if err != nil {
			t.Fatalf("entry fixture %d: %v", index, err)
		}
		parsed[index] = entry
	}
	return parsed
}

func sequence(values []Entry) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for _, entry := range values {
			if !yield(entry, nil) {
				return
			}
		}
	}
}

func assertEntries(t *testing.T, got, want []Entry) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("got %d entries, want %d", len(got), len(want))
		for _, entry := range got {
			data, _ := entry.MarshalJSON()
			t.Logf("  %s", data)
		}
		return
	}
	for index := range want {
		if got[index].Path != want[index].Path {
			t.Errorf("entry %d path = %q, want %q", index, got[index].Path, want[index].Path)
			continue
		}
		if !node.Equal(got[index].Value, want[index].Value) {
			gotJSON, _ := got[index].MarshalJSON()
			wantJSON, _ := want[index].MarshalJSON()
			t.Errorf("entry %d:\n got  %s\n want %s", index, gotJSON, wantJSON)
		}
	}
}

func assertDocument(t *testing.T, got *bootstrap.Document, source string) {
	t.Helper()
	want, err := bootstrap.FromRecord(testutil.Record(t, source))
	if err != nil {
		t.Fatalf("expected fixture: %v", err)
	}
	if !bootstrap.Equal(got, want) {
		gotJSON, _ := node.Object(got.Record()).MarshalJSON()
		wantJSON, _ := node.Object(want.Record()).MarshalJSON()
		t.Errorf("document mismatch:\n got  %s\n want %s", gotJSON, wantJSON)
	}
}

const bootstrapComponents = `
_components:
  article:
    title: Empty
    content:
      - _ref: /_components/paragraph
    instances:
      foo:
        title: My Article
        content:
          - _ref: /_components/paragraph/instances/bar
  paragraph:
    text: empty
    instances:
      bar:
        text: lorem ipsum
  image:
    url: domain.com/image
`

const bootstrapLayouts = `
_layouts:
  index:
    instances:
      foo:
        head:
          - _ref: /_components/meta-title/instances/bar
        main: main
        meta: {title: Lorem Ipsum Layout}
  article:
    head:
      - _ref: /_components/meta-title
    main: main
  tags:
    instances:
      first:
        main: main
_components:
  meta-title:
    text: empty
    instances:
      bar:
        text: lorem ipsum
`

const bootstrapPages = `
_pages:
  foo:
    layout: /_components/layout/instances/bar
    main: [/_components/foo/instances/bar]
    meta: {title: Foo}
  /bar:
    layout: /_components/layout/instances/bar
    main: [/_components/foo/instances/bar]
    url: http://google.com
`

const bootstrapUsers = `
_users:
  - {username: foo, provider: google, auth: admin}
  - {username: nobody, provider: google, auth: write}
`

const bootstrapArbitrary = `
_lists:
  a: [1, 2, 3]
_uris:
  /: /_pages/index
`
