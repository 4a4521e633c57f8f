// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package reference

import (
	"slices"
	"testing"

	"github.com/claycms/claycli/lib/node"
	"github.com/claycms/claycli/lib/testutil"
)

func namespace(t *testing.T) Sections {
	t.Helper()
	return Sections{
		Components: testutil.Record(t, `
			paragraph:
			  text: empty
			  instances:
			    bar:
			      text: bar text
			meta-title:
			  title: Default
			  child:
			    _ref: /_components/paragraph
		`),
		Layouts: testutil.Record(t, `
			index:
			  head: [1, 2]
			side_components:
			  instances:
			    x:
			      text: hello
		`),
	}
}

func TestSections_Lookup(t *testing.T) {
	sections := namespace(t)
	tests := []struct {
		target string
		found  bool
		keys   []string
	}{
		{"/_components/paragraph", true, []string{"text"}},
		{"/_components/paragraph/instances/bar", true, []string{"text"}},
		{"example.com/_components/paragraph", true, []string{"text"}},
		{"/_layouts/index", true, []string{"head"}},
		{"/_layouts/side_components/instances/x", true, []string{"text"}},
		{"example.com/_layouts/side_components/instances/x", true, []string{"text"}},
		{"site_layouts/_components/paragraph", true, []string{"text"}},
		{"/_components/paragraph/instances/missing", false, nil},
		{"/_components/missing", false, nil},
		{"/_components/paragraph/meta", false, nil},
		{"/_pages/index", false, nil},
		{"not a path", false, nil},
	}
	for _, test := range tests {
		t.Run(test.target, func(t *testing.T) {
			fields, found := sections.Lookup(test.target)
			if found != test.found {
				t.Fatalf("found = %v, want %v", found, test.found)
			}
			if found && !slices.Equal(fields.Keys(), test.keys) {
				t.Errorf("keys = %v, want %v", fields.Keys(), test.keys)
			}
		})
	}

	if _, ok := sections.Components.Get("paragraph"); !ok {
		t.Fatal("lookup removed the item")
	}
	paragraph, _ := sections.Components.Get("paragraph")
	if !paragraph.Record().Has(InstancesKey) {
		t.Error("lookup stripped instances from the namespace itself")
	}
}

func TestResolve_CopiesTargetFieldsOneLevel(t *testing.T) {
	tree := testutil.YAML(t, `
		content:
		  - _ref: /_components/paragraph
		  - _ref: /_components/meta-title
		    stale: value
		  - _ref: /_components/unknown
		    text: inline
		plain: kept
	`)
	var misses []string
	resolved := Resolve(tree, namespace(t), func(target string) { misses = append(misses, target) })

	want := testutil.YAML(t, `
		content:
		  - _ref: /_components/paragraph
		    text: empty
		  - _ref: /_components/meta-title
		    title: Default
		    child:
		      _ref: /_components/paragraph
		  - _ref: /_components/unknown
		plain: kept
	`)
	if !node.Equal(resolved, want) {
		got, _ := resolved.MarshalJSON()
		t.Errorf("resolved = %s", got)
	}
	if !slices.Equal(misses, []string{"/_components/unknown"}) {
		t.Errorf("misses = %v", misses)
	}

	// The input tree is not modified.
	content, _ := tree.Record().Get("content")
	if content.Items()[0].Fields() != nil {
		t.Error("Resolve mutated its input")
	}
}

func TestResolve_NilMissCallback(t *testing.T) {
	tree := testutil.YAML(t, `{_ref: /_layouts/absent}`)
	resolved := Resolve(tree, Sections{}, nil)
	if resolved.Kind() != node.KindReference || resolved.Fields() != nil {
		t.Errorf("resolved = %s with fields %v", resolved.Kind(), resolved.Fields().Keys())
	}
}

func TestStrip(t *testing.T) {
	tree := testutil.YAML(t, `
		child:
		  _ref: /_components/paragraph
		  text: empty
		  nested:
		    _ref: /_components/other
		list:
		  - _ref: /_components/a
		    a: b
		  - 3
	`)
	want := testutil.YAML(t, `
		child:
		  _ref: /_components/paragraph
		list:
		  - _ref: /_components/a
		  - 3
	`)
	if stripped := Strip(tree); !node.Equal(stripped, want) {
		got, _ := stripped.MarshalJSON()
		t.Errorf("stripped = %s", got)
	}
}
