// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"fmt"

	"github.com/claycms/claycli/lib/node"
	"github.com/claycms/claycli/lib/reference"
	"github.com/claycms/claycli/lib/sitepath"
)

// Document is one bootstrap document. A nil section is absent; an empty
// one is present without content.
type Document struct {
	Components *node.Record
	Layouts    *node.Record
	Pages      *node.Record
	// Users holds the raw user values in document order. They are
	// validated on conversion.
	Users []node.Node
	// Extra holds the remaining top-level keys in document order.
	Extra *node.Record
}

// ShapeError reports a section whose value has the wrong kind.
type ShapeError struct {
	Section string
	Want    string
	Got     node.Kind
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("section %s must be %s, got %s", e.Section, e.Want, e.Got)
}

// FromRecord splits a top-level record into a document. A null
// canonical section counts as empty.
func FromRecord(record *node.Record) (*Document, error) {
	document := &Document{Extra: node.NewRecord()}
	for key, value := range record.All() {
		switch key {
		case sitepath.Components, sitepath.Layouts, sitepath.Pages:
			section, err := sectionRecord(key, value)
			if err != nil {
				return nil, err
			}
			switch key {
			case sitepath.Components:
				document.Components = section
			case sitepath.Layouts:
				document.Layouts = section
			default:
				document.Pages = section
			}
		case sitepath.Users:
			switch {
			case value.IsNull():
				document.Users = []node.Node{}
			case value.Kind() == node.KindArray:
				document.Users = value.Items()
			default:
				return nil, &ShapeError{Section: key, Want: "an array", Got: value.Kind()}
			}
		default:
			document.Extra.Set(key, value)
		}
	}
	return document, nil
}

// FromNode is [FromRecord] for a parsed tree. The root must be a record.
func FromNode(tree node.Node) (*Document, error) {
	if tree.Kind() != node.KindRecord {
		return nil, &ShapeError{Section: "document root", Want: "a record", Got: tree.Kind()}
	}
	return FromRecord(tree.Record())
}

func sectionRecord(key string, value node.Node) (*node.Record, error) {
	if value.IsNull() {
		return node.NewRecord(), nil
	}
	if value.Kind() != node.KindRecord {
		return nil, &ShapeError{Section: key, Want: "a record", Got: value.Kind()}
	}
	return value.Record(), nil
}

// Record assembles the top-level record: canonical sections first, in
// the order components, layouts, pages, users, then the extra keys.
func (d *Document) Record() *node.Record {
	record := node.NewRecord()
	if d.Components != nil {
		record.Set(sitepath.Components, node.Object(d.Components))
	}
	if d.Layouts != nil {
		record.Set(sitepath.Layouts, node.Object(d.Layouts))
	}
	if d.Pages != nil {
		record.Set(sitepath.Pages, node.Object(d.Pages))
	}
	if d.Users != nil {
		record.Set(sitepath.Users, node.Array(d.Users...))
	}
	for key, value := range d.Extra.All() {
		record.Set(key, value)
	}
	return record
}

// Namespace returns the reference namespace formed by the document's
// components and layouts.
func (d *Document) Namespace() reference.Sections {
	return reference.Sections{Components: d.Components, Layouts: d.Layouts}
}

// Empty reports whether the document carries no content at all.
func (d *Document) Empty() bool {
	if d.Components.Len() > 0 || d.Layouts.Len() > 0 || d.Pages.Len() > 0 || len(d.Users) > 0 {
		return false
	}
	for _, value := range d.Extra.All() {
		if !isEmptySection(value) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b carry the same content. Empty and
// absent sections are not distinguished, since neither produces
// dispatch entries.
func Equal(a, b *Document) bool {
	if !node.RecordEqual(a.Components, b.Components) ||
		!node.RecordEqual(a.Layouts, b.Layouts) ||
		!node.RecordEqual(a.Pages, b.Pages) {
		return false
	}
	if len(a.Users) != len(b.Users) {
		return false
	}
	for index := range a.Users {
		if !node.Equal(a.Users[index], b.Users[index]) {
			return false
		}
	}
	return node.RecordEqual(nonEmpty(a.Extra), nonEmpty(b.Extra))
}

func nonEmpty(extra *node.Record) *node.Record {
	kept := node.NewRecord()
	for key, value := range extra.All() {
		if !isEmptySection(value) {
			kept.Set(key, value)
		}
	}
	return kept
}

func isEmptySection(value node.Node) bool {
	return value.IsNull() || (value.Kind() == node.KindRecord && value.Record().Len() == 0)
}
