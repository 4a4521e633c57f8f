// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/claycms/claycli/lib/node"
	"github.com/claycms/claycli/lib/sitepath"
)

// Entry is one write of Value to Path.
type Entry struct {
	Path  string
	Value node.Node
}

// NewEntry builds an entry for a decoded location.
func NewEntry(location sitepath.Location, value node.Node) Entry {
	return Entry{Path: location.String(), Value: value}
}

// Location decodes the entry's path.
func (e Entry) Location() (sitepath.Location, error) {
	return sitepath.Parse(e.Path)
}

// Record returns the single-key mapping form {path: value}.
func (e Entry) Record() *node.Record {
	record := node.NewRecord()
	record.Set(e.Path, e.Value)
	return record
}

// EntryFromNode reads the mapping form of an entry. The node must be a
// record with exactly one key.
func EntryFromNode(tree node.Node) (Entry, error) {
	record := tree.Record()
	if record == nil {
		return Entry{}, fmt.Errorf("dispatch entry must be a mapping, got %s", tree.Kind())
	}
	if record.Len() != 1 {
		return Entry{}, fmt.Errorf("dispatch entry must have exactly one path, got %d keys", record.Len())
	}
	for path, value := range record.All() {
		return Entry{Path: path, Value: value}, nil
	}
	panic("unreachable")
}

// MarshalJSON writes the entry as {"path": value}.
func (e Entry) MarshalJSON() ([]byte, error) {
	return node.Object(e.Record()).MarshalJSON()
}

// UnmarshalJSON reads the {"path": value} form.
func (e *Entry) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	tree, err := node.DecodeJSON(decoder)
	if err != nil {
		return err
	}
	entry, err := EntryFromNode(tree)
	if err != nil {
		return err
	}
	*e = entry
	return nil
}
