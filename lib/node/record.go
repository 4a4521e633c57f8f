// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package node

import (
	"iter"
	"slices"
)

// Record is an insertion-ordered mapping of keys to nodes. The zero
// value is not usable; create records with [NewRecord].
type Record struct {
	keys   []string
	values map[string]Node
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]Node)}
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r.values[key]
	return ok
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (Node, bool) {
	if r == nil {
		return Node{}, false
	}
	value, ok := r.values[key]
	return value, ok
}

// Set stores value under key. An existing key keeps its position; a
// new key is appended.
func (r *Record) Set(key string, value Node) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Delete removes key and reports whether it was present.
func (r *Record) Delete(key string) bool {
	if _, ok := r.values[key]; !ok {
		return false
	}
	delete(r.values, key)
	r.keys = slices.DeleteFunc(r.keys, func(existing string) bool { return existing == key })
	return true
}

// Rename moves the value stored under from to the key to, keeping the
// position of from. It does nothing and returns false when from is
// absent or to is already present.
func (r *Record) Rename(from, to string) bool {
	value, ok := r.values[from]
	if !ok {
		return false
	}
	if _, exists := r.values[to]; exists {
		return false
	}
	index := slices.Index(r.keys, from)
	r.keys[index] = to
	delete(r.values, from)
	r.values[to] = value
	return true
}

// Keys returns a copy of the keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.keys)
}

// All iterates over key/value pairs in insertion order.
func (r *Record) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if r == nil {
			return
		}
		for _, key := range r.keys {
			if !yield(key, r.values[key]) {
				return
			}
		}
	}
}

// Copy returns a shallow copy: the key order is duplicated, values are
// shared.
func (r *Record) Copy() *Record {
	clone := &Record{values: make(map[string]Node, r.Len())}
	if r == nil {
		return clone
	}
	clone.keys = slices.Clone(r.keys)
	for key, value := range r.values {
		clone.values[key] = value
	}
	return clone
}

// Without returns a shallow copy with the given keys removed.
func (r *Record) Without(keys ...string) *Record {
	clone := r.Copy()
	for _, key := range keys {
		clone.Delete(key)
	}
	return clone
}
