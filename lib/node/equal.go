// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package node

// Equal reports whether a and b hold the same content. Record key
// order is ignored; array order is not. Integer and float scalars
// compare by numeric value. A reference without inline fields equals a
// reference with an empty field record.
func Equal(a, b Node) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindScalar:
		return scalarEqual(a.scalar, b.scalar)
	case KindReference:
		return a.target == b.target && RecordEqual(a.record, b.record)
	case KindRecord:
		return RecordEqual(a.record, b.record)
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for index := range a.items {
			if !Equal(a.items[index], b.items[index]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// RecordEqual reports whether two records hold the same keys with equal
// values, ignoring order. nil equals an empty record.
func RecordEqual(a, b *Record) bool {
	if a.Len() != b.Len() {
		return false
	}
	for key, value := range a.All() {
		other, ok := b.Get(key)
		if !ok || !Equal(value, other) {
			return false
		}
	}
	return true
}

func scalarEqual(a, b any) bool {
	switch left := a.(type) {
	case int64:
		switch right := b.(type) {
		case int64:
			return left == right
		case float64:
			return float64(left) == right
		}
		return false
	case float64:
		switch right := b.(type) {
		case int64:
			return left == float64(right)
		case float64:
			return left == right
		}
		return false
	default:
		return a == b
	}
}

// Clone returns a deep copy of n. Records and arrays are duplicated;
// scalars are immutable and shared.
func Clone(n Node) Node {
	switch n.kind {
	case KindRecord:
		return Object(CloneRecord(n.record))
	case KindReference:
		return Reference(n.target, CloneRecord(n.record))
	case KindArray:
		items := make([]Node, len(n.items))
		for index, item := range n.items {
			items[index] = Clone(item)
		}
		return Array(items...)
	default:
		return n
	}
}

// CloneRecord returns a deep copy of record. A nil record yields nil.
func CloneRecord(record *Record) *Record {
	if record == nil {
		return nil
	}
	clone := NewRecord()
	for key, value := range record.All() {
		clone.Set(key, Clone(value))
	}
	return clone
}
