// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package node

import (
	"fmt"
	"math"
)

// RefKey is the mapping key that marks a reference node.
const RefKey = "_ref"

// Kind discriminates the variants of a [Node].
type Kind uint8

const (
	// KindScalar is a null, bool, string, int64 or float64 leaf. The
	// zero Node is a null scalar.
	KindScalar Kind = iota
	// KindReference points at another item by path.
	KindReference
	// KindRecord is an ordered mapping.
	KindRecord
	// KindArray is an ordered list.
	KindArray
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindReference:
		return "reference"
	case KindRecord:
		return "record"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Node is one value in a content tree.
type Node struct {
	kind   Kind
	scalar any
	target string
	record *Record
	items  []Node
}

// Null returns the null scalar.
func Null() Node {
	return Node{}
}

// Scalar wraps a leaf value. Integer types are widened to int64 and
// float32 to float64 so that equal values always compare equal.
// Unsigned values that overflow int64 are stored as float64.
func Scalar(value any) Node {
	return Node{kind: KindScalar, scalar: normalizeScalar(value)}
}

// Reference builds a reference to target. fields holds inline copies
// of the target's content and may be nil.
func Reference(target string, fields *Record) Node {
	if fields != nil && fields.Len() == 0 {
		fields = nil
	}
	return Node{kind: KindReference, target: target, record: fields}
}

// Object wraps a record. A nil record becomes an empty one.
func Object(record *Record) Node {
	if record == nil {
		record = NewRecord()
	}
	return Node{kind: KindRecord, record: record}
}

// Array wraps a list of nodes.
func Array(items ...Node) Node {
	if items == nil {
		items = []Node{}
	}
	return Node{kind: KindArray, items: items}
}

// RecordOrReference returns a reference node when record carries a
// string [RefKey], and an object node otherwise. The remaining keys of
// a reference mapping become its inline fields. record is not
// modified.
func RecordOrReference(record *Record) Node {
	if record == nil {
		return Object(nil)
	}
	value, ok := record.Get(RefKey)
	if !ok || value.kind != KindScalar {
		return Object(record)
	}
	target, ok := value.scalar.(string)
	if !ok {
		return Object(record)
	}
	fields := record.Copy()
	fields.Delete(RefKey)
	return Reference(target, fields)
}

// Kind reports the variant of n.
func (n Node) Kind() Kind {
	return n.kind
}

// IsNull reports whether n is the null scalar.
func (n Node) IsNull() bool {
	return n.kind == KindScalar && n.scalar == nil
}

// Value returns the leaf value of a scalar, or nil for other kinds.
func (n Node) Value() any {
	if n.kind != KindScalar {
		return nil
	}
	return n.scalar
}

// Text returns the value of a string scalar.
func (n Node) Text() (string, bool) {
	if n.kind != KindScalar {
		return "", false
	}
	value, ok := n.scalar.(string)
	return value, ok
}

// Target returns the path a reference points at.
func (n Node) Target() string {
	if n.kind != KindReference {
		return ""
	}
	return n.target
}

// Fields returns the inline fields of a reference, or nil.
func (n Node) Fields() *Record {
	if n.kind != KindReference {
		return nil
	}
	return n.record
}

// Record returns the mapping of an object node, or nil.
func (n Node) Record() *Record {
	if n.kind != KindRecord {
		return nil
	}
	return n.record
}

// Items returns the elements of an array node, or nil.
func (n Node) Items() []Node {
	if n.kind != KindArray {
		return nil
	}
	return n.items
}

// AsRecord returns the mapping form of an object or reference node.
// For a reference the result starts with [RefKey] followed by the
// inline fields. ok is false for scalars and arrays.
func (n Node) AsRecord() (*Record, bool) {
	switch n.kind {
	case KindRecord:
		return n.record, true
	case KindReference:
		record := NewRecord()
		record.Set(RefKey, Scalar(n.target))
		if n.record != nil {
			for key, value := range n.record.All() {
				record.Set(key, value)
			}
		}
		return record, true
	default:
		return nil, false
	}
}

func normalizeScalar(value any) any {
	switch v := value.(type) {
	case nil, bool, string, int64, float64:
		return v
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint:
		return widenUnsigned(uint64(v))
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return widenUnsigned(v)
	case float32:
		return float64(v)
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func widenUnsigned(value uint64) any {
	if value > math.MaxInt64 {
		return float64(value)
	}
	return int64(value)
}
