// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package node

import (
	"fmt"
	"maps"
	"slices"
)

// ToAny converts n into plain Go values: map[string]any, []any and
// scalars. References become maps carrying [RefKey]. Key order is lost.
func ToAny(n Node) any {
	switch n.kind {
	case KindArray:
		items := make([]any, len(n.items))
		for index, item := range n.items {
			items[index] = ToAny(item)
		}
		return items
	case KindRecord, KindReference:
		record, _ := n.AsRecord()
		mapping := make(map[string]any, record.Len())
		for key, value := range record.All() {
			mapping[key] = ToAny(value)
		}
		return mapping
	default:
		return n.scalar
	}
}

// FromAny converts plain Go values into a node. Go maps carry no order,
// so their keys are sorted to keep the result deterministic. Maps with
// non-string keys (as produced by generic CBOR decoding) have their keys
// formatted with fmt.Sprint.
func FromAny(value any) Node {
	switch v := value.(type) {
	case Node:
		return v
	case map[string]any:
		record := NewRecord()
		for _, key := range slices.Sorted(maps.Keys(v)) {
			record.Set(key, FromAny(v[key]))
		}
		return RecordOrReference(record)
	case map[any]any:
		converted := make(map[string]any, len(v))
		for key, element := range v {
			converted[fmt.Sprint(key)] = element
		}
		return FromAny(converted)
	case []any:
		items := make([]Node, len(v))
		for index, element := range v {
			items[index] = FromAny(element)
		}
		return Array(items...)
	default:
		return Scalar(v)
	}
}
