// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package node

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// FromYAML parses a single YAML document. An empty document is null.
func FromYAML(data []byte) (Node, error) {
	var document yaml.Node
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&document); err != nil {
		if errors.Is(err, io.EOF) {
			return Null(), nil
		}
		return Node{}, fmt.Errorf("parsing YAML: %w", err)
	}
	return FromYAMLNode(&document)
}

// FromYAMLNode converts a decoded yaml.v3 node tree. Mapping order is
// preserved, aliases are expanded and "<<" merge keys are applied.
// Timestamps and other tags without a native scalar type keep their
// source text.
func FromYAMLNode(value *yaml.Node) (Node, error) {
	if value == nil {
		return Null(), nil
	}
	switch value.Kind {
	case yaml.DocumentNode:
		if len(value.Content) == 0 {
			return Null(), nil
		}
		return FromYAMLNode(value.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(value.Alias)
	case yaml.ScalarNode:
		return yamlScalar(value)
	case yaml.SequenceNode:
		items := make([]Node, 0, len(value.Content))
		for _, child := range value.Content {
			item, err := FromYAMLNode(child)
			if err != nil {
				return Node{}, err
			}
			items = append(items, item)
		}
		return Array(items...), nil
	case yaml.MappingNode:
		record, err := yamlMapping(value)
		if err != nil {
			return Node{}, err
		}
		return RecordOrReference(record), nil
	default:
		return Node{}, fmt.Errorf("line %d: unsupported YAML node kind %d", value.Line, value.Kind)
	}
}

func yamlScalar(value *yaml.Node) (Node, error) {
	switch value.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var decoded bool
		if err := value.Decode(&decoded); err != nil {
			return Node{}, fmt.Errorf("line %d: %w", value.Line, err)
		}
		return Scalar(decoded), nil
	case "!!int":
		var decoded int64
		if err := value.Decode(&decoded); err != nil {
			// Integers beyond int64 still decode as floats.
			var wide float64
			if wideErr := value.Decode(&wide); wideErr != nil {
				return Node{}, fmt.Errorf("line %d: %w", value.Line, err)
			}
			return Scalar(wide), nil
		}
		return Scalar(decoded), nil
	case "!!float":
		var decoded float64
		if err := value.Decode(&decoded); err != nil {
			return Node{}, fmt.Errorf("line %d: %w", value.Line, err)
		}
		return Scalar(decoded), nil
	default:
		return Scalar(value.Value), nil
	}
}

func yamlMapping(value *yaml.Node) (*Record, error) {
	record := NewRecord()
	var merges []*yaml.Node
	for index := 0; index+1 < len(value.Content); index += 2 {
		key, child := value.Content[index], value.Content[index+1]
		if key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge" {
			merges = append(merges, child)
			continue
		}
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
		}
		converted, err := FromYAMLNode(child)
		if err != nil {
			return nil, err
		}
		record.Set(key.Value, converted)
	}

	// Explicit keys win over merged ones regardless of position.
	for _, merge := range merges {
		sources := []*yaml.Node{merge}
		if merge.Kind == yaml.SequenceNode {
			sources = merge.Content
		}
		for _, source := range sources {
			for source.Kind == yaml.AliasNode {
				source = source.Alias
			}
			if source.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: merge value must be a mapping", source.Line)
			}
			merged, err := yamlMapping(source)
			if err != nil {
				return nil, err
			}
			for key, child := range merged.All() {
				if !record.Has(key) {
					record.Set(key, child)
				}
			}
		}
	}
	return record, nil
}

// YAMLNode converts n into a yaml.v3 node tree ready for encoding.
func (n Node) YAMLNode() (*yaml.Node, error) {
	switch n.kind {
	case KindScalar:
		var scalar yaml.Node
		if err := scalar.Encode(n.scalar); err != nil {
			return nil, err
		}
		return &scalar, nil
	case KindArray:
		sequence := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range n.items {
			child, err := item.YAMLNode()
			if err != nil {
				return nil, err
			}
			sequence.Content = append(sequence.Content, child)
		}
		return sequence, nil
	case KindRecord, KindReference:
		record, _ := n.AsRecord()
		mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for key, value := range record.All() {
			var keyNode yaml.Node
			if err := keyNode.Encode(key); err != nil {
				return nil, err
			}
			child, err := value.YAMLNode()
			if err != nil {
				return nil, err
			}
			mapping.Content = append(mapping.Content, &keyNode, child)
		}
		return mapping, nil
	default:
		return nil, fmt.Errorf("unknown node kind %s", n.kind)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (n Node) MarshalYAML() (any, error) {
	return n.YAMLNode()
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	converted, err := FromYAMLNode(value)
	if err != nil {
		return err
	}
	*n = converted
	return nil
}
