// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package node is the content tree shared by bootstrap documents and
// dispatch entries.
//
// A [Node] is a tagged variant with four kinds:
//
//   - [KindScalar]: null, bool, string, int64 or float64
//   - [KindReference]: a pointer to another item ({"_ref": target}),
//     optionally carrying inline fields copied from the target
//   - [KindRecord]: an ordered mapping of string keys to nodes
//   - [KindArray]: an ordered list of nodes
//
// References are discriminated structurally when a tree is built from
// YAML, JSON or generic Go values: a mapping whose [RefKey] holds a
// string becomes a reference node, and every other key of that mapping
// becomes an inline field. No other code probes mappings for a "_ref"
// key; consumers switch on [Node.Kind].
//
// [Record] preserves insertion order. Bootstrap documents are ordered
// (item order determines dispatch order), so every decoder in this
// package builds records in source order and every encoder writes them
// back in the same order.
//
// Conversions:
//
//   - YAML: [FromYAML], [Node.MarshalYAML], [Node.UnmarshalYAML] via
//     gopkg.in/yaml.v3 nodes
//   - JSON: [DecodeJSON], [Node.MarshalJSON], [Node.UnmarshalJSON]
//   - generic values: [FromAny] and [ToAny], used for CBOR
//
// Nodes are values; records are shared by pointer. Functions in this
// package never mutate their inputs.
package node
