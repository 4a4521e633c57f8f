// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package bootstrap defines the nested document form used to seed or
// snapshot a site.
//
// A [Document] holds the four canonical sections (_components,
// _layouts, _pages, _users) and any number of arbitrary top-level keys,
// kept in document order. Section contents stay as [node.Record] and
// [node.Node] values: validation of individual items happens when the
// document is converted, not when it is loaded.
//
// File operations:
//
//   - [Decode] -- lazily reads a stream of documents from YAML
//     (multi-document, "---" separated), JSON (concatenated values) or
//     JSONC (comments and trailing commas allowed)
//   - [Encode] -- writes one document as YAML
//   - [EncodeJSON] -- writes one document as indented JSON
//
// Depends on lib/node for the content tree and lib/reference for the
// namespace a document exposes to reference resolution.
package bootstrap
