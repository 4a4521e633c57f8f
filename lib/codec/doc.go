// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides clay's CBOR encoding configuration.
//
// CBOR carries dispatch entries in two places: binary dispatch streams
// (a CBOR sequence, one single-key map per entry) and the canonical
// form hashed by entry digests. Both go through the modes defined
// here, so equal content always produces identical bytes.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// Sorting means CBOR streams do not keep the key order of records;
// use NDJSON where order matters to a reader.
//
// The decoder produces map[string]any for maps decoded into an any
// target and rejects duplicate map keys, since a dispatch value with
// two spellings of the same field has no single meaning.
//
// For buffer-oriented operations (digests):
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (dispatch files, pipes):
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
package codec
