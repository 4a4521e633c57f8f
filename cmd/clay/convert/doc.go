// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package convert implements the conversion commands of the clay CLI:
// "clay dispatch" turns bootstrap documents into a dispatch stream,
// "clay bootstrap" folds a dispatch stream back into one bootstrap
// document, and "clay digest" prints BLAKE3 digests of a stream.
//
// Every path argument may also name a file alias from the config store.
// Compression is chosen from the file extension (.zst, .lz4) and, for
// inputs without one, from the stream's magic number.
package convert
