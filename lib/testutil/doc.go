// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for clay packages.
//
// [YAML] and [Record] parse inline YAML fixtures into content trees, so
// tests can state documents the way they appear on disk. [Collect]
// drains a fallible sequence into a slice and reports the terminal
// error separately, which keeps assertions about partial output short.
// [WriteFile] places a fixture under t.TempDir.
//
// All helpers call t.Fatalf on setup failure rather than returning
// errors, since test setup failures are not recoverable.
package testutil
