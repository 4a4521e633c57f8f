// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the clay CLI.
//
// The central type is [Command], a named subcommand with optional
// nested [Command.Subcommands], a [pflag.FlagSet] factory (or a
// struct-tagged [Command.Params] value), and a Run function. Commands
// are assembled into a tree in cmd/clay/commands and dispatched via
// [Command.Execute], which handles flag parsing, subcommand routing,
// and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
//
// Commands read and write through a [Streams] value rather than the
// process's standard files, so tests can drive the full tree with
// in-memory buffers.
package cli
