// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package dispatch converts between bootstrap documents and dispatch
// streams.
//
// A dispatch stream is a flat sequence of [Entry] values, each one
// write of a value to a site path. [ToDispatch] turns a lazy sequence
// of bootstrap documents into such a stream; [ToBootstrap] folds a
// stream back into one document.
//
// Both directions are pull-based. ToDispatch reads a document only
// when the consumer asks for an entry beyond the ones already produced
// from earlier documents, and stopping the iteration (a break in a
// range loop, or calling the stop function of [iter.Pull2]) stops the
// upstream document sequence, so its cleanup runs before ToDispatch
// returns. An error ends the stream: it is yielded once, as the last
// element. Entries yielded before it remain valid.
//
// On the wire a stream is either NDJSON (one {"path": value} object
// per line, record order kept) or a CBOR sequence encoded with
// lib/codec. [NewWriter] and [Read] handle both. [Digest] computes a
// BLAKE3 digest of an entry's canonical CBOR form, for comparing
// streams without comparing their text.
package dispatch
