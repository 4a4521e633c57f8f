// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/claycms/claycli/lib/codec"
	"github.com/claycms/claycli/lib/node"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// String returns the hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// ParseHash parses a 64-character hex string.
func ParseHash(text string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return hash, fmt.Errorf("parsing entry digest: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("entry digest is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}

// Domain separation keys: the ASCII domain name, zero-padded to 32
// bytes.
var (
	entryDomainKey = [32]byte{
		'c', 'l', 'a', 'y', '.', 'd', 'i', 's', 'p', 'a', 't', 'c', 'h', '.',
		'e', 'n', 't', 'r', 'y',
	}
	streamDomainKey = [32]byte{
		'c', 'l', 'a', 'y', '.', 'd', 'i', 's', 'p', 'a', 't', 'c', 'h', '.',
		's', 't', 'r', 'e', 'a', 'm',
	}
)

// Canonical returns the deterministic CBOR form of an entry: a
// single-key map with all nested keys sorted. Two entries with the same
// content in any key order have the same canonical form.
func Canonical(entry Entry) ([]byte, error) {
	return codec.Marshal(map[string]any{entry.Path: node.ToAny(entry.Value)})
}

// Digest returns the keyed BLAKE3 hash of the entry's canonical form.
func Digest(entry Entry) (Hash, error) {
	data, err := Canonical(entry)
	if err != nil {
		return Hash{}, fmt.Errorf("encoding %s: %w", entry.Path, err)
	}
	return keyedHash(entryDomainKey, data), nil
}

// StreamDigest hashes a sequence of entry digests in order. Streams
// with the same entries in the same order have the same digest.
type StreamDigest struct {
	hasher *blake3.Hasher
	count  int
}

// NewStreamDigest returns an empty stream digest.
func NewStreamDigest() *StreamDigest {
	hasher, err := blake3.NewKeyed(streamDomainKey[:])
	if err != nil {
		panic("dispatch: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return &StreamDigest{hasher: hasher}
}

// Add appends one entry digest.
func (s *StreamDigest) Add(hash Hash) {
	s.hasher.Write(hash[:])
	s.count++
}

// Count returns the number of digests added.
func (s *StreamDigest) Count() int {
	return s.count
}

// Sum returns the digest of everything added so far.
func (s *StreamDigest) Sum() Hash {
	var hash Hash
	copy(hash[:], s.hasher.Sum(nil))
	return hash
}

func keyedHash(key [32]byte, data []byte) Hash {
	// NewKeyed only fails for keys that are not 32 bytes long.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("dispatch: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}
