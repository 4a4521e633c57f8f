// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"strings"

	"github.com/claycms/claycli/lib/codec"
	"github.com/claycms/claycli/lib/node"
)

// Format identifies the wire encoding of a dispatch stream.
type Format uint8

const (
	// FormatNDJSON is one JSON object per line. Record order is kept.
	FormatNDJSON Format = iota
	// FormatCBOR is a CBOR sequence in deterministic encoding.
	FormatCBOR
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatNDJSON:
		return "ndjson"
	case FormatCBOR:
		return "cbor"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// ParseFormat parses a format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "ndjson", "jsonl", "json":
		return FormatNDJSON, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return 0, fmt.Errorf("unknown dispatch format: %q", name)
	}
}

// FormatFor picks the format from a file extension; ".cbor" is CBOR and
// everything else, stdio included, is NDJSON.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		return FormatCBOR
	}
	return FormatNDJSON
}

// Sink receives dispatch entries one at a time.
type Sink interface {
	Write(entry Entry) error
}

// Drain writes every entry of entries to sink and returns how many were
// written. It stops at the first error from either side.
func Drain(entries iter.Seq2[Entry, error], sink Sink) (int, error) {
	count := 0
	for entry, err := range entries {
		if err != nil {
			return count, err
		}
		if err := sink.Write(entry); err != nil {
			return count, fmt.Errorf("writing %s: %w", entry.Path, err)
		}
		count++
	}
	return count, nil
}

// Writer encodes entries onto an io.Writer. It is a [Sink]. Output is
// buffered; call Flush when done.
type Writer struct {
	format   Format
	buffered *bufio.Writer
	encoder  *codec.Encoder
}

// NewWriter returns a writer producing format on w.
func NewWriter(w io.Writer, format Format) *Writer {
	buffered := bufio.NewWriter(w)
	writer := &Writer{format: format, buffered: buffered}
	if format == FormatCBOR {
		writer.encoder = codec.NewEncoder(buffered)
	}
	return writer
}

// Write encodes one entry.
func (w *Writer) Write(entry Entry) error {
	switch w.format {
	case FormatNDJSON:
		data, err := entry.MarshalJSON()
		if err != nil {
			return err
		}
		if _, err := w.buffered.Write(data); err != nil {
			return err
		}
		return w.buffered.WriteByte('\n')
	case FormatCBOR:
		return w.encoder.Encode(map[string]any{entry.Path: node.ToAny(entry.Value)})
	default:
		return fmt.Errorf("unsupported dispatch format %s", w.format)
	}
}

// Flush writes any buffered output.
func (w *Writer) Flush() error {
	return w.buffered.Flush()
}

// Read returns a lazy sequence of the entries encoded in r. A decode
// error is yielded once and ends the sequence.
func Read(r io.Reader, format Format) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		var next func() (node.Node, error)
		switch format {
		case FormatNDJSON:
			decoder := json.NewDecoder(r)
			decoder.UseNumber()
			next = func() (node.Node, error) { return node.DecodeJSON(decoder) }
		case FormatCBOR:
			decoder := codec.NewDecoder(r)
			next = func() (node.Node, error) {
				var value any
				if err := decoder.Decode(&value); err != nil {
					return node.Node{}, err
				}
				return node.FromAny(value), nil
			}
		default:
			yield(Entry{}, fmt.Errorf("unsupported dispatch format %s", format))
			return
		}

		for index := 0; ; index++ {
			tree, err := next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Entry{}, fmt.Errorf("reading %s entry %d: %w", format, index, err))
				return
			}
			entry, err := EntryFromNode(tree)
			if err != nil {
				yield(Entry{}, fmt.Errorf("%s entry %d: %w", format, index, err))
				return
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}
