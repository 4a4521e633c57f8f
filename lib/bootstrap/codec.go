// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/claycms/claycli/lib/node"
)

// Format identifies a bootstrap file encoding.
type Format uint8

const (
	FormatYAML Format = iota
	FormatJSON
	// FormatJSONC is JSON with comments and trailing commas.
	FormatJSONC
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatJSONC:
		return "jsonc"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// ParseFormat parses a format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "jsonc":
		return FormatJSONC, nil
	default:
		return 0, fmt.Errorf("unknown bootstrap format: %q", name)
	}
}

// FormatFor picks the format from a file extension. Anything that is
// not JSON or JSONC is read as YAML, which also accepts plain JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".jsonc":
		return FormatJSONC
	default:
		return FormatYAML
	}
}

// Decode returns a lazy sequence of the documents in r. Each document
// is read only when the consumer asks for it. Null documents (an empty
// YAML document between separators) are skipped. A read or shape error
// is yielded once and ends the sequence.
func Decode(r io.Reader, format Format) iter.Seq2[*Document, error] {
	return func(yield func(*Document, error) bool) {
		next, err := decoderFor(r, format)
		if err != nil {
			yield(nil, err)
			return
		}
		for index := 0; ; index++ {
			tree, err := next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("decoding %s document %d: %w", format, index, err))
				return
			}
			if tree.IsNull() {
				continue
			}
			document, err := FromNode(tree)
			if err != nil {
				yield(nil, fmt.Errorf("document %d: %w", index, err))
				return
			}
			if !yield(document, nil) {
				return
			}
		}
	}
}

// decoderFor returns a function producing one tree per call and io.EOF
// at the end of input.
func decoderFor(r io.Reader, format Format) (func() (node.Node, error), error) {
	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(r)
		return func() (node.Node, error) {
			var document yaml.Node
			if err := decoder.Decode(&document); err != nil {
				return node.Node{}, err
			}
			return node.FromYAMLNode(&document)
		}, nil
	case FormatJSON:
		return jsonDecoder(r), nil
	case FormatJSONC:
		// Comments can only be stripped from the complete text.
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading jsonc input: %w", err)
		}
		return jsonDecoder(bytes.NewReader(jsonc.ToJSON(data))), nil
	default:
		return nil, fmt.Errorf("unsupported bootstrap format %s", format)
	}
}

func jsonDecoder(r io.Reader) func() (node.Node, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	return func() (node.Node, error) {
		return node.DecodeJSON(decoder)
	}
}

// Encode writes document to w as YAML with two-space indentation.
func Encode(w io.Writer, document *Document) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(node.Object(document.Record())); err != nil {
		return fmt.Errorf("encoding bootstrap document: %w", err)
	}
	return encoder.Close()
}

// EncodeJSON writes document to w as indented JSON followed by a
// newline.
func EncodeJSON(w io.Writer, document *Document) error {
	data, err := node.Object(document.Record()).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding bootstrap document: %w", err)
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err != nil {
		return fmt.Errorf("indenting bootstrap document: %w", err)
	}
	indented.WriteByte('\n')
	_, err = indented.WriteTo(w)
	return err
}
