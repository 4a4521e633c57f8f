// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package node

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// DecodeJSON reads the next JSON value from decoder, keeping object key
// order. It returns io.EOF when the input is exhausted before a value
// starts. The decoder should have UseNumber enabled so that integers
// survive as int64; plain float64 tokens are accepted as well.
func DecodeJSON(decoder *json.Decoder) (Node, error) {
	token, err := decoder.Token()
	if err != nil {
		return Node{}, err
	}
	return decodeJSONToken(decoder, token)
}

func decodeJSONToken(decoder *json.Decoder, token json.Token) (Node, error) {
	switch value := token.(type) {
	case json.Delim:
		switch value {
		case '{':
			record := NewRecord()
			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return Node{}, unexpectedEOF(err)
				}
				key, ok := keyToken.(string)
				if !ok {
					return Node{}, fmt.Errorf("expected object key, got %v", keyToken)
				}
				child, err := DecodeJSON(decoder)
				if err != nil {
					return Node{}, unexpectedEOF(err)
				}
				record.Set(key, child)
			}
			if _, err := decoder.Token(); err != nil {
				return Node{}, unexpectedEOF(err)
			}
			return RecordOrReference(record), nil
		case '[':
			items := []Node{}
			for decoder.More() {
				child, err := DecodeJSON(decoder)
				if err != nil {
					return Node{}, unexpectedEOF(err)
				}
				items = append(items, child)
			}
			if _, err := decoder.Token(); err != nil {
				return Node{}, unexpectedEOF(err)
			}
			return Array(items...), nil
		default:
			return Node{}, fmt.Errorf("unexpected delimiter %q", rune(value))
		}
	case json.Number:
		if integer, err := value.Int64(); err == nil {
			return Scalar(integer), nil
		}
		float, err := value.Float64()
		if err != nil {
			return Node{}, fmt.Errorf("invalid number %q: %w", value, err)
		}
		return Scalar(float), nil
	case float64:
		if value == math.Trunc(value) && math.Abs(value) < 1<<53 {
			return Scalar(int64(value)), nil
		}
		return Scalar(value), nil
	default:
		return Scalar(value), nil
	}
}

// unexpectedEOF turns an EOF inside a value into io.ErrUnexpectedEOF
// so callers can tell a truncated stream from a finished one.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// MarshalJSON implements json.Marshaler. Record keys are written in
// insertion order and HTML characters are not escaped.
func (n Node) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	if err := n.writeJSON(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (n Node) writeJSON(buffer *bytes.Buffer) error {
	switch n.kind {
	case KindScalar:
		return writeJSONScalar(buffer, n.scalar)
	case KindArray:
		buffer.WriteByte('[')
		for index, item := range n.items {
			if index > 0 {
				buffer.WriteByte(',')
			}
			if err := item.writeJSON(buffer); err != nil {
				return err
			}
		}
		buffer.WriteByte(']')
		return nil
	case KindRecord, KindReference:
		record, _ := n.AsRecord()
		buffer.WriteByte('{')
		first := true
		for key, value := range record.All() {
			if !first {
				buffer.WriteByte(',')
			}
			first = false
			if err := writeJSONScalar(buffer, key); err != nil {
				return err
			}
			buffer.WriteByte(':')
			if err := value.writeJSON(buffer); err != nil {
				return err
			}
		}
		buffer.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("unknown node kind %s", n.kind)
	}
}

func writeJSONScalar(buffer *bytes.Buffer, value any) error {
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buffer.Truncate(buffer.Len() - 1)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	converted, err := DecodeJSON(decoder)
	if err != nil {
		return err
	}
	*n = converted
	return nil
}
