// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package streamfile opens input and output streams that may be
// compressed. The path "-" names stdin or stdout.
//
// Compression follows the file extension: ".zst" (or ".zstd") is
// zstd and ".lz4" is an LZ4 frame. When reading, streams without a
// recognized extension (stdin included) are sniffed for the zstd and
// LZ4 frame magic numbers, so piped compressed input works without a
// flag.
package streamfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Stdio is the path that names stdin or stdout.
const Stdio = "-"

// Compression identifies a stream compression format.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

// String returns the name of the compression format.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "none", "":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

// CompressionFor returns the compression implied by the extension of
// path.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// TrimCompressionExt removes a compression extension, so that
// "site.ndjson.zst" yields "site.ndjson" for format detection.
func TrimCompressionExt(path string) string {
	if CompressionFor(path) == CompressionNone {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Open opens path for reading and decompresses it as needed.
func Open(path string) (io.ReadCloser, error) {
	var file io.ReadCloser = io.NopCloser(os.Stdin)
	if path != Stdio {
		opened, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		file = opened
	}

	var (
		reader io.ReadCloser
		err    error
	)
	if compression := CompressionFor(path); compression != CompressionNone {
		reader, err = NewReader(file, compression)
	} else {
		reader, err = Decompress(file)
	}
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return chainReader{ReadCloser: reader, next: file}, nil
}

// Decompress wraps r with the decompressor its magic number calls for,
// or passes it through unchanged. Closing the result does not close r.
func Decompress(r io.Reader) (io.ReadCloser, error) {
	buffered := bufio.NewReader(r)
	return NewReader(buffered, sniff(buffered))
}

func sniff(buffered *bufio.Reader) Compression {
	header, _ := buffered.Peek(len(zstdMagic))
	switch {
	case bytes.Equal(header, zstdMagic):
		return CompressionZstd
	case bytes.Equal(header, lz4Magic):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// Create creates path for writing, compressing with the format its
// extension implies.
func Create(path string) (io.WriteCloser, error) {
	return CreateWith(path, CompressionFor(path))
}

// CreateWith creates path for writing with an explicit compression.
func CreateWith(path string, compression Compression) (io.WriteCloser, error) {
	var file io.WriteCloser = nopWriteCloser{os.Stdout}
	if path != Stdio {
		created, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		file = created
	}

	writer, err := NewWriter(file, compression)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return chainWriter{WriteCloser: writer, next: file}, nil
}

// NewReader wraps r with a decompressor. Closing the result releases
// the decompressor but not r.
func NewReader(r io.Reader, compression Compression) (io.ReadCloser, error) {
	switch compression {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionZstd:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return decoder.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unsupported compression %s", compression)
	}
}

// NewWriter wraps w with a compressor. Closing the result flushes the
// compressed stream but does not close w.
func NewWriter(w io.Writer, compression Compression) (io.WriteCloser, error) {
	switch compression {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZstd:
		encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return encoder, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression %s", compression)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// chainReader closes the decompressor, then the file under it.
type chainReader struct {
	io.ReadCloser
	next io.Closer
}

func (c chainReader) Close() error {
	return errors.Join(c.ReadCloser.Close(), c.next.Close())
}

// chainWriter flushes the compressor, then closes the file under it.
type chainWriter struct {
	io.WriteCloser
	next io.Closer
}

func (c chainWriter) Close() error {
	return errors.Join(c.WriteCloser.Close(), c.next.Close())
}
