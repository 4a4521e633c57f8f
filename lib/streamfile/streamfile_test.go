// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package streamfile

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `{"/_lists/a":[1,2,3]}
{"/_uris/":"/_pages/index"}
`

func TestCreateOpen_RoundTrip(t *testing.T) {
	for _, name := range []string{"site.ndjson", "site.ndjson.zst", "site.ndjson.lz4", "site.cbor.zstd"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			writer, err := Create(path)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if _, err := io.WriteString(writer, sample); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := writer.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			compressed := CompressionFor(path) != CompressionNone
			if compressed == (string(raw) == sample) {
				t.Errorf("compressed=%v but file content equality is %v", compressed, string(raw) == sample)
			}

			reader, err := Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer reader.Close()
			data, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(data) != sample {
				t.Errorf("read %q, want %q", data, sample)
			}
		})
	}
}

func TestOpen_SniffsCompression(t *testing.T) {
	for _, compression := range []Compression{CompressionZstd, CompressionLZ4} {
		t.Run(compression.String(), func(t *testing.T) {
			var buffer bytes.Buffer
			writer, err := NewWriter(&buffer, compression)
			if err != nil {
				t.Fatalf("NewWriter: %v", err)
			}
			io.WriteString(writer, sample)
			if err := writer.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			// No compression extension: the magic number decides.
			path := filepath.Join(t.TempDir(), "piped.ndjson")
			if err := os.WriteFile(path, buffer.Bytes(), 0o644); err != nil {
				t.Fatal(err)
			}
			reader, err := Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer reader.Close()
			data, _ := io.ReadAll(reader)
			if string(data) != sample {
				t.Errorf("read %q, want %q", data, sample)
			}
		})
	}
}

func TestOpen_ShortPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	reader, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()
	data, _ := io.ReadAll(reader)
	if string(data) != "{}" {
		t.Errorf("read %q", data)
	}
}

func TestDecompress_InMemory(t *testing.T) {
	var compressed bytes.Buffer
	writer, err := NewWriter(&compressed, CompressionZstd)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	io.WriteString(writer, sample)
	writer.Close()

	for name, input := range map[string]io.Reader{
		"zstd":  &compressed,
		"plain": strings.NewReader(sample),
	} {
		reader, err := Decompress(input)
		if err != nil {
			t.Fatalf("%s: Decompress: %v", name, err)
		}
		data, _ := io.ReadAll(reader)
		reader.Close()
		if string(data) != sample {
			t.Errorf("%s: read %q, want %q", name, data, sample)
		}
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent.yaml")); !os.IsNotExist(err) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestTrimCompressionExt(t *testing.T) {
	tests := map[string]string{
		"site.ndjson.zst": "site.ndjson",
		"site.cbor.LZ4":   "site.cbor",
		"site.yaml":       "site.yaml",
		"-":               "-",
	}
	for path, want := range tests {
		if got := TrimCompressionExt(path); got != want {
			t.Errorf("TrimCompressionExt(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestParseCompression(t *testing.T) {
	for _, name := range []string{"none", "zstd", "lz4"} {
		compression, err := ParseCompression(name)
		if err != nil {
			t.Errorf("ParseCompression(%q): %v", name, err)
			continue
		}
		if compression.String() != name {
			t.Errorf("ParseCompression(%q).String() = %q", name, compression.String())
		}
	}
	if _, err := ParseCompression("gzip"); err == nil || !strings.Contains(err.Error(), "gzip") {
		t.Errorf("ParseCompression(gzip) err = %v", err)
	}
}
