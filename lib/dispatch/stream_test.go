// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/claycms/claycli/lib/node"
	"github.com/claycms/claycli/lib/testutil"
)

func TestWriter_NDJSON(t *testing.T) {
	var buffer bytes.Buffer
	writer := NewWriter(&buffer, FormatNDJSON)
	count, err := Drain(ToDispatch(documents(t, bootstrapArbitrary)), writer)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if err := writer.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	want := `{"/_lists/a":[1,2,3]}` + "\n" + `{"/_uris/":"/_pages/index"}` + "\n"
	if buffer.String() != want {
		t.Errorf("output = %q, want %q", buffer.String(), want)
	}
}

func TestReadWrite_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatNDJSON, FormatCBOR} {
		t.Run(format.String(), func(t *testing.T) {
			original, err := testutil.Collect(ToDispatch(documents(t, bootstrapComponents, bootstrapUsers, bootstrapPages)))
			if err != nil {
				t.Fatalf("ToDispatch: %v", err)
			}

			var buffer bytes.Buffer
			writer := NewWriter(&buffer, format)
			if _, err := Drain(sequence(original), writer); err != nil {
				t.Fatalf("Drain: %v", err)
			}
			if err := writer.Flush(); err != nil {
				t.Fatalf("Flush: %v", err)
			}

			decoded, err := testutil.Collect(Read(&buffer, format))
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			assertEntries(t, decoded, original)
		})
	}
}

func TestRead_NDJSONKeepsOrder(t *testing.T) {
	input := `{"/_components/a": {"z": 1, "a": {"_ref": "/_components/b", "x": 2}}}`
	decoded, err := testutil.Collect(Read(strings.NewReader(input), FormatNDJSON))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	record := decoded[0].Value.Record()
	if keys := record.Keys(); len(keys) != 2 || keys[0] != "z" {
		t.Errorf("keys = %v, want [z a]", keys)
	}
	reference, _ := record.Get("a")
	if reference.Kind() != node.KindReference {
		t.Errorf("a = %s, want reference", reference.Kind())
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"two keys", `{"/_lists/a": 1, "/_lists/b": 2}`},
		{"not a mapping", `[1, 2]`},
		{"truncated", `{"/_lists/a": [1,`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := testutil.Collect(Read(strings.NewReader(`{"/_lists/ok": 0}`+"\n"+test.input), FormatNDJSON))
			if err == nil {
				t.Fatal("Read succeeded")
			}
			if !strings.Contains(err.Error(), "entry 1") {
				t.Errorf("error %q does not name entry 1", err)
			}
		})
	}

	_, err := testutil.Collect(Read(strings.NewReader(`{"/_lists/a": [1,`), FormatNDJSON))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("truncated err = %v, want io.ErrUnexpectedEOF", err)
	}
}

type failingSink struct{ after int }

func (s *failingSink) Write(Entry) error {
	if s.after == 0 {
		return errors.New("sink full")
	}
	s.after--
	return nil
}

func TestDrain_SinkError(t *testing.T) {
	count, err := Drain(ToDispatch(documents(t, bootstrapUsers)), &failingSink{after: 1})
	if err == nil || !strings.Contains(err.Error(), "/_users/bm9ib2R5QGdvb2dsZQ==") {
		t.Errorf("err = %v, want a failure naming the second user", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"site.ndjson": FormatNDJSON,
		"site.jsonl":  FormatNDJSON,
		"site.CBOR":   FormatCBOR,
		"-":           FormatNDJSON,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q) = %s, want %s", path, got, want)
		}
	}
	if format, err := ParseFormat("cbor"); err != nil || format != FormatCBOR {
		t.Errorf("ParseFormat(cbor) = %s, %v", format, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat accepted xml")
	}
}

func TestEntry_JSON(t *testing.T) {
	var entry Entry
	if err := entry.UnmarshalJSON([]byte(`{"/_pages/foo/meta": {"title": "Foo"}}`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	location, err := entry.Location()
	if err != nil || !location.Meta || location.Name != "foo" {
		t.Errorf("location = %+v, %v", location, err)
	}
	data, err := entry.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != `{"/_pages/foo/meta":{"title":"Foo"}}` {
		t.Errorf("MarshalJSON = %s", data)
	}
}
