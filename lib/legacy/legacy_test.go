// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package legacy

import (
	"slices"
	"testing"

	"github.com/claycms/claycli/lib/testutil"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		keys     []string
		wantURL  string
		original bool
	}{
		{"renames url in place", "{layout: l, url: 'http://google.com', main: []}", []string{"layout", CustomURLKey, "main"}, "http://google.com", true},
		{"customUrl wins", "{url: 'http://old', customUrl: 'http://new'}", []string{CustomURLKey}, "http://new", true},
		{"no url", "{layout: l}", []string{"layout"}, "", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			page := testutil.Record(t, test.source)
			normalized := NormalizePage(page)
			if !slices.Equal(normalized.Keys(), test.keys) {
				t.Errorf("keys = %v, want %v", normalized.Keys(), test.keys)
			}
			value, _ := normalized.Get(CustomURLKey)
			if text, _ := value.Text(); text != test.wantURL {
				t.Errorf("customUrl = %q, want %q", text, test.wantURL)
			}
			if page.Has(URLKey) != test.original {
				t.Error("NormalizePage modified its input")
			}
		})
	}

	if NormalizePage(nil).Len() != 0 {
		t.Error("nil page should normalize to an empty record")
	}
}
