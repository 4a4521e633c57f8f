// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package legacy reconciles fields that older documents spell
// differently.
package legacy

import "github.com/claycms/claycli/lib/node"

// Page field names.
const (
	URLKey       = "url"
	CustomURLKey = "customUrl"
)

// NormalizePage returns a copy of page with the historical url field
// folded into customUrl. When customUrl is absent, url is renamed in
// place; otherwise url is dropped. The result never carries url.
func NormalizePage(page *node.Record) *node.Record {
	normalized := page.Copy()
	if !normalized.Has(URLKey) {
		return normalized
	}
	if !normalized.Rename(URLKey, CustomURLKey) {
		normalized.Delete(URLKey)
	}
	return normalized
}
