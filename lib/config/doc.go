// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads and saves clay's alias store.
//
// The store is one YAML file with three sections of name → value
// aliases:
//
//	keys:
//	  local: abc123
//	sites:
//	  prod: https://example.com
//	files:
//	  seed: ~/sites/seed.yaml
//
// The file is located by the CLAY_CONFIG environment variable, or
// ~/.clayconfig when it is unset. There is no other discovery. A
// missing file is an empty store; [Config.Save] creates it.
//
// Aliases are addressed as "section.name". [Config.Key], [Config.Site]
// and [Config.File] resolve a command-line argument that may be either
// an alias or a literal value, falling back to CLAY_DEFAULT_KEY and
// CLAY_DEFAULT_SITE when the argument is empty. Site values are
// normalized with [NormalizeSite]; file values expand a leading "~"
// and ${VAR} or ${VAR:-default} patterns.
//
// This package depends on no other clay packages.
package config
