// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Clay converts Clay CMS sites between hierarchical bootstrap documents
// and flat dispatch streams.
//
//	clay dispatch site.yml -o site.ndjson   # bootstrap -> dispatch
//	clay bootstrap site.ndjson              # dispatch -> bootstrap
//	clay digest site.ndjson                 # BLAKE3 digests per entry
//	clay config sites.local localhost:3001  # save an alias
//
// Run "clay <command> --help" for the flags of each command.
package main
