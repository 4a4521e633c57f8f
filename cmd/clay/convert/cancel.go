// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"context"
	"iter"
)

// cancellable ends seq with ctx's error once ctx is done. The check
// runs between elements, so a conversion interrupted by a signal stops
// at the next document or entry.
func cancellable[V any](ctx context.Context, seq iter.Seq2[V, error]) iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		for value, err := range seq {
			if ctxErr := ctx.Err(); ctxErr != nil {
				var zero V
				yield(zero, ctxErr)
				return
			}
			if !yield(value, err) {
				return
			}
		}
	}
}
