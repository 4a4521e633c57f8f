// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"errors"
	"iter"
	"slices"
	"testing"
)

func TestDedent(t *testing.T) {
	source := "\n\t\ta:\n\t\t  b: 1\n\n\t\tc: 2\n\t"
	want := "\na:\n  b: 1\n\nc: 2\n"
	if got := dedent(source); got != want {
		t.Errorf("dedent = %q, want %q", got, want)
	}
}

func TestRecord(t *testing.T) {
	record := Record(t, `
		zeta: 1
		alpha:
		  nested: true
	`)
	if want := []string{"zeta", "alpha"}; !slices.Equal(record.Keys(), want) {
		t.Errorf("keys = %v, want %v", record.Keys(), want)
	}
}

func TestCollect_StopsAtError(t *testing.T) {
	failure := errors.New("boom")
	var seq iter.Seq2[int, error] = func(yield func(int, error) bool) {
		if !yield(1, nil) || !yield(2, nil) {
			return
		}
		if !yield(0, failure) {
			return
		}
		yield(3, nil)
	}
	values, err := Collect(seq)
	if !errors.Is(err, failure) {
		t.Errorf("err = %v, want %v", err, failure)
	}
	if !slices.Equal(values, []int{1, 2}) {
		t.Errorf("values = %v, want [1 2]", values)
	}
}
