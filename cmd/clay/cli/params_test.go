// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

type sharedParams struct {
	Verbose bool `flag:"verbose,v" desc:"debug logging"`
}

type exampleParams struct {
	sharedParams
	Output  string   `flag:"output,o" desc:"output path" default:"-"`
	Count   int      `flag:"count" desc:"entry limit" default:"10"`
	Formats []string `flag:"formats" desc:"formats" default:"ndjson,cbor"`
	Ignored string
}

func TestBindFlags_DefaultsAndParsing(t *testing.T) {
	var params exampleParams
	flagSet := FlagsFromParams("example", &params)

	if params.Output != "-" || params.Count != 10 || !slices.Equal(params.Formats, []string{"ndjson", "cbor"}) {
		t.Errorf("defaults = %+v", params)
	}
	if flagSet.Lookup("Ignored") != nil || flagSet.Lookup("ignored") != nil {
		t.Error("untagged field produced a flag")
	}

	if err := flagSet.Parse([]string{"-v", "--output=out.cbor", "--count", "3", "--formats", "cbor"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !params.Verbose || params.Output != "out.cbor" || params.Count != 3 || !slices.Equal(params.Formats, []string{"cbor"}) {
		t.Errorf("parsed = %+v", params)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	if err := BindFlags(exampleParams{}, pflag.NewFlagSet("x", pflag.ContinueOnError)); err == nil {
		t.Error("non-pointer params accepted")
	}

	type badDefault struct {
		Count int `flag:"count" default:"many"`
	}
	err := BindFlags(&badDefault{}, pflag.NewFlagSet("x", pflag.ContinueOnError))
	if err == nil || !strings.Contains(err.Error(), "default for --count") {
		t.Errorf("bad default err = %v", err)
	}

	type unsupported struct {
		Ratio float32 `flag:"ratio"`
	}
	err = BindFlags(&unsupported{}, pflag.NewFlagSet("x", pflag.ContinueOnError))
	if err == nil || !strings.Contains(err.Error(), "unsupported type") {
		t.Errorf("unsupported type err = %v", err)
	}
}
