// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func execute(t *testing.T, command *Command, args ...string) error {
	t.Helper()
	return command.Execute(context.Background(), args, nil)
}

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "clay",
		Subcommands: []*Command{
			{
				Name: "dispatch",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "dispatch"
					receivedArgs = args
					return nil
				},
			},
			{
				Name: "bootstrap",
				Run: func(context.Context, []string, *slog.Logger) error {
					called = "bootstrap"
					return nil
				},
			},
		},
	}

	if err := execute(t, root, "dispatch", "site.yml"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "dispatch" {
		t.Errorf("dispatched to %q, want dispatch", called)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "site.yml" {
		t.Errorf("args = %v, want [site.yml]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var output string
	var positional []string

	command := &Command{
		Name: "dispatch",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("dispatch", pflag.ContinueOnError)
			flagSet.StringVarP(&output, "output", "o", "-", "output path")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			positional = args
			return nil
		},
	}

	if err := execute(t, command, "site.yml", "-o", "out.ndjson"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if output != "out.ndjson" {
		t.Errorf("output = %q, want out.ndjson", output)
	}
	if len(positional) != 1 || positional[0] != "site.yml" {
		t.Errorf("args = %v, want [site.yml]", positional)
	}
}

func TestCommand_Execute_Params(t *testing.T) {
	type params struct {
		Format string `flag:"format,f" desc:"stream format" default:"ndjson"`
		JSON   bool   `flag:"json" desc:"emit JSON"`
	}
	var bound params

	command := &Command{
		Name:   "bootstrap",
		Params: func() any { return &bound },
		Run:    func(context.Context, []string, *slog.Logger) error { return nil },
	}

	if err := execute(t, command, "--json"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if bound.Format != "ndjson" || !bound.JSON {
		t.Errorf("params = %+v, want default format and json", bound)
	}
}

func TestCommand_Execute_UnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "clay",
		Subcommands: []*Command{
			{Name: "dispatch", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
			{Name: "bootstrap", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := execute(t, root, "dispach")
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "dispatch"`) {
		t.Errorf("error = %q, want a dispatch suggestion", err)
	}
	var toolError *ToolError
	if !errors.As(err, &toolError) || toolError.Category != CategoryValidation {
		t.Errorf("error category = %v, want validation", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "dispatch",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("dispatch", pflag.ContinueOnError)
			flagSet.String("output", "-", "output path")
			flagSet.String("format", "ndjson", "stream format")
			return flagSet
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := execute(t, command, "--outptu", "x")
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --output?") {
		t.Errorf("error = %q, want --output suggestion", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:       "clay",
		HelpOutput: &help,
		Subcommands: []*Command{
			{Name: "config", Summary: "Show or save aliases"},
		},
	}

	if err := execute(t, root); err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %v, want subcommand required", err)
	}
	if !strings.Contains(help.String(), "config") {
		t.Errorf("help output missing subcommand listing:\n%s", help.String())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	type params struct {
		Output string `flag:"output,o" desc:"write the stream to this path" default:"-"`
	}
	var bound params
	command := &Command{
		Name:        "dispatch",
		Description: "Convert bootstrap documents into a dispatch stream.",
		Usage:       "clay dispatch [flags] [file]",
		Params:      func() any { return &bound },
		Examples: []Example{
			{Description: "Convert a site snapshot", Command: "clay dispatch site.yml"},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()
	for _, want := range []string{
		"Convert bootstrap documents",
		"Usage:\n  clay dispatch [flags] [file]",
		"--output",
		"write the stream to this path",
		"# Convert a site snapshot",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	var help bytes.Buffer
	ran := false
	command := &Command{
		Name:       "digest",
		Summary:    "Digest a dispatch stream",
		HelpOutput: &help,
		Run: func(context.Context, []string, *slog.Logger) error {
			ran = true
			return nil
		},
	}
	if err := execute(t, command, "--help"); err != nil {
		t.Fatalf("Execute(--help) error: %v", err)
	}
	if ran {
		t.Error("--help ran the command")
	}
	if !strings.Contains(help.String(), "Digest a dispatch stream") {
		t.Errorf("help = %q", help.String())
	}
}

func TestCommand_Execute_Aliases(t *testing.T) {
	called := false
	root := &Command{
		Name: "clay",
		Subcommands: []*Command{
			{
				Name:    "config",
				Aliases: []string{"configure", "cfg"},
				Run: func(context.Context, []string, *slog.Logger) error {
					called = true
					return nil
				},
			},
		},
	}
	if err := execute(t, root, "cfg", "keys.local"); err != nil {
		t.Fatalf("Execute(cfg) error: %v", err)
	}
	if !called {
		t.Error("alias did not dispatch to config")
	}
}
