// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete clay CLI command tree and runs
// it with the global flags applied.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/claycms/claycli/cmd/clay/cli"
	"github.com/claycms/claycli/cmd/clay/configcmd"
	"github.com/claycms/claycli/cmd/clay/convert"
	"github.com/claycms/claycli/lib/version"
)

// Root builds and returns the complete clay CLI command tree.
func Root(streams cli.Streams) *cli.Command {
	return &cli.Command{
		Name: "clay",
		Description: `clay: convert Clay sites between bootstrap documents and dispatch streams.

Global flags (before the command):
  -v, --verbose   log debug output (also CLAY_LOG_LEVEL=debug)`,
		HelpOutput: streams.Err,
		Subcommands: []*cli.Command{
			convert.DispatchCommand(streams),
			convert.BootstrapCommand(streams),
			convert.DigestCommand(streams),
			configcmd.Command(streams),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(context.Context, []string, *slog.Logger) error {
					fmt.Fprintf(streams.Out, "clay %s\n", version.Full())
					return nil
				},
			},
		},
	}
}

// Run applies the global flags at the front of args, builds the
// logger and executes the command tree with the rest.
func Run(ctx context.Context, args []string, streams cli.Streams) error {
	verbose := false
	for len(args) > 0 && (args[0] == "-v" || args[0] == "--verbose") {
		verbose = true
		args = args[1:]
	}
	logger := cli.NewCommandLogger(streams.Err, verbose)
	return Root(streams).Execute(ctx, args, logger)
}
