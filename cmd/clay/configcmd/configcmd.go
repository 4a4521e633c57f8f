// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

// Package configcmd implements "clay config", which shows and saves
// key, site and file aliases in the config store.
package configcmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/claycms/claycli/cmd/clay/cli"
	"github.com/claycms/claycli/lib/config"
)

// Command returns the "config" command.
func Command(streams cli.Streams) *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"configure", "cfg"},
		Summary: "View or set config variables",
		Description: `Show or save an alias in the config store (` + config.FileName + ` in the
home directory, or the file named by ` + config.PathVariable + `).

An alias is "<section>.<name>", where section is keys, sites or files.
With only a section name, every alias in that section is listed.`,
		Usage: "clay config <alias> [value]",
		Examples: []cli.Example{
			{Description: "View local api key", Command: "clay config keys.local"},
			{Description: "Set localhost site alias", Command: "clay config sites.local localhost:3001"},
			{Description: "List every site alias", Command: "clay config sites"},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			store, err := config.Load()
			if err != nil {
				return cli.Internal("loading config: %w", err)
			}
			switch len(args) {
			case 1:
				return show(streams, store, args[0])
			case 2:
				return save(streams, logger, store, args[0], args[1])
			default:
				return cli.Validation("usage: clay config <alias> [value]")
			}
		},
	}
}

func show(streams cli.Streams, store *config.Config, alias string) error {
	if config.IsSection(alias) {
		section, err := store.Section(alias)
		if err != nil {
			return cli.Validation("%w", err)
		}
		fmt.Fprintf(streams.Out, "Listing %s:\n", alias)
		for _, name := range slices.Sorted(maps.Keys(section)) {
			fmt.Fprintf(streams.Out, "%s = %s\n", name, section[name])
		}
		return nil
	}

	value, ok, err := store.Get(alias)
	if err != nil {
		return cli.Validation("%w", err)
	}
	if !ok {
		fmt.Fprintf(streams.Err, "No value defined for %q\n", alias)
		return nil
	}
	fmt.Fprintln(streams.Out, value)
	return nil
}

func save(streams cli.Streams, logger *slog.Logger, store *config.Config, alias, value string) error {
	if err := store.Set(alias, value); err != nil {
		return cli.Validation("%w", err)
	}
	if err := store.Save(); err != nil {
		return cli.Internal("Cannot save %s: %w", alias, err)
	}
	section, name, _ := strings.Cut(alias, ".")
	saved, _, _ := store.Get(alias)
	fmt.Fprintf(streams.Out, "Saved %s %s = %s\n", section, name, saved)
	logger.Debug("saved alias", "alias", alias, "path", store.Path())
	return nil
}
