// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"

	"github.com/claycms/claycli/cmd/clay/cli"
	"github.com/claycms/claycli/lib/bootstrap"
	"github.com/claycms/claycli/lib/dispatch"
	"github.com/claycms/claycli/lib/streamfile"
)

type bootstrapParams struct {
	outputParams
	Format string `flag:"format,f" desc:"stream format: ndjson or cbor (default: from the input extension)"`
	JSON   bool   `flag:"json" desc:"write the document as JSON instead of YAML"`
	Color  string `flag:"color" desc:"highlight output: auto, always or never" default:"auto"`
}

// BootstrapCommand returns the "bootstrap" command.
func BootstrapCommand(streams cli.Streams) *cli.Command {
	var params bootstrapParams

	return &cli.Command{
		Name:    "bootstrap",
		Summary: "Fold a dispatch stream back into a bootstrap document",
		Description: `Read a dispatch stream (NDJSON or CBOR) and write the single
bootstrap document it describes. Reference fields are stripped back to
their _ref, legacy page URLs are renamed to customUrl, and every user
entry is validated.

When writing YAML to a terminal the output is syntax highlighted; use
--color never to disable it.`,
		Usage:  "clay bootstrap [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Rebuild a bootstrap file from a stream",
				Command:     "clay bootstrap site.ndjson -o site.yml",
			},
			{
				Description: "Round trip a site through dispatch",
				Command:     "clay dispatch site.yml | clay bootstrap",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			input, err := inputPath(args)
			if err != nil {
				return err
			}
			streamFormat := dispatch.FormatFor(streamfile.TrimCompressionExt(input))
			if params.Format != "" {
				if streamFormat, err = dispatch.ParseFormat(params.Format); err != nil {
					return cli.Validation("%w", err)
				}
			}
			highlight, err := parseColor(params.Color)
			if err != nil {
				return err
			}

			reader, err := openInput(streams, input)
			if err != nil {
				return err
			}
			defer reader.Close()

			logger = logger.With("command", "bootstrap", "input", input)
			entries := dispatch.Read(reader, streamFormat)
			document, err := dispatch.ToBootstrap(cancellable(ctx, entries), dispatch.WithLogger(logger))
			if err != nil {
				return classify(err)
			}

			var rendered bytes.Buffer
			language := "yaml"
			if params.JSON {
				language = "json"
				err = bootstrap.EncodeJSON(&rendered, document)
			} else {
				err = bootstrap.Encode(&rendered, document)
			}
			if err != nil {
				return cli.Internal("encoding bootstrap document: %w", err)
			}

			output, path, err := createOutput(streams, params.outputParams)
			if err != nil {
				return err
			}
			formatter := ""
			if path == streamfile.Stdio && params.Compress == "" {
				formatter = highlight.formatter(streams.Out)
			}
			if formatter != "" {
				err = quick.Highlight(output, rendered.String(), language, formatter, "monokai")
			} else {
				_, err = io.Copy(output, &rendered)
			}
			if closeErr := output.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return cli.Internal("writing %s: %w", path, err)
			}
			logger.Debug("wrote bootstrap document", "output", path)
			return nil
		},
	}
}

type colorMode uint8

const (
	colorAuto colorMode = iota
	colorAlways
	colorNever
)

func parseColor(value string) (colorMode, error) {
	switch value {
	case "", "auto":
		return colorAuto, nil
	case "always":
		return colorAlways, nil
	case "never":
		return colorNever, nil
	default:
		return 0, cli.Validation("unknown --color value %q (want auto, always or never)", value)
	}
}

// formatter returns the chroma terminal formatter for w, or "" when
// output should stay plain. NO_COLOR and CLICOLOR_FORCE are honored in
// auto mode.
func (m colorMode) formatter(w io.Writer) string {
	switch m {
	case colorNever:
		return ""
	case colorAuto:
		if !cli.IsTerminal(w) {
			return ""
		}
	}
	switch termenv.NewOutput(w).EnvColorProfile() {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		if m == colorAlways {
			return "terminal256"
		}
		return ""
	}
}
