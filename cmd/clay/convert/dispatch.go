// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"context"
	"log/slog"

	"github.com/claycms/claycli/cmd/clay/cli"
	"github.com/claycms/claycli/lib/bootstrap"
	"github.com/claycms/claycli/lib/dispatch"
	"github.com/claycms/claycli/lib/streamfile"
)

type dispatchParams struct {
	outputParams
	Format      string `flag:"format,f" desc:"stream format: ndjson or cbor (default: from the output extension)"`
	InputFormat string `flag:"input-format" desc:"bootstrap format: yaml, json or jsonc (default: from the input extension)"`
}

// DispatchCommand returns the "dispatch" command.
func DispatchCommand(streams cli.Streams) *cli.Command {
	var params dispatchParams

	return &cli.Command{
		Name:    "dispatch",
		Summary: "Convert bootstrap documents into a dispatch stream",
		Description: `Read bootstrap documents (YAML, JSON or JSONC) and write the
equivalent dispatch stream: one {path: value} entry per write, with
references carrying the fields of the components they point to.

A YAML input may hold several documents separated by "---"; their
entries are written in document order. Entries are produced and written
one at a time, so a large site is never held in memory as a stream.`,
		Usage:  "clay dispatch [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Convert a bootstrap file to NDJSON on stdout",
				Command:     "clay dispatch site.yml",
			},
			{
				Description: "Write a zstd-compressed CBOR stream",
				Command:     "clay dispatch site.yml -o site.cbor.zst",
			},
			{
				Description: "Convert JSONC piped on stdin",
				Command:     "clay dispatch --input-format jsonc < site.jsonc",
			},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			input, err := inputPath(args)
			if err != nil {
				return err
			}
			documentFormat := bootstrap.FormatFor(streamfile.TrimCompressionExt(input))
			if params.InputFormat != "" {
				if documentFormat, err = bootstrap.ParseFormat(params.InputFormat); err != nil {
					return cli.Validation("%w", err)
				}
			}

			reader, err := openInput(streams, input)
			if err != nil {
				return err
			}
			defer reader.Close()

			output, path, err := createOutput(streams, params.outputParams)
			if err != nil {
				return err
			}
			streamFormat := dispatch.FormatFor(streamfile.TrimCompressionExt(path))
			if params.Format != "" {
				if streamFormat, err = dispatch.ParseFormat(params.Format); err != nil {
					output.Close()
					return cli.Validation("%w", err)
				}
			}

			logger = logger.With("command", "dispatch", "input", input, "output", path)
			documents := bootstrap.Decode(reader, documentFormat)
			entries := dispatch.ToDispatch(cancellable(ctx, documents), dispatch.WithLogger(logger))

			writer := dispatch.NewWriter(output, streamFormat)
			count, err := dispatch.Drain(entries, writer)
			if err == nil {
				err = writer.Flush()
			}
			if closeErr := output.Close(); err == nil && closeErr != nil {
				err = closeErr
			}
			if err != nil {
				return classify(err)
			}
			logger.Info("wrote dispatch stream", "entries", count, "format", streamFormat.String())
			return nil
		},
	}
}
