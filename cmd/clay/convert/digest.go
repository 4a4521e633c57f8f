// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"

	"github.com/claycms/claycli/cmd/clay/cli"
	"github.com/claycms/claycli/lib/codec"
	"github.com/claycms/claycli/lib/dispatch"
	"github.com/claycms/claycli/lib/streamfile"
)

type digestParams struct {
	Format   string `flag:"format,f" desc:"stream format: ndjson or cbor (default: from the input extension)"`
	Quiet    bool   `flag:"quiet,q" desc:"print only the stream digest"`
	Diagnose bool   `flag:"diagnose" desc:"print the canonical CBOR of each entry in diagnostic notation"`
	Expect   string `flag:"expect" desc:"exit with status 1 unless the stream digest equals this hex value"`
}

// DigestCommand returns the "digest" command.
func DigestCommand(streams cli.Streams) *cli.Command {
	var params digestParams

	return &cli.Command{
		Name:    "digest",
		Summary: "Print BLAKE3 digests of a dispatch stream",
		Description: `Read a dispatch stream and print one line per entry, the keyed
BLAKE3 digest of the entry's canonical CBOR form followed by its path,
then the digest of the whole stream.

Entry digests ignore record key order, so the same site has the same
digests whether it was written as NDJSON or CBOR. The stream digest
depends on entry order.`,
		Usage:  "clay digest [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Compare two exports of the same site",
				Command:     "clay digest -q a.ndjson; clay digest -q b.cbor",
			},
			{
				Description: "Check a conversion in CI",
				Command:     "clay dispatch site.yml | clay digest --expect 3f1c...",
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
			var expected dispatch.Hash
			if params.Expect != "" {
				if expected, err = dispatch.ParseHash(params.Expect); err != nil {
					return cli.Validation("--expect: %w", err)
				}
			}

			reader, err := openInput(streams, input)
			if err != nil {
				return err
			}
			defer reader.Close()

			out := bufio.NewWriter(streams.Out)
			stream := dispatch.NewStreamDigest()
			for entry, err := range cancellable(ctx, dispatch.Read(reader, streamFormat)) {
				if err != nil {
					return classify(err)
				}
				hash, err := dispatch.Digest(entry)
				if err != nil {
					return cli.Internal("%w", err)
				}
				stream.Add(hash)
				if params.Quiet {
					continue
				}
				fmt.Fprintf(out, "%s  %s\n", hash, entry.Path)
				if params.Diagnose {
					canonical, err := dispatch.Canonical(entry)
					if err != nil {
						return cli.Internal("%w", err)
					}
					notation, err := codec.Diagnose(canonical)
					if err != nil {
						return cli.Internal("diagnosing %s: %w", entry.Path, err)
					}
					fmt.Fprintf(out, "  %s\n", notation)
				}
			}

			sum := stream.Sum()
			if params.Quiet {
				fmt.Fprintf(out, "%s\n", sum)
			} else {
				fmt.Fprintf(out, "%s  (%d entries)\n", sum, stream.Count())
			}
			if err := out.Flush(); err != nil {
				return cli.Internal("writing digests: %w", err)
			}
			logger.Debug("digested dispatch stream", "input", input, "entries", stream.Count(), "digest", sum.String())

			if params.Expect != "" && sum != expected {
				fmt.Fprintf(streams.Err, "stream digest %s does not match expected %s\n", sum, expected)
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
