// Copyright 2026 The Clay Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"errors"
	"io"
	"io/fs"

	"github.com/claycms/claycli/cmd/clay/cli"
	"github.com/claycms/claycli/lib/bootstrap"
	"github.com/claycms/claycli/lib/config"
	"github.com/claycms/claycli/lib/identity"
	"github.com/claycms/claycli/lib/sitepath"
	"github.com/claycms/claycli/lib/streamfile"
)

// outputParams are the flags shared by commands that write a file.
type outputParams struct {
	Output   string `flag:"output,o" desc:"write to this path or file alias (- for stdout)" default:"-"`
	Compress string `flag:"compress" desc:"output compression: none, zstd or lz4 (default: from the output extension)"`
}

// inputPath resolves the optional positional file argument. No
// argument means stdin.
func inputPath(args []string) (string, error) {
	switch len(args) {
	case 0:
		return streamfile.Stdio, nil
	case 1:
		return resolveFile(args[0])
	default:
		return "", cli.Validation("expected at most one input file, got %d arguments", len(args))
	}
}

// resolveFile expands a file alias. Stdio passes through.
func resolveFile(name string) (string, error) {
	if name == streamfile.Stdio {
		return name, nil
	}
	store, err := config.Load()
	if err != nil {
		return "", cli.Internal("loading config: %w", err)
	}
	return store.File(name), nil
}

// openInput opens path for reading, decompressing as needed. Stdio
// reads from streams.In.
func openInput(streams cli.Streams, path string) (io.ReadCloser, error) {
	if path == streamfile.Stdio {
		reader, err := streamfile.Decompress(streams.In)
		if err != nil {
			return nil, cli.Validation("reading stdin: %w", err)
		}
		return reader, nil
	}
	reader, err := streamfile.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("input file %s does not exist", path)
	}
	if err != nil {
		return nil, cli.Internal("opening %s: %w", path, err)
	}
	return reader, nil
}

// createOutput opens the output named by params. Stdio writes to
// streams.Out. The returned path is the resolved one.
func createOutput(streams cli.Streams, params outputParams) (io.WriteCloser, string, error) {
	path, err := resolveFile(params.Output)
	if err != nil {
		return nil, "", err
	}
	compression := streamfile.CompressionFor(path)
	if params.Compress != "" {
		compression, err = streamfile.ParseCompression(params.Compress)
		if err != nil {
			return nil, "", cli.Validation("%w", err)
		}
	}

	var writer io.WriteCloser
	if path == streamfile.Stdio {
		writer, err = streamfile.NewWriter(streams.Out, compression)
	} else {
		writer, err = streamfile.CreateWith(path, compression)
	}
	if err != nil {
		return nil, "", cli.Internal("creating %s: %w", path, err)
	}
	return writer, path, nil
}

// classify attaches a category to a conversion error: malformed input
// is a validation error, everything else internal.
func classify(err error) error {
	var (
		validationError *identity.ValidationError
		shapeError      *bootstrap.ShapeError
		parseError      *sitepath.ParseError
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, new(*cli.ToolError)):
		return err
	case errors.As(err, &validationError), errors.As(err, &shapeError), errors.As(err, &parseError):
		return &cli.ToolError{Category: cli.CategoryValidation, Err: err}
	default:
		return &cli.ToolError{Category: cli.CategoryInternal, Err: err}
	}
}
