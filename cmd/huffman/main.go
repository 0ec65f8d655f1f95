// Package main provides the huffman command-line tool: single-file
// adaptive Huffman compression (pack) and decompression (unpack).
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/scigolib/huffman"
	"github.com/scigolib/huffman/internal/progress"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "huffman",
		Usage: "adaptive Huffman stream compressor",
		Commands: []*cli.Command{
			{
				Name:      "pack",
				Usage:     "compress SOURCE into DEST",
				ArgsUsage: "SOURCE DEST",
				Flags:     commonFlags(),
				Action: func(ctx *cli.Context) error {
					return run(ctx, true)
				},
			},
			{
				Name:      "unpack",
				Usage:     "decompress SOURCE into DEST",
				ArgsUsage: "SOURCE DEST",
				Flags:     commonFlags(),
				Action: func(ctx *cli.Context) error {
					return run(ctx, false)
				},
			},
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "framed",
			Usage: "use the length-framed container (safe for binary input)",
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "suppress the progress bar and log output",
		},
	}
}

func run(ctx *cli.Context, pack bool) error {
	if ctx.NArg() != 2 {
		return errors.New("expected exactly two arguments: SOURCE DEST")
	}
	sourcePath := ctx.Args().Get(0)
	destPath := ctx.Args().Get(1)
	quiet := ctx.Bool("quiet")

	log := newLogger(quiet)

	info, err := os.Stat(sourcePath)
	if err != nil {
		return err
	}
	sourceSize := uint64(info.Size())

	in, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	bw := bufio.NewWriter(out)

	// Update roughly every 0.1% of the input.
	opts := []huffman.Option{
		huffman.WithUpdateStride(sourceSize/1000 + 1),
	}
	if !quiet {
		opts = append(opts, huffman.WithProgress(progress.NewPrinter(os.Stderr, sourceSize)))
	}
	if ctx.Bool("framed") {
		if pack {
			opts = append(opts, huffman.WithFrameLength(sourceSize))
		} else {
			opts = append(opts, huffman.WithFramedContainer())
		}
	}

	codec, err := huffman.New(bufio.NewReader(in), bw, opts...)
	if err != nil {
		return err
	}

	if pack {
		log.Info().Str("source", sourcePath).Str("dest", destPath).Msg("encoding")
		err = codec.Encode()
	} else {
		log.Info().Str("source", sourcePath).Str("dest", destPath).Msg("decoding")
		err = codec.Decode()
	}
	if err != nil {
		return err
	}

	if err := bw.Flush(); err != nil {
		return err
	}

	st := codec.Stats()
	ev := log.Info().
		Uint64("input_bytes", st.InputBytes).
		Uint64("output_bytes", st.OutputBytes).
		Dur("elapsed", st.Elapsed)
	if pack {
		reduction := st.Reduction()
		note := ""
		if reduction < 0 {
			note = " (output bigger)"
		}
		ev.Msg(fmt.Sprintf("size reduction %.2f%%%s", reduction, note))
	} else {
		ev.Msg("done")
	}
	return nil
}

func newLogger(quiet bool) zerolog.Logger {
	if quiet {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
}
