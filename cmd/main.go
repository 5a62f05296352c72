package main

import (
	"bgrep/internal"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "bgrep",
		Usage:     "Search byte patterns in binary files",
		ArgsUsage: "PATTERN [FILE...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "ignore-case",
				Aliases: []string{"i"},
				Usage:   "Case insensitive matching",
			},
			&cli.BoolFlag{
				Name:    "invert-match",
				Aliases: []string{"v"},
				Usage:   "Report the byte regions the pattern does not cover",
			},
			&cli.BoolFlag{
				Name:    "bytes",
				Aliases: []string{"b"},
				Usage:   "Print the matched bytes instead of offsets",
			},
			&cli.BoolFlag{
				Name:    "files-with-matches",
				Aliases: []string{"l"},
				Usage:   "Print only the names of matching files",
			},
			&cli.BoolFlag{
				Name:    "non-matching",
				Aliases: []string{"n"},
				Usage:   "With -l, list files without a match instead",
			},
			&cli.BoolFlag{
				Name:    "trim",
				Aliases: []string{"t"},
				Usage:   "Drop a single trailing newline before scanning",
			},
			&cli.BoolFlag{
				Name:    "recursive",
				Aliases: []string{"r"},
				Usage:   "Descend into directories",
			},
			&cli.IntFlag{
				Name:  "depth",
				Usage: "Max directory depth with --recursive (0 - unlimited)",
				Value: 0,
			},
			&cli.BoolFlag{
				Name:    "archives",
				Aliases: []string{"a"},
				Usage:   "Scan entries inside archives (.zip,.tar,.gz,.bz2,.xz,.rar,.7z,...)",
			},
			&cli.StringFlag{
				Name:  "logfile",
				Usage: "Write logs into file instead of stderr",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
				Value: "warn",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(c *cli.Context) error {
	internal.InitLogger(c.String("logfile"), c.String("log-level"))

	args := c.Args().Slice()
	if len(args) == 0 {
		return cli.Exit("Usage: bgrep [OPTIONS] PATTERN [FILE...]", 2)
	}
	pattern := args[0]

	// No file arguments means standard input.
	paths := args[1:]
	if len(paths) == 0 {
		paths = []string{internal.StdinPath}
	}

	if c.Bool("bytes") && c.Bool("files-with-matches") {
		return cli.Exit("--bytes and --files-with-matches are mutually exclusive", 2)
	}
	output := internal.OutputOffset
	switch {
	case c.Bool("bytes"):
		output = internal.OutputBytes
	case c.Bool("files-with-matches"):
		output = internal.OutputFileName
	}

	opts := internal.Options{
		CaseInsensitive:   c.Bool("ignore-case"),
		Inverse:           c.Bool("invert-match"),
		NonMatching:       c.Bool("non-matching"),
		TrimEndingNewline: c.Bool("trim"),
		Output:            output,
		Recursive:         c.Bool("recursive"),
		Depth:             c.Int("depth"),
		Archives:          c.Bool("archives"),
	}
	if err := opts.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := internal.NewRunner(opts, os.Stdin, os.Stdout)
	matched, err := runner.Run(ctx, pattern, paths)
	if err != nil {
		// Diagnostics were already logged where the failure happened.
		return cli.Exit("", 2)
	}
	if !matched {
		return cli.Exit("", 1)
	}
	return nil
}
