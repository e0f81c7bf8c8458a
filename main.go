package main

import (
	"errors"
	"log/slog"
	"os"

	"halftoner/cli"

	"github.com/alecthomas/kong"
)

func main() {
	var c cli.CLI
	parser, err := kong.New(&c,
		kong.Name("halftone"),
		kong.Description("Render images as halftone dots or blocks."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		slog.Error("could not build command line parser", "error", err)
		os.Exit(cli.ExitFailure)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		var perr *kong.ParseError
		if errors.As(err, &perr) && perr.Context != nil {
			_ = perr.Context.PrintUsage(true)
		}
		slog.Error("invalid arguments", "error", err)
		os.Exit(cli.ExitCode(err))
	}

	logger, err := cli.NewLogger(os.Stderr, c.LogLevel)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(cli.ExitUsage)
	}
	slog.SetDefault(logger)

	if err = kctx.Run(logger); err != nil {
		logger.Error("failed", "command", kctx.Command(), "error", err)
		os.Exit(cli.ExitCode(err))
	}
}
