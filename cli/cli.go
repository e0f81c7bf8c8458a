// Package cli holds the command line front end of the halftone tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"halftoner/imageio"

	"github.com/alecthomas/kong"
)

type CLI struct {
	LogLevel string `help:"Logging level" enum:"debug,info,warn,error" default:"info"`

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Render one image as a halftone"`
	Batch   BatchCmd   `cmd:"" help:"Render every image in a folder as a halftone"`
}

const (
	ExitOK = iota
	ExitUsage
	ExitMissingInput
	ExitMissingOutputDir
	ExitFailure
)

// ExitCode maps an error from parsing the command line or running a
// command to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, imageio.ErrMissingInput):
		return ExitMissingInput
	case errors.Is(err, imageio.ErrMissingOutputDir):
		return ExitMissingOutputDir
	}

	var perr *kong.ParseError
	if errors.As(err, &perr) {
		return ExitUsage
	}
	return ExitFailure
}

func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
