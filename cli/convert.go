package cli

import (
	"log/slog"

	"halftoner/imageio"

	"github.com/alecthomas/kong"
)

type ConvertCmd struct {
	Input  string `arg:"" name:"input-file" help:"Source image" type:"path"`
	Output string `arg:"" name:"output-file" help:"Destination image, format is taken from its extension" type:"path"`

	Options
}

// Validate checks the files before the halftone options, so a missing input
// is reported as such even when other flags are wrong too.
func (c *ConvertCmd) Validate(kctx *kong.Context) error {
	if err := imageio.CheckInput(c.Input); err != nil {
		return err
	}
	if err := imageio.CheckOutputDir(c.Output); err != nil {
		return err
	}
	return c.resolve()
}

func (c *ConvertCmd) Run(logger *slog.Logger) error {
	logger = logger.With("file", c.Input)

	format, err := imageio.FormatFromExt(c.Output)
	if err != nil {
		return err
	}

	img, _, err := imageio.Load(c.Input)
	if err != nil {
		return err
	}

	out, err := c.process(logger, img)
	if err != nil {
		return err
	}

	if err = imageio.Save(out, c.Output, format, imageio.SaveOptions{Quality: c.Quality}); err != nil {
		return err
	}
	logger.Info("saved", "to", c.Output, "format", format)
	return nil
}
