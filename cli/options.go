package cli

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"halftoner/colorspec"
	"halftoner/halftone"
)

// Options are the halftone settings shared by every command. Flag names and
// defaults stay compatible with earlier releases of the tool.
type Options struct {
	DotSize     int    `help:"Size of dots in pixels" default:"5" group:"halftone"`
	DotSpace    int    `help:"Space between dots in pixels" default:"2" group:"halftone"`
	RenderScale int    `help:"Internally scales the image up by this factor to ensure smooth dot rendering. Memory use grows with its square" default:"6" group:"halftone"`
	BgColor     string `help:"Background color in format R,G,B, or empty to use the source image as a background" default:"0,0,0" group:"halftone"`
	FgColor     string `help:"Dot color in format R,G,B, or empty to use the color of the pixel from the source image" default:"255,255,255" group:"halftone"`
	Shape       string `help:"Shape of the halftone marks" enum:"dot,block" default:"dot" group:"halftone"`
	Filter      string `help:"Resampling filter used for the backdrop and the final downscale" enum:"bilinear,approx-bilinear,catmull-rom,lanczos,nearest" default:"bilinear" group:"halftone"`
	Brightness  string `help:"How a pixel's brightness is measured" enum:"value,lightness" default:"value" group:"halftone"`
	Quality     int    `help:"JPEG output quality" default:"95" group:"output"`

	Config halftone.Config `kong:"-"`
}

// resolve builds the engine configuration from the flag values.
func (o *Options) resolve() error {
	cfg := halftone.DefaultConfig()
	cfg.DotSize = o.DotSize
	cfg.Spacing = o.DotSpace
	cfg.Scale = o.RenderScale

	var err error
	if cfg.Background, err = colorspec.Parse(o.BgColor); err != nil {
		return fmt.Errorf("invalid background color: %w", err)
	}
	if cfg.Foreground, err = colorspec.Parse(o.FgColor); err != nil {
		return fmt.Errorf("invalid foreground color: %w", err)
	}
	if cfg.Shape, err = halftone.ParseShape(o.Shape); err != nil {
		return err
	}
	if cfg.Filter, err = halftone.ParseFilter(o.Filter); err != nil {
		return err
	}
	if cfg.Brightness, err = halftone.ParseBrightness(o.Brightness); err != nil {
		return err
	}
	if o.Quality < 1 || o.Quality > 100 {
		return fmt.Errorf("invalid JPEG quality: %d", o.Quality)
	}

	if err = cfg.Validate(); err != nil {
		return err
	}
	o.Config = cfg
	return nil
}

func (o *Options) process(logger *slog.Logger, img image.Image) (*image.RGBA, error) {
	b := img.Bounds()
	logger.Debug("rendering", "width", b.Dx(), "height", b.Dy(), "scale", o.Config.Scale,
		"canvas_bytes", halftone.CanvasBytes(b.Dx(), b.Dy(), o.Config.Scale))

	start := time.Now()
	out, err := halftone.Transform(img, o.Config)
	if err != nil {
		return nil, err
	}

	logger.Info("rendered", "shape", o.Config.Shape, "filter", o.Config.Filter, "elapsed", time.Since(start))
	return out, nil
}
