// Package halftone renders images as a grid of dots or blocks whose size
// follows the brightness of the source.
//
// Shapes are drawn without anti-aliasing on a canvas Scale times larger than
// the source, and the canvas is then resampled down to the source size. The
// resampling smooths the edges, at the cost of a working canvas of
// Scale*Scale times the source pixel count (see CanvasBytes).
package halftone

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Transform returns a halftone rendition of img with the same dimensions,
// anchored at the origin. img is only read. Transform keeps no state
// between calls, so distinct images may be processed concurrently.
func Transform(img image.Image, cfg Config) (*image.RGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sb := img.Bounds()
	w, h := sb.Dx(), sb.Dy()
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, w, h)
	}

	size, err := canvasSize(w, h, cfg.Scale)
	if err != nil {
		return nil, err
	}
	canvas := image.NewRGBA(image.Rectangle{Max: size})
	paintBackground(canvas, img, cfg)

	shape := cfg.Shape.Renderer()
	step, offset := cfg.Step(), cfg.Offset()
	for x := 0; x < w; x += step {
		for y := 0; y < h; y += step {
			sample := opaque(img.At(sb.Min.X+x, sb.Min.Y+y))

			ink := sample
			if cfg.Foreground != nil {
				ink = *cfg.Foreground
			}

			d := cfg.Extent(cfg.Brightness.Of(sample))
			shape.Render(canvas, (x-offset)*cfg.Scale, (y-offset)*cfg.Scale, d, ink)
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	resample(out, canvas, cfg.Filter, draw.Src)

	return out, nil
}

func paintBackground(canvas *image.RGBA, img image.Image, cfg Config) {
	if cfg.Background != nil {
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(*cfg.Background), image.Point{}, draw.Src)
		return
	}

	// Translucent sources are flattened onto white.
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	resample(canvas, img, cfg.Filter, draw.Over)
}

func resample(dst *image.RGBA, src image.Image, f Filter, op draw.Op) {
	sb, db := src.Bounds(), dst.Bounds()
	if sb.Size() == db.Size() {
		draw.Draw(dst, db, src, sb.Min, op)
		return
	}
	f.scale(dst, src, op)
}

func opaque(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}
}
