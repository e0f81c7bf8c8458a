package halftone

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
)

var (
	ErrInvalidConfig = errors.New("invalid halftone configuration")
	ErrEmptyImage    = errors.New("empty source image")
)

type Shape int

const (
	Dot Shape = iota
	Block
)

func (s Shape) String() string {
	switch s {
	case Dot:
		return "dot"
	case Block:
		return "block"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dot", "":
		return Dot, nil
	case "block":
		return Block, nil
	}
	return 0, fmt.Errorf("%w: unknown shape %q", ErrInvalidConfig, s)
}

// Config describes a single halftone pass. It is passed by value and never
// modified by Transform.
type Config struct {
	DotSize int
	Spacing int
	// Scale is the supersampling factor. The working canvas holds
	// Scale*Scale times as many pixels as the source image.
	Scale int
	Shape Shape
	// Background is the canvas fill colour. When nil, the source image is
	// smoothly upscaled and used as the backdrop.
	Background *color.RGBA
	// Foreground is the colour of every dot. When nil, each dot takes the
	// colour of the pixel it was sampled from.
	Foreground *color.RGBA
	Filter     Filter
	Brightness BrightnessModel
}

func DefaultConfig() Config {
	return Config{
		DotSize:    5,
		Spacing:    2,
		Scale:      6,
		Shape:      Dot,
		Background: &color.RGBA{R: 0, G: 0, B: 0, A: 0xff},
		Foreground: &color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Filter:     Bilinear,
		Brightness: Value,
	}
}

func (c Config) Validate() error {
	switch {
	case c.DotSize <= 0:
		return fmt.Errorf("%w: dot size must be positive, got %d", ErrInvalidConfig, c.DotSize)
	case c.Spacing < 0:
		return fmt.Errorf("%w: spacing must not be negative, got %d", ErrInvalidConfig, c.Spacing)
	case c.Step() <= 0:
		return fmt.Errorf("%w: grid step must be positive, got %d", ErrInvalidConfig, c.Step())
	case c.Scale < 1:
		return fmt.Errorf("%w: render scale must be at least 1, got %d", ErrInvalidConfig, c.Scale)
	case c.DotSize > math.MaxInt/c.Scale:
		return fmt.Errorf("%w: dot size %d at render scale %d overflows", ErrInvalidConfig, c.DotSize, c.Scale)
	case c.Shape != Dot && c.Shape != Block:
		return fmt.Errorf("%w: unsupported shape %s", ErrInvalidConfig, c.Shape)
	}

	if _, ok := filters[c.Filter]; !ok {
		return fmt.Errorf("%w: unsupported filter %s", ErrInvalidConfig, c.Filter)
	}
	if _, ok := brightnessModels[c.Brightness]; !ok {
		return fmt.Errorf("%w: unsupported brightness model %s", ErrInvalidConfig, c.Brightness)
	}
	if _, err := canvasSize(1, 1, c.Scale); err != nil {
		return err
	}

	return nil
}

// Step is the distance between two sampling points on either axis.
func (c Config) Step() int {
	return c.DotSize + c.Spacing
}

// Offset shifts a shape from its sampling point so that it is roughly
// centred on it. The division truncates before scaling, so odd
// DotSize-Spacing values place shapes half a source pixel off centre.
func (c Config) Offset() int {
	return (c.DotSize - c.Spacing) / 2
}

// Extent returns the rendered diameter (or side) on the working canvas for
// a cell of brightness v in [0,1], rounding half up.
func (c Config) Extent(v float32) int {
	d := float32(c.DotSize*c.Scale) * v
	return int(math.Floor(float64(d) + 0.5))
}

// CanvasBytes is the size of the working canvas allocated by Transform for
// a w×h source.
func CanvasBytes(w, h, scale int) int64 {
	return int64(w) * int64(scale) * int64(h) * int64(scale) * 4
}

// canvasSize returns the working canvas dimensions for a w×h source, or an
// error when its pixel buffer could not be addressed.
func canvasSize(w, h, scale int) (image.Point, error) {
	if w > math.MaxInt/scale || h > math.MaxInt/scale {
		return image.Point{}, fmt.Errorf("%w: %dx%d canvas at render scale %d overflows", ErrInvalidConfig, w, h, scale)
	}
	cw, ch := w*scale, h*scale
	if ch > math.MaxInt/4/cw {
		return image.Point{}, fmt.Errorf("%w: %dx%d canvas at render scale %d overflows", ErrInvalidConfig, w, h, scale)
	}
	return image.Pt(cw, ch), nil
}
