package halftone

import (
	"fmt"
	"image/color"
	"strings"

	"halftoner/okcolor"

	"github.com/lucasb-eyer/go-colorful"
)

// BrightnessModel maps a sampled pixel to a brightness in [0,1] which
// drives the size of its mark.
type BrightnessModel int

const (
	// Value is the HSB/HSV value channel: the largest of R, G and B.
	Value BrightnessModel = iota
	// Lightness is the perceptual OkLab L channel.
	Lightness
)

var brightnessModels = map[BrightnessModel]struct {
	name string
	fn   func(color.RGBA) float32
}{
	Value:     {"value", hsbValue},
	Lightness: {"lightness", oklabLightness},
}

func hsbValue(c color.RGBA) float32 {
	col, _ := colorful.MakeColor(c)
	_, _, v := col.Hsv()
	return float32(v)
}

func oklabLightness(c color.RGBA) float32 {
	return float32(okcolor.Lightness(c))
}

func BrightnessNames() []string {
	names := make([]string, len(brightnessModels))
	for m, v := range brightnessModels {
		names[m] = v.name
	}
	return names
}

func (m BrightnessModel) String() string {
	if v, ok := brightnessModels[m]; ok {
		return v.name
	}
	return fmt.Sprintf("BrightnessModel(%d)", int(m))
}

func ParseBrightness(s string) (BrightnessModel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Value, nil
	}
	for m, v := range brightnessModels {
		if v.name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown brightness model %q", ErrInvalidConfig, s)
}

// Of returns the brightness of an opaque colour.
func (m BrightnessModel) Of(c color.RGBA) float32 {
	return brightnessModels[m].fn(c)
}
