package okcolor

import (
	"image/color"
	"math"
)

// LinearRGBA holds gamma-expanded sRGB components in [0,1]. Values outside
// that range are clamped when converted back to sRGB.
type LinearRGBA struct {
	R float64
	G float64
	B float64
	A uint16
}

var LinearRGBAModel = color.ModelFunc(linearRGBAConvert)

func linearRGBAConvert(c color.Color) color.Color {
	if _, ok := c.(LinearRGBA); ok {
		return c
	}

	return sRGBToLinearRGB(color.NRGBA64Model.Convert(c).(color.NRGBA64))
}

func (lc LinearRGBA) RGBA() (uint32, uint32, uint32, uint32) {
	return color.NRGBA64{
		R: uint16(math.Round(fromLinear(clamp(lc.R, 0, 1)) * 0xffff)),
		G: uint16(math.Round(fromLinear(clamp(lc.G, 0, 1)) * 0xffff)),
		B: uint16(math.Round(fromLinear(clamp(lc.B, 0, 1)) * 0xffff)),
		A: lc.A,
	}.RGBA()
}

func sRGBToLinearRGB(c color.NRGBA64) LinearRGBA {
	return LinearRGBA{
		R: toLinear(float64(c.R) / 0xffff),
		G: toLinear(float64(c.G) / 0xffff),
		B: toLinear(float64(c.B) / 0xffff),
		A: c.A,
	}
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return x / 12.92
}

const pow float64 = 1.0 / 2.4

func fromLinear(x float64) float64 {
	if x >= 0.0031308 {
		return math.Pow(x, pow)*1.055 - 0.055
	}
	return x * 12.92
}

func clamp(x, lo, hi float64) float64 {
	return min(max(x, lo), hi)
}
