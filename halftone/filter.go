package halftone

import (
	"fmt"
	"image"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Filter selects the resampling used to build the backdrop and to bring the
// working canvas back down to the source size.
type Filter int

const (
	Bilinear Filter = iota
	ApproxBilinear
	CatmullRom
	Lanczos
	Nearest
)

type scaleFunc func(dst draw.Image, src image.Image, op draw.Op)

func interpolate(i draw.Interpolator) scaleFunc {
	return func(dst draw.Image, src image.Image, op draw.Op) {
		i.Scale(dst, dst.Bounds(), src, src.Bounds(), op, nil)
	}
}

func nfnt(fn resize.InterpolationFunction) scaleFunc {
	return func(dst draw.Image, src image.Image, op draw.Op) {
		dr := dst.Bounds()
		res := resize.Resize(uint(dr.Dx()), uint(dr.Dy()), src, fn)
		draw.Draw(dst, dr, res, res.Bounds().Min, op)
	}
}

var filters = map[Filter]struct {
	name  string
	scale scaleFunc
}{
	// x/image/draw kernels widen their support when shrinking, so
	// BiLinear averages over the whole source area of each output pixel.
	Bilinear:       {"bilinear", interpolate(draw.BiLinear)},
	ApproxBilinear: {"approx-bilinear", interpolate(draw.ApproxBiLinear)},
	CatmullRom:     {"catmull-rom", interpolate(draw.CatmullRom)},
	Lanczos:        {"lanczos", nfnt(resize.Lanczos3)},
	Nearest:        {"nearest", interpolate(draw.NearestNeighbor)},
}

func FilterNames() []string {
	names := make([]string, len(filters))
	for f, v := range filters {
		names[f] = v.name
	}
	return names
}

func (f Filter) String() string {
	if v, ok := filters[f]; ok {
		return v.name
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Bilinear, nil
	}
	for f, v := range filters {
		if v.name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown filter %q", ErrInvalidConfig, s)
}

func (f Filter) scale(dst draw.Image, src image.Image, op draw.Op) {
	filters[f].scale(dst, src, op)
}
