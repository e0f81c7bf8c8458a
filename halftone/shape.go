package halftone

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Renderer draws one halftone mark whose d×d bounding box has its top-left
// corner at (x, y). Anything outside dst is clipped.
type Renderer interface {
	Render(dst *image.RGBA, x, y, d int, c color.RGBA)
}

type (
	dotRenderer   struct{}
	blockRenderer struct{}
)

func (s Shape) Renderer() Renderer {
	if s == Block {
		return blockRenderer{}
	}
	return dotRenderer{}
}

func (blockRenderer) Render(dst *image.RGBA, x, y, d int, c color.RGBA) {
	if d <= 0 {
		return
	}
	r := image.Rect(x, y, x+d, y+d).Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// Render fills the circle inscribed in the bounding box, one span per row.
// A pixel is covered when its centre lies inside the circle.
func (dotRenderer) Render(dst *image.RGBA, x, y, d int, c color.RGBA) {
	if d <= 0 {
		return
	}
	bounds := dst.Bounds()
	radius := float64(d) / 2
	cx := float64(x) + radius
	cy := float64(y) + radius
	r2 := radius * radius

	for py := max(y, bounds.Min.Y); py < min(y+d, bounds.Max.Y); py++ {
		dy := float64(py) + 0.5 - cy
		if dy*dy > r2 {
			continue
		}
		half := math.Sqrt(r2 - dy*dy)
		x0 := max(int(math.Ceil(cx-half-0.5)), bounds.Min.X)
		x1 := min(int(math.Floor(cx+half-0.5)), bounds.Max.X-1)
		if x0 > x1 {
			continue
		}

		row := dst.Pix[dst.PixOffset(x0, py):dst.PixOffset(x1, py)+4]
		for i := 0; i < len(row); i += 4 {
			row[i+0] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = c.A
		}
	}
}
