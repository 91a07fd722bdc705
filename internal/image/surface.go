package imagepkg

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// MaxSurfacePixels bounds the raster a single render may allocate.
const MaxSurfacePixels = 1 << 26

var ErrSurfaceTooLarge = errors.New("render surface too large")

// Surface is a raster target plus the uniform scale from logical units to
// pixels.
type Surface struct {
	Img   *image.RGBA
	Scale float64
}

// NewSurface allocates a transparent surface large enough to hold a
// w x h logical area at the given scale.
func NewSurface(w, h, scale float64) (*Surface, error) {
	dw, dh := w*scale, h*scale
	if math.IsNaN(dw) || math.IsNaN(dh) || dw < 0 || dh < 0 || dw*dh > MaxSurfacePixels {
		return nil, fmt.Errorf("%w: %.0fx%.0f at %vx exceeds %d pixels", ErrSurfaceTooLarge, w, h, scale, MaxSurfacePixels)
	}
	return &Surface{
		Img:   image.NewRGBA(image.Rect(0, 0, deviceSize(w, scale), deviceSize(h, scale))),
		Scale: scale,
	}, nil
}

// deviceSize rounds a scaled length up, ignoring float noise.
func deviceSize(v, scale float64) int {
	return int(math.Ceil(v*scale - 1e-9))
}

// fillRect composites c over the device-space rectangle [x0,x1)x[y0,y1).
// Edge pixels get the rasterizer's fractional coverage.
func fillRect(dst draw.Image, x0, y0, x1, y1 float64, c color.Color) {
	b := dst.Bounds()
	x0, x1 = math.Max(x0, float64(b.Min.X)), math.Min(x1, float64(b.Max.X))
	y0, y1 = math.Max(y0, float64(b.Min.Y)), math.Min(y1, float64(b.Max.Y))
	r := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1)))
	if x1 <= x0 || y1 <= y0 || r.Empty() {
		return
	}

	// The rasterizer covers only r, so the path is shifted to its origin.
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(x0-ox), float32(y0-oy))
	z.LineTo(float32(x1-ox), float32(y0-oy))
	z.LineTo(float32(x1-ox), float32(y1-oy))
	z.LineTo(float32(x0-ox), float32(y1-oy))
	z.ClosePath()
	z.Draw(dst, r, image.NewUniform(c), image.Point{})
}
