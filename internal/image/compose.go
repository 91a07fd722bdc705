package imagepkg

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/youruser/moodboard/internal/board"
	"github.com/youruser/moodboard/internal/layout"
)

const (
	CornerRadius = 8.0

	LabelBandHeight = 30.0
	LabelFontSize   = 14.0
	LabelInset      = 8.0
)

var labelBandColor = color.NRGBA{A: 179} // 70% black

var ErrNoSource = errors.New("image has no pixel source")

// CoverFit returns the scale that makes an iw x ih image cover a bw x bh
// box, and the offset that centres the scaled image in the box.
func CoverFit(iw, ih, bw, bh float64) (scale, offX, offY float64) {
	scale = math.Max(bw/iw, bh/ih)
	offX = (bw - iw*scale) / 2
	offY = (bh - ih*scale) / 2
	return scale, offX, offY
}

// DrawImage composites one placed image onto s: cover-fit, filtered,
// labelled when enabled, clipped to a rounded rectangle, then rotated
// about its centre into place.
func DrawImage(s *Surface, p layout.Placement, settings board.Settings) error {
	if p.Image.Source == nil {
		return fmt.Errorf("%s: %w", p.ImageID, ErrNoSource)
	}
	src, err := p.Image.Source.Image()
	if err != nil {
		return fmt.Errorf("%s: %w", p.ImageID, err)
	}

	k := s.Scale
	tw, th := deviceSize(p.Width, k), deviceSize(p.Height, k)
	if tw <= 0 || th <= 0 {
		return nil
	}
	bounds := image.Rect(0, 0, tw, th)

	// Everything below is drawn in the placement's own frame, in pixels.
	tile := image.NewRGBA(bounds)

	sb := src.Bounds()
	if !sb.Empty() {
		layer := image.NewRGBA(bounds)
		cf, ox, oy := CoverFit(float64(sb.Dx()), float64(sb.Dy()), p.Width, p.Height)
		m := cf * k
		xdraw.CatmullRom.Transform(layer, f64.Aff3{
			m, 0, ox*k - m*float64(sb.Min.X),
			0, m, oy*k - m*float64(sb.Min.Y),
		}, src, sb, xdraw.Over, nil)
		drawFiltered(tile, layer, settings.Filter)
	}

	if settings.Labels {
		if text := p.Image.DisplayLabel(); text != "" {
			layer := image.NewRGBA(bounds)
			fillRect(layer, 0, (p.Height-LabelBandHeight)*k, p.Width*k, p.Height*k, labelBandColor)
			if err := drawLabelText(layer, text, LabelInset*k, (p.Height-LabelBandHeight/2)*k, LabelFontSize*k); err != nil {
				return fmt.Errorf("label %s: %w", p.ImageID, err)
			}
			drawFiltered(tile, layer, settings.Filter)
		}
	}

	clipped := image.NewRGBA(bounds)
	mask := roundedRectMask(bounds.Size(), p.Width*k, p.Height*k, CornerRadius*k)
	draw.DrawMask(clipped, bounds, tile, image.Point{}, mask, image.Point{}, draw.Src)

	xdraw.BiLinear.Transform(s.Img, placementMatrix(p, k), clipped, bounds, xdraw.Over, nil)
	return nil
}

// drawFiltered composites layer over dst after running it through f.
func drawFiltered(dst *image.RGBA, layer *image.RGBA, f board.Filter) {
	var src image.Image = layer
	if len(Effects(f)) > 0 {
		src = ApplyFilter(layer, f)
	}
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Over)
}

// placementMatrix maps tile pixels to surface pixels. A rotated placement
// turns clockwise about its centre.
func placementMatrix(p layout.Placement, k float64) f64.Aff3 {
	if p.Rotation == 0 {
		return f64.Aff3{1, 0, p.X * k, 0, 1, p.Y * k}
	}
	rad := p.Rotation * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	cx, cy := (p.X+p.Width/2)*k, (p.Y+p.Height/2)*k
	hw, hh := p.Width/2*k, p.Height/2*k
	return f64.Aff3{
		cos, -sin, cx - cos*hw + sin*hh,
		sin, cos, cy - sin*hw - cos*hh,
	}
}

// roundedRectMask rasterizes a w x h rectangle with quadratic corners of
// radius r into an alpha mask of the given size.
func roundedRectMask(size image.Point, w, h, r float64) *image.Alpha {
	r = math.Min(r, math.Min(w, h)/2)
	pt := func(v float64) float32 { return float32(v) }

	z := vector.NewRasterizer(size.X, size.Y)
	z.MoveTo(pt(r), 0)
	z.LineTo(pt(w-r), 0)
	z.QuadTo(pt(w), 0, pt(w), pt(r))
	z.LineTo(pt(w), pt(h-r))
	z.QuadTo(pt(w), pt(h), pt(w-r), pt(h))
	z.LineTo(pt(r), pt(h))
	z.QuadTo(0, pt(h), 0, pt(h-r))
	z.LineTo(0, pt(r))
	z.QuadTo(0, 0, pt(r), 0)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, size.X, size.Y))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
