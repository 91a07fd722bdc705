package imagepkg

import (
	"image"
	"math"

	"github.com/srwiley/rasterx"

	"github.com/youruser/moodboard/internal/board"
)

// Gradient builds the gradient configured in s over a w x h pixel area.
// Points are in pixels and both ends pad with the end colours.
func Gradient(s board.Settings, w, h float64) *rasterx.Gradient {
	g := &rasterx.Gradient{
		Stops: []rasterx.GradStop{
			{StopColor: s.GradientColor1.NRGBA(), Offset: 0, Opacity: 1},
			{StopColor: s.GradientColor2.NRGBA(), Offset: 1, Opacity: 1},
		},
		Matrix: rasterx.Identity,
		Spread: rasterx.PadSpread,
		Units:  rasterx.UserSpaceOnUse,
	}
	g.Bounds.W, g.Bounds.H = w, h

	switch s.GradientDirection {
	case board.GradientHorizontal:
		g.Points = [5]float64{0, 0, w, 0}
	case board.GradientDiagonal:
		g.Points = [5]float64{0, 0, w, h}
	case board.GradientRadial:
		g.IsRadial = true
		g.Points = [5]float64{w / 2, h / 2, w / 2, h / 2, math.Max(w, h) / 2}
	default:
		g.Points = [5]float64{0, 0, 0, h}
	}
	return g
}

// fillGradient covers dst with g.
func fillGradient(dst *image.RGBA, g *rasterx.Gradient) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	scanner := rasterx.NewScannerGV(w, h, dst, b)
	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetColor(g.GetColorFunction(1))
	rasterx.AddRect(0, 0, float64(w), float64(h), 0, filler)
	filler.Draw()
	filler.Clear()
}
