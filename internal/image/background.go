package imagepkg

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"

	"github.com/youruser/moodboard/internal/board"
	"github.com/youruser/moodboard/internal/layout"
)

const (
	// TextureTileSize is the logical edge of one texture repeat.
	TextureTileSize = 100

	paperDots = 1000
	// Fabric and canvas strokes are barely visible on purpose.
	canvasLineAlpha = 0.05
	canvasLineWidth = 0.5
	canvasSpacing   = 3
	fabricBandAlpha = 0.03
	fabricBandWidth = 2
	fabricSpacing   = 4
	paperMaxAlpha   = 0.1
)

// PaintBackground covers the whole surface with the configured background.
// w and h are the logical canvas size. rnd drives the paper grain.
func PaintBackground(s *Surface, w, h float64, settings board.Settings, rnd layout.Rand) {
	switch settings.Background {
	case board.BackgroundGradient:
		fillGradient(s.Img, Gradient(settings, w*s.Scale, h*s.Scale))
	case board.BackgroundTexture:
		tile := TextureTile(settings.TextureType, settings.TextureColor.NRGBA(), rnd)
		fillTiled(s.Img, s.Scale, tile)
	default:
		draw.Draw(s.Img, s.Img.Bounds(), image.NewUniform(settings.BackgroundColor.NRGBA()), image.Point{}, draw.Src)
	}
}

// TextureTile renders one TextureTileSize square of the given texture at
// one pixel per logical unit.
func TextureTile(kind board.TextureType, base color.NRGBA, rnd layout.Rand) *image.RGBA {
	const size = TextureTileSize
	tile := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(tile, tile.Bounds(), image.NewUniform(base), image.Point{}, draw.Src)

	switch kind {
	case board.TexturePaper:
		for i := 0; i < paperDots; i++ {
			alpha := rnd.Float64() * paperMaxAlpha
			x := rnd.Float64() * size
			y := rnd.Float64() * size
			fillRect(tile, x, y, x+1, y+1, black(alpha))
		}
	case board.TextureCanvas:
		line := black(canvasLineAlpha)
		half := canvasLineWidth / 2
		for i := 0.0; i < size; i += canvasSpacing {
			fillRect(tile, i-half, 0, i+half, size, line)
			fillRect(tile, 0, i-half, size, i+half, line)
		}
	case board.TextureFabric:
		band := black(fabricBandAlpha)
		for i := 0.0; i < size; i += fabricSpacing {
			fillRect(tile, i, 0, i+fabricBandWidth, size, band)
			fillRect(tile, 0, i, size, i+fabricBandWidth, band)
		}
	}
	return tile
}

func black(alpha float64) color.NRGBA {
	return color.NRGBA{A: uint8(math.Round(clamp01(alpha) * 255))}
}

// fillTiled repeats a logical-resolution tile across dst, resampling it
// first when the surface is scaled.
func fillTiled(dst *image.RGBA, scale float64, tile *image.RGBA) {
	var src image.Image = tile
	if scale != 1 {
		edge := deviceSize(TextureTileSize, scale)
		src = imaging.Resize(tile, edge, edge, imaging.Linear)
	}
	step := src.Bounds().Size()
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += step.Y {
		for x := b.Min.X; x < b.Max.X; x += step.X {
			r := image.Rect(x, y, x+step.X, y+step.Y).Intersect(b)
			draw.Draw(dst, r, src, src.Bounds().Min, draw.Src)
		}
	}
}
