package imagepkg

import (
	"errors"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/youruser/moodboard/internal/board"
	"github.com/youruser/moodboard/internal/layout"
)

var ErrInvalidScale = errors.New("render scale must be positive")

// Renderer runs the layout, background and compositing passes. Rand feeds
// both collage placement and paper grain; a nil Rand is replaced by a
// time-seeded source on first use. A Renderer is not safe for concurrent
// use because Rand is not.
type Renderer struct {
	Rand layout.Rand
}

func NewRenderer(rnd layout.Rand) *Renderer {
	return &Renderer{Rand: rnd}
}

func (r *Renderer) source() layout.Rand {
	if r.Rand == nil {
		r.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return r.Rand
}

// Render lays out images and rasterizes the board at scale. Scale 1 is
// the preview; the export uses settings.ExportResolution.
func (r *Renderer) Render(images []board.ImageAsset, settings board.Settings, scale float64) (*image.RGBA, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w (got %v)", ErrInvalidScale, scale)
	}
	lay, err := layout.Compute(images, settings, r.source())
	if err != nil {
		return nil, err
	}
	return r.RenderLayout(lay, settings, scale)
}

// RenderLayout rasterizes an already computed layout. Images are drawn
// strictly in placement order; the first failing source aborts the render.
func (r *Renderer) RenderLayout(lay *layout.Result, settings board.Settings, scale float64) (*image.RGBA, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w (got %v)", ErrInvalidScale, scale)
	}
	start := time.Now()

	s, err := NewSurface(lay.Width, lay.Height, scale)
	if err != nil {
		return nil, err
	}
	PaintBackground(s, lay.Width, lay.Height, settings, r.source())
	for _, p := range lay.Placements {
		if err := DrawImage(s, p, settings); err != nil {
			return nil, fmt.Errorf("draw image: %w", err)
		}
	}

	Logger().Debug("rendered board",
		"layout", lay.Mode,
		"images", len(lay.Placements),
		"scale", scale,
		"size", s.Img.Bounds().Size(),
		"elapsed", time.Since(start))
	return s.Img, nil
}

// GradientSwatch renders the configured gradient into a w x h preview,
// independent of the board's images.
func GradientSwatch(settings board.Settings, w, h int) (*image.RGBA, error) {
	s, err := NewSurface(float64(w), float64(h), 1)
	if err != nil {
		return nil, err
	}
	fillGradient(s.Img, Gradient(settings, float64(w), float64(h)))
	return s.Img, nil
}
