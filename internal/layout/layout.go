// Package layout computes where each board image goes. All coordinates are
// logical units; the rasterizer multiplies them by the output scale.
package layout

import (
	"errors"
	"math/rand"
	"time"

	"github.com/youruser/moodboard/internal/board"
)

// ErrNoImages is returned for an empty image list. Callers are expected to
// check for an empty board before asking for a layout.
var ErrNoImages = errors.New("layout: no images")

const (
	Padding = 40.0
	Gap     = 20.0

	TileSize = 200.0

	CanvasWidth  = 800.0
	CanvasHeight = 600.0

	// CollageBaseSize is the nominal edge of a collage item before the
	// random size variation.
	CollageBaseSize = 160.0
	// CollageAttempts is how many random positions are tried before an
	// item falls back to its grid slot.
	CollageAttempts = 50
	// CollageMaxRotation is the largest tilt, in degrees, either way.
	CollageMaxRotation = 7.5
	// CollageJitter is the largest offset, either way, of a fallback slot.
	CollageJitter = 10.0

	SmartRowHeight = 160.0
)

// Rand is the source of randomness for collage placement. *rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
}

// Placement is the geometry assigned to one image.
type Placement struct {
	// Index is the image's position in the input list.
	Index    int              `json:"index"`
	ImageID  string           `json:"image_id"`
	Image    board.ImageAsset `json:"-"`
	X        float64          `json:"x"`
	Y        float64          `json:"y"`
	Width    float64          `json:"width"`
	Height   float64          `json:"height"`
	Rotation float64          `json:"rotation"`
}

// Result is the canvas size and the placements in paint order.
type Result struct {
	Mode       board.LayoutMode `json:"mode"`
	Width      float64          `json:"width"`
	Height     float64          `json:"height"`
	Placements []Placement      `json:"placements"`
}

// Compute lays out images according to settings.Layout. An unknown mode
// lays out as a grid. rnd is only consulted in collage mode; nil means a
// time-seeded source.
func Compute(images []board.ImageAsset, settings board.Settings, rnd Rand) (*Result, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	switch settings.Layout {
	case board.LayoutCollage:
		if rnd == nil {
			rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		return collage(images, rnd), nil
	case board.LayoutSmart:
		return smart(images), nil
	default:
		return grid(images, settings.GridColumns), nil
	}
}

func place(i int, img board.ImageAsset, x, y, w, h float64) Placement {
	return Placement{Index: i, ImageID: img.ID, Image: img, X: x, Y: y, Width: w, Height: h}
}
