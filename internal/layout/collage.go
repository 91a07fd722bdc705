package layout

import (
	"math"

	"github.com/youruser/moodboard/internal/board"
)

type rect struct {
	x, y, w, h float64
}

func (r rect) expand(m float64) rect {
	return rect{x: r.x - m, y: r.y - m, w: r.w + 2*m, h: r.h + 2*m}
}

// overlaps is the strict axis-aligned test: rectangles that only share an
// edge do not overlap.
func (r rect) overlaps(o rect) bool {
	return r.x < o.x+o.w && r.x+r.w > o.x && r.y < o.y+o.h && r.y+r.h > o.y
}

func overlapsAny(r rect, placed []rect) bool {
	for _, p := range placed {
		if r.overlaps(p) {
			return true
		}
	}
	return false
}

// collage scatters images over a fixed canvas with random size and tilt,
// avoiding overlap where it can. Random draws per image, in order: size,
// rotation, then x/y per attempt, then x/y jitter if the fallback is used.
func collage(images []board.ImageAsset, rnd Rand) *Result {
	n := len(images)
	res := &Result{
		Mode:       board.LayoutCollage,
		Width:      CanvasWidth,
		Height:     CanvasHeight,
		Placements: make([]Placement, 0, n),
	}
	placed := make([]rect, 0, n)

	for i, img := range images {
		long := math.Max(img.AspectRatio(), 1)
		size := CollageBaseSize * (0.8 + rnd.Float64()*0.4)
		w := size * long
		h := size / long
		rotation := (rnd.Float64() - 0.5) * 2 * CollageMaxRotation

		// Oversized items get an empty range and sit at the padding.
		spanX := math.Max(0, CanvasWidth-w-2*Padding)
		spanY := math.Max(0, CanvasHeight-h-2*Padding)

		// Reaching the last trial counts as exhaustion, even if that
		// trial would have fit.
		var x, y float64
		attempts := 0
		for {
			x = Padding + rnd.Float64()*spanX
			y = Padding + rnd.Float64()*spanY
			attempts++
			if attempts >= CollageAttempts || !overlapsAny(rect{x, y, w, h}.expand(Gap), placed) {
				break
			}
		}
		if attempts >= CollageAttempts {
			x, y = collageFallback(i, n, rnd)
		}

		p := place(i, img, x, y, w, h)
		p.Rotation = rotation
		res.Placements = append(res.Placements, p)
		placed = append(placed, rect{x, y, w, h}.expand(Gap))
	}
	return res
}

// collageFallback returns the jittered slot of item i on a near-square grid.
func collageFallback(i, n int, rnd Rand) (x, y float64) {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(cols)))
	cell := math.Min((CanvasWidth-2*Padding)/float64(cols), (CanvasHeight-2*Padding)/float64(rows))

	row, col := i/cols, i%cols
	x = Padding + float64(col)*cell + rnd.Float64()*2*CollageJitter - CollageJitter
	y = Padding + float64(row)*cell + rnd.Float64()*2*CollageJitter - CollageJitter
	return x, y
}
