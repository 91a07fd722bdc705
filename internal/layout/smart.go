package layout

import (
	"math"

	"github.com/youruser/moodboard/internal/board"
)

const (
	landscapeRatio = 1.2
	portraitRatio  = 0.8
)

// Orientation buckets an image by aspect ratio.
type Orientation int

const (
	Square Orientation = iota
	Landscape
	Portrait
)

func Classify(ar float64) Orientation {
	switch {
	case ar > landscapeRatio:
		return Landscape
	case ar < portraitRatio:
		return Portrait
	default:
		return Square
	}
}

// interleave returns input indices ordered landscape, square, portrait,
// landscape, ... with each bucket keeping its input order.
func interleave(images []board.ImageAsset) []int {
	var landscape, square, portrait []int
	for i, img := range images {
		switch Classify(img.AspectRatio()) {
		case Landscape:
			landscape = append(landscape, i)
		case Portrait:
			portrait = append(portrait, i)
		default:
			square = append(square, i)
		}
	}

	longest := max(len(landscape), len(square), len(portrait))
	order := make([]int, 0, len(images))
	for i := 0; i < longest; i++ {
		for _, bucket := range [][]int{landscape, square, portrait} {
			if i < len(bucket) {
				order = append(order, bucket[i])
			}
		}
	}
	return order
}

// smart packs rows of equal height, mixing orientations. The canvas keeps
// its width and grows downwards.
func smart(images []board.ImageAsset) *Result {
	res := &Result{
		Mode:       board.LayoutSmart,
		Width:      CanvasWidth,
		Placements: make([]Placement, 0, len(images)),
	}
	maxWidth := CanvasWidth - 2*Padding

	x, y, rowHeight := Padding, Padding, 0.0
	for _, i := range interleave(images) {
		img := images[i]
		ar := img.AspectRatio()
		w, h := SmartRowHeight*ar, SmartRowHeight
		if w > maxWidth {
			// Too wide for any row: shrink to the content width.
			w, h = maxWidth, maxWidth/ar
		}

		if x+w > CanvasWidth-Padding {
			x = Padding
			y += rowHeight + Gap
			rowHeight = 0
		}

		res.Placements = append(res.Placements, place(i, img, x, y, w, h))
		x += w + Gap
		rowHeight = math.Max(rowHeight, h)
	}

	res.Height = math.Max(CanvasHeight, y+rowHeight+Padding)
	return res
}
