package board

import "image"

// Source yields the decoded pixels of an asset. Implementations may
// decode lazily; renderers call Image once per draw, in board order.
type Source interface {
	Image() (image.Image, error)
}

// decoded is a Source over an already decoded image.
type decoded struct {
	img image.Image
}

func (d decoded) Image() (image.Image, error) { return d.img, nil }

// FromImage wraps an in-memory image as a Source.
func FromImage(img image.Image) Source {
	return decoded{img: img}
}

// ImageAsset is one image on the board. Assets are treated as values:
// editing a label replaces the asset in the board's list.
type ImageAsset struct {
	ID     string `json:"id"`
	Source Source `json:"-"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Name   string `json:"name"`
	Label  string `json:"label"`
}

// AspectRatio is width over height of the intrinsic pixel size.
func (a ImageAsset) AspectRatio() float64 {
	if a.Height == 0 {
		return 1
	}
	return float64(a.Width) / float64(a.Height)
}

// DisplayLabel is the text drawn under the image when labels are on.
// Only a literally empty label falls back to the display name.
func (a ImageAsset) DisplayLabel() string {
	if a.Label == "" {
		return a.Name
	}
	return a.Label
}
