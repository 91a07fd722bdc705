package board

// Board is the caller-owned aggregate of ordered images and settings.
// It does no locking; see the session package for shared use.
type Board struct {
	Images   []ImageAsset `json:"images"`
	Settings Settings     `json:"settings"`
}

// Position says on which side of the target a moved image lands.
type Position int

const (
	Before Position = iota
	After
)

// ParsePosition accepts "before" and "after".
func ParsePosition(s string) (Position, bool) {
	switch s {
	case "before":
		return Before, true
	case "after":
		return After, true
	}
	return Before, false
}

func New(settings Settings) *Board {
	return &Board{Settings: settings}
}

func (b *Board) Len() int { return len(b.Images) }

// Index returns the position of id in the board, or -1.
func (b *Board) Index(id string) int {
	for i, img := range b.Images {
		if img.ID == id {
			return i
		}
	}
	return -1
}

// Add appends assets in the given order.
func (b *Board) Add(assets ...ImageAsset) {
	b.Images = append(b.Images, assets...)
}

// Remove deletes the asset with the given id and reports whether it existed.
func (b *Board) Remove(id string) bool {
	i := b.Index(id)
	if i < 0 {
		return false
	}
	b.Images = append(b.Images[:i], b.Images[i+1:]...)
	return true
}

// Move places id immediately before or after target. Moving an image
// relative to itself is a no-op that still reports success.
func (b *Board) Move(id, target string, pos Position) bool {
	from := b.Index(id)
	if from < 0 || b.Index(target) < 0 {
		return false
	}
	if id == target {
		return true
	}
	moved := b.Images[from]
	b.Images = append(b.Images[:from], b.Images[from+1:]...)

	to := b.Index(target)
	if pos == After {
		to++
	}
	b.Images = append(b.Images, ImageAsset{})
	copy(b.Images[to+1:], b.Images[to:])
	b.Images[to] = moved
	return true
}

// SetLabel replaces the label of id.
func (b *Board) SetLabel(id, label string) bool {
	i := b.Index(id)
	if i < 0 {
		return false
	}
	b.Images[i].Label = label
	return true
}

// Snapshot copies the board so renders can run on it while the original
// keeps changing.
func (b *Board) Snapshot() Board {
	images := make([]ImageAsset, len(b.Images))
	copy(images, b.Images)
	return Board{Images: images, Settings: b.Settings}
}
