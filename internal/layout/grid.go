package layout

import "github.com/youruser/moodboard/internal/board"

// grid places square tiles row-major on an exact lattice.
func grid(images []board.ImageAsset, cols int) *Result {
	if cols < 1 {
		cols = 1
	}
	n := len(images)
	rows := (n + cols - 1) / cols

	res := &Result{
		Mode:       board.LayoutGrid,
		Width:      float64(cols)*TileSize + float64(cols-1)*Gap + 2*Padding,
		Height:     float64(rows)*TileSize + float64(rows-1)*Gap + 2*Padding,
		Placements: make([]Placement, 0, n),
	}
	for i, img := range images {
		row, col := i/cols, i%cols
		x := Padding + float64(col)*(TileSize+Gap)
		y := Padding + float64(row)*(TileSize+Gap)
		res.Placements = append(res.Placements, place(i, img, x, y, TileSize, TileSize))
	}
	return res
}
