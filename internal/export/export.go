// Package export is the sink for finished boards: lossless PNG bytes
// under a generated file name.
package export

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"github.com/youruser/moodboard/internal/board"
	"github.com/youruser/moodboard/internal/util"
)

const ContentType = "image/png"

// Filename names an export after its layout, resolution and the minute
// it was made, in UTC: moodboard-grid-2x-20240506-0708.png.
func Filename(settings board.Settings, now time.Time) string {
	return fmt.Sprintf("moodboard-%s-%dx-%s.png",
		settings.Layout, settings.ExportResolution, now.UTC().Format("20060102-1504"))
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// PNG returns img encoded as PNG.
func PNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes img to dir/name, creating dir if needed, and returns the
// full path.
func Save(dir, name string, img image.Image) (string, error) {
	if err := util.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	p := filepath.Join(dir, name)
	if err := imaging.Save(img, p); err != nil {
		return "", fmt.Errorf("saving %s: %w", p, err)
	}
	return p, nil
}
