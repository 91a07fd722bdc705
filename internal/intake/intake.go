// Package intake turns uploaded bytes into board assets. Each file is
// checked against a media type allow-list and a size limit, then decoded
// once to learn its pixel size.
package intake

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"github.com/youruser/moodboard/internal/board"
)

// MaxBytes is the largest accepted file.
const MaxBytes = 10 << 20

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("file too large")
	ErrDecode          = errors.New("image could not be decoded")
)

// AllowedTypes lists the accepted media types.
var AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// File is one upload: its original name, declared media type and bytes.
type File struct {
	Name      string
	MediaType string
	Data      []byte
	// Size overrides len(Data) in messages when the real size is known to
	// be larger than what was read.
	Size int64
	// Label is an initial caption, e.g. from a manifest.
	Label string
}

func (f File) size() int64 {
	if f.Size > 0 {
		return f.Size
	}
	return int64(len(f.Data))
}

// Rejection says why one file of a batch was skipped.
type Rejection struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
	Err      error  `json:"-"`
	size     int64
}

func (r Rejection) Error() string { return r.Filename + ": " + r.Err.Error() }

func (r Rejection) Unwrap() error { return r.Err }

// Message is the text shown to the user.
func (r Rejection) Message() string {
	switch {
	case errors.Is(r.Err, ErrUnsupportedType):
		return fmt.Sprintf("%s is not a supported image format. Please use JPG, PNG, GIF, or WebP.", r.Filename)
	case errors.Is(r.Err, ErrTooLarge):
		return fmt.Sprintf("%s is too large (%s). Maximum file size is %s.",
			r.Filename, humanize.IBytes(uint64(r.size)), humanize.IBytes(MaxBytes))
	}
	return fmt.Sprintf("%s could not be read as an image.", r.Filename)
}

func reject(f File, err error) Rejection {
	reason := "decode"
	switch {
	case errors.Is(err, ErrUnsupportedType):
		reason = "unsupported_type"
	case errors.Is(err, ErrTooLarge):
		reason = "too_large"
	}
	return Rejection{Filename: f.Name, Reason: reason, Err: err, size: f.size()}
}

// Allowed reports whether mediaType is on the allow-list. Parameters such
// as charset are ignored.
func Allowed(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	for _, t := range AllowedTypes {
		if mt == t {
			return true
		}
	}
	return false
}

// Check validates type and size without decoding.
func Check(f File) error {
	if !Allowed(f.MediaType) {
		return fmt.Errorf("%w %q", ErrUnsupportedType, f.MediaType)
	}
	if f.size() > MaxBytes {
		return ErrTooLarge
	}
	return nil
}

// Decode validates f and decodes it into a new asset with a fresh id.
func Decode(f File) (board.ImageAsset, error) {
	if err := Check(f); err != nil {
		return board.ImageAsset{}, err
	}
	img, err := imaging.Decode(bytes.NewReader(f.Data), imaging.AutoOrientation(true))
	if err != nil {
		return board.ImageAsset{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	b := img.Bounds()
	return board.ImageAsset{
		ID:     uuid.NewString(),
		Source: board.FromImage(img),
		Width:  b.Dx(),
		Height: b.Dy(),
		Name:   DisplayName(f.Name),
		Label:  f.Label,
	}, nil
}

// Batch decodes files in order. A bad file is reported and skipped; it
// never stops the rest of the batch.
func Batch(files []File) ([]board.ImageAsset, []Rejection) {
	var (
		assets   []board.ImageAsset
		rejected []Rejection
	)
	for _, f := range files {
		a, err := Decode(f)
		if err != nil {
			rejected = append(rejected, reject(f, err))
			continue
		}
		assets = append(assets, a)
	}
	return assets, rejected
}

// DisplayName drops the last extension from a file name: "beach.jpg"
// becomes "beach". A trailing dot is kept.
func DisplayName(filename string) string {
	ext := path.Ext(filename)
	if len(ext) <= 1 {
		return filename
	}
	return strings.TrimSuffix(filename, ext)
}
