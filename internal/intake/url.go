package intake

import (
	"context"
	"net/url"
	"path"

	"github.com/youruser/moodboard/internal/util"
)

// Fetch downloads rawURL into a File. The response Content-Type is taken
// as the declared media type, the last path segment as the file name.
func Fetch(ctx context.Context, rawURL string) (File, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return File{}, err
	}
	d, err := util.GetBytes(ctx, u.String(), MaxBytes)
	if err != nil {
		return File{}, err
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." {
		name = u.Host
	}
	return File{Name: name, MediaType: d.ContentType, Data: d.Body, Size: d.Size}, nil
}
