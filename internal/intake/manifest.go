package intake

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one row of a board manifest.
type Entry struct {
	Path  string
	Label string
}

// ReadManifest loads a CSV with a header row naming at least "path" and
// optionally "label". Relative paths are resolved against the manifest's
// directory; blank rows are skipped.
func ReadManifest(manifest string) ([]Entry, error) {
	fp, err := os.Open(manifest)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", manifest, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("manifest %s has no header", manifest)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["path"]; !ok {
		return nil, fmt.Errorf("manifest %s has no path column", manifest)
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return row[idx]
		}
		return ""
	}

	dir := filepath.Dir(manifest)
	var out []Entry
	for _, row := range rows[1:] {
		p := strings.TrimSpace(get(row, "path"))
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		out = append(out, Entry{Path: p, Label: get(row, "label")})
	}
	return out, nil
}

// ReadFile loads a file from disk, declaring its media type from the
// extension. Files over MaxBytes are not read in full.
func ReadFile(name string) (File, error) {
	fp, err := os.Open(name)
	if err != nil {
		return File{}, err
	}
	defer fp.Close()

	info, err := fp.Stat()
	if err != nil {
		return File{}, err
	}
	f := File{
		Name:      filepath.Base(name),
		MediaType: mime.TypeByExtension(strings.ToLower(filepath.Ext(name))),
		Size:      info.Size(),
	}
	if f.Size > MaxBytes {
		return f, nil
	}
	f.Data, err = io.ReadAll(fp)
	return f, err
}
