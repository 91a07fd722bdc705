package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Download is a fetched response body.
type Download struct {
	Body        []byte
	ContentType string
	// Size is the Content-Length when the server sent one, else len(Body).
	Size int64
}

// GetBytes fetches url and reads at most limit+1 bytes of the body, so
// callers can tell an oversized body from one that fits exactly.
func GetBytes(ctx context.Context, url string, limit int64) (*Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := http.Client{Timeout: 12 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: %s", url, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	d := &Download{Body: body, ContentType: resp.Header.Get("Content-Type"), Size: resp.ContentLength}
	if d.Size < 0 {
		d.Size = int64(len(body))
	}
	return d, nil
}
