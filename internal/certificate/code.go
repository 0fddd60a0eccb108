package certificate

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultCodeServiceURL = "https://api.qrserver.com/v1/create-qr-code/"
	DefaultCodeSize       = 100
)

// CodeService builds requests for the external scannable-code image service.
type CodeService struct {
	BaseURL string
	Size    int
}

// URL returns the image URL for p. It performs no network I/O.
func (c CodeService) URL(p VerificationPayload) (string, error) {
	data, err := p.Encode()
	if err != nil {
		return "", err
	}
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		base = DefaultCodeServiceURL
	}
	size := c.Size
	if size <= 0 {
		size = DefaultCodeSize
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%ssize=%dx%d&data=%s", base, sep, size, size, encodeComponent(data)), nil
}

// encodeComponent escapes s for a query value, spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// CodeFetcher downloads a code image. Fetching is best-effort; callers draw
// a placeholder when it fails.
type CodeFetcher interface {
	Fetch(ctx context.Context, rawURL string) (image.Image, error)
}

type HTTPFetcherOptions struct {
	HTTPClient *http.Client
	Timeout    time.Duration
}

// HTTPFetcher fetches code images over HTTP.
type HTTPFetcher struct {
	httpClient *http.Client
}

func NewHTTPFetcher(opts HTTPFetcherOptions) *HTTPFetcher {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPFetcher{httpClient: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (image.Image, error) {
	if f == nil {
		return nil, errors.New("code fetcher not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("code service: http %d", resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("code service: decode image: %w", err)
	}
	return img, nil
}
