package embedding

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultFetchTimeout bounds a single image download. Photo hosts can
	// hang indefinitely; an unfetchable photo is an extraction failure,
	// not a stuck submission.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultMaxImageBytes rejects absurd uploads before they reach the
	// provider.
	DefaultMaxImageBytes = 20 << 20
)

// HTTPFetcher downloads photos with a bounded timeout and size cap. The
// response is streamed, so an oversized body is abandoned at the cap rather
// than buffered in full.
type HTTPFetcher struct {
	client   *resty.Client
	maxBytes int64
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	client := resty.New()
	client.SetTimeout(timeout)
	// Raw body access; Fetch reads and closes it.
	client.SetDoNotParseResponse(true)
	return &HTTPFetcher{client: client, maxBytes: DefaultMaxImageBytes}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (Image, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return Image{}, fmt.Errorf("failed to fetch image '%s': %w", url, err)
	}
	raw := res.RawBody()
	defer raw.Close()

	if res.StatusCode() != http.StatusOK {
		return Image{}, fmt.Errorf("failed to fetch image '%s': status %d", url, res.StatusCode())
	}

	mime := res.Header().Get("Content-Type")
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	mime = strings.TrimSpace(mime)
	if !strings.HasPrefix(mime, "image/") {
		return Image{}, fmt.Errorf("'%s' is not an image: content type %q", url, mime)
	}

	// Read one byte past the cap so an at-cap image still passes.
	body, err := io.ReadAll(io.LimitReader(raw, f.maxBytes+1))
	if err != nil {
		return Image{}, fmt.Errorf("failed to read image body from '%s': %w", url, err)
	}
	if int64(len(body)) > f.maxBytes {
		return Image{}, fmt.Errorf("image from '%s' too large: exceeds %d bytes", url, f.maxBytes)
	}
	if len(body) == 0 {
		return Image{}, fmt.Errorf("empty image body from '%s'", url)
	}

	return Image{Data: body, MIME: mime}, nil
}
