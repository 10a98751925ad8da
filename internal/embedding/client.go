// Package embedding turns a photo URL into a fixed-length vector describing
// its visual content. A single Extractor instance is shared by the whole
// process; it gates callers behind a one-time asynchronous warmup of the
// underlying provider.
package embedding

import "context"

// Image is fetched photo bytes plus the content type reported by the host.
type Image struct {
	Data []byte
	MIME string
}

// Client is an image-embedding provider. Embed returns a vector whose
// length is fixed for a given model.
type Client interface {
	Embed(ctx context.Context, img Image) ([]float32, error)
}

// Fetcher loads image bytes from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Image, error)
}
