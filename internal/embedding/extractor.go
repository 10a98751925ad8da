package embedding

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/avast/retry-go"
)

// probePNG is a 1x1 PNG used to verify the provider and learn its output
// dimensionality during warmup.
const probePNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

// Extractor is the process-wide embedding service. Extract fails fast with
// ErrModelNotReady until Warmup has completed once; after that the output
// dimensionality is pinned and every vector is checked against it.
type Extractor struct {
	client  Client
	fetcher Fetcher

	// WarmupDelay spaces warmup retries; swappable so tests stay fast.
	WarmupDelay time.Duration

	mu    sync.Mutex
	dim   int
	ready chan struct{}
}

func NewExtractor(client Client, fetcher Fetcher) *Extractor {
	return &Extractor{
		client:      client,
		fetcher:     fetcher,
		WarmupDelay: 2 * time.Second,
		ready:       make(chan struct{}),
	}
}

// Warmup probes the provider with a tiny built-in image, records the vector
// length, and marks the extractor ready. Intended to run once in a
// goroutine at startup; transient provider errors are retried with backoff.
func (x *Extractor) Warmup(ctx context.Context) error {
	probe, err := base64.StdEncoding.DecodeString(probePNG)
	if err != nil {
		return fmt.Errorf("failed to decode probe image: %w", err)
	}

	err = retry.Do(
		func() error {
			vec, err := x.client.Embed(ctx, Image{Data: probe, MIME: "image/png"})
			if err != nil {
				return err
			}
			if len(vec) == 0 {
				return fmt.Errorf("provider returned empty probe vector")
			}
			x.mu.Lock()
			x.dim = len(vec)
			x.mu.Unlock()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(x.WarmupDelay),
	)
	if err != nil {
		return fmt.Errorf("embedding warmup failed: %w", err)
	}

	log.Printf("Embedding provider ready (dimension %d)", x.Dimension())
	close(x.ready)
	return nil
}

// Ready reports whether warmup has completed.
func (x *Extractor) Ready() bool {
	select {
	case <-x.ready:
		return true
	default:
		return false
	}
}

// AwaitReady blocks until warmup completes or ctx ends.
func (x *Extractor) AwaitReady(ctx context.Context) error {
	select {
	case <-x.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dimension is the pinned vector length, 0 before warmup.
func (x *Extractor) Dimension() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.dim
}

// Extract fetches the photo and embeds it. There is no retry here: an
// unloadable photo surfaces as ErrExtractionFailed and the caller decides
// whether to proceed without an embedding.
func (x *Extractor) Extract(ctx context.Context, imageURL string) ([]float32, error) {
	if !x.Ready() {
		return nil, ErrModelNotReady
	}

	img, err := x.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	vec, err := x.client.Embed(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	if dim := x.Dimension(); len(vec) != dim {
		return nil, fmt.Errorf("%w: provider returned %d values, expected %d", ErrExtractionFailed, len(vec), dim)
	}

	return vec, nil
}
