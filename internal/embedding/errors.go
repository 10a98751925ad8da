package embedding

import "errors"

var (
	// ErrModelNotReady is returned by Extract before warmup has finished.
	// The submission flow treats it the same as a failed extraction:
	// proceed without an embedding.
	ErrModelNotReady = errors.New("embedding: model not ready")

	// ErrExtractionFailed wraps any image fetch, decode or provider error.
	// Duplicate checking is skipped for the submission (fail-open).
	ErrExtractionFailed = errors.New("embedding: extraction failed")
)
