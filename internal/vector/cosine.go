// Package vector holds the similarity arithmetic used by duplicate detection.
package vector

import (
	"errors"
	"math"
)

var (
	// ErrLengthMismatch is returned when the two vectors are not comparable.
	ErrLengthMismatch = errors.New("vector: length mismatch")
	// ErrZeroNorm is returned when either vector has zero magnitude; the
	// similarity is undefined and callers treat it as a non-match.
	ErrZeroNorm = errors.New("vector: zero norm")
)

// CosineSimilarity returns the cosine of the angle between a and b:
// dot(a, b) / (|a| * |b|). The result is in [-1, 1]; image embeddings land
// in [0, 1] in practice. Accumulation is done in float64 to keep the
// identity case at 1.0 within tolerance.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrLengthMismatch
	}
	if len(a) == 0 {
		return 0, ErrZeroNorm
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, ErrZeroNorm
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
