// Package dedupe decides whether a newly submitted photo is a repeat
// sighting of a cat that is already on the map.
package dedupe

import (
	"github.com/nyangmap/nyangmap/internal/geo"
	"github.com/nyangmap/nyangmap/internal/model"
	"github.com/nyangmap/nyangmap/internal/vector"
)

// DefaultThreshold is the similarity a candidate must strictly exceed to be
// surfaced as a duplicate.
const DefaultThreshold = 0.8

// Resolver scores geographically close entries against a new embedding.
type Resolver struct {
	Threshold float64
	Box       geo.Box
}

func NewResolver(threshold float64, box geo.Box) *Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Resolver{Threshold: threshold, Box: box}
}

// FindDuplicate scans candidates in caller order and returns the first one
// whose embedding clears the threshold, or nil when none does.
//
// Candidates outside the proximity window are dropped before any scoring.
// Candidates without an embedding, with a mismatched length, or with a
// zero-norm vector are skipped silently; they can never match and never
// abort the scan. First-match is intentional: only one suspect is ever
// surfaced to the user, so scanning past the first hit buys nothing.
func (r *Resolver) FindDuplicate(newVec []float32, loc model.Location, candidates []model.Entry) *model.Match {
	if len(newVec) == 0 {
		return nil
	}

	for _, cand := range candidates {
		if !r.Box.Contains(loc, cand.Location) {
			continue
		}
		if !cand.HasEmbedding() {
			continue
		}

		sim, err := vector.CosineSimilarity(newVec, cand.Embedding)
		if err != nil {
			// Malformed candidate vector; skip, never fatal.
			continue
		}
		if sim > r.Threshold {
			return &model.Match{Entry: cand, Similarity: sim}
		}
	}

	return nil
}
