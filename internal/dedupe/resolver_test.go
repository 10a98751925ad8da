package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyangmap/nyangmap/internal/geo"
	"github.com/nyangmap/nyangmap/internal/model"
)

var cityHall = model.Location{Lat: 37.57, Lng: 126.98}

func newTestResolver() *Resolver {
	return NewResolver(DefaultThreshold, geo.DefaultBox())
}

func TestFindDuplicate_IdenticalVectorSameSpot(t *testing.T) {
	r := newTestResolver()
	vec := []float32{1, 0, 0, 0}

	candidates := []model.Entry{
		{ID: "cat-1", Location: cityHall, Embedding: []float32{1, 0, 0, 0}},
	}

	m := r.FindDuplicate(vec, cityHall, candidates)
	require.NotNil(t, m)
	assert.Equal(t, "cat-1", m.Entry.ID)
	assert.InDelta(t, 1.0, m.Similarity, 1e-9)
}

func TestFindDuplicate_GeoFilterBeforeScoring(t *testing.T) {
	r := newTestResolver()
	vec := []float32{1, 0, 0, 0}

	// Identical vector, but ~2 km east: excluded before scoring.
	candidates := []model.Entry{
		{ID: "far-cat", Location: model.Location{Lat: 37.58, Lng: 127.00}, Embedding: []float32{1, 0, 0, 0}},
	}

	assert.Nil(t, r.FindDuplicate(vec, cityHall, candidates))
}

func TestFindDuplicate_FirstMatchWins(t *testing.T) {
	r := newTestResolver()
	vec := []float32{1, 0}

	// Both clear the threshold; the second scores higher but the first is
	// scanned first.
	candidates := []model.Entry{
		{ID: "first", Location: cityHall, Embedding: []float32{1, 0.3287}},  // ~0.95
		{ID: "second", Location: cityHall, Embedding: []float32{1, 0.001}}, // ~1.0
	}

	m := r.FindDuplicate(vec, cityHall, candidates)
	require.NotNil(t, m)
	assert.Equal(t, "first", m.Entry.ID)
	assert.Greater(t, m.Similarity, DefaultThreshold)
}

func TestFindDuplicate_BelowThreshold(t *testing.T) {
	r := newTestResolver()

	// Orthogonal vector: similarity 0.
	candidates := []model.Entry{
		{ID: "other-cat", Location: cityHall, Embedding: []float32{0, 1}},
	}

	assert.Nil(t, r.FindDuplicate([]float32{1, 0}, cityHall, candidates))
}

func TestFindDuplicate_ExactThresholdExcluded(t *testing.T) {
	r := NewResolver(0, geo.DefaultBox())
	r.Threshold = 1.0

	candidates := []model.Entry{
		{ID: "cat-1", Location: cityHall, Embedding: []float32{1, 0}},
	}

	// Similarity 1.0 does not strictly exceed threshold 1.0.
	assert.Nil(t, r.FindDuplicate([]float32{1, 0}, cityHall, candidates))
}

func TestFindDuplicate_SkipsUnusableCandidates(t *testing.T) {
	r := newTestResolver()
	vec := []float32{1, 0}

	candidates := []model.Entry{
		{ID: "no-photo", Location: cityHall},                                   // no embedding
		{ID: "empty", Location: cityHall, Embedding: []float32{}},              // empty embedding
		{ID: "mismatch", Location: cityHall, Embedding: []float32{1, 0, 0}},    // wrong length
		{ID: "zero", Location: cityHall, Embedding: []float32{0, 0}},           // zero norm
		{ID: "good", Location: cityHall, Embedding: []float32{0.99, 0.01}},     // scores ~1.0
	}

	m := r.FindDuplicate(vec, cityHall, candidates)
	require.NotNil(t, m)
	assert.Equal(t, "good", m.Entry.ID)
}

func TestFindDuplicate_NoUsableCandidates(t *testing.T) {
	r := newTestResolver()

	candidates := []model.Entry{
		{ID: "no-photo", Location: cityHall},
		{ID: "zero", Location: cityHall, Embedding: []float32{0, 0}},
	}

	assert.Nil(t, r.FindDuplicate([]float32{1, 0}, cityHall, candidates))
}

func TestFindDuplicate_EmptyNewVector(t *testing.T) {
	r := newTestResolver()

	candidates := []model.Entry{
		{ID: "cat-1", Location: cityHall, Embedding: []float32{1, 0}},
	}

	assert.Nil(t, r.FindDuplicate(nil, cityHall, candidates))
	assert.Nil(t, r.FindDuplicate([]float32{}, cityHall, candidates))
}
