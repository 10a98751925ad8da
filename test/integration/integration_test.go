//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyangmap/nyangmap/internal/core"
	"github.com/nyangmap/nyangmap/internal/dedupe"
	"github.com/nyangmap/nyangmap/internal/geo"
	"github.com/nyangmap/nyangmap/internal/model"
	"github.com/nyangmap/nyangmap/internal/store"
)

// stubExtractor lets the flow run against a real Memgraph without a live
// embedding provider.
type stubExtractor struct {
	vector []float32
}

func (s *stubExtractor) Extract(ctx context.Context, imageURL string) ([]float32, error) {
	return s.vector, nil
}

func newLiveStore(t *testing.T) *store.Store {
	t.Helper()
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}

	driver, err := store.NewMemgraphDriver(uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = driver.Close(context.Background()) })

	require.NoError(t, driver.BuildIndices(context.Background()))
	return store.NewStore(driver)
}

func TestSubmissionFlow(t *testing.T) {
	st := newLiveStore(t)
	ctx := context.Background()

	// Somewhere no other test data should be.
	loc := model.Location{Lat: 35.1796, Lng: 129.0756}

	cm := core.NewCatMap(st, &stubExtractor{vector: []float32{0.6, 0.8, 0}}, dedupe.NewResolver(dedupe.DefaultThreshold, geo.DefaultBox()), nil)

	entry, match, err := cm.SubmitEntry(ctx, core.SubmitRequest{
		Name:     "integration-cat",
		PhotoURL: "http://example.com/cat.jpg",
		Location: loc,
	})
	require.NoError(t, err)
	require.Nil(t, match)
	require.NotNil(t, entry)
	t.Cleanup(func() { _ = st.DeleteEntry(ctx, entry.ID) })

	// Round-trip: the embedding survives persistence.
	got, err := st.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.6, 0.8, 0}, got.Embedding)

	// The same photo at the same place is flagged.
	dup, dupMatch, err := cm.SubmitEntry(ctx, core.SubmitRequest{
		Name:     "integration-cat-again",
		PhotoURL: "http://example.com/cat.jpg",
		Location: loc,
	})
	require.NoError(t, err)
	assert.Nil(t, dup)
	require.NotNil(t, dupMatch)
	assert.Equal(t, entry.ID, dupMatch.Entry.ID)
	assert.InDelta(t, 1.0, dupMatch.Similarity, 1e-6)

	// Force override creates a second entry anyway.
	forced, forcedMatch, err := cm.SubmitEntry(ctx, core.SubmitRequest{
		Name:     "integration-cat-forced",
		PhotoURL: "http://example.com/cat.jpg",
		Location: loc,
		Force:    true,
	})
	require.NoError(t, err)
	assert.Nil(t, forcedMatch)
	require.NotNil(t, forced)
	t.Cleanup(func() { _ = st.DeleteEntry(ctx, forced.ID) })
}

func TestFeedingAndHospitalRoundTrip(t *testing.T) {
	st := newLiveStore(t)
	ctx := context.Background()
	loc := model.Location{Lat: 35.8714, Lng: 128.6014}

	cm := core.NewCatMap(st, &stubExtractor{vector: []float32{1, 0}}, dedupe.NewResolver(dedupe.DefaultThreshold, geo.DefaultBox()), nil)

	entry, _, err := cm.SubmitEntry(ctx, core.SubmitRequest{Name: "feeding-cat", Location: loc})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.DeleteEntry(ctx, entry.ID) })

	_, err = cm.AddFeeding(ctx, entry.ID, "integration-feeder", "dry food")
	require.NoError(t, err)
	require.NoError(t, cm.SetNeutered(ctx, entry.ID, true))

	got, err := st.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.True(t, got.Neutered)
	require.Len(t, got.Feedings, 1)
	assert.Equal(t, "integration-feeder", got.Feedings[0].FeederName)

	hosp, err := cm.AddHospital(ctx, model.Hospital{Name: "integration-clinic", Location: loc})
	require.NoError(t, err)

	hospitals, err := cm.NearbyHospitals(ctx, loc)
	require.NoError(t, err)
	found := false
	for _, h := range hospitals {
		if h.ID == hosp.ID {
			found = true
		}
	}
	assert.True(t, found)
}
